package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/dto"
)

// invoiceHandler handles invoice lifecycle requests.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := &invoiceHandler{invoiceService: invoiceService}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.POST("/:invoiceID/pay", h.payInvoice)
		invoices.POST("/:invoiceID/reject", h.rejectInvoice)
	}
}

func (h *invoiceHandler) createInvoice(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inv, err := h.invoiceService.CreateInvoice(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(inv))
}

func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoiceID, ok := parseInvoiceID(c)
	if !ok {
		return
	}
	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

func (h *invoiceHandler) payInvoice(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	invoiceID, ok := parseInvoiceID(c)
	if !ok {
		return
	}

	result, err := h.invoiceService.PayInvoice(c.Request.Context(), actorID, invoiceID)
	if err != nil {
		respondError(c, err, "Failed to pay invoice")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *invoiceHandler) rejectInvoice(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	invoiceID, ok := parseInvoiceID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.RejectInvoice(c.Request.Context(), actorID, invoiceID)
	if err != nil {
		respondError(c, err, "Failed to reject invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

func parseInvoiceID(c *gin.Context) (int64, bool) {
	invoiceID, err := strconv.ParseInt(c.Param("invoiceID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return 0, false
	}
	return invoiceID, true
}
