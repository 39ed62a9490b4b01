package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/dto"
)

// ledgerHandler handles the wallet/account money-movement requests.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/withdraw", h.withdraw)
		ledger.POST("/deposit", h.deposit)
		ledger.POST("/transfer", h.transfer)
	}
}

func (h *ledgerHandler) withdraw(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.LedgerAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.ledgerService.Withdraw(c.Request.Context(), actorID, req.AccountNumber, req.Amount)
	if err != nil {
		respondError(c, err, "Failed to withdraw")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ledgerHandler) deposit(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.LedgerAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.ledgerService.Deposit(c.Request.Context(), actorID, req.AccountNumber, req.Amount)
	if err != nil {
		respondError(c, err, "Failed to deposit")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ledgerHandler) transfer(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.ledgerService.Transfer(c.Request.Context(), actorID, req.FromAccountNumber, req.ToAccountNumber, req.Amount)
	if err != nil {
		respondError(c, err, "Failed to transfer")
		return
	}
	c.JSON(http.StatusOK, result)
}
