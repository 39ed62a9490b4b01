package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/dto"
	"github.com/terratale/ledgerd/internal/middleware"
)

// bankHandler handles bank lifecycle requests.
type bankHandler struct {
	bankService   portssvc.BankSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

func registerBankRoutes(rg *gin.RouterGroup, bankService portssvc.BankSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := &bankHandler{bankService: bankService, ledgerService: ledgerService}

	banks := rg.Group("/banks")
	{
		banks.POST("", h.createBank)
		banks.GET("", h.listBanks)
		banks.GET("/:bankID", h.getBank)
		banks.PATCH("/:bankID", h.updateBank)
		banks.DELETE("/:bankID", h.deleteBank)
		banks.POST("/:bankID/invitations", h.inviteToBank)
		banks.GET("/:bankID/transactions", h.listBankTransactions)
	}
}

func (h *bankHandler) createBank(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bank, err := h.bankService.CreateBank(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, err, "Failed to create bank")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Bank created",
		slog.Int64("bank_id", bank.BankID))
	c.JSON(http.StatusCreated, dto.ToBankResponse(bank))
}

func (h *bankHandler) listBanks(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	banks, err := h.bankService.ListBanks(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, err, "Failed to list banks")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankResponses(banks))
}

func (h *bankHandler) getBank(c *gin.Context) {
	bankID, ok := parseBankID(c)
	if !ok {
		return
	}
	bank, err := h.bankService.GetBank(c.Request.Context(), bankID)
	if err != nil {
		respondError(c, err, "Failed to retrieve bank")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

func (h *bankHandler) updateBank(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	bankID, ok := parseBankID(c)
	if !ok {
		return
	}
	var req dto.UpdateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bank, err := h.bankService.UpdateBankSettings(c.Request.Context(), bankID, actorID, req)
	if err != nil {
		respondError(c, err, "Failed to update bank settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankResponse(bank))
}

func (h *bankHandler) deleteBank(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	bankID, ok := parseBankID(c)
	if !ok {
		return
	}

	summary, err := h.bankService.DeleteBank(c.Request.Context(), bankID, actorID)
	if err != nil {
		respondError(c, err, "Failed to delete bank")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *bankHandler) inviteToBank(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	bankID, ok := parseBankID(c)
	if !ok {
		return
	}
	var req dto.BankInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inv, err := h.bankService.InviteToBank(c.Request.Context(), bankID, actorID, req.InviteeID)
	if err != nil {
		respondError(c, err, "Failed to create bank invitation")
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *bankHandler) listBankTransactions(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	bankID, ok := parseBankID(c)
	if !ok {
		return
	}

	txns, err := h.ledgerService.ListBankTransactions(c.Request.Context(), actorID, bankID, parseLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list bank transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransactionResponses(txns))
}

func parseBankID(c *gin.Context) (int64, bool) {
	bankID, err := strconv.ParseInt(c.Param("bankID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bank id"})
		return 0, false
	}
	return bankID, true
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
