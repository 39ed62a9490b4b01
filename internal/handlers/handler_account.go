package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/dto"
	"github.com/terratale/ledgerd/internal/middleware"
)

// accountHandler handles account lifecycle and invitation requests.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	ledgerService  portssvc.LedgerSvcFacade
	invoiceService portssvc.InvoiceSvcFacade
}

func registerAccountRoutes(
	rg *gin.RouterGroup,
	accountService portssvc.AccountSvcFacade,
	ledgerService portssvc.LedgerSvcFacade,
	invoiceService portssvc.InvoiceSvcFacade,
) {
	h := &accountHandler{
		accountService: accountService,
		ledgerService:  ledgerService,
		invoiceService: invoiceService,
	}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("/:accountNumber", h.getAccount)
		accounts.DELETE("/:accountNumber", h.deleteAccount)
		accounts.POST("/:accountNumber/invitations", h.inviteToAccount)
		accounts.POST("/:accountNumber/invitations/accept", h.acceptInvitation)
		accounts.POST("/:accountNumber/invitations/reject", h.rejectInvitation)
		accounts.GET("/:accountNumber/transactions", h.listTransactions)
		accounts.GET("/:accountNumber/invoices", h.listInvoices)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), actorID, req.BankName)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account created",
		slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	account, err := h.accountService.GetAccountByNumber(c.Request.Context(), c.Param("accountNumber"), actorID)
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), c.Param("accountNumber"), actorID); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) inviteToAccount(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.AccountInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inv, err := h.accountService.InviteToAccount(c.Request.Context(), c.Param("accountNumber"), actorID, req.InviteeID)
	if err != nil {
		respondError(c, err, "Failed to create account invitation")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountInvitationResponse(inv))
}

func (h *accountHandler) acceptInvitation(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.accountService.AcceptAccountInvitation(c.Request.Context(), c.Param("accountNumber"), actorID); err != nil {
		respondError(c, err, "Failed to accept invitation")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) rejectInvitation(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.accountService.RejectAccountInvitation(c.Request.Context(), c.Param("accountNumber"), actorID); err != nil {
		respondError(c, err, "Failed to reject invitation")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) listTransactions(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	txns, err := h.ledgerService.ListAccountTransactions(c.Request.Context(), actorID, c.Param("accountNumber"), parseLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponses(txns))
}

func (h *accountHandler) listInvoices(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	invoices, err := h.invoiceService.ListInvoicesByAccount(
		c.Request.Context(), actorID, c.Param("accountNumber"),
		c.DefaultQuery("role", "payer"), parseLimit(c))
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponses(invoices))
}

// listAccountsByOwner and listInvitations serve the /users subtree.
func (h *accountHandler) listAccountsByOwner(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	accounts, err := h.accountService.ListAccountsByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

func (h *accountHandler) listInvitations(c *gin.Context) {
	inviteeID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}
	invs, err := h.accountService.ListInvitationsForInvitee(c.Request.Context(), inviteeID)
	if err != nil {
		respondError(c, err, "Failed to list invitations")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountInvitationResponses(invs))
}
