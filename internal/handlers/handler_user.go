package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/terratale/ledgerd/internal/core/domain"
	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/dto"
	"github.com/terratale/ledgerd/internal/middleware"
)

// userHandler handles wallet and identity requests.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, accountService portssvc.AccountSvcFacade) {
	h := &userHandler{userService: userService}
	ah := &accountHandler{accountService: accountService}

	users := rg.Group("/users")
	{
		users.POST("/sync", h.syncUser)
		users.GET("/by-name/:username", h.getUserByUsername)
		users.GET("/:userID", h.getUser)
		users.POST("/:userID/credit", h.creditWallet)
		users.POST("/:userID/debit", h.debitWallet)
		users.GET("/:userID/accounts", ah.listAccountsByOwner)
		users.GET("/:userID/invitations", ah.listInvitations)
	}
}

// syncUser is the findOrCreate entry point called on every player join.
func (h *userHandler) syncUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SyncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.SyncUser(c.Request.Context(), req.PlayerID, req.Username)
	if err != nil {
		respondError(c, err, "Failed to sync user")
		return
	}

	logger.Info("User synced", slog.String("player_id", user.PlayerID.String()))
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *userHandler) getUser(c *gin.Context) {
	playerID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), playerID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *userHandler) getUserByUsername(c *gin.Context) {
	user, err := h.userService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// creditWallet is the economy-adapter shim entry point for paying into a
// player's pocket.
func (h *userHandler) creditWallet(c *gin.Context) {
	h.moveWallet(c, false)
}

// debitWallet is the economy-adapter shim entry point for charging a
// player's pocket.
func (h *userHandler) debitWallet(c *gin.Context) {
	h.moveWallet(c, true)
}

func (h *userHandler) moveWallet(c *gin.Context, debit bool) {
	playerID, err := uuid.Parse(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req dto.WalletAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var user *domain.User
	if debit {
		user, err = h.userService.DebitWallet(c.Request.Context(), playerID, req.Amount)
	} else {
		user, err = h.userService.CreditWallet(c.Request.Context(), playerID, req.Amount)
	}
	if err != nil {
		respondError(c, err, "Failed to move wallet balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
