package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/middleware"
)

// respondError translates a service error into a JSON response using the
// error taxonomy. Unknown errors become a 500 with the fallback message.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	status := http.StatusInternalServerError
	message := fallback

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized), errors.Is(err, apperrors.ErrNotInvited):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrSelfReference):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		status, message = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperrors.ErrDuplicateName),
		errors.Is(err, apperrors.ErrDuplicateInvite),
		errors.Is(err, apperrors.ErrAlreadyOwner),
		errors.Is(err, apperrors.ErrAlreadyProcessed),
		errors.Is(err, apperrors.ErrAccountNotEmpty),
		errors.Is(err, apperrors.ErrOwnerLimitExceeded):
		status, message = http.StatusConflict, err.Error()
	}

	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
	} else {
		logger.Warn(message, slog.Int("status", status))
	}
	c.JSON(status, gin.H{"error": message})
}

// requireActor extracts the acting player or aborts with 401.
func requireActor(c *gin.Context) (uuid.UUID, bool) {
	id, found := middleware.GetActorFromContext(c)
	if !found {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Actor header missing")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "X-Player-ID header required"})
		return uuid.Nil, false
	}
	return id, true
}
