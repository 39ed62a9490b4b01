package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const actorIDKey = contextKey("actorID")

// actorHeader carries the acting player's id on every authenticated call.
// The game-server shim is the only caller and vouches for the identity.
const actorHeader = "X-Player-ID"

// TokenAuthMiddleware validates the shared bearer token of the game-server
// shim and extracts the acting player from the request headers.
func TokenAuthMiddleware(apiToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(apiToken)) != 1 {
			logger.Warn("Invalid API token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		actorRaw := c.GetHeader(actorHeader)
		if actorRaw == "" {
			// Player-less calls (driver trigger, listings by the shim
			// itself) proceed without an actor.
			c.Next()
			return
		}

		actorID, err := uuid.Parse(actorRaw)
		if err != nil {
			logger.Warn("Invalid actor id", slog.String("value", actorRaw))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid " + actorHeader + " header"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), actorIDKey, actorID)
		ctx = context.WithValue(ctx, loggerCtxKey, GetLoggerFromCtx(ctx).With(slog.String("actor_id", actorID.String())))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetActorFromContext retrieves the acting player's id from the Gin
// context. The boolean reports whether an actor header was present.
func GetActorFromContext(c *gin.Context) (uuid.UUID, bool) {
	actorID, ok := c.Request.Context().Value(actorIDKey).(uuid.UUID)
	return actorID, ok
}
