package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// SyncUserRequest is the findOrCreate payload sent on every player
// interaction.
type SyncUserRequest struct {
	PlayerID uuid.UUID `json:"playerID" binding:"required"`
	Username string    `json:"username" binding:"required"`
}

// WalletAmountRequest is the payload for adapter-shim credit/debit calls.
type WalletAmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gtzero"`
}

// UserResponse mirrors domain.User for callers.
type UserResponse struct {
	PlayerID   uuid.UUID       `json:"playerID"`
	Username   string          `json:"username"`
	Money      decimal.Decimal `json:"money"`
	LastSeenAt time.Time       `json:"lastSeenAt"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		PlayerID:   u.PlayerID,
		Username:   u.Username,
		Money:      u.Money,
		LastSeenAt: u.LastSeenAt,
		CreatedAt:  u.CreatedAt,
	}
}
