package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User maps a player identity to a display name and a personal cash balance
// (pocket money), independent of any bank.
type User struct {
	PlayerID   uuid.UUID       `json:"playerID"`
	Username   string          `json:"username"`
	Money      decimal.Decimal `json:"money"`
	LastSeenAt time.Time       `json:"lastSeenAt"`
	CreatedAt  time.Time       `json:"createdAt"`
}
