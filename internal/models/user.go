package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is the persistence row for a player wallet.
type User struct {
	PlayerID   uuid.UUID       `db:"player_id"`
	Username   string          `db:"username"`
	Money      decimal.Decimal `db:"money"`
	LastSeenAt time.Time       `db:"last_seen_at"`
	CreatedAt  time.Time       `db:"created_at"`
}
