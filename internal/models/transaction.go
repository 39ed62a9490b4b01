package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an append-only account history row.
type Transaction struct {
	TransactionID int64           `db:"transaction_id"`
	AccountID     int64           `db:"account_id"`
	Type          string          `db:"transaction_type"`
	Amount        decimal.Decimal `db:"amount"`
	ActorID       uuid.UUID       `db:"actor_id"`
	CreatedAt     time.Time       `db:"created_at"`
}

// BankTransaction is an append-only bank history row.
type BankTransaction struct {
	TransactionID int64           `db:"transaction_id"`
	BankID        int64           `db:"bank_id"`
	Type          string          `db:"transaction_type"`
	Amount        decimal.Decimal `db:"amount"`
	ActorID       uuid.UUID       `db:"actor_id"`
	CreatedAt     time.Time       `db:"created_at"`
}
