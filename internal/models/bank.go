package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bank is the persistence row for a player-owned bank.
type Bank struct {
	BankID             int64           `db:"bank_id"`
	Name               string          `db:"name"`
	OwnerID            uuid.UUID       `db:"owner_id"`
	Balance            decimal.Decimal `db:"balance"`
	WithdrawFeePercent decimal.Decimal `db:"withdraw_fee_percent"`
	DepositFeePercent  decimal.Decimal `db:"deposit_fee_percent"`
	TransferFeePercent decimal.Decimal `db:"transfer_fee_percent"`
	Visibility         string          `db:"visibility"`
	CreatedAt          time.Time       `db:"created_at"`
}

// BankAccount is the persistence row for an account under a bank. Nullable
// fee columns are per-account overrides.
type BankAccount struct {
	AccountID          int64            `db:"account_id"`
	BankID             int64            `db:"bank_id"`
	AccountNumber      string           `db:"account_number"`
	Balance            decimal.Decimal  `db:"balance"`
	WithdrawFeePercent *decimal.Decimal `db:"withdraw_fee_percent"`
	DepositFeePercent  *decimal.Decimal `db:"deposit_fee_percent"`
	TransferFeePercent *decimal.Decimal `db:"transfer_fee_percent"`
	CreatedAt          time.Time        `db:"created_at"`
}

// AccountOwnership is one row of the account <-> owner join table.
type AccountOwnership struct {
	AccountID int64     `db:"account_id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
}
