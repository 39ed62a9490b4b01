package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankVisibility controls who may open accounts at a bank.
type BankVisibility string

const (
	VisibilityPublic  BankVisibility = "public"
	VisibilityPrivate BankVisibility = "private"
)

// FeeKind selects which entry of a fee schedule applies to an operation.
type FeeKind string

const (
	FeeWithdraw FeeKind = "withdraw"
	FeeDeposit  FeeKind = "deposit"
	FeeTransfer FeeKind = "transfer"
)

// Bank is a named, player-owned institution with its own balance, a fee
// schedule expressed in percentages, and a visibility flag.
type Bank struct {
	BankID             int64           `json:"bankID"`
	Name               string          `json:"name"`
	OwnerID            uuid.UUID       `json:"ownerID"`
	Balance            decimal.Decimal `json:"balance"`
	WithdrawFeePercent decimal.Decimal `json:"withdrawFeePercent"`
	DepositFeePercent  decimal.Decimal `json:"depositFeePercent"`
	TransferFeePercent decimal.Decimal `json:"transferFeePercent"`
	Visibility         BankVisibility  `json:"visibility"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// FeePercent returns the bank-level fee percentage for the given kind.
func (b Bank) FeePercent(kind FeeKind) decimal.Decimal {
	switch kind {
	case FeeWithdraw:
		return b.WithdrawFeePercent
	case FeeDeposit:
		return b.DepositFeePercent
	default:
		return b.TransferFeePercent
	}
}
