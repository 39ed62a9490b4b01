package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a sub-ledger under a bank, owned by one or more players via
// AccountOwnership links. The account number is the stable human-facing
// identifier; internal ids are never exposed. Nil fee pointers mean the
// account falls back to its bank's fee schedule.
type Account struct {
	AccountID          int64            `json:"accountID"`
	BankID             int64            `json:"bankID"`
	AccountNumber      string           `json:"accountNumber"`
	Balance            decimal.Decimal  `json:"balance"`
	WithdrawFeePercent *decimal.Decimal `json:"withdrawFeePercent,omitempty"`
	DepositFeePercent  *decimal.Decimal `json:"depositFeePercent,omitempty"`
	TransferFeePercent *decimal.Decimal `json:"transferFeePercent,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// FeeOverride returns the per-account override for the given kind, or nil
// when the bank schedule applies.
func (a Account) FeeOverride(kind FeeKind) *decimal.Decimal {
	switch kind {
	case FeeWithdraw:
		return a.WithdrawFeePercent
	case FeeDeposit:
		return a.DepositFeePercent
	default:
		return a.TransferFeePercent
	}
}
