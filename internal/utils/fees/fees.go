// Package fees centralizes fee resolution and the canonical rounding rule
// for the ledger. Fees are computed exactly once, here; the rest of the
// codebase never rounds monetary values.
package fees

import (
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/core/domain"
)

var oneHundred = decimal.NewFromInt(100)

// ResolvePercent returns the fee percentage that applies to an operation on
// an account: the per-account override if set, else the owning bank's fee
// for that operation kind.
func ResolvePercent(account domain.Account, bank domain.Bank, kind domain.FeeKind) decimal.Decimal {
	if override := account.FeeOverride(kind); override != nil {
		return *override
	}
	return bank.FeePercent(kind)
}

// Amount computes amount * percent / 100, rounded half-up to the currency's
// two minor digits. This is the single rounding point of the ledger.
func Amount(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(oneHundred).Round(2)
}

// ValidPercent reports whether a fee percentage is within [0, 100].
func ValidPercent(percent decimal.Decimal) bool {
	return !percent.IsNegative() && percent.LessThanOrEqual(oneHundred)
}
