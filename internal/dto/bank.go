package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// CreateBankRequest opens a new bank owned by the requesting player.
type CreateBankRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=32"`
	Visibility string `json:"visibility" binding:"omitempty,oneof=public private"`
}

// UpdateBankRequest changes fee percentages or visibility. Nil fields are
// left untouched.
type UpdateBankRequest struct {
	WithdrawFeePercent *decimal.Decimal `json:"withdrawFeePercent" binding:"omitempty,feepercent"`
	DepositFeePercent  *decimal.Decimal `json:"depositFeePercent" binding:"omitempty,feepercent"`
	TransferFeePercent *decimal.Decimal `json:"transferFeePercent" binding:"omitempty,feepercent"`
	Visibility         *string          `json:"visibility" binding:"omitempty,oneof=public private"`
}

// BankInviteRequest invites a player to open an account at a private bank.
type BankInviteRequest struct {
	InviteeID uuid.UUID `json:"inviteeID" binding:"required"`
}

// BankResponse mirrors domain.Bank for callers.
type BankResponse struct {
	BankID             int64           `json:"bankID"`
	Name               string          `json:"name"`
	OwnerID            uuid.UUID       `json:"ownerID"`
	Balance            decimal.Decimal `json:"balance"`
	WithdrawFeePercent decimal.Decimal `json:"withdrawFeePercent"`
	DepositFeePercent  decimal.Decimal `json:"depositFeePercent"`
	TransferFeePercent decimal.Decimal `json:"transferFeePercent"`
	Visibility         string          `json:"visibility"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// BankDeletionSummary reports what a bank teardown swept to the
// government account.
type BankDeletionSummary struct {
	BankID          int64           `json:"bankID"`
	Name            string          `json:"name"`
	AccountsClosed  int             `json:"accountsClosed"`
	SweptToTreasury decimal.Decimal `json:"sweptToTreasury"`
}

// ToBankResponse converts a domain.Bank to its response DTO.
func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID:             b.BankID,
		Name:               b.Name,
		OwnerID:            b.OwnerID,
		Balance:            b.Balance,
		WithdrawFeePercent: b.WithdrawFeePercent,
		DepositFeePercent:  b.DepositFeePercent,
		TransferFeePercent: b.TransferFeePercent,
		Visibility:         string(b.Visibility),
		CreatedAt:          b.CreatedAt,
	}
}

// ToBankResponses converts a slice of banks.
func ToBankResponses(banks []domain.Bank) []BankResponse {
	out := make([]BankResponse, 0, len(banks))
	for i := range banks {
		out = append(out, ToBankResponse(&banks[i]))
	}
	return out
}
