package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// CreateAccountRequest opens an account at the named bank for the
// requesting player.
type CreateAccountRequest struct {
	BankName string `json:"bankName" binding:"required"`
}

// AccountInviteRequest invites another player to co-own an account.
type AccountInviteRequest struct {
	InviteeID uuid.UUID `json:"inviteeID" binding:"required"`
}

// AccountResponse mirrors domain.Account for callers. Fee overrides are
// omitted when the account falls back to the bank schedule.
type AccountResponse struct {
	AccountID          int64            `json:"accountID"`
	BankID             int64            `json:"bankID"`
	AccountNumber      string           `json:"accountNumber"`
	Balance            decimal.Decimal  `json:"balance"`
	WithdrawFeePercent *decimal.Decimal `json:"withdrawFeePercent,omitempty"`
	DepositFeePercent  *decimal.Decimal `json:"depositFeePercent,omitempty"`
	TransferFeePercent *decimal.Decimal `json:"transferFeePercent,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// AccountInvitationResponse mirrors domain.AccountInvitation.
type AccountInvitationResponse struct {
	InvitationID int64     `json:"invitationID"`
	AccountID    int64     `json:"accountID"`
	InviteeID    uuid.UUID `json:"inviteeID"`
	InviterID    uuid.UUID `json:"inviterID"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          a.AccountID,
		BankID:             a.BankID,
		AccountNumber:      a.AccountNumber,
		Balance:            a.Balance,
		WithdrawFeePercent: a.WithdrawFeePercent,
		DepositFeePercent:  a.DepositFeePercent,
		TransferFeePercent: a.TransferFeePercent,
		CreatedAt:          a.CreatedAt,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out
}

// ToAccountInvitationResponse converts a domain invitation.
func ToAccountInvitationResponse(inv *domain.AccountInvitation) AccountInvitationResponse {
	return AccountInvitationResponse{
		InvitationID: inv.InvitationID,
		AccountID:    inv.AccountID,
		InviteeID:    inv.InviteeID,
		InviterID:    inv.InviterID,
		CreatedAt:    inv.CreatedAt,
	}
}

// ToAccountInvitationResponses converts a slice of invitations.
func ToAccountInvitationResponses(invs []domain.AccountInvitation) []AccountInvitationResponse {
	out := make([]AccountInvitationResponse, 0, len(invs))
	for i := range invs {
		out = append(out, ToAccountInvitationResponse(&invs[i]))
	}
	return out
}
