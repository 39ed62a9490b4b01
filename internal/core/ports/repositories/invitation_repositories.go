package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// InvitationRepositoryFacade persists account and bank invitations.
type InvitationRepositoryFacade interface {
	CreateAccountInvitation(ctx context.Context, inv domain.AccountInvitation) (*domain.AccountInvitation, error)
	FindAccountInvitation(ctx context.Context, accountID int64, inviteeID uuid.UUID) (*domain.AccountInvitation, error)
	ListAccountInvitationsForInvitee(ctx context.Context, inviteeID uuid.UUID) ([]domain.AccountInvitation, error)
	DeleteAccountInvitation(ctx context.Context, invitationID int64) error

	// ConsumeAccountInvitation creates the ownership link and deletes the
	// invitation in one database transaction.
	ConsumeAccountInvitation(ctx context.Context, invitationID int64, accountID int64, inviteeID uuid.UUID) error

	CreateBankInvitation(ctx context.Context, inv domain.BankInvitation) (*domain.BankInvitation, error)
	FindBankInvitation(ctx context.Context, bankID int64, inviteeID uuid.UUID) (*domain.BankInvitation, error)
	DeleteBankInvitation(ctx context.Context, invitationID int64) error
}
