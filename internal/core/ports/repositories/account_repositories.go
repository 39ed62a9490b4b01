package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// AccountRepositoryFacade persists bank accounts and their ownership links.
type AccountRepositoryFacade interface {
	// CreateAccount inserts the account and its first ownership link, and
	// deletes the consumed bank invitation when one is given, in one
	// database transaction.
	CreateAccount(ctx context.Context, account domain.Account, ownerID uuid.UUID, consumedInvitationID *int64) (*domain.Account, error)

	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)
	FindAccountsByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error)
	AccountNumberExists(ctx context.Context, accountNumber string) (bool, error)

	FindAccountOwners(ctx context.Context, accountID int64) ([]uuid.UUID, error)
	IsAccountOwner(ctx context.Context, accountID int64, playerID uuid.UUID) (bool, error)

	// DeleteAccountCascade removes ownership links, pending invitations,
	// transaction history, and the account row in one database transaction.
	DeleteAccountCascade(ctx context.Context, accountID int64) error
}
