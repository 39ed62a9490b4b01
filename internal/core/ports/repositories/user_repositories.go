package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// UserRepositoryFacade persists player wallets.
type UserRepositoryFacade interface {
	// UpsertUser inserts the user or refreshes username and last-seen on
	// conflict, leaving the balance untouched for existing rows.
	UpsertUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, playerID uuid.UUID) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
