package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// BankRepositoryFacade persists banks and their cascading lifecycle.
type BankRepositoryFacade interface {
	// CreateBank inserts the bank row and applies the funding movement
	// (creation cost from the owner's wallet into the government account)
	// in one database transaction. Returns the bank with its assigned id.
	CreateBank(ctx context.Context, bank domain.Bank, funding *domain.Movement) (*domain.Bank, error)

	FindBankByID(ctx context.Context, bankID int64) (*domain.Bank, error)
	FindBankByName(ctx context.Context, name string) (*domain.Bank, error)
	FindBanksByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Bank, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)

	// UpdateBankSettings persists fee schedule and visibility changes.
	UpdateBankSettings(ctx context.Context, bank domain.Bank) error

	// DeleteBankCascade sweeps every residual balance of the bank into the
	// treasury account and then removes the bank's accounts, their
	// histories, ownership links, invitations, the bank's own history, and
	// the bank row. Balances are read under row locks so the sweep and the
	// teardown see the same state, all in one database transaction.
	DeleteBankCascade(ctx context.Context, bankID int64, treasury domain.Account, actorID uuid.UUID) (*BankDeletionResult, error)
}

// BankDeletionResult reports what a bank teardown removed and swept.
type BankDeletionResult struct {
	AccountsClosed int
	Swept          decimal.Decimal
}
