package repositories

import (
	"context"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// MovementRepositoryFacade applies money movements atomically.
type MovementRepositoryFacade interface {
	// ApplyMovement applies every balance delta, history row, and invoice
	// transition of the movement in a single database transaction, with the
	// touched rows locked in deterministic order. A delta that would drive
	// any balance negative rolls the whole movement back with
	// ErrInsufficientFunds.
	ApplyMovement(ctx context.Context, m *domain.Movement) error
}

// TransactionRepositoryFacade reads append-only history rows.
type TransactionRepositoryFacade interface {
	ListTransactionsByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error)
	ListBankTransactionsByBank(ctx context.Context, bankID int64, limit int) ([]domain.BankTransaction, error)
}
