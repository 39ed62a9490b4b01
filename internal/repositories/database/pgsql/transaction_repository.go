package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	"github.com/terratale/ledgerd/internal/models"
	"github.com/terratale/ledgerd/internal/utils/mapping"
)

const defaultHistoryLimit = 50

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// ListTransactionsByAccount lists the newest history rows of an account.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := `
		SELECT transaction_id, account_id, transaction_type, amount, actor_id, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY transaction_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query transactions for account %d", accountID), err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(&m.TransactionID, &m.AccountID, &m.Type, &m.Amount, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

// ListBankTransactionsByBank lists the newest history rows of a bank.
func (r *PgxTransactionRepository) ListBankTransactionsByBank(ctx context.Context, bankID int64, limit int) ([]domain.BankTransaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := `
		SELECT transaction_id, bank_id, transaction_type, amount, actor_id, created_at
		FROM bank_transactions
		WHERE bank_id = $1
		ORDER BY transaction_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, bankID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query bank transactions for bank %d", bankID), err)
	}
	defer rows.Close()

	txns := []models.BankTransaction{}
	for rows.Next() {
		var m models.BankTransaction
		if err := rows.Scan(&m.TransactionID, &m.BankID, &m.Type, &m.Amount, &m.ActorID, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank transaction rows", err)
	}
	return mapping.ToDomainBankTransactionSlice(txns), nil
}
