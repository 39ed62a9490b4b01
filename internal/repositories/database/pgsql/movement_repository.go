package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	"github.com/terratale/ledgerd/internal/utils/mapping"
)

type PgxMovementRepository struct {
	BaseRepository
}

func newPgxMovementRepository(pool *pgxpool.Pool) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

// ApplyMovement settles a movement in a single database transaction.
func (r *PgxMovementRepository) ApplyMovement(ctx context.Context, m *domain.Movement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := applyMovement(ctx, tx, m, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// applyMovement locks every touched row, verifies no balance goes
// negative, writes the new balances, and batch-inserts the history rows.
// Callers that bundle extra statements (bank creation, teardown,
// invitation consumption) reuse it inside their own transaction.
//
// Rows are locked in a fixed order per entity kind, wallets before
// accounts before banks, so concurrent movements never deadlock.
func applyMovement(ctx context.Context, tx pgx.Tx, m *domain.Movement, now time.Time) error {
	if err := applyWalletDeltas(ctx, tx, m.WalletDeltas); err != nil {
		return err
	}
	if err := applyAccountDeltas(ctx, tx, m.AccountDeltas); err != nil {
		return err
	}
	if err := applyBankDeltas(ctx, tx, m.BankDeltas); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	txnQuery := `
		INSERT INTO transactions (account_id, transaction_type, amount, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, txn := range m.Transactions {
		batch.Queue(txnQuery, txn.AccountID, string(txn.Type), txn.Amount, txn.ActorID, now)
	}
	bankTxnQuery := `
		INSERT INTO bank_transactions (bank_id, transaction_type, amount, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, txn := range m.BankTransactions {
		batch.Queue(bankTxnQuery, txn.BankID, string(txn.Type), txn.Amount, txn.ActorID, now)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert history rows", err)
		}
	}

	if m.Invoice != nil {
		events, err := mapping.EncodeInvoiceEvents(m.Invoice.Events)
		if err != nil {
			return apperrors.NewAppError(500, "failed to encode invoice events", err)
		}
		// Transitions only leave the pending state. A concurrent settlement
		// that already moved the invoice matches zero rows here and the
		// whole movement rolls back.
		tag, err := tx.Exec(ctx, `UPDATE invoices SET status = $2, events = $3 WHERE invoice_id = $1 AND status = 'pending';`,
			m.Invoice.InvoiceID, string(m.Invoice.Status), events)
		if err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to transition invoice %d", m.Invoice.InvoiceID), err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewAppError(409, fmt.Sprintf("invoice %d is no longer pending", m.Invoice.InvoiceID), apperrors.ErrAlreadyProcessed)
		}
	}

	return nil
}

func applyWalletDeltas(ctx context.Context, tx pgx.Tx, deltas map[uuid.UUID]decimal.Decimal) error {
	if len(deltas) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	rows, err := tx.Query(ctx, `SELECT player_id, money FROM users WHERE player_id = ANY($1) ORDER BY player_id FOR UPDATE;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock wallets", err)
	}
	balances := make(map[uuid.UUID]decimal.Decimal, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var money decimal.Decimal
		if err := rows.Scan(&id, &money); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked wallet", err)
		}
		balances[id] = money
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating locked wallets", err)
	}
	if len(balances) != len(ids) {
		return apperrors.NewNotFoundError("wallet not found during settlement")
	}

	batch := &pgx.Batch{}
	for _, id := range ids {
		next := balances[id].Add(deltas[id])
		if next.IsNegative() {
			return apperrors.NewAppError(422, fmt.Sprintf("wallet %s has insufficient funds", id), apperrors.ErrInsufficientFunds)
		}
		batch.Queue(`UPDATE users SET money = $2 WHERE player_id = $1;`, id, next)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to update wallet balances", err)
	}
	return nil
}

func applyAccountDeltas(ctx context.Context, tx pgx.Tx, deltas map[int64]decimal.Decimal) error {
	if len(deltas) == 0 {
		return nil
	}
	ids := sortedInt64Keys(deltas)

	rows, err := tx.Query(ctx, `SELECT account_id, balance FROM bank_accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock accounts", err)
	}
	balances, err := scanInt64Balances(rows)
	if err != nil {
		return err
	}
	if len(balances) != len(ids) {
		return apperrors.NewNotFoundError("account not found during settlement")
	}

	batch := &pgx.Batch{}
	for _, id := range ids {
		next := balances[id].Add(deltas[id])
		if next.IsNegative() {
			return apperrors.NewAppError(422, fmt.Sprintf("account %d has insufficient funds", id), apperrors.ErrInsufficientFunds)
		}
		batch.Queue(`UPDATE bank_accounts SET balance = $2 WHERE account_id = $1;`, id, next)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}
	return nil
}

func applyBankDeltas(ctx context.Context, tx pgx.Tx, deltas map[int64]decimal.Decimal) error {
	if len(deltas) == 0 {
		return nil
	}
	ids := sortedInt64Keys(deltas)

	rows, err := tx.Query(ctx, `SELECT bank_id, balance FROM banks WHERE bank_id = ANY($1) ORDER BY bank_id FOR UPDATE;`, ids)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock banks", err)
	}
	balances, err := scanInt64Balances(rows)
	if err != nil {
		return err
	}
	if len(balances) != len(ids) {
		return apperrors.NewNotFoundError("bank not found during settlement")
	}

	batch := &pgx.Batch{}
	for _, id := range ids {
		next := balances[id].Add(deltas[id])
		if next.IsNegative() {
			return apperrors.NewAppError(422, fmt.Sprintf("bank %d has insufficient funds", id), apperrors.ErrInsufficientFunds)
		}
		batch.Queue(`UPDATE banks SET balance = $2 WHERE bank_id = $1;`, id, next)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to update bank balances", err)
	}
	return nil
}

func sortedInt64Keys(deltas map[int64]decimal.Decimal) []int64 {
	ids := make([]int64, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func scanInt64Balances(rows pgx.Rows) (map[int64]decimal.Decimal, error) {
	defer rows.Close()
	balances := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var id int64
		var balance decimal.Decimal
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan locked balance row", err)
		}
		balances[id] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked balance rows", err)
	}
	return balances, nil
}
