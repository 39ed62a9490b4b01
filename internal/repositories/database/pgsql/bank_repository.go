package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	"github.com/terratale/ledgerd/internal/models"
	"github.com/terratale/ledgerd/internal/utils/mapping"
)

const uniqueViolationCode = "23505"

type PgxBankRepository struct {
	BaseRepository
}

func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

const bankColumns = `bank_id, name, owner_id, balance, withdraw_fee_percent, deposit_fee_percent, transfer_fee_percent, visibility, created_at`

// CreateBank inserts the bank row and settles the funding movement in one
// database transaction.
func (r *PgxBankRepository) CreateBank(ctx context.Context, bank domain.Bank, funding *domain.Movement) (*domain.Bank, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	query := `
		INSERT INTO banks (name, owner_id, balance, withdraw_fee_percent, deposit_fee_percent, transfer_fee_percent, visibility, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING bank_id;
	`
	var bankID int64
	err = tx.QueryRow(ctx, query,
		bank.Name,
		bank.OwnerID,
		bank.Balance,
		bank.WithdrawFeePercent,
		bank.DepositFeePercent,
		bank.TransferFeePercent,
		string(bank.Visibility),
		now,
	).Scan(&bankID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewAppError(409, "bank name "+bank.Name+" is taken", apperrors.ErrDuplicateName)
		}
		return nil, apperrors.NewAppError(500, "failed to insert bank "+bank.Name, err)
	}

	if funding != nil {
		if err := applyMovement(ctx, tx, funding, now); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	bank.BankID = bankID
	bank.CreatedAt = now
	return &bank, nil
}

// FindBankByID retrieves a bank by id.
func (r *PgxBankRepository) FindBankByID(ctx context.Context, bankID int64) (*domain.Bank, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE bank_id = $1;`
	return r.queryOne(ctx, query, bankID)
}

// FindBankByName retrieves a bank by its unique name.
func (r *PgxBankRepository) FindBankByName(ctx context.Context, name string) (*domain.Bank, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE name = $1;`
	return r.queryOne(ctx, query, name)
}

// FindBanksByOwner lists every bank owned by the player.
func (r *PgxBankRepository) FindBanksByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Bank, error) {
	query := `SELECT ` + bankColumns + ` FROM banks WHERE owner_id = $1 ORDER BY bank_id;`
	return r.queryMany(ctx, query, ownerID)
}

// ListBanks lists every bank.
func (r *PgxBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	query := `SELECT ` + bankColumns + ` FROM banks ORDER BY bank_id;`
	return r.queryMany(ctx, query)
}

// UpdateBankSettings persists the fee schedule and visibility of a bank.
func (r *PgxBankRepository) UpdateBankSettings(ctx context.Context, bank domain.Bank) error {
	query := `
		UPDATE banks
		SET withdraw_fee_percent = $2,
		    deposit_fee_percent = $3,
		    transfer_fee_percent = $4,
		    visibility = $5
		WHERE bank_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		bank.BankID,
		bank.WithdrawFeePercent,
		bank.DepositFeePercent,
		bank.TransferFeePercent,
		string(bank.Visibility),
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update bank %d settings", bank.BankID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bank %d not found for update", bank.BankID))
	}
	return nil
}

// DeleteBankCascade sweeps the residual balances into the treasury account
// and removes the bank with everything hanging off it in one database
// transaction. Balances are read under the same row locks the teardown
// holds, so a deposit racing the deletion either lands before the sweep and
// is swept, or blocks and fails once the account is gone.
func (r *PgxBankRepository) DeleteBankCascade(ctx context.Context, bankID int64, treasury domain.Account, actorID uuid.UUID) (*portsrepo.BankDeletionResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var bankBalance decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT balance FROM banks WHERE bank_id = $1 FOR UPDATE;`, bankID).Scan(&bankBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("bank %d not found for deletion", bankID))
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock bank %d", bankID), err)
	}

	rows, err := tx.Query(ctx, `SELECT account_id, balance FROM bank_accounts WHERE bank_id = $1 ORDER BY account_id FOR UPDATE;`, bankID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to lock accounts of bank %d", bankID), err)
	}
	accounts := []domain.Account{}
	for rows.Next() {
		var acc domain.Account
		if err := rows.Scan(&acc.AccountID, &acc.Balance); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan locked account row", err)
		}
		accounts = append(accounts, acc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating locked account rows", err)
	}

	now := time.Now().UTC()
	sweep, swept := domain.NewBankDeletionSweep(accounts, domain.Bank{BankID: bankID, Balance: bankBalance}, treasury, actorID)
	if sweep != nil {
		if err := applyMovement(ctx, tx, sweep, now); err != nil {
			return nil, err
		}
	}

	accountIDs := make([]int64, 0, len(accounts))
	for _, acc := range accounts {
		accountIDs = append(accountIDs, acc.AccountID)
	}

	if len(accountIDs) > 0 {
		steps := []string{
			`DELETE FROM transactions WHERE account_id = ANY($1);`,
			`DELETE FROM account_invitations WHERE account_id = ANY($1);`,
			`DELETE FROM account_owners WHERE account_id = ANY($1);`,
			`DELETE FROM bank_accounts WHERE account_id = ANY($1);`,
		}
		for _, step := range steps {
			if _, err := tx.Exec(ctx, step, accountIDs); err != nil {
				return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to tear down accounts of bank %d", bankID), err)
			}
		}
	}

	steps := []string{
		`DELETE FROM bank_invitations WHERE bank_id = $1;`,
		`DELETE FROM bank_transactions WHERE bank_id = $1;`,
	}
	for _, step := range steps {
		if _, err := tx.Exec(ctx, step, bankID); err != nil {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to tear down bank %d", bankID), err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM banks WHERE bank_id = $1;`, bankID); err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to delete bank %d", bankID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &portsrepo.BankDeletionResult{AccountsClosed: len(accounts), Swept: swept}, nil
}

func (r *PgxBankRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.Bank, error) {
	var m models.Bank
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.BankID, &m.Name, &m.OwnerID, &m.Balance,
		&m.WithdrawFeePercent, &m.DepositFeePercent, &m.TransferFeePercent,
		&m.Visibility, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank", err)
	}
	bank := mapping.ToDomainBank(m)
	return &bank, nil
}

func (r *PgxBankRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Bank, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query banks", err)
	}
	defer rows.Close()

	banks := []domain.Bank{}
	for rows.Next() {
		var m models.Bank
		if err := rows.Scan(
			&m.BankID, &m.Name, &m.OwnerID, &m.Balance,
			&m.WithdrawFeePercent, &m.DepositFeePercent, &m.TransferFeePercent,
			&m.Visibility, &m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bank row", err)
		}
		banks = append(banks, mapping.ToDomainBank(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bank rows", err)
	}
	return banks, nil
}
