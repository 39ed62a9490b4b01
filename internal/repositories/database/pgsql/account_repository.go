package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	"github.com/terratale/ledgerd/internal/models"
	"github.com/terratale/ledgerd/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, bank_id, account_number, balance, withdraw_fee_percent, deposit_fee_percent, transfer_fee_percent, created_at`

// CreateAccount inserts the account, its first ownership link, and deletes
// the consumed bank invitation when one is given, in one database
// transaction.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account domain.Account, ownerID uuid.UUID, consumedInvitationID *int64) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now().UTC()
	query := `
		INSERT INTO bank_accounts (bank_id, account_number, balance, withdraw_fee_percent, deposit_fee_percent, transfer_fee_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING account_id;
	`
	var accountID int64
	err = tx.QueryRow(ctx, query,
		account.BankID,
		account.AccountNumber,
		account.Balance,
		account.WithdrawFeePercent,
		account.DepositFeePercent,
		account.TransferFeePercent,
		now,
	).Scan(&accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert account "+account.AccountNumber, err)
	}

	_, err = tx.Exec(ctx, `INSERT INTO account_owners (account_id, owner_id, created_at) VALUES ($1, $2, $3);`,
		accountID, ownerID, now)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to link owner to account "+account.AccountNumber, err)
	}

	if consumedInvitationID != nil {
		_, err = tx.Exec(ctx, `DELETE FROM bank_invitations WHERE invitation_id = $1;`, *consumedInvitationID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to consume bank invitation", err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	account.AccountID = accountID
	account.CreatedAt = now
	return &account, nil
}

// FindAccountByID retrieves an account by id.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_id = $1;`
	return r.queryOne(ctx, query, accountID)
}

// FindAccountByNumber retrieves an account by its unique number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM bank_accounts WHERE account_number = $1;`
	return r.queryOne(ctx, query, accountNumber)
}

// FindAccountsByOwner lists every account the player co-owns.
func (r *PgxAccountRepository) FindAccountsByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	query := `
		SELECT a.account_id, a.bank_id, a.account_number, a.balance,
		       a.withdraw_fee_percent, a.deposit_fee_percent, a.transfer_fee_percent, a.created_at
		FROM bank_accounts a
		JOIN account_owners o ON o.account_id = a.account_id
		WHERE o.owner_id = $1
		ORDER BY a.account_id;
	`
	return r.queryMany(ctx, query, ownerID)
}

// AccountNumberExists reports whether the number is already assigned.
func (r *PgxAccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bank_accounts WHERE account_number = $1);`, accountNumber).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check account number "+accountNumber, err)
	}
	return exists, nil
}

// FindAccountOwners lists the player ids co-owning an account.
func (r *PgxAccountRepository) FindAccountOwners(ctx context.Context, accountID int64) ([]uuid.UUID, error) {
	rows, err := r.Pool.Query(ctx, `SELECT owner_id FROM account_owners WHERE account_id = $1 ORDER BY created_at;`, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query owners of account %d", accountID), err)
	}
	defer rows.Close()

	owners := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account owner row", err)
		}
		owners = append(owners, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account owner rows", err)
	}
	return owners, nil
}

// IsAccountOwner reports whether the player co-owns the account.
func (r *PgxAccountRepository) IsAccountOwner(ctx context.Context, accountID int64, playerID uuid.UUID) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM account_owners WHERE account_id = $1 AND owner_id = $2);`,
		accountID, playerID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to check ownership of account %d", accountID), err)
	}
	return exists, nil
}

// DeleteAccountCascade removes ownership links, pending invitations,
// history, and the account row in one database transaction.
func (r *PgxAccountRepository) DeleteAccountCascade(ctx context.Context, accountID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	steps := []string{
		`DELETE FROM transactions WHERE account_id = $1;`,
		`DELETE FROM account_invitations WHERE account_id = $1;`,
		`DELETE FROM account_owners WHERE account_id = $1;`,
	}
	for _, step := range steps {
		if _, err := tx.Exec(ctx, step, accountID); err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to tear down account %d", accountID), err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM bank_accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete account %d", accountID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account %d not found for deletion", accountID))
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	var m models.BankAccount
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&m.AccountID, &m.BankID, &m.AccountNumber, &m.Balance,
		&m.WithdrawFeePercent, &m.DepositFeePercent, &m.TransferFeePercent, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account", err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var m models.BankAccount
		if err := rows.Scan(
			&m.AccountID, &m.BankID, &m.AccountNumber, &m.Balance,
			&m.WithdrawFeePercent, &m.DepositFeePercent, &m.TransferFeePercent, &m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}
