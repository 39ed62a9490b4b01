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

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	"github.com/terratale/ledgerd/internal/models"
	"github.com/terratale/ledgerd/internal/utils/mapping"
)

type PgxInvitationRepository struct {
	BaseRepository
}

func newPgxInvitationRepository(pool *pgxpool.Pool) portsrepo.InvitationRepositoryFacade {
	return &PgxInvitationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvitationRepositoryFacade = (*PgxInvitationRepository)(nil)

// CreateAccountInvitation inserts a pending co-owner offer.
func (r *PgxInvitationRepository) CreateAccountInvitation(ctx context.Context, inv domain.AccountInvitation) (*domain.AccountInvitation, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO account_invitations (account_id, invitee_id, inviter_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING invitation_id;
	`
	err := r.Pool.QueryRow(ctx, query, inv.AccountID, inv.InviteeID, inv.InviterID, now).Scan(&inv.InvitationID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewAppError(409, "invitation already pending", apperrors.ErrDuplicateInvite)
		}
		return nil, apperrors.NewAppError(500, "failed to insert account invitation", err)
	}
	inv.CreatedAt = now
	return &inv, nil
}

// FindAccountInvitation retrieves the pending offer for an invitee on an
// account, if any.
func (r *PgxInvitationRepository) FindAccountInvitation(ctx context.Context, accountID int64, inviteeID uuid.UUID) (*domain.AccountInvitation, error) {
	query := `
		SELECT invitation_id, account_id, invitee_id, inviter_id, created_at
		FROM account_invitations
		WHERE account_id = $1 AND invitee_id = $2;
	`
	var m models.AccountInvitation
	err := r.Pool.QueryRow(ctx, query, accountID, inviteeID).Scan(
		&m.InvitationID, &m.AccountID, &m.InviteeID, &m.InviterID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account invitation", err)
	}
	inv := mapping.ToDomainAccountInvitation(m)
	return &inv, nil
}

// ListAccountInvitationsForInvitee lists every pending offer for a player.
func (r *PgxInvitationRepository) ListAccountInvitationsForInvitee(ctx context.Context, inviteeID uuid.UUID) ([]domain.AccountInvitation, error) {
	query := `
		SELECT invitation_id, account_id, invitee_id, inviter_id, created_at
		FROM account_invitations
		WHERE invitee_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, inviteeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account invitations", err)
	}
	defer rows.Close()

	invs := []domain.AccountInvitation{}
	for rows.Next() {
		var m models.AccountInvitation
		if err := rows.Scan(&m.InvitationID, &m.AccountID, &m.InviteeID, &m.InviterID, &m.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account invitation row", err)
		}
		invs = append(invs, mapping.ToDomainAccountInvitation(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account invitation rows", err)
	}
	return invs, nil
}

// DeleteAccountInvitation removes a pending offer.
func (r *PgxInvitationRepository) DeleteAccountInvitation(ctx context.Context, invitationID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM account_invitations WHERE invitation_id = $1;`, invitationID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete account invitation %d", invitationID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ConsumeAccountInvitation creates the ownership link and deletes the
// invitation in one database transaction, so an offer is accepted at most
// once.
func (r *PgxInvitationRepository) ConsumeAccountInvitation(ctx context.Context, invitationID int64, accountID int64, inviteeID uuid.UUID) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `DELETE FROM account_invitations WHERE invitation_id = $1;`, invitationID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to consume invitation %d", invitationID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	_, err = tx.Exec(ctx, `INSERT INTO account_owners (account_id, owner_id, created_at) VALUES ($1, $2, $3);`,
		accountID, inviteeID, time.Now().UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.NewAppError(409, "player already owns the account", apperrors.ErrAlreadyOwner)
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to link invitee to account %d", accountID), err)
	}

	return r.Commit(ctx, tx)
}

// CreateBankInvitation inserts a pending private-bank offer.
func (r *PgxInvitationRepository) CreateBankInvitation(ctx context.Context, inv domain.BankInvitation) (*domain.BankInvitation, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO bank_invitations (bank_id, invitee_id, inviter_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING invitation_id;
	`
	err := r.Pool.QueryRow(ctx, query, inv.BankID, inv.InviteeID, inv.InviterID, now).Scan(&inv.InvitationID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.NewAppError(409, "invitation already pending", apperrors.ErrDuplicateInvite)
		}
		return nil, apperrors.NewAppError(500, "failed to insert bank invitation", err)
	}
	inv.CreatedAt = now
	return &inv, nil
}

// FindBankInvitation retrieves the pending offer for an invitee at a
// bank, if any.
func (r *PgxInvitationRepository) FindBankInvitation(ctx context.Context, bankID int64, inviteeID uuid.UUID) (*domain.BankInvitation, error) {
	query := `
		SELECT invitation_id, bank_id, invitee_id, inviter_id, created_at
		FROM bank_invitations
		WHERE bank_id = $1 AND invitee_id = $2;
	`
	var m models.BankInvitation
	err := r.Pool.QueryRow(ctx, query, bankID, inviteeID).Scan(
		&m.InvitationID, &m.BankID, &m.InviteeID, &m.InviterID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find bank invitation", err)
	}
	inv := mapping.ToDomainBankInvitation(m)
	return &inv, nil
}

// DeleteBankInvitation removes a pending bank offer.
func (r *PgxInvitationRepository) DeleteBankInvitation(ctx context.Context, invitationID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM bank_invitations WHERE invitation_id = $1;`, invitationID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete bank invitation %d", invitationID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
