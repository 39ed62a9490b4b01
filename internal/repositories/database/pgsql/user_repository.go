package pgsql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	"github.com/terratale/ledgerd/internal/models"
	"github.com/terratale/ledgerd/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// UpsertUser inserts a wallet row or, for a returning player, refreshes
// the username and last-seen timestamp without touching the balance.
func (r *PgxUserRepository) UpsertUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (player_id, username, money, last_seen_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id) DO UPDATE
		SET username = EXCLUDED.username,
		    last_seen_at = EXCLUDED.last_seen_at;
	`
	_, err := r.Pool.Exec(ctx, query, m.PlayerID, m.Username, m.Money, m.LastSeenAt, m.CreatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert user "+m.PlayerID.String(), err)
	}
	return nil
}

// FindUserByID retrieves a wallet by player id.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, playerID uuid.UUID) (*domain.User, error) {
	query := `
		SELECT player_id, username, money, last_seen_at, created_at
		FROM users
		WHERE player_id = $1;
	`
	var m models.User
	err := r.Pool.QueryRow(ctx, query, playerID).Scan(
		&m.PlayerID, &m.Username, &m.Money, &m.LastSeenAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+playerID.String(), err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// FindUserByUsername retrieves a wallet by its last known username.
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT player_id, username, money, last_seen_at, created_at
		FROM users
		WHERE username = $1;
	`
	var m models.User
	err := r.Pool.QueryRow(ctx, query, username).Scan(
		&m.PlayerID, &m.Username, &m.Money, &m.LastSeenAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user by username "+username, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}
