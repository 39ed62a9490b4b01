package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/middleware"
)

// userService manages player wallets.
type userService struct {
	userRepo     portsrepo.UserRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
	initialMoney decimal.Decimal
}

// NewUserService creates a new user service. New players start with
// initialMoney in their pocket.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade, initialMoney decimal.Decimal) portssvc.UserSvcFacade {
	return &userService{
		userRepo:     userRepo,
		movementRepo: movementRepo,
		initialMoney: initialMoney,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// SyncUser creates the wallet on first contact and refreshes username and
// last-seen on every later call. The balance of a returning player is
// never touched, so the call is idempotent.
func (s *userService) SyncUser(ctx context.Context, playerID uuid.UUID, username string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	user := domain.User{
		PlayerID:   playerID,
		Username:   username,
		Money:      s.initialMoney,
		LastSeenAt: now,
		CreatedAt:  now,
	}
	if err := s.userRepo.UpsertUser(ctx, user); err != nil {
		logger.Error("Failed to sync user", slog.String("player_id", playerID.String()), slog.String("error", err.Error()))
		return nil, err
	}

	return s.userRepo.FindUserByID(ctx, playerID)
}

// GetUserByID returns a wallet by player id.
func (s *userService) GetUserByID(ctx context.Context, playerID uuid.UUID) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, playerID)
}

// GetUserByUsername returns a wallet by its last known username.
func (s *userService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.FindUserByUsername(ctx, username)
}

// CreditWallet adds money to a player's pocket. Used by the game-server
// shim when in-game sources pay out.
func (s *userService) CreditWallet(ctx context.Context, playerID uuid.UUID, amount decimal.Decimal) (*domain.User, error) {
	return s.moveWallet(ctx, playerID, amount, false)
}

// DebitWallet removes money from a player's pocket, failing with
// ErrInsufficientFunds when the balance cannot cover it.
func (s *userService) DebitWallet(ctx context.Context, playerID uuid.UUID, amount decimal.Decimal) (*domain.User, error) {
	return s.moveWallet(ctx, playerID, amount, true)
}

func (s *userService) moveWallet(ctx context.Context, playerID uuid.UUID, amount decimal.Decimal, debit bool) (*domain.User, error) {
	if !amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	delta := amount
	if debit {
		delta = amount.Neg()
	}

	if _, err := s.userRepo.FindUserByID(ctx, playerID); err != nil {
		return nil, err
	}

	m := domain.NewMovement()
	m.AddWalletDelta(playerID, delta)
	if err := s.movementRepo.ApplyMovement(ctx, m); err != nil {
		return nil, err
	}

	return s.userRepo.FindUserByID(ctx, playerID)
}
