package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/dto"
	"github.com/terratale/ledgerd/internal/middleware"
	"github.com/terratale/ledgerd/internal/utils/fees"
)

// BankServiceConfig carries the economy parameters of the bank lifecycle.
type BankServiceConfig struct {
	// CreationCost is charged from the founder's wallet into the
	// government account.
	CreationCost decimal.Decimal
	// GovernmentAccountNumber is the treasury account receiving creation
	// costs and teardown sweeps.
	GovernmentAccountNumber string
	// MaxBanksPerOwner caps how many banks one player may found.
	MaxBanksPerOwner int
}

// bankService manages the lifecycle of player-owned banks.
type bankService struct {
	bankRepo       portsrepo.BankRepositoryFacade
	accountRepo    portsrepo.AccountRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	invitationRepo portsrepo.InvitationRepositoryFacade
	cfg            BankServiceConfig
}

// NewBankService creates a new bank service.
func NewBankService(
	bankRepo portsrepo.BankRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	invitationRepo portsrepo.InvitationRepositoryFacade,
	cfg BankServiceConfig,
) portssvc.BankSvcFacade {
	if cfg.MaxBanksPerOwner <= 0 {
		cfg.MaxBanksPerOwner = 1
	}
	return &bankService{
		bankRepo:       bankRepo,
		accountRepo:    accountRepo,
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
		cfg:            cfg,
	}
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

// CreateBank founds a bank: it checks the name, the ownership cap, and the
// founder's wallet, then inserts the bank and settles the creation cost
// into the government account in one transaction.
func (s *bankService) CreateBank(ctx context.Context, ownerID uuid.UUID, req dto.CreateBankRequest) (*domain.Bank, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.bankRepo.FindBankByName(ctx, req.Name); err == nil {
		return nil, apperrors.NewAppError(409, "bank name "+req.Name+" is taken", apperrors.ErrDuplicateName)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	owned, err := s.bankRepo.FindBanksByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(owned) >= s.cfg.MaxBanksPerOwner {
		return nil, apperrors.NewAppError(409, "bank ownership limit reached", apperrors.ErrOwnerLimitExceeded)
	}

	owner, err := s.userRepo.FindUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.Money.LessThan(s.cfg.CreationCost) {
		return nil, apperrors.NewAppError(422, "wallet cannot cover the bank creation cost", apperrors.ErrInsufficientFunds)
	}

	visibility := domain.VisibilityPublic
	if req.Visibility == string(domain.VisibilityPrivate) {
		visibility = domain.VisibilityPrivate
	}
	bank := domain.Bank{
		Name:       req.Name,
		OwnerID:    ownerID,
		Balance:    decimal.Zero,
		Visibility: visibility,
	}

	var funding *domain.Movement
	if s.cfg.CreationCost.IsPositive() {
		treasury, err := s.accountRepo.FindAccountByNumber(ctx, s.cfg.GovernmentAccountNumber)
		if err != nil {
			logger.Error("Treasury account missing", slog.String("account_number", s.cfg.GovernmentAccountNumber))
			return nil, err
		}
		funding = domain.NewMovement()
		funding.AddWalletDelta(ownerID, s.cfg.CreationCost.Neg())
		funding.AddAccountDelta(treasury.AccountID, s.cfg.CreationCost)
		funding.LogTransaction(treasury.AccountID, domain.TxnBankCreation, s.cfg.CreationCost, ownerID)
	}

	created, err := s.bankRepo.CreateBank(ctx, bank, funding)
	if err != nil {
		return nil, err
	}
	logger.Info("Bank created", slog.Int64("bank_id", created.BankID), slog.String("name", created.Name))
	return created, nil
}

// GetBank returns a bank by id.
func (s *bankService) GetBank(ctx context.Context, bankID int64) (*domain.Bank, error) {
	return s.bankRepo.FindBankByID(ctx, bankID)
}

// GetBankByName returns a bank by its unique name.
func (s *bankService) GetBankByName(ctx context.Context, name string) (*domain.Bank, error) {
	return s.bankRepo.FindBankByName(ctx, name)
}

// ListBanks lists the banks visible to the requester: every public bank
// plus private banks the requester owns or is invited to.
func (s *bankService) ListBanks(ctx context.Context, requesterID uuid.UUID) ([]domain.Bank, error) {
	banks, err := s.bankRepo.ListBanks(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.Bank, 0, len(banks))
	for _, bank := range banks {
		if bank.Visibility == domain.VisibilityPublic || bank.OwnerID == requesterID {
			visible = append(visible, bank)
			continue
		}
		if _, err := s.invitationRepo.FindBankInvitation(ctx, bank.BankID, requesterID); err == nil {
			visible = append(visible, bank)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return visible, nil
}

// UpdateBankSettings changes fee percentages or visibility. Owner only;
// nil fields keep their current value.
func (s *bankService) UpdateBankSettings(ctx context.Context, bankID int64, requesterID uuid.UUID, req dto.UpdateBankRequest) (*domain.Bank, error) {
	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if bank.OwnerID != requesterID {
		return nil, apperrors.NewAppError(403, "only the bank owner may change settings", apperrors.ErrUnauthorized)
	}

	for _, pct := range []*decimal.Decimal{req.WithdrawFeePercent, req.DepositFeePercent, req.TransferFeePercent} {
		if pct != nil && !fees.ValidPercent(*pct) {
			return nil, apperrors.NewAppError(400, "fee percent must be between 0 and 100", apperrors.ErrValidation)
		}
	}

	if req.WithdrawFeePercent != nil {
		bank.WithdrawFeePercent = *req.WithdrawFeePercent
	}
	if req.DepositFeePercent != nil {
		bank.DepositFeePercent = *req.DepositFeePercent
	}
	if req.TransferFeePercent != nil {
		bank.TransferFeePercent = *req.TransferFeePercent
	}
	if req.Visibility != nil {
		switch *req.Visibility {
		case string(domain.VisibilityPublic), string(domain.VisibilityPrivate):
			bank.Visibility = domain.BankVisibility(*req.Visibility)
		default:
			return nil, apperrors.NewAppError(400, "visibility must be public or private", apperrors.ErrValidation)
		}
	}

	if err := s.bankRepo.UpdateBankSettings(ctx, *bank); err != nil {
		return nil, err
	}
	return bank, nil
}

// DeleteBank tears a bank down: every residual account balance and the
// bank's own balance are swept into the government account, then the bank
// and everything hanging off it is removed in one transaction.
func (s *bankService) DeleteBank(ctx context.Context, bankID int64, requesterID uuid.UUID) (*dto.BankDeletionSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if bank.OwnerID != requesterID {
		return nil, apperrors.NewAppError(403, "only the bank owner may delete the bank", apperrors.ErrUnauthorized)
	}

	treasury, err := s.accountRepo.FindAccountByNumber(ctx, s.cfg.GovernmentAccountNumber)
	if err != nil {
		return nil, err
	}
	if treasury.BankID == bankID {
		return nil, apperrors.NewAppError(400, "the bank holding the government account cannot be deleted", apperrors.ErrValidation)
	}

	result, err := s.bankRepo.DeleteBankCascade(ctx, bankID, *treasury, requesterID)
	if err != nil {
		return nil, err
	}

	logger.Info("Bank deleted",
		slog.Int64("bank_id", bankID),
		slog.Int("accounts_closed", result.AccountsClosed),
		slog.String("swept", result.Swept.String()),
	)
	return &dto.BankDeletionSummary{
		BankID:          bankID,
		Name:            bank.Name,
		AccountsClosed:  result.AccountsClosed,
		SweptToTreasury: result.Swept,
	}, nil
}

// InviteToBank offers a player an account opening at a private bank.
func (s *bankService) InviteToBank(ctx context.Context, bankID int64, inviterID, inviteeID uuid.UUID) (*domain.BankInvitation, error) {
	if inviterID == inviteeID {
		return nil, apperrors.NewAppError(400, "cannot invite yourself", apperrors.ErrSelfReference)
	}

	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if bank.OwnerID != inviterID {
		return nil, apperrors.NewAppError(403, "only the bank owner may invite", apperrors.ErrUnauthorized)
	}
	if bank.Visibility != domain.VisibilityPrivate {
		return nil, apperrors.NewAppError(400, "public banks do not need invitations", apperrors.ErrValidation)
	}

	if _, err := s.userRepo.FindUserByID(ctx, inviteeID); err != nil {
		return nil, err
	}

	return s.invitationRepo.CreateBankInvitation(ctx, domain.BankInvitation{
		BankID:    bankID,
		InviteeID: inviteeID,
		InviterID: inviterID,
	})
}
