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
	"github.com/terratale/ledgerd/internal/middleware"
	"github.com/terratale/ledgerd/internal/utils/accountnumber"
)

// accountService manages bank accounts, their co-owners, and the
// invitation flow between them.
type accountService struct {
	accountRepo    portsrepo.AccountRepositoryFacade
	bankRepo       portsrepo.BankRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	invitationRepo portsrepo.InvitationRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	bankRepo portsrepo.BankRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	invitationRepo portsrepo.InvitationRepositoryFacade,
) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:    accountRepo,
		bankRepo:       bankRepo,
		userRepo:       userRepo,
		invitationRepo: invitationRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens an account at the named bank. Private banks require
// a pending invitation, which is consumed in the same transaction that
// creates the account.
func (s *accountService) CreateAccount(ctx context.Context, requesterID uuid.UUID, bankName string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	bank, err := s.bankRepo.FindBankByName(ctx, bankName)
	if err != nil {
		return nil, err
	}

	var consumedInvitationID *int64
	if bank.Visibility == domain.VisibilityPrivate && bank.OwnerID != requesterID {
		inv, err := s.invitationRepo.FindBankInvitation(ctx, bank.BankID, requesterID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewAppError(403, "bank "+bankName+" requires an invitation", apperrors.ErrNotInvited)
			}
			return nil, err
		}
		consumedInvitationID = &inv.InvitationID
	}

	number, err := accountnumber.Generate(ctx, bank.Name, bank.BankID, s.accountRepo.AccountNumberExists)
	if err != nil {
		return nil, err
	}

	account := domain.Account{
		BankID:        bank.BankID,
		AccountNumber: number,
		Balance:       decimal.Zero,
	}
	created, err := s.accountRepo.CreateAccount(ctx, account, requesterID, consumedInvitationID)
	if err != nil {
		return nil, err
	}

	logger.Info("Account opened",
		slog.Int64("account_id", created.AccountID),
		slog.String("account_number", created.AccountNumber),
		slog.Int64("bank_id", bank.BankID),
	)
	return created, nil
}

// GetAccountByNumber returns an account, owners and the owning bank's
// owner only.
func (s *accountService) GetAccountByNumber(ctx context.Context, accountNumber string, requesterID uuid.UUID) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccountAccess(ctx, account, requesterID); err != nil {
		return nil, err
	}
	return account, nil
}

// ListAccountsByOwner lists every account the player co-owns.
func (s *accountService) ListAccountsByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	return s.accountRepo.FindAccountsByOwner(ctx, ownerID)
}

// DeleteAccount closes an emptied account. Only the owner of the bank may
// close accounts, and never one that still holds a balance.
func (s *accountService) DeleteAccount(ctx context.Context, accountNumber string, requesterID uuid.UUID) error {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	bank, err := s.bankRepo.FindBankByID(ctx, account.BankID)
	if err != nil {
		return err
	}
	if bank.OwnerID != requesterID {
		return apperrors.NewAppError(403, "only the bank owner may close accounts", apperrors.ErrUnauthorized)
	}
	if !account.Balance.IsZero() {
		return apperrors.NewAppError(409, "account "+accountNumber+" still holds a balance", apperrors.ErrAccountNotEmpty)
	}
	return s.accountRepo.DeleteAccountCascade(ctx, account.AccountID)
}

// InviteToAccount offers co-ownership of an account to another player.
// Only the owner of the account's bank may extend the offer.
func (s *accountService) InviteToAccount(ctx context.Context, accountNumber string, inviterID, inviteeID uuid.UUID) (*domain.AccountInvitation, error) {
	if inviterID == inviteeID {
		return nil, apperrors.NewAppError(400, "cannot invite yourself", apperrors.ErrSelfReference)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	bank, err := s.bankRepo.FindBankByID(ctx, account.BankID)
	if err != nil {
		return nil, err
	}
	if bank.OwnerID != inviterID {
		return nil, apperrors.NewAppError(403, "only the bank owner may invite to an account", apperrors.ErrUnauthorized)
	}

	if _, err := s.userRepo.FindUserByID(ctx, inviteeID); err != nil {
		return nil, err
	}

	alreadyOwner, err := s.accountRepo.IsAccountOwner(ctx, account.AccountID, inviteeID)
	if err != nil {
		return nil, err
	}
	if alreadyOwner {
		return nil, apperrors.NewAppError(409, "player already owns the account", apperrors.ErrAlreadyOwner)
	}

	return s.invitationRepo.CreateAccountInvitation(ctx, domain.AccountInvitation{
		AccountID: account.AccountID,
		InviteeID: inviteeID,
		InviterID: inviterID,
	})
}

// AcceptAccountInvitation consumes the pending offer and links the invitee
// as co-owner. A second accept finds no invitation and fails.
func (s *accountService) AcceptAccountInvitation(ctx context.Context, accountNumber string, inviteeID uuid.UUID) error {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	inv, err := s.invitationRepo.FindAccountInvitation(ctx, account.AccountID, inviteeID)
	if err != nil {
		return err
	}
	return s.invitationRepo.ConsumeAccountInvitation(ctx, inv.InvitationID, account.AccountID, inviteeID)
}

// RejectAccountInvitation drops the pending offer without linking.
func (s *accountService) RejectAccountInvitation(ctx context.Context, accountNumber string, inviteeID uuid.UUID) error {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	inv, err := s.invitationRepo.FindAccountInvitation(ctx, account.AccountID, inviteeID)
	if err != nil {
		return err
	}
	return s.invitationRepo.DeleteAccountInvitation(ctx, inv.InvitationID)
}

// ListInvitationsForInvitee lists the player's pending co-owner offers.
func (s *accountService) ListInvitationsForInvitee(ctx context.Context, inviteeID uuid.UUID) ([]domain.AccountInvitation, error) {
	return s.invitationRepo.ListAccountInvitationsForInvitee(ctx, inviteeID)
}

func (s *accountService) authorizeAccountAccess(ctx context.Context, account *domain.Account, requesterID uuid.UUID) error {
	isOwner, err := s.accountRepo.IsAccountOwner(ctx, account.AccountID, requesterID)
	if err != nil {
		return err
	}
	if isOwner {
		return nil
	}
	bank, err := s.bankRepo.FindBankByID(ctx, account.BankID)
	if err != nil {
		return err
	}
	if bank.OwnerID == requesterID {
		return nil
	}
	return apperrors.NewAppError(403, "not an owner of account "+account.AccountNumber, apperrors.ErrUnauthorized)
}
