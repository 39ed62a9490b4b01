package services

import (
	"context"
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

// ledgerService settles wallet/account money movements. The fee always
// rides on top of the requested amount and lands with the account's bank.
type ledgerService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	bankRepo     portsrepo.BankRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	accountRepo portsrepo.AccountRepositoryFacade,
	bankRepo portsrepo.BankRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	movementRepo portsrepo.MovementRepositoryFacade,
	txnRepo portsrepo.TransactionRepositoryFacade,
) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo:  accountRepo,
		bankRepo:     bankRepo,
		userRepo:     userRepo,
		movementRepo: movementRepo,
		txnRepo:      txnRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Withdraw moves amount from an account into the requester's wallet.
// The account is debited amount plus fee; the fee stays with the bank.
func (s *ledgerService) Withdraw(ctx context.Context, requesterID uuid.UUID, accountNumber string, amount decimal.Decimal) (*dto.MovementResult, error) {
	account, bank, err := s.resolveOwnedAccount(ctx, requesterID, accountNumber, amount)
	if err != nil {
		return nil, err
	}

	feePercent := fees.ResolvePercent(*account, *bank, domain.FeeWithdraw)
	fee := fees.Amount(amount, feePercent)
	total := amount.Add(fee)

	if account.Balance.LessThan(total) {
		return nil, apperrors.NewAppError(422, "account "+accountNumber+" cannot cover amount plus fee", apperrors.ErrInsufficientFunds)
	}

	m := domain.NewMovement()
	m.AddAccountDelta(account.AccountID, total.Neg())
	m.AddWalletDelta(requesterID, amount)
	if fee.IsPositive() {
		m.AddBankDelta(bank.BankID, fee)
	}
	m.LogTransaction(account.AccountID, domain.TxnWithdraw, total, requesterID)
	m.LogBankTransaction(bank.BankID, domain.TxnWithdraw, total, requesterID)

	if err := s.movementRepo.ApplyMovement(ctx, m); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Withdraw settled",
		slog.String("account_number", accountNumber),
		slog.String("amount", amount.String()),
		slog.String("fee", fee.String()),
	)
	return s.movementResult(ctx, requesterID, accountNumber, amount, fee, feePercent)
}

// Deposit moves amount from the requester's wallet into an account.
// The wallet is debited amount plus fee; the account receives the full
// amount and the fee stays with the bank.
func (s *ledgerService) Deposit(ctx context.Context, requesterID uuid.UUID, accountNumber string, amount decimal.Decimal) (*dto.MovementResult, error) {
	account, bank, err := s.resolveOwnedAccount(ctx, requesterID, accountNumber, amount)
	if err != nil {
		return nil, err
	}

	feePercent := fees.ResolvePercent(*account, *bank, domain.FeeDeposit)
	fee := fees.Amount(amount, feePercent)
	total := amount.Add(fee)

	wallet, err := s.userRepo.FindUserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if wallet.Money.LessThan(total) {
		return nil, apperrors.NewAppError(422, "wallet cannot cover amount plus fee", apperrors.ErrInsufficientFunds)
	}

	m := domain.NewMovement()
	m.AddWalletDelta(requesterID, total.Neg())
	m.AddAccountDelta(account.AccountID, amount)
	if fee.IsPositive() {
		m.AddBankDelta(bank.BankID, fee)
	}
	m.LogTransaction(account.AccountID, domain.TxnDeposit, total, requesterID)
	m.LogBankTransaction(bank.BankID, domain.TxnDeposit, total, requesterID)

	if err := s.movementRepo.ApplyMovement(ctx, m); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Deposit settled",
		slog.String("account_number", accountNumber),
		slog.String("amount", amount.String()),
		slog.String("fee", fee.String()),
	)
	return s.movementResult(ctx, requesterID, accountNumber, amount, fee, feePercent)
}

// Transfer moves amount between two accounts. The source is debited
// amount plus fee; the destination receives the full amount and the fee
// stays with the source's bank.
func (s *ledgerService) Transfer(ctx context.Context, requesterID uuid.UUID, fromNumber, toNumber string, amount decimal.Decimal) (*dto.TransferResult, error) {
	if fromNumber == toNumber {
		return nil, apperrors.NewAppError(400, "cannot transfer to the same account", apperrors.ErrSelfReference)
	}

	from, fromBank, err := s.resolveOwnedAccount(ctx, requesterID, fromNumber, amount)
	if err != nil {
		return nil, err
	}
	to, err := s.accountRepo.FindAccountByNumber(ctx, toNumber)
	if err != nil {
		return nil, err
	}

	feePercent := fees.ResolvePercent(*from, *fromBank, domain.FeeTransfer)
	fee := fees.Amount(amount, feePercent)
	total := amount.Add(fee)

	if from.Balance.LessThan(total) {
		return nil, apperrors.NewAppError(422, "account "+fromNumber+" cannot cover amount plus fee", apperrors.ErrInsufficientFunds)
	}

	m := domain.NewMovement()
	m.AddAccountDelta(from.AccountID, total.Neg())
	m.AddAccountDelta(to.AccountID, amount)
	if fee.IsPositive() {
		m.AddBankDelta(fromBank.BankID, fee)
		m.LogBankTransaction(fromBank.BankID, domain.TxnTransferFee, fee, requesterID)
	}
	m.LogTransaction(from.AccountID, domain.TxnTransferWithdrawal, total, requesterID)
	m.LogTransaction(to.AccountID, domain.TxnTransferDeposit, amount, requesterID)

	if err := s.movementRepo.ApplyMovement(ctx, m); err != nil {
		return nil, err
	}

	middleware.GetLoggerFromCtx(ctx).Info("Transfer settled",
		slog.String("from", fromNumber),
		slog.String("to", toNumber),
		slog.String("amount", amount.String()),
		slog.String("fee", fee.String()),
	)

	fromAfter, err := s.accountRepo.FindAccountByNumber(ctx, fromNumber)
	if err != nil {
		return nil, err
	}
	return &dto.TransferResult{
		FromAccountNumber: fromNumber,
		ToAccountNumber:   toNumber,
		Amount:            amount,
		Fee:               fee,
		FeePercent:        feePercent,
		FromNewBalance:    fromAfter.Balance,
	}, nil
}

// ListAccountTransactions lists the newest history rows of an account the
// requester co-owns.
func (s *ledgerService) ListAccountTransactions(ctx context.Context, requesterID uuid.UUID, accountNumber string, limit int) ([]domain.Transaction, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeAccount(ctx, account, requesterID); err != nil {
		return nil, err
	}
	return s.txnRepo.ListTransactionsByAccount(ctx, account.AccountID, limit)
}

// ListBankTransactions lists the newest history rows of a bank. Owner
// only.
func (s *ledgerService) ListBankTransactions(ctx context.Context, requesterID uuid.UUID, bankID int64, limit int) ([]domain.BankTransaction, error) {
	bank, err := s.bankRepo.FindBankByID(ctx, bankID)
	if err != nil {
		return nil, err
	}
	if bank.OwnerID != requesterID {
		return nil, apperrors.NewAppError(403, "only the bank owner may read its history", apperrors.ErrUnauthorized)
	}
	return s.txnRepo.ListBankTransactionsByBank(ctx, bankID, limit)
}

func (s *ledgerService) resolveOwnedAccount(ctx context.Context, requesterID uuid.UUID, accountNumber string, amount decimal.Decimal) (*domain.Account, *domain.Bank, error) {
	if !amount.IsPositive() {
		return nil, nil, apperrors.NewAppError(400, "amount must be greater than zero", apperrors.ErrInvalidAmount)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorizeAccount(ctx, account, requesterID); err != nil {
		return nil, nil, err
	}

	bank, err := s.bankRepo.FindBankByID(ctx, account.BankID)
	if err != nil {
		return nil, nil, err
	}
	return account, bank, nil
}

func (s *ledgerService) authorizeAccount(ctx context.Context, account *domain.Account, requesterID uuid.UUID) error {
	isOwner, err := s.accountRepo.IsAccountOwner(ctx, account.AccountID, requesterID)
	if err != nil {
		return err
	}
	if !isOwner {
		return apperrors.NewAppError(403, "not an owner of account "+account.AccountNumber, apperrors.ErrUnauthorized)
	}
	return nil
}

func (s *ledgerService) movementResult(ctx context.Context, requesterID uuid.UUID, accountNumber string, amount, fee, feePercent decimal.Decimal) (*dto.MovementResult, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	wallet, err := s.userRepo.FindUserByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return &dto.MovementResult{
		AccountNumber: accountNumber,
		Amount:        amount,
		Fee:           fee,
		FeePercent:    feePercent,
		NewBalance:    account.Balance,
		WalletBalance: wallet.Money,
	}, nil
}
