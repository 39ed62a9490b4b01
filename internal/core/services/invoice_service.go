package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

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

// InvoiceServiceConfig carries the tax parameters of invoice settlement.
type InvoiceServiceConfig struct {
	// TaxPercent is the government cut taken from every paid invoice.
	TaxPercent decimal.Decimal
	// GovernmentAccountNumber receives the tax cut.
	GovernmentAccountNumber string
}

// invoiceService manages invoices and their settlement.
type invoiceService struct {
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	bankRepo     portsrepo.BankRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
	cfg          InvoiceServiceConfig
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	bankRepo portsrepo.BankRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	movementRepo portsrepo.MovementRepositoryFacade,
	cfg InvoiceServiceConfig,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		accountRepo:  accountRepo,
		bankRepo:     bankRepo,
		userRepo:     userRepo,
		movementRepo: movementRepo,
		cfg:          cfg,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice issues a pending invoice from the receptor account against
// the payer account. The requester must own the receptor account.
func (s *invoiceService) CreateInvoice(ctx context.Context, requesterID uuid.UUID, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	if req.ReceptorAccountNumber == req.PayerAccountNumber {
		return nil, apperrors.NewAppError(400, "an account cannot invoice itself", apperrors.ErrSelfReference)
	}

	receptor, err := s.accountRepo.FindAccountByNumber(ctx, req.ReceptorAccountNumber)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByNumber(ctx, req.PayerAccountNumber); err != nil {
		return nil, err
	}

	isOwner, err := s.accountRepo.IsAccountOwner(ctx, receptor.AccountID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, apperrors.NewAppError(403, "only a receptor account owner may issue invoices", apperrors.ErrUnauthorized)
	}

	actor, err := s.actorName(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	inv := domain.Invoice{
		ReceptorAccountNumber: req.ReceptorAccountNumber,
		PayerAccountNumber:    req.PayerAccountNumber,
		Amount:                req.Amount,
		DueDate:               req.DueDate,
		Description:           req.Description,
		Status:                domain.InvoicePending,
	}
	inv.AddEvent(domain.EventCreated, actor, time.Now().UTC())

	return s.invoiceRepo.CreateInvoice(ctx, inv)
}

// GetInvoice returns an invoice by id.
func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// ListInvoicesByAccount lists the newest invoices on which the account is
// payer or receptor. The requester must own the account.
func (s *invoiceService) ListInvoicesByAccount(ctx context.Context, requesterID uuid.UUID, accountNumber string, role string, limit int) ([]domain.Invoice, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	isOwner, err := s.accountRepo.IsAccountOwner(ctx, account.AccountID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, apperrors.NewAppError(403, "not an owner of account "+accountNumber, apperrors.ErrUnauthorized)
	}

	invoiceRole := portsrepo.RolePayer
	if role == string(portsrepo.RoleReceptor) {
		invoiceRole = portsrepo.RoleReceptor
	}
	return s.invoiceRepo.ListInvoicesByAccount(ctx, accountNumber, invoiceRole, limit)
}

// PayInvoice settles a pending invoice: the payer account is debited the
// amount plus its bank's transfer fee, the receptor receives the amount
// minus the government cut, and the invoice transitions to paid, all in
// one transaction.
func (s *invoiceService) PayInvoice(ctx context.Context, requesterID uuid.UUID, invoiceID int64) (*dto.InvoicePaymentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoicePending {
		return nil, apperrors.NewAppError(409, fmt.Sprintf("invoice %d is already %s", invoiceID, inv.Status), apperrors.ErrAlreadyProcessed)
	}

	payer, err := s.accountRepo.FindAccountByNumber(ctx, inv.PayerAccountNumber)
	if err != nil {
		return nil, err
	}
	receptor, err := s.accountRepo.FindAccountByNumber(ctx, inv.ReceptorAccountNumber)
	if err != nil {
		return nil, err
	}

	isOwner, err := s.accountRepo.IsAccountOwner(ctx, payer.AccountID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, apperrors.NewAppError(403, "only a payer account owner may pay the invoice", apperrors.ErrUnauthorized)
	}

	payerBank, err := s.bankRepo.FindBankByID(ctx, payer.BankID)
	if err != nil {
		return nil, err
	}
	treasury, err := s.accountRepo.FindAccountByNumber(ctx, s.cfg.GovernmentAccountNumber)
	if err != nil {
		return nil, err
	}

	govFee := fees.Amount(inv.Amount, s.cfg.TaxPercent)
	bankFee := fees.Amount(inv.Amount, fees.ResolvePercent(*payer, *payerBank, domain.FeeTransfer))
	debited := inv.Amount.Add(bankFee)
	net := inv.Amount.Sub(govFee)

	if payer.Balance.LessThan(debited) {
		return nil, apperrors.NewAppError(422, "payer account cannot cover amount plus fee", apperrors.ErrInsufficientFunds)
	}

	actor, err := s.actorName(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	inv.Status = domain.InvoicePaid
	inv.AddEvent(domain.EventPaid, actor, now)

	m := domain.NewMovement()
	m.AddAccountDelta(payer.AccountID, debited.Neg())
	m.AddAccountDelta(receptor.AccountID, net)
	if govFee.IsPositive() {
		m.AddAccountDelta(treasury.AccountID, govFee)
		m.LogTransaction(treasury.AccountID, domain.TxnGovernmentFee, govFee, requesterID)
	}
	if bankFee.IsPositive() {
		m.AddBankDelta(payerBank.BankID, bankFee)
		m.LogBankTransaction(payerBank.BankID, domain.TxnTransferFee, bankFee, requesterID)
	}
	m.LogTransaction(payer.AccountID, domain.TxnInvoiceWithdrawal, debited, requesterID)
	m.LogTransaction(receptor.AccountID, domain.TxnInvoiceDeposit, net, requesterID)
	m.Invoice = &domain.InvoiceTransition{
		InvoiceID: inv.InvoiceID,
		Status:    domain.InvoicePaid,
		Events:    inv.Events,
	}

	if err := s.movementRepo.ApplyMovement(ctx, m); err != nil {
		return nil, err
	}

	logger.Info("Invoice paid",
		slog.Int64("invoice_id", invoiceID),
		slog.String("amount", inv.Amount.String()),
		slog.String("government_fee", govFee.String()),
		slog.String("bank_fee", bankFee.String()),
	)
	return &dto.InvoicePaymentResult{
		Invoice:       dto.ToInvoiceResponse(inv),
		Amount:        inv.Amount,
		GovernmentFee: govFee,
		BankFee:       bankFee,
		PayerDebited:  debited,
		NetReceived:   net,
	}, nil
}

// RejectInvoice cancels a pending invoice. No money moves; the status
// transition and the cancelled event are written atomically.
func (s *invoiceService) RejectInvoice(ctx context.Context, requesterID uuid.UUID, invoiceID int64) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status != domain.InvoicePending {
		return nil, apperrors.NewAppError(409, fmt.Sprintf("invoice %d is already %s", invoiceID, inv.Status), apperrors.ErrAlreadyProcessed)
	}

	payer, err := s.accountRepo.FindAccountByNumber(ctx, inv.PayerAccountNumber)
	if err != nil {
		return nil, err
	}
	isOwner, err := s.accountRepo.IsAccountOwner(ctx, payer.AccountID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, apperrors.NewAppError(403, "only a payer account owner may reject the invoice", apperrors.ErrUnauthorized)
	}

	actor, err := s.actorName(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	inv.Status = domain.InvoiceCancelled
	inv.AddEvent(domain.EventCancelled, actor, time.Now().UTC())

	m := domain.NewMovement()
	m.Invoice = &domain.InvoiceTransition{
		InvoiceID: inv.InvoiceID,
		Status:    domain.InvoiceCancelled,
		Events:    inv.Events,
	}
	if err := s.movementRepo.ApplyMovement(ctx, m); err != nil {
		return nil, err
	}
	return inv, nil
}

// actorName resolves the username written into invoice event journals.
func (s *invoiceService) actorName(ctx context.Context, playerID uuid.UUID) (string, error) {
	user, err := s.userRepo.FindUserByID(ctx, playerID)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}
