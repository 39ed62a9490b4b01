package services_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn func(ctx context.Context, playerID uuid.UUID) (*domain.User, error)
}

func (m *MockUserRepository) UpsertUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, playerID uuid.UUID) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, playerID)
	}
	args := m.Called(ctx, playerID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock BankRepository ---

type MockBankRepository struct {
	mock.Mock
}

func (m *MockBankRepository) CreateBank(ctx context.Context, bank domain.Bank, funding *domain.Movement) (*domain.Bank, error) {
	args := m.Called(ctx, bank, funding)
	var created *domain.Bank
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.Bank)
	}
	return created, args.Error(1)
}

func (m *MockBankRepository) FindBankByID(ctx context.Context, bankID int64) (*domain.Bank, error) {
	args := m.Called(ctx, bankID)
	var bank *domain.Bank
	if args.Get(0) != nil {
		bank = args.Get(0).(*domain.Bank)
	}
	return bank, args.Error(1)
}

func (m *MockBankRepository) FindBankByName(ctx context.Context, name string) (*domain.Bank, error) {
	args := m.Called(ctx, name)
	var bank *domain.Bank
	if args.Get(0) != nil {
		bank = args.Get(0).(*domain.Bank)
	}
	return bank, args.Error(1)
}

func (m *MockBankRepository) FindBanksByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Bank, error) {
	args := m.Called(ctx, ownerID)
	var banks []domain.Bank
	if args.Get(0) != nil {
		banks = args.Get(0).([]domain.Bank)
	}
	return banks, args.Error(1)
}

func (m *MockBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	args := m.Called(ctx)
	var banks []domain.Bank
	if args.Get(0) != nil {
		banks = args.Get(0).([]domain.Bank)
	}
	return banks, args.Error(1)
}

func (m *MockBankRepository) UpdateBankSettings(ctx context.Context, bank domain.Bank) error {
	args := m.Called(ctx, bank)
	return args.Error(0)
}

func (m *MockBankRepository) DeleteBankCascade(ctx context.Context, bankID int64, treasury domain.Account, actorID uuid.UUID) (*portsrepo.BankDeletionResult, error) {
	args := m.Called(ctx, bankID, treasury, actorID)
	var result *portsrepo.BankDeletionResult
	if args.Get(0) != nil {
		result = args.Get(0).(*portsrepo.BankDeletionResult)
	}
	return result, args.Error(1)
}

var _ portsrepo.BankRepositoryFacade = (*MockBankRepository)(nil)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
	AccountNumberExistsFn func(ctx context.Context, accountNumber string) (bool, error)
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account domain.Account, ownerID uuid.UUID, consumedInvitationID *int64) (*domain.Account, error) {
	args := m.Called(ctx, account, ownerID, consumedInvitationID)
	var created *domain.Account
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.Account)
	}
	return created, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	args := m.Called(ctx, accountNumber)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	args := m.Called(ctx, ownerID)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	if m.AccountNumberExistsFn != nil {
		return m.AccountNumberExistsFn(ctx, accountNumber)
	}
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) FindAccountOwners(ctx context.Context, accountID int64) ([]uuid.UUID, error) {
	args := m.Called(ctx, accountID)
	var owners []uuid.UUID
	if args.Get(0) != nil {
		owners = args.Get(0).([]uuid.UUID)
	}
	return owners, args.Error(1)
}

func (m *MockAccountRepository) IsAccountOwner(ctx context.Context, accountID int64, playerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, accountID, playerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) DeleteAccountCascade(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- Mock InvitationRepository ---

type MockInvitationRepository struct {
	mock.Mock
}

func (m *MockInvitationRepository) CreateAccountInvitation(ctx context.Context, inv domain.AccountInvitation) (*domain.AccountInvitation, error) {
	args := m.Called(ctx, inv)
	var created *domain.AccountInvitation
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.AccountInvitation)
	}
	return created, args.Error(1)
}

func (m *MockInvitationRepository) FindAccountInvitation(ctx context.Context, accountID int64, inviteeID uuid.UUID) (*domain.AccountInvitation, error) {
	args := m.Called(ctx, accountID, inviteeID)
	var inv *domain.AccountInvitation
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.AccountInvitation)
	}
	return inv, args.Error(1)
}

func (m *MockInvitationRepository) ListAccountInvitationsForInvitee(ctx context.Context, inviteeID uuid.UUID) ([]domain.AccountInvitation, error) {
	args := m.Called(ctx, inviteeID)
	var invs []domain.AccountInvitation
	if args.Get(0) != nil {
		invs = args.Get(0).([]domain.AccountInvitation)
	}
	return invs, args.Error(1)
}

func (m *MockInvitationRepository) DeleteAccountInvitation(ctx context.Context, invitationID int64) error {
	args := m.Called(ctx, invitationID)
	return args.Error(0)
}

func (m *MockInvitationRepository) ConsumeAccountInvitation(ctx context.Context, invitationID int64, accountID int64, inviteeID uuid.UUID) error {
	args := m.Called(ctx, invitationID, accountID, inviteeID)
	return args.Error(0)
}

func (m *MockInvitationRepository) CreateBankInvitation(ctx context.Context, inv domain.BankInvitation) (*domain.BankInvitation, error) {
	args := m.Called(ctx, inv)
	var created *domain.BankInvitation
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.BankInvitation)
	}
	return created, args.Error(1)
}

func (m *MockInvitationRepository) FindBankInvitation(ctx context.Context, bankID int64, inviteeID uuid.UUID) (*domain.BankInvitation, error) {
	args := m.Called(ctx, bankID, inviteeID)
	var inv *domain.BankInvitation
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.BankInvitation)
	}
	return inv, args.Error(1)
}

func (m *MockInvitationRepository) DeleteBankInvitation(ctx context.Context, invitationID int64) error {
	args := m.Called(ctx, invitationID)
	return args.Error(0)
}

var _ portsrepo.InvitationRepositoryFacade = (*MockInvitationRepository)(nil)

// --- Mock MovementRepository ---

// MockMovementRepository records every applied movement so tests can
// assert on the exact deltas and history rows a service built.
type MockMovementRepository struct {
	mock.Mock
	Applied []*domain.Movement
}

func (m *MockMovementRepository) ApplyMovement(ctx context.Context, mv *domain.Movement) error {
	args := m.Called(ctx, mv)
	if args.Error(0) == nil {
		m.Applied = append(m.Applied, mv)
	}
	return args.Error(0)
}

// LastApplied returns the most recent movement, or nil when none was
// applied.
func (m *MockMovementRepository) LastApplied() *domain.Movement {
	if len(m.Applied) == 0 {
		return nil
	}
	return m.Applied[len(m.Applied)-1]
}

var _ portsrepo.MovementRepositoryFacade = (*MockMovementRepository)(nil)

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID int64, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID, limit)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) ListBankTransactionsByBank(ctx context.Context, bankID int64, limit int) ([]domain.BankTransaction, error) {
	args := m.Called(ctx, bankID, limit)
	var txns []domain.BankTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.BankTransaction)
	}
	return txns, args.Error(1)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// --- Mock InvoiceRepository ---

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	args := m.Called(ctx, inv)
	var created *domain.Invoice
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.Invoice)
	}
	return created, args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	var inv *domain.Invoice
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invoice)
	}
	return inv, args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoicesByAccount(ctx context.Context, accountNumber string, role portsrepo.InvoiceRole, limit int) ([]domain.Invoice, error) {
	args := m.Called(ctx, accountNumber, role, limit)
	var invs []domain.Invoice
	if args.Get(0) != nil {
		invs = args.Get(0).([]domain.Invoice)
	}
	return invs, args.Error(1)
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

// --- Mock ScheduleRepository ---

type MockScheduleRepository struct {
	mock.Mock
	Logs []domain.ScheduleLog
}

func (m *MockScheduleRepository) CreateSchedulePayment(ctx context.Context, sp domain.SchedulePayment) (*domain.SchedulePayment, error) {
	args := m.Called(ctx, sp)
	var created *domain.SchedulePayment
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.SchedulePayment)
	}
	return created, args.Error(1)
}

func (m *MockScheduleRepository) FindSchedulePaymentByID(ctx context.Context, scheduleID int64) (*domain.SchedulePayment, error) {
	args := m.Called(ctx, scheduleID)
	var sp *domain.SchedulePayment
	if args.Get(0) != nil {
		sp = args.Get(0).(*domain.SchedulePayment)
	}
	return sp, args.Error(1)
}

func (m *MockScheduleRepository) ListSchedulePayments(ctx context.Context, limit int) ([]domain.SchedulePayment, error) {
	args := m.Called(ctx, limit)
	var sps []domain.SchedulePayment
	if args.Get(0) != nil {
		sps = args.Get(0).([]domain.SchedulePayment)
	}
	return sps, args.Error(1)
}

func (m *MockScheduleRepository) ListActiveByDayOfMonth(ctx context.Context, dayOfMonth int) ([]domain.SchedulePayment, error) {
	args := m.Called(ctx, dayOfMonth)
	var sps []domain.SchedulePayment
	if args.Get(0) != nil {
		sps = args.Get(0).([]domain.SchedulePayment)
	}
	return sps, args.Error(1)
}

func (m *MockScheduleRepository) UpdateScheduleStatus(ctx context.Context, scheduleID int64, status domain.ScheduleStatus) error {
	args := m.Called(ctx, scheduleID, status)
	return args.Error(0)
}

func (m *MockScheduleRepository) CreateScheduleLog(ctx context.Context, log domain.ScheduleLog) error {
	args := m.Called(ctx, log)
	if args.Error(0) == nil {
		m.Logs = append(m.Logs, log)
	}
	return args.Error(0)
}

func (m *MockScheduleRepository) ListScheduleLogs(ctx context.Context, scheduleID int64, limit int) ([]domain.ScheduleLog, error) {
	args := m.Called(ctx, scheduleID, limit)
	var logs []domain.ScheduleLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.ScheduleLog)
	}
	return logs, args.Error(1)
}

func (m *MockScheduleRepository) ListRecentScheduleLogs(ctx context.Context, limit int) ([]domain.ScheduleLog, error) {
	args := m.Called(ctx, limit)
	var logs []domain.ScheduleLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.ScheduleLog)
	}
	return logs, args.Error(1)
}

var _ portsrepo.ScheduleRepositoryFacade = (*MockScheduleRepository)(nil)
