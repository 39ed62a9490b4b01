// Package portssvc declares the service facades the transport layer
// depends on.
package portssvc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/core/domain"
	"github.com/terratale/ledgerd/internal/dto"
)

// UserSvcFacade manages player wallets.
type UserSvcFacade interface {
	// SyncUser creates the player on first contact and refreshes the
	// username and last-seen timestamp on every later call.
	SyncUser(ctx context.Context, playerID uuid.UUID, username string) (*domain.User, error)
	GetUserByID(ctx context.Context, playerID uuid.UUID) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	CreditWallet(ctx context.Context, playerID uuid.UUID, amount decimal.Decimal) (*domain.User, error)
	DebitWallet(ctx context.Context, playerID uuid.UUID, amount decimal.Decimal) (*domain.User, error)
}

// BankSvcFacade manages player-owned banks.
type BankSvcFacade interface {
	CreateBank(ctx context.Context, ownerID uuid.UUID, req dto.CreateBankRequest) (*domain.Bank, error)
	GetBank(ctx context.Context, bankID int64) (*domain.Bank, error)
	GetBankByName(ctx context.Context, name string) (*domain.Bank, error)
	ListBanks(ctx context.Context, requesterID uuid.UUID) ([]domain.Bank, error)
	UpdateBankSettings(ctx context.Context, bankID int64, requesterID uuid.UUID, req dto.UpdateBankRequest) (*domain.Bank, error)
	DeleteBank(ctx context.Context, bankID int64, requesterID uuid.UUID) (*dto.BankDeletionSummary, error)
	InviteToBank(ctx context.Context, bankID int64, inviterID, inviteeID uuid.UUID) (*domain.BankInvitation, error)
}

// AccountSvcFacade manages bank accounts and their co-owner invitations.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, requesterID uuid.UUID, bankName string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string, requesterID uuid.UUID) (*domain.Account, error)
	ListAccountsByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error)
	DeleteAccount(ctx context.Context, accountNumber string, requesterID uuid.UUID) error
	InviteToAccount(ctx context.Context, accountNumber string, inviterID, inviteeID uuid.UUID) (*domain.AccountInvitation, error)
	AcceptAccountInvitation(ctx context.Context, accountNumber string, inviteeID uuid.UUID) error
	RejectAccountInvitation(ctx context.Context, accountNumber string, inviteeID uuid.UUID) error
	ListInvitationsForInvitee(ctx context.Context, inviteeID uuid.UUID) ([]domain.AccountInvitation, error)
}

// LedgerSvcFacade settles movements between wallets and accounts.
type LedgerSvcFacade interface {
	Withdraw(ctx context.Context, requesterID uuid.UUID, accountNumber string, amount decimal.Decimal) (*dto.MovementResult, error)
	Deposit(ctx context.Context, requesterID uuid.UUID, accountNumber string, amount decimal.Decimal) (*dto.MovementResult, error)
	Transfer(ctx context.Context, requesterID uuid.UUID, fromNumber, toNumber string, amount decimal.Decimal) (*dto.TransferResult, error)
	ListAccountTransactions(ctx context.Context, requesterID uuid.UUID, accountNumber string, limit int) ([]domain.Transaction, error)
	ListBankTransactions(ctx context.Context, requesterID uuid.UUID, bankID int64, limit int) ([]domain.BankTransaction, error)
}

// InvoiceSvcFacade manages invoices and their settlement.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, requesterID uuid.UUID, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	ListInvoicesByAccount(ctx context.Context, requesterID uuid.UUID, accountNumber string, role string, limit int) ([]domain.Invoice, error)
	PayInvoice(ctx context.Context, requesterID uuid.UUID, invoiceID int64) (*dto.InvoicePaymentResult, error)
	RejectInvoice(ctx context.Context, requesterID uuid.UUID, invoiceID int64) (*domain.Invoice, error)
}

// ScheduleSvcFacade manages recurring payments and the daily driver.
type ScheduleSvcFacade interface {
	CreateSchedule(ctx context.Context, requesterID uuid.UUID, req dto.CreateScheduleRequest) (*domain.SchedulePayment, error)
	GetSchedule(ctx context.Context, scheduleID int64) (*domain.SchedulePayment, error)
	ListSchedules(ctx context.Context, requesterID uuid.UUID) ([]domain.SchedulePayment, error)
	SetScheduleStatus(ctx context.Context, requesterID uuid.UUID, scheduleID int64, status domain.ScheduleStatus) (*domain.SchedulePayment, error)
	ListScheduleLogs(ctx context.Context, scheduleID int64, limit int) ([]domain.ScheduleLog, error)
	ListRecentLogs(ctx context.Context, limit int) ([]domain.ScheduleLog, error)
	// RunDue generates invoices for every active schedule whose day of
	// month matches today. One failing schedule never blocks the rest.
	RunDue(ctx context.Context, today time.Time) (*dto.ScheduleRunSummary, error)
}

// ServiceProvider bundles every service facade for handler wiring.
type ServiceProvider struct {
	UserSvc     UserSvcFacade
	BankSvc     BankSvcFacade
	AccountSvc  AccountSvcFacade
	LedgerSvc   LedgerSvcFacade
	InvoiceSvc  InvoiceSvcFacade
	ScheduleSvc ScheduleSvcFacade
}
