package repositories

import (
	"context"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// InvoiceRole selects which side of an invoice an account is on.
type InvoiceRole string

const (
	RolePayer    InvoiceRole = "payer"
	RoleReceptor InvoiceRole = "receptor"
)

// InvoiceRepositoryFacade persists invoices. Status transitions happen
// through movement application, never here.
type InvoiceRepositoryFacade interface {
	CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error)
	FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	ListInvoicesByAccount(ctx context.Context, accountNumber string, role InvoiceRole, limit int) ([]domain.Invoice, error)
}

// ScheduleRepositoryFacade persists recurring payment templates and the
// driver's audit log.
type ScheduleRepositoryFacade interface {
	CreateSchedulePayment(ctx context.Context, sp domain.SchedulePayment) (*domain.SchedulePayment, error)
	FindSchedulePaymentByID(ctx context.Context, scheduleID int64) (*domain.SchedulePayment, error)
	ListSchedulePayments(ctx context.Context, limit int) ([]domain.SchedulePayment, error)
	ListActiveByDayOfMonth(ctx context.Context, dayOfMonth int) ([]domain.SchedulePayment, error)
	UpdateScheduleStatus(ctx context.Context, scheduleID int64, status domain.ScheduleStatus) error

	CreateScheduleLog(ctx context.Context, log domain.ScheduleLog) error
	ListScheduleLogs(ctx context.Context, scheduleID int64, limit int) ([]domain.ScheduleLog, error)
	ListRecentScheduleLogs(ctx context.Context, limit int) ([]domain.ScheduleLog, error)
}
