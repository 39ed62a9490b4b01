package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	"github.com/terratale/ledgerd/internal/models"
	"github.com/terratale/ledgerd/internal/utils/mapping"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, receptor_account_number, payer_account_number, amount, due_date, description, status, events, created_at`

// CreateInvoice inserts a pending invoice with its opening event journal.
func (r *PgxInvoiceRepository) CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	m, err := mapping.ToModelInvoice(inv)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode invoice events", err)
	}
	now := time.Now().UTC()
	query := `
		INSERT INTO invoices (receptor_account_number, payer_account_number, amount, due_date, description, status, events, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING invoice_id;
	`
	err = r.Pool.QueryRow(ctx, query,
		m.ReceptorAccountNumber, m.PayerAccountNumber, m.Amount,
		m.DueDate, m.Description, m.Status, m.Events, now,
	).Scan(&inv.InvoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert invoice", err)
	}
	inv.CreatedAt = now
	return &inv, nil
}

// FindInvoiceByID retrieves an invoice with its decoded event journal.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	var m models.Invoice
	err := r.Pool.QueryRow(ctx, query, invoiceID).Scan(
		&m.InvoiceID, &m.ReceptorAccountNumber, &m.PayerAccountNumber, &m.Amount,
		&m.DueDate, &m.Description, &m.Status, &m.Events, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find invoice %d", invoiceID), err)
	}
	inv, err := mapping.ToDomainInvoice(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to decode events of invoice %d", invoiceID), err)
	}
	return &inv, nil
}

// ListInvoicesByAccount lists the newest invoices in which the account is
// payer or receptor.
func (r *PgxInvoiceRepository) ListInvoicesByAccount(ctx context.Context, accountNumber string, role portsrepo.InvoiceRole, limit int) ([]domain.Invoice, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	column := "payer_account_number"
	if role == portsrepo.RoleReceptor {
		column = "receptor_account_number"
	}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` + column + ` = $1 ORDER BY invoice_id DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, accountNumber, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices for account "+accountNumber, err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(
			&m.InvoiceID, &m.ReceptorAccountNumber, &m.PayerAccountNumber, &m.Amount,
			&m.DueDate, &m.Description, &m.Status, &m.Events, &m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		inv, err := mapping.ToDomainInvoice(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to decode events of invoice %d", m.InvoiceID), err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return invoices, nil
}
