package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the persistence row for a billable claim. Events holds the
// JSON-encoded event journal.
type Invoice struct {
	InvoiceID             int64           `db:"invoice_id"`
	ReceptorAccountNumber string          `db:"receptor_account_number"`
	PayerAccountNumber    string          `db:"payer_account_number"`
	Amount                decimal.Decimal `db:"amount"`
	DueDate               *time.Time      `db:"due_date"`
	Description           string          `db:"description"`
	Status                string          `db:"status"`
	Events                []byte          `db:"events"`
	CreatedAt             time.Time       `db:"created_at"`
}
