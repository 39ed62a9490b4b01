package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchedulePayment is the persistence row for a recurring invoice template.
type SchedulePayment struct {
	ScheduleID            int64           `db:"schedule_id"`
	ReceptorAccountNumber string          `db:"receptor_account_number"`
	PayerAccountNumber    string          `db:"payer_account_number"`
	Description           string          `db:"description"`
	DayOfMonth            int             `db:"day_of_month"`
	DueDays               int             `db:"due_days"`
	Amount                decimal.Decimal `db:"amount"`
	Status                string          `db:"status"`
	CreatedAt             time.Time       `db:"created_at"`
}

// ScheduleLog is the persistence row for one driver execution record.
type ScheduleLog struct {
	LogID      int64     `db:"log_id"`
	ScheduleID int64     `db:"schedule_id"`
	InvoiceID  *int64    `db:"invoice_id"`
	Status     string    `db:"status"`
	Message    string    `db:"message"`
	ExecutedAt time.Time `db:"executed_at"`
}
