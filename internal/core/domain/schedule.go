package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleStatus controls whether a template is materialized by the driver.
type ScheduleStatus string

const (
	ScheduleActive ScheduleStatus = "active"
	SchedulePaused ScheduleStatus = "paused"
)

// ScheduleLogStatus records the outcome of one driver execution.
type ScheduleLogStatus string

const (
	ScheduleLogSuccess ScheduleLogStatus = "success"
	ScheduleLogFailed  ScheduleLogStatus = "failed"
)

// SchedulePayment is a recurring invoice template keyed by day-of-month.
// DayOfMonth is restricted to 1-28 to avoid short-month ambiguity.
type SchedulePayment struct {
	ScheduleID            int64           `json:"scheduleID"`
	ReceptorAccountNumber string          `json:"receptorAccountNumber"`
	PayerAccountNumber    string          `json:"payerAccountNumber"`
	Description           string          `json:"description"`
	DayOfMonth            int             `json:"dayOfMonth"`
	DueDays               int             `json:"dueDays"`
	Amount                decimal.Decimal `json:"amount"`
	Status                ScheduleStatus  `json:"status"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// ScheduleLog is the append-only audit trail of the periodic driver.
type ScheduleLog struct {
	LogID      int64             `json:"logID"`
	ScheduleID int64             `json:"scheduleID"`
	InvoiceID  *int64            `json:"invoiceID,omitempty"`
	Status     ScheduleLogStatus `json:"status"`
	Message    string            `json:"message"`
	ExecutedAt time.Time         `json:"executedAt"`
}
