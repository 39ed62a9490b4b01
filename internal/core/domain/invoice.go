package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the one-way lifecycle of an invoice:
// pending -> {paid, cancelled}.
type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// InvoiceEvent is one entry in an invoice's embedded event journal.
type InvoiceEvent struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	By        string    `json:"by"`
}

const (
	EventCreated     = "created"
	EventPaid        = "paid"
	EventCancelled   = "cancelled"
	EventGeneratedBy = "generated_by"

	// SystemActor marks journal entries written by the scheduler rather
	// than a player.
	SystemActor = "government_system"
)

// Invoice is a billable claim from one account (receptor) against another
// (payer). Amount is fixed at creation; the event journal is append-only.
type Invoice struct {
	InvoiceID             int64           `json:"invoiceID"`
	ReceptorAccountNumber string          `json:"receptorAccountNumber"`
	PayerAccountNumber    string          `json:"payerAccountNumber"`
	Amount                decimal.Decimal `json:"amount"`
	DueDate               *time.Time      `json:"dueDate,omitempty"`
	Description           string          `json:"description"`
	Status                InvoiceStatus   `json:"status"`
	Events                []InvoiceEvent  `json:"events"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// AddEvent appends an entry to the invoice's event journal.
func (inv *Invoice) AddEvent(eventType, by string, at time.Time) {
	inv.Events = append(inv.Events, InvoiceEvent{Type: eventType, Timestamp: at, By: by})
}

// IsOverdue reports whether a pending invoice has passed its due date.
func (inv *Invoice) IsOverdue(now time.Time) bool {
	if inv.DueDate == nil || inv.Status != InvoicePending {
		return false
	}
	return now.After(*inv.DueDate)
}
