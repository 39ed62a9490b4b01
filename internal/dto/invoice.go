package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// CreateInvoiceRequest issues an invoice from receptor to payer.
type CreateInvoiceRequest struct {
	ReceptorAccountNumber string          `json:"receptorAccountNumber" binding:"required"`
	PayerAccountNumber    string          `json:"payerAccountNumber" binding:"required"`
	Amount                decimal.Decimal `json:"amount" binding:"required,gtzero"`
	Description           string          `json:"description" binding:"max=256"`
	DueDate               *time.Time      `json:"dueDate"`
}

// InvoiceEventResponse is a single entry of an invoice journal.
type InvoiceEventResponse struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	By        string    `json:"by"`
}

// InvoiceResponse mirrors domain.Invoice.
type InvoiceResponse struct {
	InvoiceID             int64                  `json:"invoiceID"`
	ReceptorAccountNumber string                 `json:"receptorAccountNumber"`
	PayerAccountNumber    string                 `json:"payerAccountNumber"`
	Amount                decimal.Decimal        `json:"amount"`
	DueDate               *time.Time             `json:"dueDate,omitempty"`
	Description           string                 `json:"description"`
	Status                string                 `json:"status"`
	Events                []InvoiceEventResponse `json:"events"`
	CreatedAt             time.Time              `json:"createdAt"`
}

// InvoicePaymentResult reports the settled split of an invoice payment.
type InvoicePaymentResult struct {
	Invoice       InvoiceResponse `json:"invoice"`
	Amount        decimal.Decimal `json:"amount"`
	GovernmentFee decimal.Decimal `json:"governmentFee"`
	BankFee       decimal.Decimal `json:"bankFee"`
	PayerDebited  decimal.Decimal `json:"payerDebited"`
	NetReceived   decimal.Decimal `json:"netReceived"`
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	events := make([]InvoiceEventResponse, 0, len(inv.Events))
	for _, ev := range inv.Events {
		events = append(events, InvoiceEventResponse{
			Type:      ev.Type,
			Timestamp: ev.Timestamp,
			By:        ev.By,
		})
	}
	return InvoiceResponse{
		InvoiceID:             inv.InvoiceID,
		ReceptorAccountNumber: inv.ReceptorAccountNumber,
		PayerAccountNumber:    inv.PayerAccountNumber,
		Amount:                inv.Amount,
		DueDate:               inv.DueDate,
		Description:           inv.Description,
		Status:                string(inv.Status),
		Events:                events,
		CreatedAt:             inv.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices.
func ToInvoiceResponses(invs []domain.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invs))
	for i := range invs {
		out = append(out, ToInvoiceResponse(&invs[i]))
	}
	return out
}
