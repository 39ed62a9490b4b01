package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/terratale/ledgerd/internal/core/domain"
	"github.com/terratale/ledgerd/internal/models"
)

// invoiceEventsDoc is the stored shape of the event journal: a single JSON
// object with an "events" array, append-only.
type invoiceEventsDoc struct {
	Events []domain.InvoiceEvent `json:"events"`
}

// EncodeInvoiceEvents serializes an event journal for storage.
func EncodeInvoiceEvents(events []domain.InvoiceEvent) ([]byte, error) {
	raw, err := json.Marshal(invoiceEventsDoc{Events: events})
	if err != nil {
		return nil, fmt.Errorf("encoding invoice events: %w", err)
	}
	return raw, nil
}

// DecodeInvoiceEvents deserializes a stored event journal.
func DecodeInvoiceEvents(raw []byte) ([]domain.InvoiceEvent, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var doc invoiceEventsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding invoice events: %w", err)
	}
	return doc.Events, nil
}

// ToDomainInvoice converts a persistence row, decoding the event journal.
func ToDomainInvoice(m models.Invoice) (domain.Invoice, error) {
	events, err := DecodeInvoiceEvents(m.Events)
	if err != nil {
		return domain.Invoice{}, err
	}
	return domain.Invoice{
		InvoiceID:             m.InvoiceID,
		ReceptorAccountNumber: m.ReceptorAccountNumber,
		PayerAccountNumber:    m.PayerAccountNumber,
		Amount:                m.Amount,
		DueDate:               m.DueDate,
		Description:           m.Description,
		Status:                domain.InvoiceStatus(m.Status),
		Events:                events,
		CreatedAt:             m.CreatedAt,
	}, nil
}

// ToModelInvoice converts a domain invoice, encoding the event journal.
func ToModelInvoice(inv domain.Invoice) (models.Invoice, error) {
	raw, err := EncodeInvoiceEvents(inv.Events)
	if err != nil {
		return models.Invoice{}, err
	}
	return models.Invoice{
		InvoiceID:             inv.InvoiceID,
		ReceptorAccountNumber: inv.ReceptorAccountNumber,
		PayerAccountNumber:    inv.PayerAccountNumber,
		Amount:                inv.Amount,
		DueDate:               inv.DueDate,
		Description:           inv.Description,
		Status:                string(inv.Status),
		Events:                raw,
		CreatedAt:             inv.CreatedAt,
	}, nil
}
