package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/terratale/ledgerd/internal/core/domain"
)

// CreateScheduleRequest registers a recurring monthly payment.
type CreateScheduleRequest struct {
	ReceptorAccountNumber string          `json:"receptorAccountNumber" binding:"required"`
	PayerAccountNumber    string          `json:"payerAccountNumber" binding:"required"`
	Description           string          `json:"description" binding:"max=256"`
	DayOfMonth            int             `json:"dayOfMonth" binding:"required,min=1,max=28"`
	DueDays               int             `json:"dueDays" binding:"required,min=1"`
	Amount                decimal.Decimal `json:"amount" binding:"required,gtzero"`
}

// UpdateScheduleStatusRequest pauses or resumes a schedule.
type UpdateScheduleStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused"`
}

// ScheduleResponse mirrors domain.SchedulePayment.
type ScheduleResponse struct {
	ScheduleID            int64           `json:"scheduleID"`
	ReceptorAccountNumber string          `json:"receptorAccountNumber"`
	PayerAccountNumber    string          `json:"payerAccountNumber"`
	Description           string          `json:"description"`
	DayOfMonth            int             `json:"dayOfMonth"`
	DueDays               int             `json:"dueDays"`
	Amount                decimal.Decimal `json:"amount"`
	Status                string          `json:"status"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// ScheduleLogResponse mirrors domain.ScheduleLog.
type ScheduleLogResponse struct {
	LogID      int64     `json:"logID"`
	ScheduleID int64     `json:"scheduleID"`
	InvoiceID  *int64    `json:"invoiceID,omitempty"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	ExecutedAt time.Time `json:"executedAt"`
}

// ScheduleRunSummary reports one driver pass over due schedules.
type ScheduleRunSummary struct {
	RunDate   time.Time `json:"runDate"`
	Processed int       `json:"processed"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
}

// ToScheduleResponse converts a domain.SchedulePayment to its DTO.
func ToScheduleResponse(s *domain.SchedulePayment) ScheduleResponse {
	return ScheduleResponse{
		ScheduleID:            s.ScheduleID,
		ReceptorAccountNumber: s.ReceptorAccountNumber,
		PayerAccountNumber:    s.PayerAccountNumber,
		Description:           s.Description,
		DayOfMonth:            s.DayOfMonth,
		DueDays:               s.DueDays,
		Amount:                s.Amount,
		Status:                string(s.Status),
		CreatedAt:             s.CreatedAt,
	}
}

// ToScheduleResponses converts a slice of schedules.
func ToScheduleResponses(schedules []domain.SchedulePayment) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		out = append(out, ToScheduleResponse(&schedules[i]))
	}
	return out
}

// ToScheduleLogResponses converts a slice of schedule logs.
func ToScheduleLogResponses(logs []domain.ScheduleLog) []ScheduleLogResponse {
	out := make([]ScheduleLogResponse, 0, len(logs))
	for i := range logs {
		l := &logs[i]
		out = append(out, ScheduleLogResponse{
			LogID:      l.LogID,
			ScheduleID: l.ScheduleID,
			InvoiceID:  l.InvoiceID,
			Status:     string(l.Status),
			Message:    l.Message,
			ExecutedAt: l.ExecutedAt,
		})
	}
	return out
}
