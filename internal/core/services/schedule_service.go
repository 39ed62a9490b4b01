package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/terratale/ledgerd/internal/apperrors"
	"github.com/terratale/ledgerd/internal/core/domain"
	portsrepo "github.com/terratale/ledgerd/internal/core/ports/repositories"
	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/dto"
	"github.com/terratale/ledgerd/internal/middleware"
)

// scheduleService manages recurring payment templates and materializes
// them into invoices once a day.
type scheduleService struct {
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
) portssvc.ScheduleSvcFacade {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		invoiceRepo:  invoiceRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// CreateSchedule registers a recurring monthly payment. The requester must
// own the receptor account, the one that bills.
func (s *scheduleService) CreateSchedule(ctx context.Context, requesterID uuid.UUID, req dto.CreateScheduleRequest) (*domain.SchedulePayment, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "amount must be greater than zero", apperrors.ErrInvalidAmount)
	}
	if req.DayOfMonth < 1 || req.DayOfMonth > 28 {
		return nil, apperrors.NewAppError(400, "day of month must be between 1 and 28", apperrors.ErrValidation)
	}
	if req.DueDays < 1 {
		return nil, apperrors.NewAppError(400, "due days must be at least 1", apperrors.ErrValidation)
	}
	if req.ReceptorAccountNumber == req.PayerAccountNumber {
		return nil, apperrors.NewAppError(400, "an account cannot bill itself", apperrors.ErrSelfReference)
	}

	receptor, err := s.accountRepo.FindAccountByNumber(ctx, req.ReceptorAccountNumber)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByNumber(ctx, req.PayerAccountNumber); err != nil {
		return nil, err
	}

	isOwner, err := s.accountRepo.IsAccountOwner(ctx, receptor.AccountID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, apperrors.NewAppError(403, "only a receptor account owner may create schedules", apperrors.ErrUnauthorized)
	}

	return s.scheduleRepo.CreateSchedulePayment(ctx, domain.SchedulePayment{
		ReceptorAccountNumber: req.ReceptorAccountNumber,
		PayerAccountNumber:    req.PayerAccountNumber,
		Description:           req.Description,
		DayOfMonth:            req.DayOfMonth,
		DueDays:               req.DueDays,
		Amount:                req.Amount,
		Status:                domain.ScheduleActive,
	})
}

// GetSchedule returns a schedule by id.
func (s *scheduleService) GetSchedule(ctx context.Context, scheduleID int64) (*domain.SchedulePayment, error) {
	return s.scheduleRepo.FindSchedulePaymentByID(ctx, scheduleID)
}

// ListSchedules lists the newest schedules.
func (s *scheduleService) ListSchedules(ctx context.Context, requesterID uuid.UUID) ([]domain.SchedulePayment, error) {
	return s.scheduleRepo.ListSchedulePayments(ctx, 0)
}

// SetScheduleStatus pauses or resumes a schedule. The requester must own
// the receptor account.
func (s *scheduleService) SetScheduleStatus(ctx context.Context, requesterID uuid.UUID, scheduleID int64, status domain.ScheduleStatus) (*domain.SchedulePayment, error) {
	if status != domain.ScheduleActive && status != domain.SchedulePaused {
		return nil, apperrors.NewAppError(400, "status must be active or paused", apperrors.ErrValidation)
	}

	schedule, err := s.scheduleRepo.FindSchedulePaymentByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	receptor, err := s.accountRepo.FindAccountByNumber(ctx, schedule.ReceptorAccountNumber)
	if err != nil {
		return nil, err
	}
	isOwner, err := s.accountRepo.IsAccountOwner(ctx, receptor.AccountID, requesterID)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, apperrors.NewAppError(403, "only a receptor account owner may change the schedule", apperrors.ErrUnauthorized)
	}

	if err := s.scheduleRepo.UpdateScheduleStatus(ctx, scheduleID, status); err != nil {
		return nil, err
	}
	schedule.Status = status
	return schedule, nil
}

// ListScheduleLogs lists the newest execution records of one schedule.
func (s *scheduleService) ListScheduleLogs(ctx context.Context, scheduleID int64, limit int) ([]domain.ScheduleLog, error) {
	if _, err := s.scheduleRepo.FindSchedulePaymentByID(ctx, scheduleID); err != nil {
		return nil, err
	}
	return s.scheduleRepo.ListScheduleLogs(ctx, scheduleID, limit)
}

// ListRecentLogs lists the newest execution records across all schedules.
func (s *scheduleService) ListRecentLogs(ctx context.Context, limit int) ([]domain.ScheduleLog, error) {
	return s.scheduleRepo.ListRecentScheduleLogs(ctx, limit)
}

// RunDue materializes every active schedule due today into a pending
// invoice. Each template is processed in isolation: a failing one writes a
// failed log and the batch moves on.
func (s *scheduleService) RunDue(ctx context.Context, today time.Time) (*dto.ScheduleRunSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	due, err := s.scheduleRepo.ListActiveByDayOfMonth(ctx, today.Day())
	if err != nil {
		return nil, err
	}

	summary := &dto.ScheduleRunSummary{RunDate: today, Processed: len(due)}
	for _, schedule := range due {
		if err := s.materialize(ctx, schedule, today); err != nil {
			summary.Failed++
			s.writeLog(ctx, domain.ScheduleLog{
				ScheduleID: schedule.ScheduleID,
				Status:     domain.ScheduleLogFailed,
				Message:    err.Error(),
				ExecutedAt: time.Now().UTC(),
			})
			logger.Warn("Schedule failed",
				slog.Int64("schedule_id", schedule.ScheduleID),
				slog.String("error", err.Error()),
			)
			continue
		}
		summary.Succeeded++
	}

	logger.Info("Schedule run completed",
		slog.Int("processed", summary.Processed),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (s *scheduleService) materialize(ctx context.Context, schedule domain.SchedulePayment, today time.Time) error {
	if _, err := s.accountRepo.FindAccountByNumber(ctx, schedule.ReceptorAccountNumber); err != nil {
		return fmt.Errorf("receptor account %s: %w", schedule.ReceptorAccountNumber, err)
	}
	if _, err := s.accountRepo.FindAccountByNumber(ctx, schedule.PayerAccountNumber); err != nil {
		return fmt.Errorf("payer account %s: %w", schedule.PayerAccountNumber, err)
	}

	now := time.Now().UTC()
	dueDate := today.AddDate(0, 0, schedule.DueDays)
	inv := domain.Invoice{
		ReceptorAccountNumber: schedule.ReceptorAccountNumber,
		PayerAccountNumber:    schedule.PayerAccountNumber,
		Amount:                schedule.Amount,
		DueDate:               &dueDate,
		Description:           schedule.Description,
		Status:                domain.InvoicePending,
	}
	inv.AddEvent(domain.EventCreated, domain.SystemActor, now)
	inv.AddEvent(domain.EventGeneratedBy, fmt.Sprintf("schedule_payment:%d", schedule.ScheduleID), now)

	created, err := s.invoiceRepo.CreateInvoice(ctx, inv)
	if err != nil {
		return err
	}

	s.writeLog(ctx, domain.ScheduleLog{
		ScheduleID: schedule.ScheduleID,
		InvoiceID:  &created.InvoiceID,
		Status:     domain.ScheduleLogSuccess,
		Message:    fmt.Sprintf("invoice %d generated", created.InvoiceID),
		ExecutedAt: now,
	})
	return nil
}

// writeLog degrades to process logging when the audit insert itself fails,
// so a storage hiccup on the log never aborts the batch.
func (s *scheduleService) writeLog(ctx context.Context, log domain.ScheduleLog) {
	if err := s.scheduleRepo.CreateScheduleLog(ctx, log); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to write schedule log",
			slog.Int64("schedule_id", log.ScheduleID),
			slog.String("error", err.Error()),
		)
	}
}
