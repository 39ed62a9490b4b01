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

type PgxScheduleRepository struct {
	BaseRepository
}

func newPgxScheduleRepository(pool *pgxpool.Pool) portsrepo.ScheduleRepositoryFacade {
	return &PgxScheduleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ScheduleRepositoryFacade = (*PgxScheduleRepository)(nil)

const scheduleColumns = `schedule_id, receptor_account_number, payer_account_number, description, day_of_month, due_days, amount, status, created_at`

// CreateSchedulePayment inserts a recurring payment template.
func (r *PgxScheduleRepository) CreateSchedulePayment(ctx context.Context, sp domain.SchedulePayment) (*domain.SchedulePayment, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO schedule_payments (receptor_account_number, payer_account_number, description, day_of_month, due_days, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING schedule_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		sp.ReceptorAccountNumber, sp.PayerAccountNumber, sp.Description,
		sp.DayOfMonth, sp.DueDays, sp.Amount, string(sp.Status), now,
	).Scan(&sp.ScheduleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert schedule payment", err)
	}
	sp.CreatedAt = now
	return &sp, nil
}

// FindSchedulePaymentByID retrieves a schedule by id.
func (r *PgxScheduleRepository) FindSchedulePaymentByID(ctx context.Context, scheduleID int64) (*domain.SchedulePayment, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_payments WHERE schedule_id = $1;`
	var m models.SchedulePayment
	err := r.Pool.QueryRow(ctx, query, scheduleID).Scan(
		&m.ScheduleID, &m.ReceptorAccountNumber, &m.PayerAccountNumber, &m.Description,
		&m.DayOfMonth, &m.DueDays, &m.Amount, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find schedule %d", scheduleID), err)
	}
	sp := mapping.ToDomainSchedulePayment(m)
	return &sp, nil
}

// ListSchedulePayments lists the newest schedules.
func (r *PgxScheduleRepository) ListSchedulePayments(ctx context.Context, limit int) ([]domain.SchedulePayment, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := `SELECT ` + scheduleColumns + ` FROM schedule_payments ORDER BY schedule_id DESC LIMIT $1;`
	return r.queryMany(ctx, query, limit)
}

// ListActiveByDayOfMonth lists every active schedule due on the given day.
func (r *PgxScheduleRepository) ListActiveByDayOfMonth(ctx context.Context, dayOfMonth int) ([]domain.SchedulePayment, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedule_payments WHERE status = 'active' AND day_of_month = $1 ORDER BY schedule_id;`
	return r.queryMany(ctx, query, dayOfMonth)
}

// UpdateScheduleStatus pauses or resumes a schedule.
func (r *PgxScheduleRepository) UpdateScheduleStatus(ctx context.Context, scheduleID int64, status domain.ScheduleStatus) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE schedule_payments SET status = $2 WHERE schedule_id = $1;`, scheduleID, string(status))
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update status of schedule %d", scheduleID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("schedule %d not found for update", scheduleID))
	}
	return nil
}

// CreateScheduleLog appends one driver execution record.
func (r *PgxScheduleRepository) CreateScheduleLog(ctx context.Context, log domain.ScheduleLog) error {
	query := `
		INSERT INTO schedule_logs (schedule_id, invoice_id, status, message, executed_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query, log.ScheduleID, log.InvoiceID, string(log.Status), log.Message, log.ExecutedAt)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to insert log for schedule %d", log.ScheduleID), err)
	}
	return nil
}

// ListScheduleLogs lists the newest execution records of one schedule.
func (r *PgxScheduleRepository) ListScheduleLogs(ctx context.Context, scheduleID int64, limit int) ([]domain.ScheduleLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := `
		SELECT log_id, schedule_id, invoice_id, status, message, executed_at
		FROM schedule_logs
		WHERE schedule_id = $1
		ORDER BY log_id DESC
		LIMIT $2;
	`
	return r.queryLogs(ctx, query, scheduleID, limit)
}

// ListRecentScheduleLogs lists the newest execution records across all
// schedules.
func (r *PgxScheduleRepository) ListRecentScheduleLogs(ctx context.Context, limit int) ([]domain.ScheduleLog, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	query := `
		SELECT log_id, schedule_id, invoice_id, status, message, executed_at
		FROM schedule_logs
		ORDER BY log_id DESC
		LIMIT $1;
	`
	return r.queryLogs(ctx, query, limit)
}

func (r *PgxScheduleRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.SchedulePayment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query schedules", err)
	}
	defer rows.Close()

	schedules := []domain.SchedulePayment{}
	for rows.Next() {
		var m models.SchedulePayment
		if err := rows.Scan(
			&m.ScheduleID, &m.ReceptorAccountNumber, &m.PayerAccountNumber, &m.Description,
			&m.DayOfMonth, &m.DueDays, &m.Amount, &m.Status, &m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan schedule row", err)
		}
		schedules = append(schedules, mapping.ToDomainSchedulePayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating schedule rows", err)
	}
	return schedules, nil
}

func (r *PgxScheduleRepository) queryLogs(ctx context.Context, query string, args ...any) ([]domain.ScheduleLog, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query schedule logs", err)
	}
	defer rows.Close()

	logs := []domain.ScheduleLog{}
	for rows.Next() {
		var m models.ScheduleLog
		if err := rows.Scan(&m.LogID, &m.ScheduleID, &m.InvoiceID, &m.Status, &m.Message, &m.ExecutedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan schedule log row", err)
		}
		logs = append(logs, mapping.ToDomainScheduleLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating schedule log rows", err)
	}
	return logs, nil
}
