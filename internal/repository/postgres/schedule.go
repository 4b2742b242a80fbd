package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/repository"
)

type scheduleRepository struct {
	db DBTX
}

func NewScheduleRepository(db DBTX) repository.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, s *domain.Schedule) error {
	query := `INSERT INTO schedules (request_id, start_date, end_date, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, s.RequestID, s.StartDate, s.EndDate, s.Status, now, now).Scan(&s.ID)
}

func (r *scheduleRepository) GetByID(ctx context.Context, id int32) (*domain.Schedule, error) {
	s := &domain.Schedule{}
	query := `SELECT id, request_id, start_date, end_date, status, closed_on, created_on, updated_on FROM schedules WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.RequestID, &s.StartDate, &s.EndDate, &s.Status, &s.ClosedOn, &s.CreatedOn, &s.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *scheduleRepository) GetByRequest(ctx context.Context, requestID int32) (*domain.Schedule, error) {
	s := &domain.Schedule{}
	query := `SELECT id, request_id, start_date, end_date, status, closed_on, created_on, updated_on FROM schedules WHERE request_id = $1 ORDER BY id DESC LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, requestID).Scan(&s.ID, &s.RequestID, &s.StartDate, &s.EndDate, &s.Status, &s.ClosedOn, &s.CreatedOn, &s.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateStatus only moves out of SCHEDULED; all other statuses are terminal, so
// a losing racer matches zero rows.
func (r *scheduleRepository) UpdateStatus(ctx context.Context, id int32, to domain.ScheduleStatus, closedOn time.Time) (bool, error) {
	query := `UPDATE schedules SET status = $2, closed_on = $3, updated_on = $4 WHERE id = $1 AND status = 'SCHEDULED'`
	res, err := r.db.ExecContext(ctx, query, id, to, closedOn, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *scheduleRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]domain.Schedule, error) {
	query := `SELECT id, request_id, start_date, end_date, status, closed_on, created_on, updated_on
	          FROM schedules WHERE status = 'SCHEDULED' AND end_date < $1 ORDER BY end_date`
	return r.queryList(ctx, query, asOf)
}

func (r *scheduleRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Schedule, error) {
	query := `SELECT id, request_id, start_date, end_date, status, closed_on, created_on, updated_on
	          FROM schedules WHERE status = 'SCHEDULED' AND start_date >= $1 AND start_date < $2 ORDER BY start_date`
	return r.queryList(ctx, query, from, to)
}

func (r *scheduleRepository) queryList(ctx context.Context, query string, args ...interface{}) ([]domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.RequestID, &s.StartDate, &s.EndDate, &s.Status, &s.ClosedOn, &s.CreatedOn, &s.UpdatedOn); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}
