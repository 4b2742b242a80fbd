package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/repository"
)

type requestRepository struct {
	db DBTX
}

func NewRequestRepository(db DBTX) repository.RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `INSERT INTO requests (requester_id, request_date, start_date, end_date, notes, admin_notes, status, total_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, req.RequesterID, req.RequestDate, req.StartDate, req.EndDate, req.Notes, req.AdminNotes, req.Status, req.TotalCents, now, now).Scan(&req.ID)
}

func (r *requestRepository) GetByID(ctx context.Context, id int32) (*domain.Request, error) {
	req := &domain.Request{}
	query := `SELECT id, requester_id, request_date, start_date, end_date, COALESCE(notes, ''), COALESCE(admin_notes, ''), status, total_cents, created_on, updated_on FROM requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&req.ID, &req.RequesterID, &req.RequestDate, &req.StartDate, &req.EndDate, &req.Notes, &req.AdminNotes, &req.Status, &req.TotalCents, &req.CreatedOn, &req.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) AddToolLine(ctx context.Context, line *domain.RequestToolLine) error {
	query := `INSERT INTO request_tool_lines (request_id, tool_id, quantity, hourly_rate_cents, subtotal_cents)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, line.RequestID, line.ToolID, line.Quantity, line.HourlyRateCents, line.SubtotalCents).Scan(&line.ID)
}

func (r *requestRepository) AddReagentLine(ctx context.Context, line *domain.RequestReagentLine) error {
	query := `INSERT INTO request_reagent_lines (request_id, reagent_id, estimated_qty, price_per_unit_cents, subtotal_cents)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, line.RequestID, line.ReagentID, line.EstimatedQty, line.PricePerUnitCents, line.SubtotalCents).Scan(&line.ID)
}

func (r *requestRepository) GetToolLines(ctx context.Context, requestID int32) ([]domain.RequestToolLine, error) {
	query := `SELECT id, request_id, tool_id, quantity, hourly_rate_cents, subtotal_cents FROM request_tool_lines WHERE request_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.RequestToolLine
	for rows.Next() {
		var l domain.RequestToolLine
		if err := rows.Scan(&l.ID, &l.RequestID, &l.ToolID, &l.Quantity, &l.HourlyRateCents, &l.SubtotalCents); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *requestRepository) GetReagentLines(ctx context.Context, requestID int32) ([]domain.RequestReagentLine, error) {
	query := `SELECT id, request_id, reagent_id, estimated_qty, price_per_unit_cents, subtotal_cents FROM request_reagent_lines WHERE request_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.RequestReagentLine
	for rows.Next() {
		var l domain.RequestReagentLine
		if err := rows.Scan(&l.ID, &l.RequestID, &l.ReagentID, &l.EstimatedQty, &l.PricePerUnitCents, &l.SubtotalCents); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateStatus guards on the current status so concurrent approve/reject/cancel
// calls on the same request cannot all succeed.
func (r *requestRepository) UpdateStatus(ctx context.Context, id int32, from []domain.RequestStatus, to domain.RequestStatus, adminNotes string) (bool, error) {
	fromStrs := make([]string, len(from))
	for i, st := range from {
		fromStrs[i] = string(st)
	}
	query := `UPDATE requests SET status = $2, admin_notes = $3, updated_on = $4 WHERE id = $1 AND status = ANY($5)`
	res, err := r.db.ExecContext(ctx, query, id, to, adminNotes, time.Now(), pq.Array(fromStrs))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *requestRepository) List(ctx context.Context, requesterID int32, status string, page, pageSize int32) ([]domain.Request, int32, error) {
	offset := (int64(page) - 1) * int64(pageSize)
	query := `SELECT id, requester_id, request_date, start_date, end_date, COALESCE(notes, ''), COALESCE(admin_notes, ''), status, total_cents, created_on, updated_on
	          FROM requests WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if requesterID != 0 {
		query += fmt.Sprintf(" AND requester_id = $%d", argIdx)
		args = append(args, requesterID)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		var req domain.Request
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.RequestDate, &req.StartDate, &req.EndDate, &req.Notes, &req.AdminNotes, &req.Status, &req.TotalCents, &req.CreatedOn, &req.UpdatedOn); err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	return requests, count, rows.Err()
}
