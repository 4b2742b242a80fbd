package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/logger"
	"labreserve-backend/internal/repository"
)

type toolRepository struct {
	db DBTX
}

func NewToolRepository(db DBTX) repository.ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) Create(ctx context.Context, t *domain.Tool) error {
	query := `INSERT INTO tools (name, description, category, total_stock, available_stock, hourly_rate_cents, risk_level, status, image_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, t.Name, t.Description, t.Category, t.TotalStock, t.AvailableStock, t.HourlyRateCents, t.RiskLevel, t.Status, t.ImageURL, now, now).Scan(&t.ID)
}

func (r *toolRepository) GetByID(ctx context.Context, id int32) (*domain.Tool, error) {
	t := &domain.Tool{}
	query := `SELECT id, name, COALESCE(description, ''), COALESCE(category, ''), total_stock, available_stock, hourly_rate_cents, risk_level, status, COALESCE(image_url, ''), created_on, updated_on FROM tools WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Description, &t.Category, &t.TotalStock, &t.AvailableStock, &t.HourlyRateCents, &t.RiskLevel, &t.Status, &t.ImageURL, &t.CreatedOn, &t.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *toolRepository) Update(ctx context.Context, t *domain.Tool) error {
	query := `UPDATE tools SET name=$1, description=$2, category=$3, hourly_rate_cents=$4, risk_level=$5, status=$6, image_url=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, t.Name, t.Description, t.Category, t.HourlyRateCents, t.RiskLevel, t.Status, t.ImageURL, time.Now(), t.ID)
	return err
}

func (r *toolRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Tool, int32, error) {
	offset := (int64(page) - 1) * int64(pageSize)
	query := `SELECT id, name, COALESCE(description, ''), COALESCE(category, ''), total_stock, available_stock, hourly_rate_cents, risk_level, status, COALESCE(image_url, ''), created_on, updated_on
	          FROM tools ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM tools`).Scan(&count); err != nil {
		return nil, 0, err
	}

	var tools []domain.Tool
	for rows.Next() {
		var t domain.Tool
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Category, &t.TotalStock, &t.AvailableStock, &t.HourlyRateCents, &t.RiskLevel, &t.Status, &t.ImageURL, &t.CreatedOn, &t.UpdatedOn); err != nil {
			return nil, 0, err
		}
		tools = append(tools, t)
	}
	return tools, count, nil
}

// ReserveStock uses a single conditional UPDATE so two customers racing for the
// last unit cannot both win; the loser sees zero affected rows.
func (r *toolRepository) ReserveStock(ctx context.Context, toolID, qty int32) error {
	query := `UPDATE tools SET available_stock = available_stock - $2, updated_on = $3
	          WHERE id = $1 AND status = 'AVAILABLE' AND available_stock >= $2`
	res, err := r.db.ExecContext(ctx, query, toolID, qty, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM tools WHERE id = $1)`, toolID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return fmt.Errorf("tool %d: %w", toolID, domain.ErrInsufficientStock)
	}
	return nil
}

// ReleaseStock gives reserved units back. Exceeding total_stock indicates a bug
// upstream: it is logged and the counter is clamped rather than overflowed.
func (r *toolRepository) ReleaseStock(ctx context.Context, toolID, qty int32) error {
	query := `UPDATE tools SET available_stock = available_stock + $2, updated_on = $3
	          WHERE id = $1 AND available_stock + $2 <= total_stock`
	res, err := r.db.ExecContext(ctx, query, toolID, qty, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM tools WHERE id = $1)`, toolID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		logger.Warn("Tool stock release exceeds total, clamping", "tool_id", toolID, "qty", qty)
		_, err = r.db.ExecContext(ctx, `UPDATE tools SET available_stock = total_stock, updated_on = $2 WHERE id = $1`, toolID, time.Now())
		return err
	}
	return nil
}
