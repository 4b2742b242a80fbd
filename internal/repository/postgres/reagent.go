package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/repository"
)

type reagentRepository struct {
	db DBTX
}

func NewReagentRepository(db DBTX) repository.ReagentRepository {
	return &reagentRepository{db: db}
}

func (r *reagentRepository) Create(ctx context.Context, rg *domain.Reagent) error {
	query := `INSERT INTO reagents (name, description, stock_quantity, reserved_quantity, unit, price_per_unit_cents, status, expired_date, image_url, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, rg.Name, rg.Description, rg.StockQuantity, rg.ReservedQuantity, rg.Unit, rg.PricePerUnitCents, rg.Status, rg.ExpiredDate, rg.ImageURL, now, now).Scan(&rg.ID)
}

func (r *reagentRepository) GetByID(ctx context.Context, id int32) (*domain.Reagent, error) {
	rg := &domain.Reagent{}
	query := `SELECT id, name, COALESCE(description, ''), stock_quantity, reserved_quantity, unit, price_per_unit_cents, status, expired_date, COALESCE(image_url, ''), created_on, updated_on FROM reagents WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rg.ID, &rg.Name, &rg.Description, &rg.StockQuantity, &rg.ReservedQuantity, &rg.Unit, &rg.PricePerUnitCents, &rg.Status, &rg.ExpiredDate, &rg.ImageURL, &rg.CreatedOn, &rg.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rg, nil
}

func (r *reagentRepository) Update(ctx context.Context, rg *domain.Reagent) error {
	query := `UPDATE reagents SET name=$1, description=$2, unit=$3, price_per_unit_cents=$4, status=$5, expired_date=$6, image_url=$7, updated_on=$8 WHERE id=$9`
	_, err := r.db.ExecContext(ctx, query, rg.Name, rg.Description, rg.Unit, rg.PricePerUnitCents, rg.Status, rg.ExpiredDate, rg.ImageURL, time.Now(), rg.ID)
	return err
}

func (r *reagentRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Reagent, int32, error) {
	offset := (int64(page) - 1) * int64(pageSize)
	query := `SELECT id, name, COALESCE(description, ''), stock_quantity, reserved_quantity, unit, price_per_unit_cents, status, expired_date, COALESCE(image_url, ''), created_on, updated_on
	          FROM reagents ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reagents`).Scan(&count); err != nil {
		return nil, 0, err
	}

	var reagents []domain.Reagent
	for rows.Next() {
		var rg domain.Reagent
		if err := rows.Scan(&rg.ID, &rg.Name, &rg.Description, &rg.StockQuantity, &rg.ReservedQuantity, &rg.Unit, &rg.PricePerUnitCents, &rg.Status, &rg.ExpiredDate, &rg.ImageURL, &rg.CreatedOn, &rg.UpdatedOn); err != nil {
			return nil, 0, err
		}
		reagents = append(reagents, rg)
	}
	return reagents, count, nil
}

// ReserveStock grows the hold only while enough unreserved quantity remains and
// the reagent is useable and unexpired, all in one conditional UPDATE.
func (r *reagentRepository) ReserveStock(ctx context.Context, reagentID int32, qty decimal.Decimal) error {
	query := `UPDATE reagents SET reserved_quantity = reserved_quantity + $2, updated_on = $3
	          WHERE id = $1 AND status = 'USEABLE'
	            AND (expired_date IS NULL OR expired_date > $3)
	            AND stock_quantity - reserved_quantity >= $2`
	res, err := r.db.ExecContext(ctx, query, reagentID, qty, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reagents WHERE id = $1)`, reagentID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reagent %d: %w", reagentID, domain.ErrInsufficientStock)
	}
	return nil
}

func (r *reagentRepository) ReleaseStock(ctx context.Context, reagentID int32, qty decimal.Decimal) error {
	query := `UPDATE reagents SET reserved_quantity = GREATEST(reserved_quantity - $2, 0), updated_on = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, reagentID, qty, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ConsumeStock turns a hold into a permanent deduction: stock_quantity drops
// and the matching hold is dropped with it, guarded so stock never goes
// negative.
func (r *reagentRepository) ConsumeStock(ctx context.Context, reagentID int32, qty decimal.Decimal) error {
	query := `UPDATE reagents SET stock_quantity = stock_quantity - $2, reserved_quantity = GREATEST(reserved_quantity - $2, 0), updated_on = $3
	          WHERE id = $1 AND stock_quantity >= $2`
	res, err := r.db.ExecContext(ctx, query, reagentID, qty, time.Now())
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM reagents WHERE id = $1)`, reagentID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reagent %d: %w", reagentID, domain.ErrInsufficientStock)
	}
	return nil
}

func (r *reagentRepository) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	query := `UPDATE reagents SET status = 'EXPIRED', updated_on = $1
	          WHERE status = 'USEABLE' AND expired_date IS NOT NULL AND expired_date <= $1`
	res, err := r.db.ExecContext(ctx, query, asOf)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
