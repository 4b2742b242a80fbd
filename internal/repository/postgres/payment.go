package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"labreserve-backend/internal/domain"
	"labreserve-backend/internal/repository"
)

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (request_id, amount_cents, payment_method, payment_status, item_type, description, transaction_ref, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.RequestID, p.AmountCents, p.Method, p.Status, p.ItemType, p.Description, p.TransactionRef, now, now).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT id, request_id, amount_cents, payment_method, payment_status, item_type, COALESCE(description, ''), COALESCE(transaction_ref, ''), paid_at, created_on, updated_on FROM payments WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.RequestID, &p.AmountCents, &p.Method, &p.Status, &p.ItemType, &p.Description, &p.TransactionRef, &p.PaidAt, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ListByRequest(ctx context.Context, requestID int32) ([]domain.Payment, error) {
	query := `SELECT id, request_id, amount_cents, payment_method, payment_status, item_type, COALESCE(description, ''), COALESCE(transaction_ref, ''), paid_at, created_on, updated_on
	          FROM payments WHERE request_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.RequestID, &p.AmountCents, &p.Method, &p.Status, &p.ItemType, &p.Description, &p.TransactionRef, &p.PaidAt, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// MarkPaid flips a PENDING payment to PAID. A second delivery of the same
// webhook matches zero rows, which the service layer treats as a no-op.
func (r *paymentRepository) MarkPaid(ctx context.Context, id int32, transactionRef string, paidAt time.Time) (bool, error) {
	query := `UPDATE payments SET payment_status = 'PAID', transaction_ref = $2, paid_at = $3, updated_on = $4
	          WHERE id = $1 AND payment_status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id, transactionRef, paidAt, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, id int32, transactionRef string) (bool, error) {
	query := `UPDATE payments SET payment_status = 'FAILED', transaction_ref = $2, updated_on = $3
	          WHERE id = $1 AND payment_status = 'PENDING'`
	res, err := r.db.ExecContext(ctx, query, id, transactionRef, time.Now())
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
