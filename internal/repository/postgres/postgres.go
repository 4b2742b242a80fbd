package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"labreserve-backend/internal/repository"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every repository works
// inside and outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	conn *sql.DB // nil when the store is bound to a transaction

	tools         repository.ToolRepository
	reagents      repository.ReagentRepository
	requests      repository.RequestRepository
	payments      repository.PaymentRepository
	schedules     repository.ScheduleRepository
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	s := newStore(db)
	s.conn = db
	return s
}

func newStore(db DBTX) *Store {
	return &Store{
		tools:         NewToolRepository(db),
		reagents:      NewReagentRepository(db),
		requests:      NewRequestRepository(db),
		payments:      NewPaymentRepository(db),
		schedules:     NewScheduleRepository(db),
		notifications: NewNotificationRepository(db),
		users:         NewUserRepository(db),
	}
}

func (s *Store) Tools() repository.ToolRepository                 { return s.tools }
func (s *Store) Reagents() repository.ReagentRepository           { return s.reagents }
func (s *Store) Requests() repository.RequestRepository           { return s.requests }
func (s *Store) Payments() repository.PaymentRepository           { return s.payments }
func (s *Store) Schedules() repository.ScheduleRepository         { return s.schedules }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }
func (s *Store) Users() repository.UserRepository                 { return s.users }

// ExecTx runs fn with a store bound to a single database transaction. A nested
// call reuses the surrounding transaction.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.conn == nil {
		return fn(s)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txStore := newStore(tx)
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	return tx.Commit()
}
