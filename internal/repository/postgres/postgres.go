package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"carshare-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarRepository
	repository.RentalPlanRepository
	repository.PromotionRepository
	repository.BookingRepository
	repository.PaymentRepository
	repository.AuthTokenRepository
	repository.ReviewRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		CarRepository:          NewCarRepository(db),
		RentalPlanRepository:   NewRentalPlanRepository(db),
		PromotionRepository:    NewPromotionRepository(db),
		BookingRepository:      NewBookingRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		AuthTokenRepository:    NewAuthTokenRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

// WithinTx runs fn in a single transaction, rolling back on error or
// panic. The booking lifecycle relies on this for its no-partial-effects
// guarantee.
func (s *Store) WithinTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// dbtx is the subset of *sql.DB and *sql.Tx the repositories use.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// pick returns tx when inside a transaction, the plain connection
// otherwise.
func pick(db *sql.DB, tx *sql.Tx) dbtx {
	if tx != nil {
		return tx
	}
	return db
}
