package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, booking_id, amount_cents, status, transaction_id, created_on, updated_on`

func (r *paymentRepository) Create(ctx context.Context, tx *sql.Tx, p *domain.Payment) error {
	query := `INSERT INTO payments (booking_id, amount_cents, status, transaction_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return pick(r.db, tx).QueryRowContext(ctx, query, p.BookingID, p.AmountCents, p.Status, p.TransactionID, time.Now(), time.Now()).Scan(&p.ID)
}

func (r *paymentRepository) scanOne(row *sql.Row) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.Status, &p.TransactionID, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: payment", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
}

func (r *paymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1`, transactionID))
}

func (r *paymentRepository) Update(ctx context.Context, tx *sql.Tx, p *domain.Payment) error {
	query := `UPDATE payments SET status=$1, amount_cents=$2, updated_on=$3 WHERE id=$4`
	_, err := pick(r.db, tx).ExecContext(ctx, query, p.Status, p.AmountCents, time.Now(), p.ID)
	return err
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.Status, &p.TransactionID, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
