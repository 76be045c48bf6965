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

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, user_id, car_id, rental_plan_id, start_date, end_date, status, total_cost_cents, discount_amount_cents, promo_code_id, initial_mileage, final_mileage, cancel_reason, created_on, updated_on`

func (r *bookingRepository) Create(ctx context.Context, tx *sql.Tx, b *domain.Booking) error {
	query := `INSERT INTO bookings (user_id, car_id, rental_plan_id, start_date, end_date, status, total_cost_cents, discount_amount_cents, promo_code_id, initial_mileage, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return pick(r.db, tx).QueryRowContext(ctx, query, b.UserID, b.CarID, b.RentalPlanID, b.StartDate, b.EndDate, b.Status, b.TotalCostCents, b.DiscountAmountCents, b.PromoCodeID, b.InitialMileage, time.Now(), time.Now()).Scan(&b.ID)
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.UserID, &b.CarID, &b.RentalPlanID, &b.StartDate, &b.EndDate, &b.Status, &b.TotalCostCents, &b.DiscountAmountCents, &b.PromoCodeID, &b.InitialMileage, &b.FinalMileage, &b.CancelReason, &b.CreatedOn, &b.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: booking", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return scanBooking(pick(r.db, tx).QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) Update(ctx context.Context, tx *sql.Tx, b *domain.Booking) error {
	query := `UPDATE bookings SET start_date=$1, end_date=$2, status=$3, total_cost_cents=$4, discount_amount_cents=$5, final_mileage=$6, cancel_reason=$7, updated_on=$8 WHERE id=$9`
	_, err := pick(r.db, tx).ExecContext(ctx, query, b.StartDate, b.EndDate, b.Status, b.TotalCostCents, b.DiscountAmountCents, b.FinalMileage, b.CancelReason, time.Now(), b.ID)
	return err
}

// CountOverlapping uses half-open interval semantics: [s1,e1) and
// [s2,e2) overlap iff s1 < e2 and s2 < e1, so bookings that merely touch
// at an endpoint do not conflict.
func (r *bookingRepository) CountOverlapping(ctx context.Context, tx *sql.Tx, carID int32, start, end time.Time, excludeID int32) (int32, error) {
	query := `SELECT count(*) FROM bookings
	          WHERE car_id = $1
	            AND status IN ('PENDING', 'CONFIRMED', 'ACTIVE')
	            AND start_date < $3
	            AND end_date > $2
	            AND ($4 = 0 OR id <> $4)`
	var count int32
	err := pick(r.db, tx).QueryRowContext(ctx, query, carID, start, end, excludeID).Scan(&count)
	return count, err
}

func (r *bookingRepository) list(ctx context.Context, where string, filterArg interface{}, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + where

	args := []interface{}{filterArg}
	argIdx := 2
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

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.CarID, &b.RentalPlanID, &b.StartDate, &b.EndDate, &b.Status, &b.TotalCostCents, &b.DiscountAmountCents, &b.PromoCodeID, &b.InitialMileage, &b.FinalMileage, &b.CancelReason, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "user_id = $1", userID, status, page, pageSize)
}

func (r *bookingRepository) ListByCar(ctx context.Context, carID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "car_id = $1", carID, status, page, pageSize)
}

func (r *bookingRepository) ListStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'PENDING' AND created_on < $1`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.CarID, &b.RentalPlanID, &b.StartDate, &b.EndDate, &b.Status, &b.TotalCostCents, &b.DiscountAmountCents, &b.PromoCodeID, &b.InitialMileage, &b.FinalMileage, &b.CancelReason, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) HasCompletedBooking(ctx context.Context, userID, carID int32) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM bookings WHERE user_id = $1 AND car_id = $2 AND status = 'COMPLETED')`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, carID).Scan(&exists)
	return exists, err
}
