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

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

const carColumns = `id, brand, model, registration_number, year, minute_rate_cents, hourly_rate_cents, daily_rate_cents, status, mileage, created_on, updated_on`

func (r *carRepository) Create(ctx context.Context, c *domain.Car) error {
	query := `INSERT INTO cars (brand, model, registration_number, year, minute_rate_cents, hourly_rate_cents, daily_rate_cents, status, mileage, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, c.Brand, c.Model, c.RegistrationNumber, c.Year, c.MinuteRateCents, c.HourlyRateCents, c.DailyRateCents, c.Status, c.Mileage, time.Now(), time.Now()).Scan(&c.ID)
}

func scanCar(row *sql.Row) (*domain.Car, error) {
	c := &domain.Car{}
	err := row.Scan(&c.ID, &c.Brand, &c.Model, &c.RegistrationNumber, &c.Year, &c.MinuteRateCents, &c.HourlyRateCents, &c.DailyRateCents, &c.Status, &c.Mileage, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: car", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *carRepository) GetByID(ctx context.Context, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`
	return scanCar(r.db.QueryRowContext(ctx, query, id))
}

func (r *carRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, id int32) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1 FOR UPDATE`
	return scanCar(pick(r.db, tx).QueryRowContext(ctx, query, id))
}

func (r *carRepository) Update(ctx context.Context, tx *sql.Tx, c *domain.Car) error {
	query := `UPDATE cars SET brand=$1, model=$2, registration_number=$3, year=$4, minute_rate_cents=$5, hourly_rate_cents=$6, daily_rate_cents=$7, status=$8, mileage=$9, updated_on=$10 WHERE id=$11`
	_, err := pick(r.db, tx).ExecContext(ctx, query, c.Brand, c.Model, c.RegistrationNumber, c.Year, c.MinuteRateCents, c.HourlyRateCents, c.DailyRateCents, c.Status, c.Mileage, time.Now(), c.ID)
	return err
}

func (r *carRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Car, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + carColumns + ` FROM cars`
	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" WHERE status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var cars []domain.Car
	for rows.Next() {
		var c domain.Car
		if err := rows.Scan(&c.ID, &c.Brand, &c.Model, &c.RegistrationNumber, &c.Year, &c.MinuteRateCents, &c.HourlyRateCents, &c.DailyRateCents, &c.Status, &c.Mileage, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		cars = append(cars, c)
	}
	return cars, count, rows.Err()
}

func (r *carRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: car", domain.ErrNotFound)
	}
	return nil
}
