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

type rentalPlanRepository struct {
	db *sql.DB
}

func NewRentalPlanRepository(db *sql.DB) repository.RentalPlanRepository {
	return &rentalPlanRepository{db: db}
}

const planColumns = `id, name, description, duration_type, base_price_cents, min_duration_units, max_duration_units, discount_percent, is_active, created_on, updated_on`

func (r *rentalPlanRepository) Create(ctx context.Context, p *domain.RentalPlan) error {
	query := `INSERT INTO rental_plans (name, description, duration_type, base_price_cents, min_duration_units, max_duration_units, discount_percent, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.DurationType, p.BasePriceCents, p.MinDurationUnits, p.MaxDurationUnits, p.DiscountPercent, p.IsActive, time.Now(), time.Now()).Scan(&p.ID)
}

func (r *rentalPlanRepository) GetByID(ctx context.Context, id int32) (*domain.RentalPlan, error) {
	p := &domain.RentalPlan{}
	query := `SELECT ` + planColumns + ` FROM rental_plans WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Description, &p.DurationType, &p.BasePriceCents, &p.MinDurationUnits, &p.MaxDurationUnits, &p.DiscountPercent, &p.IsActive, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: rental plan", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *rentalPlanRepository) Update(ctx context.Context, p *domain.RentalPlan) error {
	query := `UPDATE rental_plans SET name=$1, description=$2, duration_type=$3, base_price_cents=$4, min_duration_units=$5, max_duration_units=$6, discount_percent=$7, is_active=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.DurationType, p.BasePriceCents, p.MinDurationUnits, p.MaxDurationUnits, p.DiscountPercent, p.IsActive, time.Now(), p.ID)
	return err
}

func (r *rentalPlanRepository) List(ctx context.Context, activeOnly bool) ([]domain.RentalPlan, error) {
	query := `SELECT ` + planColumns + ` FROM rental_plans`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.RentalPlan
	for rows.Next() {
		var p domain.RentalPlan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.DurationType, &p.BasePriceCents, &p.MinDurationUnits, &p.MaxDurationUnits, &p.DiscountPercent, &p.IsActive, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
