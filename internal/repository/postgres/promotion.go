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

type promotionRepository struct {
	db *sql.DB
}

func NewPromotionRepository(db *sql.DB) repository.PromotionRepository {
	return &promotionRepository{db: db}
}

const promotionColumns = `id, code, description, discount_type, discount_value, start_date, end_date, is_active, max_uses, uses_count, created_on, updated_on`

func (r *promotionRepository) Create(ctx context.Context, p *domain.Promotion) error {
	query := `INSERT INTO promotions (code, description, discount_type, discount_value, start_date, end_date, is_active, max_uses, uses_count, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, p.Code, p.Description, p.DiscountType, p.DiscountValue, p.StartDate, p.EndDate, p.IsActive, p.MaxUses, p.UsesCount, time.Now(), time.Now()).Scan(&p.ID)
}

func (r *promotionRepository) scanOne(row *sql.Row) (*domain.Promotion, error) {
	p := &domain.Promotion{}
	err := row.Scan(&p.ID, &p.Code, &p.Description, &p.DiscountType, &p.DiscountValue, &p.StartDate, &p.EndDate, &p.IsActive, &p.MaxUses, &p.UsesCount, &p.CreatedOn, &p.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: promotion", domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id int32) (*domain.Promotion, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE id = $1`, id))
}

func (r *promotionRepository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE code = $1`, code))
}

func (r *promotionRepository) Update(ctx context.Context, p *domain.Promotion) error {
	query := `UPDATE promotions SET code=$1, description=$2, discount_type=$3, discount_value=$4, start_date=$5, end_date=$6, is_active=$7, max_uses=$8, updated_on=$9 WHERE id=$10`
	_, err := r.db.ExecContext(ctx, query, p.Code, p.Description, p.DiscountType, p.DiscountValue, p.StartDate, p.EndDate, p.IsActive, p.MaxUses, time.Now(), p.ID)
	return err
}

func (r *promotionRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Promotion, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM promotions`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + promotionColumns + ` FROM promotions ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var promos []domain.Promotion
	for rows.Next() {
		var p domain.Promotion
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.DiscountType, &p.DiscountValue, &p.StartDate, &p.EndDate, &p.IsActive, &p.MaxUses, &p.UsesCount, &p.CreatedOn, &p.UpdatedOn); err != nil {
			return nil, 0, err
		}
		promos = append(promos, p)
	}
	return promos, count, rows.Err()
}

// IncrementUses is the commit side of the promotion ledger. The guard on
// max_uses runs in the same statement, so two concurrent commits can
// never push uses_count past the cap.
func (r *promotionRepository) IncrementUses(ctx context.Context, tx *sql.Tx, id int32) error {
	query := `UPDATE promotions SET uses_count = uses_count + 1, updated_on = $2
	          WHERE id = $1 AND (max_uses IS NULL OR uses_count < max_uses)`
	res, err := pick(r.db, tx).ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: usage cap reached", domain.ErrPromotionInapplicable)
	}
	return nil
}

// DecrementUses is the release side, floored at zero.
func (r *promotionRepository) DecrementUses(ctx context.Context, tx *sql.Tx, id int32) error {
	query := `UPDATE promotions SET uses_count = GREATEST(uses_count - 1, 0), updated_on = $2 WHERE id = $1`
	_, err := pick(r.db, tx).ExecContext(ctx, query, id, time.Now())
	return err
}

func (r *promotionRepository) DeactivateEnded(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE promotions SET is_active = FALSE, updated_on = $1 WHERE is_active = TRUE AND end_date < $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
