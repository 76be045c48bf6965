package postgres

import (
	"context"
	"database/sql"
	"time"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (user_id, car_id, booking_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rv.UserID, rv.CarID, rv.BookingID, rv.Rating, rv.Comment, time.Now()).Scan(&rv.ID)
}

func (r *reviewRepository) ListByCar(ctx context.Context, carID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reviews WHERE car_id = $1`, carID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, car_id, booking_id, rating, comment, created_on
	          FROM reviews WHERE car_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, carID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.CarID, &rv.BookingID, &rv.Rating, &rv.Comment, &rv.CreatedOn); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, count, rows.Err()
}
