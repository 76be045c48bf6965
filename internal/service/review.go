package service

import (
	"context"
	"fmt"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/repository"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, bookingRepo repository.BookingRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, bookingRepo: bookingRepo}
}

// CreateReview requires a completed booking for the car by the same
// user, so ratings come from actual renters.
func (s *reviewService) CreateReview(ctx context.Context, userID, carID int32, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrInvalidInput)
	}

	ok, err := s.bookingRepo.HasCompletedBooking(ctx, userID, carID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: reviews require a completed booking for the car", domain.ErrInvalidState)
	}

	review := &domain.Review{
		UserID:  userID,
		CarID:   carID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) ListCarReviews(ctx context.Context, carID int32, page, pageSize int32) ([]domain.Review, int32, error) {
	return s.reviewRepo.ListByCar(ctx, carID, page, pageSize)
}
