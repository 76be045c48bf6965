package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/logger"
	"carshare-backend/internal/repository"
)

type carService struct {
	tx      repository.TxRunner
	carRepo repository.CarRepository
}

func NewCarService(tx repository.TxRunner, carRepo repository.CarRepository) CarService {
	return &carService{tx: tx, carRepo: carRepo}
}

func (s *carService) AddCar(ctx context.Context, car *domain.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}
	if car.Status == "" {
		car.Status = domain.CarStatusAvailable
	}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return err
	}
	logger.Info("Car added", "car_id", car.ID, "registration_number", car.RegistrationNumber)
	return nil
}

func (s *carService) GetCar(ctx context.Context, id int32) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, id)
}

// UpdateCar applies fleet edits. Status changes driven by the booking
// lifecycle do not come through here; this path is for maintenance
// flips and rate card changes.
func (s *carService) UpdateCar(ctx context.Context, car *domain.Car) error {
	if err := validateCar(car); err != nil {
		return err
	}
	return s.tx.WithinTx(ctx, func(tx *sql.Tx) error {
		existing, err := s.carRepo.GetForUpdate(ctx, tx, car.ID)
		if err != nil {
			return err
		}
		if existing.Status == domain.CarStatusRented && car.Status != domain.CarStatusRented {
			return fmt.Errorf("%w: car is rented, complete or cancel the booking first", domain.ErrInvalidState)
		}
		if car.Mileage < existing.Mileage {
			return fmt.Errorf("%w: mileage cannot decrease", domain.ErrInvalidInput)
		}
		return s.carRepo.Update(ctx, tx, car)
	})
}

func (s *carService) DeleteCar(ctx context.Context, id int32) error {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if car.Status == domain.CarStatusRented {
		return fmt.Errorf("%w: car is rented", domain.ErrInvalidState)
	}
	return s.carRepo.Delete(ctx, id)
}

func (s *carService) ListCars(ctx context.Context, status string, page, pageSize int32) ([]domain.Car, int32, error) {
	return s.carRepo.List(ctx, status, page, pageSize)
}

func validateCar(car *domain.Car) error {
	if strings.TrimSpace(car.Brand) == "" || strings.TrimSpace(car.Model) == "" {
		return fmt.Errorf("%w: brand and model are required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(car.RegistrationNumber) == "" {
		return fmt.Errorf("%w: registration number is required", domain.ErrInvalidInput)
	}
	if car.MinuteRateCents < 0 || car.HourlyRateCents < 0 || car.DailyRateCents < 0 {
		return fmt.Errorf("%w: rates must not be negative", domain.ErrInvalidInput)
	}
	if car.Mileage < 0 {
		return fmt.Errorf("%w: mileage must not be negative", domain.ErrInvalidInput)
	}
	return nil
}
