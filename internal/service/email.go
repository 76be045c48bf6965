package service

import (
	"context"
	"fmt"
	"time"

	"carshare-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(_ context.Context, to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name string, booking *domain.Booking, car *domain.Car) error {
	subject := fmt.Sprintf("Booking Confirmed: %s %s", car.Brand, car.Model)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking #%d is confirmed.\n\nCar: %s %s (%s)\nFrom: %s\nTo: %s\nTotal: $%.2f\n\nBest regards,\nThe Carshare Team",
		name, booking.ID, car.Brand, car.Model, car.RegistrationNumber,
		booking.StartDate.Format(time.RFC1123), booking.EndDate.Format(time.RFC1123),
		float64(booking.TotalCostCents)/100,
	)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, email, name string, booking *domain.Booking, reason string) error {
	subject := fmt.Sprintf("Booking #%d Cancelled", booking.ID)
	body := fmt.Sprintf("Hello %s,\n\nYour booking #%d has been cancelled.", name, booking.ID)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe Carshare Team"
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendEmailVerification(ctx context.Context, email, name, token string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nWelcome to Carshare. Please use the following token to verify your email address:\n\n%s\n\nThe token expires shortly, so verify soon.\n\nBest regards,\nThe Carshare Team",
		name, token,
	)
	return s.send(ctx, email, name, "Verify Your Email", body)
}

func (s *emailService) SendPasswordReset(ctx context.Context, email, name, token string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your account. Use the following token to set a new password:\n\n%s\n\nIf you did not request this, you can ignore this email.\n\nBest regards,\nThe Carshare Team",
		name, token,
	)
	return s.send(ctx, email, name, "Password Reset", body)
}
