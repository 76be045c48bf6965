package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carshare-backend/internal/domain"
	"carshare-backend/internal/logger"
	"carshare-backend/internal/repository"
	"carshare-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	userRepo     repository.UserRepository
	tokenRepo    repository.AuthTokenRepository
	tokenManager security.TokenManager
	emailSvc     EmailService
	tokenTTL     time.Duration
	now          func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.AuthTokenRepository,
	tokenManager security.TokenManager,
	emailSvc EmailService,
	tokenTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		tokenManager: tokenManager,
		emailSvc:     emailSvc,
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || name == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrInvalidInput)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.UserRoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueAndSendToken(ctx, user, domain.AuthTokenKindEmailVerification); err != nil {
		logger.Warn("Failed to send verification email", "user_id", user.ID, "error", err)
	}

	logger.Info("User signed up", "user_id", user.ID, "email", email)
	return user, nil
}

func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	at, err := s.tokenRepo.Consume(ctx, token, domain.AuthTokenKindEmailVerification, s.now())
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, at.UserID)
	if err != nil {
		return err
	}
	user.EmailVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	logger.Info("Email verified", "user_id", user.ID)
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if !user.EmailVerified {
		return "", "", fmt.Errorf("%w: email not verified", domain.ErrUnauthorized)
	}

	access, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokenManager.ValidateToken(refresh)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", fmt.Errorf("%w: not a refresh token", domain.ErrUnauthorized)
	}
	// The user may have been promoted or disabled since the refresh
	// token was minted; re-read the record.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}

	access, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.tokenManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}

// RequestPasswordReset never discloses whether the email is registered.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Info("Password reset requested for unknown email")
			return nil
		}
		return err
	}
	return s.issueAndSendToken(ctx, user, domain.AuthTokenKindPasswordReset)
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	at, err := s.tokenRepo.Consume(ctx, token, domain.AuthTokenKindPasswordReset, s.now())
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, at.UserID)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	logger.Info("Password reset", "user_id", user.ID)
	return nil
}

func (s *authService) issueAndSendToken(ctx context.Context, user *domain.User, kind domain.AuthTokenKind) error {
	at := &domain.AuthToken{
		UserID:    user.ID,
		Kind:      kind,
		Token:     uuid.NewString(),
		ExpiresOn: s.now().Add(s.tokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, at); err != nil {
		return err
	}
	switch kind {
	case domain.AuthTokenKindEmailVerification:
		return s.emailSvc.SendEmailVerification(ctx, user.Email, user.Name, at.Token)
	case domain.AuthTokenKindPasswordReset:
		return s.emailSvc.SendPasswordReset(ctx, user.Email, user.Name, at.Token)
	}
	return nil
}
