package services

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/hostelhub/hostel-service/internal/auth"
	"github.com/hostelhub/hostel-service/internal/repositories"
	"github.com/hostelhub/hostel-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	sessions  *auth.SessionStore
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, sessions *auth.SessionStore, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		sessions:  sessions,
		logger:    logger,
		validator: v,
	}
}

// Login verifies credentials and issues a session token. A failed lookup
// and a failed password check both return ErrInvalidCredentials so the
// response does not leak which usernames exist.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*AdminInfo, string, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, "", errs
	}

	admin, err := s.repo.Admin().GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up admin: %w", err)
	}
	if admin == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, admin.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Admin logged in", "admin_id", admin.ID, "username", admin.Username)

	return &AdminInfo{
		ID:       admin.ID,
		Name:     admin.Name,
		Email:    admin.Email,
		Username: admin.Username,
	}, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

func (s *authService) GetAdmin(ctx context.Context, adminID uint) (*AdminInfo, error) {
	admin, err := s.repo.Admin().GetByID(ctx, adminID)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin %d: %w", adminID, err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	return &AdminInfo{
		ID:       admin.ID,
		Name:     admin.Name,
		Email:    admin.Email,
		Username: admin.Username,
	}, nil
}
