package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coachdesk/api/internal/models"
	pkgauth "github.com/coachdesk/api/pkg/auth"
)

// UserDirectory is the slice of the user store the auth flow needs.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenIssuer mints and validates the JWT pair.
type TokenIssuer interface {
	GenerateAccessToken(userID, email string, role models.Role) (string, error)
	GenerateRefreshToken(userID, email string, role models.Role) (string, error)
	ValidateToken(tokenString string) (*models.TokenClaims, error)
}

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	users  UserDirectory
	tokens TokenIssuer
	logger *slog.Logger
}

func NewAuthService(users UserDirectory, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		logExecFailure(s.logger, "LoginUsecase", err)
		return nil, models.ErrInternalServer
	}

	if user.Status != "active" {
		return nil, models.ErrUnauthorized
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, models.ErrUnauthorized
	}

	return s.issuePair(user)
}

// Refresh exchanges a valid refresh token for a new pair. The role is
// re-read from the directory so role changes take effect on rotation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil || claims.Type != "refresh" {
		return nil, models.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		logExecFailure(s.logger, "RefreshTokenUsecase", err)
		return nil, models.ErrInternalServer
	}

	if user.Status != "active" {
		return nil, models.ErrUnauthorized
	}

	return s.issuePair(user)
}

func (s *AuthService) issuePair(user *models.User) (*TokenPair, error) {
	role := models.Role(user.Type)

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, role)
	if err != nil {
		logExecFailure(s.logger, "LoginUsecase", err)
		return nil, models.ErrInternalServer
	}

	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, role)
	if err != nil {
		logExecFailure(s.logger, "LoginUsecase", err)
		return nil, models.ErrInternalServer
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
