package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ticketdesk/internal/auth"
	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and session establishment.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	sessions auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, sessions auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		sessions: sessions,
	}
}

// Register creates a new user with a hashed password. Registration does not
// establish a session; the caller must log in afterwards.
func (s *authService) Register(ctx context.Context, username, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// the unique index catches the race two concurrent registrations win
		// past the lookup above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and establishes a session, returning the signed
// session token. A failed login reveals nothing about which credential was
// wrong.
func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	tokenID, token, err := s.tokens.GenerateSessionToken(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	if err := s.sessions.Create(ctx, tokenID, user.ID, auth.SessionIdleExpiry); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	return token, user, nil
}

// Logout revokes the session behind the token.
func (s *authService) Logout(ctx context.Context, token string) error {
	tokenID, err := s.tokens.ExtractTokenID(token)
	if err != nil {
		return apperrors.ErrInvalidCredentials
	}
	return s.sessions.Delete(ctx, tokenID)
}
