package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ticketdesk/internal/cache"
	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/model"
	"ticketdesk/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user reads and the admin-only administration
// operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, actor *model.User) ([]model.User, error)
	SetRole(ctx context.Context, actor *model.User, targetID uint, role string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser returns a user by ID, served from cache when possible. The session
// middleware calls this on every protected request.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ListUsers returns every user. Admin only.
func (s *userService) ListUsers(ctx context.Context, actor *model.User) ([]model.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.List(ctx)
}

// SetRole overwrites the role of the target user. Admin only; an unknown role
// is rejected before any write. Nothing stops an admin from demoting
// themself.
func (s *userService) SetRole(ctx context.Context, actor *model.User, targetID uint, role string) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	parsed, err := model.ParseRole(role)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRole(ctx, targetID, parsed); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}

	// drop the stale cached copy so the new role is visible immediately
	_ = s.cache.Delete(ctx, s.cacheKey(targetID))

	return s.repo.FindByID(ctx, targetID)
}
