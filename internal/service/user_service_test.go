package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "ticketdesk/internal/errors"
	"ticketdesk/internal/model"
)

func TestUserService_ListUsers(t *testing.T) {
	t.Run("admin lists everyone", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("List", mock.Anything).Return([]model.User{*owner, *admin}, nil)

		svc := NewUserService(mockRepo, nil)
		users, err := svc.ListUsers(context.Background(), admin)

		assert.NoError(t, err)
		assert.Len(t, users, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		mockRepo := new(MockUserRepository)

		svc := NewUserService(mockRepo, nil)
		users, err := svc.ListUsers(context.Background(), owner)

		assert.Equal(t, apperrors.ErrForbidden, err)
		assert.Nil(t, users)
		mockRepo.AssertNotCalled(t, "List", mock.Anything)
	})
}

func TestUserService_SetRole(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		role          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "admin promotes a user",
			actor: admin,
			role:  "admin",
			setupMock: func(m *MockUserRepository) {
				m.On("UpdateRole", mock.Anything, uint(2), model.RoleAdmin).Return(nil)
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Username: "bob", Role: model.RoleAdmin}, nil)
			},
		},
		{
			name:          "non-admin is forbidden regardless of target",
			actor:         stranger,
			role:          "admin",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:          "unknown role is rejected",
			actor:         admin,
			role:          "superuser",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidRole,
		},
		{
			name:  "missing target",
			actor: admin,
			role:  "user",
			setupMock: func(m *MockUserRepository) {
				m.On("UpdateRole", mock.Anything, uint(2), model.RoleUser).Return(gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.SetRole(context.Background(), tt.actor, 2, tt.role)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				mockRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.RoleAdmin, user.Role)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_SetRole_SelfDemotion(t *testing.T) {
	// nothing guards an admin demoting themself; this pins the behavior
	mockRepo := new(MockUserRepository)
	mockRepo.On("UpdateRole", mock.Anything, admin.ID, model.RoleUser).Return(nil)
	mockRepo.On("FindByID", mock.Anything, admin.ID).Return(&model.User{ID: admin.ID, Username: admin.Username, Role: model.RoleUser}, nil)

	svc := NewUserService(mockRepo, nil)
	user, err := svc.SetRole(context.Background(), admin, admin.ID, "user")

	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	mockRepo.AssertExpectations(t)
}

func TestUserService_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(owner, nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.GetUser(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("missing", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.GetUser(context.Background(), 99)

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}
