package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/flash"
	"ticketdesk/internal/model"
)

type stubSessionStore struct {
	userID uint
	err    error
}

func (s *stubSessionStore) Create(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	return nil
}

func (s *stubSessionStore) Get(ctx context.Context, tokenID string) (uint, error) {
	return s.userID, s.err
}

func (s *stubSessionStore) Touch(ctx context.Context, tokenID string, ttl time.Duration) error {
	return nil
}

func (s *stubSessionStore) Delete(ctx context.Context, tokenID string) error {
	return nil
}

type stubUserLoader struct {
	user *model.User
	err  error
}

func (l *stubUserLoader) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return l.user, l.err
}

type recordingFlashStore struct {
	mu     sync.Mutex
	pushed []flash.Message
}

var _ flash.StoreInterface = (*recordingFlashStore)(nil)

func (f *recordingFlashStore) Push(ctx context.Context, scope, category, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, flash.Message{Category: category, Text: text})
	return nil
}

func (f *recordingFlashStore) PopAll(ctx context.Context, scope string) []flash.Message {
	return nil
}

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, setup func(echo.Context)) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}

	reached := false
	handler := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, reached
}

func TestLoadUser(t *testing.T) {
	alice := &model.User{ID: 7, Username: "alice", Role: model.RoleUser}

	t.Run("live session resolves the user", func(t *testing.T) {
		mw := LoadUser(&stubSessionStore{userID: 7}, &stubUserLoader{user: alice})
		var loaded *model.User
		record := func(next echo.HandlerFunc) echo.HandlerFunc {
			return mw(func(c echo.Context) error {
				loaded, _ = CurrentUser(c)
				return next(c)
			})
		}
		_, reached := runMiddleware(t, record, func(c echo.Context) {
			claims := &SessionClaims{UserID: 7}
			claims.ID = "token-id"
			c.Set("user", claims)
		})
		assert.True(t, reached)
		assert.Equal(t, alice, loaded)
	})

	t.Run("missing claims redirect to login", func(t *testing.T) {
		mw := LoadUser(&stubSessionStore{userID: 7}, &stubUserLoader{user: alice})
		rec, reached := runMiddleware(t, mw, nil)
		assert.False(t, reached)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("revoked session redirects to login", func(t *testing.T) {
		mw := LoadUser(&stubSessionStore{err: errors.New("session not found")}, &stubUserLoader{user: alice})
		rec, reached := runMiddleware(t, mw, func(c echo.Context) {
			claims := &SessionClaims{UserID: 7}
			claims.ID = "token-id"
			c.Set("user", claims)
		})
		assert.False(t, reached)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("session bound to another user redirects to login", func(t *testing.T) {
		mw := LoadUser(&stubSessionStore{userID: 99}, &stubUserLoader{user: alice})
		rec, reached := runMiddleware(t, mw, func(c echo.Context) {
			claims := &SessionClaims{UserID: 7}
			claims.ID = "token-id"
			c.Set("user", claims)
		})
		assert.False(t, reached)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		flashes := &recordingFlashStore{}
		_, reached := runMiddleware(t, RequireAdmin(flashes), func(c echo.Context) {
			c.Set(userContextKey, &model.User{ID: 3, Username: "root", Role: model.RoleAdmin})
		})
		assert.True(t, reached)
		assert.Empty(t, flashes.pushed)
	})

	t.Run("non-admin gets a danger flash and the ticket list", func(t *testing.T) {
		flashes := &recordingFlashStore{}
		rec, reached := runMiddleware(t, RequireAdmin(flashes), func(c echo.Context) {
			c.Set(userContextKey, &model.User{ID: 7, Username: "alice", Role: model.RoleUser})
		})
		assert.False(t, reached)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/tickets", rec.Header().Get(echo.HeaderLocation))
		require.Len(t, flashes.pushed, 1)
		assert.Equal(t, flash.CategoryDanger, flashes.pushed[0].Category)
	})
}
