package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"ticketdesk/internal/flash"
	"ticketdesk/internal/model"
)

// fakeFlashStore records pushed messages so tests can assert on the
// flash+redirect contract without Redis.
type fakeFlashStore struct {
	mu      sync.Mutex
	pushed  []flash.Message
	pending []flash.Message
}

var _ flash.StoreInterface = (*fakeFlashStore)(nil)

func (f *fakeFlashStore) Push(ctx context.Context, scope, category, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, flash.Message{Category: category, Text: text})
	return nil
}

func (f *fakeFlashStore) PopAll(ctx context.Context, scope string) []flash.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.pending
	f.pending = nil
	return out
}

func (f *fakeFlashStore) lastPushed(t *testing.T) flash.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.pushed)
	return f.pushed[len(f.pushed)-1]
}

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

// newTestContext builds a request context the way the middleware chain would
// leave it: JSON body bound, current user resolved.
func newTestContext(e *echo.Echo, method, target, body string, user *model.User) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set("currentUser", user)
	}
	return c, rec
}
