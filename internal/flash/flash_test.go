package flash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Flash delivery degrades, never breaks: with the backend unavailable Push
// reports the loss and PopAll yields nothing.
func TestStore_UnavailableBackend(t *testing.T) {
	ctx := context.Background()
	store := NewStore(nil)

	assert.Error(t, store.Push(ctx, "scope", CategorySuccess, "hello"))
	assert.Nil(t, store.PopAll(ctx, "scope"))
}

func TestScope_IssuesAndReusesCookie(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	scope := Scope(c)
	require.NotEmpty(t, scope)

	var issued *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == cookieName {
			issued = cookie
		}
	}
	require.NotNil(t, issued)
	assert.Equal(t, scope, issued.Value)
	assert.True(t, issued.HttpOnly)

	// a browser presenting the cookie keeps its scope
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(&http.Cookie{Name: cookieName, Value: scope})
	c2 := e.NewContext(req2, httptest.NewRecorder())
	assert.Equal(t, scope, Scope(c2))
}
