package flash

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"ticketdesk/internal/cache"
)

// Flash categories, matching the two the views distinguish.
const (
	CategorySuccess = "success"
	CategoryDanger  = "danger"
)

const (
	flashKeyPrefix = "flash:"
	flashTTL       = 10 * time.Minute
	cookieName     = "flash_token"
)

// Message is a one-shot, category-tagged status text attached to the next
// rendered response.
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// StoreInterface defines the interface for flash message operations.
type StoreInterface interface {
	Push(ctx context.Context, scope, category, text string) error
	PopAll(ctx context.Context, scope string) []Message
}

// Store keeps pending flash messages in a Redis list per scope. Pushes are
// server-side appends, so concurrent requests under one scope never lose
// messages. Messages survive exactly one redirect: the next view that pops
// them drains the key.
type Store struct {
	cache *cache.Client
}

// Ensure Store implements StoreInterface
var _ StoreInterface = (*Store)(nil)

// NewStore creates a Redis-backed flash store.
func NewStore(cache *cache.Client) *Store {
	return &Store{cache: cache}
}

// Push appends a message to the pending list for the scope.
func (s *Store) Push(ctx context.Context, scope, category, text string) error {
	payload, err := json.Marshal(Message{Category: category, Text: text})
	if err != nil {
		return err
	}
	return s.cache.RPush(ctx, flashKeyPrefix+scope, payload, flashTTL)
}

// PopAll returns and clears all pending messages for the scope.
func (s *Store) PopAll(ctx context.Context, scope string) []Message {
	entries, err := s.cache.List(ctx, flashKeyPrefix+scope)
	if err != nil || len(entries) == 0 {
		return nil
	}
	_ = s.cache.Delete(ctx, flashKeyPrefix+scope)

	messages := make([]Message, 0, len(entries))
	for _, entry := range entries {
		var msg Message
		if err := json.Unmarshal(entry, &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages
}

// Scope returns the flash scope for the request, issuing the scope cookie on
// first contact. The cookie only identifies the browser for flash delivery;
// it carries no identity.
func Scope(c echo.Context) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	scope := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    scope,
		Path:     "/",
		HttpOnly: true,
	})
	return scope
}
