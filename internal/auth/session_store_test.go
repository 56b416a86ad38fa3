package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Session writes are the one cache operation that must not be lost: a minted
// token without a stored session would bounce every request to login. With the
// backend unavailable, Create and Get fail loudly while the fail-safe
// operations stay silent.
func TestSessionStore_UnavailableBackend(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(nil)

	err := store.Create(ctx, "token-id", 7, time.Minute)
	assert.Error(t, err)

	_, err = store.Get(ctx, "token-id")
	assert.Error(t, err)

	assert.NoError(t, store.Touch(ctx, "token-id", time.Minute))
	assert.NoError(t, store.Delete(ctx, "token-id"))
}
