package auth_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/comms-client/internal/auth"
)

func TestToken_ValidAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{
			name:     "nil token",
			token:    nil,
			expected: false,
		},
		{
			name:     "empty access token",
			token:    &auth.Token{ExpiresAt: now.Add(time.Hour)},
			expected: false,
		},
		{
			name:     "no expiry",
			token:    &auth.Token{AccessToken: "static"},
			expected: true,
		},
		{
			name:     "future expiry",
			token:    &auth.Token{AccessToken: "jwt", ExpiresAt: now.Add(time.Hour)},
			expected: true,
		},
		{
			name:     "expired",
			token:    &auth.Token{AccessToken: "jwt", ExpiresAt: now.Add(-time.Hour)},
			expected: false,
		},
		{
			name:     "expiring within buffer",
			token:    &auth.Token{AccessToken: "jwt", ExpiresAt: now.Add(15 * time.Second)},
			expected: false,
		},
		{
			name:     "expiring just outside buffer",
			token:    &auth.Token{AccessToken: "jwt", ExpiresAt: now.Add(35 * time.Second)},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.ValidAt(now))
		})
	}
}

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, (&auth.Token{AccessToken: "jwt", ExpiresAt: time.Now().Add(time.Hour)}).Valid())
	assert.False(t, (&auth.Token{AccessToken: "jwt", ExpiresAt: time.Now().Add(-time.Minute)}).Valid())
}

func TestTokenStore(t *testing.T) {
	t.Parallel()

	t.Run("new store is empty", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, auth.NewTokenStore().Get())
	})

	t.Run("set get and clear", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()
		store.Set(&auth.Token{AccessToken: "jwt", TokenType: "Bearer"})
		assert.Equal(t, "jwt", store.Get().AccessToken)

		store.Clear()
		assert.Nil(t, store.Get())
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		store := auth.NewTokenStore()

		var wg sync.WaitGroup

		for i := range 4 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				for range 100 {
					if i%2 == 0 {
						store.Set(&auth.Token{AccessToken: "token-a"})
					} else {
						_ = store.Get()
					}
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, "token-a", store.Get().AccessToken)
	})
}
