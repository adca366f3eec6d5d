package logomotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded key", func(t *testing.T) {
		ks := NewKeyStore(" abc ", nil)
		ok, err := ks.HasSelectedCredential(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "abc", ks.APIKey())
	})

	t.Run("picker sets key", func(t *testing.T) {
		ks := NewKeyStore("", func(ctx context.Context) (string, error) { return "picked", nil })
		require.NoError(t, ensureCredential(ctx, ks, 0))
		assert.Equal(t, "picked", ks.APIKey())
	})

	t.Run("picker cancelled", func(t *testing.T) {
		ks := NewKeyStore("", func(ctx context.Context) (string, error) { return "", nil })
		err := ensureCredential(ctx, ks, 0)
		assert.True(t, IsCredentialError(err))
		assert.ErrorIs(t, err, ErrNoCredential)
	})

	t.Run("no picker", func(t *testing.T) {
		err := ensureCredential(ctx, NewKeyStore("", nil), 0)
		assert.ErrorIs(t, err, ErrNoCredential)
	})

	t.Run("picker error", func(t *testing.T) {
		boom := errors.New("closed")
		ks := NewKeyStore("", func(ctx context.Context) (string, error) { return "", boom })
		err := ensureCredential(ctx, ks, 0)
		assert.True(t, IsCredentialError(err))
		assert.ErrorIs(t, err, boom)
	})
}

func TestEnsureCredential_NilGate(t *testing.T) {
	assert.NoError(t, ensureCredential(context.Background(), nil, time.Hour))
}

func TestEnsureCredential_SettleHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ks := NewKeyStore("", func(context.Context) (string, error) {
		cancel()
		return "late", nil
	})

	err := ensureCredential(ctx, ks, time.Hour)
	assert.True(t, IsCredentialError(err))
	assert.ErrorIs(t, err, context.Canceled)
}
