package redisx

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewClientUnreachable(t *testing.T) {
	_, err := NewClient(context.Background(), "127.0.0.1:1", "", discardLogger())
	assert.Error(t, err)
}

func TestLocalLockerAlwaysGrants(t *testing.T) {
	var l LocalLocker
	release, err := l.Obtain(context.Background(), "k", time.Second)
	require.NoError(t, err)
	assert.NoError(t, release(context.Background()))
}

// Runs only when REDIS_TEST_ADDRESS points at a disposable instance.
func TestLockerExclusive(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDRESS not set")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, addr, "", discardLogger())
	require.NoError(t, err)
	defer client.Close()

	locker := NewLocker(client)
	key := "test-lock:" + uuid.NewString()

	release, err := locker.Obtain(ctx, key, 5*time.Second)
	require.NoError(t, err)

	_, err = locker.Obtain(ctx, key, 5*time.Second)
	assert.ErrorIs(t, err, ports.ErrLockNotObtained)

	require.NoError(t, release(ctx))
	require.NoError(t, release(ctx))

	again, err := locker.Obtain(ctx, key, 5*time.Second)
	require.NoError(t, err)
	assert.NoError(t, again(ctx))
}
