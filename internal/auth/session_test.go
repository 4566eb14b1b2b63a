package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client, time.Hour), mr
}

func TestSessionLifecycle(t *testing.T) {
	store, _ := newSessionStore(t)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	userID, err := store.Resolve(ctx, sessionID)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)

	require.NoError(t, store.Revoke(ctx, sessionID))

	_, err = store.Resolve(ctx, sessionID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionExpires(t *testing.T) {
	store, mr := newSessionStore(t)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, 42)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Resolve(ctx, sessionID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResolveUnknownSession(t *testing.T) {
	store, _ := newSessionStore(t)

	_, err := store.Resolve(context.Background(), "no-such-session")
	require.ErrorIs(t, err, ErrSessionNotFound)
}
