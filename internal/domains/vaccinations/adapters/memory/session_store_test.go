package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidnguyen27/sep490-PVSM-sub000/internal/domains/vaccinations/application"
)

func TestSessionStore_SaveGetDelete(t *testing.T) {
	store := NewSessionStore()
	ctrl := application.NewController("sess-1", 42, nil)

	require.NoError(t, store.Save(context.Background(), "sess-1", ctrl))
	got, ok := store.Get(context.Background(), "sess-1")
	require.True(t, ok)
	require.Same(t, ctrl, got)

	require.NoError(t, store.Delete(context.Background(), "sess-1"))
	_, ok = store.Get(context.Background(), "sess-1")
	require.False(t, ok)
}

func TestSessionStore_PurgeIdle(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore().WithClock(func() time.Time { return now })

	require.NoError(t, store.Save(context.Background(), "stale", application.NewController("stale", 1, nil)))
	require.NoError(t, store.Save(context.Background(), "fresh", application.NewController("fresh", 2, nil)))

	// The fresh session is touched after time moves on; the stale one is not.
	now = now.Add(45 * time.Minute)
	_, ok := store.Get(context.Background(), "fresh")
	require.True(t, ok)

	now = now.Add(30 * time.Minute)
	require.Equal(t, 1, store.PurgeIdle(time.Hour))

	_, ok = store.Get(context.Background(), "stale")
	require.False(t, ok)
	_, ok = store.Get(context.Background(), "fresh")
	require.True(t, ok)
}

func TestSessionStore_GetRefreshesLastUsed(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := NewSessionStore().WithClock(func() time.Time { return now })

	require.NoError(t, store.Save(context.Background(), "sess-1", application.NewController("sess-1", 42, nil)))

	// Repeated reads keep the session alive past the ttl.
	for i := 0; i < 3; i++ {
		now = now.Add(40 * time.Minute)
		_, ok := store.Get(context.Background(), "sess-1")
		require.True(t, ok)
	}
	require.Equal(t, 0, store.PurgeIdle(time.Hour))
}
