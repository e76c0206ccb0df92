package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kelly-montecarlo/internal/storage"
)

func TestRunStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewRunStore(0)

	run := &storage.Run{ID: "run-1", CreatedAt: time.Now(), BlendedKelly: 1.5}
	require.NoError(t, s.Save(ctx, run))

	got, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1.5, got.BlendedKelly)

	got.BlendedKelly = 9
	again, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1.5, again.BlendedKelly)
}

func TestRunStoreErrors(t *testing.T) {
	ctx := context.Background()
	s := NewRunStore(0)

	assert.ErrorIs(t, s.Save(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, s.Save(ctx, &storage.Run{}), storage.ErrInvalidInput)

	require.NoError(t, s.Save(ctx, &storage.Run{ID: "dup"}))
	assert.ErrorIs(t, s.Save(ctx, &storage.Run{ID: "dup"}), storage.ErrDuplicateKey)

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewRunStore(time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, &storage.Run{ID: "a"}))
	_, err := s.Get(ctx, "a")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// An expired ID can be reused.
	require.NoError(t, s.Save(ctx, &storage.Run{ID: "a"}))
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, s.Prune())
}

func TestRunStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewRunStore(0)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, s.Save(ctx, &storage.Run{ID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}))
	}

	runs, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
}

func TestRunStoreJanitor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewRunStore(time.Millisecond)
	require.NoError(t, s.Save(ctx, &storage.Run{ID: "short"}))
	s.StartJanitor(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return len(s.data) == 0
	}, time.Second, 5*time.Millisecond)
}
