package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/whoeats/internal/database"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenAndMigrate(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func TestInsertAndRecent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, d := range []string{"easy", "medium", "hard"} {
		require.NoError(t, s.Insert(ctx, Round{
			ID: d, Owner: "p1", Difficulty: d, Stars: 3 + i, Pairs: 3 + i,
			FinishedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, s.Insert(ctx, Round{ID: "other", Owner: "p2", Difficulty: "easy", Stars: 3, Pairs: 3, FinishedAt: base}))

	got, err := s.Recent(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "hard", got[0].ID)
	assert.Equal(t, "easy", got[2].ID)
	assert.True(t, got[0].FinishedAt.Equal(base.Add(2*time.Minute)))

	got, err = s.Recent(ctx, "p1", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// duplicate ids are ignored
	require.NoError(t, s.Insert(ctx, Round{ID: "easy", Owner: "p1", Difficulty: "easy", FinishedAt: base}))
	got, err = s.Recent(ctx, "p1", 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestClaim(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.Insert(ctx, Round{ID: "r1", Owner: "anon", Difficulty: "easy", Stars: 3, Pairs: 3, FinishedAt: time.Now()}))

	require.NoError(t, s.Claim(ctx, "anon", "user"))

	got, err := s.Recent(ctx, "user", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)

	got, err = s.Recent(ctx, "anon", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
