package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AppendAndRecent(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, lang := range []string{"fr", "ja", "fr"} {
		rec := NewRecord(lang)
		rec.Started = base.Add(time.Duration(i) * time.Minute)
		rec.Duration = 3 * time.Second
		rec.Outcome = OutcomeSuccess
		require.NoError(t, store.Append(ctx, rec))
	}

	recs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "fr", recs[0].Language, "newest first")
	assert.Equal(t, OutcomeSuccess, recs[0].Outcome)
	assert.Equal(t, 3*time.Second, recs[0].Duration)
	assert.True(t, recs[0].Started.After(recs[1].Started))
}

func TestStore_RecentLimit(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	for range 5 {
		rec := NewRecord("fr")
		rec.Outcome = OutcomeFailed
		rec.ExitCode = 2
		require.NoError(t, store.Append(ctx, rec))
	}

	recs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, 2, recs[0].ExitCode)
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	require.NoError(t, err)
	rec := NewRecord("fr")
	rec.Outcome = OutcomeSuccess
	require.NoError(t, store.Append(context.Background(), rec))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	recs, err := reopened.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
}
