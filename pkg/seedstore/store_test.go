package seedstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAndGet(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	words := []string{"lorem", "ipsum", "dolor", "ipsum"}
	info, err := s.Insert(ctx, "latin", words)
	require.NoError(t, err)
	assert.NotZero(t, info.Id)
	assert.Equal(t, "latin", info.Name)
	assert.Equal(t, 4, info.WordCount)
	assert.Equal(t, Digest(words), info.Digest)
	assert.WithinDuration(t, time.Now(), info.CreatedAt, time.Minute)

	got, err := s.Get(ctx, "latin")
	require.NoError(t, err)
	assert.Equal(t, words, got, "words must come back in insertion order, duplicates included")

	stored, err := s.Info(ctx, "latin")
	require.NoError(t, err)
	assert.Equal(t, info.Id, stored.Id)
	assert.Equal(t, info.Digest, stored.Digest)
	assert.Equal(t, info.WordCount, stored.WordCount)
	assert.True(t, info.CreatedAt.Equal(stored.CreatedAt), "created_at %v != %v", info.CreatedAt, stored.CreatedAt)
}

func TestInsertErrors(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, "empty", nil)
	assert.ErrorIs(t, err, ErrEmptySeed)

	_, err = s.Insert(ctx, "dup", []string{"one"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "dup", []string{"two"})
	assert.ErrorIs(t, err, ErrSeedExists)

	// The failed insert must not have touched the original words.
	words, err := s.Get(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, words)
}

func TestGetNotFound(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSeedNotFound)
	_, err = s.Info(ctx, "missing")
	assert.ErrorIs(t, err, ErrSeedNotFound)
}

func TestListAndFindByDigest(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	infos, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)

	_, err = s.Insert(ctx, "zeta", []string{"alpha", "beta"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "alpha", []string{"alpha", "beta"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "other", []string{"beta", "alpha"})
	require.NoError(t, err)

	infos, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, []string{"alpha", "other", "zeta"}, []string{infos[0].Name, infos[1].Name, infos[2].Name})

	same, err := s.FindByDigest(ctx, Digest([]string{"alpha", "beta"}))
	require.NoError(t, err)
	require.Len(t, same, 2)
	assert.Equal(t, "alpha", same[0].Name)
	assert.Equal(t, "zeta", same[1].Name)
}

func TestRemove(t *testing.T) {
	db, s := setupTestStore(t)
	ctx := context.Background()

	toDelete, err := s.Insert(ctx, "to_delete", []string{"delete", "these"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "to_keep", []string{"keep", "these"})
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, "to_delete"))
	assert.ErrorIs(t, s.Remove(ctx, "to_delete"), ErrSeedNotFound)

	_, err = s.Info(ctx, "to_delete")
	assert.ErrorIs(t, err, ErrSeedNotFound)

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seed_words WHERE seed_id = ?", toDelete.Id).Scan(&count))
	assert.Zero(t, count, "words of the removed seed must be gone")

	words, err := s.Get(ctx, "to_keep")
	require.NoError(t, err)
	assert.Equal(t, []string{"keep", "these"}, words)
}

func TestDigest(t *testing.T) {
	assert.Equal(t, Digest([]string{"a", "b"}), Digest([]string{"a", "b"}))
	assert.NotEqual(t, Digest([]string{"a", "b"}), Digest([]string{"b", "a"}))
	assert.NotEqual(t, Digest([]string{"ab"}), Digest([]string{"a", "b"}))
	assert.Len(t, Digest(nil), 64)
}
