package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspark/studyspark/internal/domain/leaderboard"
	"github.com/studyspark/studyspark/internal/infrastructure/persistence/memory"
)

type fakeBoardCache struct {
	board      *leaderboard.Board
	gets, sets int
}

func (f *fakeBoardCache) Get(context.Context) (*leaderboard.Board, bool, error) {
	f.gets++
	return f.board, f.board != nil, nil
}

func (f *fakeBoardCache) Set(_ context.Context, board *leaderboard.Board, _ time.Duration) error {
	f.sets++
	f.board = board
	return nil
}

func (f *fakeBoardCache) Invalidate(context.Context) error {
	f.board = nil
	return nil
}

func TestGetLeaderboard_CacheAside(t *testing.T) {
	store := memory.NewStore()
	for _, name := range []string{"alice", "bob", "carol"} {
		seedUser(t, store, name)
	}

	cache := &fakeBoardCache{}
	handler := NewGetLeaderboardHandler(store.Users(), nil, cache, nil)

	// Miss: computed from the store and cached
	res, err := handler.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, 3, res.Board.TotalUsers)
	assert.Equal(t, 1, cache.sets)

	// Hit: served from cache, store untouched
	res, err = handler.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)
	assert.True(t, res.FromCache)
	assert.Equal(t, 1, cache.sets)

	// Bypass forces a recompute
	res, err = handler.Handle(context.Background(), GetLeaderboardQuery{BypassCache: true})
	require.NoError(t, err)
	assert.False(t, res.FromCache)
	assert.Equal(t, 2, cache.sets)
}

func TestGetLeaderboard_NoCacheConfigured(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "alice")
	u.Streak = 5
	require.NoError(t, store.Users().Save(context.Background(), u))

	handler := NewGetLeaderboardHandler(store.Users(), nil, nil, nil)
	res, err := handler.Handle(context.Background(), GetLeaderboardQuery{})
	require.NoError(t, err)

	require.Len(t, res.Board.Entries, 1)
	assert.Equal(t, 1, res.Board.Entries[0].Rank)
	assert.Equal(t, "alice", res.Board.Entries[0].Username)
	assert.Equal(t, 5, res.Board.Entries[0].Streak)
}
