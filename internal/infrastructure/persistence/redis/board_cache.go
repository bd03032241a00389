package redis

import (
	"context"
	"errors"
	"time"

	"github.com/studyspark/studyspark/internal/domain/leaderboard"
)

// ══════════════════════════════════════════════════════════════════════════════
// BOARD CACHE
// ══════════════════════════════════════════════════════════════════════════════

// keyBoard holds the whole ranked board as one JSON value. The board is
// small (top 10) and ranking depends on three sort keys, so a sorted set
// per key buys nothing over caching the computed result.
const keyBoard = PrefixLeaderboard + "board"

// cachedBoard is the wire form of a leaderboard snapshot.
type cachedBoard struct {
	Entries     []cachedEntry `json:"entries"`
	TotalUsers  int           `json:"total_users"`
	GeneratedAt time.Time     `json:"generated_at"`
}

type cachedEntry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	Streak     int     `json:"streak"`
	Points     float64 `json:"points"`
	BadgeCount int     `json:"badge_count"`
}

// BoardCache caches computed leaderboard snapshots in Redis. It
// implements leaderboard.Cache; a miss is signalled by the found flag,
// not an error, so callers fall through to a recompute.
type BoardCache struct {
	cache *Cache
}

// NewBoardCache creates a new BoardCache instance.
func NewBoardCache(cache *Cache) *BoardCache {
	return &BoardCache{cache: cache}
}

// Get returns the cached board, if present.
func (b *BoardCache) Get(ctx context.Context) (*leaderboard.Board, bool, error) {
	var cb cachedBoard
	err := b.cache.Get(ctx, keyBoard, &cb)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, false, nil
		}
		return nil, false, err
	}

	board := &leaderboard.Board{
		Entries:     make([]leaderboard.Entry, len(cb.Entries)),
		TotalUsers:  cb.TotalUsers,
		GeneratedAt: cb.GeneratedAt,
	}
	for i, e := range cb.Entries {
		board.Entries[i] = leaderboard.Entry{
			Rank:       e.Rank,
			UserID:     e.UserID,
			Username:   e.Username,
			Streak:     e.Streak,
			Points:     e.Points,
			BadgeCount: e.BadgeCount,
		}
	}
	return board, true, nil
}

// Set stores a board snapshot with the given TTL.
func (b *BoardCache) Set(ctx context.Context, board *leaderboard.Board, ttl time.Duration) error {
	if board == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = TTLLeaderboard
	}

	cb := cachedBoard{
		Entries:     make([]cachedEntry, len(board.Entries)),
		TotalUsers:  board.TotalUsers,
		GeneratedAt: board.GeneratedAt,
	}
	for i, e := range board.Entries {
		cb.Entries[i] = cachedEntry{
			Rank:       e.Rank,
			UserID:     e.UserID,
			Username:   e.Username,
			Streak:     e.Streak,
			Points:     e.Points,
			BadgeCount: e.BadgeCount,
		}
	}
	return b.cache.Set(ctx, keyBoard, cb, ttl)
}

// Invalidate drops the cached board. Called after any write that can
// change ranking (session end, badge award, registration).
func (b *BoardCache) Invalidate(ctx context.Context) error {
	return b.cache.Delete(ctx, keyBoard)
}
