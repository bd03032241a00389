// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"

	"github.com/studyspark/studyspark/internal/domain/leaderboard"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Cache-aside read: serve the cached board when fresh, otherwise rank
// from the store and repopulate. A broken cache degrades to a recompute,
// never to an error.
// ══════════════════════════════════════════════════════════════════════════════

// GetLeaderboardQuery requests the current leaderboard.
type GetLeaderboardQuery struct {
	// BypassCache forces a recompute from the store.
	BypassCache bool
}

// GetLeaderboardResult contains the leaderboard.
type GetLeaderboardResult struct {
	// Board is the ranked board.
	Board *leaderboard.Board

	// FromCache is true when the board was served from cache.
	FromCache bool
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// GetLeaderboardHandler handles the GetLeaderboardQuery.
type GetLeaderboardHandler struct {
	users  user.Repository
	ranker *leaderboard.Ranker
	cache  leaderboard.Cache
	logger *logger.Logger
}

// NewGetLeaderboardHandler creates the handler. cache may be nil when
// no cache is configured.
func NewGetLeaderboardHandler(
	users user.Repository,
	ranker *leaderboard.Ranker,
	cache leaderboard.Cache,
	log *logger.Logger,
) *GetLeaderboardHandler {
	if log == nil {
		log = logger.Default()
	}
	if ranker == nil {
		ranker = leaderboard.NewRanker()
	}
	return &GetLeaderboardHandler{
		users:  users,
		ranker: ranker,
		cache:  cache,
		logger: log,
	}
}

// Handle executes the query.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) (*GetLeaderboardResult, error) {
	if h.cache != nil && !q.BypassCache {
		board, ok, err := h.cache.Get(ctx)
		if err != nil {
			h.logger.Warn("leaderboard cache read failed", logger.Fields{"error": err.Error()})
		} else if ok {
			return &GetLeaderboardResult{Board: board, FromCache: true}, nil
		}
	}

	users, err := h.users.List(ctx)
	if err != nil {
		return nil, err
	}

	board := h.ranker.Rank(users)

	if h.cache != nil {
		if err := h.cache.Set(ctx, board, 0); err != nil {
			h.logger.Warn("leaderboard cache write failed", logger.Fields{"error": err.Error()})
		}
	}

	return &GetLeaderboardResult{Board: board, FromCache: false}, nil
}
