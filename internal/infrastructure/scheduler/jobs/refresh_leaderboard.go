package jobs

import (
	"context"
	"fmt"

	"github.com/studyspark/studyspark/internal/domain/leaderboard"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/logger"
)

// RefreshLeaderboardJob recomputes the leaderboard and warms the cache
// so the first viewer after a TTL expiry does not pay for the ranking.
type RefreshLeaderboardJob struct {
	users  user.Repository
	ranker *leaderboard.Ranker
	cache  leaderboard.Cache
	logger *logger.Logger
}

// NewRefreshLeaderboardJob creates the job.
func NewRefreshLeaderboardJob(
	users user.Repository,
	ranker *leaderboard.Ranker,
	cache leaderboard.Cache,
	log *logger.Logger,
) *RefreshLeaderboardJob {
	if log == nil {
		log = logger.Default()
	}
	return &RefreshLeaderboardJob{
		users:  users,
		ranker: ranker,
		cache:  cache,
		logger: log,
	}
}

// Name returns the unique name of the job.
func (j *RefreshLeaderboardJob) Name() string { return "refresh_leaderboard" }

// Run ranks all users and stores the snapshot.
func (j *RefreshLeaderboardJob) Run(ctx context.Context) error {
	users, err := j.users.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh leaderboard: %w", err)
	}

	board := j.ranker.Rank(users)
	if err := j.cache.Set(ctx, board, 0); err != nil {
		return fmt.Errorf("refresh leaderboard: %w", err)
	}

	j.logger.Debug("leaderboard refreshed", logger.Fields{
		"entries":     len(board.Entries),
		"total_users": board.TotalUsers,
	})
	return nil
}
