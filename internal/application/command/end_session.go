package command

import (
	"context"
	"errors"
	"time"

	"github.com/studyspark/studyspark/internal/domain/leaderboard"
	"github.com/studyspark/studyspark/internal/domain/session"
	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/logger"
	"github.com/studyspark/studyspark/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// END SESSION COMMAND
// Closes the open session, credits one point per measured minute and
// re-evaluates badges. A session ends exactly once.
// ══════════════════════════════════════════════════════════════════════════════

// EndSessionCommand contains the data to end a session.
type EndSessionCommand struct {
	// UserID is the internal ID of the session owner.
	UserID string
}

// Validate validates the command.
func (c EndSessionCommand) Validate() error {
	if c.UserID == "" {
		return errors.New("end_session: user_id is required")
	}
	return nil
}

// EndSessionResult contains the result of ending a session.
type EndSessionResult struct {
	// SessionID is the ID of the closed session.
	SessionID string

	// DurationMinutes is the measured duration in minutes.
	DurationMinutes float64

	// PointsEarned equals the measured minutes.
	PointsEarned float64

	// TotalPoints is the user's balance after crediting.
	TotalPoints float64

	// Anomaly is true when the end time preceded the start time and the
	// duration was clamped to zero.
	Anomaly bool

	// NewBadges lists badges earned by this session.
	NewBadges []user.BadgeID

	// EndedAt is the session end time.
	EndedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// EndSessionHandler handles the EndSessionCommand.
type EndSessionHandler struct {
	users      user.Repository
	sessions   session.Repository
	badges     *user.BadgeEvaluator
	boardCache leaderboard.Cache
	logger     *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewEndSessionHandler creates the handler. boardCache may be nil when
// no cache is configured.
func NewEndSessionHandler(
	users user.Repository,
	sessions session.Repository,
	boardCache leaderboard.Cache,
	log *logger.Logger,
) *EndSessionHandler {
	if log == nil {
		log = logger.Default()
	}
	return &EndSessionHandler{
		users:      users,
		sessions:   sessions,
		badges:     user.NewBadgeEvaluator(),
		boardCache: boardCache,
		logger:     log,
		now:        time.Now,
	}
}

// WithClock overrides the handler's clock.
func (h *EndSessionHandler) WithClock(now func() time.Time) *EndSessionHandler {
	h.now = now
	return h
}

// Handle executes the command.
func (h *EndSessionHandler) Handle(ctx context.Context, cmd EndSessionCommand) (*EndSessionResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := h.sessions.FindActive(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	endedAt := h.now()
	anomaly, err := s.End(endedAt)
	if err != nil {
		return nil, err
	}
	if anomaly {
		h.logger.Warn("session end preceded start, duration clamped to zero", logger.Fields{
			"session_id": s.ID,
			"user_id":    cmd.UserID,
		})
	}

	if err := h.sessions.Save(ctx, s); err != nil {
		return nil, err
	}

	u, err := h.users.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	minutes := s.Duration()
	if err := u.AddPoints(user.Points(minutes)); err != nil {
		return nil, err
	}

	// Ending a session counts as studying today. Same-day idempotence
	// makes this a no-op when the user already logged in today.
	if err := u.UpdateStreak(timeutil.DateOf(endedAt)); err != nil {
		if !errors.Is(err, shared.ErrStreakDateAnomaly) {
			return nil, err
		}
		h.logger.Warn("stored last study date is in the future, streak left untouched", logger.Fields{
			"user_id": cmd.UserID,
		})
	}

	newBadges := h.badges.Evaluate(u)

	if err := h.users.Save(ctx, u); err != nil {
		return nil, err
	}

	if h.boardCache != nil {
		if err := h.boardCache.Invalidate(ctx); err != nil {
			h.logger.Warn("failed to invalidate leaderboard cache", logger.Fields{"error": err.Error()})
		}
	}

	h.logger.Info("session ended", logger.Fields{
		"session_id": s.ID,
		"user_id":    cmd.UserID,
		"minutes":    minutes,
		"points":     float64(u.Points),
	})

	return &EndSessionResult{
		SessionID:       s.ID,
		DurationMinutes: minutes,
		PointsEarned:    minutes,
		TotalPoints:     float64(u.Points),
		Anomaly:         anomaly,
		NewBadges:       newBadges,
		EndedAt:         endedAt,
	}, nil
}
