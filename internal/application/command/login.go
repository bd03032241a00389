package command

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/studyspark/studyspark/internal/domain/leaderboard"
	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/pkg/logger"
	"github.com/studyspark/studyspark/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOGIN COMMAND
// A successful login counts as the day's study activity: it advances or
// resets the streak and re-evaluates streak badges. Logging in twice on
// the same day changes nothing.
// ══════════════════════════════════════════════════════════════════════════════

// LoginCommand contains login credentials.
type LoginCommand struct {
	// Username identifies the account.
	Username string

	// Password is the plaintext password to verify.
	Password string
}

// Validate validates the command.
func (c LoginCommand) Validate() error {
	if c.Username == "" {
		return errors.New("login: username is required")
	}
	if c.Password == "" {
		return errors.New("login: password is required")
	}
	return nil
}

// LoginResult contains the result of a login.
type LoginResult struct {
	// UserID is the internal ID of the user.
	UserID string

	// Username is the account's username.
	Username string

	// Streak is the streak after the login was counted.
	Streak int

	// StreakExtended is true when the streak grew or restarted today.
	StreakExtended bool

	// NewBadges lists badges earned by this login.
	NewBadges []user.BadgeID

	// LoggedInAt is when the login was processed.
	LoggedInAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// LoginHandler handles the LoginCommand.
type LoginHandler struct {
	users      user.Repository
	badges     *user.BadgeEvaluator
	boardCache leaderboard.Cache
	logger     *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewLoginHandler creates the handler. boardCache may be nil when no
// cache is configured.
func NewLoginHandler(users user.Repository, boardCache leaderboard.Cache, log *logger.Logger) *LoginHandler {
	if log == nil {
		log = logger.Default()
	}
	return &LoginHandler{
		users:      users,
		badges:     user.NewBadgeEvaluator(),
		boardCache: boardCache,
		logger:     log,
		now:        time.Now,
	}
}

// WithClock overrides the handler's clock.
func (h *LoginHandler) WithClock(now func() time.Time) *LoginHandler {
	h.now = now
	return h
}

// Handle executes the command.
func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	u, err := h.users.GetByUsername(ctx, user.Username(cmd.Username))
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	today := timeutil.DateOf(h.now())
	before := u.Streak

	if err := u.UpdateStreak(today); err != nil {
		if !errors.Is(err, shared.ErrStreakDateAnomaly) {
			return nil, err
		}
		// A recorded study date in the future means the clock or the data
		// is wrong. The login still succeeds; the streak stays untouched.
		h.logger.Warn("streak date anomaly, streak not updated", logger.Fields{
			"user_id":         u.ID,
			"last_study_date": u.LastStudyDate.Format("2006-01-02"),
			"today":           timeutil.FormatDate(today),
		})
	}

	newBadges := h.badges.Evaluate(u)

	if err := h.users.Save(ctx, u); err != nil {
		return nil, err
	}

	if u.Streak != before && h.boardCache != nil {
		if err := h.boardCache.Invalidate(ctx); err != nil {
			h.logger.Warn("failed to invalidate leaderboard cache", logger.Fields{"error": err.Error()})
		}
	}

	h.logger.Info("user logged in", logger.Fields{
		"user_id": u.ID,
		"streak":  u.Streak,
	})

	return &LoginResult{
		UserID:         u.ID,
		Username:       u.Username.String(),
		Streak:         u.Streak,
		StreakExtended: u.Streak != before,
		NewBadges:      newBadges,
		LoggedInAt:     h.now(),
	}, nil
}
