package query

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/studyspark/studyspark/internal/domain/session"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/internal/infrastructure/external/quotes"
	"github.com/studyspark/studyspark/pkg/logger"
	"github.com/studyspark/studyspark/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PROGRESS REPORT QUERY
// Builds the per-user progress summary: totals, badges, personalized
// message. Badge evaluation runs first so the report never understates
// what the user already qualifies for.
// ══════════════════════════════════════════════════════════════════════════════

// GetProgressReportQuery requests a user's progress report.
type GetProgressReportQuery struct {
	// UserID is the internal ID of the user.
	UserID string

	// IncludeQuote requests a motivational quote. Quote failures do not
	// fail the report.
	IncludeQuote bool
}

// Validate validates the query.
func (q GetProgressReportQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("get_progress_report: user_id is required")
	}
	return nil
}

// BadgeInfo describes one earned badge.
type BadgeInfo struct {
	ID          user.BadgeID
	Name        string
	Description string
	Emoji       string
}

// GetProgressReportResult contains the progress report.
type GetProgressReportResult struct {
	// UserID is the internal ID of the user.
	UserID string

	// Username is the account's username.
	Username string

	// Streak is the current streak in days.
	Streak int

	// Points is the current point balance.
	Points float64

	// TotalSessions counts all sessions, open ones included.
	TotalSessions int

	// CompletedSessions counts only completed sessions.
	CompletedSessions int

	// TotalStudyMinutes is the whole-minute total of completed sessions.
	// Fractional minutes are truncated, not rounded.
	TotalStudyMinutes int

	// TotalStudyTime is TotalStudyMinutes as "H hours and M minutes".
	TotalStudyTime string

	// Badges lists earned badges in award order.
	Badges []BadgeInfo

	// NewBadges lists badges first awarded by this report.
	NewBadges []user.BadgeID

	// Message is the three-sentence personalized message.
	Message string

	// Quote is an optional motivational quote, empty when unavailable.
	Quote string

	// GeneratedAt is when the report was built.
	GeneratedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// QuoteProvider supplies motivational quotes. *quotes.Client satisfies
// this; it is an interface so tests can fake it.
type QuoteProvider interface {
	Random(ctx context.Context) (*quotes.Quote, error)
}

// GetProgressReportHandler handles the GetProgressReportQuery.
type GetProgressReportHandler struct {
	users    user.Repository
	sessions session.Repository
	badges   *user.BadgeEvaluator
	quotes   QuoteProvider
	logger   *logger.Logger
}

// NewGetProgressReportHandler creates the handler. quoteProvider may be
// nil when no quote API is configured.
func NewGetProgressReportHandler(
	users user.Repository,
	sessions session.Repository,
	quoteProvider QuoteProvider,
	log *logger.Logger,
) *GetProgressReportHandler {
	if log == nil {
		log = logger.Default()
	}
	return &GetProgressReportHandler{
		users:    users,
		sessions: sessions,
		badges:   user.NewBadgeEvaluator(),
		quotes:   quoteProvider,
		logger:   log,
	}
}

// Handle executes the query.
func (h *GetProgressReportHandler) Handle(ctx context.Context, q GetProgressReportQuery) (*GetProgressReportResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	u, err := h.users.GetByID(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	// Award anything the user already qualifies for before reporting.
	newBadges := h.badges.Evaluate(u)
	if len(newBadges) > 0 {
		if err := h.users.Save(ctx, u); err != nil {
			return nil, err
		}
	}

	sessions, err := h.sessions.ListByOwner(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	var totalMinutes float64
	completed := 0
	for _, s := range sessions {
		if s.Status != session.StatusCompleted {
			continue
		}
		completed++
		totalMinutes += s.Duration()
	}
	wholeMinutes := int(math.Trunc(totalMinutes))

	badges := make([]BadgeInfo, 0, len(u.Badges))
	for _, id := range u.Badges {
		def, ok := user.BadgeDefinitionFor(id)
		if !ok {
			continue
		}
		badges = append(badges, BadgeInfo{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Emoji:       def.Emoji,
		})
	}

	result := &GetProgressReportResult{
		UserID:            u.ID,
		Username:          u.Username.String(),
		Streak:            u.Streak,
		Points:            float64(u.Points),
		TotalSessions:     len(sessions),
		CompletedSessions: completed,
		TotalStudyMinutes: wholeMinutes,
		TotalStudyTime:    timeutil.FormatMinutes(totalMinutes),
		Badges:            badges,
		NewBadges:         newBadges,
		Message:           user.PersonalizedMessage(u),
		GeneratedAt:       time.Now().UTC(),
	}

	if q.IncludeQuote && h.quotes != nil {
		quote, err := h.quotes.Random(ctx)
		if err != nil {
			h.logger.Warn("quote unavailable for report", logger.Fields{"error": err.Error()})
		} else {
			result.Quote = quote.String()
		}
	}

	return result, nil
}
