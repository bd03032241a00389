package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspark/studyspark/internal/domain/session"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/internal/infrastructure/external/quotes"
	"github.com/studyspark/studyspark/internal/infrastructure/persistence/memory"
)

type fakeQuotes struct {
	quote *quotes.Quote
	err   error
}

func (f *fakeQuotes) Random(context.Context) (*quotes.Quote, error) {
	return f.quote, f.err
}

func seedUser(t *testing.T, store *memory.Store, username string) *user.User {
	t.Helper()

	u, err := user.NewUser(user.NewUserParams{
		ID:           uuid.NewString(),
		Username:     user.Username(username),
		PasswordHash: "x",
	})
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func seedCompletedSession(t *testing.T, store *memory.Store, ownerID string, start time.Time, d time.Duration) {
	t.Helper()

	s, err := session.NewSession(uuid.NewString(), ownerID, "", start)
	require.NoError(t, err)
	_, err = s.End(start.Add(d))
	require.NoError(t, err)
	_, err = store.Sessions().Create(context.Background(), s)
	require.NoError(t, err)
}

func TestGetProgressReport_TruncatesFractionalMinutes(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "alice")

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	seedCompletedSession(t, store, u.ID, start, 42*time.Minute+30*time.Second)

	// An open session contributes nothing to the totals
	open, err := session.NewSession(uuid.NewString(), u.ID, "ongoing", start.Add(2*time.Hour))
	require.NoError(t, err)
	_, err = store.Sessions().Create(context.Background(), open)
	require.NoError(t, err)

	handler := NewGetProgressReportHandler(store.Users(), store.Sessions(), nil, nil)
	res, err := handler.Handle(context.Background(), GetProgressReportQuery{UserID: u.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalSessions)
	assert.Equal(t, 1, res.CompletedSessions)
	assert.Equal(t, 42, res.TotalStudyMinutes)
	assert.Equal(t, "0 hours and 42 minutes", res.TotalStudyTime)
}

func TestGetProgressReport_MessageBrackets(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "alice")

	handler := NewGetProgressReportHandler(store.Users(), store.Sessions(), nil, nil)
	res, err := handler.Handle(context.Background(), GetProgressReportQuery{UserID: u.ID})
	require.NoError(t, err)

	assert.Equal(t,
		"It's a great day to start a new streak! "+
			"Every minute of study counts. Keep adding to your points! "+
			"Complete challenges to earn your first badge!",
		res.Message)
}

func TestGetProgressReport_AwardsAndPersistsBadges(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "alice")

	u.Streak = 7
	require.NoError(t, u.AddPoints(1200))
	require.NoError(t, store.Users().Save(context.Background(), u))

	handler := NewGetProgressReportHandler(store.Users(), store.Sessions(), nil, nil)
	res, err := handler.Handle(context.Background(), GetProgressReportQuery{UserID: u.ID})
	require.NoError(t, err)

	assert.ElementsMatch(t, []user.BadgeID{user.BadgeSevenDayStreak, user.BadgeThousandPoints}, res.NewBadges)
	require.Len(t, res.Badges, 2)
	assert.Equal(t, "7-Day Streak", res.Badges[0].Name)
	assert.Equal(t, "1000 Points", res.Badges[1].Name)

	// Re-running awards nothing new
	res, err = handler.Handle(context.Background(), GetProgressReportQuery{UserID: u.ID})
	require.NoError(t, err)
	assert.Empty(t, res.NewBadges)
	assert.Len(t, res.Badges, 2)

	saved, err := store.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.BadgeCount())
}

func TestGetProgressReport_QuoteIsOptional(t *testing.T) {
	store := memory.NewStore()
	u := seedUser(t, store, "alice")

	t.Run("quote included", func(t *testing.T) {
		provider := &fakeQuotes{quote: &quotes.Quote{Text: "Keep going.", Author: "Coach"}}
		handler := NewGetProgressReportHandler(store.Users(), store.Sessions(), provider, nil)

		res, err := handler.Handle(context.Background(), GetProgressReportQuery{UserID: u.ID, IncludeQuote: true})
		require.NoError(t, err)
		assert.Equal(t, `"Keep going." - Coach`, res.Quote)
	})

	t.Run("quote failure degrades to empty", func(t *testing.T) {
		provider := &fakeQuotes{err: errors.New("api down")}
		handler := NewGetProgressReportHandler(store.Users(), store.Sessions(), provider, nil)

		res, err := handler.Handle(context.Background(), GetProgressReportQuery{UserID: u.ID, IncludeQuote: true})
		require.NoError(t, err)
		assert.Empty(t, res.Quote)
	})

	t.Run("quote not requested", func(t *testing.T) {
		provider := &fakeQuotes{quote: &quotes.Quote{Text: "Unused."}}
		handler := NewGetProgressReportHandler(store.Users(), store.Sessions(), provider, nil)

		res, err := handler.Handle(context.Background(), GetProgressReportQuery{UserID: u.ID})
		require.NoError(t, err)
		assert.Empty(t, res.Quote)
	})
}
