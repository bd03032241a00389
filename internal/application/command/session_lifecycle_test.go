package command

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/internal/domain/user"
	"github.com/studyspark/studyspark/internal/infrastructure/persistence/memory"
)

func registerUser(t *testing.T, store *memory.Store, username string) string {
	t.Helper()

	handler := NewRegisterUserHandler(store.Users(), nil)
	res, err := handler.Handle(context.Background(), RegisterUserCommand{
		Username: username,
		Password: "secret",
	})
	require.NoError(t, err)
	return res.UserID
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	store := memory.NewStore()
	handler := NewRegisterUserHandler(store.Users(), nil)

	_, err := handler.Handle(context.Background(), RegisterUserCommand{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), RegisterUserCommand{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, shared.ErrUserAlreadyExists)
}

func TestRegisterUser_InvalidInput(t *testing.T) {
	store := memory.NewStore()
	handler := NewRegisterUserHandler(store.Users(), nil)

	_, err := handler.Handle(context.Background(), RegisterUserCommand{Username: "a", Password: "secret"})
	assert.ErrorIs(t, err, user.ErrInvalidUsername)

	_, err = handler.Handle(context.Background(), RegisterUserCommand{Username: "alice", Password: "ab"})
	assert.Error(t, err)
}

func TestLogin_StreakProgression(t *testing.T) {
	store := memory.NewStore()
	registerUser(t, store, "alice")

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	handler := NewLoginHandler(store.Users(), nil, nil)

	login := func(at time.Time) *LoginResult {
		res, err := handler.WithClock(fixedClock(at)).Handle(context.Background(), LoginCommand{
			Username: "alice",
			Password: "secret",
		})
		require.NoError(t, err)
		return res
	}

	// First login starts the streak
	res := login(day1)
	assert.Equal(t, 1, res.Streak)
	assert.True(t, res.StreakExtended)

	// Same day again is a no-op
	res = login(day1.Add(8 * time.Hour))
	assert.Equal(t, 1, res.Streak)
	assert.False(t, res.StreakExtended)

	// Next day extends
	res = login(day1.AddDate(0, 0, 1))
	assert.Equal(t, 2, res.Streak)

	// A gap resets to 1
	res = login(day1.AddDate(0, 0, 4))
	assert.Equal(t, 1, res.Streak)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := memory.NewStore()
	registerUser(t, store, "alice")

	handler := NewLoginHandler(store.Users(), nil, nil)
	_, err := handler.Handle(context.Background(), LoginCommand{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)

	// Unknown user yields the same error, not a not-found leak
	_, err = handler.Handle(context.Background(), LoginCommand{Username: "nobody", Password: "secret"})
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestLogin_FutureStudyDateDoesNotBreakLogin(t *testing.T) {
	store := memory.NewStore()
	id := registerUser(t, store, "alice")

	// Corrupt the record: last study date is tomorrow
	u, err := store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	future := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	u.LastStudyDate = &future
	u.Streak = 3
	require.NoError(t, store.Users().Save(context.Background(), u))

	handler := NewLoginHandler(store.Users(), nil, nil)
	res, err := handler.WithClock(fixedClock(time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC))).
		Handle(context.Background(), LoginCommand{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	// Streak and date survive untouched
	assert.Equal(t, 3, res.Streak)
	assert.False(t, res.StreakExtended)

	saved, err := store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, future, *saved.LastStudyDate)
}

func TestStartSession_SecondStartRejected(t *testing.T) {
	store := memory.NewStore()
	id := registerUser(t, store, "alice")

	handler := NewStartSessionHandler(store.Users(), store.Sessions(), nil)

	_, err := handler.Handle(context.Background(), StartSessionCommand{UserID: id, Name: "math"})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), StartSessionCommand{UserID: id, Name: "physics"})
	assert.ErrorIs(t, err, shared.ErrSessionAlreadyActive)
}

func TestStartSession_UnknownUser(t *testing.T) {
	store := memory.NewStore()
	handler := NewStartSessionHandler(store.Users(), store.Sessions(), nil)

	_, err := handler.Handle(context.Background(), StartSessionCommand{UserID: "missing"})
	assert.ErrorIs(t, err, shared.ErrUserNotFound)
}

func TestEndSession_CreditsPoints(t *testing.T) {
	store := memory.NewStore()
	id := registerUser(t, store, "alice")

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	startHandler := NewStartSessionHandler(store.Users(), store.Sessions(), nil).WithClock(fixedClock(start))
	endHandler := NewEndSessionHandler(store.Users(), store.Sessions(), nil, nil).
		WithClock(fixedClock(start.Add(65*time.Minute + 30*time.Second)))

	_, err := startHandler.Handle(context.Background(), StartSessionCommand{UserID: id, Name: "math"})
	require.NoError(t, err)

	res, err := endHandler.Handle(context.Background(), EndSessionCommand{UserID: id})
	require.NoError(t, err)

	assert.InDelta(t, 65.5, res.DurationMinutes, 0.001)
	assert.InDelta(t, 65.5, res.PointsEarned, 0.001)
	assert.InDelta(t, 65.5, res.TotalPoints, 0.001)
	assert.False(t, res.Anomaly)

	// Second end finds nothing open
	_, err = endHandler.Handle(context.Background(), EndSessionCommand{UserID: id})
	assert.ErrorIs(t, err, shared.ErrNoActiveSession)
}

func TestEndSession_WithoutStart(t *testing.T) {
	store := memory.NewStore()
	id := registerUser(t, store, "alice")

	handler := NewEndSessionHandler(store.Users(), store.Sessions(), nil, nil)
	_, err := handler.Handle(context.Background(), EndSessionCommand{UserID: id})
	assert.ErrorIs(t, err, shared.ErrNoActiveSession)
}

func TestEndSession_ClockSkewClampsToZero(t *testing.T) {
	store := memory.NewStore()
	id := registerUser(t, store, "alice")

	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	startHandler := NewStartSessionHandler(store.Users(), store.Sessions(), nil).WithClock(fixedClock(start))
	endHandler := NewEndSessionHandler(store.Users(), store.Sessions(), nil, nil).
		WithClock(fixedClock(start.Add(-10 * time.Minute)))

	_, err := startHandler.Handle(context.Background(), StartSessionCommand{UserID: id})
	require.NoError(t, err)

	res, err := endHandler.Handle(context.Background(), EndSessionCommand{UserID: id})
	require.NoError(t, err)

	assert.True(t, res.Anomaly)
	assert.Zero(t, res.DurationMinutes)
	assert.Zero(t, res.TotalPoints)
}

func TestEndSession_AwardsThousandPointsBadge(t *testing.T) {
	store := memory.NewStore()
	id := registerUser(t, store, "alice")

	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	startHandler := NewStartSessionHandler(store.Users(), store.Sessions(), nil).WithClock(fixedClock(start))
	endHandler := NewEndSessionHandler(store.Users(), store.Sessions(), nil, nil).
		WithClock(fixedClock(start.Add(1000 * time.Minute)))

	_, err := startHandler.Handle(context.Background(), StartSessionCommand{UserID: id})
	require.NoError(t, err)

	res, err := endHandler.Handle(context.Background(), EndSessionCommand{UserID: id})
	require.NoError(t, err)

	assert.Contains(t, res.NewBadges, user.BadgeThousandPoints)

	saved, err := store.Users().GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, saved.HasBadge(user.BadgeThousandPoints))
}
