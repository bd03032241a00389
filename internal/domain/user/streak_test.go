package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspark/studyspark/internal/domain/shared"
	"github.com/studyspark/studyspark/pkg/timeutil"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	u, err := NewUser(NewUserParams{ID: "u-1", Username: "aruzhan"})
	require.NoError(t, err)
	return u
}

func TestUpdateStreak_FirstActivity(t *testing.T) {
	u := newTestUser(t)
	day := timeutil.Date(2026, 3, 10)

	err := u.UpdateStreak(day)

	require.NoError(t, err)
	assert.Equal(t, 1, u.Streak)
	require.NotNil(t, u.LastStudyDate)
	assert.True(t, u.LastStudyDate.Equal(day))
}

func TestUpdateStreak_ConsecutiveDays(t *testing.T) {
	u := newTestUser(t)
	day := timeutil.Date(2026, 3, 10)

	for i := 0; i < 9; i++ {
		require.NoError(t, u.UpdateStreak(day.AddDate(0, 0, i)))
	}

	assert.Equal(t, 9, u.Streak)
}

func TestUpdateStreak_GapResetsToOne(t *testing.T) {
	tests := []struct {
		name    string
		gapDays int
	}{
		{"two day gap", 2},
		{"week gap", 7},
		{"long gap", 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newTestUser(t)
			day := timeutil.Date(2026, 3, 10)
			require.NoError(t, u.UpdateStreak(day))
			require.NoError(t, u.UpdateStreak(day.AddDate(0, 0, 1)))
			require.Equal(t, 2, u.Streak)

			err := u.UpdateStreak(day.AddDate(0, 0, 1+tt.gapDays))

			require.NoError(t, err)
			assert.Equal(t, 1, u.Streak)
		})
	}
}

func TestUpdateStreak_SameDayIsIdempotent(t *testing.T) {
	u := newTestUser(t)
	day := timeutil.Date(2026, 3, 10)
	require.NoError(t, u.UpdateStreak(day))
	require.NoError(t, u.UpdateStreak(day.AddDate(0, 0, 1)))
	require.Equal(t, 2, u.Streak)

	// Повторный вход в тот же день не увеличивает серию
	require.NoError(t, u.UpdateStreak(day.AddDate(0, 0, 1)))
	require.NoError(t, u.UpdateStreak(day.AddDate(0, 0, 1)))

	assert.Equal(t, 2, u.Streak)
}

func TestUpdateStreak_IgnoresTimeOfDay(t *testing.T) {
	u := newTestUser(t)
	require.NoError(t, u.UpdateStreak(time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)))
	require.NoError(t, u.UpdateStreak(time.Date(2026, 3, 11, 0, 1, 0, 0, time.UTC)))

	assert.Equal(t, 2, u.Streak)
}

func TestUpdateStreak_PastDateIsAnomaly(t *testing.T) {
	u := newTestUser(t)
	day := timeutil.Date(2026, 3, 10)
	require.NoError(t, u.UpdateStreak(day))

	err := u.UpdateStreak(day.AddDate(0, 0, -1))

	require.Error(t, err)
	assert.True(t, shared.IsDataAnomaly(err))
	// Серия и дата не изменились
	assert.Equal(t, 1, u.Streak)
	assert.True(t, u.LastStudyDate.Equal(day))
}

func TestUpdateStreak_NeverNegative(t *testing.T) {
	u := newTestUser(t)
	require.NoError(t, u.UpdateStreak(timeutil.Date(2026, 3, 10)))

	_ = u.UpdateStreak(timeutil.Date(2026, 3, 1))

	assert.GreaterOrEqual(t, u.Streak, 0)
}

func TestStreakBracket(t *testing.T) {
	tests := []struct {
		streak int
		want   StreakBracket
	}{
		{0, StreakBracketNone},
		{1, StreakBracketStarting},
		{2, StreakBracketStarting},
		{3, StreakBracketBuilding},
		{6, StreakBracketBuilding},
		{7, StreakBracketStrong},
		{30, StreakBracketStrong},
	}

	for _, tt := range tests {
		u := &User{Streak: tt.streak}
		assert.Equal(t, tt.want, u.StreakBracket(), "streak=%d", tt.streak)
	}
}
