package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_NoThresholdsReached(t *testing.T) {
	u := newTestUser(t)
	u.Streak = 6
	u.Points = 999

	awarded := NewBadgeEvaluator().Evaluate(u)

	assert.Empty(t, awarded)
	assert.Empty(t, u.Badges)
}

func TestEvaluate_SevenDayStreak(t *testing.T) {
	u := newTestUser(t)
	u.Streak = 7

	awarded := NewBadgeEvaluator().Evaluate(u)

	assert.Equal(t, []BadgeID{BadgeSevenDayStreak}, awarded)
	assert.True(t, u.HasBadge(BadgeSevenDayStreak))
}

func TestEvaluate_AllThresholdsFireTogether(t *testing.T) {
	u := newTestUser(t)
	u.Streak = 30
	u.Points = 1500

	awarded := NewBadgeEvaluator().Evaluate(u)

	assert.ElementsMatch(t, []BadgeID{
		BadgeSevenDayStreak,
		BadgeThirtyDayStreak,
		BadgeThousandPoints,
	}, awarded)
	assert.Equal(t, 3, u.BadgeCount())
}

func TestEvaluate_IsIdempotent(t *testing.T) {
	u := newTestUser(t)
	u.Streak = 7
	u.Points = 1200

	eval := NewBadgeEvaluator()
	first := eval.Evaluate(u)
	second := eval.Evaluate(u)

	assert.Len(t, first, 2)
	assert.Empty(t, second)
	// Значки не задублировались
	assert.Equal(t, 2, u.BadgeCount())
}

func TestEvaluate_ExactThresholds(t *testing.T) {
	u := newTestUser(t)
	u.Points = 1000

	awarded := NewBadgeEvaluator().Evaluate(u)

	assert.Equal(t, []BadgeID{BadgeThousandPoints}, awarded)
}

func TestAwardBadge_NeverDuplicates(t *testing.T) {
	u := newTestUser(t)

	assert.True(t, u.AwardBadge(BadgeSevenDayStreak))
	assert.False(t, u.AwardBadge(BadgeSevenDayStreak))
	assert.Equal(t, 1, u.BadgeCount())
}

func TestBadgeDefinitions_CoverCatalog(t *testing.T) {
	defs := BadgeDefinitions()
	require.Len(t, defs, 3)

	for _, def := range defs {
		assert.True(t, def.ID.IsValid())
		assert.NotEmpty(t, def.Name)
	}

	def, ok := BadgeDefinitionFor(BadgeThousandPoints)
	require.True(t, ok)
	assert.Equal(t, "1000 Points", def.Name)

	_, ok = BadgeDefinitionFor(BadgeID("unknown"))
	assert.False(t, ok)
}

func TestAddPoints(t *testing.T) {
	u := newTestUser(t)

	require.NoError(t, u.AddPoints(65.5))
	assert.InDelta(t, 65.5, float64(u.Points), 1e-9)

	err := u.AddPoints(-10)
	require.Error(t, err)
	assert.InDelta(t, 65.5, float64(u.Points), 1e-9)
}
