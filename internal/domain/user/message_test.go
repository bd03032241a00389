package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersonalizedMessage_Brackets(t *testing.T) {
	tests := []struct {
		name   string
		streak int
		points float64
		badges int
		want   string
	}{
		{
			name: "fresh user",
			want: "It's a great day to start a new streak! " +
				"Every minute of study counts. Keep adding to your points! " +
				"Complete challenges to earn your first badge!",
		},
		{
			name:   "short streak mid points",
			streak: 2, points: 250,
			want: "Your 2-day streak is a good start! Keep it going. " +
				"You've earned 250 points already. Great progress! " +
				"Complete challenges to earn your first badge!",
		},
		{
			name:   "building streak high points with badges",
			streak: 5, points: 600, badges: 1,
			want: "Awesome! You're on a 5-day streak. You're building great habits! " +
				"With 600 points, you're showing serious dedication! " +
				"Your 1 badges show your commitment!",
		},
		{
			name:   "long streak",
			streak: 12, points: 99,
			want: "Wow! A 12-day streak! You're crushing it! " +
				"Every minute of study counts. Keep adding to your points! " +
				"Complete challenges to earn your first badge!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Streak: tt.streak, Points: Points(tt.points)}
			defs := BadgeDefinitions()
			for i := 0; i < tt.badges; i++ {
				u.AwardBadge(defs[i].ID)
			}

			assert.Equal(t, tt.want, PersonalizedMessage(u))
		})
	}
}

func TestPointsBracketBoundaries(t *testing.T) {
	assert.Equal(t, PointsBracketLow, (&User{Points: 99.9}).PointsBracketOf())
	assert.Equal(t, PointsBracketMid, (&User{Points: 100}).PointsBracketOf())
	assert.Equal(t, PointsBracketMid, (&User{Points: 499.9}).PointsBracketOf())
	assert.Equal(t, PointsBracketHigh, (&User{Points: 500}).PointsBracketOf())
}
