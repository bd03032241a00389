package leaderboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyspark/studyspark/internal/domain/user"
)

func rankedUser(id string, streak int, points float64, badges int) *user.User {
	u := &user.User{
		ID:       id,
		Username: user.Username(id),
		Streak:   streak,
		Points:   user.Points(points),
	}
	defs := user.BadgeDefinitions()
	for i := 0; i < badges && i < len(defs); i++ {
		u.AwardBadge(defs[i].ID)
	}
	return u
}

func TestRank_ThreeKeyOrder(t *testing.T) {
	// A(streak=5, pts=10), B(streak=5, pts=20), C(streak=7, pts=1)
	users := []*user.User{
		rankedUser("alice", 5, 10, 0),
		rankedUser("bob", 5, 20, 0),
		rankedUser("carol", 7, 1, 0),
	}

	board := NewRanker().Rank(users)

	require.Len(t, board.Entries, 3)
	assert.Equal(t, "carol", board.Entries[0].Username)
	assert.Equal(t, "bob", board.Entries[1].Username)
	assert.Equal(t, "alice", board.Entries[2].Username)
}

func TestRank_BadgeCountBreaksPointsTie(t *testing.T) {
	users := []*user.User{
		rankedUser("alice", 5, 100, 0),
		rankedUser("bob", 5, 100, 2),
	}

	board := NewRanker().Rank(users)

	assert.Equal(t, "bob", board.Entries[0].Username)
	assert.Equal(t, "alice", board.Entries[1].Username)
}

func TestRank_StablePreservesInputOrderOnFullTie(t *testing.T) {
	users := []*user.User{
		rankedUser("first", 3, 50, 1),
		rankedUser("second", 3, 50, 1),
		rankedUser("third", 3, 50, 1),
	}

	board := NewRanker().Rank(users)

	assert.Equal(t, "first", board.Entries[0].Username)
	assert.Equal(t, "second", board.Entries[1].Username)
	assert.Equal(t, "third", board.Entries[2].Username)
}

func TestRank_ContiguousRanksWithoutSharing(t *testing.T) {
	users := []*user.User{
		rankedUser("alice", 5, 100, 0),
		rankedUser("bob", 5, 100, 0),
		rankedUser("carol", 5, 100, 0),
	}

	board := NewRanker().Rank(users)

	// Полная ничья, но места не делятся
	for i, e := range board.Entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestRank_CapsAtTopN(t *testing.T) {
	var users []*user.User
	for i := 0; i < 25; i++ {
		users = append(users, rankedUser(fmt.Sprintf("user-%02d", i), i, float64(i), 0))
	}

	board := NewRanker().Rank(users)

	assert.Len(t, board.Entries, DefaultTopN)
	assert.Equal(t, 25, board.TotalUsers)
	// Самая длинная серия наверху
	assert.Equal(t, "user-24", board.Entries[0].Username)
}

func TestRank_FewerUsersThanTopN(t *testing.T) {
	board := NewRanker().Rank([]*user.User{rankedUser("solo", 1, 1, 0)})

	require.Len(t, board.Entries, 1)
	assert.Equal(t, 1, board.Entries[0].Rank)
}

func TestRank_EmptyCollection(t *testing.T) {
	board := NewRanker().Rank(nil)

	assert.Empty(t, board.Entries)
	assert.Zero(t, board.TotalUsers)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	users := []*user.User{
		rankedUser("alice", 1, 0, 0),
		rankedUser("bob", 9, 0, 0),
	}

	NewRanker().Rank(users)

	assert.Equal(t, "alice", users[0].ID)
	assert.Equal(t, "bob", users[1].ID)
}
