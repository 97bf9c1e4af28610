package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) userWithPoints(t *testing.T, username string, points int) string {
	t.Helper()

	user := e.registerUser(t, username)
	if points > 0 {
		_, _, err := e.Metrics.RecordActivity(user.ID, ActivityInput{
			ActivityType: "seed", Co2Impact: 1, PointsEarned: points,
		})
		require.NoError(t, err)
	}
	return user.ID
}

func TestRecomputeAllAssignsPermutation(t *testing.T) {
	env := newTestEnv(t)

	ids := []string{
		env.userWithPoints(t, "u1", 300),
		env.userWithPoints(t, "u2", 1200),
		env.userWithPoints(t, "u3", 0),
		env.userWithPoints(t, "u4", 900),
		env.userWithPoints(t, "u5", 900),
	}

	require.NoError(t, env.Ranks.RecomputeAll(nil))

	var ranks []int
	for _, id := range ids {
		metrics := env.metricsOf(t, id)
		require.NotNil(t, metrics.Rank)
		ranks = append(ranks, *metrics.Rank)
	}
	sort.Ints(ranks)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ranks)

	// most points gets rank 1
	best := env.metricsOf(t, ids[1])
	assert.Equal(t, 1, *best.Rank)
}

func TestRankOfCountsStrictlyGreater(t *testing.T) {
	env := newTestEnv(t)

	low := env.userWithPoints(t, "low", 100)
	mid := env.userWithPoints(t, "mid", 500)
	high := env.userWithPoints(t, "high", 1500)

	rank, err := env.Ranks.RankOf(high)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = env.Ranks.RankOf(mid)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	rank, err = env.Ranks.RankOf(low)
	require.NoError(t, err)
	assert.Equal(t, 3, rank)

	_, err = env.Ranks.RankOf("missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRankOfAgreesWithRecomputeAll(t *testing.T) {
	env := newTestEnv(t)

	ids := []string{
		env.userWithPoints(t, "a", 50),
		env.userWithPoints(t, "b", 2500),
		env.userWithPoints(t, "c", 700),
		env.userWithPoints(t, "d", 1),
	}

	require.NoError(t, env.Ranks.RecomputeAll(nil))

	for _, id := range ids {
		stored := env.metricsOf(t, id)
		computed, err := env.Ranks.RankOf(id)
		require.NoError(t, err)
		assert.Equal(t, *stored.Rank, computed)
	}
}

func TestLeaderboardOrdersByPoints(t *testing.T) {
	env := newTestEnv(t)

	env.userWithPoints(t, "alice", 900)
	env.userWithPoints(t, "bruno", 1200)

	entries, err := env.Ranks.TopUsers(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "bruno", entries[0].Username)
	assert.Equal(t, 1200, entries[0].Points)

	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, "alice", entries[1].Username)
	assert.Equal(t, 900, entries[1].Points)
}

func TestLeaderboardLimitFallsBackToDefault(t *testing.T) {
	env := newTestEnv(t)
	env.userWithPoints(t, "solo", 10)

	entries, err := env.Ranks.TopUsers(-3)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
