package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlockIsOneWayAndIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "greta")

	ok, err := env.Badges.Unlock(nil, user.ID, "carbon_saver")
	require.NoError(t, err)
	assert.True(t, ok)

	first := env.badgeOf(t, user.ID, "carbon_saver")
	require.NotNil(t, first.UnlockedAt)

	ok, err = env.Badges.Unlock(nil, user.ID, "carbon_saver")
	require.NoError(t, err)
	assert.False(t, ok)

	// repeat unlock neither re-stamps nor double-counts
	again := env.badgeOf(t, user.ID, "carbon_saver")
	assert.Equal(t, first.UnlockedAt.Unix(), again.UnlockedAt.Unix())
	assert.Equal(t, 1, env.metricsOf(t, user.ID).BadgesEarned)
}

func TestCheckAndUnlockFiresOnlyOnCrossing(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "linus")

	unlocked, err := env.Badges.CheckAndUnlock(nil, user.ID,
		MetricsSnapshot{Co2Saved: 99, Level: 4, DaysActive: 29, ChallengesCompleted: 49},
		MetricsSnapshot{Co2Saved: 101, Level: 5, DaysActive: 30, ChallengesCompleted: 50},
	)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"carbon_saver", "eco_champion", "green_hero", "goal_crusher"}, unlocked)
	assert.Equal(t, 4, env.metricsOf(t, user.ID).BadgesEarned)

	// same before/after again: everything already unlocked, nothing fires twice
	unlocked, err = env.Badges.CheckAndUnlock(nil, user.ID,
		MetricsSnapshot{Co2Saved: 99, Level: 4, DaysActive: 29, ChallengesCompleted: 49},
		MetricsSnapshot{Co2Saved: 101, Level: 5, DaysActive: 30, ChallengesCompleted: 50},
	)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
	assert.Equal(t, 4, env.metricsOf(t, user.ID).BadgesEarned)
}

func TestCheckAndUnlockIgnoresAlreadyPastThresholds(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "ada")

	unlocked, err := env.Badges.CheckAndUnlock(nil, user.ID,
		MetricsSnapshot{Co2Saved: 150, Level: 6, DaysActive: 31, ChallengesCompleted: 51},
		MetricsSnapshot{Co2Saved: 160, Level: 6, DaysActive: 32, ChallengesCompleted: 52},
	)
	require.NoError(t, err)
	assert.Empty(t, unlocked)
}

func TestEcoMasterCrossesAtLevelTen(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "bob")

	unlocked, err := env.Badges.CheckAndUnlock(nil, user.ID,
		MetricsSnapshot{Level: 9},
		MetricsSnapshot{Level: 10},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"eco_master"}, unlocked)
}

func TestTopTenIsNeverAutoUnlocked(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "carol")

	_, err := env.Badges.CheckAndUnlock(nil, user.ID,
		MetricsSnapshot{},
		MetricsSnapshot{Co2Saved: 1e6, Level: 100, DaysActive: 1000, ChallengesCompleted: 1000},
	)
	require.NoError(t, err)
	assert.False(t, env.badgeOf(t, user.ID, "top_10").Unlocked)
}

func TestGetUserBadgesReturnsFullCatalog(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "dora")

	badges, err := env.Badges.GetUserBadges(user.ID)
	require.NoError(t, err)
	assert.Len(t, badges, 6)
	for _, badge := range badges {
		assert.False(t, badge.Unlocked)
		assert.Nil(t, badge.UnlockedAt)
	}
}
