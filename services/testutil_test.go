package services

import (
	"testing"

	"github.com/HrudhyaRadesh/EcoSphereLive/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserMetrics{},
		&models.Activity{},
		&models.Badge{},
		&models.GlobalStats{},
	))
	return db
}

type testEnv struct {
	DB      *gorm.DB
	Users   *UserService
	Metrics *MetricsService
	Badges  *BadgeService
	Ranks   *RankService
	Stats   *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := openTestDB(t)
	stats := NewStatsService(db)
	badges := NewBadgeService(db)
	ranks := NewRankService(db)
	return &testEnv{
		DB:      db,
		Stats:   stats,
		Badges:  badges,
		Ranks:   ranks,
		Metrics: NewMetricsService(db, badges, ranks, stats),
		Users:   NewUserService(db, stats),
	}
}

func (e *testEnv) registerUser(t *testing.T, username string) *models.User {
	t.Helper()

	user, err := e.Users.Register(username, "hunter2secret", nil, nil)
	require.NoError(t, err)
	return user
}

func (e *testEnv) metricsOf(t *testing.T, userID string) models.UserMetrics {
	t.Helper()

	var metrics models.UserMetrics
	require.NoError(t, e.DB.Where("user_id = ?", userID).First(&metrics).Error)
	return metrics
}

func (e *testEnv) badgeOf(t *testing.T, userID, badgeType string) models.Badge {
	t.Helper()

	var badge models.Badge
	require.NoError(t, e.DB.Where("user_id = ? AND badge_type = ?", userID, badgeType).First(&badge).Error)
	return badge
}
