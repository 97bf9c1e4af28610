package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/HrudhyaRadesh/EcoSphereLive/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityInput is the caller-supplied delta for one recorded activity. The
// engine trusts the caller for points (it never derives them from co2) but
// still rejects malformed values.
type ActivityInput struct {
	ActivityType string
	Co2Impact    float64
	PointsEarned int
	Metadata     datatypes.JSON
}

// MetricsWithRank is a metrics row augmented with the live leaderboard
// position (1 = most points).
type MetricsWithRank struct {
	models.UserMetrics
	Rank int `json:"rank"`
}

// ActivityTypeSummary aggregates a user's month by normalized activity type.
type ActivityTypeSummary struct {
	TypeKey  string  `json:"type_key"`
	Count    int64   `json:"count"`
	Points   int64   `json:"points"`
	Co2Saved float64 `json:"co2_saved"`
}

// MetricsService is the gamification engine. It applies the effect of each
// newly recorded activity to the owner's metrics row and keeps the derived
// ranks and the global aggregate current.
type MetricsService struct {
	DB     *gorm.DB
	Badges *BadgeService
	Ranks  *RankService
	Stats  *StatsService
}

func NewMetricsService(db *gorm.DB, badges *BadgeService, ranks *RankService, stats *StatsService) *MetricsService {
	return &MetricsService{DB: db, Badges: badges, Ranks: ranks, Stats: stats}
}

// RecordActivity appends the ledger entry and rolls its effect into the
// user's metrics: co2 saved (always the absolute value of the impact —
// a footprint-increasing activity does not exist today), green points, the
// level derived from points, the day streak, badges whose thresholds were
// newly crossed, every user's rank, and the global aggregate. The whole
// sequence runs in one transaction; a failed step leaves nothing applied.
func (s *MetricsService) RecordActivity(userID string, input ActivityInput) (*models.Activity, *MetricsWithRank, error) {
	if err := validateActivityInput(userID, input); err != nil {
		return nil, nil, err
	}

	activity := models.Activity{
		ID:           uuid.NewString(),
		UserID:       userID,
		ActivityType: input.ActivityType,
		TypeKey:      slug.Make(input.ActivityType),
		Co2Impact:    input.Co2Impact,
		PointsEarned: input.PointsEarned,
		Metadata:     input.Metadata,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var metrics models.UserMetrics
		if err := tx.Where("user_id = ?", userID).First(&metrics).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no metrics for user %s", ErrNotFound, userID)
			}
			return err
		}

		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		before := snapshotOf(&metrics)

		now := time.Now()
		activeToday := metrics.LastActiveDate != nil && !metrics.LastActiveDate.Before(startOfDay(now))

		metrics.Co2Saved += math.Abs(input.Co2Impact)
		metrics.GreenPoints += input.PointsEarned
		metrics.Level = models.LevelForPoints(metrics.GreenPoints)
		if !activeToday {
			metrics.DaysActive++
		}
		metrics.LastActiveDate = &now

		if err := tx.Save(&metrics).Error; err != nil {
			return err
		}

		if _, err := s.Badges.CheckAndUnlock(tx, userID, before, snapshotOf(&metrics)); err != nil {
			return err
		}

		if err := s.Ranks.RecomputeAll(tx); err != nil {
			return err
		}

		if _, err := s.Stats.recalculate(tx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	log.Printf("🌿 Activity recorded: %s +%dpts +%.1fkg (%s)",
		userID, input.PointsEarned, math.Abs(input.Co2Impact), activity.TypeKey)

	withRank, err := s.GetMetricsWithRank(userID)
	if err != nil {
		return nil, nil, err
	}
	return &activity, withRank, nil
}

// TouchDailyStreak bumps days_active when the user's last qualifying activity
// was before today. Idempotent within a calendar day; RecordActivity already
// does this as part of its transaction.
func (s *MetricsService) TouchDailyStreak(userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var metrics models.UserMetrics
		if err := tx.Where("user_id = ?", userID).First(&metrics).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no metrics for user %s", ErrNotFound, userID)
			}
			return err
		}

		now := time.Now()
		if metrics.LastActiveDate != nil && !metrics.LastActiveDate.Before(startOfDay(now)) {
			return nil
		}

		before := snapshotOf(&metrics)
		metrics.DaysActive++
		metrics.LastActiveDate = &now
		if err := tx.Save(&metrics).Error; err != nil {
			return err
		}

		_, err := s.Badges.CheckAndUnlock(tx, userID, before, snapshotOf(&metrics))
		return err
	})
}

// GetMetricsWithRank loads the metrics row together with the live rank.
func (s *MetricsService) GetMetricsWithRank(userID string) (*MetricsWithRank, error) {
	var metrics models.UserMetrics
	if err := s.DB.Where("user_id = ?", userID).First(&metrics).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no metrics for user %s", ErrNotFound, userID)
		}
		return nil, err
	}

	rank, err := s.Ranks.RankOf(userID)
	if err != nil {
		return nil, err
	}
	return &MetricsWithRank{UserMetrics: metrics, Rank: rank}, nil
}

// GetUserActivities returns the user's most recent ledger entries.
func (s *MetricsService) GetUserActivities(userID string, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var activities []models.Activity
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// GetActivitiesThisMonth returns everything logged since the first of the
// current month.
func (s *MetricsService) GetActivitiesThisMonth(userID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.DB.Where("user_id = ? AND created_at >= ?", userID, firstOfMonth(time.Now())).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}

// MonthlySummaryByType groups this month's ledger by normalized activity
// type; feeds the dashboard chart.
func (s *MetricsService) MonthlySummaryByType(userID string) ([]ActivityTypeSummary, error) {
	var rows []ActivityTypeSummary
	err := s.DB.Model(&models.Activity{}).
		Select("type_key, COUNT(*) AS count, COALESCE(SUM(points_earned), 0) AS points, COALESCE(SUM(ABS(co2_impact)), 0) AS co2_saved").
		Where("user_id = ? AND created_at >= ?", userID, firstOfMonth(time.Now())).
		Group("type_key").
		Order("points DESC").
		Scan(&rows).Error
	return rows, err
}

func validateActivityInput(userID string, input ActivityInput) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if strings.TrimSpace(input.ActivityType) == "" {
		return fmt.Errorf("%w: activity_type is required", ErrValidation)
	}
	if input.PointsEarned < 0 {
		return fmt.Errorf("%w: points_earned must be non-negative", ErrValidation)
	}
	if math.IsNaN(input.Co2Impact) || math.IsInf(input.Co2Impact, 0) {
		return fmt.Errorf("%w: co2_impact must be a finite number", ErrValidation)
	}
	return nil
}

func snapshotOf(m *models.UserMetrics) MetricsSnapshot {
	return MetricsSnapshot{
		Co2Saved:            m.Co2Saved,
		Level:               m.Level,
		DaysActive:          m.DaysActive,
		ChallengesCompleted: m.ChallengesCompleted,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
