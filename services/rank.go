package services

import (
	"errors"
	"fmt"

	"github.com/HrudhyaRadesh/EcoSphereLive/models"

	"gorm.io/gorm"
)

// RankService materializes the leaderboard order into each metrics row.
// Ranks are always rebuilt from a full scan rather than maintained
// incrementally, so the stored order can never drift from the points data.
type RankService struct {
	DB *gorm.DB
}

func NewRankService(db *gorm.DB) *RankService {
	return &RankService{DB: db}
}

// LeaderboardEntry is one row of the public leaderboard.
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	UserID   string  `json:"-"`
	Username string  `json:"username"`
	Points   int     `json:"points"`
	Co2Saved float64 `json:"co2_saved"`
	Level    int     `json:"level"`
}

// RecomputeAll rewrites every user's rank as the 1-based position in the
// points-descending order. Ties break on user id so a given snapshot always
// ranks deterministically. Pass the enclosing transaction, or nil to run
// against the service's own connection.
func (s *RankService) RecomputeAll(tx *gorm.DB) error {
	if tx == nil {
		tx = s.DB
	}

	var all []models.UserMetrics
	if err := tx.Order("green_points DESC, user_id ASC").Find(&all).Error; err != nil {
		return err
	}

	for i := range all {
		if err := tx.Model(&models.UserMetrics{}).
			Where("id = ?", all[i].ID).
			Update("rank", i+1).Error; err != nil {
			return err
		}
	}
	return nil
}

// RankOf is the point-query twin of RecomputeAll: 1 plus the number of users
// with strictly more green points.
func (s *RankService) RankOf(userID string) (int, error) {
	var metrics models.UserMetrics
	if err := s.DB.Where("user_id = ?", userID).First(&metrics).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: no metrics for user %s", ErrNotFound, userID)
		}
		return 0, err
	}

	var higher int64
	if err := s.DB.Model(&models.UserMetrics{}).
		Where("green_points > ?", metrics.GreenPoints).
		Count(&higher).Error; err != nil {
		return 0, err
	}
	return int(higher) + 1, nil
}

// TopUsers returns the first limit leaderboard rows, points descending.
// Rank is the 1-based position in the listing.
func (s *RankService) TopUsers(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	type row struct {
		UserID      string
		Username    string
		GreenPoints int
		Co2Saved    float64
		Level       int
	}
	var rows []row
	err := s.DB.Model(&models.UserMetrics{}).
		Select("user_metrics.user_id, users.username, user_metrics.green_points, user_metrics.co2_saved, user_metrics.level").
		Joins("INNER JOIN users ON users.id = user_metrics.user_id").
		Order("user_metrics.green_points DESC, user_metrics.user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(rows))
	for i, r := range rows {
		entries[i] = LeaderboardEntry{
			Rank:     i + 1,
			UserID:   r.UserID,
			Username: r.Username,
			Points:   r.GreenPoints,
			Co2Saved: r.Co2Saved,
			Level:    r.Level,
		}
	}
	return entries, nil
}
