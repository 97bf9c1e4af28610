package services

import (
	"errors"
	"time"

	"github.com/HrudhyaRadesh/EcoSphereLive/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatsService owns the GlobalStats singleton: platform-wide counters shown
// on the landing and dashboard pages.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// Recalculate rebuilds the aggregate wholesale from the source tables and
// upserts the single row. Never incremental: a full recount cannot drift
// from the per-user data it summarizes.
func (s *StatsService) Recalculate() (*models.GlobalStats, error) {
	return s.recalculate(s.DB)
}

func (s *StatsService) recalculate(tx *gorm.DB) (*models.GlobalStats, error) {
	var activeUsers int64
	if err := tx.Model(&models.Activity{}).
		Distinct("user_id").
		Count(&activeUsers).Error; err != nil {
		return nil, err
	}

	var totalCo2 float64
	if err := tx.Raw("SELECT COALESCE(SUM(co2_saved), 0) FROM user_metrics").
		Scan(&totalCo2).Error; err != nil {
		return nil, err
	}

	var registered int64
	if err := tx.Model(&models.User{}).Count(&registered).Error; err != nil {
		return nil, err
	}

	var stats models.GlobalStats
	err := tx.First(&stats).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		stats = models.GlobalStats{ID: uuid.NewString()}
	case err != nil:
		return nil, err
	}

	stats.TotalActiveUsers = int(activeUsers)
	stats.TotalCo2Saved = totalCo2
	stats.CitiesWorldwide = int(registered)
	stats.LastUpdated = time.Now()

	if err := tx.Save(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Get returns the current aggregate, computing it on first read.
func (s *StatsService) Get() (*models.GlobalStats, error) {
	var stats models.GlobalStats
	err := s.DB.First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.Recalculate()
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
