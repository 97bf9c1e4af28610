package services

import (
	"log"
	"time"

	"github.com/HrudhyaRadesh/EcoSphereLive/models"

	"gorm.io/gorm"
)

// MetricsSnapshot captures the fields badge predicates look at, taken before
// and after an engine update.
type MetricsSnapshot struct {
	Co2Saved            float64
	Level               int
	DaysActive          int
	ChallengesCompleted int
}

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// CheckAndUnlock fires every badge whose threshold the update newly crossed.
// Predicates compare the snapshot taken before the update against the one
// taken after it, so each threshold unlocks at most once no matter how often
// the check runs. top_10 has no automatic predicate.
func (s *BadgeService) CheckAndUnlock(tx *gorm.DB, userID string, before, after MetricsSnapshot) ([]string, error) {
	if tx == nil {
		tx = s.DB
	}

	checks := []struct {
		badgeType string
		crossed   bool
	}{
		{"carbon_saver", before.Co2Saved < 100 && after.Co2Saved >= 100},
		{"eco_champion", before.Level < 5 && after.Level >= 5},
		{"eco_master", before.Level < 10 && after.Level >= 10},
		{"green_hero", before.DaysActive < 30 && after.DaysActive >= 30},
		{"goal_crusher", before.ChallengesCompleted < 50 && after.ChallengesCompleted >= 50},
	}

	var unlocked []string
	for _, check := range checks {
		if !check.crossed {
			continue
		}
		ok, err := s.Unlock(tx, userID, check.badgeType)
		if err != nil {
			return unlocked, err
		}
		if ok {
			unlocked = append(unlocked, check.badgeType)
			log.Printf("🎖️ Badge unlocked: %s → %s", check.badgeType, userID)
		}
	}
	return unlocked, nil
}

// Unlock flips the badge exactly once. The update is keyed on unlocked=false,
// so a repeat call is a no-op and badges_earned only increments on the actual
// transition. Returns whether the badge was newly unlocked.
func (s *BadgeService) Unlock(tx *gorm.DB, userID, badgeType string) (bool, error) {
	if tx == nil {
		tx = s.DB
	}

	now := time.Now()
	res := tx.Model(&models.Badge{}).
		Where("user_id = ? AND badge_type = ? AND unlocked = ?", userID, badgeType, false).
		Updates(map[string]interface{}{"unlocked": true, "unlocked_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	if err := tx.Model(&models.UserMetrics{}).
		Where("user_id = ?", userID).
		UpdateColumn("badges_earned", gorm.Expr("badges_earned + 1")).Error; err != nil {
		return false, err
	}
	return true, nil
}

// GetUserBadges returns the user's full catalog, most recent unlocks first.
func (s *BadgeService) GetUserBadges(userID string) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&badges).Error
	return badges, err
}
