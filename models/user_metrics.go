package models

import "time"

// UserMetrics is the denormalized per-user gamification record (one row per
// user, created at registration). Only the metrics engine mutates it; no
// field ever decreases. Rank is a materialized view over green points and is
// rewritten wholesale, never maintained incrementally.
type UserMetrics struct {
	ID                  string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID              string     `gorm:"uniqueIndex;not null" json:"user_id"`
	GreenPoints         int        `gorm:"not null;default:0" json:"green_points"`
	Co2Saved            float64    `gorm:"not null;default:0" json:"co2_saved"`
	Level               int        `gorm:"not null;default:1" json:"level"`
	Rank                *int       `json:"rank,omitempty"`
	DaysActive          int        `gorm:"not null;default:0" json:"days_active"`
	BadgesEarned        int        `gorm:"not null;default:0" json:"badges_earned"`
	ChallengesCompleted int        `gorm:"not null;default:0" json:"challenges_completed"`
	LastActiveDate      *time.Time `json:"last_active_date,omitempty"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserMetrics) TableName() string { return "user_metrics" }

// LevelForPoints derives the level tier: one level per 1000 green points,
// starting at level 1.
func LevelForPoints(points int) int {
	return points/1000 + 1
}
