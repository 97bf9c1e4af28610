package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity is an immutable ledger entry: created once, never updated or
// deleted. Per-user metrics accumulate from these rows and can be re-derived
// from them in full (see workers.AuditWorker).
//
// Co2Impact is stored exactly as recorded; the engine always counts its
// absolute value as a saving, so a negative impact contributes positively.
type Activity struct {
	ID           string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string         `gorm:"index;not null" json:"user_id"`
	ActivityType string         `gorm:"not null" json:"activity_type"`
	TypeKey      string         `gorm:"index;not null" json:"type_key"` // slugified ActivityType, used for grouping
	Co2Impact    float64        `gorm:"not null" json:"co2_impact"`
	PointsEarned int            `gorm:"not null" json:"points_earned"`
	Metadata     datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (Activity) TableName() string { return "activities" }
