package models

import "time"

// GlobalStats is the singleton cross-user aggregate. It is always recomputed
// wholesale from the source tables and upserted as a single row, created
// lazily on first read.
type GlobalStats struct {
	ID               string    `gorm:"primaryKey;type:uuid" json:"id"`
	TotalActiveUsers int       `gorm:"not null;default:0" json:"total_active_users"`
	TotalCo2Saved    float64   `gorm:"not null;default:0" json:"total_co2_saved"`
	CitiesWorldwide  int       `gorm:"not null;default:0" json:"cities_worldwide"` // registered-user count
	LastUpdated      time.Time `json:"last_updated"`
}

func (GlobalStats) TableName() string { return "global_stats" }
