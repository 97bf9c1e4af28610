package models

import "time"

// Badge is a per-user unlockable achievement. The full catalog is
// materialized for every user at registration, all locked; unlock is one-way
// and stamps UnlockedAt exactly once.
type Badge struct {
	ID          string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string     `gorm:"uniqueIndex:idx_badges_user_type;not null" json:"user_id"`
	BadgeType   string     `gorm:"uniqueIndex:idx_badges_user_type;not null" json:"badge_type"`
	Title       string     `gorm:"not null" json:"badge_title"`
	Description string     `gorm:"not null" json:"badge_description"`
	Unlocked    bool       `gorm:"not null;default:false" json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Badge) TableName() string { return "badges" }

// BadgeDefinition is a static catalog entry.
type BadgeDefinition struct {
	Type        string
	Title       string
	Description string
}

// BadgeCatalog lists every badge a user can earn. top_10 has no automatic
// trigger yet; it is created locked like the rest and left for a rank-based
// check.
var BadgeCatalog = []BadgeDefinition{
	{Type: "carbon_saver", Title: "Carbon Saver", Description: "Reduced carbon by 100kg"},
	{Type: "green_hero", Title: "Green Hero", Description: "Logged 30 consecutive days"},
	{Type: "eco_champion", Title: "Eco Champion", Description: "Reached Level 5"},
	{Type: "top_10", Title: "Top 10", Description: "Ranked in top 10 globally"},
	{Type: "goal_crusher", Title: "Goal Crusher", Description: "Complete 50 challenges"},
	{Type: "eco_master", Title: "Eco Master", Description: "Reach Level 10"},
}
