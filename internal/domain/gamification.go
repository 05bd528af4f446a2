package domain

import (
	"encoding/json"
	"time"
)

// Badge criteria are stored as-is; eligibility is decided outside this service.
type Badge struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Icon           string          `json:"icon"`
	Criteria       json.RawMessage `json:"criteria,omitempty"`
	PointsRequired int             `json:"points_required"`
	IsActive       bool            `json:"is_active"`
	Earned         bool            `json:"earned"`
	CreatedAt      time.Time       `json:"created_at"`
}

type UserBadge struct {
	ID       uint      `json:"id"`
	UserID   uint      `json:"user_id"`
	Badge    Badge     `json:"badge"`
	EarnedAt time.Time `json:"earned_at"`
}

type Challenge struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ChallengeType string          `json:"challenge_type"`
	Criteria      json.RawMessage `json:"criteria,omitempty"`
	RewardPoints  int             `json:"reward_points"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	IsActive      bool            `json:"is_active"`
}

type ChallengeBoard struct {
	Active []Challenge `json:"active"`
	Past   []Challenge `json:"past"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Level    int    `json:"level"`
}

type Analytics struct {
	TotalPlaces    int64     `json:"total_places"`
	ApprovedPlaces int64     `json:"approved_places"`
	PendingPlaces  int64     `json:"pending_places"`
	TotalUsers     int64     `json:"total_users"`
	TotalCheckIns  int64     `json:"total_check_ins"`
	RecentPlaces   []Place   `json:"recent_places"`
	RecentCheckIns []CheckIn `json:"recent_check_ins"`
}
