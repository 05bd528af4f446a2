package domain

import "time"

type User struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Password    string    `json:"-"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanModerate reports whether the user may run staff-only operations.
func (u User) CanModerate() bool {
	return u.IsStaff || u.IsSuperuser
}

type Profile struct {
	UserID        uint      `json:"user_id"`
	Username      string    `json:"username,omitempty"`
	Bio           string    `json:"bio"`
	IsTrusted     bool      `json:"is_trusted"`
	IsLocalExpert bool      `json:"is_local_expert"`
	Points        int       `json:"points"`
	Level         int       `json:"level"`
	NextLevelAt   int       `json:"next_level_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProfileSummary struct {
	User           User        `json:"user"`
	Profile        Profile     `json:"profile"`
	Badges         []UserBadge `json:"badges"`
	ApprovedPlaces int64       `json:"approved_places"`
	CheckIns       int64       `json:"check_ins"`
	Collections    int64       `json:"public_collections"`
}
