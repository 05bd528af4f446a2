package domain

import "time"

type CheckIn struct {
	ID               uint      `json:"id"`
	UserID           uint      `json:"user_id"`
	PlaceID          uint      `json:"place_id"`
	Place            *Place    `json:"place,omitempty"`
	PhotoProofURL    string    `json:"photo_proof_url"`
	LocationVerified bool      `json:"location_verified"`
	PointsAwarded    int       `json:"points_awarded"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

type CheckInRequest struct {
	Notes         string
	PhotoProofURL string
	// Optional device position; when present it is compared against the place.
	Latitude  *float64
	Longitude *float64
}
