package domain

import "time"

type Collection struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	CreatedByID       uint      `json:"created_by_id"`
	IsPublic          bool      `json:"is_public"`
	Difficulty        string    `json:"difficulty"`
	EstimatedDuration *int      `json:"estimated_duration_minutes,omitempty"`
	PlaceCount        int       `json:"place_count"`
	CreatedAt         time.Time `json:"created_at"`
}

// VisibleTo reports whether a viewer may open the collection.
func (c Collection) VisibleTo(viewer User) bool {
	return c.IsPublic || (viewer.ID != 0 && viewer.ID == c.CreatedByID)
}

type CollectionPlace struct {
	ID           uint      `json:"id"`
	CollectionID uint      `json:"collection_id"`
	Place        Place     `json:"place"`
	Order        int       `json:"order"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

type CollectionDetail struct {
	Collection Collection        `json:"collection"`
	Places     []CollectionPlace `json:"places"`
	RouteKm    float64           `json:"route_km"`
	Polyline   string            `json:"polyline"`
}
