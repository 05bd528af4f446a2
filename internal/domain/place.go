package domain

import "time"

type PlaceStatus string

const (
	PlaceStatusPending  PlaceStatus = "pending"
	PlaceStatusApproved PlaceStatus = "approved"
	PlaceStatusRejected PlaceStatus = "rejected"
)

// CanTransitionTo reports whether moderation may move a place from s to next.
// Approved and rejected are terminal.
func (s PlaceStatus) CanTransitionTo(next PlaceStatus) bool {
	return s == PlaceStatusPending && (next == PlaceStatusApproved || next == PlaceStatusRejected)
}

var (
	PlaceCategories   = []string{"historical", "natural", "urban", "mysterious", "other"}
	PlaceDifficulties = []string{"easy", "moderate", "challenging"}
)

type Place struct {
	ID                uint        `json:"id"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	LegendsStories    string      `json:"legends_stories"`
	Latitude          float64     `json:"latitude"`
	Longitude         float64     `json:"longitude"`
	Category          string      `json:"category"`
	Difficulty        string      `json:"difficulty"`
	SafetyRating      int         `json:"safety_rating"`
	AccessibilityInfo string      `json:"accessibility_info"`
	BestTimeToVisit   string      `json:"best_time_to_visit"`
	CreatedByID       uint        `json:"created_by_id"`
	Status            PlaceStatus `json:"status"`
	ApprovalVotes     int         `json:"approval_votes"`
	RejectionVotes    int         `json:"rejection_votes"`
	VisitCount        int         `json:"visit_count"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// VisibleTo reports whether a viewer may see the place. Anonymous viewers pass a zero User.
func (p Place) VisibleTo(viewer User) bool {
	if p.Status == PlaceStatusApproved {
		return true
	}

	return viewer.ID != 0 && (viewer.ID == p.CreatedByID || viewer.CanModerate())
}

// EditableBy reports whether the user may edit the place.
func (p Place) EditableBy(user User) bool {
	return user.ID == p.CreatedByID || user.CanModerate()
}

type PlaceDetail struct {
	Place         Place    `json:"place"`
	IsFavorited   bool     `json:"is_favorited"`
	CheckIn       *CheckIn `json:"check_in,omitempty"`
	AverageRating float64  `json:"average_rating"`
}

type NearbyPlace struct {
	Place
	Distance float64 `json:"distance"`
}

type PlaceFilter struct {
	Query      string
	Category   string
	Difficulty string
	Page       int
	PageSize   int
}

type PlacePage struct {
	Places     []Place `json:"places"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalItems int64   `json:"total_items"`
	TotalPages int     `json:"total_pages"`
}
