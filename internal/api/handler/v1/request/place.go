package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ghostpin/ghostpin-api/internal/domain"
)

func oneOf(values []string) validation.Rule {
	elements := make([]interface{}, len(values))
	for i, v := range values {
		elements[i] = v
	}

	return validation.In(elements...)
}

type PlaceRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	LegendsStories    string   `json:"legends_stories"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Category          string   `json:"category"`
	Difficulty        string   `json:"difficulty"`
	SafetyRating      int      `json:"safety_rating"`
	AccessibilityInfo string   `json:"accessibility_info"`
	BestTimeToVisit   string   `json:"best_time_to_visit"`
}

func (req *PlaceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Description, validation.Required),
		validation.Field(&req.Latitude, validation.NotNil, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.NotNil, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.Category, validation.Required, oneOf(domain.PlaceCategories)),
		validation.Field(&req.Difficulty, validation.Required, oneOf(domain.PlaceDifficulties)),
		validation.Field(&req.SafetyRating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&req.BestTimeToVisit, validation.Length(0, 100)),
	)
}

// ToDomain must only be called after Validate.
func (req *PlaceRequest) ToDomain() domain.Place {
	return domain.Place{
		Name:              req.Name,
		Description:       req.Description,
		LegendsStories:    req.LegendsStories,
		Latitude:          *req.Latitude,
		Longitude:         *req.Longitude,
		Category:          req.Category,
		Difficulty:        req.Difficulty,
		SafetyRating:      req.SafetyRating,
		AccessibilityInfo: req.AccessibilityInfo,
		BestTimeToVisit:   req.BestTimeToVisit,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (req *UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required,
			validation.In(string(domain.PlaceStatusApproved), string(domain.PlaceStatusRejected))),
	)
}

type VoteRequest struct {
	VoteType string `json:"vote_type"`
}

func (req *VoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.VoteType, validation.Required, validation.In(string(domain.VoteUp), string(domain.VoteDown))),
	)
}
