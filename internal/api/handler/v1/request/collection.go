package request

import (
	"encoding/json"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/ghostpin/ghostpin-api/internal/domain"
)

var errEndBeforeStart = errors.New("end_date must be after start_date")

type CreateCollectionRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsPublic          *bool  `json:"is_public"`
	Difficulty        string `json:"difficulty"`
	EstimatedDuration *int   `json:"estimated_duration_minutes"`
}

func (req *CreateCollectionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Difficulty, oneOf(domain.PlaceDifficulties)),
		validation.Field(&req.EstimatedDuration, validation.Min(1)),
	)
}

// ToDomain defaults collections to public.
func (req *CreateCollectionRequest) ToDomain() domain.Collection {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	return domain.Collection{
		Name:              req.Name,
		Description:       req.Description,
		IsPublic:          isPublic,
		Difficulty:        req.Difficulty,
		EstimatedDuration: req.EstimatedDuration,
	}
}

type AddCollectionPlaceRequest struct {
	PlaceID uint   `json:"place_id"`
	Order   *int   `json:"order"`
	Notes   string `json:"notes"`
}

func (req *AddCollectionPlaceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PlaceID, validation.Required),
		validation.Field(&req.Order, validation.NotNil, validation.Min(0)),
	)
}

type AwardBadgeRequest struct {
	BadgeID uint `json:"badge_id"`
}

func (req *AwardBadgeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BadgeID, validation.Required),
	)
}

type CreateBadgeRequest struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Icon           string          `json:"icon"`
	Criteria       json.RawMessage `json:"criteria"`
	PointsRequired int             `json:"points_required"`
	IsActive       *bool           `json:"is_active"`
}

func (req *CreateBadgeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.PointsRequired, validation.Min(0)),
	)
}

func (req *CreateBadgeRequest) ToDomain() domain.Badge {
	return domain.Badge{
		Name:           req.Name,
		Description:    req.Description,
		Icon:           req.Icon,
		Criteria:       req.Criteria,
		PointsRequired: req.PointsRequired,
		IsActive:       req.IsActive == nil || *req.IsActive,
	}
}

type CreateChallengeRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ChallengeType string          `json:"challenge_type"`
	Criteria      json.RawMessage `json:"criteria"`
	RewardPoints  int             `json:"reward_points"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
}

func (req *CreateChallengeRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.ChallengeType, validation.Required),
		validation.Field(&req.RewardPoints, validation.Min(0)),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
	)
	if err != nil {
		return err
	}

	if !req.EndDate.After(req.StartDate) {
		return errEndBeforeStart
	}

	return nil
}

func (req *CreateChallengeRequest) ToDomain() domain.Challenge {
	return domain.Challenge{
		Title:         req.Title,
		Description:   req.Description,
		ChallengeType: req.ChallengeType,
		Criteria:      req.Criteria,
		RewardPoints:  req.RewardPoints,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		IsActive:      true,
	}
}
