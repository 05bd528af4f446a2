package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/pkg/reputation"
	"github.com/ghostpin/ghostpin-api/internal/repository"
)

const (
	PlacesPageSize     = 12
	TrendingPlacesSize = 6
)

var (
	ErrPlaceNotFound    = repository.ErrPlaceNotFound
	ErrPermissionDenied = errors.New("permission denied")
)

type PlaceRepository interface {
	Create(ctx context.Context, place domain.Place, award int) (domain.Place, error)
	FindByID(ctx context.Context, id uint) (domain.Place, error)
	Update(ctx context.Context, place domain.Place) (domain.Place, error)
	IncrementVisitCount(ctx context.Context, id uint) error
	List(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, int64, error)
	Trending(ctx context.Context, limit int) ([]domain.Place, error)
}

// PlaceViewerRepository answers the viewer-specific parts of a place page.
type PlaceViewerRepository interface {
	IsFavorite(ctx context.Context, userID, placeID uint) (bool, error)
	FindCheckIn(ctx context.Context, userID, placeID uint) (domain.CheckIn, error)
	AverageRating(ctx context.Context, placeID uint) (float64, error)
}

type PlaceService struct {
	repo   PlaceRepository
	viewer PlaceViewerRepository
	awards reputation.Awards
}

func NewPlaceService(repo PlaceRepository, viewer PlaceViewerRepository, awards reputation.Awards) *PlaceService {
	return &PlaceService{
		repo:   repo,
		viewer: viewer,
		awards: awards,
	}
}

// Submit stores a new pending place and credits the submitter in the same transaction.
func (s *PlaceService) Submit(ctx context.Context, user domain.User, place domain.Place) (domain.Place, error) {
	place.ID = 0
	place.CreatedByID = user.ID
	place.Status = domain.PlaceStatusPending

	created, err := s.repo.Create(ctx, place, s.awards.PlaceSubmitted)
	if err != nil {
		return domain.Place{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("place submitted", zap.Uint("place_id", created.ID), zap.Uint("user_id", user.ID))

	return created, nil
}

// Get loads a place for viewer and counts the view. Places that are not approved are only
// visible to their creator and to staff; everyone else gets ErrPlaceNotFound.
func (s *PlaceService) Get(ctx context.Context, viewer domain.User, id uint) (domain.PlaceDetail, error) {
	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.PlaceDetail{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !place.VisibleTo(viewer) {
		return domain.PlaceDetail{}, ErrPlaceNotFound
	}

	if err = s.repo.IncrementVisitCount(ctx, id); err != nil {
		return domain.PlaceDetail{}, fmt.Errorf("s.repo.IncrementVisitCount -> %w", err)
	}
	place.VisitCount++

	detail := domain.PlaceDetail{Place: place}

	if detail.AverageRating, err = s.viewer.AverageRating(ctx, id); err != nil {
		return domain.PlaceDetail{}, fmt.Errorf("s.viewer.AverageRating -> %w", err)
	}

	if viewer.ID == 0 {
		return detail, nil
	}

	if detail.IsFavorited, err = s.viewer.IsFavorite(ctx, viewer.ID, id); err != nil {
		return domain.PlaceDetail{}, fmt.Errorf("s.viewer.IsFavorite -> %w", err)
	}

	checkIn, err := s.viewer.FindCheckIn(ctx, viewer.ID, id)
	switch {
	case err == nil:
		detail.CheckIn = &checkIn
	case !errors.Is(err, repository.ErrCheckInNotFound):
		return domain.PlaceDetail{}, fmt.Errorf("s.viewer.FindCheckIn -> %w", err)
	}

	return detail, nil
}

// Update applies the editable fields of changes. Only the creator and staff may edit.
func (s *PlaceService) Update(ctx context.Context, actor domain.User, id uint, changes domain.Place) (domain.Place, error) {
	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !place.EditableBy(actor) {
		return domain.Place{}, ErrPermissionDenied
	}

	place.Name = changes.Name
	place.Description = changes.Description
	place.LegendsStories = changes.LegendsStories
	place.Latitude = changes.Latitude
	place.Longitude = changes.Longitude
	place.Category = changes.Category
	place.Difficulty = changes.Difficulty
	place.SafetyRating = changes.SafetyRating
	place.AccessibilityInfo = changes.AccessibilityInfo
	place.BestTimeToVisit = changes.BestTimeToVisit

	updated, err := s.repo.Update(ctx, place)
	if err != nil {
		return domain.Place{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *PlaceService) List(ctx context.Context, filter domain.PlaceFilter) (domain.PlacePage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	filter.PageSize = PlacesPageSize

	places, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return domain.PlacePage{}, fmt.Errorf("s.repo.List -> %w", err)
	}

	return domain.PlacePage{
		Places:     places,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize)),
	}, nil
}

func (s *PlaceService) Trending(ctx context.Context) ([]domain.Place, error) {
	places, err := s.repo.Trending(ctx, TrendingPlacesSize)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Trending -> %w", err)
	}

	return places, nil
}
