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

const analyticsRecentSize = 10

var (
	ErrInvalidTransition = repository.ErrInvalidTransition
	ErrInvalidStatus     = errors.New("status must be approved or rejected")
)

type ModerationPlaceRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Place, error)
	FindByStatus(ctx context.Context, status domain.PlaceStatus) ([]domain.Place, error)
	UpdateStatus(ctx context.Context, id uint, status domain.PlaceStatus, notification *domain.Notification, award int) (domain.Place, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.PlaceStatus) (int64, error)
	Recent(ctx context.Context, limit int) ([]domain.Place, error)
}

type ActivityRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountCheckIns(ctx context.Context) (int64, error)
	RecentCheckIns(ctx context.Context, limit int) ([]domain.CheckIn, error)
}

type ModerationService struct {
	places    ModerationPlaceRepository
	activity  ActivityRepository
	publisher Publisher
	awards    reputation.Awards
}

func NewModerationService(places ModerationPlaceRepository, activity ActivityRepository, publisher Publisher, awards reputation.Awards) *ModerationService {
	return &ModerationService{
		places:    places,
		activity:  activity,
		publisher: publisher,
		awards:    awards,
	}
}

// UpdateStatus moves a pending place to approved or rejected on behalf of staff. The creator is
// notified either way; approval also credits the creator. Status, notification and points are
// committed together.
func (s *ModerationService) UpdateStatus(ctx context.Context, staff domain.User, placeID uint, status domain.PlaceStatus) (domain.Place, error) {
	if !staff.CanModerate() {
		return domain.Place{}, ErrPermissionDenied
	}
	if status != domain.PlaceStatusApproved && status != domain.PlaceStatusRejected {
		return domain.Place{}, ErrInvalidStatus
	}

	place, err := s.places.FindByID(ctx, placeID)
	if err != nil {
		return domain.Place{}, fmt.Errorf("s.places.FindByID -> %w", err)
	}
	if !place.Status.CanTransitionTo(status) {
		return domain.Place{}, ErrInvalidTransition
	}

	award := 0
	if status == domain.PlaceStatusApproved {
		award = s.awards.PlaceApproved
	}

	notification := domain.ModerationNotification(place, status)
	updated, err := s.places.UpdateStatus(ctx, placeID, status, &notification, award)
	if err != nil {
		return domain.Place{}, fmt.Errorf("s.places.UpdateStatus -> %w", err)
	}

	s.publisher.Publish(notification)
	zap.L().Info("place moderated",
		zap.Uint("place_id", placeID),
		zap.String("status", string(status)),
		zap.Uint("staff_id", staff.ID),
	)

	return updated, nil
}

func (s *ModerationService) ListPending(ctx context.Context, staff domain.User) ([]domain.Place, error) {
	if !staff.CanModerate() {
		return nil, ErrPermissionDenied
	}

	places, err := s.places.FindByStatus(ctx, domain.PlaceStatusPending)
	if err != nil {
		return nil, fmt.Errorf("s.places.FindByStatus -> %w", err)
	}

	return places, nil
}

func (s *ModerationService) Analytics(ctx context.Context, staff domain.User) (domain.Analytics, error) {
	if !staff.CanModerate() {
		return domain.Analytics{}, ErrPermissionDenied
	}

	var (
		a   domain.Analytics
		err error
	)
	if a.TotalPlaces, err = s.places.Count(ctx); err != nil {
		return domain.Analytics{}, fmt.Errorf("s.places.Count -> %w", err)
	}
	if a.ApprovedPlaces, err = s.places.CountByStatus(ctx, domain.PlaceStatusApproved); err != nil {
		return domain.Analytics{}, fmt.Errorf("s.places.CountByStatus -> %w", err)
	}
	if a.PendingPlaces, err = s.places.CountByStatus(ctx, domain.PlaceStatusPending); err != nil {
		return domain.Analytics{}, fmt.Errorf("s.places.CountByStatus -> %w", err)
	}
	if a.TotalUsers, err = s.activity.CountUsers(ctx); err != nil {
		return domain.Analytics{}, fmt.Errorf("s.activity.CountUsers -> %w", err)
	}
	if a.TotalCheckIns, err = s.activity.CountCheckIns(ctx); err != nil {
		return domain.Analytics{}, fmt.Errorf("s.activity.CountCheckIns -> %w", err)
	}
	if a.RecentPlaces, err = s.places.Recent(ctx, analyticsRecentSize); err != nil {
		return domain.Analytics{}, fmt.Errorf("s.places.Recent -> %w", err)
	}
	if a.RecentCheckIns, err = s.activity.RecentCheckIns(ctx, analyticsRecentSize); err != nil {
		return domain.Analytics{}, fmt.Errorf("s.activity.RecentCheckIns -> %w", err)
	}

	return a, nil
}
