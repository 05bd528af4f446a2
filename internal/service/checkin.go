package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/pkg/geo"
	"github.com/ghostpin/ghostpin-api/internal/pkg/reputation"
	"github.com/ghostpin/ghostpin-api/internal/pkg/storage"
	"github.com/ghostpin/ghostpin-api/internal/repository"
)

var (
	ErrAlreadyCheckedIn       = repository.ErrAlreadyCheckedIn
	ErrCheckInNotFound        = repository.ErrCheckInNotFound
	ErrUnsupportedContentType = storage.ErrUnsupportedContentType
)

type CheckInRepository interface {
	Create(ctx context.Context, checkIn domain.CheckIn) (domain.CheckIn, error)
	FindByID(ctx context.Context, id uint) (domain.CheckIn, error)
	FindByUserAndPlace(ctx context.Context, userID, placeID uint) (domain.CheckIn, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.CheckIn, error)
	ListByPlace(ctx context.Context, placeID uint) ([]domain.CheckIn, error)
}

type PlaceFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Place, error)
}

type ProofPresigner interface {
	PresignCheckInProof(ctx context.Context, userID uint, fileName, contentType string) (storage.PresignedUpload, error)
}

type CheckInService struct {
	repo           CheckInRepository
	places         PlaceFinder
	presigner      ProofPresigner
	awards         reputation.Awards
	verifyRadiusKm float64
}

func NewCheckInService(repo CheckInRepository, places PlaceFinder, presigner ProofPresigner, awards reputation.Awards, verifyRadiusKm float64) *CheckInService {
	return &CheckInService{
		repo:           repo,
		places:         places,
		presigner:      presigner,
		awards:         awards,
		verifyRadiusKm: verifyRadiusKm,
	}
}

// CheckIn records the user's single check-in at an approved place. A repeated check-in
// returns the existing record together with ErrAlreadyCheckedIn.
func (s *CheckInService) CheckIn(ctx context.Context, user domain.User, placeID uint, req domain.CheckInRequest) (domain.CheckIn, error) {
	place, err := s.places.FindByID(ctx, placeID)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("s.places.FindByID -> %w", err)
	}
	if place.Status != domain.PlaceStatusApproved {
		return domain.CheckIn{}, ErrPlaceNotFound
	}

	checkIn := domain.CheckIn{
		UserID:        user.ID,
		PlaceID:       placeID,
		PhotoProofURL: req.PhotoProofURL,
		Notes:         req.Notes,
		PointsAwarded: s.awards.CheckIn,
	}
	if req.Latitude != nil && req.Longitude != nil {
		d := geo.Distance(*req.Latitude, *req.Longitude, place.Latitude, place.Longitude)
		checkIn.LocationVerified = d <= s.verifyRadiusKm
	}

	created, err := s.repo.Create(ctx, checkIn)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyCheckedIn) {
			existing, findErr := s.repo.FindByUserAndPlace(ctx, user.ID, placeID)
			if findErr != nil {
				return domain.CheckIn{}, fmt.Errorf("s.repo.FindByUserAndPlace -> %w", findErr)
			}

			return existing, ErrAlreadyCheckedIn
		}

		return domain.CheckIn{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("checked in",
		zap.Uint("user_id", user.ID),
		zap.Uint("place_id", placeID),
		zap.Int("points", created.PointsAwarded),
		zap.Bool("location_verified", created.LocationVerified),
	)

	return created, nil
}

func (s *CheckInService) ListMine(ctx context.Context, user domain.User) ([]domain.CheckIn, error) {
	checkIns, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return checkIns, nil
}

func (s *CheckInService) ListForPlace(ctx context.Context, viewer domain.User, placeID uint) ([]domain.CheckIn, error) {
	place, err := s.places.FindByID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("s.places.FindByID -> %w", err)
	}
	if !place.VisibleTo(viewer) {
		return nil, ErrPlaceNotFound
	}

	checkIns, err := s.repo.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByPlace -> %w", err)
	}

	return checkIns, nil
}

// Get returns one of the user's own check-ins. Other users' check-ins are reported as missing.
func (s *CheckInService) Get(ctx context.Context, user domain.User, id uint) (domain.CheckIn, error) {
	checkIn, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if checkIn.UserID != user.ID {
		return domain.CheckIn{}, ErrCheckInNotFound
	}

	return checkIn, nil
}

func (s *CheckInService) PresignProofUpload(ctx context.Context, user domain.User, fileName, contentType string) (storage.PresignedUpload, error) {
	upload, err := s.presigner.PresignCheckInProof(ctx, user.ID, fileName, contentType)
	if err != nil {
		return storage.PresignedUpload{}, fmt.Errorf("s.presigner.PresignCheckInProof -> %w", err)
	}

	return upload, nil
}
