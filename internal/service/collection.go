package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/pkg/geo"
	"github.com/ghostpin/ghostpin-api/internal/repository"
)

var (
	ErrCollectionNotFound = repository.ErrCollectionNotFound
	ErrOrderTaken         = repository.ErrOrderTaken
	ErrPlaceInCollection  = repository.ErrPlaceInCollection
	ErrInvalidOrder       = errors.New("order must not be negative")
	ErrInvalidDifficulty  = errors.New("difficulty must be easy, moderate or challenging")
)

type CollectionRepository interface {
	Create(ctx context.Context, collection domain.Collection) (domain.Collection, error)
	FindByID(ctx context.Context, id uint) (domain.Collection, error)
	ListPublic(ctx context.Context) ([]domain.Collection, error)
	AddPlace(ctx context.Context, collectionID, placeID uint, order int, notes string) (domain.CollectionPlace, error)
	ListPlaces(ctx context.Context, collectionID uint) ([]domain.CollectionPlace, error)
}

type CollectionService struct {
	repo   CollectionRepository
	places PlaceFinder
}

func NewCollectionService(repo CollectionRepository, places PlaceFinder) *CollectionService {
	return &CollectionService{
		repo:   repo,
		places: places,
	}
}

func (s *CollectionService) Create(ctx context.Context, user domain.User, collection domain.Collection) (domain.Collection, error) {
	if collection.Difficulty == "" {
		collection.Difficulty = "easy"
	}
	if !slices.Contains(domain.PlaceDifficulties, collection.Difficulty) {
		return domain.Collection{}, ErrInvalidDifficulty
	}

	collection.ID = 0
	collection.CreatedByID = user.ID

	created, err := s.repo.Create(ctx, collection)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// AddPlace appends a place to one of the caller's collections at the given position.
func (s *CollectionService) AddPlace(ctx context.Context, user domain.User, collectionID, placeID uint, order int, notes string) (domain.CollectionPlace, error) {
	if order < 0 {
		return domain.CollectionPlace{}, ErrInvalidOrder
	}

	collection, err := s.repo.FindByID(ctx, collectionID)
	if err != nil {
		return domain.CollectionPlace{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if collection.CreatedByID != user.ID {
		if !collection.VisibleTo(user) {
			return domain.CollectionPlace{}, ErrCollectionNotFound
		}
		return domain.CollectionPlace{}, ErrPermissionDenied
	}

	place, err := s.places.FindByID(ctx, placeID)
	if err != nil {
		return domain.CollectionPlace{}, fmt.Errorf("s.places.FindByID -> %w", err)
	}
	if !place.VisibleTo(user) {
		return domain.CollectionPlace{}, ErrPlaceNotFound
	}

	entry, err := s.repo.AddPlace(ctx, collectionID, placeID, order, notes)
	if err != nil {
		return domain.CollectionPlace{}, fmt.Errorf("s.repo.AddPlace -> %w", err)
	}

	return entry, nil
}

// Get returns the collection with its places in trail order, the walking distance between
// consecutive stops and the encoded trail.
func (s *CollectionService) Get(ctx context.Context, viewer domain.User, id uint) (domain.CollectionDetail, error) {
	collection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.CollectionDetail{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if !collection.VisibleTo(viewer) {
		return domain.CollectionDetail{}, ErrCollectionNotFound
	}

	entries, err := s.repo.ListPlaces(ctx, id)
	if err != nil {
		return domain.CollectionDetail{}, fmt.Errorf("s.repo.ListPlaces -> %w", err)
	}

	// Places still under review, or rejected, stay hidden like they are on the place endpoints.
	visible := make([]domain.CollectionPlace, 0, len(entries))
	route := make([]geo.Point, 0, len(entries))
	for _, e := range entries {
		if !e.Place.VisibleTo(viewer) {
			continue
		}
		visible = append(visible, e)
		route = append(route, geo.Point{Latitude: e.Place.Latitude, Longitude: e.Place.Longitude})
	}
	collection.PlaceCount = len(visible)

	return domain.CollectionDetail{
		Collection: collection,
		Places:     visible,
		RouteKm:    geo.Round2(geo.RouteLength(route)),
		Polyline:   geo.EncodeRoute(route),
	}, nil
}

func (s *CollectionService) ListPublic(ctx context.Context) ([]domain.Collection, error) {
	collections, err := s.repo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPublic -> %w", err)
	}

	return collections, nil
}
