package repository

import (
	"context"
	"fmt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
)

var (
	ErrCollectionNotFound = dao.ErrCollectionNotFound
	ErrOrderTaken         = dao.ErrOrderTaken
	ErrPlaceInCollection  = dao.ErrPlaceInCollection
)

type CollectionDAO interface {
	Insert(ctx context.Context, collection dao.Collection) (dao.Collection, error)
	FindByID(ctx context.Context, id uint) (dao.Collection, error)
	ListPublic(ctx context.Context) ([]dao.Collection, error)
	CountPublicByCreator(ctx context.Context, userID uint) (int64, error)
	AddPlace(ctx context.Context, entry dao.CollectionPlace) (dao.CollectionPlace, error)
	ListPlaces(ctx context.Context, collectionID uint) ([]dao.CollectionPlace, error)
}

type CollectionRepository struct {
	dao CollectionDAO
}

func NewCollectionRepository(dao CollectionDAO) *CollectionRepository {
	return &CollectionRepository{
		dao: dao,
	}
}

func (r *CollectionRepository) Create(ctx context.Context, collection domain.Collection) (domain.Collection, error) {
	created, err := r.dao.Insert(ctx, dao.Collection{
		Name:              collection.Name,
		Description:       collection.Description,
		CreatedByID:       collection.CreatedByID,
		IsPublic:          collection.IsPublic,
		Difficulty:        collection.Difficulty,
		EstimatedDuration: collection.EstimatedDuration,
	})
	if err != nil {
		return domain.Collection{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return collectionToDomain(created), nil
}

func (r *CollectionRepository) FindByID(ctx context.Context, id uint) (domain.Collection, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return collectionToDomain(found), nil
}

func (r *CollectionRepository) ListPublic(ctx context.Context) ([]domain.Collection, error) {
	found, err := r.dao.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPublic -> %w", err)
	}

	collections := make([]domain.Collection, 0, len(found))
	for _, c := range found {
		collections = append(collections, collectionToDomain(c))
	}

	return collections, nil
}

func (r *CollectionRepository) CountPublicByCreator(ctx context.Context, userID uint) (int64, error) {
	total, err := r.dao.CountPublicByCreator(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountPublicByCreator -> %w", err)
	}

	return total, nil
}

func (r *CollectionRepository) AddPlace(ctx context.Context, collectionID, placeID uint, order int, notes string) (domain.CollectionPlace, error) {
	created, err := r.dao.AddPlace(ctx, dao.CollectionPlace{
		CollectionID: collectionID,
		PlaceID:      placeID,
		SortOrder:    order,
		Notes:        notes,
	})
	if err != nil {
		return domain.CollectionPlace{}, fmt.Errorf("r.dao.AddPlace -> %w", err)
	}

	return collectionPlaceToDomain(created), nil
}

// ListPlaces returns the collection's entries ordered by their position.
func (r *CollectionRepository) ListPlaces(ctx context.Context, collectionID uint) ([]domain.CollectionPlace, error) {
	found, err := r.dao.ListPlaces(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPlaces -> %w", err)
	}

	entries := make([]domain.CollectionPlace, 0, len(found))
	for _, e := range found {
		entries = append(entries, collectionPlaceToDomain(e))
	}

	return entries, nil
}

func collectionToDomain(c dao.Collection) domain.Collection {
	return domain.Collection{
		ID:                c.ID,
		Name:              c.Name,
		Description:       c.Description,
		CreatedByID:       c.CreatedByID,
		IsPublic:          c.IsPublic,
		Difficulty:        c.Difficulty,
		EstimatedDuration: c.EstimatedDuration,
		PlaceCount:        c.PlaceCount,
		CreatedAt:         c.CreatedAt,
	}
}

func collectionPlaceToDomain(e dao.CollectionPlace) domain.CollectionPlace {
	return domain.CollectionPlace{
		ID:           e.ID,
		CollectionID: e.CollectionID,
		Place:        placeToDomain(e.Place),
		Order:        e.SortOrder,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
	}
}
