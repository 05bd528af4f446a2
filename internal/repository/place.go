package repository

import (
	"context"
	"fmt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
)

var (
	ErrPlaceNotFound     = dao.ErrPlaceNotFound
	ErrInvalidTransition = dao.ErrInvalidTransition
)

type PlaceDAO interface {
	Insert(ctx context.Context, place dao.Place, award int) (dao.Place, error)
	FindByID(ctx context.Context, id uint) (dao.Place, error)
	Update(ctx context.Context, place dao.Place) (dao.Place, error)
	IncrementVisitCount(ctx context.Context, id uint) error
	List(ctx context.Context, filter dao.PlaceFilter) ([]dao.Place, int64, error)
	Trending(ctx context.Context, limit int) ([]dao.Place, error)
	FindByStatus(ctx context.Context, status string) ([]dao.Place, error)
	UpdateStatus(ctx context.Context, id uint, status string, notification *dao.Notification, award int) (dao.Place, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountByCreator(ctx context.Context, userID uint, status string) (int64, error)
	Recent(ctx context.Context, limit int) ([]dao.Place, error)
}

type PlaceRepository struct {
	dao PlaceDAO
}

func NewPlaceRepository(dao PlaceDAO) *PlaceRepository {
	return &PlaceRepository{
		dao: dao,
	}
}

func (r *PlaceRepository) Create(ctx context.Context, place domain.Place, award int) (domain.Place, error) {
	created, err := r.dao.Insert(ctx, placeToDAO(place), award)
	if err != nil {
		return domain.Place{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return placeToDomain(created), nil
}

func (r *PlaceRepository) FindByID(ctx context.Context, id uint) (domain.Place, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return placeToDomain(found), nil
}

func (r *PlaceRepository) Update(ctx context.Context, place domain.Place) (domain.Place, error) {
	updated, err := r.dao.Update(ctx, placeToDAO(place))
	if err != nil {
		return domain.Place{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return placeToDomain(updated), nil
}

func (r *PlaceRepository) IncrementVisitCount(ctx context.Context, id uint) error {
	if err := r.dao.IncrementVisitCount(ctx, id); err != nil {
		return fmt.Errorf("r.dao.IncrementVisitCount -> %w", err)
	}

	return nil
}

func (r *PlaceRepository) List(ctx context.Context, filter domain.PlaceFilter) ([]domain.Place, int64, error) {
	found, total, err := r.dao.List(ctx, dao.PlaceFilter{
		Query:      filter.Query,
		Category:   filter.Category,
		Difficulty: filter.Difficulty,
		Offset:     (filter.Page - 1) * filter.PageSize,
		Limit:      filter.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.List -> %w", err)
	}

	return placesToDomain(found), total, nil
}

func (r *PlaceRepository) Trending(ctx context.Context, limit int) ([]domain.Place, error) {
	found, err := r.dao.Trending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Trending -> %w", err)
	}

	return placesToDomain(found), nil
}

func (r *PlaceRepository) FindByStatus(ctx context.Context, status domain.PlaceStatus) ([]domain.Place, error) {
	found, err := r.dao.FindByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatus -> %w", err)
	}

	return placesToDomain(found), nil
}

// UpdateStatus commits the new status, the creator's notification and the award together.
// On success notification holds the stored row.
func (r *PlaceRepository) UpdateStatus(ctx context.Context, id uint, status domain.PlaceStatus, notification *domain.Notification, award int) (domain.Place, error) {
	stored := notificationToDAO(*notification)
	updated, err := r.dao.UpdateStatus(ctx, id, string(status), &stored, award)
	if err != nil {
		return domain.Place{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}
	*notification = notificationToDomain(stored)

	return placeToDomain(updated), nil
}

func (r *PlaceRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

func (r *PlaceRepository) CountByStatus(ctx context.Context, status domain.PlaceStatus) (int64, error) {
	total, err := r.dao.CountByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return total, nil
}

func (r *PlaceRepository) CountApprovedByCreator(ctx context.Context, userID uint) (int64, error) {
	total, err := r.dao.CountByCreator(ctx, userID, dao.StatusApproved)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByCreator -> %w", err)
	}

	return total, nil
}

func (r *PlaceRepository) Recent(ctx context.Context, limit int) ([]domain.Place, error) {
	found, err := r.dao.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Recent -> %w", err)
	}

	return placesToDomain(found), nil
}

func placeToDAO(p domain.Place) dao.Place {
	return dao.Place{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		LegendsStories:    p.LegendsStories,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		Category:          p.Category,
		Difficulty:        p.Difficulty,
		SafetyRating:      p.SafetyRating,
		AccessibilityInfo: p.AccessibilityInfo,
		BestTimeToVisit:   p.BestTimeToVisit,
		CreatedByID:       p.CreatedByID,
		Status:            string(p.Status),
	}
}

func placeToDomain(p dao.Place) domain.Place {
	return domain.Place{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		LegendsStories:    p.LegendsStories,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		Category:          p.Category,
		Difficulty:        p.Difficulty,
		SafetyRating:      p.SafetyRating,
		AccessibilityInfo: p.AccessibilityInfo,
		BestTimeToVisit:   p.BestTimeToVisit,
		CreatedByID:       p.CreatedByID,
		Status:            domain.PlaceStatus(p.Status),
		ApprovalVotes:     p.ApprovalVotes,
		RejectionVotes:    p.RejectionVotes,
		VisitCount:        p.VisitCount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func placesToDomain(places []dao.Place) []domain.Place {
	converted := make([]domain.Place, 0, len(places))
	for _, p := range places {
		converted = append(converted, placeToDomain(p))
	}

	return converted
}
