package repository

import (
	"context"
	"fmt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
)

var (
	ErrAlreadyCheckedIn = dao.ErrAlreadyCheckedIn
	ErrCheckInNotFound  = dao.ErrCheckInNotFound
)

type CheckInDAO interface {
	Insert(ctx context.Context, checkIn dao.CheckIn) (dao.CheckIn, error)
	FindByID(ctx context.Context, id uint) (dao.CheckIn, error)
	FindByUserAndPlace(ctx context.Context, userID, placeID uint) (dao.CheckIn, error)
	ListByUser(ctx context.Context, userID uint) ([]dao.CheckIn, error)
	ListByPlace(ctx context.Context, placeID uint) ([]dao.CheckIn, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int) ([]dao.CheckIn, error)
}

type CheckInRepository struct {
	dao CheckInDAO
}

func NewCheckInRepository(dao CheckInDAO) *CheckInRepository {
	return &CheckInRepository{
		dao: dao,
	}
}

// Create records the check-in and credits its PointsAwarded in the same transaction.
func (r *CheckInRepository) Create(ctx context.Context, checkIn domain.CheckIn) (domain.CheckIn, error) {
	created, err := r.dao.Insert(ctx, dao.CheckIn{
		UserID:           checkIn.UserID,
		PlaceID:          checkIn.PlaceID,
		PhotoProofURL:    checkIn.PhotoProofURL,
		LocationVerified: checkIn.LocationVerified,
		PointsAwarded:    checkIn.PointsAwarded,
		Notes:            checkIn.Notes,
	})
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return checkInToDomain(created), nil
}

func (r *CheckInRepository) FindByID(ctx context.Context, id uint) (domain.CheckIn, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return checkInToDomain(found), nil
}

func (r *CheckInRepository) FindByUserAndPlace(ctx context.Context, userID, placeID uint) (domain.CheckIn, error) {
	found, err := r.dao.FindByUserAndPlace(ctx, userID, placeID)
	if err != nil {
		return domain.CheckIn{}, fmt.Errorf("r.dao.FindByUserAndPlace -> %w", err)
	}

	return checkInToDomain(found), nil
}

func (r *CheckInRepository) ListByUser(ctx context.Context, userID uint) ([]domain.CheckIn, error) {
	found, err := r.dao.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	return checkInsToDomain(found), nil
}

func (r *CheckInRepository) ListByPlace(ctx context.Context, placeID uint) ([]domain.CheckIn, error) {
	found, err := r.dao.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByPlace -> %w", err)
	}

	return checkInsToDomain(found), nil
}

func (r *CheckInRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	total, err := r.dao.CountByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByUser -> %w", err)
	}

	return total, nil
}

func (r *CheckInRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

func (r *CheckInRepository) Recent(ctx context.Context, limit int) ([]domain.CheckIn, error) {
	found, err := r.dao.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Recent -> %w", err)
	}

	return checkInsToDomain(found), nil
}

func checkInToDomain(c dao.CheckIn) domain.CheckIn {
	checkIn := domain.CheckIn{
		ID:               c.ID,
		UserID:           c.UserID,
		PlaceID:          c.PlaceID,
		PhotoProofURL:    c.PhotoProofURL,
		LocationVerified: c.LocationVerified,
		PointsAwarded:    c.PointsAwarded,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
	}
	if c.Place.ID != 0 {
		place := placeToDomain(c.Place)
		checkIn.Place = &place
	}

	return checkIn
}

func checkInsToDomain(checkIns []dao.CheckIn) []domain.CheckIn {
	converted := make([]domain.CheckIn, 0, len(checkIns))
	for _, c := range checkIns {
		converted = append(converted, checkInToDomain(c))
	}

	return converted
}
