package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in at this place")
	ErrCheckInNotFound  = errors.New("check-in not found")
)

type CheckIn struct {
	ID uint `gorm:"primaryKey"`

	UserID  uint  `gorm:"not null;uniqueIndex:idx_check_ins_user_place"`
	PlaceID uint  `gorm:"not null;uniqueIndex:idx_check_ins_user_place;index"`
	Place   Place `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE"`

	PhotoProofURL    string `gorm:"size:500"`
	LocationVerified bool   `gorm:"not null;default:false"`
	PointsAwarded    int    `gorm:"not null"`
	Notes            string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;index"`
}

type CheckInDAO struct {
	db *gorm.DB
}

func NewCheckInDAO(db *gorm.DB) *CheckInDAO {
	return &CheckInDAO{
		db: db,
	}
}

// Insert records the first check-in of a user at an approved place and credits PointsAwarded.
func (d *CheckInDAO) Insert(ctx context.Context, checkIn CheckIn) (CheckIn, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var place Place
		if err := tx.Select("id", "status").First(&place, checkIn.PlaceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaceNotFound
			}

			return err
		}
		if place.Status != StatusApproved {
			return ErrPlaceNotFound
		}

		created, err := insertOnce(tx, &checkIn)
		if err != nil {
			return err
		}
		if !created {
			return ErrAlreadyCheckedIn
		}

		_, err = awardPoints(tx, checkIn.UserID, checkIn.PointsAwarded)
		return err
	})
	if err != nil {
		return CheckIn{}, err
	}

	return checkIn, nil
}

func (d *CheckInDAO) FindByID(ctx context.Context, id uint) (CheckIn, error) {
	var checkIn CheckIn

	result := d.db.WithContext(ctx).Preload("Place").First(&checkIn, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CheckIn{}, ErrCheckInNotFound
		}

		return CheckIn{}, result.Error
	}

	return checkIn, nil
}

func (d *CheckInDAO) FindByUserAndPlace(ctx context.Context, userID, placeID uint) (CheckIn, error) {
	var checkIn CheckIn

	result := d.db.WithContext(ctx).Where("user_id = ? AND place_id = ?", userID, placeID).First(&checkIn)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CheckIn{}, ErrCheckInNotFound
		}

		return CheckIn{}, result.Error
	}

	return checkIn, nil
}

func (d *CheckInDAO) ListByUser(ctx context.Context, userID uint) ([]CheckIn, error) {
	var checkIns []CheckIn
	err := d.db.WithContext(ctx).
		Preload("Place").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}

	return checkIns, nil
}

func (d *CheckInDAO) ListByPlace(ctx context.Context, placeID uint) ([]CheckIn, error) {
	var checkIns []CheckIn
	err := d.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}

	return checkIns, nil
}

func (d *CheckInDAO) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&CheckIn{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

func (d *CheckInDAO) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&CheckIn{}).Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

func (d *CheckInDAO) Recent(ctx context.Context, limit int) ([]CheckIn, error) {
	var checkIns []CheckIn
	err := d.db.WithContext(ctx).
		Preload("Place").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&checkIns).Error
	if err != nil {
		return nil, err
	}

	return checkIns, nil
}
