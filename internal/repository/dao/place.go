package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPlaceNotFound     = errors.New("place not found")
	ErrInvalidTransition = errors.New("place status cannot change from its current value")
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Place struct {
	ID uint `gorm:"primaryKey"`

	Name              string  `gorm:"size:200;not null"`
	Description       string  `gorm:"type:text;not null"`
	LegendsStories    string  `gorm:"type:text"`
	Latitude          float64 `gorm:"not null"`
	Longitude         float64 `gorm:"not null"`
	Category          string  `gorm:"size:20;not null;index"`
	Difficulty        string  `gorm:"size:20;not null"`
	SafetyRating      int     `gorm:"not null"`
	AccessibilityInfo string  `gorm:"type:text"`
	BestTimeToVisit   string  `gorm:"size:100"`

	CreatedByID uint   `gorm:"not null;index"`
	Status      string `gorm:"size:20;not null;index"`

	ApprovalVotes  int `gorm:"not null;default:0"`
	RejectionVotes int `gorm:"not null;default:0"`
	VisitCount     int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PlaceFilter struct {
	Query      string
	Category   string
	Difficulty string
	Offset     int
	Limit      int
}

type PlaceDAO struct {
	db *gorm.DB
}

func NewPlaceDAO(db *gorm.DB) *PlaceDAO {
	return &PlaceDAO{
		db: db,
	}
}

// Insert stores a submission and credits the submitter in one transaction.
func (d *PlaceDAO) Insert(ctx context.Context, place Place, award int) (Place, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&place).Error; err != nil {
			return err
		}

		_, err := awardPoints(tx, place.CreatedByID, award)
		return err
	})
	if err != nil {
		return Place{}, err
	}

	return place, nil
}

func (d *PlaceDAO) FindByID(ctx context.Context, id uint) (Place, error) {
	var place Place

	result := d.db.WithContext(ctx).First(&place, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Place{}, ErrPlaceNotFound
		}

		return Place{}, result.Error
	}

	return place, nil
}

// Update writes the editable fields. Status, counters and ownership are left untouched.
func (d *PlaceDAO) Update(ctx context.Context, place Place) (Place, error) {
	result := d.db.WithContext(ctx).
		Model(&Place{ID: place.ID}).
		Select("Name", "Description", "LegendsStories", "Latitude", "Longitude", "Category",
			"Difficulty", "SafetyRating", "AccessibilityInfo", "BestTimeToVisit").
		Updates(&place)
	if result.Error != nil {
		return Place{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Place{}, ErrPlaceNotFound
	}

	return d.FindByID(ctx, place.ID)
}

func (d *PlaceDAO) IncrementVisitCount(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).
		Model(&Place{}).
		Where("id = ?", id).
		UpdateColumn("visit_count", gorm.Expr("visit_count + ?", 1)).Error
}

// List returns approved places matching the filter, newest first, plus the total match count.
func (d *PlaceDAO) List(ctx context.Context, filter PlaceFilter) ([]Place, int64, error) {
	query := d.db.WithContext(ctx).Model(&Place{}).Where("status = ?", StatusApproved)

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(legends_stories) LIKE ?",
			like, like, like,
		)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var places []Place
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&places).Error
	if err != nil {
		return nil, 0, err
	}

	return places, total, nil
}

func (d *PlaceDAO) Trending(ctx context.Context, limit int) ([]Place, error) {
	var places []Place
	err := d.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Order("visit_count DESC").
		Order("id ASC").
		Limit(limit).
		Find(&places).Error
	if err != nil {
		return nil, err
	}

	return places, nil
}

func (d *PlaceDAO) FindByStatus(ctx context.Context, status string) ([]Place, error) {
	var places []Place
	err := d.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Order("id ASC").
		Find(&places).Error
	if err != nil {
		return nil, err
	}

	return places, nil
}

// UpdateStatus moves a pending place to status, then stores the notification addressed to the
// creator and credits them with award, all in one transaction. A place that is no longer pending
// is left as is.
func (d *PlaceDAO) UpdateStatus(ctx context.Context, id uint, status string, notification *Notification, award int) (Place, error) {
	var place Place
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&place, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaceNotFound
			}

			return err
		}

		result := tx.Model(&Place{}).
			Where("id = ? AND status = ?", id, StatusPending).
			Update("status", status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidTransition
		}
		place.Status = status

		notification.UserID = place.CreatedByID
		if err := tx.Omit(clause.Associations).Create(notification).Error; err != nil {
			return err
		}

		_, err := awardPoints(tx, place.CreatedByID, award)
		return err
	})
	if err != nil {
		return Place{}, err
	}

	return place, nil
}

func (d *PlaceDAO) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := d.db.WithContext(ctx).Model(&Place{}).Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

func (d *PlaceDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&Place{}).Where("status = ?", status).Count(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (d *PlaceDAO) CountByCreator(ctx context.Context, userID uint, status string) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).
		Model(&Place{}).
		Where("created_by_id = ? AND status = ?", userID, status).
		Count(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (d *PlaceDAO) Recent(ctx context.Context, limit int) ([]Place, error) {
	var places []Place
	err := d.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit).Find(&places).Error
	if err != nil {
		return nil, err
	}

	return places, nil
}
