package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrOrderTaken         = errors.New("order already used in this collection")
	ErrPlaceInCollection  = errors.New("place already in this collection")
)

type Collection struct {
	ID uint `gorm:"primaryKey"`

	Name              string `gorm:"size:200;not null"`
	Description       string `gorm:"type:text"`
	CreatedByID       uint   `gorm:"not null;index"`
	IsPublic          bool   `gorm:"not null"`
	Difficulty        string `gorm:"size:20;not null"`
	EstimatedDuration *int

	// Filled by ListPublic, never stored.
	PlaceCount int `gorm:"->;-:migration"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Collection) TableName() string {
	return "place_collections"
}

type CollectionPlace struct {
	ID uint `gorm:"primaryKey"`

	CollectionID uint   `gorm:"not null;uniqueIndex:idx_collection_places_place;uniqueIndex:idx_collection_places_order"`
	PlaceID      uint   `gorm:"not null;uniqueIndex:idx_collection_places_place"`
	Place        Place  `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE"`
	SortOrder    int    `gorm:"not null;uniqueIndex:idx_collection_places_order"`
	Notes        string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
}

type CollectionDAO struct {
	db *gorm.DB
}

func NewCollectionDAO(db *gorm.DB) *CollectionDAO {
	return &CollectionDAO{
		db: db,
	}
}

func (d *CollectionDAO) Insert(ctx context.Context, collection Collection) (Collection, error) {
	if err := d.db.WithContext(ctx).Create(&collection).Error; err != nil {
		return Collection{}, err
	}

	return collection, nil
}

func (d *CollectionDAO) FindByID(ctx context.Context, id uint) (Collection, error) {
	var collection Collection

	result := d.db.WithContext(ctx).First(&collection, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Collection{}, ErrCollectionNotFound
		}

		return Collection{}, result.Error
	}

	return collection, nil
}

// ListPublic returns public collections, newest first, each with its place count.
func (d *CollectionDAO) ListPublic(ctx context.Context) ([]Collection, error) {
	var collections []Collection
	err := d.db.WithContext(ctx).
		Model(&Collection{}).
		Select("place_collections.*, (SELECT COUNT(*) FROM collection_places cp WHERE cp.collection_id = place_collections.id) AS place_count").
		Where("is_public = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}

	return collections, nil
}

func (d *CollectionDAO) CountPublicByCreator(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).
		Model(&Collection{}).
		Where("created_by_id = ? AND is_public = ?", userID, true).
		Count(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// AddPlace links a place to the collection at entry.SortOrder. A unique violation is
// resolved into ErrPlaceInCollection or ErrOrderTaken by looking at what already exists.
func (d *CollectionDAO) AddPlace(ctx context.Context, entry CollectionPlace) (CollectionPlace, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Place{}, entry.PlaceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaceNotFound
			}

			return err
		}

		created, err := insertOnce(tx, &entry)
		if err != nil {
			return err
		}
		if created {
			return nil
		}

		var samePlace int64
		err = tx.Model(&CollectionPlace{}).
			Where("collection_id = ? AND place_id = ?", entry.CollectionID, entry.PlaceID).
			Count(&samePlace).Error
		if err != nil {
			return err
		}
		if samePlace > 0 {
			return ErrPlaceInCollection
		}

		return ErrOrderTaken
	})
	if err != nil {
		return CollectionPlace{}, err
	}

	return entry, nil
}

func (d *CollectionDAO) ListPlaces(ctx context.Context, collectionID uint) ([]CollectionPlace, error) {
	var entries []CollectionPlace
	err := d.db.WithContext(ctx).
		Preload("Place").
		Where("collection_id = ?", collectionID).
		Order("sort_order ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
