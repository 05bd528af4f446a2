package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ghostpin/ghostpin-api/internal/pkg/reputation"
)

var ErrNegativeAward = errors.New("award must not be negative")

type Profile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	Bio           string `gorm:"type:text"`
	IsTrusted     bool   `gorm:"not null;default:false"`
	IsLocalExpert bool   `gorm:"not null;default:false"`
	Points        int    `gorm:"not null;default:0;index"`
	Level         int    `gorm:"not null;default:1"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ProfileDAO struct {
	db *gorm.DB
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{
		db: db,
	}
}

// GetOrCreate returns the user's profile, creating an empty one on first access.
func (d *ProfileDAO) GetOrCreate(ctx context.Context, userID uint) (Profile, error) {
	return ensureProfile(d.db.WithContext(ctx), userID)
}

func (d *ProfileDAO) Award(ctx context.Context, userID uint, delta int) (Profile, error) {
	var profile Profile
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		profile, err = awardPoints(tx, userID, delta)
		return err
	})
	if err != nil {
		return Profile{}, err
	}

	return profile, nil
}

func (d *ProfileDAO) UpdateBio(ctx context.Context, userID uint, bio string) (Profile, error) {
	db := d.db.WithContext(ctx)
	if _, err := ensureProfile(db, userID); err != nil {
		return Profile{}, err
	}

	if err := db.Model(&Profile{}).Where("user_id = ?", userID).Update("bio", bio).Error; err != nil {
		return Profile{}, err
	}

	return ensureProfile(db, userID)
}

// Top returns the highest-ranked profiles with their users preloaded.
func (d *ProfileDAO) Top(ctx context.Context, limit int) ([]Profile, error) {
	var profiles []Profile
	err := d.db.WithContext(ctx).
		Preload("User").
		Order("points DESC").
		Order("user_id ASC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

func ensureProfile(tx *gorm.DB, userID uint) (Profile, error) {
	profile := Profile{UserID: userID, Level: reputation.MinLevel}
	err := tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&profile).Error
	if err != nil {
		return Profile{}, err
	}

	var stored Profile
	if err = tx.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return Profile{}, err
	}

	return stored, nil
}

// awardPoints adds delta to the user's points and recomputes the level within tx.
func awardPoints(tx *gorm.DB, userID uint, delta int) (Profile, error) {
	if delta < 0 {
		return Profile{}, ErrNegativeAward
	}

	profile, err := ensureProfile(tx, userID)
	if err != nil {
		return Profile{}, err
	}
	if delta == 0 {
		return profile, nil
	}

	err = tx.Model(&Profile{}).
		Where("user_id = ?", userID).
		Update("points", gorm.Expr("points + ?", delta)).Error
	if err != nil {
		return Profile{}, err
	}

	if err = tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return Profile{}, err
	}

	if level := reputation.LevelFor(profile.Points); level != profile.Level {
		if err = tx.Model(&profile).Update("level", level).Error; err != nil {
			return Profile{}, err
		}
		profile.Level = level
	}

	return profile, nil
}
