package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBadgeNotFound = errors.New("badge not found")

type Badge struct {
	ID uint `gorm:"primaryKey"`

	Name           string         `gorm:"uniqueIndex;size:100;not null"`
	Description    string         `gorm:"type:text"`
	Icon           string         `gorm:"size:50"`
	Criteria       datatypes.JSON `gorm:"type:json"`
	PointsRequired int            `gorm:"not null;default:0"`
	IsActive       bool           `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type UserBadge struct {
	ID uint `gorm:"primaryKey"`

	UserID  uint  `gorm:"not null;uniqueIndex:idx_user_badges_user_badge"`
	BadgeID uint  `gorm:"not null;uniqueIndex:idx_user_badges_user_badge"`
	Badge   Badge `gorm:"foreignKey:BadgeID;constraint:OnDelete:CASCADE"`

	EarnedAt time.Time `gorm:"not null;autoCreateTime"`
}

type Challenge struct {
	ID uint `gorm:"primaryKey"`

	Title         string         `gorm:"size:200;not null"`
	Description   string         `gorm:"type:text"`
	ChallengeType string         `gorm:"size:50;not null"`
	Criteria      datatypes.JSON `gorm:"type:json"`
	RewardPoints  int            `gorm:"not null;default:0"`
	StartDate     time.Time      `gorm:"not null;index"`
	EndDate       time.Time      `gorm:"not null;index"`
	IsActive      bool           `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type GamificationDAO struct {
	db *gorm.DB
}

func NewGamificationDAO(db *gorm.DB) *GamificationDAO {
	return &GamificationDAO{
		db: db,
	}
}

func (d *GamificationDAO) InsertBadge(ctx context.Context, badge Badge) (Badge, error) {
	if err := d.db.WithContext(ctx).Create(&badge).Error; err != nil {
		return Badge{}, err
	}

	return badge, nil
}

func (d *GamificationDAO) FindBadgeByID(ctx context.Context, id uint) (Badge, error) {
	var badge Badge

	result := d.db.WithContext(ctx).First(&badge, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Badge{}, ErrBadgeNotFound
		}

		return Badge{}, result.Error
	}

	return badge, nil
}

func (d *GamificationDAO) ListActiveBadges(ctx context.Context) ([]Badge, error) {
	var badges []Badge
	err := d.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("points_required ASC").
		Order("id ASC").
		Find(&badges).Error
	if err != nil {
		return nil, err
	}

	return badges, nil
}

func (d *GamificationDAO) ListUserBadges(ctx context.Context, userID uint) ([]UserBadge, error) {
	var earned []UserBadge
	err := d.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Order("id DESC").
		Find(&earned).Error
	if err != nil {
		return nil, err
	}

	return earned, nil
}

// AwardBadge records the badge for the user once and stores notification alongside it.
// It reports false without error when the user already holds the badge.
func (d *GamificationDAO) AwardBadge(ctx context.Context, userID, badgeID uint, notification *Notification) (bool, error) {
	var awarded bool
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Badge{}, badgeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBadgeNotFound
			}

			return err
		}

		created, err := insertOnce(tx, &UserBadge{UserID: userID, BadgeID: badgeID})
		if err != nil {
			return err
		}
		if !created {
			return nil
		}

		awarded = true
		return tx.Omit(clause.Associations).Create(notification).Error
	})
	if err != nil {
		return false, err
	}

	return awarded, nil
}

func (d *GamificationDAO) InsertChallenge(ctx context.Context, challenge Challenge) (Challenge, error) {
	if err := d.db.WithContext(ctx).Create(&challenge).Error; err != nil {
		return Challenge{}, err
	}

	return challenge, nil
}

// ActiveChallenges returns active challenges whose window contains now.
func (d *GamificationDAO) ActiveChallenges(ctx context.Context, now time.Time) ([]Challenge, error) {
	var challenges []Challenge
	err := d.db.WithContext(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("end_date ASC").
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}

	return challenges, nil
}

func (d *GamificationDAO) PastChallenges(ctx context.Context, now time.Time, limit int) ([]Challenge, error) {
	var challenges []Challenge
	err := d.db.WithContext(ctx).
		Where("end_date < ?", now).
		Order("end_date DESC").
		Limit(limit).
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}

	return challenges, nil
}
