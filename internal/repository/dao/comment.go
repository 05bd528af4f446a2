package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCommentNotFound = errors.New("comment not found")

type Comment struct {
	ID uint `gorm:"primaryKey"`

	UserID    uint     `gorm:"not null;index"`
	User      User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PlaceID   uint     `gorm:"not null;index"`
	CheckInID *uint    `gorm:"index"`
	CheckIn   *CheckIn `gorm:"foreignKey:CheckInID;constraint:OnDelete:SET NULL"`
	ParentID  *uint    `gorm:"index"`

	Text   string `gorm:"type:text;not null"`
	Votes  int    `gorm:"not null;default:0"`
	Rating *int

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		db: db,
	}
}

// Insert stores the comment, credits the author and, when reply is set, stores the reply
// notification, all in one transaction.
func (d *CommentDAO) Insert(ctx context.Context, comment Comment, award int, reply *Notification) (Comment, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&comment).Error; err != nil {
			return err
		}

		if reply != nil {
			if err := tx.Create(reply).Error; err != nil {
				return err
			}
		}

		_, err := awardPoints(tx, comment.UserID, award)
		return err
	})
	if err != nil {
		return Comment{}, err
	}

	return comment, nil
}

func (d *CommentDAO) FindByID(ctx context.Context, id uint) (Comment, error) {
	var comment Comment

	result := d.db.WithContext(ctx).Preload("User").First(&comment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Comment{}, ErrCommentNotFound
		}

		return Comment{}, result.Error
	}

	return comment, nil
}

func (d *CommentDAO) ListByPlace(ctx context.Context, placeID uint) ([]Comment, error) {
	var comments []Comment
	err := d.db.WithContext(ctx).
		Preload("User").
		Where("place_id = ?", placeID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// AverageRating averages the ratings of rated comments on the place; zero when none are rated.
func (d *CommentDAO) AverageRating(ctx context.Context, placeID uint) (float64, error) {
	var avg float64
	err := d.db.WithContext(ctx).
		Model(&Comment{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("place_id = ? AND rating IS NOT NULL", placeID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	return avg, nil
}
