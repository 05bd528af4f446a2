package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type Notification struct {
	ID uint `gorm:"primaryKey"`

	UserID           uint   `gorm:"not null;index:idx_notifications_user_created"`
	Title            string `gorm:"size:200;not null"`
	Message          string `gorm:"type:text;not null"`
	NotificationType string `gorm:"size:20;not null"`
	IsRead           bool   `gorm:"not null;default:false"`

	RelatedPlaceID      *uint
	RelatedCollectionID *uint

	CreatedAt time.Time `gorm:"not null;index:idx_notifications_user_created"`
}

type NotificationDAO struct {
	db *gorm.DB
}

func NewNotificationDAO(db *gorm.DB) *NotificationDAO {
	return &NotificationDAO{
		db: db,
	}
}

func (d *NotificationDAO) Insert(ctx context.Context, notification Notification) (Notification, error) {
	if err := d.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return Notification{}, err
	}

	return notification, nil
}

// InsertUnlessRecent stores the notification unless the user already has one of the same type
// created at or after since. The check is soft: concurrent callers may both insert.
func (d *NotificationDAO) InsertUnlessRecent(ctx context.Context, notification Notification, since time.Time) (Notification, bool, error) {
	var recent int64
	err := d.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND notification_type = ? AND created_at >= ?",
			notification.UserID, notification.NotificationType, since).
		Count(&recent).Error
	if err != nil {
		return Notification{}, false, err
	}
	if recent > 0 {
		return Notification{}, false, nil
	}

	created, err := d.Insert(ctx, notification)
	if err != nil {
		return Notification{}, false, err
	}

	return created, true, nil
}

func (d *NotificationDAO) ListByUser(ctx context.Context, userID uint) ([]Notification, error) {
	var notifications []Notification
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (d *NotificationDAO) MarkRead(ctx context.Context, userID, id uint) error {
	result := d.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (d *NotificationDAO) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *NotificationDAO) Delete(ctx context.Context, userID, id uint) error {
	result := d.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (d *NotificationDAO) DeleteAll(ctx context.Context, userID uint) (int64, error) {
	result := d.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Notification{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *NotificationDAO) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var total int64
	err := d.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}
