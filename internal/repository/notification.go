package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
)

var ErrNotificationNotFound = dao.ErrNotificationNotFound

type NotificationDAO interface {
	Insert(ctx context.Context, notification dao.Notification) (dao.Notification, error)
	InsertUnlessRecent(ctx context.Context, notification dao.Notification, since time.Time) (dao.Notification, bool, error)
	ListByUser(ctx context.Context, userID uint) ([]dao.Notification, error)
	MarkRead(ctx context.Context, userID, id uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, userID, id uint) error
	DeleteAll(ctx context.Context, userID uint) (int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type NotificationRepository struct {
	dao NotificationDAO
}

func NewNotificationRepository(dao NotificationDAO) *NotificationRepository {
	return &NotificationRepository{
		dao: dao,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	created, err := r.dao.Insert(ctx, notificationToDAO(notification))
	if err != nil {
		return domain.Notification{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return notificationToDomain(created), nil
}

func (r *NotificationRepository) CreateUnlessRecent(ctx context.Context, notification domain.Notification, since time.Time) (domain.Notification, bool, error) {
	created, ok, err := r.dao.InsertUnlessRecent(ctx, notificationToDAO(notification), since)
	if err != nil {
		return domain.Notification{}, false, fmt.Errorf("r.dao.InsertUnlessRecent -> %w", err)
	}

	return notificationToDomain(created), ok, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error) {
	found, err := r.dao.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	notifications := make([]domain.Notification, 0, len(found))
	for _, n := range found {
		notifications = append(notifications, notificationToDomain(n))
	}

	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id uint) error {
	if err := r.dao.MarkRead(ctx, userID, id); err != nil {
		return fmt.Errorf("r.dao.MarkRead -> %w", err)
	}

	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	total, err := r.dao.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MarkAllRead -> %w", err)
	}

	return total, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, userID, id uint) error {
	if err := r.dao.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *NotificationRepository) DeleteAll(ctx context.Context, userID uint) (int64, error) {
	total, err := r.dao.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteAll -> %w", err)
	}

	return total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	total, err := r.dao.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountUnread -> %w", err)
	}

	return total, nil
}

func notificationToDAO(n domain.Notification) dao.Notification {
	return dao.Notification{
		ID:                  n.ID,
		UserID:              n.UserID,
		Title:               n.Title,
		Message:             n.Message,
		NotificationType:    string(n.Type),
		IsRead:              n.IsRead,
		RelatedPlaceID:      n.RelatedPlaceID,
		RelatedCollectionID: n.RelatedCollectionID,
		CreatedAt:           n.CreatedAt,
	}
}

func notificationToDomain(n dao.Notification) domain.Notification {
	return domain.Notification{
		ID:                  n.ID,
		UserID:              n.UserID,
		Title:               n.Title,
		Message:             n.Message,
		Type:                domain.NotificationType(n.NotificationType),
		IsRead:              n.IsRead,
		RelatedPlaceID:      n.RelatedPlaceID,
		RelatedCollectionID: n.RelatedCollectionID,
		CreatedAt:           n.CreatedAt,
	}
}
