package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository"
)

var ErrNotificationNotFound = repository.ErrNotificationNotFound

// Publisher pushes stored notifications to live subscribers. Delivery is best effort.
type Publisher interface {
	Publish(notification domain.Notification)
}

type NopPublisher struct{}

func (NopPublisher) Publish(domain.Notification) {}

type NotificationRepository interface {
	Create(ctx context.Context, notification domain.Notification) (domain.Notification, error)
	CreateUnlessRecent(ctx context.Context, notification domain.Notification, since time.Time) (domain.Notification, bool, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, userID, id uint) error
	DeleteAll(ctx context.Context, userID uint) (int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{
		repo: repo,
	}
}

func (s *NotificationService) List(ctx context.Context, userID uint) ([]domain.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id uint) error {
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		return fmt.Errorf("s.repo.MarkRead -> %w", err)
	}

	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	total, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.MarkAllRead -> %w", err)
	}

	return total, nil
}

func (s *NotificationService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *NotificationService) ClearAll(ctx context.Context, userID uint) (int64, error) {
	total, err := s.repo.DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteAll -> %w", err)
	}

	return total, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	total, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountUnread -> %w", err)
	}

	return total, nil
}
