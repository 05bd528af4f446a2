package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository"
)

var (
	ErrUserExists    = repository.ErrUserExists
	ErrWrongPassword = errors.New("wrong password")
)

type AuthUserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type WelcomeNotifier interface {
	CreateUnlessRecent(ctx context.Context, notification domain.Notification, since time.Time) (domain.Notification, bool, error)
}

type AuthService struct {
	repo          AuthUserRepository
	notifications WelcomeNotifier
	publisher     Publisher
}

func NewAuthService(repo AuthUserRepository, notifications WelcomeNotifier, publisher Publisher) *AuthService {
	return &AuthService{
		repo:          repo,
		notifications: notifications,
		publisher:     publisher,
	}
}

func (s *AuthService) Signup(ctx context.Context, user domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = string(hash)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	zap.L().Info("user signed up", zap.Uint("user_id", created.ID))

	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	s.welcome(ctx, user.ID)

	return user, nil
}

// welcome sends the one-time welcome notification. A failure is logged and does not block the login.
func (s *AuthService) welcome(ctx context.Context, userID uint) {
	// The zero time makes any earlier welcome count, so it is only ever sent once.
	created, ok, err := s.notifications.CreateUnlessRecent(ctx, domain.WelcomeNotification(userID), time.Time{})
	if err != nil {
		zap.L().Warn("welcome notification failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if ok {
		s.publisher.Publish(created)
	}
}
