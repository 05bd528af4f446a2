package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository"
)

const pastChallengesSize = 10

var ErrBadgeNotFound = repository.ErrBadgeNotFound

type GamificationRepository interface {
	CreateBadge(ctx context.Context, badge domain.Badge) (domain.Badge, error)
	FindBadgeByID(ctx context.Context, id uint) (domain.Badge, error)
	ListActiveBadges(ctx context.Context) ([]domain.Badge, error)
	ListUserBadges(ctx context.Context, userID uint) ([]domain.UserBadge, error)
	AwardBadge(ctx context.Context, userID, badgeID uint, notification *domain.Notification) (bool, error)
	CreateChallenge(ctx context.Context, challenge domain.Challenge) (domain.Challenge, error)
	ActiveChallenges(ctx context.Context, now time.Time) ([]domain.Challenge, error)
	PastChallenges(ctx context.Context, now time.Time, limit int) ([]domain.Challenge, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

type GamificationService struct {
	repo      GamificationRepository
	users     UserFinder
	publisher Publisher
}

func NewGamificationService(repo GamificationRepository, users UserFinder, publisher Publisher) *GamificationService {
	return &GamificationService{
		repo:      repo,
		users:     users,
		publisher: publisher,
	}
}

// ListBadges returns every active badge, flagging the ones the viewer already holds.
func (s *GamificationService) ListBadges(ctx context.Context, viewer domain.User) ([]domain.Badge, error) {
	badges, err := s.repo.ListActiveBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListActiveBadges -> %w", err)
	}
	if viewer.ID == 0 {
		return badges, nil
	}

	earned, err := s.repo.ListUserBadges(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListUserBadges -> %w", err)
	}
	held := make(map[uint]bool, len(earned))
	for _, ub := range earned {
		held[ub.Badge.ID] = true
	}
	for i := range badges {
		badges[i].Earned = held[badges[i].ID]
	}

	return badges, nil
}

// AwardBadge grants a badge on behalf of staff. Granting a badge the user already holds is a
// no-op and reports false.
func (s *GamificationService) AwardBadge(ctx context.Context, staff domain.User, userID, badgeID uint) (bool, error) {
	if !staff.CanModerate() {
		return false, ErrPermissionDenied
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return false, fmt.Errorf("s.users.FindByID -> %w", err)
	}
	badge, err := s.repo.FindBadgeByID(ctx, badgeID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindBadgeByID -> %w", err)
	}

	notification := domain.BadgeNotification(userID, badge)
	awarded, err := s.repo.AwardBadge(ctx, userID, badgeID, &notification)
	if err != nil {
		return false, fmt.Errorf("s.repo.AwardBadge -> %w", err)
	}
	if !awarded {
		return false, nil
	}

	s.publisher.Publish(notification)
	zap.L().Info("badge awarded",
		zap.Uint("user_id", userID),
		zap.Uint("badge_id", badgeID),
		zap.Uint("staff_id", staff.ID),
	)

	return true, nil
}

func (s *GamificationService) CreateBadge(ctx context.Context, staff domain.User, badge domain.Badge) (domain.Badge, error) {
	if !staff.CanModerate() {
		return domain.Badge{}, ErrPermissionDenied
	}

	created, err := s.repo.CreateBadge(ctx, badge)
	if err != nil {
		return domain.Badge{}, fmt.Errorf("s.repo.CreateBadge -> %w", err)
	}

	return created, nil
}

func (s *GamificationService) CreateChallenge(ctx context.Context, staff domain.User, challenge domain.Challenge) (domain.Challenge, error) {
	if !staff.CanModerate() {
		return domain.Challenge{}, ErrPermissionDenied
	}

	created, err := s.repo.CreateChallenge(ctx, challenge)
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("s.repo.CreateChallenge -> %w", err)
	}

	return created, nil
}

func (s *GamificationService) ListChallenges(ctx context.Context, now time.Time) (domain.ChallengeBoard, error) {
	active, err := s.repo.ActiveChallenges(ctx, now)
	if err != nil {
		return domain.ChallengeBoard{}, fmt.Errorf("s.repo.ActiveChallenges -> %w", err)
	}
	past, err := s.repo.PastChallenges(ctx, now, pastChallengesSize)
	if err != nil {
		return domain.ChallengeBoard{}, fmt.Errorf("s.repo.PastChallenges -> %w", err)
	}

	return domain.ChallengeBoard{Active: active, Past: past}, nil
}
