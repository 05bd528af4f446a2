package service

import (
	"context"
	"fmt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository"
)

const DefaultLeaderboardSize = 50

var ErrUserNotFound = repository.ErrUserNotFound

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	GetProfile(ctx context.Context, userID uint) (domain.Profile, error)
	UpdateBio(ctx context.Context, userID uint, bio string) (domain.Profile, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// ProfileStats reads the per-user counts shown on a profile.
type ProfileStats interface {
	CountApprovedByCreator(ctx context.Context, userID uint) (int64, error)
	CountCheckIns(ctx context.Context, userID uint) (int64, error)
	CountPublicCollections(ctx context.Context, userID uint) (int64, error)
	ListUserBadges(ctx context.Context, userID uint) ([]domain.UserBadge, error)
}

type UserService struct {
	repo  UserRepository
	stats ProfileStats
}

func NewUserService(repo UserRepository, stats ProfileStats) *UserService {
	return &UserService{
		repo:  repo,
		stats: stats,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// GetProfile returns the user's profile, creating it lazily, with earned badges and activity counts.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (domain.ProfileSummary, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	profile, err := s.repo.GetProfile(ctx, userID)
	if err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("s.repo.GetProfile -> %w", err)
	}
	profile.Username = user.Username

	summary := domain.ProfileSummary{User: user, Profile: profile}

	if summary.Badges, err = s.stats.ListUserBadges(ctx, userID); err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("s.stats.ListUserBadges -> %w", err)
	}
	if summary.ApprovedPlaces, err = s.stats.CountApprovedByCreator(ctx, userID); err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("s.stats.CountApprovedByCreator -> %w", err)
	}
	if summary.CheckIns, err = s.stats.CountCheckIns(ctx, userID); err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("s.stats.CountCheckIns -> %w", err)
	}
	if summary.Collections, err = s.stats.CountPublicCollections(ctx, userID); err != nil {
		return domain.ProfileSummary{}, fmt.Errorf("s.stats.CountPublicCollections -> %w", err)
	}

	return summary, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, bio string) (domain.Profile, error) {
	profile, err := s.repo.UpdateBio(ctx, userID, bio)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("s.repo.UpdateBio -> %w", err)
	}

	return profile, nil
}

func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 || limit > DefaultLeaderboardSize {
		limit = DefaultLeaderboardSize
	}

	entries, err := s.repo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Leaderboard -> %w", err)
	}

	return entries, nil
}
