package repository

import (
	"context"
	"fmt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/pkg/reputation"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
)

var (
	ErrUserExists    = dao.ErrUserExists
	ErrUserNotFound  = dao.ErrUserNotFound
	ErrNegativeAward = dao.ErrNegativeAward
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	Count(ctx context.Context) (int64, error)
}

type ProfileDAO interface {
	GetOrCreate(ctx context.Context, userID uint) (dao.Profile, error)
	Award(ctx context.Context, userID uint, delta int) (dao.Profile, error)
	UpdateBio(ctx context.Context, userID uint, bio string) (dao.Profile, error)
	Top(ctx context.Context, limit int) ([]dao.Profile, error)
}

type UserRepository struct {
	dao        UserDAO
	profileDAO ProfileDAO
}

func NewUserRepository(dao UserDAO, profileDAO ProfileDAO) *UserRepository {
	return &UserRepository{
		dao:        dao,
		profileDAO: profileDAO,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Email:       user.Email,
		Username:    user.Username,
		Password:    user.Password,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	total, err := r.dao.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Count -> %w", err)
	}

	return total, nil
}

func (r *UserRepository) GetProfile(ctx context.Context, userID uint) (domain.Profile, error) {
	found, err := r.profileDAO.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.profileDAO.GetOrCreate -> %w", err)
	}

	return profileToDomain(found), nil
}

func (r *UserRepository) Award(ctx context.Context, userID uint, delta int) (domain.Profile, error) {
	updated, err := r.profileDAO.Award(ctx, userID, delta)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.profileDAO.Award -> %w", err)
	}

	return profileToDomain(updated), nil
}

func (r *UserRepository) UpdateBio(ctx context.Context, userID uint, bio string) (domain.Profile, error) {
	updated, err := r.profileDAO.UpdateBio(ctx, userID, bio)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("r.profileDAO.UpdateBio -> %w", err)
	}

	return profileToDomain(updated), nil
}

func (r *UserRepository) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	profiles, err := r.profileDAO.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("r.profileDAO.Top -> %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   p.UserID,
			Username: p.User.Username,
			Points:   p.Points,
			Level:    p.Level,
		})
	}

	return entries, nil
}

func userToDomain(u dao.User) domain.User {
	return domain.User{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		Password:    u.Password,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func profileToDomain(p dao.Profile) domain.Profile {
	return domain.Profile{
		UserID:        p.UserID,
		Username:      p.User.Username,
		Bio:           p.Bio,
		IsTrusted:     p.IsTrusted,
		IsLocalExpert: p.IsLocalExpert,
		Points:        p.Points,
		Level:         p.Level,
		NextLevelAt:   reputation.NextLevelAt(p.Points),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
