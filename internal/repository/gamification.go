package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
)

var ErrBadgeNotFound = dao.ErrBadgeNotFound

type GamificationDAO interface {
	InsertBadge(ctx context.Context, badge dao.Badge) (dao.Badge, error)
	FindBadgeByID(ctx context.Context, id uint) (dao.Badge, error)
	ListActiveBadges(ctx context.Context) ([]dao.Badge, error)
	ListUserBadges(ctx context.Context, userID uint) ([]dao.UserBadge, error)
	AwardBadge(ctx context.Context, userID, badgeID uint, notification *dao.Notification) (bool, error)
	InsertChallenge(ctx context.Context, challenge dao.Challenge) (dao.Challenge, error)
	ActiveChallenges(ctx context.Context, now time.Time) ([]dao.Challenge, error)
	PastChallenges(ctx context.Context, now time.Time, limit int) ([]dao.Challenge, error)
}

type GamificationRepository struct {
	dao GamificationDAO
}

func NewGamificationRepository(dao GamificationDAO) *GamificationRepository {
	return &GamificationRepository{
		dao: dao,
	}
}

func (r *GamificationRepository) CreateBadge(ctx context.Context, badge domain.Badge) (domain.Badge, error) {
	created, err := r.dao.InsertBadge(ctx, dao.Badge{
		Name:           badge.Name,
		Description:    badge.Description,
		Icon:           badge.Icon,
		Criteria:       datatypes.JSON(badge.Criteria),
		PointsRequired: badge.PointsRequired,
		IsActive:       badge.IsActive,
	})
	if err != nil {
		return domain.Badge{}, fmt.Errorf("r.dao.InsertBadge -> %w", err)
	}

	return badgeToDomain(created), nil
}

func (r *GamificationRepository) FindBadgeByID(ctx context.Context, id uint) (domain.Badge, error) {
	found, err := r.dao.FindBadgeByID(ctx, id)
	if err != nil {
		return domain.Badge{}, fmt.Errorf("r.dao.FindBadgeByID -> %w", err)
	}

	return badgeToDomain(found), nil
}

func (r *GamificationRepository) ListActiveBadges(ctx context.Context) ([]domain.Badge, error) {
	found, err := r.dao.ListActiveBadges(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListActiveBadges -> %w", err)
	}

	badges := make([]domain.Badge, 0, len(found))
	for _, b := range found {
		badges = append(badges, badgeToDomain(b))
	}

	return badges, nil
}

func (r *GamificationRepository) ListUserBadges(ctx context.Context, userID uint) ([]domain.UserBadge, error) {
	found, err := r.dao.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListUserBadges -> %w", err)
	}

	earned := make([]domain.UserBadge, 0, len(found))
	for _, ub := range found {
		badge := badgeToDomain(ub.Badge)
		badge.Earned = true
		earned = append(earned, domain.UserBadge{
			ID:       ub.ID,
			UserID:   ub.UserID,
			Badge:    badge,
			EarnedAt: ub.EarnedAt,
		})
	}

	return earned, nil
}

// AwardBadge reports whether the badge was newly recorded; only then is notification stored and filled in.
func (r *GamificationRepository) AwardBadge(ctx context.Context, userID, badgeID uint, notification *domain.Notification) (bool, error) {
	stored := notificationToDAO(*notification)
	awarded, err := r.dao.AwardBadge(ctx, userID, badgeID, &stored)
	if err != nil {
		return false, fmt.Errorf("r.dao.AwardBadge -> %w", err)
	}
	if awarded {
		*notification = notificationToDomain(stored)
	}

	return awarded, nil
}

func (r *GamificationRepository) CreateChallenge(ctx context.Context, challenge domain.Challenge) (domain.Challenge, error) {
	created, err := r.dao.InsertChallenge(ctx, dao.Challenge{
		Title:         challenge.Title,
		Description:   challenge.Description,
		ChallengeType: challenge.ChallengeType,
		Criteria:      datatypes.JSON(challenge.Criteria),
		RewardPoints:  challenge.RewardPoints,
		StartDate:     challenge.StartDate,
		EndDate:       challenge.EndDate,
		IsActive:      challenge.IsActive,
	})
	if err != nil {
		return domain.Challenge{}, fmt.Errorf("r.dao.InsertChallenge -> %w", err)
	}

	return challengeToDomain(created), nil
}

func (r *GamificationRepository) ActiveChallenges(ctx context.Context, now time.Time) ([]domain.Challenge, error) {
	found, err := r.dao.ActiveChallenges(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ActiveChallenges -> %w", err)
	}

	return challengesToDomain(found), nil
}

func (r *GamificationRepository) PastChallenges(ctx context.Context, now time.Time, limit int) ([]domain.Challenge, error) {
	found, err := r.dao.PastChallenges(ctx, now, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.PastChallenges -> %w", err)
	}

	return challengesToDomain(found), nil
}

func badgeToDomain(b dao.Badge) domain.Badge {
	return domain.Badge{
		ID:             b.ID,
		Name:           b.Name,
		Description:    b.Description,
		Icon:           b.Icon,
		Criteria:       json.RawMessage(b.Criteria),
		PointsRequired: b.PointsRequired,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
	}
}

func challengeToDomain(c dao.Challenge) domain.Challenge {
	return domain.Challenge{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		ChallengeType: c.ChallengeType,
		Criteria:      json.RawMessage(c.Criteria),
		RewardPoints:  c.RewardPoints,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		IsActive:      c.IsActive,
	}
}

func challengesToDomain(challenges []dao.Challenge) []domain.Challenge {
	converted := make([]domain.Challenge, 0, len(challenges))
	for _, c := range challenges {
		converted = append(converted, challengeToDomain(c))
	}

	return converted
}
