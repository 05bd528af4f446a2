package repository

import (
	"context"

	"github.com/ghostpin/ghostpin-api/internal/domain"
)

// ProfileStatsRepository gathers the per-user counters that live in other tables.
type ProfileStatsRepository struct {
	places       *PlaceRepository
	checkIns     *CheckInRepository
	collections  *CollectionRepository
	gamification *GamificationRepository
}

func NewProfileStatsRepository(places *PlaceRepository, checkIns *CheckInRepository, collections *CollectionRepository, gamification *GamificationRepository) *ProfileStatsRepository {
	return &ProfileStatsRepository{
		places:       places,
		checkIns:     checkIns,
		collections:  collections,
		gamification: gamification,
	}
}

func (r *ProfileStatsRepository) CountApprovedByCreator(ctx context.Context, userID uint) (int64, error) {
	return r.places.CountApprovedByCreator(ctx, userID)
}

func (r *ProfileStatsRepository) CountCheckIns(ctx context.Context, userID uint) (int64, error) {
	return r.checkIns.CountByUser(ctx, userID)
}

func (r *ProfileStatsRepository) CountPublicCollections(ctx context.Context, userID uint) (int64, error) {
	return r.collections.CountPublicByCreator(ctx, userID)
}

func (r *ProfileStatsRepository) ListUserBadges(ctx context.Context, userID uint) ([]domain.UserBadge, error) {
	return r.gamification.ListUserBadges(ctx, userID)
}

// PlaceViewerRepository answers what a given viewer has done with a place.
type PlaceViewerRepository struct {
	interactions *InteractionRepository
	checkIns     *CheckInRepository
	comments     *CommentRepository
}

func NewPlaceViewerRepository(interactions *InteractionRepository, checkIns *CheckInRepository, comments *CommentRepository) *PlaceViewerRepository {
	return &PlaceViewerRepository{
		interactions: interactions,
		checkIns:     checkIns,
		comments:     comments,
	}
}

func (r *PlaceViewerRepository) IsFavorite(ctx context.Context, userID, placeID uint) (bool, error) {
	return r.interactions.IsFavorite(ctx, userID, placeID)
}

func (r *PlaceViewerRepository) FindCheckIn(ctx context.Context, userID, placeID uint) (domain.CheckIn, error) {
	return r.checkIns.FindByUserAndPlace(ctx, userID, placeID)
}

func (r *PlaceViewerRepository) AverageRating(ctx context.Context, placeID uint) (float64, error) {
	return r.comments.AverageRating(ctx, placeID)
}

// ActivityRepository exposes site-wide counters for staff analytics.
type ActivityRepository struct {
	users    *UserRepository
	checkIns *CheckInRepository
}

func NewActivityRepository(users *UserRepository, checkIns *CheckInRepository) *ActivityRepository {
	return &ActivityRepository{
		users:    users,
		checkIns: checkIns,
	}
}

func (r *ActivityRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.users.Count(ctx)
}

func (r *ActivityRepository) CountCheckIns(ctx context.Context) (int64, error) {
	return r.checkIns.Count(ctx)
}

func (r *ActivityRepository) RecentCheckIns(ctx context.Context, limit int) ([]domain.CheckIn, error) {
	return r.checkIns.Recent(ctx, limit)
}
