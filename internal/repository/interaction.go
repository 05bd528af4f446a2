package repository

import (
	"context"
	"fmt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
)

type InteractionDAO interface {
	ToggleFavorite(ctx context.Context, userID, placeID uint) (string, error)
	IsFavorite(ctx context.Context, userID, placeID uint) (bool, error)
	ListFavorites(ctx context.Context, userID uint) ([]dao.Favorite, error)
	VotePlace(ctx context.Context, userID, placeID uint, voteType string) (dao.PlaceVoteOutcome, error)
	VoteComment(ctx context.Context, userID, commentID uint, voteType string) (dao.CommentVoteOutcome, error)
}

type InteractionRepository struct {
	dao InteractionDAO
}

func NewInteractionRepository(dao InteractionDAO) *InteractionRepository {
	return &InteractionRepository{
		dao: dao,
	}
}

func (r *InteractionRepository) ToggleFavorite(ctx context.Context, userID, placeID uint) (string, error) {
	action, err := r.dao.ToggleFavorite(ctx, userID, placeID)
	if err != nil {
		return "", fmt.Errorf("r.dao.ToggleFavorite -> %w", err)
	}

	if action == dao.ActionFavorited {
		return domain.FavoriteActionFavorited, nil
	}

	return domain.FavoriteActionUnfavorited, nil
}

func (r *InteractionRepository) IsFavorite(ctx context.Context, userID, placeID uint) (bool, error) {
	ok, err := r.dao.IsFavorite(ctx, userID, placeID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsFavorite -> %w", err)
	}

	return ok, nil
}

func (r *InteractionRepository) ListFavorites(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	found, err := r.dao.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListFavorites -> %w", err)
	}

	favorites := make([]domain.Favorite, 0, len(found))
	for _, f := range found {
		favorites = append(favorites, domain.Favorite{
			ID:        f.ID,
			UserID:    f.UserID,
			Place:     placeToDomain(f.Place),
			CreatedAt: f.CreatedAt,
		})
	}

	return favorites, nil
}

func (r *InteractionRepository) VotePlace(ctx context.Context, userID, placeID uint, voteType domain.VoteType) (domain.VoteResult, error) {
	outcome, err := r.dao.VotePlace(ctx, userID, placeID, string(voteType))
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("r.dao.VotePlace -> %w", err)
	}

	return domain.VoteResult{
		Action:         voteActionToDomain(outcome.Action),
		VoteType:       domain.VoteType(outcome.CurrentVote),
		ApprovalVotes:  outcome.Approvals,
		RejectionVotes: outcome.Rejections,
	}, nil
}

func (r *InteractionRepository) VoteComment(ctx context.Context, userID, commentID uint, voteType domain.VoteType) (domain.CommentVoteResult, error) {
	outcome, err := r.dao.VoteComment(ctx, userID, commentID, string(voteType))
	if err != nil {
		return domain.CommentVoteResult{}, fmt.Errorf("r.dao.VoteComment -> %w", err)
	}

	return domain.CommentVoteResult{
		Action:   voteActionToDomain(outcome.Action),
		VoteType: domain.VoteType(outcome.CurrentVote),
		Votes:    outcome.Votes,
	}, nil
}

func voteActionToDomain(action string) string {
	if action == dao.ActionRemoved {
		return domain.VoteActionRemoved
	}

	return domain.VoteActionVoted
}
