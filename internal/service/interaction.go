package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository"
)

var (
	ErrCommentNotFound = repository.ErrCommentNotFound
	ErrInvalidVoteType = errors.New("vote_type must be up or down")
)

type InteractionRepository interface {
	ToggleFavorite(ctx context.Context, userID, placeID uint) (string, error)
	ListFavorites(ctx context.Context, userID uint) ([]domain.Favorite, error)
	VotePlace(ctx context.Context, userID, placeID uint, voteType domain.VoteType) (domain.VoteResult, error)
	VoteComment(ctx context.Context, userID, commentID uint, voteType domain.VoteType) (domain.CommentVoteResult, error)
}

type InteractionService struct {
	repo InteractionRepository
}

func NewInteractionService(repo InteractionRepository) *InteractionService {
	return &InteractionService{
		repo: repo,
	}
}

func (s *InteractionService) ToggleFavorite(ctx context.Context, user domain.User, placeID uint) (string, error) {
	action, err := s.repo.ToggleFavorite(ctx, user.ID, placeID)
	if err != nil {
		return "", fmt.Errorf("s.repo.ToggleFavorite -> %w", err)
	}

	return action, nil
}

func (s *InteractionService) ListFavorites(ctx context.Context, user domain.User) ([]domain.Favorite, error) {
	favorites, err := s.repo.ListFavorites(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListFavorites -> %w", err)
	}

	return favorites, nil
}

// VotePlace creates, removes or flips the user's vote and returns the recounted tallies.
func (s *InteractionService) VotePlace(ctx context.Context, user domain.User, placeID uint, voteType domain.VoteType) (domain.VoteResult, error) {
	if !voteType.Valid() {
		return domain.VoteResult{}, ErrInvalidVoteType
	}

	result, err := s.repo.VotePlace(ctx, user.ID, placeID, voteType)
	if err != nil {
		return domain.VoteResult{}, fmt.Errorf("s.repo.VotePlace -> %w", err)
	}

	return result, nil
}

// VoteComment follows the same toggle rules as VotePlace.
func (s *InteractionService) VoteComment(ctx context.Context, user domain.User, commentID uint, voteType domain.VoteType) (domain.CommentVoteResult, error) {
	if !voteType.Valid() {
		return domain.CommentVoteResult{}, ErrInvalidVoteType
	}

	result, err := s.repo.VoteComment(ctx, user.ID, commentID, voteType)
	if err != nil {
		return domain.CommentVoteResult{}, fmt.Errorf("s.repo.VoteComment -> %w", err)
	}

	return result, nil
}
