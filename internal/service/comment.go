package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/pkg/reputation"
)

var (
	ErrInvalidParent = errors.New("parent comment must belong to the same place")
	ErrReplyTooDeep  = errors.New("reply chain is too deep")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type CommentRepository interface {
	Create(ctx context.Context, comment domain.Comment, award int, reply *domain.Notification) (domain.Comment, error)
	FindByID(ctx context.Context, id uint) (domain.Comment, error)
	ListByPlace(ctx context.Context, placeID uint) ([]domain.Comment, error)
}

// CheckInFinder loads the check-in a comment refers to.
type CheckInFinder interface {
	FindByID(ctx context.Context, id uint) (domain.CheckIn, error)
}

type CommentService struct {
	repo          CommentRepository
	places        PlaceFinder
	checkIns      CheckInFinder
	publisher     Publisher
	awards        reputation.Awards
	maxReplyDepth int
}

func NewCommentService(repo CommentRepository, places PlaceFinder, checkIns CheckInFinder, publisher Publisher, awards reputation.Awards, maxReplyDepth int) *CommentService {
	return &CommentService{
		repo:          repo,
		places:        places,
		checkIns:      checkIns,
		publisher:     publisher,
		awards:        awards,
		maxReplyDepth: maxReplyDepth,
	}
}

// Add stores a comment by user on a visible place and credits the author. Replying to another
// user's comment notifies that user.
func (s *CommentService) Add(ctx context.Context, user domain.User, comment domain.Comment) (domain.Comment, error) {
	if comment.Rating != nil && (*comment.Rating < 1 || *comment.Rating > 5) {
		return domain.Comment{}, ErrInvalidRating
	}

	place, err := s.places.FindByID(ctx, comment.PlaceID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.places.FindByID -> %w", err)
	}
	if !place.VisibleTo(user) {
		return domain.Comment{}, ErrPlaceNotFound
	}

	comment.ID = 0
	comment.UserID = user.ID

	if comment.CheckInID != nil {
		if err := s.checkCheckIn(ctx, user.ID, comment.PlaceID, *comment.CheckInID); err != nil {
			return domain.Comment{}, err
		}
	}

	var reply *domain.Notification
	if comment.ParentID != nil {
		parent, err := s.checkParent(ctx, comment.PlaceID, *comment.ParentID)
		if err != nil {
			return domain.Comment{}, err
		}
		if parent.UserID != user.ID {
			n := domain.ReplyNotification(parent, user)
			reply = &n
		}
	}

	created, err := s.repo.Create(ctx, comment, s.awards.Comment, reply)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.Create -> %w", err)
	}
	created.Username = user.Username

	if reply != nil {
		s.publisher.Publish(*reply)
	}

	return created, nil
}

// checkCheckIn accepts only the author's own check-in at the commented place.
func (s *CommentService) checkCheckIn(ctx context.Context, userID, placeID, checkInID uint) error {
	checkIn, err := s.checkIns.FindByID(ctx, checkInID)
	if err != nil {
		return fmt.Errorf("s.checkIns.FindByID -> %w", err)
	}
	if checkIn.UserID != userID || checkIn.PlaceID != placeID {
		return ErrCheckInNotFound
	}

	return nil
}

// checkParent loads the parent and walks its ancestors, rejecting chains that leave the
// place, loop back on themselves or exceed the configured depth.
func (s *CommentService) checkParent(ctx context.Context, placeID, parentID uint) (domain.Comment, error) {
	parent, err := s.repo.FindByID(ctx, parentID)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if parent.PlaceID != placeID {
		return domain.Comment{}, ErrInvalidParent
	}

	visited := map[uint]bool{parent.ID: true}
	depth := 1
	current := parent
	for current.ParentID != nil {
		if depth >= s.maxReplyDepth {
			return domain.Comment{}, ErrReplyTooDeep
		}
		if visited[*current.ParentID] {
			return domain.Comment{}, ErrInvalidParent
		}
		visited[*current.ParentID] = true

		current, err = s.repo.FindByID(ctx, *current.ParentID)
		if err != nil {
			return domain.Comment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
		}
		if current.PlaceID != placeID {
			return domain.Comment{}, ErrInvalidParent
		}
		depth++
	}

	return parent, nil
}

// List returns the place's top-level comments with their replies nested.
func (s *CommentService) List(ctx context.Context, viewer domain.User, placeID uint) ([]domain.Comment, error) {
	place, err := s.places.FindByID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("s.places.FindByID -> %w", err)
	}
	if !place.VisibleTo(viewer) {
		return nil, ErrPlaceNotFound
	}

	comments, err := s.repo.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByPlace -> %w", err)
	}

	return domain.Thread(comments), nil
}
