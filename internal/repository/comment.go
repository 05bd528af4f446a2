package repository

import (
	"context"
	"fmt"

	"github.com/ghostpin/ghostpin-api/internal/domain"
	"github.com/ghostpin/ghostpin-api/internal/repository/dao"
)

var ErrCommentNotFound = dao.ErrCommentNotFound

type CommentDAO interface {
	Insert(ctx context.Context, comment dao.Comment, award int, reply *dao.Notification) (dao.Comment, error)
	FindByID(ctx context.Context, id uint) (dao.Comment, error)
	ListByPlace(ctx context.Context, placeID uint) ([]dao.Comment, error)
	AverageRating(ctx context.Context, placeID uint) (float64, error)
}

type CommentRepository struct {
	dao CommentDAO
}

func NewCommentRepository(dao CommentDAO) *CommentRepository {
	return &CommentRepository{
		dao: dao,
	}
}

// Create stores the comment with the author's award and, if given, the reply notification,
// which is then filled in with the stored row.
func (r *CommentRepository) Create(ctx context.Context, comment domain.Comment, award int, reply *domain.Notification) (domain.Comment, error) {
	var replyDAO *dao.Notification
	if reply != nil {
		n := notificationToDAO(*reply)
		replyDAO = &n
	}

	created, err := r.dao.Insert(ctx, dao.Comment{
		UserID:    comment.UserID,
		PlaceID:   comment.PlaceID,
		CheckInID: comment.CheckInID,
		ParentID:  comment.ParentID,
		Text:      comment.Text,
		Rating:    comment.Rating,
	}, award, replyDAO)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}
	if reply != nil {
		*reply = notificationToDomain(*replyDAO)
	}

	return commentToDomain(created), nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint) (domain.Comment, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return commentToDomain(found), nil
}

func (r *CommentRepository) ListByPlace(ctx context.Context, placeID uint) ([]domain.Comment, error) {
	found, err := r.dao.ListByPlace(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByPlace -> %w", err)
	}

	comments := make([]domain.Comment, 0, len(found))
	for _, c := range found {
		comments = append(comments, commentToDomain(c))
	}

	return comments, nil
}

func (r *CommentRepository) AverageRating(ctx context.Context, placeID uint) (float64, error) {
	avg, err := r.dao.AverageRating(ctx, placeID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.AverageRating -> %w", err)
	}

	return avg, nil
}

func commentToDomain(c dao.Comment) domain.Comment {
	return domain.Comment{
		ID:        c.ID,
		UserID:    c.UserID,
		Username:  c.User.Username,
		PlaceID:   c.PlaceID,
		CheckInID: c.CheckInID,
		ParentID:  c.ParentID,
		Text:      c.Text,
		Votes:     c.Votes,
		Rating:    c.Rating,
		CreatedAt: c.CreatedAt,
	}
}
