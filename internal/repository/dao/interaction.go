package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

const (
	VoteUp   = "up"
	VoteDown = "down"

	ActionVoted       = "voted"
	ActionRemoved     = "removed"
	ActionFavorited   = "favorited"
	ActionUnfavorited = "unfavorited"
)

// Vote targets exactly one of a place or a comment.
type Vote struct {
	ID uint `gorm:"primaryKey"`

	UserID    uint   `gorm:"not null;uniqueIndex:idx_votes_user_place;uniqueIndex:idx_votes_user_comment"`
	PlaceID   *uint  `gorm:"uniqueIndex:idx_votes_user_place;check:chk_votes_single_target,(place_id IS NULL) <> (comment_id IS NULL)"`
	CommentID *uint  `gorm:"uniqueIndex:idx_votes_user_comment"`
	VoteType  string `gorm:"size:10;not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type Favorite struct {
	ID uint `gorm:"primaryKey"`

	UserID  uint  `gorm:"not null;uniqueIndex:idx_favorites_user_place"`
	PlaceID uint  `gorm:"not null;uniqueIndex:idx_favorites_user_place"`
	Place   Place `gorm:"foreignKey:PlaceID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
}

type PlaceVoteOutcome struct {
	Action         string
	Approvals      int
	Rejections     int
	CurrentVote    string
	PlaceCreatorID uint
}

type CommentVoteOutcome struct {
	Action      string
	Votes       int
	CurrentVote string
}

type InteractionDAO struct {
	db *gorm.DB
}

func NewInteractionDAO(db *gorm.DB) *InteractionDAO {
	return &InteractionDAO{
		db: db,
	}
}

// ToggleFavorite adds the favorite when absent and removes it when present.
func (d *InteractionDAO) ToggleFavorite(ctx context.Context, userID, placeID uint) (string, error) {
	var action string
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Place{}, placeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaceNotFound
			}

			return err
		}

		created, err := insertOnce(tx, &Favorite{UserID: userID, PlaceID: placeID})
		if err != nil {
			return err
		}
		if created {
			action = ActionFavorited
			return nil
		}

		err = tx.Where("user_id = ? AND place_id = ?", userID, placeID).Delete(&Favorite{}).Error
		action = ActionUnfavorited
		return err
	})
	if err != nil {
		return "", err
	}

	return action, nil
}

func (d *InteractionDAO) IsFavorite(ctx context.Context, userID, placeID uint) (bool, error) {
	var total int64
	err := d.db.WithContext(ctx).
		Model(&Favorite{}).
		Where("user_id = ? AND place_id = ?", userID, placeID).
		Count(&total).Error
	if err != nil {
		return false, err
	}

	return total > 0, nil
}

func (d *InteractionDAO) ListFavorites(ctx context.Context, userID uint) ([]Favorite, error) {
	var favorites []Favorite
	err := d.db.WithContext(ctx).
		Preload("Place").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}

	return favorites, nil
}

// VotePlace applies the toggle to the user's vote on the place and recounts its tallies.
func (d *InteractionDAO) VotePlace(ctx context.Context, userID, placeID uint, voteType string) (PlaceVoteOutcome, error) {
	var outcome PlaceVoteOutcome
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var place Place
		if err := tx.Select("id", "created_by_id").First(&place, placeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPlaceNotFound
			}

			return err
		}

		action, err := toggleVote(tx, Vote{UserID: userID, PlaceID: &placeID, VoteType: voteType}, "place_id", placeID)
		if err != nil {
			return err
		}

		ups, downs, err := countVotes(tx, "place_id", placeID)
		if err != nil {
			return err
		}

		err = tx.Model(&Place{}).
			Where("id = ?", placeID).
			UpdateColumns(map[string]interface{}{"approval_votes": ups, "rejection_votes": downs}).Error
		if err != nil {
			return err
		}

		outcome = PlaceVoteOutcome{
			Action:         action,
			Approvals:      ups,
			Rejections:     downs,
			PlaceCreatorID: place.CreatedByID,
		}
		if action == ActionVoted {
			outcome.CurrentVote = voteType
		}

		return nil
	})
	if err != nil {
		return PlaceVoteOutcome{}, err
	}

	return outcome, nil
}

// VoteComment applies the toggle to the user's vote on the comment and stores ups minus downs.
func (d *InteractionDAO) VoteComment(ctx context.Context, userID, commentID uint, voteType string) (CommentVoteOutcome, error) {
	var outcome CommentVoteOutcome
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&Comment{}, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}

			return err
		}

		action, err := toggleVote(tx, Vote{UserID: userID, CommentID: &commentID, VoteType: voteType}, "comment_id", commentID)
		if err != nil {
			return err
		}

		ups, downs, err := countVotes(tx, "comment_id", commentID)
		if err != nil {
			return err
		}

		err = tx.Model(&Comment{}).Where("id = ?", commentID).UpdateColumn("votes", ups-downs).Error
		if err != nil {
			return err
		}

		outcome = CommentVoteOutcome{Action: action, Votes: ups - downs}
		if action == ActionVoted {
			outcome.CurrentVote = voteType
		}

		return nil
	})
	if err != nil {
		return CommentVoteOutcome{}, err
	}

	return outcome, nil
}

// toggleVote inserts first; an existing vote of the same type is removed, of the other type flipped.
func toggleVote(tx *gorm.DB, vote Vote, column string, targetID uint) (string, error) {
	created, err := insertOnce(tx, &vote)
	if err != nil {
		return "", err
	}
	if created {
		return ActionVoted, nil
	}

	var existing Vote
	if err = tx.Where("user_id = ? AND "+column+" = ?", vote.UserID, targetID).First(&existing).Error; err != nil {
		return "", err
	}

	if existing.VoteType == vote.VoteType {
		if err = tx.Delete(&existing).Error; err != nil {
			return "", err
		}

		return ActionRemoved, nil
	}

	if err = tx.Model(&existing).Update("vote_type", vote.VoteType).Error; err != nil {
		return "", err
	}

	return ActionVoted, nil
}

func countVotes(tx *gorm.DB, column string, targetID uint) (int, int, error) {
	var rows []struct {
		VoteType string
		Total    int
	}
	err := tx.Model(&Vote{}).
		Select("vote_type, COUNT(*) AS total").
		Where(column+" = ?", targetID).
		Group("vote_type").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	var ups, downs int
	for _, r := range rows {
		switch r.VoteType {
		case VoteUp:
			ups = r.Total
		case VoteDown:
			downs = r.Total
		}
	}

	return ups, downs, nil
}
