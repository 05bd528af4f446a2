package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionDAO_ToggleFavorite(t *testing.T) {
	db := newTestDB(t)
	d := NewInteractionDAO(db)
	ctx := context.Background()
	user := seedUser(t, db, "ada")
	place := seedPlace(t, db, user.ID, StatusApproved, 48.85, 2.35)

	action, err := d.ToggleFavorite(ctx, user.ID, place.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionFavorited, action)

	isFav, err := d.IsFavorite(ctx, user.ID, place.ID)
	require.NoError(t, err)
	assert.True(t, isFav)

	favorites, err := d.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, place.Name, favorites[0].Place.Name)

	action, err = d.ToggleFavorite(ctx, user.ID, place.ID)
	require.NoError(t, err)
	assert.Equal(t, ActionUnfavorited, action)

	isFav, err = d.IsFavorite(ctx, user.ID, place.ID)
	require.NoError(t, err)
	assert.False(t, isFav)
}

func TestInteractionDAO_ToggleFavoriteMissingPlace(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ada")

	_, err := NewInteractionDAO(db).ToggleFavorite(context.Background(), user.ID, 404)
	assert.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestInteractionDAO_VotePlace(t *testing.T) {
	db := newTestDB(t)
	d := NewInteractionDAO(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner")
	voter := seedUser(t, db, "voter")
	other := seedUser(t, db, "other")
	place := seedPlace(t, db, owner.ID, StatusPending, 0, 0)

	steps := []struct {
		name           string
		userID         uint
		voteType       string
		wantAction     string
		wantApprovals  int
		wantRejections int
	}{
		{name: "first up", userID: voter.ID, voteType: VoteUp, wantAction: ActionVoted, wantApprovals: 1},
		{name: "other down", userID: other.ID, voteType: VoteDown, wantAction: ActionVoted, wantApprovals: 1, wantRejections: 1},
		{name: "flip to down", userID: voter.ID, voteType: VoteDown, wantAction: ActionVoted, wantRejections: 2},
		{name: "same again removes", userID: voter.ID, voteType: VoteDown, wantAction: ActionRemoved, wantRejections: 1},
		{name: "vote again after removal", userID: voter.ID, voteType: VoteUp, wantAction: ActionVoted, wantApprovals: 1, wantRejections: 1},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			outcome, err := d.VotePlace(ctx, step.userID, place.ID, step.voteType)
			require.NoError(t, err)
			assert.Equal(t, step.wantAction, outcome.Action)
			assert.Equal(t, step.wantApprovals, outcome.Approvals)
			assert.Equal(t, step.wantRejections, outcome.Rejections)
			assert.Equal(t, owner.ID, outcome.PlaceCreatorID)

			var stored Place
			require.NoError(t, db.First(&stored, place.ID).Error)
			assert.Equal(t, step.wantApprovals, stored.ApprovalVotes)
			assert.Equal(t, step.wantRejections, stored.RejectionVotes)
		})
	}

	var votes int64
	require.NoError(t, db.Model(&Vote{}).Where("place_id = ?", place.ID).Count(&votes).Error)
	assert.Equal(t, int64(2), votes)
}

func TestInteractionDAO_VoteComment(t *testing.T) {
	db := newTestDB(t)
	d := NewInteractionDAO(db)
	ctx := context.Background()
	author := seedUser(t, db, "author")
	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	place := seedPlace(t, db, author.ID, StatusApproved, 0, 0)

	comment, err := NewCommentDAO(db).Insert(ctx, Comment{UserID: author.ID, PlaceID: place.ID, Text: "boo"}, 0, nil)
	require.NoError(t, err)

	outcome, err := d.VoteComment(ctx, a.ID, comment.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, ActionVoted, outcome.Action)
	assert.Equal(t, 1, outcome.Votes)

	outcome, err = d.VoteComment(ctx, b.ID, comment.ID, VoteDown)
	require.NoError(t, err)
	assert.Equal(t, 0, outcome.Votes)

	outcome, err = d.VoteComment(ctx, b.ID, comment.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, ActionVoted, outcome.Action)
	assert.Equal(t, VoteUp, outcome.CurrentVote)
	assert.Equal(t, 2, outcome.Votes)

	outcome, err = d.VoteComment(ctx, a.ID, comment.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, ActionRemoved, outcome.Action)
	assert.Empty(t, outcome.CurrentVote)
	assert.Equal(t, 1, outcome.Votes)

	stored, err := NewCommentDAO(db).FindByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Votes)
}

func TestInteractionDAO_VotesOnPlaceAndCommentDoNotCollide(t *testing.T) {
	db := newTestDB(t)
	d := NewInteractionDAO(db)
	ctx := context.Background()
	user := seedUser(t, db, "ada")
	place := seedPlace(t, db, user.ID, StatusApproved, 0, 0)
	comment, err := NewCommentDAO(db).Insert(ctx, Comment{UserID: user.ID, PlaceID: place.ID, Text: "hi"}, 0, nil)
	require.NoError(t, err)

	placeOutcome, err := d.VotePlace(ctx, user.ID, place.ID, VoteUp)
	require.NoError(t, err)
	commentOutcome, err := d.VoteComment(ctx, user.ID, comment.ID, VoteUp)
	require.NoError(t, err)

	assert.Equal(t, ActionVoted, placeOutcome.Action)
	assert.Equal(t, ActionVoted, commentOutcome.Action)
}

func TestVoteNeedsExactlyOneTarget(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "ada")
	placeID, commentID := uint(1), uint(2)

	assert.True(t, db.Migrator().HasConstraint(&Vote{}, "chk_votes_single_target"))

	assert.Error(t, db.Create(&Vote{UserID: user.ID, VoteType: VoteUp}).Error)
	assert.Error(t, db.Create(&Vote{UserID: user.ID, PlaceID: &placeID, CommentID: &commentID, VoteType: VoteUp}).Error)

	require.NoError(t, db.Create(&Vote{UserID: user.ID, PlaceID: &placeID, VoteType: VoteUp}).Error)
	require.NoError(t, db.Create(&Vote{UserID: user.ID, CommentID: &commentID, VoteType: VoteDown}).Error)
}
