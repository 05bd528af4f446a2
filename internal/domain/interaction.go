package domain

import "time"

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

const (
	VoteActionVoted   = "voted"
	VoteActionRemoved = "removed"

	FavoriteActionFavorited   = "favorited"
	FavoriteActionUnfavorited = "unfavorited"
)

type VoteResult struct {
	Action         string   `json:"action"`
	VoteType       VoteType `json:"vote_type,omitempty"`
	ApprovalVotes  int      `json:"approval_votes"`
	RejectionVotes int      `json:"rejection_votes"`
}

type CommentVoteResult struct {
	Action   string   `json:"action"`
	VoteType VoteType `json:"vote_type,omitempty"`
	Votes    int      `json:"votes"`
}

type Favorite struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Place     Place     `json:"place"`
	CreatedAt time.Time `json:"created_at"`
}
