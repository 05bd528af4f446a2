package response

import (
	"github.com/ghostpin/ghostpin-api/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type FavoriteResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
}

type VoteResponse struct {
	Success bool `json:"success"`
	domain.VoteResult
}

type CommentVoteResponse struct {
	Success bool `json:"success"`
	domain.CommentVoteResult
}

// CheckInResponse reports Created=false when the user had already checked in; CheckIn is then
// the earlier record.
type CheckInResponse struct {
	Success bool           `json:"success"`
	Created bool           `json:"created"`
	Message string         `json:"message"`
	CheckIn domain.CheckIn `json:"check_in"`
}

type StatusResponse struct {
	Success bool         `json:"success"`
	Place   domain.Place `json:"place"`
}

type NearbyResponse struct {
	Places []domain.NearbyPlace `json:"places"`
	Count  int                  `json:"count"`
}

type CountResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}

type UnreadResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type AwardBadgeResponse struct {
	Success bool `json:"success"`
	Awarded bool `json:"awarded"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
