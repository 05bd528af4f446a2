package domain

import (
	"fmt"
	"strings"
	"time"
)

type NotificationType string

const (
	NotificationPlaceApproved NotificationType = "place_approved"
	NotificationPlaceRejected NotificationType = "place_rejected"
	NotificationCommentReply  NotificationType = "comment_reply"
	NotificationNearbyPlace   NotificationType = "nearby_place"
	NotificationChallenge     NotificationType = "challenge"
	NotificationBadgeEarned   NotificationType = "badge_earned"
	NotificationWelcome       NotificationType = "welcome"
)

type Notification struct {
	ID                  uint             `json:"id"`
	UserID              uint             `json:"user_id"`
	Title               string           `json:"title"`
	Message             string           `json:"message"`
	Type                NotificationType `json:"notification_type"`
	IsRead              bool             `json:"is_read"`
	RelatedPlaceID      *uint            `json:"related_place_id,omitempty"`
	RelatedCollectionID *uint            `json:"related_collection_id,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
}

// ModerationNotification is the message sent to a place's creator once staff decide on it.
func ModerationNotification(place Place, status PlaceStatus) Notification {
	placeID := place.ID
	word := string(status)

	return Notification{
		UserID:         place.CreatedByID,
		Title:          "Place " + strings.ToUpper(word[:1]) + word[1:],
		Message:        fmt.Sprintf("Your place %q has been %s.", place.Name, word),
		Type:           NotificationType("place_" + word),
		RelatedPlaceID: &placeID,
	}
}

func NearbyNotification(userID uint, found int) Notification {
	return Notification{
		UserID:  userID,
		Title:   "Places nearby",
		Message: fmt.Sprintf("There are %d places to explore near you.", found),
		Type:    NotificationNearbyPlace,
	}
}

func ReplyNotification(parent Comment, replier User) Notification {
	placeID := parent.PlaceID

	return Notification{
		UserID:         parent.UserID,
		Title:          "New reply",
		Message:        fmt.Sprintf("%s replied to your comment.", replier.Username),
		Type:           NotificationCommentReply,
		RelatedPlaceID: &placeID,
	}
}

func BadgeNotification(userID uint, badge Badge) Notification {
	return Notification{
		UserID:  userID,
		Title:   "Badge earned",
		Message: fmt.Sprintf("You earned the %s badge!", badge.Name),
		Type:    NotificationBadgeEarned,
	}
}

// WelcomeNotification greets a user on their first login.
func WelcomeNotification(userID uint) Notification {
	return Notification{
		UserID:  userID,
		Title:   "Welcome Back!",
		Message: "We're glad to see you again. Ready to explore new places?",
		Type:    NotificationWelcome,
	}
}
