package domain

import "time"

type Comment struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	PlaceID   uint      `json:"place_id"`
	CheckInID *uint     `json:"check_in_id,omitempty"`
	ParentID  *uint     `json:"parent_id,omitempty"`
	Text      string    `json:"text"`
	Votes     int       `json:"votes"`
	Rating    *int      `json:"rating,omitempty"`
	Replies   []Comment `json:"replies,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Thread attaches each comment to its parent and returns the roots.
// Comments whose parent is missing from the slice are treated as roots.
func Thread(comments []Comment) []Comment {
	byParent := make(map[uint][]Comment)
	known := make(map[uint]bool, len(comments))
	for _, c := range comments {
		known[c.ID] = true
	}

	var roots []Comment
	for _, c := range comments {
		if c.ParentID != nil && known[*c.ParentID] && *c.ParentID != c.ID {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
			continue
		}
		roots = append(roots, c)
	}

	visited := make(map[uint]bool, len(comments))
	var attach func(c Comment) Comment
	attach = func(c Comment) Comment {
		visited[c.ID] = true
		for _, child := range byParent[c.ID] {
			if visited[child.ID] {
				continue
			}
			c.Replies = append(c.Replies, attach(child))
		}
		return c
	}

	threaded := make([]Comment, 0, len(roots))
	for _, r := range roots {
		threaded = append(threaded, attach(r))
	}

	return threaded
}
