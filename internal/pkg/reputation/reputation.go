// Package reputation defines how points translate into levels and how many points each action earns.
package reputation

const (
	MinLevel = 1
	MaxLevel = 5

	DefaultPlaceSubmittedPoints = 20
	DefaultCommentPoints        = 5
	DefaultCheckInPoints        = 10
	DefaultPlaceApprovedPoints  = 50
)

// levelThresholds is ordered from the highest level down.
var levelThresholds = []struct {
	minPoints int
	level     int
}{
	{1000, 5},
	{500, 4},
	{200, 3},
	{50, 2},
}

// LevelFor derives a profile level from cumulative points.
func LevelFor(points int) int {
	for _, t := range levelThresholds {
		if points >= t.minPoints {
			return t.level
		}
	}

	return MinLevel
}

// NextLevelAt returns the points needed for the next level, or 0 at the top level.
func NextLevelAt(points int) int {
	next := 0
	for _, t := range levelThresholds {
		if points < t.minPoints {
			next = t.minPoints
		}
	}

	return next
}

// Awards is the number of points granted per action.
type Awards struct {
	PlaceSubmitted int `mapstructure:"place_submitted"`
	Comment        int `mapstructure:"comment"`
	CheckIn        int `mapstructure:"check_in"`
	PlaceApproved  int `mapstructure:"place_approved"`
}

func DefaultAwards() Awards {
	return Awards{
		PlaceSubmitted: DefaultPlaceSubmittedPoints,
		Comment:        DefaultCommentPoints,
		CheckIn:        DefaultCheckInPoints,
		PlaceApproved:  DefaultPlaceApprovedPoints,
	}
}
