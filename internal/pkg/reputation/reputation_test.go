package reputation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		points int
		want   int
	}{
		{0, 1},
		{49, 1},
		{50, 2},
		{199, 2},
		{200, 3},
		{499, 3},
		{500, 4},
		{999, 4},
		{1000, 5},
		{250000, 5},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, LevelFor(tt.points), "points=%d", tt.points)
	}
}

func TestNextLevelAt(t *testing.T) {
	assert.Equal(t, 50, NextLevelAt(0))
	assert.Equal(t, 200, NextLevelAt(50))
	assert.Equal(t, 500, NextLevelAt(499))
	assert.Equal(t, 1000, NextLevelAt(500))
	assert.Equal(t, 0, NextLevelAt(1000))
}

func TestDefaultAwards(t *testing.T) {
	a := DefaultAwards()

	assert.Equal(t, 20, a.PlaceSubmitted)
	assert.Equal(t, 5, a.Comment)
	assert.Equal(t, 10, a.CheckIn)
	assert.Equal(t, 50, a.PlaceApproved)
}
