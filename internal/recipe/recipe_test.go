package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilledStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   int
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{2.5, 3},
		{3.6, 4},
		{4.49, 4},
		{5, 5},
		{7.2, 5},
		{-1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FilledStars(tt.rating), "rating %v", tt.rating)
	}
}

func TestStars(t *testing.T) {
	assert.Equal(t, [MaxStars]bool{true, true, true, true, false}, Stars(3.6))
	assert.Equal(t, [MaxStars]bool{}, Stars(0))
}

func TestAverageRating(t *testing.T) {
	assert.Zero(t, AverageRating(nil))
	assert.InDelta(t, 4.5, AverageRating([]Review{{Rating: 4}, {Rating: 5}}), 1e-9)
}
