package service

import (
	"testing"

	"code_tutor_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestDetectLevelBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		messages int
		concepts int
		want     model.ProficiencyTier
	}{
		{"few messages stay beginner", 4, 30, model.TierBeginner},
		{"few concepts stay beginner", 30, 4, model.TierBeginner},
		{"first intermediate point", 5, 5, model.TierIntermediate},
		{"first advanced point", 15, 15, model.TierAdvanced},
		{"first expert point", 30, 25, model.TierExpert},
		{"zero input", 0, 0, model.TierBeginner},
		{"large input", 1000, 1000, model.TierExpert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLevel(tt.messages, tt.concepts))
		})
	}
}

func TestDetectLevelNegativeInputTreatedAsZero(t *testing.T) {
	assert.Equal(t, model.TierBeginner, DetectLevel(-3, -7))
	assert.Equal(t, DetectLevel(0, 10), DetectLevel(-3, 10))
	assert.Equal(t, DetectLevel(10, 0), DetectLevel(10, -1))
}

// 任一输入增大，输出水平不应下降
func TestDetectLevelMonotonic(t *testing.T) {
	const limit = 40
	for m := 0; m < limit; m++ {
		for c := 0; c < limit; c++ {
			cur := DetectLevel(m, c).Rank()
			assert.GreaterOrEqual(t, DetectLevel(m+1, c).Rank(), cur,
				"messages %d->%d at concepts %d", m, m+1, c)
			assert.GreaterOrEqual(t, DetectLevel(m, c+1).Rank(), cur,
				"concepts %d->%d at messages %d", c, c+1, m)
		}
	}
}
