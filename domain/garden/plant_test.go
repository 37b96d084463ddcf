package garden

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageForCount(t *testing.T) {
	tests := []struct {
		count int
		stage int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 2},
		{5, 3},
		{9, 3},
		{10, 4},
		{11, 4},
		{100, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.stage, StageForCount(tt.count), "count=%d", tt.count)
	}
}

func TestStageForCount_NeverLeavesBounds(t *testing.T) {
	for count := -5; count <= 50; count++ {
		stage := StageForCount(count)
		assert.GreaterOrEqual(t, stage, MinStage)
		assert.LessOrEqual(t, stage, MaxStage)
	}
}

func TestStageForCount_Monotonic(t *testing.T) {
	prev := StageForCount(0)
	for count := 1; count <= 50; count++ {
		stage := StageForCount(count)
		assert.GreaterOrEqual(t, stage, prev, "count=%d", count)
		prev = stage
	}
}
