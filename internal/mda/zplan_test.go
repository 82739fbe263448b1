package mda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collect drains a plan's steps in order.
func collect(t *testing.T, p ZPlan) []float64 {
	t.Helper()
	out := make([]float64, p.NumSteps())
	for i := range out {
		v, err := p.StepAt(i)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func TestZRangeSteps(t *testing.T) {
	p := ZRange{Range: 4, Step: 0.5}
	require.Equal(t, 9, p.NumSteps())

	got := collect(t, p)
	assert.Equal(t, []float64{-2, -1.5, -1, -0.5, 0, 0.5, 1, 1.5, 2}, got)
	assert.True(t, p.IsRelative())
}

func TestZRangeTopDown(t *testing.T) {
	p := ZRange{Range: 2, Step: 1, TopDown: true}
	assert.Equal(t, []float64{1, 0, -1}, collect(t, p))
}

func TestZRangeSingleStep(t *testing.T) {
	// Zero range and zero step both degenerate to a single plane.
	assert.Equal(t, 1, ZRange{Range: 0, Step: 1}.NumSteps())
	assert.Equal(t, 1, ZRange{Range: 5, Step: 0}.NumSteps())
}

func TestZTopBottomSteps(t *testing.T) {
	p := ZTopBottom{Top: 32, Bottom: 28, Step: 2}
	require.Equal(t, 3, p.NumSteps())
	assert.Equal(t, []float64{28, 30, 32}, collect(t, p))
	assert.False(t, p.IsRelative())

	// Swapped bounds traverse the same coordinates.
	swapped := ZTopBottom{Top: 28, Bottom: 32, Step: 2}
	assert.Equal(t, []float64{28, 30, 32}, collect(t, swapped))
}

func TestZTopBottomTopDown(t *testing.T) {
	p := ZTopBottom{Top: 3, Bottom: 1, Step: 1, TopDown: true}
	assert.Equal(t, []float64{3, 2, 1}, collect(t, p))
}

func TestZRelativeSteps(t *testing.T) {
	p := ZRelative{Offsets: []float64{-1, 0, 2.5}}
	assert.Equal(t, []float64{-1, 0, 2.5}, collect(t, p))
	assert.True(t, p.IsRelative())
}

func TestZAbsoluteSteps(t *testing.T) {
	p := ZAbsolute{Positions: []float64{10, 20}}
	assert.Equal(t, []float64{10, 20}, collect(t, p))
	assert.False(t, p.IsRelative())
}

func TestZPlanStepOutOfRange(t *testing.T) {
	plans := []ZPlan{
		ZRange{Range: 2, Step: 1},
		ZTopBottom{Top: 2, Bottom: 0, Step: 1},
		ZRelative{Offsets: []float64{0}},
		ZAbsolute{Positions: []float64{0}},
	}
	for _, p := range plans {
		_, err := p.StepAt(-1)
		require.Error(t, err)
		_, err = p.StepAt(p.NumSteps())
		require.Error(t, err)

		var domErr *DomainError
		require.ErrorAs(t, err, &domErr)
		assert.Equal(t, ErrCodeStepOutOfRange, domErr.Code)
		assert.Equal(t, AxisZ, domErr.Axis)
	}
}

func TestStepCountFloatTolerance(t *testing.T) {
	// 0.3/0.1 is not exactly 3 in floats; the count must still include the
	// far endpoint.
	assert.Equal(t, 4, stepCount(0.3, 0.1))
	assert.Equal(t, 9, stepCount(4, 0.5))
}
