package mda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelShouldSkipAcquireEvery(t *testing.T) {
	ch := Channel{Config: "BF", AcquireEvery: 3}

	tests := []struct {
		timeStep int
		skip     bool
	}{
		{0, false},
		{1, true},
		{2, true},
		{3, false},
		{4, true},
		{6, false},
	}
	for _, tt := range tests {
		ctx := AxisIndex{}.With(AxisTime, tt.timeStep).With(AxisChannel, 0)
		skip, err := ch.ShouldSkip(ctx)
		require.NoError(t, err)
		assert.Equal(t, tt.skip, skip, "time step %d", tt.timeStep)
	}
}

func TestChannelAcquireEveryWithoutTimeAxis(t *testing.T) {
	ch := Channel{Config: "BF", AcquireEvery: 2}

	_, err := ch.ShouldSkip(AxisIndex{}.With(AxisChannel, 0))
	var domErr *DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, ErrCodeAxisNotInContext, domErr.Code)
}

func TestChannelSkipZStack(t *testing.T) {
	ch := Channel{Config: "BF", SkipZStack: true}

	skip, err := ch.ShouldSkip(AxisIndex{}.With(AxisZ, 0))
	require.NoError(t, err)
	assert.False(t, skip)

	skip, err = ch.ShouldSkip(AxisIndex{}.With(AxisZ, 1))
	require.NoError(t, err)
	assert.True(t, skip)

	// Without a z axis there is no stack to skip.
	skip, err = ch.ShouldSkip(AxisIndex{}.With(AxisTime, 0))
	require.NoError(t, err)
	assert.False(t, skip)
}

func TestChannelZeroValueNeverSkips(t *testing.T) {
	ch := Channel{Config: "DAPI"}

	for _, ctx := range []AxisIndex{
		{},
		AxisIndex{}.With(AxisTime, 5),
		AxisIndex{}.With(AxisZ, 3),
		AxisIndex{}.With(AxisTime, 1).With(AxisZ, 2),
	} {
		skip, err := ch.ShouldSkip(ctx)
		require.NoError(t, err)
		assert.False(t, skip)
	}
}
