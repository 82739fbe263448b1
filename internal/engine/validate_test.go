package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdakit/mdaseq/internal/mda"
	"github.com/mdakit/mdaseq/internal/testutil"
)

func TestIterateRejectsSelfCycle(t *testing.T) {
	seq := testutil.NewSequence().
		Position("loop", 0, 0, 0).
		Build()
	seq.StagePositions[0].Sequence = seq

	_, err := Iterate(seq)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeCyclicSubsequence, cfgErr.Code)
}

func TestIterateRejectsTransitiveCycle(t *testing.T) {
	a := testutil.NewSequence().Position("a", 0, 0, 0).Build()
	b := testutil.NewSequence().Position("b", 0, 0, 0).Build()
	a.StagePositions[0].Sequence = b
	b.StagePositions[0].Sequence = a

	_, err := Iterate(a)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeCyclicSubsequence, cfgErr.Code)
}

func TestIterateRejectsDynamicTimeNotOutermost(t *testing.T) {
	seq := testutil.NewSequence().
		AxisOrder(mda.AxisChannel, mda.AxisTime).
		DynamicTime(time.Second, 10*time.Second).
		Channel("BF", 5).
		Build()

	_, err := Iterate(seq)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeDynamicNotOutermost, cfgErr.Code)
}

func TestIterateValidatesNestedSequences(t *testing.T) {
	// The nested sequence's configuration error surfaces at Iterate, before
	// any event is produced.
	child := testutil.NewSequence().
		AxisOrder(mda.AxisTime, "q").
		Time(time.Second, 2).
		Build()

	seq := testutil.NewSequence().
		PositionWith(mda.StagePosition{Name: "bad", Sequence: child}).
		Build()

	_, err := Iterate(seq)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeUnknownAxis, cfgErr.Code)
}

func TestIterateAcceptsDynamicTimeDefaultOrder(t *testing.T) {
	seq := testutil.NewSequence().
		DynamicTime(time.Second, time.Second).
		Channel("BF", 5).
		Build()

	_, err := Iterate(seq)
	require.NoError(t, err)
}
