// Package testutil provides deterministic sequence builders for tests.
package testutil

import (
	"time"

	"github.com/mdakit/mdaseq/internal/mda"
)

// SeqBuilder builds MDASequence values for tests with a fluent interface.
//
// The zero builder produces an empty sequence; each method adds one plan.
// Builders are not safe for concurrent use.
type SeqBuilder struct {
	seq mda.MDASequence
}

// NewSequence creates an empty sequence builder.
func NewSequence() *SeqBuilder {
	return &SeqBuilder{}
}

// AxisOrder sets an explicit axis order.
func (b *SeqBuilder) AxisOrder(axes ...mda.Axis) *SeqBuilder {
	b.seq.AxisOrder = axes
	return b
}

// Time adds a fixed-length time plan of loops steps at the given interval.
func (b *SeqBuilder) Time(interval time.Duration, loops int) *SeqBuilder {
	b.seq.TimePlan = &mda.TimePlan{Interval: interval, Loops: loops}
	return b
}

// DynamicTime adds a duration-bounded time plan whose step count is not
// known up front.
func (b *SeqBuilder) DynamicTime(interval, duration time.Duration) *SeqBuilder {
	b.seq.TimePlan = &mda.TimePlan{Interval: interval, Duration: duration}
	return b
}

// Position appends a named stage position.
func (b *SeqBuilder) Position(name string, x, y, z float64) *SeqBuilder {
	b.seq.StagePositions = append(b.seq.StagePositions, mda.StagePosition{
		Name: name, X: x, Y: y, Z: z,
	})
	return b
}

// PositionWith appends a fully specified stage position, for nested
// sub-sequences and absolute-z positions.
func (b *SeqBuilder) PositionWith(pos mda.StagePosition) *SeqBuilder {
	b.seq.StagePositions = append(b.seq.StagePositions, pos)
	return b
}

// Channel appends a channel with the given config name and exposure.
func (b *SeqBuilder) Channel(config string, exposure float64) *SeqBuilder {
	b.seq.Channels = append(b.seq.Channels, mda.Channel{
		Config: config, Exposure: exposure, AcquireEvery: 1,
	})
	return b
}

// ChannelWith appends a fully specified channel, for skip predicates and
// per-channel z offsets.
func (b *SeqBuilder) ChannelWith(ch mda.Channel) *SeqBuilder {
	if ch.AcquireEvery == 0 {
		ch.AcquireEvery = 1
	}
	b.seq.Channels = append(b.seq.Channels, ch)
	return b
}

// Grid adds a row-wise grid plan of rows x cols tiles.
func (b *SeqBuilder) Grid(rows, cols int) *SeqBuilder {
	b.seq.GridPlan = &mda.GridPlan{Rows: rows, Columns: cols, Mode: mda.OrderRowWise}
	return b
}

// GridWith adds a fully specified grid plan.
func (b *SeqBuilder) GridWith(g mda.GridPlan) *SeqBuilder {
	b.seq.GridPlan = &g
	return b
}

// ZRange adds a symmetric relative z plan spanning rng around the reference.
func (b *SeqBuilder) ZRange(rng, step float64) *SeqBuilder {
	b.seq.ZPlan = mda.ZRange{Range: rng, Step: step}
	return b
}

// ZRelative adds an explicit-offsets relative z plan.
func (b *SeqBuilder) ZRelative(offsets ...float64) *SeqBuilder {
	b.seq.ZPlan = mda.ZRelative{Offsets: offsets}
	return b
}

// ZAbsolute adds an absolute-positions z plan.
func (b *SeqBuilder) ZAbsolute(positions ...float64) *SeqBuilder {
	b.seq.ZPlan = mda.ZAbsolute{Positions: positions}
	return b
}

// Autofocus sets the axes whose change triggers an autofocus event.
func (b *SeqBuilder) Autofocus(axes ...mda.Axis) *SeqBuilder {
	b.seq.AutofocusAxes = axes
	return b
}

// KeepShutterOpen sets the axes across which the shutter stays open.
func (b *SeqBuilder) KeepShutterOpen(axes ...mda.Axis) *SeqBuilder {
	b.seq.KeepShutterOpenAcross = axes
	return b
}

// Build returns the assembled sequence.
func (b *SeqBuilder) Build() *mda.MDASequence {
	return &b.seq
}

// IndexKeys projects a stream onto its index keys, in order. Convenient for
// uniqueness and ordering assertions.
func IndexKeys(events []mda.MDAEvent) []string {
	keys := make([]string, len(events))
	for i := range events {
		keys[i] = events[i].Index.Key()
	}
	return keys
}
