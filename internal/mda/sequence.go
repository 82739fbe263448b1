package mda

// MDASequence is the immutable declarative description of one acquisition
// experiment: zero or one plan per axis, the requested iteration order, and
// optional global modifiers.
//
// A sequence owns its plans by value. Once constructed it must not be
// mutated; the engine holds only transient iteration cursors, so any number
// of concurrent iterations may share one sequence without synchronization.
type MDASequence struct {
	// AxisOrder is the requested outer-to-inner iteration order. Axes named
	// here but not present in the sequence are dropped; a duplicate or
	// unknown tag, or a present axis omitted from a non-empty order, is a
	// configuration error. An empty order means the default "tpgcz".
	AxisOrder []Axis

	// TimePlan is the time-lapse axis, if any.
	TimePlan *TimePlan

	// StagePositions is the stage-position axis, if any.
	StagePositions []StagePosition

	// GridPlan is the grid-tile axis, if any.
	GridPlan *GridPlan

	// Channels is the channel axis, if any.
	Channels []Channel

	// ZPlan is the z-stack axis, if any.
	ZPlan ZPlan

	// AutofocusAxes requests an autofocus pass before any event at which one
	// of the listed axes has advanced since the previously emitted event.
	AutofocusAxes []Axis

	// KeepShutterOpenAcross marks events whose successor differs only in the
	// listed axes with keep_shutter_open, letting the hardware leave the
	// shutter open across the span.
	KeepShutterOpenAcross []Axis
}

// Has reports whether the sequence defines a plan for the axis.
func (s *MDASequence) Has(a Axis) bool {
	switch a {
	case AxisTime:
		return s.TimePlan != nil
	case AxisPosition:
		return len(s.StagePositions) > 0
	case AxisGrid:
		return s.GridPlan != nil
	case AxisChannel:
		return len(s.Channels) > 0
	case AxisZ:
		return s.ZPlan != nil
	}
	return false
}

// PresentAxes returns the axes the sequence defines, in default order.
func (s *MDASequence) PresentAxes() []Axis {
	var present []Axis
	for _, a := range KnownAxes {
		if s.Has(a) {
			present = append(present, a)
		}
	}
	return present
}

// AxisLength returns the length of an axis and whether that length is known
// up front. Only a duration-driven time plan reports an unknown length; its
// iteration is bounded by the plan's stopping predicate instead.
//
// Axes the sequence does not define report (0, true): a zero-length axis
// degenerates the whole sequence to zero events.
func (s *MDASequence) AxisLength(a Axis) (int, bool) {
	switch a {
	case AxisTime:
		if s.TimePlan == nil {
			return 0, true
		}
		return s.TimePlan.NumSteps()
	case AxisPosition:
		return len(s.StagePositions), true
	case AxisGrid:
		if s.GridPlan == nil {
			return 0, true
		}
		return s.GridPlan.NumTiles(), true
	case AxisChannel:
		return len(s.Channels), true
	case AxisZ:
		if s.ZPlan == nil {
			return 0, true
		}
		return s.ZPlan.NumSteps(), true
	}
	return 0, true
}
