package mda

import "time"

// TimePlan describes the time-lapse axis.
//
// A time plan defines its length either as an explicit loop count (Loops > 0)
// or as a total-duration cutoff (Loops == 0, Duration > 0). In the latter
// case the plan is dynamic-length: the engine re-evaluates the stopping
// predicate after each time step instead of precomputing a count, and the
// time axis must be the outermost axis of the iteration.
type TimePlan struct {
	// Interval is the requested spacing between consecutive time points.
	Interval time.Duration

	// Loops is the explicit number of time points. Zero means the plan is
	// duration-driven.
	Loops int

	// Duration is the total-duration cutoff for duration-driven plans.
	// A time point at offset o is acquired while o <= Duration.
	Duration time.Duration
}

// IsDynamic reports whether the plan's length is driven by the duration
// cutoff rather than an explicit loop count.
func (p *TimePlan) IsDynamic() bool {
	return p.Loops <= 0
}

// NumSteps returns the plan's length and true for loop-counted plans, or
// (0, false) for duration-driven plans whose length is not known up front.
func (p *TimePlan) NumSteps() (int, bool) {
	if p.IsDynamic() {
		return 0, false
	}
	return p.Loops, true
}

// OffsetAt returns the timestamp offset of a time step from the start of the
// iteration. The domain is [0, Loops) for loop-counted plans and all
// non-negative steps for duration-driven plans.
func (p *TimePlan) OffsetAt(step int) (time.Duration, error) {
	if step < 0 {
		return 0, NewStepError(AxisTime, step, p.Loops)
	}
	if !p.IsDynamic() && step >= p.Loops {
		return 0, NewStepError(AxisTime, step, p.Loops)
	}
	return time.Duration(step) * p.Interval, nil
}

// ShouldContinue is the stopping predicate for duration-driven plans: it
// reports whether the time point at the given step is still inside the
// duration cutoff. Loop-counted plans report step < Loops.
func (p *TimePlan) ShouldContinue(step int) bool {
	if step < 0 {
		return false
	}
	if !p.IsDynamic() {
		return step < p.Loops
	}
	return time.Duration(step)*p.Interval <= p.Duration
}
