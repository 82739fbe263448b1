package mda

// Channel describes one entry of the channel axis: a named hardware
// configuration plus per-channel acquisition settings.
//
// The zero value of every modifier field means "no modification": acquire on
// every time point, participate in the full z-stack, no z offset.
type Channel struct {
	// Config is the channel configuration name (e.g. "DAPI").
	Config string

	// Group is the configuration group the channel belongs to.
	Group string

	// Exposure is the exposure time in milliseconds. Zero means the
	// acquisition engine's current exposure is kept.
	Exposure float64

	// AcquireEvery acquires this channel only every Nth time point.
	// Values below 2 mean every time point.
	AcquireEvery int

	// SkipZStack restricts this channel to the first z step, skipping the
	// rest of the stack.
	SkipZStack bool

	// ZOffset is added to the resolved z position of every event for this
	// channel.
	ZOffset float64
}

// ShouldSkip evaluates the channel's cross-axis skip rules against the
// current iteration context and reports whether the combination is discarded.
//
// AcquireEvery consults the time axis: a channel sampled sparsely requires a
// time axis in context, so AcquireEvery > 1 without one is a DomainError.
// SkipZStack consults the z axis; without a z axis there is no stack to
// skip and the rule is inert.
func (c Channel) ShouldSkip(ctx AxisIndex) (bool, error) {
	if c.AcquireEvery > 1 {
		t, ok := ctx.Get(AxisTime)
		if !ok {
			return false, NewContextError(AxisChannel, AxisTime)
		}
		if t%c.AcquireEvery != 0 {
			return true, nil
		}
	}
	if c.SkipZStack {
		if z, ok := ctx.Get(AxisZ); ok && z != 0 {
			return true, nil
		}
	}
	return false, nil
}
