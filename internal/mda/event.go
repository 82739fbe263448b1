package mda

// EventChannel is the resolved channel descriptor carried on an event.
type EventChannel struct {
	Config string `json:"config"`
	Group  string `json:"group,omitempty"`
}

// MDAEvent is the engine's output unit: one fully resolved, orderable unit
// of acquisition work. Events are independent values with no back-reference
// to the sequence that produced them.
//
// Invariants across one top-level iteration:
//   - Index is unique (composed nested indices included).
//   - MinStartTime is monotonically non-decreasing in emission order
//     whenever a time axis is present.
type MDAEvent struct {
	// Index maps axis tag to step, insertion order = outer-to-inner
	// nesting order.
	Index AxisIndex `json:"index"`

	// Channel is the resolved channel descriptor, if a channel axis is
	// active.
	Channel *EventChannel `json:"channel,omitempty"`

	// Exposure is the exposure time in milliseconds, zero when unset.
	Exposure float64 `json:"exposure,omitempty"`

	// X, Y and Z are the resolved absolute stage coordinates. Nil when no
	// axis of the iteration determines the dimension.
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	Z *float64 `json:"z,omitempty"`

	// MinStartTime is the event's minimum start time in seconds from the
	// start of the iteration. Nil when the iteration has no time axis.
	MinStartTime *float64 `json:"min_start_time,omitempty"`

	// PosName names the stage position or grid tile the event belongs to.
	PosName string `json:"pos_name,omitempty"`

	// Row and Col locate the grid tile, when a grid axis is active.
	Row *int `json:"row,omitempty"`
	Col *int `json:"col,omitempty"`

	// Autofocus requests an autofocus pass before this event.
	Autofocus bool `json:"autofocus,omitempty"`

	// KeepShutterOpen tells the hardware to leave the shutter open after
	// this event because the next event continues the same span.
	KeepShutterOpen bool `json:"keep_shutter_open,omitempty"`
}

// Float returns a pointer to v, for populating optional event coordinates.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for populating optional event fields.
func Int(v int) *int { return &v }
