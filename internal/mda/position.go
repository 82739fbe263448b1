package mda

// StagePosition is one entry of the stage-position axis: a coordinate triple,
// an optional display name, and an optional nested sequence acquired at the
// position instead of a single event.
type StagePosition struct {
	// X, Y and Z are the stage coordinates of the position.
	X, Y, Z float64

	// Name is an optional display name carried through to events.
	Name string

	// Sequence, when set, is a full nested acquisition acquired at this
	// position. The engine splices its events into the parent stream in
	// place of a single event for the position.
	Sequence *MDASequence

	// AbsoluteZ changes the local z-reference policy for the nested
	// sequence: relative z plans inside the nested sequence are referenced
	// to zero instead of this position's z.
	AbsoluteZ bool
}
