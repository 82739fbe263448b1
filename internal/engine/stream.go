package engine

import "github.com/mdakit/mdaseq/internal/mda"

// Stream is a lazy pull iterator over the events of one sequence iteration.
//
// Usage follows the sql.Rows idiom:
//
//	st, err := engine.Iterate(seq)
//	if err != nil { ... }
//	for st.Next() {
//	    ev := st.Event()
//	    ...
//	}
//	if err := st.Err(); err != nil { ... }
//
// A Stream is single-use and not safe for concurrent use; obtain a fresh
// Stream per goroutine. Because sequences are immutable, any number of
// streams may iterate the same sequence concurrently.
type Stream struct {
	seq    *mda.MDASequence
	axes   []mda.Axis // resolved outer-to-inner order
	length []int      // per-slot axis length; -1 = dynamic
	tiles  []mda.GridTile

	// slot of each axis in axes, -1 when absent
	tSlot, pSlot, gSlot, cSlot, zSlot int

	// inherited context for spliced child streams
	base      *mda.StagePosition
	baseName  string
	prefix    mda.AxisIndex
	depth     int
	clockBase float64
	hasClock  bool // a time axis exists here or in an ancestor

	// odometer state, scoped to this one iteration run
	idx     []int
	started bool
	done    bool

	// running acquisition clock, seconds since iteration start
	clock     float64
	clockedT  int // time step the clock was last advanced for
	prevIndex mda.AxisIndex

	child *Stream

	cur           *mda.MDAEvent
	curFromChild  bool
	next          *mda.MDAEvent
	nextFromChild bool
	havePending   bool
	err           error
	pendingErr    error
}

// Iterate validates a sequence and returns a fresh Stream positioned before
// the first event.
//
// All configuration errors — axis ordering, dynamic-length axis placement,
// cyclic sub-sequence nesting (checked across the whole nested tree) — are
// reported here, before any event is produced. Re-invoking Iterate on the
// same sequence yields an identical stream.
func Iterate(seq *mda.MDASequence) (*Stream, error) {
	if err := validateTree(seq, make(map[*mda.MDASequence]bool), 0); err != nil {
		return nil, err
	}
	return newStream(seq)
}

// newStream builds the iteration state for one (already validated) sequence.
func newStream(seq *mda.MDASequence) (*Stream, error) {
	order, err := ResolveAxisOrder(seq.AxisOrder, seq.PresentAxes())
	if err != nil {
		return nil, err
	}

	s := &Stream{
		seq:      seq,
		axes:     order,
		length:   make([]int, len(order)),
		idx:      make([]int, len(order)),
		tSlot:    -1,
		pSlot:    -1,
		gSlot:    -1,
		cSlot:    -1,
		zSlot:    -1,
		clockedT: -1,
	}
	for slot, a := range order {
		n, known := seq.AxisLength(a)
		if !known {
			n = -1
		}
		s.length[slot] = n
		switch a {
		case mda.AxisTime:
			s.tSlot = slot
		case mda.AxisPosition:
			s.pSlot = slot
		case mda.AxisGrid:
			s.gSlot = slot
		case mda.AxisChannel:
			s.cSlot = slot
		case mda.AxisZ:
			s.zSlot = slot
		}
	}
	if seq.GridPlan != nil {
		s.tiles = seq.GridPlan.Tiles()
	}
	s.hasClock = s.tSlot >= 0
	return s, nil
}

// Next advances the stream to the next surviving event. It returns false
// when the stream is exhausted or a domain error aborted the iteration;
// check Err to distinguish.
func (s *Stream) Next() bool {
	if s.err != nil {
		return false
	}
	if s.pendingErr != nil {
		s.err = s.pendingErr
		s.cur = nil
		return false
	}

	if !s.havePending {
		// First pull: prime the one-event lookahead.
		ev, fromChild, err := s.generate()
		if err != nil {
			s.err = err
			return false
		}
		if ev == nil {
			return false
		}
		s.next, s.nextFromChild, s.havePending = ev, fromChild, true
	}
	if s.next == nil {
		s.cur = nil
		return false
	}

	s.cur, s.curFromChild = s.next, s.nextFromChild
	s.next, s.nextFromChild = nil, false

	la, laFromChild, err := s.generate()
	if err != nil {
		// The current event is still valid; surface the error on the
		// following pull. Partial output already pulled remains valid.
		s.pendingErr = err
	} else {
		s.next, s.nextFromChild = la, laFromChild
	}

	// keep_shutter_open spans: the shutter stays open when the next event
	// differs only in the allowed axes. Spliced child events computed their
	// own flag against the child's modifier set.
	if !s.curFromChild && len(s.seq.KeepShutterOpenAcross) > 0 && s.next != nil {
		s.cur.KeepShutterOpen = differsOnlyIn(s.cur.Index, s.next.Index, s.seq.KeepShutterOpenAcross)
	}
	return true
}

// Event returns the event produced by the last successful Next.
func (s *Stream) Event() *mda.MDAEvent { return s.cur }

// Err returns the error that terminated iteration, if any.
func (s *Stream) Err() error { return s.err }

// All drains a fresh iteration of seq into a slice. Convenience for callers
// that do not need lazy pulls.
func All(seq *mda.MDASequence) ([]mda.MDAEvent, error) {
	st, err := Iterate(seq)
	if err != nil {
		return nil, err
	}
	var out []mda.MDAEvent
	for st.Next() {
		out = append(out, *st.Event())
	}
	if err := st.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// differsOnlyIn reports whether two indices differ, and differ exclusively
// in the listed axes. Entries present in one index but not the other count
// as differing in that entry's axis.
func differsOnlyIn(a, b mda.AxisIndex, allowed []mda.Axis) bool {
	allowedSet := make(map[mda.Axis]bool, len(allowed))
	for _, ax := range allowed {
		allowedSet[ax] = true
	}
	changed := false
	for _, e := range a {
		step, ok := b.Get(e.Axis)
		if ok && step == e.Step {
			continue
		}
		if !allowedSet[e.Axis] {
			return false
		}
		changed = true
	}
	for _, e := range b {
		if !a.Has(e.Axis) {
			if !allowedSet[e.Axis] {
				return false
			}
			changed = true
		}
	}
	return changed
}
