package engine

import "github.com/mdakit/mdaseq/internal/mda"

// generate produces the next surviving event, or (nil, false, nil) on
// exhaustion. fromChild reports that the event was spliced from a nested
// sequence rather than built by this stream.
func (s *Stream) generate() (ev *mda.MDAEvent, fromChild bool, err error) {
	for {
		// Drain the active child stream before advancing the odometer.
		if s.child != nil {
			if s.child.Next() {
				return s.child.Event(), true, nil
			}
			if err := s.child.Err(); err != nil {
				return nil, false, err
			}
			s.child = nil
		}

		if s.done {
			return nil, false, nil
		}

		if !s.started {
			s.started = true
			// A zero-length axis degenerates the whole sequence to zero
			// events; a duration-driven time plan may refuse even step 0.
			for _, n := range s.length {
				if n == 0 {
					s.done = true
					return nil, false, nil
				}
			}
			if s.tSlot >= 0 && !s.seq.TimePlan.ShouldContinue(0) {
				s.done = true
				return nil, false, nil
			}
		} else if !s.advance() {
			s.done = true
			return nil, false, nil
		}

		if err := s.advanceClock(); err != nil {
			return nil, false, err
		}

		skip, err := s.shouldSkip()
		if err != nil {
			return nil, false, err
		}
		if skip {
			// Skips are control flow, not failures: the odometer keeps
			// cascading and timing state is untouched.
			continue
		}

		if s.pSlot >= 0 {
			pos := &s.seq.StagePositions[s.idx[s.pSlot]]
			if pos.Sequence != nil {
				// The nested sequence replaces the position's finer
				// structure: axes nested inside p are held at step 0 and
				// every other combination at this position is discarded.
				if !s.innerAxesAtZero() {
					continue
				}
				child, err := s.newChild(pos)
				if err != nil {
					return nil, false, err
				}
				s.child = child
				continue
			}
		}

		built, err := s.buildEvent()
		if err != nil {
			return nil, false, err
		}
		return built, false, nil
	}
}

// advance steps the odometer: the innermost axis increments every call,
// wrapping to zero and carrying outward when it reaches its length. It
// returns false when the outermost axis wraps, i.e. the iteration is done.
//
// A dynamic-length axis (always outermost, enforced by validateTree) never
// wraps; its iteration ends when the stopping predicate fires.
func (s *Stream) advance() bool {
	for slot := len(s.idx) - 1; slot >= 0; slot-- {
		s.idx[slot]++
		if s.length[slot] < 0 {
			return s.seq.TimePlan.ShouldContinue(s.idx[slot])
		}
		if s.idx[slot] < s.length[slot] {
			return true
		}
		s.idx[slot] = 0
	}
	return false
}

// advanceClock moves the running clock forward when the time axis has
// advanced to a new step. Skipped combinations never reset the clock, and
// the max() keeps it monotone even if a time plan's offsets are not.
func (s *Stream) advanceClock() error {
	if s.tSlot < 0 {
		return nil
	}
	t := s.idx[s.tSlot]
	if t == s.clockedT {
		return nil
	}
	off, err := s.seq.TimePlan.OffsetAt(t)
	if err != nil {
		return err
	}
	if secs := off.Seconds(); secs > s.clock {
		s.clock = secs
	}
	s.clockedT = t
	return nil
}

// shouldSkip evaluates every active per-axis skip predicate against the
// full current index context. Any firing predicate discards the
// combination; predicates are independent, with no precedence.
func (s *Stream) shouldSkip() (bool, error) {
	if s.cSlot < 0 {
		return false, nil
	}
	ctx := s.localIndex()
	ch := s.seq.Channels[s.idx[s.cSlot]]
	return ch.ShouldSkip(ctx)
}

// localIndex snapshots the odometer as an AxisIndex in resolved order.
func (s *Stream) localIndex() mda.AxisIndex {
	ix := make(mda.AxisIndex, len(s.axes))
	for slot, a := range s.axes {
		ix[slot] = mda.IndexEntry{Axis: a, Step: s.idx[slot]}
	}
	return ix
}

// innerAxesAtZero reports whether every axis nested inside the position
// axis is at step 0.
func (s *Stream) innerAxesAtZero() bool {
	for slot := s.pSlot + 1; slot < len(s.idx); slot++ {
		if s.idx[slot] != 0 {
			return false
		}
	}
	return true
}
