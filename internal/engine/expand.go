package engine

import "github.com/mdakit/mdaseq/internal/mda"

// newChild constructs the recursive stream for a position's nested sequence.
//
// The child inherits three things from the parent at the splice point:
//   - the stage position as its base coordinates (unless the child defines
//     its own position axis, which then takes precedence);
//   - the parent's composed index entries from the outermost axis through
//     the position axis, as the prefix of every child event's index;
//   - the parent's running clock as the child's minimum-start-time base.
//
// The position's z-reference policy applies here: with AbsoluteZ set, the
// child's relative z plans are referenced to zero instead of the position's
// z coordinate.
func (s *Stream) newChild(pos *mda.StagePosition) (*Stream, error) {
	child, err := newStream(pos.Sequence)
	if err != nil {
		// Unreachable after validateTree, kept for defense in depth.
		return nil, err
	}

	local := s.localIndex()
	child.prefix = s.prefix.Concat(local[:s.pSlot+1], s.depth)
	child.depth = s.depth + 1

	base := *pos
	base.Sequence = nil
	if pos.AbsoluteZ {
		base.Z = 0
	}
	child.base = &base
	child.baseName = pos.Name

	child.clockBase = s.clockBase + s.clock
	child.hasClock = child.hasClock || s.hasClock

	return child, nil
}
