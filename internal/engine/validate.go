package engine

import "github.com/mdakit/mdaseq/internal/mda"

// validateTree walks a sequence and every nested sequence reachable from its
// stage positions, resolving each one's axis order and checking the
// dynamic-length placement rule, so that iteration can never fail on
// configuration once a Stream is handed out.
//
// Cyclic nesting is detected with an on-path identity set: a sequence that
// appears on its own recursion path, directly or transitively, is a
// ConfigError. The set tracks the active path only, so sharing one nested
// sequence between two sibling positions stays legal.
func validateTree(seq *mda.MDASequence, path map[*mda.MDASequence]bool, depth int) error {
	if path[seq] {
		return newCycleError(depth)
	}
	path[seq] = true
	defer delete(path, seq)

	order, err := ResolveAxisOrder(seq.AxisOrder, seq.PresentAxes())
	if err != nil {
		return err
	}

	// Only the time axis can be dynamic-length, and only in the outermost
	// slot: a dynamic axis nested inside a faster-varying axis has no
	// well-defined wrap point.
	if seq.TimePlan != nil && seq.TimePlan.IsDynamic() {
		for slot, a := range order {
			if a == mda.AxisTime && slot != 0 {
				return newAxisError(ErrCodeDynamicNotOutermost, mda.AxisTime,
					"duration-driven time plan must be the outermost axis, got slot %d", slot)
			}
		}
	}

	for i := range seq.StagePositions {
		if nested := seq.StagePositions[i].Sequence; nested != nil {
			if err := validateTree(nested, path, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
