package engine

import "github.com/mdakit/mdaseq/internal/mda"

// ResolveAxisOrder computes the concrete outer-to-inner nesting order for a
// sequence from the requested axis order and the set of present axes.
//
// Requested axes that are absent from the sequence are dropped silently: a
// request of "tpcz" against a sequence with no position plan resolves to
// "tcz". A tag that is not a known axis, a tag appearing twice, or a present
// axis omitted from a non-empty request is a ConfigError.
//
// An empty request resolves to the default order "tpgcz" restricted to the
// present axes.
func ResolveAxisOrder(requested []mda.Axis, present []mda.Axis) ([]mda.Axis, error) {
	presentSet := make(map[mda.Axis]bool, len(present))
	for _, a := range present {
		presentSet[a] = true
	}

	if len(requested) == 0 {
		requested = mda.KnownAxes
	} else {
		seen := make(map[mda.Axis]bool, len(requested))
		for _, a := range requested {
			if !a.IsKnown() {
				return nil, newAxisError(ErrCodeUnknownAxis, a, "unknown axis tag %q in axis order", a)
			}
			if seen[a] {
				return nil, newAxisError(ErrCodeDuplicateAxis, a, "axis %q appears more than once in axis order", a)
			}
			seen[a] = true
		}
		for _, a := range present {
			if !seen[a] {
				return nil, newAxisError(ErrCodeMissingAxis, a, "axis %q is present in the sequence but missing from axis order", a)
			}
		}
	}

	var resolved []mda.Axis
	for _, a := range requested {
		if presentSet[a] {
			resolved = append(resolved, a)
		}
	}
	return resolved, nil
}
