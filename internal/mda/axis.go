package mda

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Axis identifies one independent dimension of variation in an experiment.
type Axis string

const (
	// AxisTime is the time-lapse axis.
	AxisTime Axis = "t"

	// AxisPosition is the stage-position axis.
	AxisPosition Axis = "p"

	// AxisGrid is the grid-tile axis.
	AxisGrid Axis = "g"

	// AxisChannel is the channel axis.
	AxisChannel Axis = "c"

	// AxisZ is the z-stack axis.
	AxisZ Axis = "z"
)

// KnownAxes lists every axis tag in the default outer-to-inner order.
// The variant set is fixed; the engine handles each tag exhaustively.
var KnownAxes = []Axis{AxisTime, AxisPosition, AxisGrid, AxisChannel, AxisZ}

// IsKnown reports whether a is one of the five recognized axis tags.
//
// Nesting-qualified tags produced by sub-sequence expansion (e.g. "z1")
// are NOT known axes; they only ever appear in composed event indices.
func (a Axis) IsKnown() bool {
	for _, k := range KnownAxes {
		if a == k {
			return true
		}
	}
	return false
}

// Qualified returns the axis tag qualified by a nesting depth, used when a
// child sequence's axis collides with an ancestor's entry in a composed
// index. Depth 0 returns the tag unchanged.
func (a Axis) Qualified(depth int) Axis {
	if depth == 0 {
		return a
	}
	return Axis(fmt.Sprintf("%s%d", a, depth))
}

// ParseAxisOrder parses a compact axis-order string such as "tpgcz" into a
// slice of axis tags. Every rune must be a known axis tag.
func ParseAxisOrder(order string) ([]Axis, error) {
	axes := make([]Axis, 0, len(order))
	for _, r := range order {
		a := Axis(r)
		if !a.IsKnown() {
			return nil, fmt.Errorf("unknown axis %q in axis order %q", string(r), order)
		}
		axes = append(axes, a)
	}
	return axes, nil
}

// IndexEntry is one (axis, step) pair of a multi-axis index.
type IndexEntry struct {
	Axis Axis
	Step int
}

// AxisIndex is the multi-axis index of an event: an ordered list of
// (axis, step) pairs whose insertion order is the outer-to-inner nesting
// order of the iteration that produced the event.
//
// AxisIndex is a list rather than a map so that ordering survives
// serialization and so nested-sequence expansion can concatenate a parent
// prefix with a child index deterministically.
type AxisIndex []IndexEntry

// Get returns the step recorded for an axis and whether the axis is present.
func (ix AxisIndex) Get(a Axis) (int, bool) {
	for _, e := range ix {
		if e.Axis == a {
			return e.Step, true
		}
	}
	return 0, false
}

// Has reports whether the index contains an entry for the axis.
func (ix AxisIndex) Has(a Axis) bool {
	_, ok := ix.Get(a)
	return ok
}

// With returns a copy of the index with one entry appended.
// The receiver is never mutated.
func (ix AxisIndex) With(a Axis, step int) AxisIndex {
	out := make(AxisIndex, len(ix), len(ix)+1)
	copy(out, ix)
	return append(out, IndexEntry{Axis: a, Step: step})
}

// Concat returns a copy of the index with the child index appended.
// Child entries whose axis already appears in the receiver are qualified
// with the given nesting depth, keeping every key in the result distinct.
func (ix AxisIndex) Concat(child AxisIndex, depth int) AxisIndex {
	out := make(AxisIndex, len(ix), len(ix)+len(child))
	copy(out, ix)
	for _, e := range child {
		a := e.Axis
		if out.Has(a) {
			a = a.Qualified(depth)
		}
		out = append(out, IndexEntry{Axis: a, Step: e.Step})
	}
	return out
}

// Key returns a canonical string form of the index, e.g. "t=0,p=1,c=0".
// Two events from one iteration are the same combination iff keys are equal.
func (ix AxisIndex) Key() string {
	var sb strings.Builder
	for i, e := range ix {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s=%d", e.Axis, e.Step)
	}
	return sb.String()
}

// MarshalJSON encodes the index as a JSON object whose member order is the
// index's own insertion order. Keys are unique by construction (Concat
// qualifies collisions), so the object is well formed.
func (ix AxisIndex) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range ix {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%d", string(e.Axis), e.Step)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into an index, preserving the member
// order of the document. Standard map decoding would lose ordering, so the
// token stream is walked directly.
func (ix *AxisIndex) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("axis index: expected object, got %v", tok)
	}

	var out AxisIndex
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("axis index: non-string key %v", keyTok)
		}
		var step int
		if err := dec.Decode(&step); err != nil {
			return fmt.Errorf("axis index %q: %w", key, err)
		}
		out = append(out, IndexEntry{Axis: Axis(key), Step: step})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*ix = out
	return nil
}
