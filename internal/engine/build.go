package engine

import "github.com/mdakit/mdaseq/internal/mda"

// buildEvent materializes the current surviving combination into one fully
// resolved event. It performs no I/O and raises no errors beyond propagating
// plan evaluation failures.
func (s *Stream) buildEvent() (*mda.MDAEvent, error) {
	local := s.localIndex()

	ev := &mda.MDAEvent{
		Index: s.prefix.Concat(local, s.depth),
	}

	// Base position: the active stage position, or the position inherited
	// from the parent stream when this is a spliced sub-sequence.
	var (
		baseX, baseY, baseZ float64
		hasXY, hasZBase     bool
	)
	if s.pSlot >= 0 {
		pos := &s.seq.StagePositions[s.idx[s.pSlot]]
		baseX, baseY, baseZ = pos.X, pos.Y, pos.Z
		hasXY, hasZBase = true, true
		ev.PosName = pos.Name
	} else if s.base != nil {
		baseX, baseY, baseZ = s.base.X, s.base.Y, s.base.Z
		hasXY, hasZBase = true, true
		ev.PosName = s.baseName
	}

	// Grid tile: an x/y displacement from the base position.
	if s.gSlot >= 0 {
		tile, err := s.seq.GridPlan.TileAt(s.idx[s.gSlot])
		if err != nil {
			return nil, err
		}
		baseX += tile.DX
		baseY += tile.DY
		hasXY = true
		ev.Row = mda.Int(tile.Row)
		ev.Col = mda.Int(tile.Col)
		if ev.PosName == "" {
			ev.PosName = tile.Name
		}
	}
	if hasXY {
		ev.X = mda.Float(baseX)
		ev.Y = mda.Float(baseY)
	}

	// Channel settings.
	var chOffset float64
	if s.cSlot >= 0 {
		ch := s.seq.Channels[s.idx[s.cSlot]]
		ev.Channel = &mda.EventChannel{Config: ch.Config, Group: ch.Group}
		ev.Exposure = ch.Exposure
		chOffset = ch.ZOffset
	}

	// Absolute z: base + plan displacement + channel offset for relative
	// plans; the plan value stands alone (plus channel offset) for
	// absolute plans.
	switch {
	case s.zSlot >= 0:
		v, err := s.seq.ZPlan.StepAt(s.idx[s.zSlot])
		if err != nil {
			return nil, err
		}
		if s.seq.ZPlan.IsRelative() && hasZBase {
			v += baseZ
		}
		ev.Z = mda.Float(v + chOffset)
	case hasZBase:
		ev.Z = mda.Float(baseZ + chOffset)
	}

	if s.hasClock {
		ev.MinStartTime = mda.Float(s.clockBase + s.clock)
	}

	// Autofocus: engage before the first event and whenever a watched axis
	// has advanced since the previously emitted event.
	if len(s.seq.AutofocusAxes) > 0 {
		ev.Autofocus = s.prevIndex == nil || axesChanged(s.prevIndex, local, s.seq.AutofocusAxes)
	}
	s.prevIndex = local

	return ev, nil
}

// axesChanged reports whether any of the watched axes has a different step
// in the two indices.
func axesChanged(prev, cur mda.AxisIndex, watched []mda.Axis) bool {
	for _, a := range watched {
		p, okP := prev.Get(a)
		c, okC := cur.Get(a)
		if okP != okC || p != c {
			return true
		}
	}
	return false
}
