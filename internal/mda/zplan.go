package mda

import "math"

// ZPlan is a sealed interface over the z-stack plan variants. Only ZRange,
// ZTopBottom, ZRelative and ZAbsolute implement it, so the engine and the
// loader can switch over the variants exhaustively.
//
// A plan is either relative (its values are displacements added to the active
// stage position's z) or absolute (its values are final z coordinates; the
// position's z is ignored). Channel z offsets are additive in both cases.
type ZPlan interface {
	zPlan() // sealed

	// NumSteps returns the number of z steps. Always finite.
	NumSteps() int

	// StepAt returns the z value of a step. The domain is [0, NumSteps()).
	StepAt(step int) (float64, error)

	// IsRelative reports whether values are displacements from the active
	// position's z rather than absolute coordinates.
	IsRelative() bool
}

// stepCount returns the number of evenly spaced steps covering span,
// inclusive of both endpoints. The epsilon absorbs float error so that a
// span that is an exact multiple of the step size is not truncated.
func stepCount(span, step float64) int {
	if step <= 0 {
		return 1
	}
	return int(math.Floor(span/step+1e-9)) + 1
}

// ZRange is a symmetric z-stack centered on the active position's z.
// A range of 4 with step 0.5 yields 9 steps spanning -2.0 .. +2.0.
type ZRange struct {
	// Range is the total span of the stack.
	Range float64

	// Step is the spacing between consecutive steps.
	Step float64

	// TopDown reverses the traversal: highest displacement first.
	TopDown bool
}

func (ZRange) zPlan() {}

// IsRelative always reports true: values are displacements.
func (ZRange) IsRelative() bool { return true }

// NumSteps returns the number of steps covering the range, endpoints included.
func (p ZRange) NumSteps() int {
	return stepCount(math.Abs(p.Range), p.Step)
}

// StepAt returns the displacement of a step, ascending from -Range/2 unless
// TopDown is set.
func (p ZRange) StepAt(step int) (float64, error) {
	n := p.NumSteps()
	if step < 0 || step >= n {
		return 0, NewStepError(AxisZ, step, n)
	}
	i := step
	if p.TopDown {
		i = n - 1 - step
	}
	return -math.Abs(p.Range)/2 + float64(i)*p.Step, nil
}

// ZTopBottom is an absolute z-stack between two stage coordinates.
type ZTopBottom struct {
	Top    float64
	Bottom float64

	// Step is the spacing between consecutive steps.
	Step float64

	// TopDown reverses the traversal: highest coordinate first.
	TopDown bool
}

func (ZTopBottom) zPlan() {}

// IsRelative always reports false: values are absolute coordinates.
func (ZTopBottom) IsRelative() bool { return false }

// NumSteps returns the number of steps between bottom and top, inclusive.
func (p ZTopBottom) NumSteps() int {
	return stepCount(math.Abs(p.Top-p.Bottom), p.Step)
}

// StepAt returns the absolute z of a step, ascending from the lower of the
// two bounds unless TopDown is set.
func (p ZTopBottom) StepAt(step int) (float64, error) {
	n := p.NumSteps()
	if step < 0 || step >= n {
		return 0, NewStepError(AxisZ, step, n)
	}
	i := step
	if p.TopDown {
		i = n - 1 - step
	}
	return math.Min(p.Top, p.Bottom) + float64(i)*p.Step, nil
}

// ZRelative is an explicit list of displacements from the active position's z.
type ZRelative struct {
	Offsets []float64
}

func (ZRelative) zPlan() {}

// IsRelative always reports true.
func (ZRelative) IsRelative() bool { return true }

// NumSteps returns the number of listed offsets.
func (p ZRelative) NumSteps() int { return len(p.Offsets) }

// StepAt returns the listed displacement at a step.
func (p ZRelative) StepAt(step int) (float64, error) {
	if step < 0 || step >= len(p.Offsets) {
		return 0, NewStepError(AxisZ, step, len(p.Offsets))
	}
	return p.Offsets[step], nil
}

// ZAbsolute is an explicit list of absolute z coordinates.
type ZAbsolute struct {
	Positions []float64
}

func (ZAbsolute) zPlan() {}

// IsRelative always reports false.
func (ZAbsolute) IsRelative() bool { return false }

// NumSteps returns the number of listed coordinates.
func (p ZAbsolute) NumSteps() int { return len(p.Positions) }

// StepAt returns the listed coordinate at a step.
func (p ZAbsolute) StepAt(step int) (float64, error) {
	if step < 0 || step >= len(p.Positions) {
		return 0, NewStepError(AxisZ, step, len(p.Positions))
	}
	return p.Positions[step], nil
}
