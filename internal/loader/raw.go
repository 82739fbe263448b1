package loader

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mdakit/mdaseq/internal/mda"
)

// duration accepts either a Go duration string ("1s", "500ms") or a bare
// number of seconds.
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var asString string
	if err := node.Decode(&asString); err == nil {
		parsed, err := time.ParseDuration(asString)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", asString, err)
		}
		*d = duration(parsed)
		return nil
	}
	var asSeconds float64
	if err := node.Decode(&asSeconds); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds")
	}
	*d = duration(time.Duration(asSeconds * float64(time.Second)))
	return nil
}

type rawSequence struct {
	AxisOrder             string        `yaml:"axis_order"`
	TimePlan              *rawTimePlan  `yaml:"time_plan"`
	StagePositions        []rawPosition `yaml:"stage_positions"`
	GridPlan              *rawGridPlan  `yaml:"grid_plan"`
	Channels              []rawChannel  `yaml:"channels"`
	ZPlan                 *rawZPlan     `yaml:"z_plan"`
	AutofocusAxes         []string      `yaml:"autofocus_axes"`
	KeepShutterOpenAcross []string      `yaml:"keep_shutter_open_across"`
}

type rawTimePlan struct {
	Interval duration  `yaml:"interval"`
	Loops    int       `yaml:"loops"`
	Duration *duration `yaml:"duration"`
}

type rawPosition struct {
	X         float64      `yaml:"x"`
	Y         float64      `yaml:"y"`
	Z         float64      `yaml:"z"`
	Name      string       `yaml:"name"`
	AbsoluteZ bool         `yaml:"absolute_z"`
	Sequence  *rawSequence `yaml:"sequence"`
}

type rawGridPlan struct {
	Rows       int       `yaml:"rows"`
	Columns    int       `yaml:"columns"`
	RelativeTo string    `yaml:"relative_to"`
	Overlap    yaml.Node `yaml:"overlap"`
	FOVWidth   float64   `yaml:"fov_width"`
	FOVHeight  float64   `yaml:"fov_height"`
	Mode       string    `yaml:"mode"`
}

// rawChannel accepts either a full mapping or a bare string shorthand for
// the config name.
type rawChannel struct {
	Config       string  `yaml:"config"`
	Group        string  `yaml:"group"`
	Exposure     float64 `yaml:"exposure"`
	AcquireEvery int     `yaml:"acquire_every"`
	DoStack      *bool   `yaml:"do_stack"`
	ZOffset      float64 `yaml:"z_offset"`
}

func (c *rawChannel) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&c.Config)
	}
	type plain rawChannel
	return node.Decode((*plain)(c))
}

type rawZPlan struct {
	Range    *float64  `yaml:"range"`
	Step     *float64  `yaml:"step"`
	Top      *float64  `yaml:"top"`
	Bottom   *float64  `yaml:"bottom"`
	Relative []float64 `yaml:"relative"`
	Absolute []float64 `yaml:"absolute"`
	GoUp     *bool     `yaml:"go_up"`
}

// build assembles the typed document into an immutable MDASequence. The
// path argument locates nested sequences in error messages.
func (r *rawSequence) build(path string) (*mda.MDASequence, error) {
	buildErr := func(format string, args ...any) error {
		return &LoadError{Code: ErrCodeBuild, Path: path, Message: fmt.Sprintf(format, args...)}
	}

	seq := &mda.MDASequence{}

	if r.AxisOrder != "" {
		axes, err := mda.ParseAxisOrder(r.AxisOrder)
		if err != nil {
			return nil, buildErr("%v", err)
		}
		seq.AxisOrder = axes
	}

	if r.TimePlan != nil {
		tp := &mda.TimePlan{Interval: time.Duration(r.TimePlan.Interval)}
		switch {
		case r.TimePlan.Loops > 0:
			tp.Loops = r.TimePlan.Loops
		case r.TimePlan.Duration != nil:
			if tp.Interval <= 0 {
				return nil, buildErr("duration-driven time plan needs a positive interval")
			}
			tp.Duration = time.Duration(*r.TimePlan.Duration)
		default:
			return nil, buildErr("time plan needs either loops or duration")
		}
		seq.TimePlan = tp
	}

	for i, rp := range r.StagePositions {
		pos := mda.StagePosition{
			X:         rp.X,
			Y:         rp.Y,
			Z:         rp.Z,
			Name:      rp.Name,
			AbsoluteZ: rp.AbsoluteZ,
		}
		if rp.Sequence != nil {
			nestedPath := fmt.Sprintf("stage_positions[%d].sequence", i)
			if path != "" {
				nestedPath = path + "." + nestedPath
			}
			nested, err := rp.Sequence.build(nestedPath)
			if err != nil {
				return nil, err
			}
			pos.Sequence = nested
		}
		seq.StagePositions = append(seq.StagePositions, pos)
	}

	if r.GridPlan != nil {
		gp, err := r.GridPlan.build()
		if err != nil {
			return nil, buildErr("grid plan: %v", err)
		}
		seq.GridPlan = gp
	}

	for _, rc := range r.Channels {
		ch := mda.Channel{
			Config:       rc.Config,
			Group:        rc.Group,
			Exposure:     rc.Exposure,
			AcquireEvery: rc.AcquireEvery,
			ZOffset:      rc.ZOffset,
		}
		if rc.DoStack != nil && !*rc.DoStack {
			ch.SkipZStack = true
		}
		seq.Channels = append(seq.Channels, ch)
	}

	if r.ZPlan != nil {
		zp, err := r.ZPlan.build()
		if err != nil {
			return nil, buildErr("z plan: %v", err)
		}
		seq.ZPlan = zp
	}

	af, err := parseAxisList(r.AutofocusAxes)
	if err != nil {
		return nil, buildErr("autofocus_axes: %v", err)
	}
	seq.AutofocusAxes = af

	kso, err := parseAxisList(r.KeepShutterOpenAcross)
	if err != nil {
		return nil, buildErr("keep_shutter_open_across: %v", err)
	}
	seq.KeepShutterOpenAcross = kso

	return seq, nil
}

func (g *rawGridPlan) build() (*mda.GridPlan, error) {
	gp := &mda.GridPlan{
		Rows:      g.Rows,
		Columns:   g.Columns,
		FOVWidth:  g.FOVWidth,
		FOVHeight: g.FOVHeight,
	}

	switch g.RelativeTo {
	case "":
		gp.RelativeTo = mda.GridCenter
	case string(mda.GridCenter), string(mda.GridTopLeft):
		gp.RelativeTo = mda.RelativeTo(g.RelativeTo)
	default:
		return nil, fmt.Errorf("unknown relative_to %q", g.RelativeTo)
	}

	if g.Mode != "" {
		mode := mda.OrderMode(g.Mode)
		if !mda.ValidOrderModes[mode] {
			return nil, fmt.Errorf("unknown traversal mode %q", g.Mode)
		}
		gp.Mode = mode
	}

	if !g.Overlap.IsZero() {
		var single float64
		if err := g.Overlap.Decode(&single); err == nil {
			gp.OverlapX, gp.OverlapY = single, single
		} else {
			var pair [2]float64
			if err := g.Overlap.Decode(&pair); err != nil {
				return nil, fmt.Errorf("overlap must be a number or a pair of numbers")
			}
			gp.OverlapX, gp.OverlapY = pair[0], pair[1]
		}
	}
	return gp, nil
}

func (z *rawZPlan) build() (mda.ZPlan, error) {
	topDown := z.GoUp != nil && !*z.GoUp
	switch {
	case z.Range != nil:
		if z.Step == nil {
			return nil, fmt.Errorf("range plan needs a step")
		}
		return mda.ZRange{Range: *z.Range, Step: *z.Step, TopDown: topDown}, nil
	case z.Top != nil || z.Bottom != nil:
		if z.Top == nil || z.Bottom == nil || z.Step == nil {
			return nil, fmt.Errorf("top/bottom plan needs top, bottom and step")
		}
		return mda.ZTopBottom{Top: *z.Top, Bottom: *z.Bottom, Step: *z.Step, TopDown: topDown}, nil
	case z.Relative != nil:
		return mda.ZRelative{Offsets: z.Relative}, nil
	case z.Absolute != nil:
		return mda.ZAbsolute{Positions: z.Absolute}, nil
	}
	return nil, fmt.Errorf("empty z plan")
}

func parseAxisList(tags []string) ([]mda.Axis, error) {
	var out []mda.Axis
	for _, t := range tags {
		a := mda.Axis(t)
		if !a.IsKnown() {
			return nil, fmt.Errorf("unknown axis %q", t)
		}
		out = append(out, a)
	}
	return out, nil
}
