package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdakit/mdaseq/internal/mda"
)

func TestParseFullDocument(t *testing.T) {
	doc := `
axis_order: tpcz
time_plan:
  interval: 2s
  loops: 3
stage_positions:
  - {x: 10, y: 20, z: 30, name: well_A1}
  - {x: 15, y: 20, z: 30}
channels:
  - config: DAPI
    group: Channel
    exposure: 50
  - config: FITC
    exposure: 100
    acquire_every: 2
    do_stack: false
    z_offset: 0.5
z_plan:
  range: 4
  step: 0.5
`
	seq, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, []mda.Axis{mda.AxisTime, mda.AxisPosition, mda.AxisChannel, mda.AxisZ}, seq.AxisOrder)

	require.NotNil(t, seq.TimePlan)
	assert.Equal(t, 2*time.Second, seq.TimePlan.Interval)
	assert.Equal(t, 3, seq.TimePlan.Loops)
	assert.False(t, seq.TimePlan.IsDynamic())

	require.Len(t, seq.StagePositions, 2)
	assert.Equal(t, "well_A1", seq.StagePositions[0].Name)
	assert.Equal(t, 30.0, seq.StagePositions[0].Z)

	require.Len(t, seq.Channels, 2)
	assert.Equal(t, "DAPI", seq.Channels[0].Config)
	assert.False(t, seq.Channels[0].SkipZStack)
	assert.Equal(t, 2, seq.Channels[1].AcquireEvery)
	assert.True(t, seq.Channels[1].SkipZStack)
	assert.Equal(t, 0.5, seq.Channels[1].ZOffset)

	require.NotNil(t, seq.ZPlan)
	assert.Equal(t, mda.ZRange{Range: 4, Step: 0.5}, seq.ZPlan)
	assert.Equal(t, 9, seq.ZPlan.NumSteps())
}

func TestParseChannelShorthand(t *testing.T) {
	doc := `
channels:
  - DAPI
  - config: FITC
    exposure: 10
`
	seq, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, seq.Channels, 2)
	assert.Equal(t, "DAPI", seq.Channels[0].Config)
	assert.Equal(t, "FITC", seq.Channels[1].Config)
}

func TestParseDurationForms(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want time.Duration
	}{
		{"go duration string", "time_plan: {interval: 500ms, loops: 2}", 500 * time.Millisecond},
		{"seconds number", "time_plan: {interval: 2, loops: 2}", 2 * time.Second},
		{"fractional seconds", "time_plan: {interval: 0.25, loops: 2}", 250 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			require.NotNil(t, seq.TimePlan)
			assert.Equal(t, tt.want, seq.TimePlan.Interval)
		})
	}
}

func TestParseDurationDrivenTimePlan(t *testing.T) {
	seq, err := Parse([]byte("time_plan: {interval: 1s, duration: 10s}"))
	require.NoError(t, err)
	require.NotNil(t, seq.TimePlan)
	assert.True(t, seq.TimePlan.IsDynamic())
	assert.Equal(t, 10*time.Second, seq.TimePlan.Duration)
}

func TestParseZPlanVariants(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want mda.ZPlan
	}{
		{"range", "z_plan: {range: 2, step: 1}", mda.ZRange{Range: 2, Step: 1}},
		{"range top down", "z_plan: {range: 2, step: 1, go_up: false}", mda.ZRange{Range: 2, Step: 1, TopDown: true}},
		{"top bottom", "z_plan: {top: 5, bottom: 1, step: 2}", mda.ZTopBottom{Top: 5, Bottom: 1, Step: 2}},
		{"relative", "z_plan: {relative: [-1, 0, 1]}", mda.ZRelative{Offsets: []float64{-1, 0, 1}}},
		{"absolute", "z_plan: {absolute: [10, 20]}", mda.ZAbsolute{Positions: []float64{10, 20}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, seq.ZPlan)
		})
	}
}

func TestParseGridPlan(t *testing.T) {
	doc := `
grid_plan:
  rows: 2
  columns: 3
  relative_to: top_left
  overlap: [10, 5]
  fov_width: 512
  fov_height: 512
  mode: spiral
`
	seq, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.NotNil(t, seq.GridPlan)
	assert.Equal(t, 2, seq.GridPlan.Rows)
	assert.Equal(t, mda.GridTopLeft, seq.GridPlan.RelativeTo)
	assert.Equal(t, 10.0, seq.GridPlan.OverlapX)
	assert.Equal(t, 5.0, seq.GridPlan.OverlapY)
	assert.Equal(t, mda.OrderSpiral, seq.GridPlan.Mode)
}

func TestParseGridOverlapScalar(t *testing.T) {
	seq, err := Parse([]byte("grid_plan: {rows: 1, columns: 2, overlap: 15}"))
	require.NoError(t, err)
	assert.Equal(t, 15.0, seq.GridPlan.OverlapX)
	assert.Equal(t, 15.0, seq.GridPlan.OverlapY)
}

func TestParseNestedSequence(t *testing.T) {
	doc := `
stage_positions:
  - name: plain
    x: 1
  - name: stacked
    z: 10
    sequence:
      z_plan:
        relative: [0, 1, 2]
channels:
  - DAPI
`
	seq, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, seq.StagePositions, 2)

	nested := seq.StagePositions[1].Sequence
	require.NotNil(t, nested)
	assert.Equal(t, mda.ZRelative{Offsets: []float64{0, 1, 2}}, nested.ZPlan)
	assert.Nil(t, seq.StagePositions[0].Sequence)
}

func TestParseSchemaRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown axis in autofocus", "autofocus_axes: [t, q]"},
		{"negative grid rows", "grid_plan: {rows: -1, columns: 2}"},
		{"channel without config", "channels: [{exposure: 10}]"},
		{"z range without step", "z_plan: {range: 4}"},
		{"bad relative_to", "grid_plan: {rows: 1, columns: 1, relative_to: middle}"},
		{"zero loops", "time_plan: {interval: 1s, loops: 0}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, ErrCodeSchema, loadErr.Code)
		})
	}
}

func TestParseNestedSchemaErrorCarriesPath(t *testing.T) {
	doc := `
stage_positions:
  - name: bad
    sequence:
      z_plan: {range: 4}
`
	_, err := Parse([]byte(doc))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSchema, loadErr.Code)
	assert.Equal(t, "stage_positions[0].sequence", loadErr.Path)
}

func TestParseBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"time plan without loops or duration", "time_plan: {interval: 1s}"},
		{"duration plan without interval", "time_plan: {interval: 0, duration: 5s}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, ErrCodeBuild, loadErr.Code)
		})
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte("channels: [unclosed"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeParse, loadErr.Code)
}

func TestParseEmptyDocument(t *testing.T) {
	_, err := Parse([]byte(""))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeParse, loadErr.Code)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channels: [DAPI]"), 0o644))

	seq, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, seq.Channels, 1)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeNotFound, loadErr.Code)
}
