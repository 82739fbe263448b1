package mda

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAxisOrder(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Axis
		wantErr bool
	}{
		{"full order", "tpgcz", []Axis{AxisTime, AxisPosition, AxisGrid, AxisChannel, AxisZ}, false},
		{"partial order", "tcz", []Axis{AxisTime, AxisChannel, AxisZ}, false},
		{"empty", "", []Axis{}, false},
		{"unknown axis", "txz", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAxisOrder(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAxisQualified(t *testing.T) {
	assert.Equal(t, AxisZ, AxisZ.Qualified(0))
	assert.Equal(t, Axis("z1"), AxisZ.Qualified(1))
	assert.Equal(t, Axis("c2"), AxisChannel.Qualified(2))
	assert.False(t, Axis("z1").IsKnown())
}

func TestAxisIndexWith(t *testing.T) {
	base := AxisIndex{}.With(AxisTime, 0).With(AxisChannel, 2)

	step, ok := base.Get(AxisChannel)
	require.True(t, ok)
	assert.Equal(t, 2, step)
	assert.False(t, base.Has(AxisZ))

	// With copies; the original must be unchanged.
	extended := base.With(AxisZ, 5)
	assert.False(t, base.Has(AxisZ))
	assert.True(t, extended.Has(AxisZ))
}

func TestAxisIndexConcatQualifiesCollisions(t *testing.T) {
	parent := AxisIndex{}.With(AxisTime, 1).With(AxisPosition, 0).With(AxisZ, 3)
	child := AxisIndex{}.With(AxisZ, 2).With(AxisChannel, 0)

	got := parent.Concat(child, 1)
	assert.Equal(t, "t=1,p=0,z=3,z1=2,c=0", got.Key())

	// Non-colliding child axes keep their plain tags.
	step, ok := got.Get(AxisChannel)
	require.True(t, ok)
	assert.Equal(t, 0, step)
}

func TestAxisIndexKey(t *testing.T) {
	ix := AxisIndex{}.With(AxisTime, 0).With(AxisPosition, 1).With(AxisChannel, 0)
	assert.Equal(t, "t=0,p=1,c=0", ix.Key())
	assert.Equal(t, "", AxisIndex{}.Key())
}

func TestAxisIndexJSONRoundTrip(t *testing.T) {
	ix := AxisIndex{}.With(AxisTime, 4).With(AxisPosition, 0).With(AxisZ, 3).Concat(
		AxisIndex{}.With(AxisZ, 1), 1)

	data, err := json.Marshal(ix)
	require.NoError(t, err)
	assert.Equal(t, `{"t":4,"p":0,"z":3,"z1":1}`, string(data))

	var back AxisIndex
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, ix, back)
}

func TestAxisIndexUnmarshalRejectsNonObject(t *testing.T) {
	var ix AxisIndex
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &ix))
}
