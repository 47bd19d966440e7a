package dataset

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "Yankees": {
    "Cole": {
      "FF 5": {"release_speed": 140.8, "vx0": 6.1, "vy0": -138.4, "vz0": -5.2, "spin_axis": 210},
      "SL 5": {"release_speed_mph": "88.4", "release_spin_rate": null},
      "FF 1": {"release_speed": "fast"},
      "FF x": {}
    },
    "Holmes": {"SI 7": {}}
  },
  "Astros": {"Valdez": {"CU 9": {}}}
}`

func TestDecode_NestedShape(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	assert.Equal(t, []string{"Astros", "Yankees"}, ds.Teams())
	assert.Equal(t, []string{"Cole", "Holmes"}, ds.Pitchers("Yankees"))
	assert.Empty(t, ds.Pitchers("Mets"))
	assert.Equal(t, 6, ds.Len())

	p, ok := ds.Pitcher("Yankees", "Cole")
	require.True(t, ok)
	v, ok := p["FF 5"].ReleaseSpeed.Get()
	require.True(t, ok)
	assert.InDelta(t, 140.8, v, 1e-9)

	_, ok = ds.Pitcher("Yankees", "Nobody")
	assert.False(t, ok)
}

func TestNum_LooseDecoding(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	p, _ := ds.Pitcher("Yankees", "Cole")

	mph, ok := p["SL 5"].ReleaseSpeedMPH.Get()
	assert.True(t, ok, "numeric string should decode")
	assert.InDelta(t, 88.4, mph, 1e-9)

	assert.False(t, p["SL 5"].ReleaseSpinRate.IsSet(), "null is absent")
	assert.False(t, p["FF 1"].ReleaseSpeed.IsSet(), "non-numeric string is absent")
	assert.False(t, p["FF 1"].VX0.IsSet(), "missing is absent")
	assert.Equal(t, 3.5, p["FF 1"].VX0.Or(3.5))
}

func TestNum_Helpers(t *testing.T) {
	assert.False(t, Some(math.NaN()).IsSet())
	assert.Equal(t, 24.0, Some(2).Scale(12).Or(0))
	assert.False(t, None().Scale(12).IsSet())
	assert.Equal(t, 7.0, First(None(), Some(7), Some(9)).Or(0))
	assert.False(t, First(None(), None()).IsSet())
}

func TestGroups_SortedAndFiltered(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	p, _ := ds.Pitcher("Yankees", "Cole")

	groups := Groups(p)
	require.Len(t, groups, 2)
	assert.Equal(t, "FF", groups[0].Type)
	require.Len(t, groups[0].Zones, 2, "FF x is skipped")
	assert.Equal(t, 1, groups[0].Zones[0].Zone)
	assert.Equal(t, "FF 5", groups[0].Zones[1].Key)
	assert.Equal(t, "SL", groups[1].Type)
}

func TestParseKey(t *testing.T) {
	k, ok := ParseKey("FF 5")
	require.True(t, ok)
	assert.Equal(t, Key{Type: "FF", Zone: 5}, k)
	assert.Equal(t, "FF 5", k.String())

	for _, bad := range []string{"FF", "FF 0", "FF 10", "FF five", "FF 5 extra", ""} {
		_, ok := ParseKey(bad)
		assert.False(t, ok, bad)
	}

	assert.Equal(t, "SL", TypeOf("SL 3"))
	assert.Equal(t, "SL", TypeOf("SL"))
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pitch_data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, ds, 2)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset: open")

	require.NoError(t, os.WriteFile(path, []byte(`{"broken"`), 0644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset: parse")
}
