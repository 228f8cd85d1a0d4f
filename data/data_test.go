package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifetime(t *testing.T) {
	assert.False(t, Lifetime{}.Timed())
	assert.False(t, Lifetime{}.Fixed())
	assert.True(t, Lifetime{Min: 5, Max: 8}.Timed())
	assert.False(t, Lifetime{Min: 5, Max: 8}.Fixed())
	assert.True(t, Lifetime{Min: 5, Max: 5}.Fixed())
}

func TestEffectLifetimes(t *testing.T) {
	assert.Equal(t, Lifetime{Min: 5, Max: 8}, WeatherLifetime(WeatherRain))
	assert.Equal(t, Lifetime{Min: 5, Max: 8}, TerrainLifetime(TerrainGrassy))
	assert.Equal(t, Lifetime{Min: 5, Max: 5}, FieldLifetime(FieldTrickRoom))
	assert.Equal(t, Lifetime{Min: 5, Max: 8}, SideLifetime(SideReflect))
	assert.Equal(t, Lifetime{Min: 4, Max: 4}, SideLifetime(SideTailwind))
	assert.False(t, SideLifetime(SideSpikes).Timed(), "hazards never expire on their own")
}

func TestSideStackCap(t *testing.T) {
	assert.Equal(t, 3, SideStackCap(SideSpikes))
	assert.Equal(t, 2, SideStackCap(SideToxicSpikes))
	assert.Equal(t, 1, SideStackCap(SideStealthRock))
	assert.Equal(t, 1, SideStackCap(SideReflect), "non-stacking conditions report one")
}

func TestVolatileDuration(t *testing.T) {
	assert.Equal(t, 3, VolatileDuration(VolatileTaunt))
	assert.Equal(t, 1, VolatileDuration(VolatileYawn))
	assert.Equal(t, 0, VolatileDuration(VolatileConfusion), "no known countdown")
}

func TestIsBerry(t *testing.T) {
	assert.True(t, IsBerry("Sitrus Berry"))
	assert.True(t, IsBerry("lum berry"))
	assert.False(t, IsBerry("Leftovers"))
}

func TestStatFromName(t *testing.T) {
	tests := []struct {
		in   string
		want StatKind
		ok   bool
	}{
		{"Attack", StatAttack, true},
		{"atk", StatAttack, true},
		{"Sp. Atk", StatSpecialAttack, true},
		{"SPEED", StatSpeed, true},
		{" evasiveness ", StatEvasion, true},
		{"coolness", "", false},
	}
	for _, tt := range tests {
		got, ok := StatFromName(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestStatDisplayName(t *testing.T) {
	assert.Equal(t, "Sp. Atk", StatDisplayName(StatSpecialAttack))
	assert.Equal(t, "oddstat", StatDisplayName(StatKind("oddstat")))
}

func TestTemplate(t *testing.T) {
	tmpl, ok := Template("battle.move.used")
	require.True(t, ok)
	assert.Equal(t, "%s used %s!", tmpl)

	_, ok = Template("battle.not.a.key")
	assert.False(t, ok)
}

func TestLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"battle.test.custom": "%s did a thing!"}`), 0o644))

	require.NoError(t, LoadTemplates(path))

	tmpl, ok := Template("battle.test.custom")
	require.True(t, ok)
	assert.Equal(t, "%s did a thing!", tmpl)
}

func TestLoadTemplatesErrors(t *testing.T) {
	assert.Error(t, LoadTemplates(filepath.Join(t.TempDir(), "missing.json")))

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	assert.Error(t, LoadTemplates(path))
}
