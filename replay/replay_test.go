package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battlelens/data"
	"battlelens/session"
)

const sampleLog = `|battle.player|Alice|p1
|battle.player|Bob|p2
|battle.switch.in|Mew|p1
|battle.switch.in|Tyranitar|p2
|battle.turn|1
|battle.sandstorm.start
|battle.stat.raised.z1|Tyranitar|Sp. Def
|battle.turn|2
|battle.fainted|Mew
`

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.log")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	s := session.New("battle-replay", session.Options{})
	require.NoError(t, ParseFile(path, s))

	tr := s.Tracker()
	assert.Equal(t, 2, tr.CurrentTurn())

	w, ok := tr.Weather()
	require.True(t, ok)
	assert.Equal(t, data.WeatherSandstorm, w.Kind)

	mew, ok := tr.Resolve("Mew")
	require.True(t, ok)
	assert.True(t, tr.IsKO(mew))

	ttar, ok := tr.Resolve("Tyranitar")
	require.True(t, ok)
	assert.Equal(t, 1, tr.StatStages(ttar)[data.StatSpecialDefense])
}

func TestParseFileMissing(t *testing.T) {
	s := session.New("battle-replay", session.Options{})
	err := ParseFile(filepath.Join(t.TempDir(), "nope.log"), s)
	assert.Error(t, err)
}
