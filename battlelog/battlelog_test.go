package battlelog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battlelens/parser"
)

func TestAppendStampsTurns(t *testing.T) {
	raw := strings.Join([]string{
		"|battle.move.used|Mew|Psychic",
		"|battle.turn|5",
		"|battle.move.used|Tyranitar|Crunch",
		"|battle.turn|6",
		"|battle.move.used|Mew|Swift",
	}, "\n")
	batch := parser.ParseBatch(raw)

	log := New(0)
	entries := log.Append(batch, 4)

	require.Len(t, entries, 5)
	turns := make([]int, len(entries))
	for i, e := range entries {
		turns[i] = e.Turn
	}
	assert.Equal(t, []int{4, 5, 5, 6, 6}, turns)
}

func TestAppendRendersAndCategorizes(t *testing.T) {
	batch := parser.ParseBatch("|battle.move.used|Mew|Psychic\n|battle.fainted|Tyranitar")
	log := New(0)
	entries := log.Append(batch, 1)

	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Turn: 1, Category: CategoryMove, Text: "Mew used Psychic!"}, entries[0])
	assert.Equal(t, Entry{Turn: 1, Category: CategoryHP, Text: "Tyranitar fainted!"}, entries[1])
}

func TestRetentionEvictsOldestFirst(t *testing.T) {
	log := New(3)
	log.Append(parser.ParseBatch("|battle.turn|1\n|battle.turn|2"), 0)
	log.Append(parser.ParseBatch("|battle.turn|3\n|battle.turn|4"), 2)

	entries := log.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 2, entries[0].Turn)
	assert.Equal(t, 4, entries[2].Turn)
}

func TestReset(t *testing.T) {
	log := New(0)
	log.Append(parser.ParseBatch("|battle.turn|1"), 0)
	log.Reset()
	assert.Empty(t, log.Entries())
}

func TestEntriesReturnsCopy(t *testing.T) {
	log := New(0)
	log.Append(parser.ParseBatch("|battle.turn|1"), 0)

	entries := log.Entries()
	entries[0].Text = "mutated"
	assert.NotEqual(t, "mutated", log.Entries()[0].Text)
}

func TestRenderHTML(t *testing.T) {
	log := New(0)
	log.Append(parser.ParseBatch("|battle.turn|1\n|battle.move.used|Mew|<Psychic>"), 0)

	out := log.RenderHTML(0)
	assert.Contains(t, out, "log-turn")
	assert.Contains(t, out, "&lt;Psychic&gt;", "entry text must be escaped")

	// A limit keeps only the newest entries.
	out = log.RenderHTML(1)
	assert.NotContains(t, out, "Turn 1")
	assert.Contains(t, out, "Mew used")
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		key  string
		want Category
	}{
		{"battle.turn", CategoryTurn},
		{"battle.win", CategoryTurn},
		{"battle.lose", CategoryTurn},
		{"battle.move.used", CategoryMove},
		{"battle.crit", CategoryMove},
		{"battle.fainted", CategoryHP},
		{"battle.damage.poison", CategoryHP},
		{"battle.heal.hp", CategoryHealing},
		{"battle.leftovers", CategoryHealing},
		{"battle.stat.raised.z2", CategoryEffect},
		{"battle.item.eat", CategoryEffect},
		{"battle.rain.start", CategoryField},
		{"battle.grassyterrain.start", CategoryField},
		{"battle.stealthrock.start", CategoryField},
		// "room" must win over "trick" so Trick Room is a field event while
		// the item-swapping move stays an effect.
		{"battle.trickroom.start", CategoryField},
		{"battle.trick", CategoryEffect},
		{"battle.taunt.start", CategoryEffect},
		{"battle.ability.pressure", CategoryOther},
		{"battle.chat", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.key))
		})
	}
}

func TestStampTurnsWithoutMarkers(t *testing.T) {
	batch := parser.ParseBatch("|battle.move.used|Mew|Psychic\n|battle.crit")
	assert.Equal(t, []int{7, 7}, stampTurns(batch, 7))
}

func TestStampTurnsIgnoresMalformedMarker(t *testing.T) {
	batch := parser.ParseBatch("|battle.turn|soon\n|battle.crit")
	assert.Equal(t, []int{2, 2}, stampTurns(batch, 2))
}
