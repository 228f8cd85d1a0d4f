package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Event
		ok   bool
	}{
		{
			name: "key only",
			line: "|battle.crit",
			want: Event{Key: "battle.crit"},
			ok:   true,
		},
		{
			name: "text args",
			line: "|battle.move.used|Mew|Psychic",
			want: Event{Key: "battle.move.used", Args: []Arg{
				{Kind: ArgText, Text: "Mew"},
				{Kind: ArgText, Text: "Psychic"},
			}},
			ok: true,
		},
		{
			name: "numeric arg",
			line: "|battle.turn|3",
			want: Event{Key: "battle.turn", Args: []Arg{
				{Kind: ArgNumber, Number: 3},
			}},
			ok: true,
		},
		{
			name: "leading whitespace",
			line: "  |battle.crit",
			want: Event{Key: "battle.crit"},
			ok:   true,
		},
		{name: "empty line", line: "", ok: false},
		{name: "no pipe", line: "chat message", ok: false},
		{name: "empty key", line: "||something", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseBatch(t *testing.T) {
	raw := "|battle.turn|1\n\nnot an event\n|battle.move.used|Mew|Psychic\n"
	events := ParseBatch(raw)
	require.Len(t, events, 2)
	assert.Equal(t, "battle.turn", events[0].Key)
	assert.Equal(t, "battle.move.used", events[1].Key)
}

func TestArgAccessors(t *testing.T) {
	ev, ok := ParseLine("|battle.turn|7|extra")
	require.True(t, ok)

	n, ok := ev.Args[0].Int()
	require.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = ev.Args[1].Int()
	assert.False(t, ok)

	assert.Equal(t, "7", ev.Arg(0))
	assert.Equal(t, "extra", ev.Arg(1))
	assert.Equal(t, "", ev.Arg(2))
	assert.Equal(t, "", ev.Arg(-1))
}

func TestNestedObjectArgIsFlattened(t *testing.T) {
	ev, ok := ParseLine(`|battle.move.used|Mew|{"key":"move.thunderbolt","args":[]}`)
	require.True(t, ok)
	require.Len(t, ev.Args, 2)
	assert.Equal(t, ArgRaw, ev.Args[1].Kind)
	assert.Equal(t, "thunderbolt", ev.Args[1].Text)
}

func TestDeeplyNestedObjectArg(t *testing.T) {
	line := `|battle.item.reveal|Mew|{"key":"battle.fainted","args":[{"key":"pokemon.espeon","args":[]}]}`
	ev, ok := ParseLine(line)
	require.True(t, ok)
	// The inner object resolves first, then feeds the outer template.
	assert.Equal(t, "espeon fainted!", ev.Args[1].Text)
}

func TestMalformedObjectArgKeptAsText(t *testing.T) {
	ev, ok := ParseLine(`|battle.move.used|Mew|{"not":"structured text"}`)
	require.True(t, ok)
	assert.Equal(t, ArgText, ev.Args[1].Kind)
	assert.Equal(t, `{"not":"structured text"}`, ev.Args[1].Text)
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"templated", "|battle.move.used|Mew|Psychic", "Mew used Psychic!"},
		{"templated no args", "|battle.rain.start", "It started to rain!"},
		{"numeric arg", "|battle.turn|4", "== Turn 4 =="},
		{"missing args padded", "|battle.move.used|Mew", "Mew used ?!"},
		{"unknown key humanized", "|battle.ability.pressure|Mew", "pressure: Mew"},
		{"unknown key no args", "|battle.upkeep", "upkeep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := ParseLine(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, RenderText(ev))
		})
	}
}
