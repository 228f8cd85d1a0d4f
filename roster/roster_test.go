package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndResolve(t *testing.T) {
	r := New(TieBreakRecentActive)
	id := NewID()
	r.Register(id, "Tyranitar", SideSelf)

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"exact", "Tyranitar", true},
		{"case folded", "tyranitar", true},
		{"upper", "TYRANITAR", true},
		{"surrounding space", "  Tyranitar ", true},
		{"unknown", "Garchomp", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.query)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, id, got)
			}
		})
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := New(TieBreakRecentActive)
	id := NewID()
	r.Register(id, "Mew", SideSelf)
	r.Register(id, "Mew", SideSelf)
	r.Register(id, "mew", SideSelf)

	got, ok := r.Resolve("Mew")
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, "Mew", r.DisplayName(id))
}

func TestReRegisterMovesNameIndex(t *testing.T) {
	r := New(TieBreakRecentActive)
	id := NewID()
	r.Register(id, "Ditto", SideSelf)
	r.Register(id, "Tyranitar", SideSelf)

	_, ok := r.Resolve("Ditto")
	assert.False(t, ok, "old name must be unindexed")

	got, ok := r.Resolve("Tyranitar")
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, "Tyranitar", r.DisplayName(id))
}

func TestPossessiveResolution(t *testing.T) {
	r := New(TieBreakRecentActive)
	r.RegisterPlayer("Alice", SideSelf)
	id := NewID()
	r.Register(id, "Tyranitar", SideSelf)

	got, ok := r.Resolve("Alice's Tyranitar")
	require.True(t, ok)
	assert.Equal(t, id, got)

	// An unknown owner prefix still falls back to the bare name.
	got, ok = r.Resolve("Somebody's Tyranitar")
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestMirrorMatchOwnerHintWins(t *testing.T) {
	r := New(TieBreakRecentActive)
	r.RegisterPlayer("Alice", SideSelf)
	r.RegisterPlayer("Bob", SideOpponent)

	mine := NewID()
	theirs := NewID()
	r.Register(mine, "Tyranitar", SideSelf)
	r.Register(theirs, "Tyranitar", SideOpponent)

	got, ok := r.Resolve("Alice's Tyranitar")
	require.True(t, ok)
	assert.Equal(t, mine, got)

	got, ok = r.Resolve("Bob's Tyranitar")
	require.True(t, ok)
	assert.Equal(t, theirs, got)
}

func TestMirrorMatchRecentActiveTieBreak(t *testing.T) {
	r := New(TieBreakRecentActive)
	mine := NewID()
	theirs := NewID()
	r.Register(mine, "Tyranitar", SideSelf)
	r.Register(theirs, "Tyranitar", SideOpponent)

	// The later registration is the more recently active one.
	got, ok := r.Resolve("Tyranitar")
	require.True(t, ok)
	assert.Equal(t, theirs, got)

	r.MarkActive(mine)
	got, ok = r.Resolve("Tyranitar")
	require.True(t, ok)
	assert.Equal(t, mine, got)
}

func TestMirrorMatchFirstRegisteredTieBreak(t *testing.T) {
	r := New(TieBreakFirstRegistered)
	mine := NewID()
	theirs := NewID()
	r.Register(mine, "Tyranitar", SideSelf)
	r.Register(theirs, "Tyranitar", SideOpponent)
	r.MarkActive(theirs)

	got, ok := r.Resolve("Tyranitar")
	require.True(t, ok)
	assert.Equal(t, mine, got)
}

func TestSideOf(t *testing.T) {
	r := New(TieBreakRecentActive)
	r.RegisterPlayer("Alice", SideSelf)
	r.Register(NewID(), "Tyranitar", SideOpponent)

	tests := []struct {
		name  string
		query string
		side  Side
		found bool
	}{
		{"player name", "Alice", SideSelf, true},
		{"player name folded", "alice", SideSelf, true},
		{"combatant name", "Tyranitar", SideOpponent, true},
		{"possessive player", "Alice's Espeon", SideSelf, true},
		{"possessive combatant", "Somebody's Tyranitar", SideOpponent, true},
		{"unknown", "Garchomp", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, ok := r.SideOf(tt.query)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.side, side)
			}
		})
	}
}

func TestSideOfID(t *testing.T) {
	r := New(TieBreakRecentActive)
	id := NewID()
	r.Register(id, "Mew", SideSelf)

	side, ok := r.SideOfID(id)
	require.True(t, ok)
	assert.Equal(t, SideSelf, side)

	_, ok = r.SideOfID(NewID())
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	r := New(TieBreakRecentActive)
	r.RegisterPlayer("Alice", SideSelf)
	r.Register(NewID(), "Mew", SideSelf)
	r.Reset()

	_, ok := r.Resolve("Mew")
	assert.False(t, ok)
	_, ok = r.SideOf("Alice")
	assert.False(t, ok)
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, SideOpponent, Opposite(SideSelf))
	assert.Equal(t, SideSelf, Opposite(SideOpponent))
}

func TestBlankNameIgnored(t *testing.T) {
	r := New(TieBreakRecentActive)
	r.Register(NewID(), "   ", SideSelf)
	_, ok := r.Resolve("   ")
	assert.False(t, ok)
}
