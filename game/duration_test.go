package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"battlelens/data"
)

func TestRemainingString(t *testing.T) {
	assert.Equal(t, "3", Remaining{Min: 3, Max: 3}.String())
	assert.Equal(t, "2-5", Remaining{Min: 2, Max: 5}.String())
}

func TestTimedEffectRemaining(t *testing.T) {
	extendable := data.Lifetime{Min: 5, Max: 8}
	fixed := data.Lifetime{Min: 4, Max: 4}

	tests := []struct {
		name      string
		effect    timedEffect
		turn      int
		want      Remaining
		wantTimed bool
	}{
		{
			name:      "untimed effect",
			effect:    timedEffect{startTurn: 1},
			turn:      3,
			wantTimed: false,
		},
		{
			name:      "extendable within minimum is a range",
			effect:    timedEffect{startTurn: 1, lifetime: extendable},
			turn:      3,
			want:      Remaining{Min: 2, Max: 5},
			wantTimed: true,
		},
		{
			name:      "extendable past minimum is exact",
			effect:    timedEffect{startTurn: 1, lifetime: extendable},
			turn:      6,
			want:      Remaining{Min: 2, Max: 2},
			wantTimed: true,
		},
		{
			name:      "confirmed extension is exact early",
			effect:    timedEffect{startTurn: 4, lifetime: extendable, confirmedExtended: true},
			turn:      5,
			want:      Remaining{Min: 6, Max: 6},
			wantTimed: true,
		},
		{
			name:      "fixed lifetime is exact from the start",
			effect:    timedEffect{startTurn: 2, lifetime: fixed},
			turn:      2,
			want:      Remaining{Min: 3, Max: 3},
			wantTimed: true,
		},
		{
			name:      "never reports below one while active",
			effect:    timedEffect{startTurn: 1, lifetime: fixed},
			turn:      9,
			want:      Remaining{Min: 1, Max: 1},
			wantTimed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.effect.remaining(tt.turn)
			assert.Equal(t, tt.wantTimed, ok)
			if tt.wantTimed {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestOutlivedMinimum(t *testing.T) {
	extendable := data.Lifetime{Min: 5, Max: 8}
	fixed := data.Lifetime{Min: 5, Max: 5}

	eff := timedEffect{startTurn: 1, lifetime: extendable}
	assert.False(t, eff.outlivedMinimum(4))
	assert.True(t, eff.outlivedMinimum(5))

	// Fixed lifetimes have no extension to confirm.
	assert.False(t, timedEffect{startTurn: 1, lifetime: fixed}.outlivedMinimum(9))
	assert.False(t, timedEffect{startTurn: 1}.outlivedMinimum(9))
}

func TestNewTimedEffectClampsStartTurn(t *testing.T) {
	eff := newTimedEffect(0, data.Lifetime{Min: 5, Max: 8})
	assert.Equal(t, 1, eff.startTurn)

	eff = newTimedEffect(3, data.Lifetime{Min: 5, Max: 8})
	assert.Equal(t, 3, eff.startTurn)
}
