package game

import (
	"battlelens/data"
	"battlelens/roster"
)

// ItemStatus is what the observer currently believes about a tracked item.
type ItemStatus string

const (
	ItemStatusHeld       ItemStatus = "held"
	ItemStatusConsumed   ItemStatus = "consumed"
	ItemStatusKnockedOff ItemStatus = "knocked-off"
	ItemStatusStolen     ItemStatus = "stolen"
)

// timedEffect is the shared bookkeeping for anything whose remaining duration
// is inferred from turn deltas.
type timedEffect struct {
	startTurn int
	lifetime  data.Lifetime
	// confirmedExtended flips once the effect outlives its minimum lifetime,
	// implying an unseen extension item. Sticky until the effect ends.
	confirmedExtended bool
}

func newTimedEffect(turn int, lifetime data.Lifetime) timedEffect {
	if turn < 1 {
		// Set up before the first turn marker is indistinguishable from set up
		// on turn 1 and must not show as already expired.
		turn = 1
	}
	return timedEffect{startTurn: turn, lifetime: lifetime}
}

type weatherState struct {
	kind data.WeatherKind
	timedEffect
}

type terrainState struct {
	kind data.TerrainKind
	timedEffect
}

type sideCondition struct {
	kind   data.SideConditionKind
	stacks int
	timedEffect
}

type volatileStatus struct {
	kind      data.VolatileKind
	startTurn int
}

// Item is a tracked held item as exposed to renderers.
type Item struct {
	Name   string
	Status ItemStatus
}

type combatant struct {
	id           roster.ID
	stages       map[data.StatKind]int
	volatiles    map[data.VolatileKind]volatileStatus
	item         *Item
	ko           bool
	transformed  bool
	originalForm string
}

func newCombatant(id roster.ID) *combatant {
	return &combatant{
		id:        id,
		stages:    make(map[data.StatKind]int),
		volatiles: make(map[data.VolatileKind]volatileStatus),
	}
}

// transferPayload holds stat stages and volatile statuses parked by a
// baton-pass style switch, waiting for the side's next active combatant.
type transferPayload struct {
	turn      int
	stages    map[data.StatKind]int
	volatiles map[data.VolatileKind]volatileStatus
}

type sideState struct {
	conditions map[data.SideConditionKind]*sideCondition
	pending    *transferPayload
}

func newSideState() *sideState {
	return &sideState{conditions: make(map[data.SideConditionKind]*sideCondition)}
}

// battleState is all per-battle state. A reset replaces the whole value, so a
// trailing mutation from a stale battle can never touch the new one.
type battleState struct {
	battleID   string
	turn       int
	weather    *weatherState
	terrain    *terrainState
	field      map[data.FieldConditionKind]*timedEffect
	sides      map[roster.Side]*sideState
	combatants map[roster.ID]*combatant
	roster     *roster.Roster
}

func newBattleState(battleID string, tieBreak roster.TieBreak) *battleState {
	return &battleState{
		battleID: battleID,
		field:    make(map[data.FieldConditionKind]*timedEffect),
		sides: map[roster.Side]*sideState{
			roster.SideSelf:     newSideState(),
			roster.SideOpponent: newSideState(),
		},
		combatants: make(map[roster.ID]*combatant),
		roster:     roster.New(tieBreak),
	}
}
