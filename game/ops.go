package game

import "battlelens/data"

// Operation is a typed battle-state mutation produced by the classifier and
// consumed by the Tracker. The variant set is closed: every mutation the
// tracker can perform has exactly one operation type here.
type Operation interface {
	isOperation()
}

type SetWeather struct {
	Kind data.WeatherKind
}

type ClearWeather struct{}

type SetTerrain struct {
	Kind data.TerrainKind
}

type ClearTerrain struct{}

type SetFieldCondition struct {
	Kind data.FieldConditionKind
}

type ClearFieldCondition struct {
	Kind data.FieldConditionKind
}

// SetSideCondition starts (or stacks) a condition on the side owned by Owner.
// Owner is a trainer or combatant display name; the tracker resolves it to a
// side.
type SetSideCondition struct {
	Owner string
	Kind  data.SideConditionKind
}

type ClearSideCondition struct {
	Owner string
	Kind  data.SideConditionKind
}

type StatDelta struct {
	Name  string
	Stat  data.StatKind
	Delta int
}

// SetStatStage overwrites a single stage outright ("maxed its Attack").
type SetStatStage struct {
	Name  string
	Stat  data.StatKind
	Stage int
}

type ClearStats struct {
	Name string
}

type InvertStats struct {
	Name string
}

// SwapStats exchanges stage values between two combatants. A nil Subset swaps
// the full stat set. The classifier fills NameB from its last-target context
// when the event only names one combatant.
type SwapStats struct {
	NameA  string
	NameB  string
	Subset []data.StatKind
}

type CopyStats struct {
	Copier string
	Source string
}

type SetVolatile struct {
	Name string
	Kind data.VolatileKind
}

type ClearVolatile struct {
	Name string
	Kind data.VolatileKind
}

type ItemReveal struct {
	Name string
	Item string
}

type ItemTransfer struct {
	From string
	To   string
	Item string
}

type ItemConsumed struct {
	Name   string
	Item   string
	Status ItemStatus
}

type AdvanceTurn struct {
	N int
}

type Faint struct {
	Name string
}

// Switch records a combatant leaving active play. Entry of the replacement is
// observed through RegisterCombatant.
type Switch struct {
	Name string
}

type Transform struct {
	Transformer string
	Target      string
}

func (SetWeather) isOperation()          {}
func (ClearWeather) isOperation()        {}
func (SetTerrain) isOperation()          {}
func (ClearTerrain) isOperation()        {}
func (SetFieldCondition) isOperation()   {}
func (ClearFieldCondition) isOperation() {}
func (SetSideCondition) isOperation()    {}
func (ClearSideCondition) isOperation()  {}
func (StatDelta) isOperation()           {}
func (SetStatStage) isOperation()        {}
func (ClearStats) isOperation()          {}
func (InvertStats) isOperation()         {}
func (SwapStats) isOperation()           {}
func (CopyStats) isOperation()           {}
func (SetVolatile) isOperation()         {}
func (ClearVolatile) isOperation()       {}
func (ItemReveal) isOperation()          {}
func (ItemTransfer) isOperation()        {}
func (ItemConsumed) isOperation()        {}
func (AdvanceTurn) isOperation()         {}
func (Faint) isOperation()               {}
func (Switch) isOperation()              {}
func (Transform) isOperation()           {}
