package game

import (
	"sort"

	"battlelens/data"
	"battlelens/roster"
)

// WeatherInfo is the active weather with its inferred remaining duration.
type WeatherInfo struct {
	Kind      data.WeatherKind
	Remaining Remaining
}

type TerrainInfo struct {
	Kind      data.TerrainKind
	Remaining Remaining
}

type FieldConditionInfo struct {
	Kind      data.FieldConditionKind
	Remaining Remaining
}

// SideConditionInfo describes one side condition. Remaining is nil for
// untimed conditions (hazards).
type SideConditionInfo struct {
	Kind      data.SideConditionKind
	Stacks    int
	Remaining *Remaining
}

// VolatileInfo describes one volatile status. Remaining is nil for statuses
// with no known countdown.
type VolatileInfo struct {
	Kind      data.VolatileKind
	Remaining *Remaining
}

// CombatantInfo is the renderer-facing view of one tracked combatant.
type CombatantInfo struct {
	ID          roster.ID
	Name        string
	Side        roster.Side
	KO          bool
	Transformed bool
}

// CurrentTurn returns the last turn marker observed, 0 before the first.
func (t *Tracker) CurrentTurn() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.st.turn
}

// Weather returns the active weather, if any.
func (t *Tracker) Weather() (WeatherInfo, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.st.weather == nil {
		return WeatherInfo{}, false
	}
	rem, _ := t.st.weather.remaining(t.st.turn)
	return WeatherInfo{Kind: t.st.weather.kind, Remaining: rem}, true
}

// Terrain returns the active terrain, if any.
func (t *Tracker) Terrain() (TerrainInfo, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.st.terrain == nil {
		return TerrainInfo{}, false
	}
	rem, _ := t.st.terrain.remaining(t.st.turn)
	return TerrainInfo{Kind: t.st.terrain.kind, Remaining: rem}, true
}

// FieldConditions returns the active field-global conditions, sorted by kind.
func (t *Tracker) FieldConditions() []FieldConditionInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]FieldConditionInfo, 0, len(t.st.field))
	for kind, eff := range t.st.field {
		rem, _ := eff.remaining(t.st.turn)
		out = append(out, FieldConditionInfo{Kind: kind, Remaining: rem})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// SideConditions returns the conditions active on one side.
func (t *Tracker) SideConditions(side roster.Side) map[data.SideConditionKind]SideConditionInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[data.SideConditionKind]SideConditionInfo)
	for kind, cond := range t.st.sides[side].conditions {
		info := SideConditionInfo{Kind: kind, Stacks: cond.stacks}
		if rem, ok := cond.remaining(t.st.turn); ok {
			r := rem
			info.Remaining = &r
		}
		out[kind] = info
	}
	return out
}

// StatStages returns the full stage map for a combatant, zeros included.
func (t *Tracker) StatStages(id roster.ID) map[data.StatKind]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[data.StatKind]int, len(data.AllStats))
	c := t.st.combatants[id]
	for _, stat := range data.AllStats {
		if c != nil {
			out[stat] = c.stages[stat]
		} else {
			out[stat] = 0
		}
	}
	return out
}

// VolatileStatuses returns the active volatile statuses for a combatant,
// sorted by kind.
func (t *Tracker) VolatileStatuses(id roster.ID) []VolatileInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := t.st.combatants[id]
	if c == nil {
		return nil
	}
	out := make([]VolatileInfo, 0, len(c.volatiles))
	for kind, v := range c.volatiles {
		info := VolatileInfo{Kind: kind}
		if d := data.VolatileDuration(kind); d > 0 {
			left := d - (t.st.turn - v.startTurn)
			if left < 1 {
				left = 1
			}
			info.Remaining = &Remaining{Min: left, Max: left}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// TrackedItem returns the combatant's tracked item, if one has been observed.
func (t *Tracker) TrackedItem(id roster.ID) (Item, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := t.st.combatants[id]
	if c == nil || c.item == nil {
		return Item{}, false
	}
	return *c.item, true
}

// IsKO reports whether the combatant has fainted this battle.
func (t *Tracker) IsKO(id roster.ID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c := t.st.combatants[id]
	return c != nil && c.ko
}

// Combatants returns every tracked combatant, sorted by side then name.
func (t *Tracker) Combatants() []CombatantInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]CombatantInfo, 0, len(t.st.combatants))
	for id, c := range t.st.combatants {
		side, _ := t.st.roster.SideOfID(id)
		out = append(out, CombatantInfo{
			ID:          id,
			Name:        t.st.roster.DisplayName(id),
			Side:        side,
			KO:          c.ko,
			Transformed: c.transformed,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Side != out[j].Side {
			return out[i].Side < out[j].Side
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Resolve exposes name resolution for read-side callers.
func (t *Tracker) Resolve(name string) (roster.ID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.st.roster.Resolve(name)
}
