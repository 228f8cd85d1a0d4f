package game

import (
	"log/slog"
	"sync"

	"battlelens/data"
	"battlelens/roster"
)

const (
	minStage = -6
	maxStage = 6
)

// Tracker owns the reconstructed battle state. All mutations enter through
// Apply; reads return copies so a renderer never observes a half-applied
// operation. It is never authoritative: when the host knows better (live HP,
// status), that source wins over anything inferred here.
type Tracker struct {
	mu       sync.RWMutex
	st       *battleState
	tieBreak roster.TieBreak
	log      *slog.Logger
}

// NewTracker creates a tracker with empty state for the given battle.
func NewTracker(battleID string, tieBreak roster.TieBreak, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{
		st:       newBattleState(battleID, tieBreak),
		tieBreak: tieBreak,
		log:      log,
	}
}

// Reset discards all per-battle state and starts tracking a new battle ID.
// The state value is replaced wholesale, so trailing events from the old
// battle fail the ID guard instead of racing the new state.
func (t *Tracker) Reset(battleID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.st = newBattleState(battleID, t.tieBreak)
}

// BattleID returns the battle currently being tracked.
func (t *Tracker) BattleID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.st.battleID
}

// RegisterCombatant keeps the name index current with an in-battle combatant.
// Called repeatedly (once per frame per visible combatant) and idempotent. The
// first registration into a side with a parked baton-pass payload, whether a
// brand-new identity or a re-entering one, receives the transferred stat
// stages and volatile statuses.
func (t *Tracker) RegisterCombatant(battleID string, id roster.ID, name string, side roster.Side) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.guard(battleID) {
		return
	}

	t.st.roster.Register(id, name, side)

	c, known := t.st.combatants[id]
	if !known {
		c = newCombatant(id)
		t.st.combatants[id] = c
	}
	if pending := t.st.sides[side].pending; pending != nil && pending.turn == t.st.turn {
		for stat, stage := range pending.stages {
			c.stages[stat] = stage
		}
		for kind, v := range pending.volatiles {
			c.volatiles[kind] = v
		}
		t.st.sides[side].pending = nil
	}
}

// RegisterPlayer indexes a trainer name so side-scoped events and possessive
// name forms can be attributed to a side.
func (t *Tracker) RegisterPlayer(battleID, name string, side roster.Side) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.guard(battleID) {
		return
	}
	t.st.roster.RegisterPlayer(name, side)
}

// guard drops mutations tagged with a stale battle ID.
func (t *Tracker) guard(battleID string) bool {
	if battleID != t.st.battleID {
		t.log.Debug("dropping event from stale battle",
			"got", battleID, "tracking", t.st.battleID)
		return false
	}
	return true
}

// Apply executes one operation against the battle state. Operations that
// reference a combatant the roster cannot resolve are dropped silently; that
// is steady-state behavior, not an error. Apply never panics out of a batch.
func (t *Tracker) Apply(battleID string, op Operation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.guard(battleID) {
		return
	}

	st := t.st
	switch op := op.(type) {
	case SetWeather:
		st.weather = &weatherState{
			kind:        op.Kind,
			timedEffect: newTimedEffect(st.turn, data.WeatherLifetime(op.Kind)),
		}
	case ClearWeather:
		st.weather = nil
	case SetTerrain:
		st.terrain = &terrainState{
			kind:        op.Kind,
			timedEffect: newTimedEffect(st.turn, data.TerrainLifetime(op.Kind)),
		}
	case ClearTerrain:
		st.terrain = nil
	case SetFieldCondition:
		eff := newTimedEffect(st.turn, data.FieldLifetime(op.Kind))
		st.field[op.Kind] = &eff
	case ClearFieldCondition:
		delete(st.field, op.Kind)
	case SetSideCondition:
		t.applySetSideCondition(op)
	case ClearSideCondition:
		if side, ok := st.roster.SideOf(op.Owner); ok {
			delete(st.sides[side].conditions, op.Kind)
		} else {
			t.log.Debug("side condition owner not resolved", "owner", op.Owner, "kind", op.Kind)
		}
	case StatDelta:
		if c := t.combatantByName(op.Name); c != nil {
			c.stages[op.Stat] = clampStage(c.stages[op.Stat] + op.Delta)
		}
	case SetStatStage:
		if c := t.combatantByName(op.Name); c != nil {
			c.stages[op.Stat] = clampStage(op.Stage)
		}
	case ClearStats:
		if c := t.combatantByName(op.Name); c != nil {
			c.stages = make(map[data.StatKind]int)
		}
	case InvertStats:
		if c := t.combatantByName(op.Name); c != nil {
			for stat, stage := range c.stages {
				c.stages[stat] = -stage
			}
		}
	case SwapStats:
		a := t.combatantByName(op.NameA)
		b := t.combatantByName(op.NameB)
		if a != nil && b != nil && a != b {
			swapStages(a, b, op.Subset)
		}
	case CopyStats:
		copier := t.combatantByName(op.Copier)
		source := t.combatantByName(op.Source)
		if copier != nil && source != nil && copier != source {
			copier.stages = make(map[data.StatKind]int, len(source.stages))
			for stat, stage := range source.stages {
				copier.stages[stat] = stage
			}
		}
	case SetVolatile:
		if c := t.combatantByName(op.Name); c != nil {
			c.volatiles[op.Kind] = volatileStatus{kind: op.Kind, startTurn: max(1, st.turn)}
		}
	case ClearVolatile:
		if c := t.combatantByName(op.Name); c != nil {
			delete(c.volatiles, op.Kind)
		}
	case ItemReveal:
		if c := t.combatantByName(op.Name); c != nil {
			c.item = &Item{Name: op.Item, Status: ItemStatusHeld}
		}
	case ItemTransfer:
		// Each half stands on its own: the transfer event publicly showed the
		// giver losing the item, so that is recorded even when the receiver
		// does not resolve.
		from := t.combatantByName(op.From)
		to := t.combatantByName(op.To)
		if from != nil {
			from.item = nil
		}
		if to != nil {
			to.item = &Item{Name: op.Item, Status: ItemStatusHeld}
		}
	case ItemConsumed:
		if c := t.combatantByName(op.Name); c != nil {
			status := op.Status
			if data.IsBerry(op.Item) {
				status = ItemStatusConsumed
			}
			c.item = &Item{Name: op.Item, Status: status}
		}
	case AdvanceTurn:
		t.applyAdvanceTurn(op.N)
	case Faint:
		t.applyFaint(op.Name)
	case Switch:
		t.applySwitch(op.Name)
	case Transform:
		t.applyTransform(op.Transformer, op.Target)
	}
}

func (t *Tracker) applySetSideCondition(op SetSideCondition) {
	st := t.st
	side, ok := st.roster.SideOf(op.Owner)
	if !ok {
		t.log.Debug("side condition owner not resolved", "owner", op.Owner, "kind", op.Kind)
		return
	}

	conds := st.sides[side].conditions
	maxStacks := data.SideStackCap(op.Kind)
	if existing, ok := conds[op.Kind]; ok {
		if maxStacks > 1 {
			if existing.stacks < maxStacks {
				existing.stacks++
			}
			return
		}
		// Duplicate start for a non-stacking condition: refresh the start
		// turn. The engine is not known to ever emit this.
		existing.timedEffect = newTimedEffect(st.turn, data.SideLifetime(op.Kind))
		return
	}
	conds[op.Kind] = &sideCondition{
		kind:        op.Kind,
		stacks:      1,
		timedEffect: newTimedEffect(st.turn, data.SideLifetime(op.Kind)),
	}
}

// applyAdvanceTurn sets the turn counter and re-evaluates every active timed
// effect's confirmed-extended flag. This is the only place the flag flips, so
// duration queries stay side-effect free.
func (t *Tracker) applyAdvanceTurn(n int) {
	st := t.st
	st.turn = n

	if st.weather != nil && st.weather.outlivedMinimum(n) {
		st.weather.confirmedExtended = true
	}
	if st.terrain != nil && st.terrain.outlivedMinimum(n) {
		st.terrain.confirmedExtended = true
	}
	for _, eff := range st.field {
		if eff.outlivedMinimum(n) {
			eff.confirmedExtended = true
		}
	}
	for _, side := range st.sides {
		for _, cond := range side.conditions {
			if cond.outlivedMinimum(n) {
				cond.confirmedExtended = true
			}
		}
		// A baton-pass payload only survives within its own turn.
		if side.pending != nil && side.pending.turn != n {
			side.pending = nil
		}
	}
}

func (t *Tracker) applyFaint(name string) {
	st := t.st
	id, ok := st.roster.Resolve(name)
	if !ok {
		t.log.Debug("faint target not resolved", "name", name)
		return
	}
	c, ok := st.combatants[id]
	if !ok {
		return
	}
	c.ko = true
	c.stages = make(map[data.StatKind]int)
	c.volatiles = make(map[data.VolatileKind]volatileStatus)
	t.revertForm(c)
}

func (t *Tracker) applySwitch(name string) {
	st := t.st
	id, ok := st.roster.Resolve(name)
	if !ok {
		t.log.Debug("switch target not resolved", "name", name)
		return
	}
	c, ok := st.combatants[id]
	if !ok {
		return
	}

	if _, passing := c.volatiles[data.VolatileBatonPass]; passing {
		if side, ok := st.roster.SideOfID(id); ok {
			payload := &transferPayload{
				turn:      st.turn,
				stages:    c.stages,
				volatiles: c.volatiles,
			}
			delete(payload.volatiles, data.VolatileBatonPass)
			st.sides[side].pending = payload
		}
	}

	c.stages = make(map[data.StatKind]int)
	c.volatiles = make(map[data.VolatileKind]volatileStatus)
	t.revertForm(c)
}

func (t *Tracker) applyTransform(transformer, target string) {
	st := t.st
	id, ok := st.roster.Resolve(transformer)
	if !ok {
		t.log.Debug("transform user not resolved", "name", transformer)
		return
	}
	c, ok := st.combatants[id]
	if !ok {
		return
	}

	if !c.transformed {
		// Only the first transform captures the true form; re-transforming
		// while already transformed must not overwrite it.
		c.originalForm = st.roster.DisplayName(id)
		c.transformed = true
	}

	targetName := target
	if targetID, ok := st.roster.Resolve(target); ok {
		targetName = st.roster.DisplayName(targetID)
	}
	if side, ok := st.roster.SideOfID(id); ok {
		st.roster.Register(id, targetName, side)
	}
}

// revertForm restores a transformed combatant's true form in the name index.
func (t *Tracker) revertForm(c *combatant) {
	if !c.transformed {
		return
	}
	if side, ok := t.st.roster.SideOfID(c.id); ok {
		t.st.roster.Register(c.id, c.originalForm, side)
	}
	c.transformed = false
	c.originalForm = ""
}

// combatantByName resolves a display name and returns its state, or nil when
// the name matches nothing. Callers treat nil as "drop the operation".
func (t *Tracker) combatantByName(name string) *combatant {
	id, ok := t.st.roster.Resolve(name)
	if !ok {
		t.log.Debug("combatant not resolved", "name", name)
		return nil
	}
	c, ok := t.st.combatants[id]
	if !ok {
		t.log.Debug("combatant resolved but not registered", "name", name)
		return nil
	}
	return c
}

func swapStages(a, b *combatant, subset []data.StatKind) {
	stats := subset
	if stats == nil {
		stats = data.AllStats
	}
	for _, stat := range stats {
		a.stages[stat], b.stages[stat] = b.stages[stat], a.stages[stat]
	}
}

func clampStage(stage int) int {
	if stage > maxStage {
		return maxStage
	}
	if stage < minStage {
		return minStage
	}
	return stage
}
