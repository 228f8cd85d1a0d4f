package parser

import (
	"strconv"
	"strings"

	"battlelens/data"
	"battlelens/game"
)

// Classifier maps event keys to typed battle operations. The key-to-operation
// mapping is a static table plus a small set of prefix rules; unknown keys
// classify to no operation, which is correct behavior because the upstream
// vocabulary is large and grows.
//
// The classifier keeps one piece of per-battle mutable state: the last move's
// user, name and target, because some events (single-argument stat swaps)
// omit the target and rely on that context.
type Classifier struct {
	lastMoveUser   string
	lastMoveName   string
	lastMoveTarget string
}

func NewClassifier() *Classifier { return &Classifier{} }

// Reset clears the move context. Called on battle reset.
func (c *Classifier) Reset() {
	c.lastMoveUser = ""
	c.lastMoveName = ""
	c.lastMoveTarget = ""
}

// Classify turns one event into at most one operation. Events below their
// operation's required arity, and events outside the known vocabulary,
// classify to no operation.
func (c *Classifier) Classify(ev Event) (game.Operation, bool) {
	if build, ok := opTable[ev.Key]; ok {
		return build(c, ev)
	}
	for _, rule := range prefixRules {
		if suffix, ok := strings.CutPrefix(ev.Key, rule.prefix); ok {
			return rule.build(c, suffix, ev)
		}
	}
	return nil, false
}

type builder func(c *Classifier, ev Event) (game.Operation, bool)

type prefixRule struct {
	prefix string
	build  func(c *Classifier, suffix string, ev Event) (game.Operation, bool)
}

// names extracts the first n argument display strings, failing when the
// event carries fewer arguments than the operation family requires.
func names(ev Event, n int) ([]string, bool) {
	if len(ev.Args) < n {
		return nil, false
	}
	out := make([]string, n)
	for i := range out {
		out[i] = ev.Args[i].String()
	}
	return out, true
}

var weatherStems = map[string]data.WeatherKind{
	"battle.rain":      data.WeatherRain,
	"battle.sunny":     data.WeatherSun,
	"battle.sandstorm": data.WeatherSandstorm,
	"battle.hail":      data.WeatherHail,
	"battle.snow":      data.WeatherSnow,
}

var terrainStems = map[string]data.TerrainKind{
	"battle.electricterrain": data.TerrainElectric,
	"battle.grassyterrain":   data.TerrainGrassy,
	"battle.mistyterrain":    data.TerrainMisty,
	"battle.psychicterrain":  data.TerrainPsychic,
}

var fieldStems = map[string]data.FieldConditionKind{
	"battle.trickroom":  data.FieldTrickRoom,
	"battle.gravity":    data.FieldGravity,
	"battle.magicroom":  data.FieldMagicRoom,
	"battle.wonderroom": data.FieldWonderRoom,
}

var sideStems = map[string]data.SideConditionKind{
	"battle.reflect":     data.SideReflect,
	"battle.lightscreen": data.SideLightScreen,
	"battle.auroraveil":  data.SideAuroraVeil,
	"battle.tailwind":    data.SideTailwind,
	"battle.safeguard":   data.SideSafeguard,
	"battle.mist":        data.SideMist,
	"battle.spikes":      data.SideSpikes,
	"battle.toxicspikes": data.SideToxicSpikes,
	"battle.stealthrock": data.SideStealthRock,
	"battle.stickyweb":   data.SideStickyWeb,
}

var volatileStems = map[string]data.VolatileKind{
	"battle.confusion":  data.VolatileConfusion,
	"battle.taunt":      data.VolatileTaunt,
	"battle.encore":     data.VolatileEncore,
	"battle.leechseed":  data.VolatileLeechSeed,
	"battle.substitute": data.VolatileSubstitute,
	"battle.yawn":       data.VolatileYawn,
	"battle.perishsong": data.VolatilePerishSong,
	"battle.batonpass":  data.VolatileBatonPass,
}

var opTable = map[string]builder{
	"battle.turn": func(_ *Classifier, ev Event) (game.Operation, bool) {
		if len(ev.Args) < 1 {
			return nil, false
		}
		if n, ok := ev.Args[0].Int(); ok {
			return game.AdvanceTurn{N: n}, true
		}
		return nil, false
	},

	"battle.fainted": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 1)
		if !ok {
			return nil, false
		}
		return game.Faint{Name: args[0]}, true
	},

	"battle.switch.out": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 1)
		if !ok {
			return nil, false
		}
		return game.Switch{Name: args[0]}, true
	},

	"battle.transform": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 2)
		if !ok {
			return nil, false
		}
		return game.Transform{Transformer: args[0], Target: args[1]}, true
	},

	// Move usage never mutates tracker state; it feeds the classifier's
	// last-move context used by target-omitting events.
	"battle.move.used": func(c *Classifier, ev Event) (game.Operation, bool) {
		if args, ok := names(ev, 2); ok {
			c.lastMoveUser = args[0]
			c.lastMoveName = args[1]
			c.lastMoveTarget = args[0]
		}
		return nil, false
	},
	"battle.move.used.on": func(c *Classifier, ev Event) (game.Operation, bool) {
		if args, ok := names(ev, 3); ok {
			c.lastMoveUser = args[0]
			c.lastMoveName = args[1]
			c.lastMoveTarget = args[2]
		}
		return nil, false
	},

	"battle.stat.maxed": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 2)
		if !ok {
			return nil, false
		}
		stat, ok := data.StatFromName(args[1])
		if !ok {
			return nil, false
		}
		return game.SetStatStage{Name: args[0], Stat: stat, Stage: 6}, true
	},

	"battle.stat.reset": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 1)
		if !ok {
			return nil, false
		}
		return game.ClearStats{Name: args[0]}, true
	},

	"battle.stat.invert": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 1)
		if !ok {
			return nil, false
		}
		return game.InvertStats{Name: args[0]}, true
	},

	"battle.stat.copy": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 2)
		if !ok {
			return nil, false
		}
		return game.CopyStats{Copier: args[0], Source: args[1]}, true
	},

	"battle.stat.swap": swapBuilder(nil),
	"battle.powerswap": swapBuilder([]data.StatKind{data.StatAttack, data.StatSpecialAttack}),
	"battle.guardswap": swapBuilder([]data.StatKind{data.StatDefense, data.StatSpecialDefense}),

	"battle.item.reveal": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 2)
		if !ok {
			return nil, false
		}
		return game.ItemReveal{Name: args[0], Item: args[1]}, true
	},

	"battle.leftovers": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 1)
		if !ok {
			return nil, false
		}
		// Passive healing reveals the item but does not consume it.
		return game.ItemReveal{Name: args[0], Item: "Leftovers"}, true
	},

	"battle.item.eat": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 2)
		if !ok {
			return nil, false
		}
		return game.ItemConsumed{Name: args[0], Item: args[1], Status: game.ItemStatusConsumed}, true
	},

	"battle.knockoff": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 2)
		if !ok {
			return nil, false
		}
		return game.ItemConsumed{Name: args[0], Item: args[1], Status: game.ItemStatusKnockedOff}, true
	},

	"battle.thief": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 3)
		if !ok {
			return nil, false
		}
		return game.ItemTransfer{From: args[2], To: args[0], Item: args[1]}, true
	},

	"battle.trick": func(_ *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 3)
		if !ok {
			return nil, false
		}
		return game.ItemTransfer{From: args[0], To: args[2], Item: args[1]}, true
	},
}

// swapBuilder handles the stat-swap family. The one-argument form relies on
// the classifier's last-move target for the second combatant.
func swapBuilder(subset []data.StatKind) builder {
	return func(c *Classifier, ev Event) (game.Operation, bool) {
		args, ok := names(ev, 1)
		if !ok {
			return nil, false
		}
		other := ev.Arg(1)
		if other == "" {
			other = c.lastMoveTarget
		}
		if other == "" || other == args[0] {
			return nil, false
		}
		return game.SwapStats{NameA: args[0], NameB: other, Subset: subset}, true
	}
}

var prefixRules = []prefixRule{
	{prefix: "battle.stat.raised.z", build: statDeltaRule(1)},
	{prefix: "battle.stat.lowered.z", build: statDeltaRule(-1)},
}

// statDeltaRule reads the stage magnitude from the key suffix (z1/z2/z3) and
// the affected combatant and stat from the arguments.
func statDeltaRule(sign int) func(*Classifier, string, Event) (game.Operation, bool) {
	return func(_ *Classifier, suffix string, ev Event) (game.Operation, bool) {
		magnitude, err := strconv.Atoi(suffix)
		if err != nil || magnitude < 1 || magnitude > 3 {
			return nil, false
		}
		args, ok := names(ev, 2)
		if !ok {
			return nil, false
		}
		stat, ok := data.StatFromName(args[1])
		if !ok {
			return nil, false
		}
		return game.StatDelta{Name: args[0], Stat: stat, Delta: sign * magnitude}, true
	}
}

func init() {
	for stem, kind := range weatherStems {
		k := kind
		opTable[stem+".start"] = func(_ *Classifier, _ Event) (game.Operation, bool) {
			return game.SetWeather{Kind: k}, true
		}
		opTable[stem+".end"] = func(_ *Classifier, _ Event) (game.Operation, bool) {
			return game.ClearWeather{}, true
		}
	}
	for stem, kind := range terrainStems {
		k := kind
		opTable[stem+".start"] = func(_ *Classifier, _ Event) (game.Operation, bool) {
			return game.SetTerrain{Kind: k}, true
		}
		opTable[stem+".end"] = func(_ *Classifier, _ Event) (game.Operation, bool) {
			return game.ClearTerrain{}, true
		}
	}
	for stem, kind := range fieldStems {
		k := kind
		opTable[stem+".start"] = func(_ *Classifier, _ Event) (game.Operation, bool) {
			return game.SetFieldCondition{Kind: k}, true
		}
		opTable[stem+".end"] = func(_ *Classifier, _ Event) (game.Operation, bool) {
			return game.ClearFieldCondition{Kind: k}, true
		}
	}
	for stem, kind := range sideStems {
		k := kind
		opTable[stem+".start"] = func(_ *Classifier, ev Event) (game.Operation, bool) {
			args, ok := names(ev, 1)
			if !ok {
				return nil, false
			}
			return game.SetSideCondition{Owner: args[0], Kind: k}, true
		}
		opTable[stem+".end"] = func(_ *Classifier, ev Event) (game.Operation, bool) {
			args, ok := names(ev, 1)
			if !ok {
				return nil, false
			}
			return game.ClearSideCondition{Owner: args[0], Kind: k}, true
		}
	}
	for stem, kind := range volatileStems {
		k := kind
		opTable[stem+".start"] = func(_ *Classifier, ev Event) (game.Operation, bool) {
			args, ok := names(ev, 1)
			if !ok {
				return nil, false
			}
			return game.SetVolatile{Name: args[0], Kind: k}, true
		}
		opTable[stem+".end"] = func(_ *Classifier, ev Event) (game.Operation, bool) {
			args, ok := names(ev, 1)
			if !ok {
				return nil, false
			}
			return game.ClearVolatile{Name: args[0], Kind: k}, true
		}
	}
}
