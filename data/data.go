package data

import (
	"encoding/json"
	"os"
	"strings"
)

type WeatherKind string

const (
	WeatherRain      WeatherKind = "rain"
	WeatherSun       WeatherKind = "sun"
	WeatherSandstorm WeatherKind = "sandstorm"
	WeatherHail      WeatherKind = "hail"
	WeatherSnow      WeatherKind = "snow"
)

type TerrainKind string

const (
	TerrainElectric TerrainKind = "electric"
	TerrainGrassy   TerrainKind = "grassy"
	TerrainMisty    TerrainKind = "misty"
	TerrainPsychic  TerrainKind = "psychic"
)

type FieldConditionKind string

const (
	FieldTrickRoom  FieldConditionKind = "trickroom"
	FieldGravity    FieldConditionKind = "gravity"
	FieldMagicRoom  FieldConditionKind = "magicroom"
	FieldWonderRoom FieldConditionKind = "wonderroom"
)

type SideConditionKind string

const (
	SideReflect     SideConditionKind = "reflect"
	SideLightScreen SideConditionKind = "lightscreen"
	SideAuroraVeil  SideConditionKind = "auroraveil"
	SideTailwind    SideConditionKind = "tailwind"
	SideSafeguard   SideConditionKind = "safeguard"
	SideMist        SideConditionKind = "mist"
	SideSpikes      SideConditionKind = "spikes"
	SideToxicSpikes SideConditionKind = "toxicspikes"
	SideStealthRock SideConditionKind = "stealthrock"
	SideStickyWeb   SideConditionKind = "stickyweb"
)

type StatKind string

const (
	StatAttack         StatKind = "atk"
	StatDefense        StatKind = "def"
	StatSpecialAttack  StatKind = "spa"
	StatSpecialDefense StatKind = "spd"
	StatSpeed          StatKind = "spe"
	StatAccuracy       StatKind = "accuracy"
	StatEvasion        StatKind = "evasion"
)

// AllStats lists every stat kind in display order.
var AllStats = []StatKind{
	StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense,
	StatSpeed, StatAccuracy, StatEvasion,
}

type VolatileKind string

const (
	VolatileConfusion  VolatileKind = "confusion"
	VolatileTaunt      VolatileKind = "taunt"
	VolatileEncore     VolatileKind = "encore"
	VolatileLeechSeed  VolatileKind = "leechseed"
	VolatileSubstitute VolatileKind = "substitute"
	VolatileYawn       VolatileKind = "yawn"
	VolatilePerishSong VolatileKind = "perishsong"
	// VolatileBatonPass marks a pending stat/volatile transfer; it is not a
	// real in-battle status but rides the same bookkeeping.
	VolatileBatonPass VolatileKind = "batonpass"
)

// Lifetime is the turn span of a timed effect. Min is the duration without an
// extension item, Max the duration with one. Min == Max means the duration is
// fixed and known exactly. A zero Lifetime means the effect is untimed.
type Lifetime struct {
	Min int
	Max int
}

// Timed reports whether the effect expires on its own.
func (l Lifetime) Timed() bool { return l.Max > 0 }

// Fixed reports whether the duration needs no extension inference.
func (l Lifetime) Fixed() bool { return l.Timed() && l.Min == l.Max }

var weatherLifetime = Lifetime{Min: 5, Max: 8}

var terrainLifetime = Lifetime{Min: 5, Max: 8}

var fieldLifetimes = map[FieldConditionKind]Lifetime{
	FieldTrickRoom:  {Min: 5, Max: 5},
	FieldGravity:    {Min: 5, Max: 5},
	FieldMagicRoom:  {Min: 5, Max: 5},
	FieldWonderRoom: {Min: 5, Max: 5},
}

var sideLifetimes = map[SideConditionKind]Lifetime{
	SideReflect:     {Min: 5, Max: 8},
	SideLightScreen: {Min: 5, Max: 8},
	SideAuroraVeil:  {Min: 5, Max: 8},
	SideTailwind:    {Min: 4, Max: 4},
	SideSafeguard:   {Min: 5, Max: 5},
	SideMist:        {Min: 5, Max: 5},
}

var sideStackCaps = map[SideConditionKind]int{
	SideSpikes:      3,
	SideToxicSpikes: 2,
	SideStealthRock: 1,
	SideStickyWeb:   1,
}

var volatileDurations = map[VolatileKind]int{
	VolatileTaunt:      3,
	VolatileEncore:     3,
	VolatileYawn:       1,
	VolatilePerishSong: 3,
}

func WeatherLifetime(WeatherKind) Lifetime { return weatherLifetime }

func TerrainLifetime(TerrainKind) Lifetime { return terrainLifetime }

func FieldLifetime(kind FieldConditionKind) Lifetime { return fieldLifetimes[kind] }

func SideLifetime(kind SideConditionKind) Lifetime { return sideLifetimes[kind] }

// SideStackCap returns how many layers of the condition can accumulate.
// Non-stacking conditions report 1.
func SideStackCap(kind SideConditionKind) int {
	if c, ok := sideStackCaps[kind]; ok {
		return c
	}
	return 1
}

// VolatileDuration returns the fixed turn count of a countdown volatile,
// or 0 when the status has no known duration.
func VolatileDuration(kind VolatileKind) int { return volatileDurations[kind] }

// IsBerry reports whether an item is a berry (eaten on use, always consumed).
func IsBerry(item string) bool {
	return strings.Contains(strings.ToLower(item), "berry")
}

var statNames = map[string]StatKind{
	"atk":             StatAttack,
	"attack":          StatAttack,
	"def":             StatDefense,
	"defense":         StatDefense,
	"defence":         StatDefense,
	"spa":             StatSpecialAttack,
	"special attack":  StatSpecialAttack,
	"sp. atk":         StatSpecialAttack,
	"spd":             StatSpecialDefense,
	"special defense": StatSpecialDefense,
	"sp. def":         StatSpecialDefense,
	"spe":             StatSpeed,
	"speed":           StatSpeed,
	"accuracy":        StatAccuracy,
	"evasion":         StatEvasion,
	"evasiveness":     StatEvasion,
}

// StatFromName maps a display stat name from an event argument to a stat kind.
func StatFromName(name string) (StatKind, bool) {
	s, ok := statNames[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

var statDisplay = map[StatKind]string{
	StatAttack:         "Attack",
	StatDefense:        "Defense",
	StatSpecialAttack:  "Sp. Atk",
	StatSpecialDefense: "Sp. Def",
	StatSpeed:          "Speed",
	StatAccuracy:       "Accuracy",
	StatEvasion:        "Evasion",
}

// StatDisplayName returns the rendered name for a stat kind.
func StatDisplayName(kind StatKind) string {
	if d, ok := statDisplay[kind]; ok {
		return d
	}
	return string(kind)
}

// messageTemplates maps event keys to display templates. %s placeholders are
// filled positionally from the event arguments. Keys absent here render as a
// humanized key plus the joined arguments.
var messageTemplates = map[string]string{
	"battle.turn":         "== Turn %s ==",
	"battle.player":       "%s joined the battle!",
	"battle.switch.in":    "%s was sent out!",
	"battle.fainted":      "%s fainted!",
	"battle.switch.out":   "%s withdrew!",
	"battle.win":          "%s won the battle!",
	"battle.lose":         "%s lost the battle!",
	"battle.move.used":    "%s used %s!",
	"battle.move.used.on": "%s used %s on %s!",

	"battle.rain.start":      "It started to rain!",
	"battle.rain.end":        "The rain stopped.",
	"battle.sunny.start":     "The sunlight turned harsh!",
	"battle.sunny.end":       "The harsh sunlight faded.",
	"battle.sandstorm.start": "A sandstorm kicked up!",
	"battle.sandstorm.end":   "The sandstorm subsided.",
	"battle.hail.start":      "It started to hail!",
	"battle.hail.end":        "The hail stopped.",
	"battle.snow.start":      "It started to snow!",
	"battle.snow.end":        "The snow stopped.",

	"battle.electricterrain.start": "An electric current ran across the battlefield!",
	"battle.electricterrain.end":   "The electricity disappeared from the battlefield.",
	"battle.grassyterrain.start":   "Grass grew to cover the battlefield!",
	"battle.grassyterrain.end":     "The grass disappeared from the battlefield.",
	"battle.mistyterrain.start":    "Mist swirled around the battlefield!",
	"battle.mistyterrain.end":      "The mist disappeared from the battlefield.",
	"battle.psychicterrain.start":  "The battlefield got weird!",
	"battle.psychicterrain.end":    "The weirdness disappeared from the battlefield.",

	"battle.trickroom.start":  "The dimensions were twisted!",
	"battle.trickroom.end":    "The twisted dimensions returned to normal.",
	"battle.gravity.start":    "Gravity intensified!",
	"battle.gravity.end":      "Gravity returned to normal.",
	"battle.magicroom.start":  "A bizarre area was created!",
	"battle.magicroom.end":    "The bizarre area disappeared.",
	"battle.wonderroom.start": "A weird area was created!",
	"battle.wonderroom.end":   "The weird area disappeared.",

	"battle.reflect.start":     "Reflect raised %s's team's defense!",
	"battle.reflect.end":       "%s's Reflect wore off!",
	"battle.lightscreen.start": "Light Screen raised %s's team's special defense!",
	"battle.lightscreen.end":   "%s's Light Screen wore off!",
	"battle.auroraveil.start":  "Aurora Veil made %s's team stronger against attacks!",
	"battle.auroraveil.end":    "%s's Aurora Veil wore off!",
	"battle.tailwind.start":    "The tailwind blew from behind %s's team!",
	"battle.tailwind.end":      "%s's tailwind petered out!",
	"battle.safeguard.start":   "%s's team became cloaked in a mystical veil!",
	"battle.safeguard.end":     "%s's team is no longer protected by Safeguard!",
	"battle.mist.start":        "%s's team became shrouded in mist!",
	"battle.mist.end":          "%s's team is no longer protected by mist!",

	"battle.spikes.start":      "Spikes were scattered on the ground around %s's team!",
	"battle.spikes.end":        "The spikes around %s's team disappeared!",
	"battle.toxicspikes.start": "Poison spikes were scattered on the ground around %s's team!",
	"battle.toxicspikes.end":   "The poison spikes around %s's team disappeared!",
	"battle.stealthrock.start": "Pointed stones float in the air around %s's team!",
	"battle.stealthrock.end":   "The pointed stones around %s's team disappeared!",
	"battle.stickyweb.start":   "A sticky web spreads out beneath %s's team!",
	"battle.stickyweb.end":     "The sticky web around %s's team disappeared!",

	"battle.stat.raised.z1":  "%s's %s rose!",
	"battle.stat.raised.z2":  "%s's %s rose sharply!",
	"battle.stat.raised.z3":  "%s's %s rose drastically!",
	"battle.stat.lowered.z1": "%s's %s fell!",
	"battle.stat.lowered.z2": "%s's %s harshly fell!",
	"battle.stat.lowered.z3": "%s's %s severely fell!",
	"battle.stat.maxed":      "%s maxed its %s!",
	"battle.stat.reset":      "%s's stat changes were removed!",
	"battle.stat.invert":     "%s's stat changes were all reversed!",
	"battle.stat.swap":       "%s switched stat changes with its target!",
	"battle.powerswap":       "%s switched all changes to its Attack and Sp. Atk with its target!",
	"battle.guardswap":       "%s switched all changes to its Defense and Sp. Def with its target!",
	"battle.stat.copy":       "%s copied %s's stat changes!",

	"battle.confusion.start":  "%s became confused!",
	"battle.confusion.end":    "%s snapped out of its confusion!",
	"battle.taunt.start":      "%s fell for the taunt!",
	"battle.taunt.end":        "%s's taunt wore off!",
	"battle.encore.start":     "%s received an encore!",
	"battle.encore.end":       "%s's encore ended!",
	"battle.leechseed.start":  "%s was seeded!",
	"battle.leechseed.end":    "%s was freed from Leech Seed!",
	"battle.substitute.start": "%s put in a substitute!",
	"battle.substitute.end":   "%s's substitute faded!",
	"battle.yawn.start":       "%s grew drowsy!",
	"battle.yawn.end":         "%s shook off its drowsiness!",
	"battle.perishsong.start": "%s is doomed to faint!",
	"battle.perishsong.end":   "%s's perish count ended!",
	"battle.batonpass.start":  "%s passed its effects along!",

	"battle.item.reveal": "%s is holding %s!",
	"battle.item.eat":    "%s ate its %s!",
	"battle.thief":       "%s stole %s from %s!",
	"battle.trick":       "%s swapped its %s with %s!",
	"battle.knockoff":    "%s's %s was knocked off!",
	"battle.leftovers":   "%s restored a little HP using its Leftovers!",

	"battle.transform": "%s transformed into %s!",

	"battle.damage.hit":     "%s took damage!",
	"battle.damage.recoil":  "%s was damaged by the recoil!",
	"battle.damage.poison":  "%s was hurt by poison!",
	"battle.damage.burn":    "%s was hurt by its burn!",
	"battle.heal.hp":        "%s's HP was restored.",
	"battle.crit":           "A critical hit!",
	"battle.supereffective": "It's super effective!",
	"battle.resisted":       "It's not very effective...",
	"battle.missed":         "%s avoided the attack!",
	"battle.protected":      "%s protected itself!",
}

// Template returns the display template for an event key.
func Template(key string) (string, bool) {
	t, ok := messageTemplates[key]
	return t, ok
}

// LoadTemplates merges template overrides from a JSON file (key -> template).
func LoadTemplates(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var overrides map[string]string
	if err := json.NewDecoder(file).Decode(&overrides); err != nil {
		return err
	}

	for k, v := range overrides {
		messageTemplates[k] = v
	}
	return nil
}
