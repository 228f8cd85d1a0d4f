// Package battlelog keeps a chronological, display-oriented record of battle
// events. Its categorization is deliberately independent of the state
// classifier: miscategorizing here is cosmetic, misclassifying there corrupts
// the model.
package battlelog

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"battlelens/parser"
)

// Category buckets an event for display.
type Category string

const (
	CategoryTurn    Category = "turn"
	CategoryMove    Category = "move"
	CategoryHP      Category = "hp"
	CategoryHealing Category = "healing"
	CategoryEffect  Category = "effect"
	CategoryField   Category = "field"
	CategoryOther   Category = "other"
)

// Entry is one categorized log line stamped with its turn of record.
type Entry struct {
	Turn     int
	Category Category
	Text     string
}

// DefaultRetention caps the log length when no cap is configured.
const DefaultRetention = 200

// Log is an append-only, FIFO-capped record of categorized events.
type Log struct {
	mu      sync.Mutex
	cap     int
	entries []Entry
}

func New(retention int) *Log {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &Log{cap: retention}
}

// Append categorizes and turn-stamps a batch and appends it to the record.
// currentTurn is the tracker's turn before the batch; it seeds the effective
// turn cursor until the batch's first turn marker. The stamped entries are
// returned in batch order.
func (l *Log) Append(batch []parser.Event, currentTurn int) []Entry {
	turns := stampTurns(batch, currentTurn)

	stamped := make([]Entry, len(batch))
	for i, ev := range batch {
		stamped[i] = Entry{
			Turn:     turns[i],
			Category: Categorize(ev.Key),
			Text:     parser.RenderText(ev),
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, stamped...)
	if over := len(l.entries) - l.cap; over > 0 {
		l.entries = append([]Entry(nil), l.entries[over:]...)
	}
	return stamped
}

// Entries returns a copy of the current record, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// Reset discards the record.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// stampTurns assigns every event its turn of record: the latest turn marker
// at or before it. A batch may carry a turn marker anywhere in the sequence,
// so this takes two passes: first scan for (position, turn) markers, then
// walk the batch advancing an effective-turn cursor past each marker.
func stampTurns(batch []parser.Event, currentTurn int) []int {
	markers := make(map[int]int)
	for i, ev := range batch {
		if ev.Key != "battle.turn" || len(ev.Args) == 0 {
			continue
		}
		if n, ok := ev.Args[0].Int(); ok {
			markers[i] = n
		}
	}

	turns := make([]int, len(batch))
	effective := currentTurn
	for i := range batch {
		if n, ok := markers[i]; ok {
			effective = n
		}
		turns[i] = effective
	}
	return turns
}

// RenderHTML renders the tail of the record for the SSE panel.
func (l *Log) RenderHTML(limit int) string {
	entries := l.Entries()
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	var sb strings.Builder
	sb.WriteString("<div class='battle-log'>")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("<p class='logline log-%s'>[T%d] %s</p>",
			e.Category, e.Turn, html.EscapeString(e.Text)))
	}
	sb.WriteString("</div>")
	return sb.String()
}

var exactCategories = map[string]Category{
	"battle.turn":           CategoryTurn,
	"battle.win":            CategoryTurn,
	"battle.lose":           CategoryTurn,
	"battle.move.used":      CategoryMove,
	"battle.move.used.on":   CategoryMove,
	"battle.crit":           CategoryMove,
	"battle.supereffective": CategoryMove,
	"battle.resisted":       CategoryMove,
	"battle.missed":         CategoryMove,
	"battle.protected":      CategoryMove,
	"battle.fainted":        CategoryHP,
	"battle.leftovers":      CategoryHealing,
}

var prefixCategories = []struct {
	prefix   string
	category Category
}{
	{"battle.damage.", CategoryHP},
	{"battle.heal.", CategoryHealing},
	{"battle.stat.", CategoryEffect},
	{"battle.item.", CategoryEffect},
}

// substringCategories is the coarse fallback. Order matters: "terrain" must
// match before "rain".
var substringCategories = []struct {
	fragment string
	category Category
}{
	{"terrain", CategoryField},
	{"rain", CategoryField},
	{"sunny", CategoryField},
	{"sandstorm", CategoryField},
	{"hail", CategoryField},
	{"snow", CategoryField},
	{"room", CategoryField},
	{"gravity", CategoryField},
	{"reflect", CategoryField},
	{"lightscreen", CategoryField},
	{"auroraveil", CategoryField},
	{"tailwind", CategoryField},
	{"safeguard", CategoryField},
	{"mist", CategoryField},
	{"spikes", CategoryField},
	{"stealthrock", CategoryField},
	{"stickyweb", CategoryField},
	{"confusion", CategoryEffect},
	{"taunt", CategoryEffect},
	{"encore", CategoryEffect},
	{"leechseed", CategoryEffect},
	{"substitute", CategoryEffect},
	{"yawn", CategoryEffect},
	{"perishsong", CategoryEffect},
	{"batonpass", CategoryEffect},
	{"transform", CategoryEffect},
	{"thief", CategoryEffect},
	{"trick", CategoryEffect},
	{"knockoff", CategoryEffect},
}

// Categorize buckets an event key: exact matches, then key-prefix matches,
// then substring fallbacks, then "other".
func Categorize(key string) Category {
	if c, ok := exactCategories[key]; ok {
		return c
	}
	for _, p := range prefixCategories {
		if strings.HasPrefix(key, p.prefix) {
			return p.category
		}
	}
	for _, s := range substringCategories {
		if strings.Contains(key, s.fragment) {
			return s.category
		}
	}
	return CategoryOther
}
