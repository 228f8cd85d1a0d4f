package roster

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Side identifies which team a combatant belongs to.
type Side string

const (
	SideSelf     Side = "self"
	SideOpponent Side = "opponent"
)

// Sides lists both sides in a stable order.
var Sides = []Side{SideSelf, SideOpponent}

// Opposite returns the other side.
func Opposite(s Side) Side {
	if s == SideSelf {
		return SideOpponent
	}
	return SideSelf
}

// ID is a stable combatant identifier, independent of display name.
type ID string

// NewID returns a fresh combatant identifier.
func NewID() ID { return ID(uuid.NewString()) }

// TieBreak selects how a bare-name mirror match (same species registered on
// both sides) is resolved when no owner hint is attached to the event.
type TieBreak string

const (
	// TieBreakRecentActive prefers the side whose matching combatant was
	// registered or marked active most recently.
	TieBreakRecentActive TieBreak = "most_recent_active"
	// TieBreakFirstRegistered prefers whichever match was registered first.
	TieBreakFirstRegistered TieBreak = "first_registered"
)

// possessive separates an owner prefix from a combatant name in event text,
// e.g. "Alice's Tyranitar".
const possessive = "'s "

var fold = cases.Fold()

type entry struct {
	id         ID
	side       Side
	display    string
	registered int64
	lastActive int64
}

// Roster is the name-to-identity index. Names are case-folded; each side keeps
// its own index so identical species on both sides can coexist. A name maps to
// at most one identity per side at a time.
type Roster struct {
	tieBreak TieBreak
	seq      int64
	entries  map[ID]*entry
	names    map[Side]map[string]ID
	players  map[string]Side
}

func New(tieBreak TieBreak) *Roster {
	if tieBreak == "" {
		tieBreak = TieBreakRecentActive
	}
	r := &Roster{tieBreak: tieBreak}
	r.Reset()
	return r
}

// Reset discards every registered name and identity.
func (r *Roster) Reset() {
	r.seq = 0
	r.entries = make(map[ID]*entry)
	r.names = map[Side]map[string]ID{
		SideSelf:     make(map[string]ID),
		SideOpponent: make(map[string]ID),
	}
	r.players = make(map[string]Side)
}

func (r *Roster) next() int64 {
	r.seq++
	return r.seq
}

// Register indexes a combatant under a display name. Registering is
// idempotent; re-registering an existing identity under a new name moves the
// index entry (form change, Transform) without creating a duplicate identity.
func (r *Roster) Register(id ID, name string, side Side) {
	folded := fold.String(strings.TrimSpace(name))
	if folded == "" {
		return
	}

	if e, ok := r.entries[id]; ok {
		e.lastActive = r.next()
		old := fold.String(e.display)
		if old == folded && e.side == side {
			return
		}
		delete(r.names[e.side], old)
		e.display = strings.TrimSpace(name)
		e.side = side
		r.names[side][folded] = id
		return
	}

	r.entries[id] = &entry{
		id:         id,
		side:       side,
		display:    strings.TrimSpace(name),
		registered: r.next(),
		lastActive: r.seq,
	}
	r.names[side][folded] = id
}

// RegisterPlayer indexes a trainer/owner display name for a side, so that
// possessive name forms and side-scoped events can be attributed.
func (r *Roster) RegisterPlayer(name string, side Side) {
	folded := fold.String(strings.TrimSpace(name))
	if folded != "" {
		r.players[folded] = side
	}
}

// MarkActive bumps the identity in the recent-active ordering.
func (r *Roster) MarkActive(id ID) {
	if e, ok := r.entries[id]; ok {
		e.lastActive = r.next()
	}
}

// DisplayName returns the current display name for an identity.
func (r *Roster) DisplayName(id ID) string {
	if e, ok := r.entries[id]; ok {
		return e.display
	}
	return ""
}

// SideOfID returns which side an identity was registered on.
func (r *Roster) SideOfID(id ID) (Side, bool) {
	if e, ok := r.entries[id]; ok {
		return e.side, true
	}
	return "", false
}

// SideOf maps a free-text owner or combatant name to a side.
func (r *Roster) SideOf(name string) (Side, bool) {
	folded := fold.String(strings.TrimSpace(name))
	if side, ok := r.players[folded]; ok {
		return side, true
	}
	for _, side := range Sides {
		if _, ok := r.names[side][folded]; ok {
			return side, true
		}
	}
	// Possessive form: the owner prefix alone decides the side.
	if i := strings.Index(folded, possessive); i >= 0 {
		if side, ok := r.players[folded[:i]]; ok {
			return side, true
		}
		return r.SideOf(folded[i+len(possessive):])
	}
	return "", false
}

// Resolve maps a display name from an event to a combatant identity.
// Matching order: exact case-insensitive match; then, for possessive forms
// ("Alice's Tyranitar"), a bare lookup of the suffix with the owner prefix as
// a side hint. An unmatched name resolves to ("", false) and the caller is
// expected to drop the referencing event.
func (r *Roster) Resolve(name string) (ID, bool) {
	folded := fold.String(strings.TrimSpace(name))
	if folded == "" {
		return "", false
	}

	if id, ok := r.lookup(folded, nil); ok {
		return id, true
	}

	if i := strings.Index(folded, possessive); i >= 0 {
		bare := folded[i+len(possessive):]
		var hint *Side
		if side, ok := r.players[folded[:i]]; ok {
			hint = &side
		}
		return r.lookup(bare, hint)
	}

	return "", false
}

// lookup finds a folded name in the side indexes, disambiguating mirror
// matches with the hint side when present, otherwise with the tie-break rule.
func (r *Roster) lookup(folded string, hint *Side) (ID, bool) {
	var found []ID
	for _, side := range Sides {
		if id, ok := r.names[side][folded]; ok {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", false
	case 1:
		return found[0], true
	}

	if hint != nil {
		for _, id := range found {
			if r.entries[id].side == *hint {
				return id, true
			}
		}
	}

	best := found[0]
	for _, id := range found[1:] {
		switch r.tieBreak {
		case TieBreakFirstRegistered:
			if r.entries[id].registered < r.entries[best].registered {
				best = id
			}
		default:
			if r.entries[id].lastActive > r.entries[best].lastActive {
				best = id
			}
		}
	}
	return best, true
}
