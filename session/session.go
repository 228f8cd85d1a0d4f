// Package session wires the event pipeline together: raw batches are parsed,
// categorized for the log, classified into operations, and applied to the
// tracker. One Session observes one battle at a time.
package session

import (
	"log/slog"
	"strings"

	"battlelens/battlelog"
	"battlelens/game"
	"battlelens/parser"
	"battlelens/roster"
)

// Session owns the per-battle pipeline state.
type Session struct {
	battleID   string
	tracker    *game.Tracker
	classifier *parser.Classifier
	record     *battlelog.Log
	// known maps side+name to a stable identity, standing in for the host's
	// live combatant objects when battlelens runs against a raw stream.
	known map[string]roster.ID
	log   *slog.Logger
}

// Options configures a Session.
type Options struct {
	TieBreak     roster.TieBreak
	LogRetention int
	Logger       *slog.Logger
}

func New(battleID string, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		battleID:   battleID,
		tracker:    game.NewTracker(battleID, opts.TieBreak, logger),
		classifier: parser.NewClassifier(),
		record:     battlelog.New(opts.LogRetention),
		known:      make(map[string]roster.ID),
		log:        logger,
	}
}

// Tracker exposes the read-only state snapshot interface.
func (s *Session) Tracker() *game.Tracker { return s.tracker }

// Record exposes the categorized battle log.
func (s *Session) Record() *battlelog.Log { return s.record }

// Reset discards all battle state and starts observing a new battle ID.
func (s *Session) Reset(battleID string) {
	s.battleID = battleID
	s.tracker.Reset(battleID)
	s.classifier.Reset()
	s.record.Reset()
	s.known = make(map[string]roster.ID)
}

// Result reports what a processed batch contained.
type Result struct {
	Entries []battlelog.Entry
	// Ended is set when the batch carried a battle win/loss event.
	Ended  bool
	Winner string
}

// ProcessBatch runs one raw frame through the pipeline. The batch is
// categorized against the pre-batch turn (the log's turn cursor starts from
// the tracker's current turn), then every event is classified and applied.
// Every event in the batch is processed even if individual ones are
// unresolvable or unknown.
func (s *Session) ProcessBatch(raw string) Result {
	events := parser.ParseBatch(raw)
	result := Result{
		Entries: s.record.Append(events, s.tracker.CurrentTurn()),
	}

	for _, ev := range events {
		switch ev.Key {
		case "battle.player":
			s.handlePlayer(ev)
			continue
		case "battle.switch.in":
			s.handleSwitchIn(ev)
			continue
		case "battle.win":
			result.Ended = true
			result.Winner = ev.Arg(0)
			continue
		case "battle.lose":
			result.Ended = true
			continue
		}

		if op, ok := s.classifier.Classify(ev); ok {
			s.tracker.Apply(s.battleID, op)
		}
	}
	return result
}

// handlePlayer indexes a trainer name for a side: |battle.player|Alice|p1
func (s *Session) handlePlayer(ev parser.Event) {
	if len(ev.Args) < 2 {
		return
	}
	side, ok := sideFromToken(ev.Arg(1))
	if !ok {
		return
	}
	s.tracker.RegisterPlayer(s.battleID, ev.Arg(0), side)
}

// handleSwitchIn registers an entering combatant: |battle.switch.in|Tyranitar|p1
// The same side+name pair keeps its identity across re-entries.
func (s *Session) handleSwitchIn(ev parser.Event) {
	if len(ev.Args) < 2 {
		return
	}
	name := ev.Arg(0)
	side, ok := sideFromToken(ev.Arg(1))
	if !ok {
		return
	}

	key := string(side) + "|" + strings.ToLower(strings.TrimSpace(name))
	id, known := s.known[key]
	if !known {
		id = roster.NewID()
		s.known[key] = id
	}
	s.tracker.RegisterCombatant(s.battleID, id, name, side)
}

func sideFromToken(token string) (roster.Side, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "p1", "self", "ally":
		return roster.SideSelf, true
	case "p2", "opponent", "enemy":
		return roster.SideOpponent, true
	}
	return "", false
}
