package parser

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"unicode"

	"battlelens/data"
	"battlelens/game"
	"battlelens/roster"
)

func capitalizeFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func sideLabel(side roster.Side) string {
	if side == roster.SideOpponent {
		return "Opponent"
	}
	return "You"
}

// RenderBattleState renders the tracker's current snapshot as an HTML panel.
// Everything shown here is reconstructed from public battle messages; the
// panel never displays anything the host's own overlay would not have known.
func RenderBattleState(t *game.Tracker) string {
	var sb strings.Builder

	sb.WriteString("<div class='battle-summary'>")
	sb.WriteString(fmt.Sprintf("<h3>Turn: %d</h3>", t.CurrentTurn()))

	if w, ok := t.Weather(); ok {
		sb.WriteString(fmt.Sprintf("<div><b>Weather:</b> %s (%s turns left)</div>",
			capitalizeFirst(string(w.Kind)), w.Remaining))
	}
	if terr, ok := t.Terrain(); ok {
		sb.WriteString(fmt.Sprintf("<div><b>Terrain:</b> %s (%s turns left)</div>",
			capitalizeFirst(string(terr.Kind)), terr.Remaining))
	}
	for _, fc := range t.FieldConditions() {
		sb.WriteString(fmt.Sprintf("<div><b>Field:</b> %s (%s turns left)</div>",
			capitalizeFirst(string(fc.Kind)), fc.Remaining))
	}

	for _, side := range roster.Sides {
		conds := t.SideConditions(side)
		if len(conds) == 0 {
			continue
		}
		kinds := make([]data.SideConditionKind, 0, len(conds))
		for kind := range conds {
			kinds = append(kinds, kind)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

		parts := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			info := conds[kind]
			label := capitalizeFirst(string(kind))
			if info.Stacks > 1 {
				label += fmt.Sprintf(" x%d", info.Stacks)
			}
			if info.Remaining != nil {
				label += fmt.Sprintf(" (%s)", info.Remaining)
			}
			parts = append(parts, label)
		}
		sb.WriteString(fmt.Sprintf("<div><b>%s:</b> %s</div>",
			sideLabel(side), strings.Join(parts, ", ")))
	}

	for _, c := range t.Combatants() {
		renderCombatant(&sb, t, c)
	}

	sb.WriteString("</div>")
	return sb.String()
}

func renderCombatant(sb *strings.Builder, t *game.Tracker, c game.CombatantInfo) {
	name := html.EscapeString(c.Name)
	fainted := ""
	if c.KO {
		fainted = " <span style='color:#e74c3c;'>(Fainted)</span>"
	}
	transformed := ""
	if c.Transformed {
		transformed = " <span style='color:#9b59b6;'>[Transformed]</span>"
	}
	sb.WriteString(fmt.Sprintf("<h4>%s: %s%s%s</h4>", sideLabel(c.Side), name, fainted, transformed))

	if item, ok := t.TrackedItem(c.ID); ok {
		sb.WriteString(fmt.Sprintf("<span style='color:#7ed6df;'>Item: %s [%s]</span><br>",
			html.EscapeString(item.Name), item.Status))
	}

	stages := t.StatStages(c.ID)
	boosts := make([]string, 0, len(stages))
	for _, stat := range data.AllStats {
		if val := stages[stat]; val != 0 {
			prefix := "+"
			if val < 0 {
				prefix = ""
			}
			boosts = append(boosts, fmt.Sprintf("%s%d %s", prefix, val, data.StatDisplayName(stat)))
		}
	}
	if len(boosts) > 0 {
		sb.WriteString("<span style='color:#e67e22;'>Boosts: " + strings.Join(boosts, ", ") + "</span><br>")
	}

	vols := t.VolatileStatuses(c.ID)
	if len(vols) > 0 {
		parts := make([]string, 0, len(vols))
		for _, v := range vols {
			label := capitalizeFirst(string(v.Kind))
			if v.Remaining != nil {
				label += fmt.Sprintf(" (%s)", v.Remaining)
			}
			parts = append(parts, label)
		}
		sb.WriteString("<span style='color:#f1c40f;'>Status: " + strings.Join(parts, ", ") + "</span><br>")
	}
}
