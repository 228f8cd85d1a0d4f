package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"battlelens/data"
)

// ArgKind discriminates the Arg union. Argument runtime shapes are converted
// once, up front, so no operation-specific logic inspects raw types.
type ArgKind int

const (
	// ArgText is a plain display string.
	ArgText ArgKind = iota
	// ArgNumber is a numeric argument.
	ArgNumber
	// ArgRaw is a nested structured-text object flattened to its display
	// string. It is never classified, only displayed.
	ArgRaw
)

// Arg is one positional event argument.
type Arg struct {
	Kind   ArgKind
	Text   string
	Number float64
}

// String returns the display form of the argument.
func (a Arg) String() string {
	if a.Kind == ArgNumber {
		return strconv.FormatFloat(a.Number, 'f', -1, 64)
	}
	return a.Text
}

// Int returns the argument as an integer if it is numeric.
func (a Arg) Int() (int, bool) {
	if a.Kind != ArgNumber {
		return 0, false
	}
	return int(a.Number), true
}

// Event is one raw battle event: an opaque localization key plus positional
// arguments.
type Event struct {
	Key  string
	Args []Arg
}

// Arg returns the i-th argument's display string, or "" when absent.
func (e Event) Arg(i int) string {
	if i < 0 || i >= len(e.Args) {
		return ""
	}
	return e.Args[i].String()
}

// ParseBatch splits a websocket frame into events, one per non-empty line.
// Unparseable lines are skipped; the rest of the batch is still processed.
func ParseBatch(raw string) []Event {
	var events []Event
	for _, line := range strings.Split(raw, "\n") {
		if ev, ok := ParseLine(line); ok {
			events = append(events, ev)
		}
	}
	return events
}

// ParseLine parses one pipe-delimited line: |<key>|<arg>|<arg>...
// Arguments that look like JSON objects are nested structured text and get
// flattened to a display string; numeric arguments are converted.
func ParseLine(line string) (Event, bool) {
	parts := strings.Split(strings.TrimSpace(line), "|")
	if len(parts) < 2 || parts[1] == "" {
		return Event{}, false
	}

	ev := Event{Key: parts[1]}
	for _, part := range parts[2:] {
		ev.Args = append(ev.Args, parseArg(part))
	}
	return ev, true
}

func parseArg(raw string) Arg {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		if text, ok := flattenObject([]byte(trimmed)); ok {
			return Arg{Kind: ArgRaw, Text: text}
		}
		return Arg{Kind: ArgText, Text: trimmed}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Arg{Kind: ArgNumber, Number: n}
	}
	return Arg{Kind: ArgText, Text: trimmed}
}

// nestedText is the wire shape of a structured-text argument.
type nestedText struct {
	Key  string            `json:"key"`
	Args []json.RawMessage `json:"args"`
}

// flattenObject resolves a nested key/args object to its final display
// string, recursing into nested arguments.
func flattenObject(raw []byte) (string, bool) {
	var nested nestedText
	if err := json.Unmarshal(raw, &nested); err != nil || nested.Key == "" {
		return "", false
	}

	args := make([]string, 0, len(nested.Args))
	for _, rawArg := range nested.Args {
		args = append(args, flattenRaw(rawArg))
	}
	return renderKey(nested.Key, args), true
}

func flattenRaw(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		if text, ok := flattenObject(raw); ok {
			return text
		}
		return trimmed
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return trimmed
}

// RenderText renders an event to its display string through the template
// table, falling back to a humanized key for unknown vocabulary.
func RenderText(ev Event) string {
	args := make([]string, len(ev.Args))
	for i, a := range ev.Args {
		args[i] = a.String()
	}
	return renderKey(ev.Key, args)
}

func renderKey(key string, args []string) string {
	if tmpl, ok := data.Template(key); ok {
		return fillTemplate(tmpl, args)
	}

	// Unknown key: humanize the last segment and append the arguments.
	segments := strings.Split(key, ".")
	label := segments[len(segments)-1]
	if len(args) == 0 {
		return label
	}
	return label + ": " + strings.Join(args, ", ")
}

// fillTemplate substitutes positional %s placeholders, tolerating argument
// counts that do not match the template.
func fillTemplate(tmpl string, args []string) string {
	slots := strings.Count(tmpl, "%s")
	filled := make([]any, slots)
	for i := range filled {
		if i < len(args) {
			filled[i] = args[i]
		} else {
			filled[i] = "?"
		}
	}
	return fmt.Sprintf(tmpl, filled...)
}
