package log

import (
	"fmt"
	"io"
	"strings"
)

// History is an append-only action log with monotonic ids.
type History struct {
	entries []ActionSummary
	nextID  int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Append assigns the next monotonic id and records the entry.
// Returns the assigned id.
func (h *History) Append(e ActionSummary) int {
	h.nextID++
	e.ActionID = h.nextID
	h.entries = append(h.entries, e)
	return e.ActionID
}

// Entries returns the full history in order.
func (h *History) Entries() []ActionSummary {
	return h.entries
}

// Last returns the most recent entry, or false if empty.
func (h *History) Last() (ActionSummary, bool) {
	if len(h.entries) == 0 {
		return ActionSummary{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// LastID returns the most recently assigned action id.
func (h *History) LastID() int {
	return h.nextID
}

// Since returns entries with ActionID strictly greater than id.
func (h *History) Since(id int) []ActionSummary {
	var out []ActionSummary
	for _, e := range h.entries {
		if e.ActionID > id {
			out = append(out, e)
		}
	}
	return out
}

// OfType returns all entries matching the given action type.
func (h *History) OfType(actionType string) []ActionSummary {
	var out []ActionSummary
	for _, e := range h.entries {
		if e.ActionType == actionType {
			out = append(out, e)
		}
	}
	return out
}

// --- Formatting (test visibility) ---

// FormatEntry formats one entry as a human-readable line.
func FormatEntry(e ActionSummary) string {
	who := e.PlayerID
	if who == "" {
		who = "-"
	}
	if len(e.ActionData) == 0 {
		return fmt.Sprintf("#%-3d %-10s %s", e.ActionID, who, e.ActionType)
	}
	return fmt.Sprintf("#%-3d %-10s %-20s %v", e.ActionID, who, e.ActionType, e.ActionData)
}

// FormatAll formats the whole history as a multi-line string.
func FormatAll(entries []ActionSummary) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(FormatEntry(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Dump writes the formatted history to a writer.
func Dump(w io.Writer, h *History) {
	io.WriteString(w, FormatAll(h.Entries()))
}
