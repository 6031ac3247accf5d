package log

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAppendAssignsMonotonicIDs(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, 0, h.LastID())

	id1 := h.Append(NewAction("p1", "DRAW_CARD", nil))
	id2 := h.Append(NewDerived("p2", DerivedPoisonDamage, map[string]any{"damage": 10}))
	id3 := h.Append(NewAction("p1", "END_TURN", nil))

	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)
	assert.Equal(t, 3, id3)
	assert.Equal(t, 3, h.LastID())

	entries := h.Entries()
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, i+1, e.ActionID)
	}
}

func TestHistorySince(t *testing.T) {
	h := NewHistory()
	h.Append(NewAction("p1", "DRAW_CARD", nil))
	h.Append(NewAction("p1", "ATTACH_ENERGY", nil))
	h.Append(NewAction("p1", "END_TURN", nil))

	assert.Len(t, h.Since(0), 3)
	since := h.Since(2)
	require.Len(t, since, 1)
	assert.Equal(t, "END_TURN", since[0].ActionType)
	assert.Empty(t, h.Since(3))
}

func TestHistoryOfType(t *testing.T) {
	h := NewHistory()
	h.Append(NewAction("p1", "ATTACK", map[string]any{"damage": 20}))
	h.Append(NewDerived("p2", DerivedKnockout, nil))
	h.Append(NewAction("p2", "ATTACK", map[string]any{"damage": 30}))

	attacks := h.OfType("ATTACK")
	require.Len(t, attacks, 2)
	assert.Equal(t, 20, attacks[0].ActionData["damage"])

	kos := h.OfType("KNOCKOUT")
	require.Len(t, kos, 1)
	assert.Equal(t, KindDerived, kos[0].Kind)
}

func TestHistoryLast(t *testing.T) {
	h := NewHistory()
	_, ok := h.Last()
	assert.False(t, ok)

	h.Append(NewAction("p1", "CONCEDE", nil))
	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, "CONCEDE", last.ActionType)
}

func TestFormatAll(t *testing.T) {
	h := NewHistory()
	h.Append(NewAction("p1", "DRAW_CARD", nil))
	h.Append(NewDerived("", DerivedTurnStart, map[string]any{"turn": 2}))

	out := FormatAll(h.Entries())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "DRAW_CARD")
	assert.Contains(t, lines[1], "TURN_START")
	// missing player renders as a placeholder
	assert.Contains(t, lines[1], "-")
}
