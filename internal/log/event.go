// Package log holds the append-only match history: one ActionSummary per
// executed action plus derived entries for between-turns processing. The
// polling client reconstructs every observable change from this stream.
package log

import "time"

// EntryKind separates player actions from engine-derived entries.
type EntryKind int

const (
	KindAction EntryKind = iota
	KindDerived
)

// DerivedType enumerates engine-generated history entries.
type DerivedType int

const (
	DerivedNone DerivedType = iota
	DerivedPoisonDamage
	DerivedBurnDamage
	DerivedParalysisCleared
	DerivedWakeCheck
	DerivedKnockout
	DerivedPromoteRequired
	DerivedAbilityTriggered
	DerivedTurnStart
	DerivedMulligan
	DerivedMatchEnded
)

func (d DerivedType) String() string {
	switch d {
	case DerivedPoisonDamage:
		return "POISON_DAMAGE"
	case DerivedBurnDamage:
		return "BURN_DAMAGE"
	case DerivedParalysisCleared:
		return "PARALYSIS_CLEARED"
	case DerivedWakeCheck:
		return "WAKE_CHECK"
	case DerivedKnockout:
		return "KNOCKOUT"
	case DerivedPromoteRequired:
		return "PROMOTE_REQUIRED"
	case DerivedAbilityTriggered:
		return "ABILITY_TRIGGERED"
	case DerivedTurnStart:
		return "TURN_START"
	case DerivedMulligan:
		return "MULLIGAN"
	case DerivedMatchEnded:
		return "MATCH_ENDED"
	default:
		return ""
	}
}

// ActionSummary is one entry of the match history. ActionID is monotonic
// across the match; the entry order is the linearization order.
type ActionSummary struct {
	ActionID   int            `json:"actionId"`
	PlayerID   string         `json:"playerId"`
	ActionType string         `json:"actionType"`
	Kind       EntryKind      `json:"-"`
	Derived    DerivedType    `json:"derivedType,omitempty"`
	ActionData map[string]any `json:"actionData,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// NewAction builds a player-action entry. The caller assigns ActionID.
func NewAction(playerID, actionType string, data map[string]any) ActionSummary {
	return ActionSummary{
		PlayerID:   playerID,
		ActionType: actionType,
		Kind:       KindAction,
		ActionData: data,
		Timestamp:  time.Now().UTC(),
	}
}

// NewDerived builds an engine-generated entry.
func NewDerived(playerID string, d DerivedType, data map[string]any) ActionSummary {
	return ActionSummary{
		PlayerID:   playerID,
		ActionType: d.String(),
		Kind:       KindDerived,
		Derived:    d,
		ActionData: data,
		Timestamp:  time.Now().UTC(),
	}
}
