// Package game holds the runtime match state: card instances, per-player
// zones, the damage pipeline, effect engines, and between-turns processing.
// Everything here mutates in place; the match package serializes access.
package game

import "fmt"

// BenchSize is the maximum number of benched Pokemon per player.
const BenchSize = 5

// PrizeCount is the number of prize cards committed at match start.
const PrizeCount = 6

// InitialHandSize is the setup hand size.
const InitialHandSize = 7

// DefaultPoisonDamage is applied between turns to a poisoned Pokemon.
const DefaultPoisonDamage = 10

// BurnDamage is applied between turns to a burned Pokemon.
const BurnDamage = 20

// Position locates a card instance within its owner's zones.
type Position int

const (
	PositionDeck Position = iota
	PositionHand
	PositionActive
	PositionBench0
	PositionBench1
	PositionBench2
	PositionBench3
	PositionBench4
	PositionPrize
	PositionDiscard
)

func (p Position) String() string {
	switch p {
	case PositionDeck:
		return "DECK"
	case PositionHand:
		return "HAND"
	case PositionActive:
		return "ACTIVE"
	case PositionBench0, PositionBench1, PositionBench2, PositionBench3, PositionBench4:
		return fmt.Sprintf("BENCH_%d", int(p-PositionBench0))
	case PositionPrize:
		return "PRIZE"
	case PositionDiscard:
		return "DISCARD"
	default:
		return "Unknown"
	}
}

// BenchPosition returns the Position for a bench slot index.
func BenchPosition(slot int) Position {
	return PositionBench0 + Position(slot)
}

// TurnPhase is the phase within PLAYER_TURN.
type TurnPhase int

const (
	PhaseDraw TurnPhase = iota
	PhaseMain
	PhaseAttack
	PhaseEnd
)

func (p TurnPhase) String() string {
	switch p {
	case PhaseDraw:
		return "DRAW"
	case PhaseMain:
		return "MAIN_PHASE"
	case PhaseAttack:
		return "ATTACK"
	case PhaseEnd:
		return "END"
	default:
		return "Unknown"
	}
}

// ActionType enumerates every submittable action.
type ActionType int

const (
	ActionDrawCard ActionType = iota
	ActionPlayPokemon
	ActionSetActivePokemon
	ActionAttachEnergy
	ActionPlayTrainer
	ActionEvolvePokemon
	ActionRetreat
	ActionAttack
	ActionUseAbility
	ActionEndTurn
	ActionConcede
	ActionSelectPrize
	ActionGenerateCoinFlip
	ActionDrawInitialHand
	ActionSetPrizeCards
	ActionConfirmFirstPlayer
	ActionCompleteInitialSetup
)

func (a ActionType) String() string {
	switch a {
	case ActionDrawCard:
		return "DRAW_CARD"
	case ActionPlayPokemon:
		return "PLAY_POKEMON"
	case ActionSetActivePokemon:
		return "SET_ACTIVE_POKEMON"
	case ActionAttachEnergy:
		return "ATTACH_ENERGY"
	case ActionPlayTrainer:
		return "PLAY_TRAINER"
	case ActionEvolvePokemon:
		return "EVOLVE_POKEMON"
	case ActionRetreat:
		return "RETREAT"
	case ActionAttack:
		return "ATTACK"
	case ActionUseAbility:
		return "USE_ABILITY"
	case ActionEndTurn:
		return "END_TURN"
	case ActionConcede:
		return "CONCEDE"
	case ActionSelectPrize:
		return "SELECT_PRIZE"
	case ActionGenerateCoinFlip:
		return "GENERATE_COIN_FLIP"
	case ActionDrawInitialHand:
		return "DRAW_INITIAL_HAND"
	case ActionSetPrizeCards:
		return "SET_PRIZE_CARDS"
	case ActionConfirmFirstPlayer:
		return "CONFIRM_FIRST_PLAYER"
	case ActionCompleteInitialSetup:
		return "COMPLETE_INITIAL_SETUP"
	default:
		return "Unknown"
	}
}

// ParseActionType maps a wire action name to its ActionType.
func ParseActionType(s string) (ActionType, error) {
	for a := ActionDrawCard; a <= ActionCompleteInitialSetup; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return ActionDrawCard, fmt.Errorf("unknown action type %q", s)
}

// WinCondition records how a match ended.
type WinCondition int

const (
	WinNone WinCondition = iota
	WinPrizeCards
	WinNoPokemon
	WinDeckOut
	WinConcede
)

func (w WinCondition) String() string {
	switch w {
	case WinPrizeCards:
		return "PRIZE_CARDS"
	case WinNoPokemon:
		return "NO_POKEMON"
	case WinDeckOut:
		return "DECK_OUT"
	case WinConcede:
		return "CONCEDE"
	default:
		return ""
	}
}
