// Package match implements the match entity and its state machine: lobby
// and setup flow, the action executor, per-state action filters, and the
// per-viewer projection. One mutex per match serializes actions; the
// history order is the linearization order.
package match

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/deck"
	"github.com/peterkuimelis/ptcgd/internal/game"
	"github.com/peterkuimelis/ptcgd/internal/log"
)

// State is the match lifecycle state.
type State int

const (
	StateCreated State = iota
	StateWaitingForPlayers
	StateDeckValidation
	StatePreGameSetup
	StateInitialSetup // legacy combined setup, kept for old snapshots
	StateDrawingCards
	StateSetPrizeCards
	StateFirstPlayerSelection
	StateSelectActivePokemon
	StateSelectBenchPokemon
	StatePlayerTurn
	StateBetweenTurns
	StateMatchEnded
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateWaitingForPlayers:
		return "WAITING_FOR_PLAYERS"
	case StateDeckValidation:
		return "DECK_VALIDATION"
	case StatePreGameSetup:
		return "PRE_GAME_SETUP"
	case StateInitialSetup:
		return "INITIAL_SETUP"
	case StateDrawingCards:
		return "DRAWING_CARDS"
	case StateSetPrizeCards:
		return "SET_PRIZE_CARDS"
	case StateFirstPlayerSelection:
		return "FIRST_PLAYER_SELECTION"
	case StateSelectActivePokemon:
		return "SELECT_ACTIVE_POKEMON"
	case StateSelectBenchPokemon:
		return "SELECT_BENCH_POKEMON"
	case StatePlayerTurn:
		return "PLAYER_TURN"
	case StateBetweenTurns:
		return "BETWEEN_TURNS"
	case StateMatchEnded:
		return "MATCH_ENDED"
	case StateCancelled:
		return "CANCELLED"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further actions can change the match.
func (s State) Terminal() bool {
	return s == StateMatchEnded || s == StateCancelled
}

// SetupFlags are the per-player gates through the parallel setup states.
// The machine advances only when both players' flag for the current state
// is set, so either player may act first.
type SetupFlags struct {
	HasDrawnValidHand       bool
	HasSetPrizeCards        bool
	HasConfirmedFirstPlayer bool
	ReadyToStart            bool
}

// Participant is one seat in a match.
type Participant struct {
	PlayerID string
	DeckID   string
}

// Match is the aggregate: lobby metadata, setup flags, and the game state
// once started. All access goes through Lock/Unlock.
type Match struct {
	ID           string
	TournamentID string
	State        State
	Players      [2]Participant
	Setup        [2]SetupFlags

	Game  *game.GameState
	decks [2][]*card.Card

	WinnerID     string
	WinCondition game.WinCondition
	CancelReason string

	CreatedAt time.Time
	UpdatedAt time.Time

	mu sync.Mutex
}

// New creates a match with the first player seated.
func New(player1ID, deckID, tournamentID string) *Match {
	now := time.Now().UTC()
	return &Match{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		State:        StateWaitingForPlayers,
		Players: [2]Participant{
			{PlayerID: player1ID, DeckID: deckID},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lock serializes actions for this match.
func (m *Match) Lock() { m.mu.Lock() }

// Unlock releases the match.
func (m *Match) Unlock() { m.mu.Unlock() }

func (m *Match) touch() { m.UpdatedAt = time.Now().UTC() }

// PlayerIndex resolves a participant's seat, or -1.
func (m *Match) PlayerIndex(playerID string) int {
	for i, p := range m.Players {
		if p.PlayerID == playerID && p.PlayerID != "" {
			return i
		}
	}
	return -1
}

// Join seats the second player. The match moves to DECK_VALIDATION; the
// caller validates both decks next.
func (m *Match) Join(player2ID, deckID string) error {
	if m.State != StateWaitingForPlayers {
		return actionErrorf(ErrInvalidState, "cannot join a match in state %s", m.State)
	}
	if player2ID == m.Players[0].PlayerID {
		return actionErrorf(ErrInvalidAction, "player %s is already in the match", player2ID)
	}
	m.Players[1] = Participant{PlayerID: player2ID, DeckID: deckID}
	m.State = StateDeckValidation
	m.touch()
	return nil
}

// ValidateDecks checks both decks against the standard rules and
// materializes them. Any failure cancels the match.
func (m *Match) ValidateDecks(decks [2]*deck.Deck, cat *card.Catalog) error {
	if m.State != StateDeckValidation {
		return actionErrorf(ErrInvalidState, "cannot validate decks in state %s", m.State)
	}
	for i, d := range decks {
		result := deck.Validate(d, deck.StandardRules)
		if !result.IsValid {
			m.State = StateCancelled
			m.CancelReason = fmt.Sprintf("deck %s invalid: %v", d.ID, result.Errors)
			m.touch()
			return actionErrorf(ErrRuleViolation, "deck for player %s failed validation: %v",
				m.Players[i].PlayerID, result.Errors)
		}
		cards, err := d.Materialize(cat)
		if err != nil {
			m.State = StateCancelled
			m.CancelReason = err.Error()
			m.touch()
			return actionErrorf(ErrRuleViolation, "deck for player %s: %v", m.Players[i].PlayerID, err)
		}
		m.decks[i] = cards
	}
	m.State = StatePreGameSetup
	m.touch()
	return nil
}

// Start creates the game state and begins setup. firstPlayer < 0 queues the
// opening coin flip instead of fixing the first player.
func (m *Match) Start(seed int64, firstPlayer int) error {
	if m.State != StatePreGameSetup {
		return actionErrorf(ErrInvalidState, "cannot start a match in state %s", m.State)
	}
	gs := game.NewGameState(m.Players[0].PlayerID, m.Players[1].PlayerID, seed)
	for i := range m.decks {
		gs.LoadDeck(i, m.decks[i])
		gs.ShuffleDeck(i)
	}
	if firstPlayer >= 0 {
		gs.FirstPlayer = firstPlayer
	} else {
		gs.FirstPlayer = -1
		gs.QueueCoinFlip(game.FlipFirstPlayer, 0, 1, nil)
	}
	m.Game = gs
	m.State = StateDrawingCards
	m.touch()
	return nil
}

// Cancel tears down a match that has not started. The repository deletes
// the record afterward.
func (m *Match) Cancel(playerID, reason string) error {
	if m.State != StateWaitingForPlayers {
		return actionErrorf(ErrInvalidState, "cannot cancel a match in state %s", m.State)
	}
	if m.PlayerIndex(playerID) < 0 {
		return actionErrorf(ErrInvalidAction, "player %s is not a participant", playerID)
	}
	m.State = StateCancelled
	m.CancelReason = reason
	m.touch()
	return nil
}

// end terminates the match with a winner.
func (m *Match) end(winner int, how game.WinCondition) {
	if m.State.Terminal() {
		return
	}
	m.State = StateMatchEnded
	m.WinnerID = m.Players[winner].PlayerID
	m.WinCondition = how
	if m.Game != nil {
		m.Game.Append(log.NewDerived(m.WinnerID, log.DerivedMatchEnded, map[string]any{
			"winner":       m.WinnerID,
			"winCondition": how.String(),
		}))
	}
	m.touch()
}

// bothSetup reports whether both players passed the given setup gate.
func (m *Match) bothSetup(get func(SetupFlags) bool) bool {
	return get(m.Setup[0]) && get(m.Setup[1])
}

// advanceSetup moves the machine forward when both players cleared the
// current setup gate.
func (m *Match) advanceSetup() {
	switch m.State {
	case StateDrawingCards:
		if m.bothSetup(func(f SetupFlags) bool { return f.HasDrawnValidHand }) {
			m.State = StateSetPrizeCards
		}
	case StateSetPrizeCards:
		if m.bothSetup(func(f SetupFlags) bool { return f.HasSetPrizeCards }) {
			m.State = StateFirstPlayerSelection
		}
	case StateFirstPlayerSelection:
		if m.Game.FirstPlayer >= 0 &&
			m.bothSetup(func(f SetupFlags) bool { return f.HasConfirmedFirstPlayer }) {
			m.State = StateSelectActivePokemon
		}
	case StateSelectActivePokemon:
		if m.Game.Players[0].Active != nil && m.Game.Players[1].Active != nil {
			m.State = StateSelectBenchPokemon
		}
	case StateSelectBenchPokemon:
		if m.bothSetup(func(f SetupFlags) bool { return f.ReadyToStart }) {
			m.beginFirstTurn()
		}
	}
	m.touch()
}

// beginFirstTurn enters PLAYER_TURN. The first player skips the draw phase
// on the opening turn.
func (m *Match) beginFirstTurn() {
	gs := m.Game
	gs.TurnNumber = 1
	gs.CurrentPlayer = gs.FirstPlayer
	gs.Phase = game.PhaseMain
	m.State = StatePlayerTurn
	gs.Append(log.NewDerived(gs.Current().PlayerID, log.DerivedTurnStart, map[string]any{
		"turnNumber": 1,
	}))
}
