package match

import "github.com/peterkuimelis/ptcgd/internal/game"

// FilterFunc narrows the candidate action set for one player in one match
// state.
type FilterFunc func(m *Match, player int) []game.ActionType

// FilterRegistry maps match states to their action filter. Unregistered
// states fall back to the default, which allows only CONCEDE.
type FilterRegistry struct {
	byState  map[State]FilterFunc
	fallback FilterFunc
}

// NewFilterRegistry creates an empty registry with the concede-only
// fallback.
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{
		byState: make(map[State]FilterFunc),
		fallback: func(m *Match, player int) []game.ActionType {
			return []game.ActionType{game.ActionConcede}
		},
	}
}

// Register installs a filter for a match state.
func (r *FilterRegistry) Register(s State, f FilterFunc) {
	r.byState[s] = f
}

// AvailableActions returns the actions the player may submit right now.
func (r *FilterRegistry) AvailableActions(m *Match, player int) []game.ActionType {
	if m.State.Terminal() {
		return nil
	}
	if f, ok := r.byState[m.State]; ok {
		return f(m, player)
	}
	return r.fallback(m, player)
}

// DefaultFilters builds the registry with the standard per-state filters.
func DefaultFilters() *FilterRegistry {
	r := NewFilterRegistry()
	r.Register(StateDrawingCards, filterDrawingCards)
	r.Register(StateSetPrizeCards, filterSetPrizeCards)
	r.Register(StateFirstPlayerSelection, filterFirstPlayerSelection)
	r.Register(StateSelectActivePokemon, filterSelectActive)
	r.Register(StateSelectBenchPokemon, filterSelectBench)
	r.Register(StateInitialSetup, filterLegacyInitialSetup)
	r.Register(StatePlayerTurn, filterPlayerTurn)
	return r
}

func filterDrawingCards(m *Match, player int) []game.ActionType {
	if !m.Setup[player].HasDrawnValidHand {
		return []game.ActionType{game.ActionDrawInitialHand, game.ActionConcede}
	}
	return []game.ActionType{game.ActionConcede}
}

func filterSetPrizeCards(m *Match, player int) []game.ActionType {
	if !m.Setup[player].HasSetPrizeCards {
		return []game.ActionType{game.ActionSetPrizeCards, game.ActionConcede}
	}
	return []game.ActionType{game.ActionConcede}
}

func filterFirstPlayerSelection(m *Match, player int) []game.ActionType {
	gs := m.Game
	if gs.FirstPlayer < 0 {
		if cf := gs.CoinFlip; cf != nil && cf.Status == game.FlipReady && cf.Owner == player {
			return []game.ActionType{game.ActionGenerateCoinFlip, game.ActionConcede}
		}
		return []game.ActionType{game.ActionConcede}
	}
	if !m.Setup[player].HasConfirmedFirstPlayer {
		return []game.ActionType{game.ActionConfirmFirstPlayer, game.ActionConcede}
	}
	return []game.ActionType{game.ActionConcede}
}

func filterSelectActive(m *Match, player int) []game.ActionType {
	if m.Game.Players[player].Active == nil {
		return []game.ActionType{game.ActionSetActivePokemon, game.ActionConcede}
	}
	return []game.ActionType{game.ActionConcede}
}

func filterSelectBench(m *Match, player int) []game.ActionType {
	if !m.Setup[player].ReadyToStart {
		return []game.ActionType{
			game.ActionPlayPokemon,
			game.ActionCompleteInitialSetup,
			game.ActionConcede,
		}
	}
	return []game.ActionType{game.ActionConcede}
}

// filterLegacyInitialSetup serves old combined-setup snapshots: every setup
// action the player's flags still allow is offered at once.
func filterLegacyInitialSetup(m *Match, player int) []game.ActionType {
	out := []game.ActionType{game.ActionConcede}
	f := m.Setup[player]
	if !f.HasDrawnValidHand {
		out = append(out, game.ActionDrawInitialHand)
	}
	if !f.HasSetPrizeCards {
		out = append(out, game.ActionSetPrizeCards)
	}
	if m.Game.FirstPlayer >= 0 && !f.HasConfirmedFirstPlayer {
		out = append(out, game.ActionConfirmFirstPlayer)
	}
	if m.Game.Players[player].Active == nil {
		out = append(out, game.ActionSetActivePokemon)
	} else if !f.ReadyToStart {
		out = append(out, game.ActionPlayPokemon, game.ActionCompleteInitialSetup)
	}
	return out
}

func filterPlayerTurn(m *Match, player int) []game.ActionType {
	gs := m.Game

	// Knockout interrupts take priority over the normal phase flow.
	if gs.PendingPrizeSelects() > 0 {
		if gs.PrizeSelectPlayer() == player {
			return []game.ActionType{game.ActionSelectPrize, game.ActionConcede}
		}
		return []game.ActionType{game.ActionConcede}
	}
	if gs.PendingPromote[player] {
		return []game.ActionType{game.ActionSetActivePokemon, game.ActionConcede}
	}

	if cf := gs.CoinFlip; cf != nil && cf.Status == game.FlipReady {
		// Attack flips may be generated by either player.
		if cf.Context == game.FlipAttack || cf.Owner == player {
			return []game.ActionType{game.ActionGenerateCoinFlip, game.ActionConcede}
		}
		return []game.ActionType{game.ActionConcede}
	}

	if gs.CurrentPlayer != player {
		return []game.ActionType{game.ActionConcede}
	}

	switch gs.Phase {
	case game.PhaseDraw:
		return []game.ActionType{game.ActionDrawCard, game.ActionConcede}
	case game.PhaseMain:
		out := []game.ActionType{
			game.ActionPlayPokemon,
			game.ActionPlayTrainer,
			game.ActionEvolvePokemon,
			game.ActionRetreat,
			game.ActionAttack,
			game.ActionUseAbility,
			game.ActionEndTurn,
			game.ActionConcede,
		}
		if !gs.Players[player].HasAttachedEnergyThisTurn {
			out = append([]game.ActionType{game.ActionAttachEnergy}, out...)
		}
		return out
	default:
		return []game.ActionType{game.ActionConcede}
	}
}
