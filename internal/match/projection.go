package match

import (
	"github.com/peterkuimelis/ptcgd/internal/game"
	"github.com/peterkuimelis/ptcgd/internal/log"
)

// InstanceView is a projected in-play Pokemon.
type InstanceView struct {
	InstanceID     int      `json:"instanceId"`
	CardID         string   `json:"cardId"`
	Name           string   `json:"name"`
	CurrentHP      int      `json:"currentHp"`
	MaxHP          int      `json:"maxHp"`
	StatusEffects  []string `json:"statusEffects,omitempty"`
	AttachedEnergy []string `json:"attachedEnergy,omitempty"`
	EvolutionChain []string `json:"evolutionChain,omitempty"`
}

// PlayerView is the viewer's own side: hand cards as literals.
type PlayerView struct {
	PlayerID        string          `json:"playerId"`
	HandCards       []string        `json:"handCards"`
	HandCount       int             `json:"handCount"`
	DeckCount       int             `json:"deckCount"`
	DiscardCount    int             `json:"discardCount"`
	PrizesRemaining int             `json:"prizesRemaining"`
	Active          *InstanceView   `json:"active,omitempty"`
	Bench           []*InstanceView `json:"bench"`
}

// OpponentView hides hand contents behind counts. RevealedHand is populated
// only in explicit reveal states.
type OpponentView struct {
	PlayerID        string          `json:"playerId"`
	HandCount       int             `json:"handCount"`
	DeckCount       int             `json:"deckCount"`
	DiscardCount    int             `json:"discardCount"`
	PrizesRemaining int             `json:"prizesRemaining"`
	Active          *InstanceView   `json:"active,omitempty"`
	Bench           []*InstanceView `json:"bench"`
	RevealedHand    []string        `json:"revealedHand,omitempty"`
}

// Projection is the per-viewer snapshot returned by the polling API.
type Projection struct {
	MatchID          string             `json:"matchId"`
	State            string             `json:"state"`
	CurrentPlayer    string             `json:"currentPlayer,omitempty"`
	TurnNumber       int                `json:"turnNumber"`
	Phase            string             `json:"phase,omitempty"`
	PlayerState      *PlayerView        `json:"playerState,omitempty"`
	OpponentState    *OpponentView      `json:"opponentState,omitempty"`
	AvailableActions []string           `json:"availableActions"`
	LastAction       *log.ActionSummary `json:"lastAction,omitempty"`
	PlayerDeckID     string             `json:"playerDeckId,omitempty"`
	OpponentDeckID   string             `json:"opponentDeckId,omitempty"`
	WinnerID         string             `json:"winnerId,omitempty"`
	WinCondition     string             `json:"winCondition,omitempty"`
}

// Project builds the viewer's snapshot. The caller holds the match lock.
func Project(m *Match, filters *FilterRegistry, viewerID string) (*Projection, error) {
	vi := m.PlayerIndex(viewerID)
	if vi < 0 {
		return nil, actionErrorf(ErrInvalidAction, "player %s is not a participant", viewerID)
	}
	oi := 1 - vi

	p := &Projection{
		MatchID:        m.ID,
		State:          m.State.String(),
		PlayerDeckID:   m.Players[vi].DeckID,
		OpponentDeckID: m.Players[oi].DeckID,
		WinnerID:       m.WinnerID,
	}
	if m.WinCondition != game.WinNone {
		p.WinCondition = m.WinCondition.String()
	}
	for _, a := range filters.AvailableActions(m, vi) {
		p.AvailableActions = append(p.AvailableActions, a.String())
	}

	gs := m.Game
	if gs == nil {
		return p, nil
	}
	p.TurnNumber = gs.TurnNumber
	if m.State == StatePlayerTurn {
		p.CurrentPlayer = gs.Current().PlayerID
		p.Phase = gs.Phase.String()
	}
	if last, ok := gs.History.Last(); ok {
		p.LastAction = &last
	}

	p.PlayerState = projectOwn(gs.Players[vi])
	p.OpponentState = projectOpponent(gs.Players[oi], m.State)
	return p, nil
}

func projectInstance(in *game.Instance) *InstanceView {
	if in == nil {
		return nil
	}
	v := &InstanceView{
		InstanceID:     in.InstanceID,
		CardID:         in.Card.ID,
		Name:           in.Card.Name,
		CurrentHP:      in.CurrentHP,
		MaxHP:          in.MaxHP,
		EvolutionChain: in.EvolutionChain,
	}
	for s := range in.Status {
		v.StatusEffects = append(v.StatusEffects, s.String())
	}
	for _, e := range in.Attached {
		v.AttachedEnergy = append(v.AttachedEnergy, e.Card.ID)
	}
	return v
}

func projectOwn(p *game.PlayerState) *PlayerView {
	v := &PlayerView{
		PlayerID:        p.PlayerID,
		HandCount:       p.HandCount(),
		DeckCount:       p.DeckCount(),
		DiscardCount:    len(p.Discard),
		PrizesRemaining: p.PrizesRemaining(),
		Active:          projectInstance(p.Active),
		Bench:           []*InstanceView{},
	}
	for _, c := range p.Hand {
		v.HandCards = append(v.HandCards, c.Card.ID)
	}
	for _, b := range p.BenchPokemon() {
		v.Bench = append(v.Bench, projectInstance(b))
	}
	return v
}

// projectOpponent emits counts only for hidden zones. The hand is revealed
// during the setup draw states, where mulligan rules require it.
func projectOpponent(p *game.PlayerState, s State) *OpponentView {
	v := &OpponentView{
		PlayerID:        p.PlayerID,
		HandCount:       p.HandCount(),
		DeckCount:       p.DeckCount(),
		DiscardCount:    len(p.Discard),
		PrizesRemaining: p.PrizesRemaining(),
		Active:          projectInstance(p.Active),
		Bench:           []*InstanceView{},
	}
	for _, b := range p.BenchPokemon() {
		v.Bench = append(v.Bench, projectInstance(b))
	}
	if s == StateDrawingCards || s == StateInitialSetup {
		for _, c := range p.Hand {
			v.RevealedHand = append(v.RevealedHand, c.Card.ID)
		}
	}
	return v
}
