package game

import (
	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/log"
)

// CardLookup resolves a catalog card id, for materializing evolution
// underlays on knockout.
type CardLookup func(cardID string) *card.Card

// ProcessKnockout discards a knocked-out Pokemon, credits the opposing
// player with a prize selection, and flags the owner to promote a
// replacement. Callers check win conditions afterward.
func ProcessKnockout(gs *GameState, owner int, in *Instance, lookup CardLookup) {
	p := gs.Players[owner]
	wasActive := p.Active != nil && p.Active.InstanceID == in.InstanceID

	p.KnockOut(in, func(cardID string) *Instance {
		c := lookup(cardID)
		if c == nil {
			return nil
		}
		u := gs.NewInstance(c)
		u.Position = PositionDiscard
		return u
	})

	gs.Append(log.NewDerived(p.PlayerID, log.DerivedKnockout, map[string]any{
		"instanceId": in.InstanceID,
		"cardId":     in.Card.ID,
	}))

	taker := gs.Opponent(owner)
	if gs.Players[taker].PrizesRemaining() > 0 {
		gs.CreditPrize(taker)
	}

	if wasActive && p.BenchCount() > 0 {
		gs.PendingPromote[owner] = true
		gs.Append(log.NewDerived(p.PlayerID, log.DerivedPromoteRequired, nil))
	}
}
