package match

import (
	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/game"
	"github.com/peterkuimelis/ptcgd/internal/log"
)

// Executor validates and applies actions against a locked match. A failed
// action leaves the match untouched and appends no history.
type Executor struct {
	Catalog *card.Catalog
	Filters *FilterRegistry
}

// NewExecutor wires the executor with the default filter registry.
func NewExecutor(cat *card.Catalog) *Executor {
	return &Executor{Catalog: cat, Filters: DefaultFilters()}
}

func (ex *Executor) lookup(cardID string) *card.Card {
	c, _ := ex.Catalog.ByID(cardID)
	return c
}

// Execute runs one action for playerID. The caller holds the match lock.
func (ex *Executor) Execute(m *Match, playerID, actionType string, data map[string]any) error {
	if m.State.Terminal() {
		return actionErrorf(ErrInvalidState, "match is %s", m.State)
	}
	pi := m.PlayerIndex(playerID)
	if pi < 0 {
		return actionErrorf(ErrInvalidAction, "player %s is not a participant", playerID)
	}
	at, err := game.ParseActionType(actionType)
	if err != nil {
		return actionErrorf(ErrInvalidAction, "%v", err)
	}

	switch at {
	case game.ActionConcede:
		return ex.execConcede(m, pi)
	case game.ActionGenerateCoinFlip:
		return ex.execGenerateCoinFlip(m, pi)
	case game.ActionDrawInitialHand:
		return ex.execDrawInitialHand(m, pi)
	case game.ActionSetPrizeCards:
		return ex.execSetPrizeCards(m, pi)
	case game.ActionConfirmFirstPlayer:
		return ex.execConfirmFirstPlayer(m, pi)
	case game.ActionSetActivePokemon:
		return ex.execSetActivePokemon(m, pi, data)
	case game.ActionPlayPokemon:
		return ex.execPlayPokemon(m, pi, data)
	case game.ActionCompleteInitialSetup:
		return ex.execCompleteInitialSetup(m, pi)
	case game.ActionDrawCard:
		return ex.execDrawCard(m, pi)
	case game.ActionAttachEnergy:
		return ex.execAttachEnergy(m, pi, data)
	case game.ActionPlayTrainer:
		return ex.execPlayTrainer(m, pi, data)
	case game.ActionEvolvePokemon:
		return ex.execEvolvePokemon(m, pi, data)
	case game.ActionRetreat:
		return ex.execRetreat(m, pi, data)
	case game.ActionAttack:
		return ex.execAttack(m, pi, data)
	case game.ActionUseAbility:
		return ex.execUseAbility(m, pi, data)
	case game.ActionEndTurn:
		return ex.execEndTurn(m, pi)
	case game.ActionSelectPrize:
		return ex.execSelectPrize(m, pi, data)
	default:
		return actionErrorf(ErrInvalidAction, "unhandled action %s", at)
	}
}

// requireTurn checks the match is mid-game and the caller owns the turn.
func (ex *Executor) requireTurn(m *Match, pi int) error {
	if m.State != StatePlayerTurn {
		return actionErrorf(ErrInvalidState, "action requires PLAYER_TURN, match is %s", m.State)
	}
	if m.Game.CurrentPlayer != pi {
		return actionErrorf(ErrNotPlayerTurn, "it is not %s's turn", m.Players[pi].PlayerID)
	}
	if m.Game.CoinFlip != nil {
		return actionErrorf(ErrInvalidState, "a coin flip is pending")
	}
	return nil
}

// requireMainPhase additionally checks the turn phase.
func (ex *Executor) requireMainPhase(m *Match, pi int) error {
	if err := ex.requireTurn(m, pi); err != nil {
		return err
	}
	if m.Game.Phase != game.PhaseMain {
		return actionErrorf(ErrInvalidPhase, "action requires MAIN_PHASE, phase is %s", m.Game.Phase)
	}
	return nil
}

func (ex *Executor) append(m *Match, pi int, at game.ActionType, data map[string]any) {
	m.Game.Append(log.NewAction(m.Players[pi].PlayerID, at.String(), data))
}

// --- Setup actions ---

func (ex *Executor) execDrawInitialHand(m *Match, pi int) error {
	if m.State != StateDrawingCards && m.State != StateInitialSetup {
		return actionErrorf(ErrInvalidState, "cannot draw an initial hand in state %s", m.State)
	}
	if m.Setup[pi].HasDrawnValidHand {
		return actionErrorf(ErrRuleViolation, "initial hand already drawn")
	}
	gs := m.Game
	p := gs.Players[pi]

	mulligans := 0
	for {
		for i := 0; i < game.InitialHandSize; i++ {
			p.Draw()
		}
		if p.HasBasicInHand() {
			break
		}
		mulligans++
		gs.Append(log.NewDerived(p.PlayerID, log.DerivedMulligan, map[string]any{
			"mulligans": mulligans,
		}))
		p.ShuffleHandIntoDeck()
		gs.ShuffleDeck(pi)
	}
	m.Setup[pi].HasDrawnValidHand = true
	ex.append(m, pi, game.ActionDrawInitialHand, map[string]any{
		"handSize":  p.HandCount(),
		"mulligans": mulligans,
	})
	m.advanceSetup()
	return nil
}

func (ex *Executor) execSetPrizeCards(m *Match, pi int) error {
	if m.State != StateSetPrizeCards && m.State != StateInitialSetup {
		return actionErrorf(ErrInvalidState, "cannot set prize cards in state %s", m.State)
	}
	if m.Setup[pi].HasSetPrizeCards {
		return actionErrorf(ErrRuleViolation, "prize cards already set")
	}
	if err := m.Game.Players[pi].CommitPrizes(game.PrizeCount); err != nil {
		return actionErrorf(ErrInsufficientResources, "%v", err)
	}
	m.Setup[pi].HasSetPrizeCards = true
	ex.append(m, pi, game.ActionSetPrizeCards, map[string]any{"prizes": game.PrizeCount})
	m.advanceSetup()
	return nil
}

func (ex *Executor) execConfirmFirstPlayer(m *Match, pi int) error {
	if m.State != StateFirstPlayerSelection && m.State != StateInitialSetup {
		return actionErrorf(ErrInvalidState, "cannot confirm first player in state %s", m.State)
	}
	if m.Game.FirstPlayer < 0 {
		return actionErrorf(ErrRuleViolation, "first player has not been decided yet")
	}
	if m.Setup[pi].HasConfirmedFirstPlayer {
		return actionErrorf(ErrRuleViolation, "first player already confirmed")
	}
	m.Setup[pi].HasConfirmedFirstPlayer = true
	ex.append(m, pi, game.ActionConfirmFirstPlayer, map[string]any{
		"firstPlayer": m.Players[m.Game.FirstPlayer].PlayerID,
	})
	m.advanceSetup()
	return nil
}

func (ex *Executor) execCompleteInitialSetup(m *Match, pi int) error {
	if m.State != StateSelectBenchPokemon && m.State != StateInitialSetup {
		return actionErrorf(ErrInvalidState, "cannot complete setup in state %s", m.State)
	}
	if m.Game.Players[pi].Active == nil {
		return actionErrorf(ErrRuleViolation, "an active Pokemon is required before starting")
	}
	if m.Setup[pi].ReadyToStart {
		return actionErrorf(ErrRuleViolation, "setup already completed")
	}
	m.Setup[pi].ReadyToStart = true
	ex.append(m, pi, game.ActionCompleteInitialSetup, nil)
	m.advanceSetup()
	return nil
}

// --- Coin flips ---

func (ex *Executor) execGenerateCoinFlip(m *Match, pi int) error {
	gs := m.Game
	if gs == nil || gs.CoinFlip == nil || gs.CoinFlip.Status != game.FlipReady {
		return actionErrorf(ErrInvalidState, "no coin flip is ready")
	}
	cf := gs.CoinFlip
	// Attack-context flips may be generated by either player; the rest only
	// by the owner.
	if cf.Context != game.FlipAttack && cf.Owner != pi {
		return actionErrorf(ErrNotPlayerTurn, "only the flip owner may generate this coin flip")
	}

	bits := gs.GenerateFlips()
	heads := 0
	for _, b := range bits {
		if b {
			heads++
		}
	}
	ex.append(m, pi, game.ActionGenerateCoinFlip, map[string]any{
		"context": cf.Context.String(),
		"flips":   len(bits),
		"heads":   heads,
	})

	switch cf.Context {
	case game.FlipFirstPlayer:
		if bits[0] {
			gs.FirstPlayer = cf.Owner
		} else {
			gs.FirstPlayer = gs.Opponent(cf.Owner)
		}
		gs.CompleteCoinFlip()
	case game.FlipAttack, game.FlipAttackPrecondition:
		pending := cf.Pending
		gs.CompleteCoinFlip()
		if pending != nil {
			ex.resolveAttack(m, pending.Player, pending.AttackName, game.NewBitReader(bits))
		}
	}
	return nil
}

// --- Board actions ---

func (ex *Executor) execSetActivePokemon(m *Match, pi int, data map[string]any) error {
	gs := m.Game
	id, ok := intField(data, "cardInstanceId")
	if !ok {
		return actionErrorf(ErrInvalidAction, "cardInstanceId is required")
	}
	p := gs.Players[pi]

	switch {
	case m.State == StateSelectActivePokemon || m.State == StateInitialSetup:
		in := p.HandInstance(id)
		if in == nil {
			return actionErrorf(ErrInvalidTarget, "card %d is not in hand", id)
		}
		if !in.Card.IsBasic() {
			return actionErrorf(ErrInvalidTarget, "%s is not a Basic Pokemon", in.Card.Name)
		}
		if err := p.PlaceActive(in, gs.TurnNumber); err != nil {
			return actionErrorf(ErrInvalidTarget, "%v", err)
		}
		ex.append(m, pi, game.ActionSetActivePokemon, map[string]any{
			"cardInstanceId": id, "cardId": in.Card.ID,
		})
		m.advanceSetup()
		return nil

	case m.State == StatePlayerTurn && gs.PendingPromote[pi]:
		if gs.PendingPrizeSelects() > 0 {
			return actionErrorf(ErrInvalidState, "waiting for the opponent's prize selection")
		}
		in := p.InPlayInstance(id)
		if in == nil || in == p.Active {
			return actionErrorf(ErrInvalidTarget, "card %d is not on the bench", id)
		}
		if err := p.Promote(in); err != nil {
			return actionErrorf(ErrInvalidTarget, "%v", err)
		}
		gs.PendingPromote[pi] = false
		ex.append(m, pi, game.ActionSetActivePokemon, map[string]any{
			"cardInstanceId": id, "cardId": in.Card.ID,
		})
		ex.afterInterrupts(m)
		return nil

	default:
		return actionErrorf(ErrInvalidState, "cannot set an active Pokemon in state %s", m.State)
	}
}

func (ex *Executor) execPlayPokemon(m *Match, pi int, data map[string]any) error {
	gs := m.Game
	switch m.State {
	case StateSelectBenchPokemon, StateInitialSetup:
		// setup bench placement, no turn ownership
	case StatePlayerTurn:
		if err := ex.requireMainPhase(m, pi); err != nil {
			return err
		}
	default:
		return actionErrorf(ErrInvalidState, "cannot play a Pokemon in state %s", m.State)
	}

	id, ok := intField(data, "cardInstanceId")
	if !ok {
		return actionErrorf(ErrInvalidAction, "cardInstanceId is required")
	}
	p := gs.Players[pi]
	in := p.HandInstance(id)
	if in == nil {
		return actionErrorf(ErrInvalidTarget, "card %d is not in hand", id)
	}
	if !in.Card.IsBasic() {
		return actionErrorf(ErrInvalidTarget, "%s is not a Basic Pokemon", in.Card.Name)
	}

	pos, _ := stringField(data, "position")
	if pos == "ACTIVE" {
		if p.Active != nil {
			return actionErrorf(ErrInvalidTarget, "active spot is occupied")
		}
		if err := p.PlaceActive(in, gs.TurnNumber); err != nil {
			return actionErrorf(ErrInvalidTarget, "%v", err)
		}
	} else {
		slot, ok := intField(data, "benchSlot")
		if !ok {
			slot = p.FreeBenchSlot()
		}
		if slot < 0 || p.BenchCount() >= game.BenchSize {
			return actionErrorf(ErrRuleViolation, "bench is full")
		}
		if err := p.PlaceBench(in, slot, gs.TurnNumber); err != nil {
			return actionErrorf(ErrInvalidTarget, "%v", err)
		}
	}
	ex.append(m, pi, game.ActionPlayPokemon, map[string]any{
		"cardInstanceId": id, "cardId": in.Card.ID, "position": in.Position.String(),
	})
	return nil
}

func (ex *Executor) execDrawCard(m *Match, pi int) error {
	if err := ex.requireTurn(m, pi); err != nil {
		return err
	}
	gs := m.Game
	if gs.Phase != game.PhaseDraw {
		return actionErrorf(ErrInvalidPhase, "draw is only legal in the DRAW phase")
	}
	p := gs.Players[pi]
	if p.DeckCount() == 0 {
		// Deck-out is a loss, not a validation error.
		ex.append(m, pi, game.ActionDrawCard, map[string]any{"deckOut": true})
		m.end(gs.Opponent(pi), game.WinDeckOut)
		return nil
	}
	p.Draw()
	gs.Phase = game.PhaseMain
	ex.append(m, pi, game.ActionDrawCard, map[string]any{"deckCount": p.DeckCount()})
	return nil
}

func (ex *Executor) execAttachEnergy(m *Match, pi int, data map[string]any) error {
	if err := ex.requireMainPhase(m, pi); err != nil {
		return err
	}
	gs := m.Game
	p := gs.Players[pi]
	if p.HasAttachedEnergyThisTurn {
		return actionErrorf(ErrRuleViolation, "an energy card was already attached this turn")
	}
	eid, ok := intField(data, "cardInstanceId")
	if !ok {
		return actionErrorf(ErrInvalidAction, "cardInstanceId is required")
	}
	tid, ok := intField(data, "targetInstanceId")
	if !ok {
		return actionErrorf(ErrInvalidAction, "targetInstanceId is required")
	}
	energy := p.HandInstance(eid)
	if energy == nil {
		return actionErrorf(ErrInvalidTarget, "card %d is not in hand", eid)
	}
	target := p.InPlayInstance(tid)
	if target == nil {
		return actionErrorf(ErrInvalidTarget, "target %d is not in play", tid)
	}
	if err := p.AttachEnergy(energy, target); err != nil {
		return actionErrorf(ErrInvalidTarget, "%v", err)
	}
	p.HasAttachedEnergyThisTurn = true
	ex.append(m, pi, game.ActionAttachEnergy, map[string]any{
		"cardInstanceId": eid, "targetInstanceId": tid, "cardId": energy.Card.ID,
	})
	return nil
}

func (ex *Executor) execPlayTrainer(m *Match, pi int, data map[string]any) error {
	if err := ex.requireMainPhase(m, pi); err != nil {
		return err
	}
	gs := m.Game
	p := gs.Players[pi]
	id, ok := intField(data, "cardInstanceId")
	if !ok {
		return actionErrorf(ErrInvalidAction, "cardInstanceId is required")
	}
	in := p.HandInstance(id)
	if in == nil {
		return actionErrorf(ErrInvalidTarget, "card %d is not in hand", id)
	}
	if in.Card.CardType != card.TypeTrainer {
		return actionErrorf(ErrInvalidTarget, "%s is not a trainer card", in.Card.Name)
	}
	if in.Card.TrainerType == card.TrainerSupporter && p.HasPlayedSupporterThisTurn {
		return actionErrorf(ErrRuleViolation, "a supporter was already played this turn")
	}

	var target *game.Instance
	if tid, ok := intField(data, "targetInstanceId"); ok {
		target = p.InPlayInstance(tid)
		if target == nil {
			return actionErrorf(ErrInvalidTarget, "target %d is not in play", tid)
		}
	}

	p.RemoveFromHand(in)

	// Trainer coin flips resolve inline; only attacks use the suspension
	// protocol.
	bits := game.NewBitReader(gs.FlipCoins(game.CountTrainerFlips(in.Card.TrainerEffects)))
	game.ApplyTrainerEffects(gs, pi, in.Card.TrainerEffects, target, bits)

	if in.Card.TrainerType == card.TrainerStadium {
		if old := gs.Stadium; old != nil {
			gs.Players[gs.StadiumOwner].ToDiscard(old)
		}
		gs.Stadium = in
		gs.StadiumOwner = pi
	} else {
		p.ToDiscard(in)
	}
	if in.Card.TrainerType == card.TrainerSupporter {
		p.HasPlayedSupporterThisTurn = true
	}

	ex.append(m, pi, game.ActionPlayTrainer, map[string]any{
		"cardInstanceId": id, "cardId": in.Card.ID, "trainerType": in.Card.TrainerType.String(),
	})
	return nil
}

func (ex *Executor) execEvolvePokemon(m *Match, pi int, data map[string]any) error {
	if err := ex.requireMainPhase(m, pi); err != nil {
		return err
	}
	gs := m.Game
	p := gs.Players[pi]
	eid, ok := intField(data, "cardInstanceId")
	if !ok {
		return actionErrorf(ErrInvalidAction, "cardInstanceId is required")
	}
	tid, ok := intField(data, "targetInstanceId")
	if !ok {
		return actionErrorf(ErrInvalidAction, "targetInstanceId is required")
	}
	evo := p.HandInstance(eid)
	if evo == nil {
		return actionErrorf(ErrInvalidTarget, "card %d is not in hand", eid)
	}
	target := p.InPlayInstance(tid)
	if target == nil {
		return actionErrorf(ErrInvalidTarget, "target %d is not in play", tid)
	}
	if evo.Card.EvolvesFrom == nil || evo.Card.EvolvesFrom.Name != target.Card.Name {
		return actionErrorf(ErrInvalidTarget, "%s does not evolve from %s", evo.Card.Name, target.Card.Name)
	}
	if target.EvolvedAt >= gs.TurnNumber {
		return actionErrorf(ErrInvalidTarget, "%s entered play this turn", target.Card.Name)
	}
	if err := p.Evolve(evo, target, gs.TurnNumber); err != nil {
		return actionErrorf(ErrInvalidTarget, "%v", err)
	}
	ex.append(m, pi, game.ActionEvolvePokemon, map[string]any{
		"cardInstanceId": eid, "targetInstanceId": tid, "cardId": evo.Card.ID,
	})
	return nil
}

func (ex *Executor) execRetreat(m *Match, pi int, data map[string]any) error {
	if err := ex.requireMainPhase(m, pi); err != nil {
		return err
	}
	gs := m.Game
	p := gs.Players[pi]
	active := p.Active
	if active == nil {
		return actionErrorf(ErrInvalidTarget, "no active Pokemon")
	}
	if active.HasStatus(card.StatusParalyzed) || active.HasStatus(card.StatusAsleep) {
		return actionErrorf(ErrRuleViolation, "%s cannot retreat while %v", active.Card.Name, statusNames(active))
	}
	if !active.Card.CanRetreat() {
		return actionErrorf(ErrRuleViolation, "%s cannot retreat", active.Card.Name)
	}
	tid, ok := intField(data, "targetInstanceId")
	if !ok {
		return actionErrorf(ErrInvalidAction, "targetInstanceId is required")
	}
	benched := p.InPlayInstance(tid)
	if benched == nil || benched == active {
		return actionErrorf(ErrInvalidTarget, "target %d is not on the bench", tid)
	}
	cost := active.Card.RetreatCost
	if active.EnergyCount() < cost {
		return actionErrorf(ErrInsufficientResources, "retreat needs %d energy, have %d", cost, active.EnergyCount())
	}
	p.DiscardAttachedEnergy(active, cost)
	if err := p.SwapActive(benched); err != nil {
		return actionErrorf(ErrInvalidTarget, "%v", err)
	}
	ex.append(m, pi, game.ActionRetreat, map[string]any{
		"targetInstanceId": tid, "energyDiscarded": cost,
	})
	return nil
}

func (ex *Executor) execAttack(m *Match, pi int, data map[string]any) error {
	if err := ex.requireTurn(m, pi); err != nil {
		return err
	}
	gs := m.Game
	if gs.Phase != game.PhaseMain && gs.Phase != game.PhaseAttack {
		return actionErrorf(ErrInvalidPhase, "cannot attack in phase %s", gs.Phase)
	}
	p := gs.Players[pi]
	active := p.Active
	if active == nil {
		return actionErrorf(ErrInvalidTarget, "no active Pokemon")
	}
	if active.HasStatus(card.StatusParalyzed) || active.HasStatus(card.StatusAsleep) {
		return actionErrorf(ErrRuleViolation, "%s cannot attack while %v", active.Card.Name, statusNames(active))
	}
	name, ok := stringField(data, "attackName")
	if !ok {
		return actionErrorf(ErrInvalidAction, "attackName is required")
	}
	atk, found := active.Card.AttackByName(name)
	if !found {
		return actionErrorf(ErrInvalidAction, "%s has no attack named %q", active.Card.Name, name)
	}
	if !active.HasEnergyFor(atk.EnergyCost) {
		return actionErrorf(ErrInsufficientResources, "not enough energy for %s", name)
	}

	gs.Phase = game.PhaseAttack
	if flips := game.CountAttackFlips(atk); flips > 0 {
		// Commit the suspended attack; GENERATE_COIN_FLIP resumes it.
		gs.QueueCoinFlip(game.FlipAttack, pi, flips, &game.PendingAttack{
			Player: pi, AttackName: name,
		})
		m.touch()
		return nil
	}
	ex.resolveAttack(m, pi, name, game.NewBitReader(nil))
	return nil
}

// resolveAttack runs the damage pipeline and effects, records the history
// entry with the resolved damage, then handles knockouts and turn end.
func (ex *Executor) resolveAttack(m *Match, pi int, attackName string, bits *game.BitReader) {
	gs := m.Game
	p := gs.Players[pi]
	active := p.Active
	atk, _ := active.Card.AttackByName(attackName)

	res := game.ResolveAttack(gs, pi, atk, bits)
	ex.append(m, pi, game.ActionAttack, map[string]any{
		"attackName": attackName,
		"damage":     res.Damage.Final,
		"knockedOut": res.KnockedOut,
	})

	di := gs.Opponent(pi)
	defender := gs.Players[di].Active
	if res.KnockedOut && defender != nil {
		game.ProcessKnockout(gs, di, defender, ex.lookup)
	}
	if res.SelfKnockedOut {
		game.ProcessKnockout(gs, pi, active, ex.lookup)
	}
	if ex.checkNoPokemon(m) {
		return
	}
	ex.afterInterrupts(m)
}

// afterInterrupts ends the turn once no prize selection or promotion is
// outstanding. Attacks always end the turn.
func (ex *Executor) afterInterrupts(m *Match) {
	gs := m.Game
	if gs.PendingPrizeSelects() > 0 || gs.PendingPromote[0] || gs.PendingPromote[1] {
		// Between-turns knockouts resolve inside the next turn and must not
		// consume it; only an attack interrupt defers an end-of-turn.
		if gs.Phase == game.PhaseAttack {
			gs.EndTurnAfterPromote = true
		}
		return
	}
	if gs.EndTurnAfterPromote || gs.Phase == game.PhaseAttack {
		gs.EndTurnAfterPromote = false
		ex.finishTurn(m)
	}
}

func (ex *Executor) execUseAbility(m *Match, pi int, data map[string]any) error {
	if err := ex.requireMainPhase(m, pi); err != nil {
		return err
	}
	gs := m.Game
	p := gs.Players[pi]
	id, ok := intField(data, "cardInstanceId")
	if !ok {
		return actionErrorf(ErrInvalidAction, "cardInstanceId is required")
	}
	owner := p.InPlayInstance(id)
	if owner == nil {
		return actionErrorf(ErrInvalidTarget, "card %d is not in play", id)
	}
	ability := owner.Card.Ability
	if ability == nil {
		return actionErrorf(ErrInvalidAction, "%s has no ability", owner.Card.Name)
	}
	if !game.CanUseAbility(owner, ability) {
		return actionErrorf(ErrRuleViolation, "ability %s cannot be used now", ability.Name)
	}
	var target *game.Instance
	if tid, ok := intField(data, "targetInstanceId"); ok {
		target = p.InPlayInstance(tid)
		if target == nil {
			return actionErrorf(ErrInvalidTarget, "target %d is not in play", tid)
		}
	}
	bits := game.NewBitReader(gs.FlipCoins(game.CountAbilityFlips(ability)))
	game.ApplyAbility(gs, pi, owner, ability, target, bits)
	ex.append(m, pi, game.ActionUseAbility, map[string]any{
		"cardInstanceId": id, "abilityName": ability.Name,
	})
	return nil
}

func (ex *Executor) execEndTurn(m *Match, pi int) error {
	if err := ex.requireTurn(m, pi); err != nil {
		return err
	}
	gs := m.Game
	if gs.PendingPrizeSelects() > 0 || gs.PendingPromote[0] || gs.PendingPromote[1] {
		return actionErrorf(ErrInvalidState, "knockout processing is still pending")
	}
	ex.append(m, pi, game.ActionEndTurn, nil)
	ex.finishTurn(m)
	return nil
}

func (ex *Executor) execConcede(m *Match, pi int) error {
	ex.append(m, pi, game.ActionConcede, nil)
	m.end(m.Game.Opponent(pi), game.WinConcede)
	return nil
}

func (ex *Executor) execSelectPrize(m *Match, pi int, data map[string]any) error {
	gs := m.Game
	if gs == nil || gs.PendingPrizeSelects() == 0 {
		return actionErrorf(ErrInvalidState, "no prize selection is pending")
	}
	if gs.PrizeSelectPlayer() != pi {
		return actionErrorf(ErrNotPlayerTurn, "it is not %s's prize selection", m.Players[pi].PlayerID)
	}
	idx, ok := intField(data, "prizeIndex")
	if !ok {
		return actionErrorf(ErrInvalidAction, "prizeIndex is required")
	}
	p := gs.Players[pi]
	in, err := p.DrawPrize(idx)
	if err != nil {
		return actionErrorf(ErrInvalidTarget, "%v", err)
	}
	gs.PopPrizeSelect()
	ex.append(m, pi, game.ActionSelectPrize, map[string]any{
		"prizeIndex": idx, "cardId": in.Card.ID, "prizesRemaining": p.PrizesRemaining(),
	})
	if p.PrizesRemaining() == 0 {
		m.end(pi, game.WinPrizeCards)
		return nil
	}
	if gs.PendingPrizeSelects() == 0 {
		ex.afterInterrupts(m)
	}
	return nil
}

// finishTurn runs between-turns processing, knockout fallout from status
// damage, and the win checks.
func (ex *Executor) finishTurn(m *Match) {
	gs := m.Game
	m.State = StateBetweenTurns
	res := game.ProcessBetweenTurns(gs)
	for _, ko := range res.KnockedOut {
		game.ProcessKnockout(gs, ko.Player, ko.Instance, ex.lookup)
	}
	if ex.checkNoPokemon(m) {
		return
	}
	m.State = StatePlayerTurn
	m.touch()
}

// checkNoPokemon ends the match when a player has no Pokemon left in play.
func (ex *Executor) checkNoPokemon(m *Match) bool {
	gs := m.Game
	for i, p := range gs.Players {
		if p.Active == nil && p.BenchCount() == 0 {
			m.end(gs.Opponent(i), game.WinNoPokemon)
			return true
		}
	}
	return false
}

func statusNames(in *game.Instance) []string {
	var out []string
	for s := range in.Status {
		out = append(out, s.String())
	}
	return out
}

// intField reads an int from action data, tolerating JSON float64.
func intField(data map[string]any, key string) (int, bool) {
	v, ok := data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func stringField(data map[string]any, key string) (string, bool) {
	v, ok := data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
