package game

import (
	"math/rand"

	"github.com/peterkuimelis/ptcgd/internal/card"
	"github.com/peterkuimelis/ptcgd/internal/log"
)

// CoinFlipStatus tracks the orthogonal coin-flip machine.
type CoinFlipStatus int

const (
	FlipReady CoinFlipStatus = iota // READY_TO_FLIP
	FlipResult
	FlipCompleted
)

func (s CoinFlipStatus) String() string {
	switch s {
	case FlipReady:
		return "READY_TO_FLIP"
	case FlipResult:
		return "FLIP_RESULT"
	default:
		return "COMPLETED"
	}
}

// CoinFlipContext names what the pending flip decides.
type CoinFlipContext int

const (
	FlipFirstPlayer CoinFlipContext = iota
	FlipAttack
	FlipAttackPrecondition
)

func (c CoinFlipContext) String() string {
	switch c {
	case FlipFirstPlayer:
		return "FIRST_PLAYER"
	case FlipAttack:
		return "ATTACK"
	default:
		return "ATTACK_PRECONDITION"
	}
}

// PendingAttack is an attack suspended on a coin flip. The intermediate
// state commits and the match waits for GENERATE_COIN_FLIP.
type PendingAttack struct {
	Player     int
	AttackName string
}

// CoinFlipState is the orthogonal coin-flip machine on GameState.
type CoinFlipState struct {
	Status         CoinFlipStatus
	Context        CoinFlipContext
	Owner          int // player index that queued the flip
	FlipsRemaining int
	ResultBits     []bool
	Pending        *PendingAttack
}

// GameState is the complete in-match state for both players.
type GameState struct {
	Players       [2]*PlayerState
	TurnNumber    int // 1-based once PLAYER_TURN begins
	Phase         TurnPhase
	CurrentPlayer int // index into Players
	FirstPlayer   int

	History      *log.History
	CoinFlip     *CoinFlipState
	Stadium      *Instance
	StadiumOwner int // seat that played the current stadium

	// Knockout bookkeeping: set when a knockout interrupts the turn flow.
	PrizeQueue          []int   // player indexes owed a prize selection, head first
	PendingPromote      [2]bool // player must choose a new active
	EndTurnAfterPromote bool

	Seed   int64
	rng    *rand.Rand
	nextID int
}

// NewGameState creates a fresh state with a seeded PRNG. All in-match
// randomness (shuffles, coin flips, random selection) flows through it so a
// recorded seed replays deterministically.
func NewGameState(player1ID, player2ID string, seed int64) *GameState {
	return &GameState{
		Players: [2]*PlayerState{
			{PlayerID: player1ID},
			{PlayerID: player2ID},
		},
		Seed: seed,
		rng:  rand.New(rand.NewSource(seed)),

		History: log.NewHistory(),
	}
}

// NextInstanceID allocates a per-match card instance id.
func (gs *GameState) NextInstanceID() int {
	gs.nextID++
	return gs.nextID
}

// NewInstance creates a runtime instance of a catalog card.
func (gs *GameState) NewInstance(c *card.Card) *Instance {
	in := &Instance{
		InstanceID: gs.NextInstanceID(),
		Card:       c,
		Position:   PositionDeck,
	}
	if c.CardType == card.TypePokemon {
		in.CurrentHP = c.HP
		in.MaxHP = c.HP
	}
	return in
}

// LoadDeck materializes card definitions into a player's deck zone.
func (gs *GameState) LoadDeck(player int, cards []*card.Card) {
	p := gs.Players[player]
	for _, c := range cards {
		in := gs.NewInstance(c)
		p.Deck = append(p.Deck, in)
	}
}

// ShuffleDeck randomizes a player's deck through the match PRNG.
func (gs *GameState) ShuffleDeck(player int) {
	deck := gs.Players[player].Deck
	gs.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// FlipCoin draws one random bit from the match PRNG. True is heads.
func (gs *GameState) FlipCoin() bool {
	return gs.rng.Intn(2) == 0
}

// FlipCoins draws n random bits.
func (gs *GameState) FlipCoins(n int) []bool {
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = gs.FlipCoin()
	}
	return bits
}

// RandIntn exposes the match PRNG for random selectors.
func (gs *GameState) RandIntn(n int) int {
	return gs.rng.Intn(n)
}

// Opponent returns the other player's index.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// Current returns the turn player's state.
func (gs *GameState) Current() *PlayerState {
	return gs.Players[gs.CurrentPlayer]
}

// PlayerIndex resolves a player id to an index, or -1.
func (gs *GameState) PlayerIndex(playerID string) int {
	for i, p := range gs.Players {
		if p.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// CreditPrize queues one prize selection owed to the player. Credits pop in
// knockout order, so a double knockout pays each side its own prize.
func (gs *GameState) CreditPrize(player int) {
	gs.PrizeQueue = append(gs.PrizeQueue, player)
}

// PendingPrizeSelects returns how many prize selections are owed.
func (gs *GameState) PendingPrizeSelects() int {
	return len(gs.PrizeQueue)
}

// PrizeSelectPlayer returns the player owed the next selection, or -1.
func (gs *GameState) PrizeSelectPlayer() int {
	if len(gs.PrizeQueue) == 0 {
		return -1
	}
	return gs.PrizeQueue[0]
}

// PopPrizeSelect consumes the head prize credit.
func (gs *GameState) PopPrizeSelect() {
	if len(gs.PrizeQueue) > 0 {
		gs.PrizeQueue = gs.PrizeQueue[1:]
	}
}

// QueueCoinFlip arms the coin-flip machine with n flips.
func (gs *GameState) QueueCoinFlip(ctx CoinFlipContext, owner, flips int, pending *PendingAttack) {
	gs.CoinFlip = &CoinFlipState{
		Status:         FlipReady,
		Context:        ctx,
		Owner:          owner,
		FlipsRemaining: flips,
		Pending:        pending,
	}
}

// GenerateFlips resolves a READY_TO_FLIP state into FLIP_RESULT bits.
func (gs *GameState) GenerateFlips() []bool {
	cf := gs.CoinFlip
	cf.ResultBits = gs.FlipCoins(cf.FlipsRemaining)
	cf.FlipsRemaining = 0
	cf.Status = FlipResult
	return cf.ResultBits
}

// CompleteCoinFlip marks the bits consumed and clears the machine.
func (gs *GameState) CompleteCoinFlip() {
	if gs.CoinFlip != nil {
		gs.CoinFlip.Status = FlipCompleted
	}
	gs.CoinFlip = nil
}

// Append records a history entry and returns its action id.
func (gs *GameState) Append(e log.ActionSummary) int {
	return gs.History.Append(e)
}

// LastActionID returns the id of the most recent history entry.
func (gs *GameState) LastActionID() int {
	return gs.History.LastID()
}
