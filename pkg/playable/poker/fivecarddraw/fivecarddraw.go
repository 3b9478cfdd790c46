package fivecarddraw

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/JanBanasik/PokerGame/pkg/deck"
	"github.com/JanBanasik/PokerGame/pkg/playable"
	"github.com/JanBanasik/PokerGame/pkg/poker"
)

const maxParticipants = 10
const handSize = 5

// table patter
const (
	foldedPlayerMessage  = "You folded, you cannot perform an action!"
	waitingPlayerMessage = "Waiting for your turn..."
	invalidActionMessage = "Invalid action. Possible actions are: check, bet, raise, call, or fold."
	invalidInputMessage  = "Invalid input!"
	badRequestMessage    = "Invalid request, please try again"
	notYourTurnMessage   = "It's not your turn."

	bettingTurnPrompt = "Your turn! What do you want to do?\n" +
		"Possible operations are:" +
		"\n-check" +
		"\n-bet (in format like bet #amountofMoney)" +
		"\n-fold" +
		"\n-raise (in format like raise #amountofMoney)" +
		"\n-call" +
		"\n\n*Current bet is: %d*" +
		"\n\nChoice: "

	exchangeTurnPrompt = "What cards do you want to exchange?" +
		"\nProvide your input in a way like: #number #number #number eg. 1 2 3" +
		"\nJust to remind you, your cards are: %s"
)

// seed of 0 means a crypto-random shuffle
// setting to a global so we can override in a test
var seed int64

// Game is a single-table game of five-card draw poker.
// All state is owned by the table run loop; no method may be called
// concurrently.
type Game struct {
	logger    logrus.FieldLogger
	messenger playable.Messenger
	options   Options

	phase              Phase
	deck               *deck.Deck
	participants       []*Participant
	folded             map[int]bool
	discards           []*deck.Card
	pot                int
	currentBet         int
	currentPlayerIndex int
	roundPossiblyEnded bool
	handUUID           string
}

// NewGame returns a new five-card draw game in its idle state.
// Call Configure to open the table for players.
func NewGame(logger logrus.FieldLogger, messenger playable.Messenger, options Options) (*Game, error) {
	if messenger == nil {
		return nil, errors.New("messenger is required")
	}

	if err := validateOptions(options.MaxPlayers, options.Ante); err != nil {
		return nil, err
	}

	return &Game{
		logger:    logger,
		messenger: messenger,
		options:   options,
		folded:    make(map[int]bool),
	}, nil
}

func validateOptions(maxPlayers, ante int) error {
	if ante <= 0 {
		return errors.New("ante must be greater than zero")
	}

	if maxPlayers < 2 {
		return errors.New("you must have at least two participants")
	}

	if maxPlayers > maxParticipants {
		return fmt.Errorf("you cannot have more than %d participants", maxParticipants)
	}

	return nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return "Five Card Draw"
}

// Configure opens the table: the pot is seeded with every seat's ante and
// players may join until the table fills.
func (g *Game) Configure(maxPlayers, ante int) error {
	if g.phase != PhaseIdle {
		return errors.New("a game is already in progress")
	}

	if err := validateOptions(maxPlayers, ante); err != nil {
		return err
	}

	g.options = Options{MaxPlayers: maxPlayers, Ante: ante}
	g.participants = make([]*Participant, 0, maxPlayers)
	g.folded = make(map[int]bool)
	g.pot = maxPlayers * ante
	g.currentBet = 0
	g.currentPlayerIndex = 0
	g.roundPossiblyEnded = false
	g.phase = PhaseSetup

	g.logger.WithFields(logrus.Fields{
		"maxPlayers": maxPlayers,
		"ante":       ante,
	}).Info("table open, looking for players")

	return nil
}

// AddPlayer seats a connected client. The final seat starts the hand.
func (g *Game) AddPlayer(id int) error {
	if g.phase != PhaseSetup || len(g.participants) >= g.options.MaxPlayers {
		return playable.ErrGameFull
	}

	g.participants = append(g.participants, newParticipant(id))
	g.logger.WithFields(logrus.Fields{
		"playerId": id,
		"seated":   len(g.participants),
		"seats":    g.options.MaxPlayers,
	}).Info("player joined")

	if len(g.participants) == g.options.MaxPlayers {
		return g.StartHand()
	}

	return nil
}

// StartHand shuffles a fresh deck, deals five cards to every player and
// opens the first betting round.
func (g *Game) StartHand() error {
	if g.phase != PhaseSetup {
		return errors.New("the table is not ready to start")
	}

	if len(g.participants) != g.options.MaxPlayers {
		return errors.New("waiting on more players")
	}

	g.handUUID = uuid.New().String()
	g.deck = deck.New()
	g.deck.Shuffle(seed)
	g.discards = nil

	for _, p := range g.participants {
		for i := 0; i < handSize; i++ {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}

			p.hand.AddCard(card)
		}
	}

	g.notifyPlayersAboutTheirCards()
	g.messenger.Broadcast("Gentlemen, we are starting our bets!")

	g.phase = PhaseFirstBetting
	g.currentPlayerIndex = 0
	g.currentBet = 0
	g.roundPossiblyEnded = false
	g.promptBetting()

	g.logger.WithFields(logrus.Fields{
		"hand":    g.handUUID,
		"players": len(g.participants),
		"deck":    g.deck.HashCode(),
	}).Info("hand started")

	return nil
}

// HandleMessage processes one text message from a client. Rule violations
// and malformed input are answered with a rejection and consume nothing.
func (g *Game) HandleMessage(id int, text string) {
	text = strings.TrimSpace(text)

	p := g.participantByID(id)
	if p == nil {
		g.logger.WithField("playerId", id).Warn("message from unknown player")
		return
	}

	if g.folded[id] {
		g.messenger.SendTo(id, foldedPlayerMessage)
		return
	}

	if !g.phase.isBetting() && g.phase != PhaseExchange {
		g.messenger.SendTo(id, "The hand has not started yet.")
		return
	}

	if g.participants[g.currentPlayerIndex].PlayerID != id {
		g.messenger.SendTo(id, notYourTurnMessage)
		return
	}

	g.logger.WithFields(logrus.Fields{
		"hand":     g.handUUID,
		"playerId": id,
		"input":    text,
	}).Debug("handling action")

	var advance bool
	if g.phase.isBetting() {
		advance = g.handleBetting(p, text)
	} else {
		advance = g.handleExchange(p, text)
	}

	if advance {
		g.advanceTurn()
	}
}

// handleBetting applies one betting action. It returns true when the action
// consumed the turn.
func (g *Game) handleBetting(p *Participant, text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		g.messenger.SendTo(p.PlayerID, invalidActionMessage)
		return false
	}

	action, err := ActionFromString(fields[0])
	if err != nil {
		g.messenger.SendTo(p.PlayerID, invalidActionMessage)
		return false
	}

	amount := 0
	if action.requiresAmount() {
		if len(fields) < 2 {
			g.messenger.SendTo(p.PlayerID, badRequestMessage)
			return false
		}

		amount, err = strconv.Atoi(fields[1])
		if err != nil || amount <= 0 {
			g.messenger.SendTo(p.PlayerID, badRequestMessage)
			return false
		}
	}

	switch action {
	case ActionCheck:
		if g.currentBet > 0 {
			g.messenger.SendTo(p.PlayerID, "You cannot check, there's a bet in play!")
			return false
		}

		g.messenger.Broadcast(fmt.Sprintf("Player %d checks", p.PlayerID))

	case ActionBet:
		if g.currentBet != 0 {
			g.messenger.SendTo(p.PlayerID, "Bet has already begun, you can only raise!")
			return false
		}

		g.currentBet = amount
		p.betInRound = amount
		g.messenger.Broadcast(fmt.Sprintf("Player %d bets %d", p.PlayerID, amount))

	case ActionRaise:
		if amount <= g.currentBet {
			g.messenger.SendTo(p.PlayerID, "Raise amount must exceed the bet!")
			return false
		}

		if g.currentBet == 0 {
			g.messenger.SendTo(p.PlayerID, "There is no bet currently!")
			return false
		}

		g.currentBet = amount
		p.betInRound = amount
		g.messenger.Broadcast(fmt.Sprintf("Player %d raises to %d", p.PlayerID, amount))

	case ActionCall:
		if g.currentBet-p.betInRound <= 0 {
			g.messenger.SendTo(p.PlayerID, "Nothing to call, you are already at the current bet.")
			return false
		}

		p.betInRound = g.currentBet
		g.messenger.Broadcast(fmt.Sprintf("Player %d calls", p.PlayerID))

	case ActionFold:
		g.folded[p.PlayerID] = true
		g.messenger.Broadcast(fmt.Sprintf("Player %d folded", p.PlayerID))

		if winner := g.soleActivePlayer(); winner != nil {
			g.messenger.Broadcast(fmt.Sprintf("The winner is: %d as all players except him folded!", winner.PlayerID))
			g.declareSoleWinner(winner)
			return false
		}
	}

	return true
}

// handleExchange trades the cards at the requested 1-based positions for
// fresh ones. An empty request trades nothing. Returns true when the
// request consumed the turn.
func (g *Game) handleExchange(p *Participant, text string) bool {
	positions := make([]int, 0, handSize)
	for _, field := range strings.Fields(text) {
		n, err := strconv.Atoi(field)
		if err != nil {
			g.messenger.SendTo(p.PlayerID, invalidInputMessage)
			return false
		}

		positions = append(positions, n)
	}

	if err := g.exchangeCards(p, positions); err != nil {
		g.messenger.SendTo(p.PlayerID, invalidInputMessage)
		return false
	}

	return true
}

// exchangeCards removes the requested positions, highest first so the
// remaining indices stay stable, then draws back up to a full hand.
func (g *Game) exchangeCards(p *Participant, positions []int) error {
	sorted := make([]int, len(positions))
	copy(sorted, positions)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	for i, pos := range sorted {
		if pos < 1 || pos > len(p.hand) {
			return fmt.Errorf("position %d is out of range", pos)
		}

		if i > 0 && sorted[i-1] == pos {
			return fmt.Errorf("position %d repeated", pos)
		}
	}

	for _, pos := range sorted {
		card, ok := p.hand.RemoveAt(pos - 1)
		if !ok {
			return fmt.Errorf("position %d is out of range", pos)
		}

		g.discards = append(g.discards, card)
	}

	for len(p.hand) < handSize {
		if !g.deck.CanDraw(1) {
			g.deck.ShuffleDiscards(g.discards)
			g.discards = nil
		}

		card, err := g.deck.Draw()
		if err != nil {
			return err
		}

		p.hand.AddCard(card)
	}

	return nil
}

// advanceTurn moves the turn pointer to the next active player and drives
// the phase machine when the table wraps around.
func (g *Game) advanceTurn() {
	prev := g.currentPlayerIndex
	g.nextValidPlayerIndex()
	if g.currentPlayerIndex < prev {
		g.roundPossiblyEnded = true
	}

	if g.roundPossiblyEnded {
		if g.phase.isBetting() {
			if g.endBetting() && g.phase == PhaseFirstBetting {
				g.phase = PhaseExchange
			}
		} else if g.phase == PhaseExchange {
			g.notifyPlayersAboutTheirCards()
			g.messenger.Broadcast("Gentlemen, as the card exchange has come to an end,\n" +
				"we will now proceed with the second betting round!")
			g.roundPossiblyEnded = false
			g.phase = PhaseSecondBetting
		}
	}

	if g.phase.isBetting() && !g.roundPossiblyEnded {
		g.promptBetting()
	} else if g.phase == PhaseExchange {
		g.promptExchange()
	}
}

// endBetting settles the round if every active player matched the bet,
// sweeping the round's bets into the pot. When the bets are uneven the turn
// re-targets the first short player instead.
func (g *Game) endBetting() bool {
	if !poker.BettingSettled(g.betsByID(), g.folded) {
		g.forceBetting()
		return false
	}

	for _, p := range g.participants {
		g.pot += p.betInRound
		p.betInRound = 0
	}
	g.currentBet = 0

	for i, p := range g.participants {
		if !g.folded[p.PlayerID] {
			g.currentPlayerIndex = i
			break
		}
	}
	g.roundPossiblyEnded = false

	g.logger.WithFields(logrus.Fields{
		"hand":  g.handUUID,
		"phase": g.phase.String(),
		"pot":   g.pot,
	}).Info("betting round settled")

	if g.phase == PhaseFirstBetting {
		g.messenger.Broadcast(fmt.Sprintf(
			"Gentlemen, as the first betting has come to an end, "+
				"you can now exchange your cards. "+
				"Current pot is now: %d", g.pot))
	} else {
		g.messenger.Broadcast(fmt.Sprintf(
			"Gentlemen, as the second betting has come to an end, "+
				"we will now proceed with a showdown! "+
				"Current pot is now: %d", g.pot))

		g.performShowdown()
	}

	return true
}

// forceBetting prompts only the first active player who still owes money;
// everyone else waits.
func (g *Game) forceBetting() {
	found := false
	for i, p := range g.participants {
		switch {
		case g.folded[p.PlayerID]:
			g.messenger.SendTo(p.PlayerID, foldedPlayerMessage)
		case !found && p.betInRound < g.currentBet:
			g.currentPlayerIndex = i
			found = true
			g.messenger.SendTo(p.PlayerID, fmt.Sprintf(
				"You need to call, raise or fold\nCurrent bet is %d\nChoice: ", g.currentBet))
		default:
			g.messenger.SendTo(p.PlayerID, waitingPlayerMessage)
		}
	}
}

func (g *Game) promptBetting() {
	for i, p := range g.participants {
		switch {
		case g.folded[p.PlayerID]:
			g.messenger.SendTo(p.PlayerID, foldedPlayerMessage)
		case i == g.currentPlayerIndex:
			g.messenger.SendTo(p.PlayerID, fmt.Sprintf(bettingTurnPrompt, g.currentBet))
		default:
			g.messenger.SendTo(p.PlayerID, waitingPlayerMessage)
		}
	}
}

func (g *Game) promptExchange() {
	for i, p := range g.participants {
		switch {
		case g.folded[p.PlayerID]:
			g.messenger.SendTo(p.PlayerID, foldedPlayerMessage)
		case i == g.currentPlayerIndex:
			g.messenger.SendTo(p.PlayerID, fmt.Sprintf(exchangeTurnPrompt, p.handString()))
		default:
			g.messenger.SendTo(p.PlayerID, waitingPlayerMessage)
		}
	}
}

func (g *Game) notifyPlayersAboutTheirCards() {
	for _, p := range g.participants {
		g.messenger.SendTo(p.PlayerID, "Your cards: "+p.handString())
	}
}

// performShowdown reveals every remaining hand, announces the winner(s) and
// resets the table.
func (g *Game) performShowdown() {
	analyzers := make(map[int]*poker.HandAnalyzer)
	for _, p := range g.participants {
		if g.folded[p.PlayerID] {
			g.messenger.Broadcast(fmt.Sprintf("Player %d is already folded", p.PlayerID))
			continue
		}

		analyzer, err := poker.NewHandAnalyzer(p.hand)
		if err != nil {
			// hands always hold five cards during a showdown
			panic(err)
		}

		analyzers[p.PlayerID] = analyzer
		g.messenger.Broadcast(fmt.Sprintf("Player %d cards are: %s\nWhich gives them: %s",
			p.PlayerID, p.handString(), analyzer.GetHand()))
	}

	winners := g.decideWinners(analyzers)
	g.messenger.Broadcast(winnersMessage(winners, g.pot))
	g.awardPot(winners)
	g.finishGame()
}

// decideWinners picks the strongest classification, breaking ties on the
// tie-break key; every key-tie is a co-winner.
func (g *Game) decideWinners(analyzers map[int]*poker.HandAnalyzer) []*Participant {
	var best *poker.HandAnalyzer
	var winners []*Participant

	for _, p := range g.participants {
		analyzer, ok := analyzers[p.PlayerID]
		if !ok {
			continue
		}

		if best == nil || analyzer.GetHand() > best.GetHand() {
			best = analyzer
			winners = []*Participant{p}
			continue
		}

		if analyzer.GetHand() == best.GetHand() {
			switch poker.CompareTieBreaks(best.GetTieBreak(), analyzer.GetTieBreak()) {
			case poker.Tie:
				winners = append(winners, p)
			case poker.SecondWins:
				best = analyzer
				winners = []*Participant{p}
			case poker.FirstWins:
				// existing winners stand
			}
		}
	}

	return winners
}

// awardPot splits the pot between the winners. An odd remainder goes to the
// earliest-joined winner.
func (g *Game) awardPot(winners []*Participant) {
	if len(winners) == 0 {
		return
	}

	share := g.pot / len(winners)
	remainder := g.pot % len(winners)

	for i, p := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}

		g.logger.WithFields(logrus.Fields{
			"hand":     g.handUUID,
			"playerId": p.PlayerID,
			"amount":   amount,
		}).Info("pot awarded")
	}
}

func winnersMessage(winners []*Participant, pot int) string {
	if len(winners) == 1 {
		return fmt.Sprintf("The winner is:\n-Player %d\nHe won: %d", winners[0].PlayerID, pot)
	}

	var sb strings.Builder
	sb.WriteString("The winners are:")
	for _, p := range winners {
		sb.WriteString(fmt.Sprintf("\n-Player %d", p.PlayerID))
	}
	sb.WriteString(fmt.Sprintf("\nThey split the pot of: %d equally", pot))

	return sb.String()
}

// declareSoleWinner ends the hand early: outstanding round bets sweep into
// the pot and the last active player takes everything.
func (g *Game) declareSoleWinner(p *Participant) {
	for _, q := range g.participants {
		g.pot += q.betInRound
		q.betInRound = 0
	}
	g.currentBet = 0

	g.messenger.Broadcast(winnersMessage([]*Participant{p}, g.pot))
	g.awardPot([]*Participant{p})
	g.finishGame()
}

// finishGame closes every connection, clears the state and immediately
// re-opens the table for the next hand.
func (g *Game) finishGame() {
	g.logger.WithField("hand", g.handUUID).Info("hand finished, table resetting")
	g.messenger.CloseAll()
	g.reset()

	if err := g.Configure(g.options.MaxPlayers, g.options.Ante); err != nil {
		g.logger.WithError(err).Error("could not re-open the table")
	}
}

func (g *Game) reset() {
	g.phase = PhaseIdle
	g.participants = nil
	g.folded = make(map[int]bool)
	g.deck = nil
	g.discards = nil
	g.pot = 0
	g.currentBet = 0
	g.currentPlayerIndex = 0
	g.roundPossiblyEnded = false
	g.handUUID = ""
}

// RemoveClient handles a peer disconnect. The roster shrinks and play
// continues; dropping to a single active player ends the hand in their
// favor.
func (g *Game) RemoveClient(id int) {
	idx := -1
	for i, p := range g.participants {
		if p.PlayerID == id {
			idx = i
			break
		}
	}

	if idx == -1 {
		return
	}

	inHand := g.phase.isBetting() || g.phase == PhaseExchange

	g.participants = append(g.participants[:idx], g.participants[idx+1:]...)
	delete(g.folded, id)

	if idx < g.currentPlayerIndex {
		g.currentPlayerIndex--
	}
	if g.currentPlayerIndex >= len(g.participants) {
		g.currentPlayerIndex = 0
	}

	g.logger.WithFields(logrus.Fields{
		"hand":     g.handUUID,
		"playerId": id,
	}).Info("player disconnected")

	if !inHand {
		return
	}

	active := g.activeParticipants()
	switch len(active) {
	case 0:
		g.finishGame()
		return
	case 1:
		g.messenger.Broadcast(fmt.Sprintf("The winner is: %d as all players except him folded!", active[0].PlayerID))
		g.declareSoleWinner(active[0])
		return
	}

	if g.folded[g.participants[g.currentPlayerIndex].PlayerID] {
		g.nextValidPlayerIndex()
	}

	if g.phase.isBetting() && g.roundPossiblyEnded {
		if g.endBetting() && g.phase == PhaseFirstBetting {
			g.phase = PhaseExchange
			g.promptExchange()
		}
		return
	}

	if g.phase.isBetting() {
		g.promptBetting()
	} else {
		g.promptExchange()
	}
}

// IsRunning returns true from the moment the table opens until the hand
// resolves and the state resets.
func (g *Game) IsRunning() bool {
	return g.phase != PhaseIdle
}

func (g *Game) participantByID(id int) *Participant {
	for _, p := range g.participants {
		if p.PlayerID == id {
			return p
		}
	}

	return nil
}

func (g *Game) activeParticipants() []*Participant {
	active := make([]*Participant, 0, len(g.participants))
	for _, p := range g.participants {
		if !g.folded[p.PlayerID] {
			active = append(active, p)
		}
	}

	return active
}

func (g *Game) soleActivePlayer() *Participant {
	active := g.activeParticipants()
	if len(active) == 1 {
		return active[0]
	}

	return nil
}

func (g *Game) betsByID() map[int]int {
	bets := make(map[int]int, len(g.participants))
	for _, p := range g.participants {
		bets[p.PlayerID] = p.betInRound
	}

	return bets
}

func (g *Game) nextValidPlayerIndex() {
	for {
		g.currentPlayerIndex = (g.currentPlayerIndex + 1) % len(g.participants)
		if !g.folded[g.participants[g.currentPlayerIndex].PlayerID] {
			return
		}
	}
}
