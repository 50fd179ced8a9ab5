package game

import (
	"math/rand"

	"github.com/uno-arena/server/uno/card"
	"github.com/uno-arena/server/uno/card/color"
)

// Match is the authoritative state of one running game. It is owned by a
// single coordinator for its whole lifetime and is not safe for concurrent
// mutation.
type Match struct {
	ID     int64
	HostID int64

	CurrentID int64
	NextID    int64

	// PendingDeclarerID is the player who must declare their last card
	// before the next turn resolves; 0 means nobody.
	PendingDeclarerID int64

	handSize  int
	rng       *rand.Rand
	players   map[int64]*Player
	joinOrder []int64
	order     *Cycler
	deck      *Deck
	pile      *Pile
}

func NewMatch(id, hostID int64, handSize int, rng *rand.Rand) *Match {
	return &Match{
		ID:       id,
		HostID:   hostID,
		handSize: handSize,
		rng:      rng,
		players:  map[int64]*Player{},
		pile:     NewPile(),
	}
}

func (m *Match) AddPlayer(player *Player) {
	if _, seated := m.players[player.ID]; seated {
		return
	}
	m.players[player.ID] = player
	m.joinOrder = append(m.joinOrder, player.ID)
}

// Start deals the starting hands, turns a neutral first card and shuffles
// the turn order.
func (m *Match) Start() {
	m.deck = NewDeck(m.rng)
	for i := 0; i < m.handSize; i++ {
		for _, playerID := range m.joinOrder {
			m.players[playerID].AddCards([]card.Card{m.deck.DrawOne()})
		}
	}
	firstCard := m.deck.DrawOne()
	for firstCard.IsSpecial() {
		// Rejected specials land under the neutral first card.
		m.pile.Add(firstCard)
		firstCard = m.deck.DrawOne()
	}
	m.pile.Add(firstCard)

	elements := make([]int64, len(m.joinOrder))
	copy(elements, m.joinOrder)
	m.rng.Shuffle(len(elements), func(i, j int) { elements[i], elements[j] = elements[j], elements[i] })
	m.order = NewCycler(elements)
	m.CurrentID = m.order.Current()
	m.NextID = m.order.Peek()
}

func (m *Match) Player(playerID int64) *Player {
	return m.players[playerID]
}

// Players returns the seated players in join order.
func (m *Match) Players() []*Player {
	players := make([]*Player, 0, len(m.joinOrder))
	for _, playerID := range m.joinOrder {
		players = append(players, m.players[playerID])
	}
	return players
}

func (m *Match) PlayerCount() int {
	return len(m.players)
}

func (m *Match) Order() []int64 {
	return m.order.Elements()
}

func (m *Match) TopCard() card.Card {
	return m.pile.Top()
}

func (m *Match) Deck() *Deck {
	return m.deck
}

func (m *Match) Pile() *Pile {
	return m.pile
}

// PlayCard removes the card from the player's hand, discards it and applies
// its effect. Wildcards arrive already recolored and swap cards with the
// target already resolved. Returns the id of the skipped player, if any.
func (m *Match) PlayCard(player *Player, playedCard card.Card, swapTargetID int64) int64 {
	if !player.RemoveCard(playedCard) && playedCard.IsWildcard() {
		// The hand still holds the resting-color version.
		player.RemoveCard(playedCard.WithColor(color.Black))
	}
	m.pile.Add(playedCard)
	var skippedID int64
	switch {
	case playedCard.IsSwapHands() && swapTargetID != 0:
		m.SwapHands(player.ID, swapTargetID)
	case playedCard.Value == card.DrawTwo:
		skippedID = m.skipNext()
		m.ForceDraw(m.players[skippedID], 2)
	case playedCard.Value == card.DrawFour:
		skippedID = m.skipNext()
		m.ForceDraw(m.players[skippedID], 4)
	case playedCard.Value == card.Block:
		skippedID = m.skipNext()
	case playedCard.Value == card.Reverse:
		if m.order.Len() == 2 {
			skippedID = m.skipNext()
		} else {
			m.order.Reverse()
		}
	}
	return skippedID
}

func (m *Match) skipNext() int64 {
	skippedID := m.order.Next()
	m.players[skippedID].SkippedCount++
	return skippedID
}

// AdvanceTurn rotates one step in the current direction and tops up the
// deck when it runs low.
func (m *Match) AdvanceTurn() {
	m.order.Next()
	m.CurrentID = m.order.Current()
	m.NextID = m.order.Peek()
	if m.deck.NeedsRefill() {
		m.deck.Refill()
	}
}

// DrawCard draws a single card unless the hand is at the cap.
func (m *Match) DrawCard(player *Player) (card.Card, bool) {
	if player.HandSize() >= MaxHandCards {
		return card.Card{}, false
	}
	drawnCard := m.deck.DrawOne()
	player.AddCards([]card.Card{drawnCard})
	return drawnCard, true
}

// ForceDraw draws up to amount cards, truncated so the hand never exceeds
// the cap. Exceeding the cap is not an error; the caller gets back whatever
// was actually drawn.
func (m *Match) ForceDraw(player *Player, amount int) []card.Card {
	if player.HandSize() >= MaxHandCards {
		return nil
	}
	if player.HandSize()+amount > MaxHandCards {
		amount = MaxHandCards - player.HandSize()
	}
	drawnCards := make([]card.Card, 0, amount)
	for i := 0; i < amount; i++ {
		drawnCard := m.deck.DrawOne()
		player.AddCards([]card.Card{drawnCard})
		drawnCards = append(drawnCards, drawnCard)
	}
	return drawnCards
}

// Winner returns the first player found with an empty hand.
func (m *Match) Winner() (int64, bool) {
	for _, playerID := range m.joinOrder {
		if m.players[playerID].NoCards() {
			return playerID, true
		}
	}
	return 0, false
}

// RemovePlayer excises a player from the match. A pending declare
// obligation leaves with them; it is voided, not transferred.
func (m *Match) RemovePlayer(playerID int64) {
	if m.PendingDeclarerID == playerID {
		m.PendingDeclarerID = 0
	}
	if _, seated := m.players[playerID]; !seated {
		return
	}
	delete(m.players, playerID)
	for index, candidate := range m.joinOrder {
		if candidate == playerID {
			m.joinOrder = append(m.joinOrder[:index], m.joinOrder[index+1:]...)
			break
		}
	}
	if m.order != nil {
		m.order.Remove(playerID)
		if m.order.Len() > 0 {
			m.CurrentID = m.order.Current()
			m.NextID = m.order.Peek()
		}
	}
}

func (m *Match) SwapHands(playerID, otherID int64) {
	player, other := m.players[playerID], m.players[otherID]
	player.hand, other.hand = other.hand, player.hand
}
