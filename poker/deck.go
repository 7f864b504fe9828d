package poker

// RandSource is the permutation oracle injected by the caller to make
// deals reproducible. It exposes exactly the primitive Fisher-Yates
// needs: a uniform integer in [0, n).
type RandSource interface {
	Intn(n int) int
}

var fullDeck []Card

func init() {
	fullDeck = make([]Card, 0, 52)
	for _, rank := range strRanks {
		rankInt := charRankToIntRank[byte(rank)]
		for _, suitInt := range []int32{Spades, Hearts, Diamonds, Clubs} {
			fullDeck = append(fullDeck, newCard(rankInt, suitInt))
		}
	}
}

// Deck is a mutable, drawable sequence of cards. A fresh Deck holds all
// 52 cards in a fixed order; NewShuffledDeck randomizes it via the
// caller's RandSource so that the same source produces the same deal.
type Deck struct {
	cards []Card
}

// NewDeck returns a deck in canonical (unshuffled) order.
func NewDeck() *Deck {
	d := &Deck{cards: make([]Card, len(fullDeck))}
	copy(d.cards, fullDeck)
	return d
}

// NewShuffledDeck returns a deck shuffled with Fisher-Yates driven by
// rng. The same rng sequence always yields the same deck order.
func NewShuffledDeck(rng RandSource) *Deck {
	d := NewDeck()
	d.Shuffle(rng)
	return d
}

// Shuffle re-randomizes the deck in place using Fisher-Yates.
func (d *Deck) Shuffle(rng RandSource) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top n cards of the deck.
func (d *Deck) Draw(n int) []Card {
	if n > len(d.cards) {
		panic("poker: draw exceeds remaining deck size")
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards
}

// Burn discards the top card of the deck without returning it.
func (d *Deck) Burn() {
	d.Draw(1)
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

func (d *Deck) String() string {
	return CardsToString(d.cards)
}
