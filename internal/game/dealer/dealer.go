package dealer

import (
	"fmt"
	"math/rand"

	"CardTable/internal/game/variant"
)

// Dealer shuffles and deals; it knows no game rules.
type Dealer struct {
	rnd *rand.Rand
}

func NewDealer(seed int64) *Dealer {
	return &Dealer{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

// NewDeck returns a full, shuffled deck of v.
func (d *Dealer) NewDeck(v variant.Variant) *Deck {
	deck := NewDeck(v)
	deck.Shuffle(d.rnd)
	return deck
}

// DealHands deals one hand per seat. Nothing is drawn when the deck is short.
func (d *Dealer) DealHands(deck *Deck, players []string) (map[string]*Hand, error) {
	need := len(players) * deck.Variant().HandSize
	if deck.Size() < need {
		return nil, fmt.Errorf("%w: %d seats need %d, deck has %d",
			ErrInsufficientCards, len(players), need, deck.Size())
	}
	out := make(map[string]*Hand, len(players))
	for _, addr := range players {
		h, err := deck.Deal()
		if err != nil {
			return nil, err
		}
		out[addr] = h
	}
	return out, nil
}
