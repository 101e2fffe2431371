package dealer

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"CardTable/internal/game/card"
	"CardTable/internal/game/variant"
)

var (
	ErrEmptyDeck         = errors.New("deck is empty")
	ErrInsufficientCards = errors.New("not enough cards to deal")
	ErrDuplicateCard     = errors.New("duplicate card")
)

// Deck is an ordered pile of unique cards; index 0 is the top.
// Not safe for concurrent use: whoever holds the deck owns it.
type Deck struct {
	variant variant.Variant
	cards   []card.Card
}

// NewDeck generates the full deck of v: ranks outer, suits inner, both in
// domain order.
func NewDeck(v variant.Variant) *Deck {
	cards := make([]card.Card, 0, v.DeckSize())
	for _, r := range v.Ranks.Ranks() {
		for _, s := range v.Suits.Suits() {
			cards = append(cards, card.Card{Rank: r, Suit: s})
		}
	}
	return &Deck{variant: v, cards: cards}
}

// FromCards builds a deck from a caller-supplied order. Every card must
// belong to v and appear once.
func FromCards(v variant.Variant, cards []card.Card) (*Deck, error) {
	seen := make(map[card.Card]struct{}, len(cards))
	for _, c := range cards {
		if err := v.Validate(c); err != nil {
			return nil, err
		}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen[c] = struct{}{}
	}
	return &Deck{variant: v, cards: slices.Clone(cards)}, nil
}

func (d *Deck) Variant() variant.Variant { return d.variant }

func (d *Deck) Size() int { return len(d.cards) }

// Cards returns a copy of the deck in its current order.
func (d *Deck) Cards() []card.Card { return slices.Clone(d.cards) }

func (d *Deck) TopCard() (card.Card, error) {
	if len(d.cards) == 0 {
		return card.Card{}, ErrEmptyDeck
	}
	return d.cards[0], nil
}

func (d *Deck) BottomCard() (card.Card, error) {
	if len(d.cards) == 0 {
		return card.Card{}, ErrEmptyDeck
	}
	return d.cards[len(d.cards)-1], nil
}

func (d *Deck) DrawTop() (card.Card, error) {
	if len(d.cards) == 0 {
		return card.Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

func (d *Deck) DrawBottom() (card.Card, error) {
	if len(d.cards) == 0 {
		return card.Card{}, ErrEmptyDeck
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, nil
}

// Shuffler is the random source used by Shuffle. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Shuffle permutes the deck in place.
func (d *Deck) Shuffle(src Shuffler) {
	src.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Sort orders the deck by suit ascending, then by rank descending so the
// strongest card of each suit comes first.
func (d *Deck) Sort() {
	suitIdx := func(c card.Card) int { i, _ := d.variant.Suits.Index(c.Suit); return i }
	rankIdx := func(c card.Card) int { i, _ := d.variant.Ranks.Index(c.Rank); return i }
	slices.SortStableFunc(d.cards, func(a, b card.Card) int {
		if c := cmp.Compare(suitIdx(a), suitIdx(b)); c != 0 {
			return c
		}
		return cmp.Compare(rankIdx(b), rankIdx(a))
	})
}

// Deal removes a hand-sized prefix from the top and hands it over. On
// ErrInsufficientCards the deck is left untouched.
func (d *Deck) Deal() (*Hand, error) {
	n := d.variant.HandSize
	if len(d.cards) < n {
		return nil, fmt.Errorf("%w: %s needs %d, deck has %d",
			ErrInsufficientCards, d.variant.Name(), n, len(d.cards))
	}
	dealt := slices.Clone(d.cards[:n])
	d.cards = d.cards[n:]
	return newHand(d.variant, dealt), nil
}

func (d *Deck) String() string {
	return card.Render(d.cards)
}
