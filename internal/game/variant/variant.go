// Package variant describes the deck configurations the dealer supports.
// A Variant is plain data: which ranks are legal and in what order, the
// suit order, how many cards a hand holds and how many seats a table has.
package variant

import (
	"errors"
	"fmt"
	"strings"

	"CardTable/internal/game/card"
)

var ErrUnknownVariant = errors.New("unknown variant")

type Kind uint8

const (
	KindWar Kind = iota + 1
	KindBelote
	KindSixtySix
)

func (k Kind) String() string {
	switch k {
	case KindWar:
		return "war"
	case KindBelote:
		return "belote"
	case KindSixtySix:
		return "sixtysix"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type Variant struct {
	Kind     Kind
	Ranks    card.RankDomain
	Suits    card.SuitDomain
	HandSize int
	Seats    int
}

func (v Variant) Name() string { return v.Kind.String() }

// DeckSize is the number of cards in a freshly generated full deck.
func (v Variant) DeckSize() int {
	return v.Ranks.Len() * v.Suits.Len()
}

// Validate checks that c may appear in a deck of this variant.
func (v Variant) Validate(c card.Card) error {
	if !v.Suits.Contains(c.Suit) {
		return fmt.Errorf("%w: %s in %s", card.ErrInvalidSuit, c.Suit, v.Name())
	}
	if !v.Ranks.Contains(c.Rank) {
		return fmt.Errorf("%w: %s in %s", card.ErrInvalidRank, c.Rank, v.Name())
	}
	return nil
}

var (
	War = Variant{
		Kind:     KindWar,
		Ranks:    card.StandardRanks,
		Suits:    card.StandardSuits,
		HandSize: 26,
		Seats:    2,
	}

	// Belote ranks 10 between king and ace.
	Belote = Variant{
		Kind: KindBelote,
		Ranks: card.MustRankDomain(
			card.Seven, card.Eight, card.Nine, card.Jack,
			card.Queen, card.King, card.Ten, card.Ace,
		),
		Suits:    card.StandardSuits,
		HandSize: 8,
		Seats:    4,
	}

	SixtySix = Variant{
		Kind: KindSixtySix,
		Ranks: card.MustRankDomain(
			card.Nine, card.Jack, card.Queen, card.King, card.Ten, card.Ace,
		),
		Suits:    card.StandardSuits,
		HandSize: 6,
		Seats:    2,
	}
)

// All lists the supported variants in a stable order.
func All() []Variant {
	return []Variant{War, Belote, SixtySix}
}

// Lookup resolves a variant by name, case-insensitively.
func Lookup(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, v := range All() {
		if v.Name() == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Info is the JSON shape of a variant in the catalogue endpoint.
type Info struct {
	Name     string      `json:"name"`
	Ranks    []card.Rank `json:"ranks"`
	Suits    []card.Suit `json:"suits"`
	HandSize int         `json:"handSize"`
	Seats    int         `json:"seats"`
	DeckSize int         `json:"deckSize"`
}

func (v Variant) Info() Info {
	return Info{
		Name:     v.Name(),
		Ranks:    v.Ranks.Ranks(),
		Suits:    v.Suits.Suits(),
		HandSize: v.HandSize,
		Seats:    v.Seats,
		DeckSize: v.DeckSize(),
	}
}
