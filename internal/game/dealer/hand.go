package dealer

import (
	"errors"
	"fmt"
	"slices"

	"CardTable/internal/game/card"
	"CardTable/internal/game/variant"
)

var (
	ErrEmptyHand       = errors.New("hand is empty")
	ErrVariantMismatch = errors.New("hand belongs to another variant")
)

// Hand holds the cards removed from a deck by Deal. The variant is kept
// only to answer rank/suit questions; the hand owns its cards.
type Hand struct {
	variant variant.Variant
	cards   []card.Card
}

func newHand(v variant.Variant, cards []card.Card) *Hand {
	return &Hand{variant: v, cards: cards}
}

func (h *Hand) Variant() variant.Variant { return h.variant }

func (h *Hand) Size() int { return len(h.cards) }

func (h *Hand) Cards() []card.Card { return slices.Clone(h.cards) }

func (h *Hand) String() string { return card.Render(h.cards) }

// FetchCards returns, in hand order, the cards whose rank is in ranks and
// whose suit is not in excludeSuits. No match is an empty result, not an
// error; asking about a rank or suit outside the variant is.
func (h *Hand) FetchCards(ranks []card.Rank, excludeSuits ...card.Suit) ([]card.Card, error) {
	for _, r := range ranks {
		if _, err := h.variant.Ranks.Index(r); err != nil {
			return nil, fmt.Errorf("%s hand: %w", h.variant.Name(), err)
		}
	}
	for _, s := range excludeSuits {
		if _, err := h.variant.Suits.Index(s); err != nil {
			return nil, fmt.Errorf("%s hand: %w", h.variant.Name(), err)
		}
	}
	out := make([]card.Card, 0, len(h.cards))
	for _, c := range h.cards {
		if slices.Contains(ranks, c.Rank) && !slices.Contains(excludeSuits, c.Suit) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (h *Hand) FilterBySuit(cards []card.Card, suit card.Suit) ([]card.Card, error) {
	if _, err := h.variant.Suits.Index(suit); err != nil {
		return nil, fmt.Errorf("%s hand: %w", h.variant.Name(), err)
	}
	out := make([]card.Card, 0, len(cards))
	for _, c := range cards {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out, nil
}

// ExistsSuitWithAtLeast groups cards by suit and reports whether any group
// has at least n members. It says nothing about which ranks are in the
// group; callers pre-filter for that.
func (h *Hand) ExistsSuitWithAtLeast(cards []card.Card, n int) bool {
	groups := make(map[card.Suit]int, h.variant.Suits.Len())
	for _, c := range cards {
		groups[c.Suit]++
	}
	for _, count := range groups {
		if count >= n {
			return true
		}
	}
	return false
}

// fetch is FetchCards for rank sets that are fixed members of the domain,
// such as queen and king for Belote. A rank outside the domain here is a
// programming error, so it panics instead of answering from an empty set.
func (h *Hand) fetch(ranks ...card.Rank) []card.Card {
	out, err := h.FetchCards(ranks)
	if err != nil {
		panic(err)
	}
	return out
}

func (h *Hand) as(k variant.Kind) error {
	if h.variant.Kind != k {
		return fmt.Errorf("%w: %s hand used as %s", ErrVariantMismatch, h.variant.Kind, k)
	}
	return nil
}

func (h *Hand) War() (*WarHand, error) {
	if err := h.as(variant.KindWar); err != nil {
		return nil, err
	}
	return &WarHand{Hand: h}, nil
}

func (h *Hand) Belote() (*BeloteHand, error) {
	if err := h.as(variant.KindBelote); err != nil {
		return nil, err
	}
	return &BeloteHand{Hand: h}, nil
}

func (h *Hand) SixtySix() (*SixtySixHand, error) {
	if err := h.as(variant.KindSixtySix); err != nil {
		return nil, err
	}
	return &SixtySixHand{Hand: h}, nil
}
