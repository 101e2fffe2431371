package dealer

import "CardTable/internal/game/card"

// WarHand is a War view over a dealt hand. Playing mutates the underlying
// hand.
type WarHand struct {
	*Hand
}

// PlayCard commits the last card of the hand.
func (h *WarHand) PlayCard() (card.Card, error) {
	if len(h.cards) == 0 {
		return card.Card{}, ErrEmptyHand
	}
	c := h.cards[len(h.cards)-1]
	h.cards = h.cards[:len(h.cards)-1]
	return c, nil
}

// AllowFaceUp is the end-game reveal rule: three cards or fewer left.
func (h *WarHand) AllowFaceUp() bool {
	return len(h.cards) <= 3
}
