package dealer

import "CardTable/internal/game/card"

type SixtySixHand struct {
	*Hand
}

// Twenty: queen and king together in some suit other than trump.
func (h *SixtySixHand) Twenty(trump card.Suit) (bool, error) {
	pair, err := h.FetchCards([]card.Rank{card.Queen, card.King}, trump)
	if err != nil {
		return false, err
	}
	return h.ExistsSuitWithAtLeast(pair, 2), nil
}

// Forty: queen and king of the trump suit.
func (h *SixtySixHand) Forty(trump card.Suit) (bool, error) {
	trumps, err := h.FilterBySuit(h.fetch(card.Queen, card.King), trump)
	if err != nil {
		return false, err
	}
	return len(trumps) == 2, nil
}
