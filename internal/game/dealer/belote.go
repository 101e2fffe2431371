package dealer

import "CardTable/internal/game/card"

type BeloteHand struct {
	*Hand
}

// Declaration names a Belote combination that a hand holds.
type Declaration string

const (
	DeclBelote       Declaration = "belote"
	DeclTierce       Declaration = "tierce"
	DeclQuarte       Declaration = "quarte"
	DeclQuint        Declaration = "quint"
	DeclCarreOfJacks Declaration = "carre_of_jacks"
	DeclCarreOfNines Declaration = "carre_of_nines"
	DeclCarreOfAces  Declaration = "carre_of_aces"
)

// HighestOfSuit returns the strongest card of suit, ok=false when the hand
// has none.
func (h *BeloteHand) HighestOfSuit(suit card.Suit) (c card.Card, ok bool, err error) {
	ofSuit, err := h.FilterBySuit(h.cards, suit)
	if err != nil {
		return card.Card{}, false, err
	}
	best := -1
	for _, cur := range ofSuit {
		i, _ := h.variant.Ranks.Index(cur.Rank)
		if i > best {
			best, c, ok = i, cur, true
		}
	}
	return c, ok, nil
}

// Belote: queen and king of the same suit.
func (h *BeloteHand) Belote() bool {
	return h.ExistsSuitWithAtLeast(h.fetch(card.Queen, card.King), 2)
}

func (h *BeloteHand) Tierce() bool { return h.rankSequence(3) }

func (h *BeloteHand) Quarte() bool { return h.rankSequence(4) }

func (h *BeloteHand) Quint() bool { return h.rankSequence(5) }

func (h *BeloteHand) CarreOfJacks() bool { return len(h.fetch(card.Jack)) == 4 }

func (h *BeloteHand) CarreOfNines() bool { return len(h.fetch(card.Nine)) == 4 }

func (h *BeloteHand) CarreOfAces() bool { return len(h.fetch(card.Ace)) == 4 }

// rankSequence looks for n consecutive domain ranks held in one suit. The
// suit-group threshold equals the window length, so a group that large can
// only be the whole window.
func (h *BeloteHand) rankSequence(n int) bool {
	for _, window := range h.variant.Ranks.Windows(n) {
		if h.ExistsSuitWithAtLeast(h.fetch(window...), len(window)) {
			return true
		}
	}
	return false
}

// Declarations lists every combination the hand currently holds.
func (h *BeloteHand) Declarations() []Declaration {
	checks := []struct {
		d  Declaration
		ok func() bool
	}{
		{DeclBelote, h.Belote},
		{DeclTierce, h.Tierce},
		{DeclQuarte, h.Quarte},
		{DeclQuint, h.Quint},
		{DeclCarreOfJacks, h.CarreOfJacks},
		{DeclCarreOfNines, h.CarreOfNines},
		{DeclCarreOfAces, h.CarreOfAces},
	}
	out := make([]Declaration, 0, len(checks))
	for _, c := range checks {
		if c.ok() {
			out = append(out, c.d)
		}
	}
	return out
}
