package variant

import (
	"encoding/json"
	"testing"

	"CardTable/internal/game/card"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantShapes(t *testing.T) {
	tests := []struct {
		v        Variant
		deck     int
		handSize int
	}{
		{War, 52, 26},
		{Belote, 32, 8},
		{SixtySix, 24, 6},
	}
	for _, tt := range tests {
		t.Run(tt.v.Name(), func(t *testing.T) {
			assert.Equal(t, tt.deck, tt.v.DeckSize())
			assert.Equal(t, tt.handSize, tt.v.HandSize)
			assert.Equal(t, 4, tt.v.Suits.Len())
		})
	}
}

func TestBeloteTenRanksBelowAce(t *testing.T) {
	ten, err := Belote.Ranks.Index(card.Ten)
	require.NoError(t, err)
	king, err := Belote.Ranks.Index(card.King)
	require.NoError(t, err)
	ace, err := Belote.Ranks.Index(card.Ace)
	require.NoError(t, err)
	assert.Greater(t, ten, king)
	assert.Less(t, ten, ace)
}

func TestLookup(t *testing.T) {
	v, err := Lookup("Belote")
	require.NoError(t, err)
	assert.Equal(t, KindBelote, v.Kind)

	_, err = Lookup("poker")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, SixtySix.Validate(card.Card{Rank: card.Nine, Suit: card.Hearts}))
	assert.ErrorIs(t, SixtySix.Validate(card.Card{Rank: card.Two, Suit: card.Hearts}), card.ErrInvalidRank)
	assert.ErrorIs(t, War.Validate(card.Card{Rank: card.Two}), card.ErrInvalidSuit)
}

func TestInfoJSON(t *testing.T) {
	b, err := json.Marshal(SixtySix.Info())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "sixtysix",
		"ranks": ["9","jack","queen","king","10","ace"],
		"suits": ["spades","hearts","diamonds","clubs"],
		"handSize": 6,
		"seats": 2,
		"deckSize": 24
	}`, string(b))
}
