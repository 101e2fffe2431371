package table

import (
	"testing"

	"CardTable/internal/game/dealer"
	"CardTable/internal/game/variant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealSixtySixSetsTrump(t *testing.T) {
	tbl := New("t1", variant.SixtySix, []string{"0xA", "0xB"})
	require.NoError(t, tbl.Deal(dealer.NewDealer(5)))

	assert.Equal(t, StateDealt, tbl.State)
	assert.Equal(t, 12, tbl.Deck.Size())
	bottom, err := tbl.Deck.BottomCard()
	require.NoError(t, err)
	assert.Equal(t, bottom.Suit, tbl.Trump)

	h, err := tbl.Hand("0xA")
	require.NoError(t, err)
	assert.Equal(t, 6, h.Size())

	_, err = tbl.Hand("0xC")
	assert.ErrorIs(t, err, ErrNotSeated)

	pub := tbl.Public()
	assert.Equal(t, "sixtysix", pub.Variant)
	assert.Equal(t, 12, pub.Stock)
	assert.Equal(t, map[string]int{"0xA": 6, "0xB": 6}, pub.HandSizes)
	require.NotNil(t, pub.Trump)
}

func TestDealBeloteUsesWholeDeck(t *testing.T) {
	tbl := New("t2", variant.Belote, []string{"a", "b", "c", "d"})
	require.NoError(t, tbl.Deal(dealer.NewDealer(9)))
	assert.Equal(t, 0, tbl.Deck.Size())
	assert.False(t, tbl.Trump.Valid())
	assert.Nil(t, tbl.Public().Trump)
}

func TestDealWrongSeatCount(t *testing.T) {
	tbl := New("t3", variant.War, []string{"solo"})
	assert.Error(t, tbl.Deal(dealer.NewDealer(1)))
	assert.Equal(t, StateWaiting, tbl.State)
}
