package table

import (
	"errors"
	"fmt"
	"time"

	"CardTable/internal/game/card"
	"CardTable/internal/game/dealer"
	"CardTable/internal/game/variant"
)

const (
	StateWaiting  = "waiting"
	StateDealt    = "dealt"
	StateFinished = "finished"
)

var ErrNotSeated = errors.New("player not seated at table")

// Table is one live game: seats, the remaining stock and the dealt hands.
type Table struct {
	ID        string
	Variant   variant.Variant
	Players   []string // addresses e.g. "0xAAA"
	CreatedAt time.Time

	// set by Deal
	State string
	Deck  *dealer.Deck
	Hands map[string]*dealer.Hand
	// Trump is the suit of the card left at the bottom of the stock after
	// dealing; zero when nothing is left (War, Belote).
	Trump card.Suit
}

func New(id string, v variant.Variant, players []string) *Table {
	return &Table{
		ID:        id,
		Variant:   v,
		Players:   players,
		CreatedAt: time.Now(),
		State:     StateWaiting,
		Hands:     make(map[string]*dealer.Hand, len(players)),
	}
}

// Deal draws a fresh shuffled deck and gives every seat one hand.
func (t *Table) Deal(d *dealer.Dealer) error {
	if len(t.Players) != t.Variant.Seats {
		return fmt.Errorf("%s table needs %d players, has %d", t.Variant.Name(), t.Variant.Seats, len(t.Players))
	}
	deck := d.NewDeck(t.Variant)
	hands, err := d.DealHands(deck, t.Players)
	if err != nil {
		return err
	}
	t.Deck = deck
	t.Hands = hands
	t.Trump = 0
	if bottom, err := deck.BottomCard(); err == nil {
		t.Trump = bottom.Suit
	}
	t.State = StateDealt
	return nil
}

func (t *Table) Hand(addr string) (*dealer.Hand, error) {
	h, ok := t.Hands[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotSeated, addr)
	}
	return h, nil
}

// Public is the part of the table every seat may see.
type Public struct {
	ID        string         `json:"table"`
	Variant   string         `json:"variant"`
	State     string         `json:"state"`
	Players   []string       `json:"players"`
	HandSizes map[string]int `json:"handSizes"`
	Stock     int            `json:"stock"`
	Trump     *card.Suit     `json:"trump,omitempty"`
}

func (t *Table) Public() Public {
	p := Public{
		ID:        t.ID,
		Variant:   t.Variant.Name(),
		State:     t.State,
		Players:   t.Players,
		HandSizes: make(map[string]int, len(t.Hands)),
	}
	for addr, h := range t.Hands {
		p.HandSizes[addr] = h.Size()
	}
	if t.Deck != nil {
		p.Stock = t.Deck.Size()
	}
	if t.Trump.Valid() {
		trump := t.Trump
		p.Trump = &trump
	}
	return p
}
