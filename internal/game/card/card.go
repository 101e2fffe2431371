package card

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidRank = errors.New("invalid rank")
	ErrInvalidSuit = errors.New("invalid suit")
)

// Suit is a card suit; the zero value is invalid.
type Suit uint8

const (
	Spades Suit = iota + 1
	Hearts
	Diamonds
	Clubs
)

var suitNames = map[Suit]string{
	Spades:   "spades",
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
}

// Valid reports whether s is one of the four known suits.
func (s Suit) Valid() bool {
	_, ok := suitNames[s]
	return ok
}

func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return "suit(" + strconv.Itoa(int(s)) + ")"
}

func (s Suit) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSuit, s)
	}
	return []byte(s.String()), nil
}

func (s *Suit) UnmarshalText(b []byte) error {
	v, err := ParseSuit(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSuit accepts a suit name in any case ("Spades", "hearts").
func ParseSuit(name string) (Suit, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range suitNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSuit, name)
}

// Rank uses face value for pip cards; jack through ace continue upward.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var faceNames = map[Rank]string{
	Jack:  "jack",
	Queen: "queen",
	King:  "king",
	Ace:   "ace",
}

func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

func (r Rank) String() string {
	if name, ok := faceNames[r]; ok {
		return name
	}
	if r.Valid() {
		return strconv.Itoa(int(r))
	}
	return "rank(" + strconv.Itoa(int(r)) + ")"
}

func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRank, r)
	}
	return []byte(r.String()), nil
}

func (r *Rank) UnmarshalText(b []byte) error {
	v, err := ParseRank(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRank accepts "2".."10" or a face name in any case.
func ParseRank(name string) (Rank, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for r, n := range faceNames {
		if n == name {
			return r, nil
		}
	}
	n, err := strconv.Atoi(name)
	if err != nil || !Rank(n).Valid() || Rank(n) > Ten {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRank, name)
	}
	return Rank(n), nil
}

// Card is an immutable (rank, suit) pair. Equality is structural.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// New checks only that rank and suit are known values; whether the rank
// belongs to a given variant is decided by the deck.
func New(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidSuit, suit)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// DisplayName renders "Queen of Spades", "10 of Hearts".
func (c Card) DisplayName() string {
	return capitalize(c.Rank.String()) + " of " + capitalize(c.Suit.String())
}

func (c Card) String() string {
	return c.DisplayName()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Render joins display names with newlines, for logs and debugging.
func Render(cards []Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.DisplayName()
	}
	return strings.Join(names, "\n")
}

var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
}

// Short is the compact log form: Q♠, 10♥.
func (c Card) Short() string {
	r := c.Rank.String()
	if name, ok := faceNames[c.Rank]; ok {
		r = strings.ToUpper(name[:1])
	}
	s, ok := suitSymbols[c.Suit]
	if !ok {
		s = "?"
	}
	return r + s
}
