package card

import (
	"errors"
	"fmt"
)

// RankDomain is the ordered list of ranks legal in a variant. Position is
// game strength and also the adjacency used for sequences.
type RankDomain struct {
	ranks []Rank
	index map[Rank]int
}

func NewRankDomain(ranks ...Rank) (RankDomain, error) {
	if len(ranks) == 0 {
		return RankDomain{}, errors.New("rank domain must not be empty")
	}
	d := RankDomain{
		ranks: make([]Rank, len(ranks)),
		index: make(map[Rank]int, len(ranks)),
	}
	for i, r := range ranks {
		if !r.Valid() {
			return RankDomain{}, fmt.Errorf("%w: %d", ErrInvalidRank, r)
		}
		if _, dup := d.index[r]; dup {
			return RankDomain{}, fmt.Errorf("rank %s listed twice", r)
		}
		d.ranks[i] = r
		d.index[r] = i
	}
	return d, nil
}

// MustRankDomain panics on an invalid list; for package-level tables only.
func MustRankDomain(ranks ...Rank) RankDomain {
	d, err := NewRankDomain(ranks...)
	if err != nil {
		panic(err)
	}
	return d
}

// Index returns the strength position of r, or ErrInvalidRank when r is
// not part of the domain.
func (d RankDomain) Index(r Rank) (int, error) {
	i, ok := d.index[r]
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrInvalidRank, r)
	}
	return i, nil
}

func (d RankDomain) Contains(r Rank) bool {
	_, ok := d.index[r]
	return ok
}

func (d RankDomain) Len() int { return len(d.ranks) }

func (d RankDomain) Ranks() []Rank {
	return append([]Rank(nil), d.ranks...)
}

// Windows returns every run of n consecutive domain entries, weakest first.
func (d RankDomain) Windows(n int) [][]Rank {
	if n <= 0 || n > len(d.ranks) {
		return nil
	}
	out := make([][]Rank, 0, len(d.ranks)-n+1)
	for i := 0; i+n <= len(d.ranks); i++ {
		out = append(out, append([]Rank(nil), d.ranks[i:i+n]...))
	}
	return out
}

// SuitDomain is the ordered suit list. All variants share StandardSuits.
type SuitDomain struct {
	suits []Suit
	index map[Suit]int
}

func NewSuitDomain(suits ...Suit) (SuitDomain, error) {
	if len(suits) == 0 {
		return SuitDomain{}, errors.New("suit domain must not be empty")
	}
	d := SuitDomain{
		suits: make([]Suit, len(suits)),
		index: make(map[Suit]int, len(suits)),
	}
	for i, s := range suits {
		if !s.Valid() {
			return SuitDomain{}, fmt.Errorf("%w: %d", ErrInvalidSuit, s)
		}
		if _, dup := d.index[s]; dup {
			return SuitDomain{}, fmt.Errorf("suit %s listed twice", s)
		}
		d.suits[i] = s
		d.index[s] = i
	}
	return d, nil
}

func MustSuitDomain(suits ...Suit) SuitDomain {
	d, err := NewSuitDomain(suits...)
	if err != nil {
		panic(err)
	}
	return d
}

func (d SuitDomain) Index(s Suit) (int, error) {
	i, ok := d.index[s]
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrInvalidSuit, s)
	}
	return i, nil
}

func (d SuitDomain) Contains(s Suit) bool {
	_, ok := d.index[s]
	return ok
}

func (d SuitDomain) Len() int { return len(d.suits) }

func (d SuitDomain) Suits() []Suit {
	return append([]Suit(nil), d.suits...)
}

var (
	StandardSuits = MustSuitDomain(Spades, Hearts, Diamonds, Clubs)
	StandardRanks = MustRankDomain(Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace)
)
