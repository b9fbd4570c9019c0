package match

import "math/rand/v2"

// Face is the per-card state machine: FaceDown -> FaceUp -> Matched or back to FaceDown.
type Face int

const (
	FaceDown Face = iota
	FaceUp
	FaceMatched
)

type Card struct {
	ID      int
	Symbol  string
	Flipped bool
	Matched bool
}

func (c Card) Face() Face {
	switch {
	case c.Matched:
		return FaceMatched
	case c.Flipped:
		return FaceUp
	default:
		return FaceDown
	}
}

// NewDeck returns two of every symbol in a uniform random order, ids 0..2K-1.
func NewDeck(rng *rand.Rand, symbols []string) []Card {
	pairs := make([]string, 0, 2*len(symbols))
	pairs = append(pairs, symbols...)
	pairs = append(pairs, symbols...)
	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

	deck := make([]Card, len(pairs))
	for i, s := range pairs {
		deck[i] = Card{ID: i, Symbol: s}
	}
	return deck
}
