package card

import (
	"github.com/uno-arena/server/uno/card/color"
)

type Value int

const (
	Zero Value = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	DrawTwo
	Block
	Reverse
	DrawFour
	Rainbow
	SwapHands
)

var valueNames = map[Value]string{
	Zero:      "0",
	One:       "1",
	Two:       "2",
	Three:     "3",
	Four:      "4",
	Five:      "5",
	Six:       "6",
	Seven:     "7",
	Eight:     "8",
	Nine:      "9",
	DrawTwo:   "+2",
	Block:     "block",
	Reverse:   "reverse",
	DrawFour:  "+4",
	Rainbow:   "rainbow",
	SwapHands: "swap",
}

func (v Value) String() string {
	return valueNames[v]
}

// Card is an immutable value; two cards are equal iff value and color match.
type Card struct {
	Value Value
	Color *color.Color
}

func New(value Value, cardColor *color.Color) Card {
	return Card{Value: value, Color: cardColor}
}

func (c Card) Equal(other Card) bool {
	return c.Value == other.Value && c.Color == other.Color
}

func (c Card) IsSpecial() bool {
	switch c.Value {
	case DrawTwo, Block, Reverse, DrawFour, Rainbow, SwapHands:
		return true
	}
	return false
}

// IsWildcard reports whether playing the card requires picking a new color.
func (c Card) IsWildcard() bool {
	return c.Value == DrawFour || c.Value == Rainbow
}

// IsPunishing reports whether the card skips and/or force-draws the next player.
func (c Card) IsPunishing() bool {
	return c.Value == Block || c.Value == DrawTwo || c.Value == DrawFour
}

func (c Card) IsSwapHands() bool {
	return c.Value == SwapHands
}

// WithColor returns the card repainted to the chosen color. Wildcards are
// recolored this way before being played.
func (c Card) WithColor(chosenColor *color.Color) Card {
	return Card{Value: c.Value, Color: chosenColor}
}

func (c Card) String() string {
	return c.Color.Paintf("[%s]", c.Value)
}
