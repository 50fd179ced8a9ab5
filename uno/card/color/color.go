package color

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Color is a pointer singleton so card equality can compare colors with ==.
type Color struct {
	name          string
	colorFunction func(string, ...interface{}) string
}

func (c *Color) Paint(text string) string {
	return c.colorFunction(text)
}

func (c *Color) Paintf(format string, args ...interface{}) string {
	return c.colorFunction(format, args...)
}

func (c *Color) String() string {
	return c.Paint(c.name)
}

func (c *Color) Name() string {
	return c.name
}

// Wild reports whether the color matches everything. Black is the resting
// color of the recolorable cards, white the resting color of swap-hands.
func (c *Color) Wild() bool {
	return c == Black || c == White
}

var Red = &Color{
	name:          "red",
	colorFunction: color.New(color.FgHiRed).SprintfFunc(),
}

var Blue = &Color{
	name:          "blue",
	colorFunction: color.New(color.FgHiBlue).SprintfFunc(),
}

var Green = &Color{
	name:          "green",
	colorFunction: color.New(color.FgHiGreen).SprintfFunc(),
}

var Yellow = &Color{
	name:          "yellow",
	colorFunction: color.New(color.FgHiYellow).SprintfFunc(),
}

var Black = &Color{
	name:          "black",
	colorFunction: color.New(color.FgHiBlack).SprintfFunc(),
}

var White = &Color{
	name:          "white",
	colorFunction: color.New(color.FgHiWhite).SprintfFunc(),
}

var Stdout io.Writer = color.Output

// Playable are the colors a wildcard may be recolored to.
var Playable = []*Color{Red, Blue, Green, Yellow}

var colors = map[string]*Color{
	Red.name:    Red,
	Blue.name:   Blue,
	Green.name:  Green,
	Yellow.name: Yellow,
}

func ByName(name string) (*Color, error) {
	chosenColor := colors[name]
	if chosenColor == nil {
		return nil, fmt.Errorf("invalid color '%s'", name)
	}
	return chosenColor, nil
}
