// Package palette maps root ids to pixel colors.
package palette

import (
	"fmt"
	"image/color"
	"sort"
)

// DefaultFadeStep is how much each channel darkens per root id.
const DefaultFadeStep = 5

// Classic is the default palette. Ids beyond its length wrap around.
var Classic = []color.RGBA{
	{R: 255, G: 0, B: 0, A: 255},   // red
	{R: 0, G: 0, B: 255, A: 255},   // blue
	{R: 0, G: 128, B: 0, A: 255},   // green
	{R: 255, G: 255, B: 0, A: 255}, // yellow
	{R: 255, G: 165, B: 0, A: 255}, // orange
	{R: 255, G: 0, B: 255, A: 255}, // fuchsia
	{R: 255, G: 215, B: 0, A: 255}, // gold
	{R: 0, G: 255, B: 255, A: 255}, // cyan
	{R: 255, G: 0, B: 255, A: 255}, // magenta
}

var Pastel = []color.RGBA{
	{R: 255, G: 179, B: 186, A: 255},
	{R: 186, G: 225, B: 255, A: 255},
	{R: 186, G: 255, B: 201, A: 255},
	{R: 255, G: 255, B: 186, A: 255},
	{R: 255, G: 223, B: 186, A: 255},
	{R: 230, G: 190, B: 255, A: 255},
	{R: 255, G: 236, B: 170, A: 255},
	{R: 175, G: 238, B: 238, A: 255},
	{R: 255, G: 204, B: 229, A: 255},
}

// Palettes are the palettes selectable by name.
var Palettes = map[string][]color.RGBA{
	"classic": Classic,
	"pastel":  Pastel,
}

// Names returns the selectable palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(Palettes))
	for name := range Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the palette with the given name.
func Lookup(name string) ([]color.RGBA, error) {
	p, ok := Palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (available: %v)", name, Names())
	}
	return p, nil
}

// Undefined colors pixels whose iteration never produced a usable root.
var Undefined = color.RGBA{A: 255}

// Shading selects what darkens a root's base color.
type Shading int

const (
	// ShadeByRoot darkens by root id, so later-discovered roots are darker.
	ShadeByRoot Shading = iota
	// ShadeBySpeed darkens by the number of iterations taken to converge.
	ShadeBySpeed
)

func (s Shading) String() string {
	switch s {
	case ShadeByRoot:
		return "root"
	case ShadeBySpeed:
		return "speed"
	default:
		return fmt.Sprintf("Shading(%d)", int(s))
	}
}

// ParseShading parses "root" or "speed". The empty string is ShadeByRoot.
func ParseShading(s string) (Shading, error) {
	switch s {
	case "", "root":
		return ShadeByRoot, nil
	case "speed":
		return ShadeBySpeed, nil
	default:
		return ShadeByRoot, fmt.Errorf("unknown shading %q (want root or speed)", s)
	}
}

// A Colorizer derives a pixel color from a root id.
type Colorizer struct {
	Palette  []color.RGBA
	FadeStep int
	Shading  Shading
}

// New returns a Colorizer with the Classic palette and default fade step.
func New() *Colorizer {
	return &Colorizer{
		Palette:  Classic,
		FadeStep: DefaultFadeStep,
		Shading:  ShadeByRoot,
	}
}

// Color returns the color for the root with the given id. iterations is only
// used with ShadeBySpeed.
func (c *Colorizer) Color(id, iterations int) color.RGBA {
	base := c.Palette[id%len(c.Palette)]

	n := id
	if c.Shading == ShadeBySpeed {
		n = iterations
	}
	fade := min(255, c.FadeStep*n)

	return color.RGBA{
		R: darken(base.R, fade),
		G: darken(base.G, fade),
		B: darken(base.B, fade),
		A: 255,
	}
}

func darken(channel uint8, fade int) uint8 {
	return uint8(max(0, int(channel)-fade))
}
