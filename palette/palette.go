// Package palette samples colors from a continuous gradient defined by
// ordered CSS color stops.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	css "github.com/mazznoer/csscolorparser"
)

var (
	ErrNoStops     = errors.New("palette: gradient needs at least one color stop")
	ErrUnknownMode = errors.New("palette: unknown interpolation mode")
)

// Mode is the color space stops are interpolated in.
type Mode string

const (
	ModeRGB Mode = "rgb"
	ModeHSV Mode = "hsv"
	ModeLab Mode = "lab"
	ModeLCH Mode = "lch"
	ModeLuv Mode = "luv"
)

// Lab lightness removed per unit of darken amount.
// colorful keeps L in 0..1, so this is 18 on the usual 0..100 scale.
const DarkenStep = 0.18

func ParseMode(str string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(str))); m {
	case ModeRGB, ModeHSV, ModeLab, ModeLCH, ModeLuv:
		return m, nil
	case "hcl":
		return ModeLCH, nil
	case "":
		return ModeLCH, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, str)
}

// ParseColor parses any CSS color string. Alpha is dropped.
func ParseColor(str string) (colorful.Color, error) {
	c, err := css.Parse(str)
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}, nil
}

type Gradient struct {
	stops []colorful.Color
	mode  Mode
}

// New parses stops and builds a gradient with evenly spaced stops over [0, 1].
func New(stops []string, mode Mode) (*Gradient, error) {
	colors := make([]colorful.Color, 0, len(stops))
	for _, s := range stops {
		c, err := ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("parse color stop %q: %w", s, err)
		}
		colors = append(colors, c)
	}
	return NewFromColors(colors, mode)
}

func NewFromColors(colors []colorful.Color, mode Mode) (*Gradient, error) {
	if len(colors) == 0 {
		return nil, ErrNoStops
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeLCH
	}
	return &Gradient{
		stops: append([]colorful.Color(nil), colors...),
		mode:  mode,
	}, nil
}

func (g *Gradient) Mode() Mode {
	return g.mode
}

func (g *Gradient) Len() int {
	return len(g.stops)
}

// At samples the gradient at t. t is clamped to [0, 1].
func (g *Gradient) At(t float64) colorful.Color {
	n := len(g.stops)
	if n == 1 || math.IsNaN(t) || t <= 0 {
		return g.stops[0]
	}
	if t >= 1 {
		return g.stops[n-1]
	}

	scaled := t * float64(n-1)
	i := int(scaled)
	f := scaled - float64(i)
	if f == 0 {
		return g.stops[i]
	}

	return blend(g.stops[i], g.stops[i+1], f, g.mode)
}

func blend(c1, c2 colorful.Color, t float64, mode Mode) colorful.Color {
	switch mode {
	case ModeRGB:
		return c1.BlendRgb(c2, t)
	case ModeHSV:
		return c1.BlendHsv(c2, t).Clamped()
	case ModeLab:
		return c1.BlendLab(c2, t).Clamped()
	case ModeLuv:
		return c1.BlendLuv(c2, t).Clamped()
	default:
		return c1.BlendHcl(c2, t)
	}
}

// Darken lowers the Lab lightness of c by amount*DarkenStep.
// Negative amounts brighten.
func Darken(c colorful.Color, amount float64) colorful.Color {
	l, a, b := c.Lab()
	l -= DarkenStep * amount
	return colorful.Lab(l, a, b).Clamped()
}

func Hex(c colorful.Color) string {
	return c.Clamped().Hex()
}

// Uniform converts c into the vec3 layout Kage expects.
// Out of gamut colors are clamped the same way Hex clamps them.
func Uniform(c colorful.Color) []float32 {
	c = c.Clamped()
	return []float32{float32(c.R), float32(c.G), float32(c.B)}
}

func ToNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
