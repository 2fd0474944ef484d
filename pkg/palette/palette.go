// Package palette maps palette identifiers to concrete diverging color
// maps for the heatmap renderer.
//
// All palettes are diverging: the heatmap's color scale is symmetric around
// zero, so the midpoint color marks "no attribution" and the two arms
// encode sign. The default "red-white-blue" palette reproduces the
// familiar shap coloring (blue negative, red positive); the remaining
// names come from gonum's moreland collection of smooth diverging maps.
package palette

import (
	"image/color"
	"math"
	"sort"

	plotpalette "gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/ethanknights/shap/pkg/errors"
)

// Default is the palette used when the caller names none.
const Default = "red-white-blue"

// builders creates a fresh color map per lookup; color maps carry mutable
// min/max state and must not be shared between renders.
var builders = map[string]func() plotpalette.ColorMap{
	Default:         redWhiteBlue,
	"blue-red":      func() plotpalette.ColorMap { return moreland.SmoothBlueRed() },
	"blue-tan":      func() plotpalette.ColorMap { return moreland.SmoothBlueTan() },
	"green-purple":  func() plotpalette.ColorMap { return moreland.SmoothGreenPurple() },
	"purple-orange": func() plotpalette.ColorMap { return moreland.SmoothPurpleOrange() },
}

// Names returns the sorted list of recognized palette identifiers.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh color map for the given identifier, or an
// INVALID_PALETTE error naming the valid choices.
func Lookup(name string) (plotpalette.ColorMap, error) {
	if name == "" {
		name = Default
	}
	build, ok := builders[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPalette,
			"unknown palette %q (valid: %v)", name, Names())
	}
	return build(), nil
}

// Validate checks that name identifies a known palette.
func Validate(name string) error {
	_, err := Lookup(name)
	return err
}

// redWhiteBlue is the shap diverging map: #008bfb through white to #ff0051.
func redWhiteBlue() plotpalette.ColorMap {
	return &diverging{
		neg:   color.NRGBA{R: 0x00, G: 0x8b, B: 0xfb, A: 0xff},
		mid:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		pos:   color.NRGBA{R: 0xff, G: 0x00, B: 0x51, A: 0xff},
		alpha: 1,
	}
}

// diverging is a three-anchor linear color map. The zero value has an
// unset range; SetMin/SetMax must be called before At.
type diverging struct {
	neg, mid, pos color.NRGBA
	min, max      float64
	alpha         float64
}

// At implements palette.ColorMap.
func (d *diverging) At(v float64) (color.Color, error) {
	if math.IsNaN(v) {
		return nil, plotpalette.ErrNaN
	}
	if d.max <= d.min {
		return nil, errors.New(errors.ErrCodeInternal, "color map range is not set")
	}
	if v < d.min {
		return nil, plotpalette.ErrUnderflow
	}
	if v > d.max {
		return nil, plotpalette.ErrOverflow
	}

	t := (v - d.min) / (d.max - d.min)
	if t <= 0.5 {
		return lerp(d.neg, d.mid, 2*t), nil
	}
	return lerp(d.mid, d.pos, 2*t-1), nil
}

// Max implements palette.ColorMap.
func (d *diverging) Max() float64 { return d.max }

// SetMax implements palette.ColorMap.
func (d *diverging) SetMax(v float64) { d.max = v }

// Alpha implements palette.ColorMap.
func (d *diverging) Alpha() float64 { return d.alpha }

// SetAlpha implements palette.ColorMap.
func (d *diverging) SetAlpha(a float64) { d.alpha = a }

// Min implements palette.ColorMap.
func (d *diverging) Min() float64 { return d.min }

// SetMin implements palette.ColorMap.
func (d *diverging) SetMin(v float64) { d.min = v }

// Palette implements palette.ColorMap by sampling n evenly spaced colors.
func (d *diverging) Palette(n int) plotpalette.Palette {
	cs := make([]color.Color, n)
	for i := range cs {
		t := float64(i) / float64(n-1)
		if t <= 0.5 {
			cs[i] = lerp(d.neg, d.mid, 2*t)
		} else {
			cs[i] = lerp(d.mid, d.pos, 2*t-1)
		}
	}
	return colorSlice(cs)
}

// colorSlice is a fixed palette.
type colorSlice []color.Color

// Colors implements palette.Palette.
func (c colorSlice) Colors() []color.Color { return c }

// lerp linearly interpolates between two colors.
func lerp(a, b color.NRGBA, t float64) color.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + t*(float64(y)-float64(x))))
	}
	return color.NRGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: 0xff,
	}
}
