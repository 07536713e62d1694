// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/aclements/winplot/internal/raster"
)

// A Color is an 8-bit RGBA color with straight (non-premultiplied)
// alpha. Colors are values; every method returns a new Color.
type Color struct {
	R, G, B, A uint8
}

// Named colors.
var (
	Red         = Color{255, 0, 0, 255}
	Orange      = Color{255, 160, 0, 255}
	Yellow      = Color{255, 255, 0, 255}
	Lawn        = Color{160, 255, 0, 255}
	Green       = Color{0, 255, 0, 255}
	Aqua        = Color{0, 255, 160, 255}
	Cyan        = Color{0, 255, 255, 255}
	Sky         = Color{0, 160, 255, 255}
	Blue        = Color{0, 0, 255, 255}
	Purple      = Color{160, 0, 255, 255}
	Magenta     = Color{255, 0, 255, 255}
	Pink        = Color{255, 0, 160, 255}
	Black       = Color{0, 0, 0, 255}
	Dark        = Color{32, 32, 32, 255}
	Gray        = Color{128, 128, 128, 255}
	Light       = Color{223, 223, 223, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// indexStep is the golden angle in degrees. Successive multiples of
// it never repeat and each lands in the largest remaining gap, so
// neighboring indexes get visibly different hues.
const indexStep = 137.50776405003785

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.nrgba().RGBA()
}

func (c Color) nrgba() color.NRGBA {
	return color.NRGBA{c.R, c.G, c.B, c.A}
}

func fromNRGBA(c color.NRGBA) Color {
	return Color{c.R, c.G, c.B, c.A}
}

// ColorOf converts any color.Color to a Color.
func ColorOf(c color.Color) Color {
	if c, ok := c.(Color); ok {
		return c
	}
	return fromNRGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Alpha returns c with its alpha channel replaced by a.
func (c Color) Alpha(a uint8) Color {
	c.A = a
	return c
}

// Gamma applies the power law c' = 255·(c/255)^g to the red, green,
// and blue channels. Alpha is unchanged.
func (c Color) Gamma(g float64) Color {
	ch := func(v uint8) uint8 {
		return clamp8(255 * math.Pow(float64(v)/255, g))
	}
	return Color{ch(c.R), ch(c.G), ch(c.B), c.A}
}

// Index returns a fully saturated color whose hue is i times the
// golden angle. The result depends only on i.
func Index(i int) Color {
	h := math.Mod(float64(i)*indexStep, 360)
	if h < 0 {
		h += 360
	}
	return FromHue(h)
}

// FromHue returns the opaque, fully saturated, full value color with
// hue h in degrees.
func FromHue(h float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	sector := h / 60
	f := sector - math.Floor(sector)
	up, down := clamp8(255*f), clamp8(255*(1-f))
	switch int(sector) {
	case 0:
		return Color{255, up, 0, 255}
	case 1:
		return Color{down, 255, 0, 255}
	case 2:
		return Color{0, 255, up, 255}
	case 3:
		return Color{0, down, 255, 255}
	case 4:
		return Color{up, 0, 255, 255}
	}
	return Color{255, 0, down, 255}
}

// Hue returns the hue of c in degrees in [0, 360). Gray colors have
// hue 0.
func (c Color) Hue() float64 {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	d := max - min
	if d == 0 {
		return 0
	}
	var h float64
	switch max {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h
}

// Blend returns background b with foreground f laid over it at alpha
// a, channel by channel:
//
//	b·(1-a/255) + f·(a/255)
//
// rounded to the nearest integer. The alpha channels of b and f are
// ignored and the result keeps b's alpha.
func Blend(b, f Color, a uint8) Color {
	return Color{
		raster.Mix(b.R, f.R, a),
		raster.Mix(b.G, f.G, a),
		raster.Mix(b.B, f.B, a),
		b.A,
	}
}

// Over composites f over b using f's alpha. If b is opaque this is
// Blend(b, f, f.A).
func Over(b, f Color) Color {
	return fromNRGBA(raster.Over(b.nrgba(), f.nrgba()))
}

// scaleAlpha multiplies c's alpha by a/255.
func (c Color) scaleAlpha(a uint8) Color {
	if a == 255 {
		return c
	}
	c.A = uint8((uint32(c.A)*uint32(a) + 127) / 255)
	return c
}

// contrast returns Black or White, whichever reads better on c.
func (c Color) contrast() Color {
	if 299*int(c.R)+587*int(c.G)+114*int(c.B) > 128*1000 {
		return Black
	}
	return White
}

func clamp8(v float64) uint8 {
	v = math.Floor(v + 0.5)
	if v <= 0 {
		return 0
	} else if v >= 255 {
		return 255
	}
	return uint8(v)
}
