// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/aclements/winplot/internal/raster"
)

// All text uses the 7x13 fixed face.
var face = basicfont.Face7x13

const (
	textAscent = 11
	textHeight = 13
)

// textWidth returns the width of s in pixels.
func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// textMask rasterizes s into a coverage mask whose top-left corner is
// the top-left of the text.
func textMask(s string) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, textWidth(s), textHeight))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, textAscent),
	}
	d.DrawString(s)
	return mask
}

// scaleMask scales mask to the given text height with bilinear
// filtering.
func scaleMask(mask *image.Alpha, height int) *image.Alpha {
	if height == textHeight || height <= 0 {
		return mask
	}
	b := mask.Bounds()
	w := (b.Dx()*height + textHeight/2) / textHeight
	out := image.NewAlpha(image.Rect(0, 0, w, height))
	draw.BiLinear.Scale(out, out.Bounds(), mask, b, draw.Src, nil)
	return out
}

// blendMask blends c over dst wherever mask has coverage, with the
// mask's origin at at.
func blendMask(dst *image.NRGBA, mask *image.Alpha, at image.Point, c color.NRGBA) {
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := mask.AlphaAt(x, y).A
			if m == 0 {
				continue
			}
			cc := c
			cc.A = uint8((uint32(c.A)*uint32(m) + 127) / 255)
			raster.Blend(dst, at.X+x-b.Min.X, at.Y+y-b.Min.Y, cc)
		}
	}
}

// drawText draws s with its top-left corner at at.
func drawText(dst *image.NRGBA, s string, at image.Point, c Color) {
	if s == "" || c.A == 0 {
		return
	}
	blendMask(dst, textMask(s), at, c.nrgba())
}
