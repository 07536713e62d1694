// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package raster implements the small set of alpha-blended pixel
// primitives the plot package draws with.
//
// All images are *image.NRGBA, so colors carry straight
// (non-premultiplied) alpha. Every primitive clips to the image
// bounds and blends each pixel it touches exactly once.
package raster

import (
	"image"
	"image/color"
	"math"
)

// Mix returns the channel value b·(1-a/255) + f·(a/255), rounded to
// the nearest integer.
func Mix(b, f, a uint8) uint8 {
	n := uint32(b)*uint32(255-a) + uint32(f)*uint32(a)
	// n/255 never lies exactly halfway between two integers, so
	// adding 127 rounds to nearest.
	return uint8((n + 127) / 255)
}

// Over composites src over dst using straight alpha. If dst is
// opaque, this is Mix applied to each color channel.
func Over(dst, src color.NRGBA) color.NRGBA {
	switch {
	case src.A == 0:
		return dst
	case src.A == 255:
		return src
	case dst.A == 255:
		return color.NRGBA{
			Mix(dst.R, src.R, src.A),
			Mix(dst.G, src.G, src.A),
			Mix(dst.B, src.B, src.A),
			255,
		}
	case dst.A == 0:
		return src
	}
	sa, da := uint32(src.A), uint32(dst.A)
	// den is the output alpha scaled by 255.
	den := sa*255 + da*(255-sa)
	ch := func(s, d uint8) uint8 {
		num := uint32(s)*sa*255 + uint32(d)*da*(255-sa)
		return uint8((num + den/2) / den)
	}
	return color.NRGBA{
		ch(src.R, dst.R),
		ch(src.G, dst.G),
		ch(src.B, dst.B),
		uint8((den + 127) / 255),
	}
}

// Blend composites c over the pixel at (x, y). Points outside img
// are ignored.
func Blend(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !(image.Point{x, y}.In(img.Rect)) {
		return
	}
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	o := Over(color.NRGBA{p[0], p[1], p[2], p[3]}, c)
	p[0], p[1], p[2], p[3] = o.R, o.G, o.B, o.A
}

// Fill replaces every pixel of img with c.
func Fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		row := img.Pix[i : i+4*b.Dx()]
		for j := 0; j < len(row); j += 4 {
			row[j], row[j+1], row[j+2], row[j+3] = c.R, c.G, c.B, c.A
		}
	}
}

// FillRect blends c over every pixel of r.
func FillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Canon().Intersect(img.Rect)
	if c.A == 0 || r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			Blend(img, x, y, c)
		}
	}
}

// StrokeRect blends a one pixel outline of r.
func StrokeRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	HLine(img, r.Min.X, r.Max.X-1, r.Min.Y, c)
	if r.Dy() > 1 {
		HLine(img, r.Min.X, r.Max.X-1, r.Max.Y-1, c)
	}
	if r.Dy() > 2 {
		VLine(img, r.Min.X, r.Min.Y+1, r.Max.Y-2, c)
		if r.Dx() > 1 {
			VLine(img, r.Max.X-1, r.Min.Y+1, r.Max.Y-2, c)
		}
	}
}

// HLine blends a horizontal line from x0 to x1 inclusive.
func HLine(img *image.NRGBA, x0, x1, y int, c color.NRGBA) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	FillRect(img, image.Rect(x0, y, x1+1, y+1), c)
}

// VLine blends a vertical line from y0 to y1 inclusive.
func VLine(img *image.NRGBA, x, y0, y1 int, c color.NRGBA) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	FillRect(img, image.Rect(x, y0, x+1, y1+1), c)
}

// Line blends a one pixel line from (x0, y0) to (x1, y1) inclusive.
func Line(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	line(img, x0, y0, x1, y1, c, false)
}

// Polyline blends connected line segments through pts. Shared
// vertices are only blended once.
func Polyline(img *image.NRGBA, pts []image.Point, c color.NRGBA) {
	switch len(pts) {
	case 0:
		return
	case 1:
		Blend(img, pts[0].X, pts[0].Y, c)
		return
	}
	for i := 1; i < len(pts); i++ {
		line(img, pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, c, i > 1)
	}
}

// line is Bresenham's algorithm. If skipFirst is set, the starting
// point is not drawn.
func line(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA, skipFirst bool) {
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y1-y0, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}
	err := dx - dy
	for first := true; ; first = false {
		if !(first && skipFirst) {
			Blend(img, x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle blends a filled disc of radius r centered at (cx, cy).
// Only the rows of the disc inside img are visited.
func FillCircle(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	if r <= 0 {
		Blend(img, cx, cy, c)
		return
	}
	r2 := int64(r)*int64(r) + int64(r)
	y0, y1 := max(cy-r, img.Rect.Min.Y), min(cy+r, img.Rect.Max.Y-1)
	for y := y0; y <= y1; y++ {
		dy := int64(y - cy)
		// Widest dx with dx²+dy² <= r²+r.
		dx := isqrt(r2 - dy*dy)
		HLine(img, max(cx-dx, img.Rect.Min.X-1), min(cx+dx, img.Rect.Max.X), y, c)
	}
}

// isqrt returns the largest d with d*d <= n.
func isqrt(n int64) int {
	d := int64(math.Sqrt(float64(n)))
	for d*d > n {
		d--
	}
	for (d+1)*(d+1) <= n {
		d++
	}
	return int(d)
}

// Copy replaces the pixels of dst with src, with src's origin placed
// at off. It does not blend.
func Copy(dst, src *image.NRGBA, off image.Point) {
	r := src.Rect.Add(off.Sub(src.Rect.Min)).Intersect(dst.Rect)
	if r.Empty() {
		return
	}
	sp := r.Min.Sub(off).Add(src.Rect.Min)
	n := 4 * r.Dx()
	for y := 0; y < r.Dy(); y++ {
		di := dst.PixOffset(r.Min.X, r.Min.Y+y)
		si := src.PixOffset(sp.X, sp.Y+y)
		copy(dst.Pix[di:di+n], src.Pix[si:si+n])
	}
}
