// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// A Vertex is a point in continuous image coordinates. Pixel (x, y)
// covers the unit square whose top-left corner is (x, y), so its
// center is (x+0.5, y+0.5).
type Vertex struct {
	X, Y float64
}

// coordLimit bounds vertex coordinates relative to the rasterized
// area. It keeps far off-image geometry within the range of the
// rasterizer's fixed-point arithmetic.
const coordLimit = 1 << 20

func clampCoord(v float64) float32 {
	switch {
	case v < -coordLimit:
		return -coordLimit
	case v > coordLimit:
		return coordLimit
	}
	return float32(v)
}

// FillPolygons blends c over the area enclosed by polys, with
// anti-aliased edges. Each polygon is closed implicitly. Polygons with
// the same winding that share an edge or overlap cover the shared
// pixels once, so a band built from adjacent pieces blends as one
// shape.
func FillPolygons(img *image.NRGBA, polys [][]Vertex, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	r := image.Rectangle{Min: image.Pt(math.MaxInt32, math.MaxInt32), Max: image.Pt(math.MinInt32, math.MinInt32)}
	for _, p := range polys {
		for _, v := range p {
			r.Min.X = min(r.Min.X, int(math.Floor(float64(clampCoord(v.X)))))
			r.Min.Y = min(r.Min.Y, int(math.Floor(float64(clampCoord(v.Y)))))
			r.Max.X = max(r.Max.X, int(math.Ceil(float64(clampCoord(v.X)))))
			r.Max.Y = max(r.Max.Y, int(math.Ceil(float64(clampCoord(v.Y)))))
		}
	}
	fillPath(img, r, c, func(z *vector.Rasterizer, ox, oy float64) {
		for _, p := range polys {
			if len(p) < 3 {
				continue
			}
			z.MoveTo(clampCoord(p[0].X-ox), clampCoord(p[0].Y-oy))
			for _, v := range p[1:] {
				z.LineTo(clampCoord(v.X-ox), clampCoord(v.Y-oy))
			}
			z.ClosePath()
		}
	})
}

// kappa places the control points of a cubic Bézier quarter circle.
const kappa = 0.5522847498

// FillDisc blends c over the disc of radius r centered at (cx, cy),
// with anti-aliased edges.
func FillDisc(img *image.NRGBA, cx, cy, r float64, c color.NRGBA) {
	if c.A == 0 || !(r > 0) {
		return
	}
	r = math.Min(r, coordLimit)
	bounds := image.Rect(
		int(math.Floor(cx-r)), int(math.Floor(cy-r)),
		int(math.Ceil(cx+r)), int(math.Ceil(cy+r)))
	fillPath(img, bounds, c, func(z *vector.Rasterizer, ox, oy float64) {
		x, y := cx-ox, cy-oy
		k := r * kappa
		pt := func(dx, dy float64) (float32, float32) {
			return clampCoord(x + dx), clampCoord(y + dy)
		}
		z.MoveTo(pt(r, 0))
		cubeTo(z, pt, r, k, k, r, 0, r)
		cubeTo(z, pt, -k, r, -r, k, -r, 0)
		cubeTo(z, pt, -r, -k, -k, -r, 0, -r)
		cubeTo(z, pt, k, -r, r, -k, r, 0)
		z.ClosePath()
	})
}

func cubeTo(z *vector.Rasterizer, pt func(dx, dy float64) (float32, float32), bx, by, cx, cy, dx, dy float64) {
	x1, y1 := pt(bx, by)
	x2, y2 := pt(cx, cy)
	x3, y3 := pt(dx, dy)
	z.CubeTo(x1, y1, x2, y2, x3, y3)
}

// fillPath rasterizes the path built by add over the part of bounds
// inside img and blends c through the resulting coverage mask. add
// receives the image coordinates of the mask origin.
func fillPath(img *image.NRGBA, bounds image.Rectangle, c color.NRGBA, add func(z *vector.Rasterizer, ox, oy float64)) {
	r := bounds.Intersect(img.Rect)
	if r.Empty() {
		return
	}
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	add(z, float64(r.Min.X), float64(r.Min.Y))
	mask := image.NewAlpha(z.Bounds())
	z.DrawOp = draw.Src
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	for y := 0; y < r.Dy(); y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+r.Dx()]
		for x, m := range row {
			if m == 0 {
				continue
			}
			cc := c
			cc.A = uint8((uint32(c.A)*uint32(m) + 127) / 255)
			Blend(img, r.Min.X+x, r.Min.Y+y, cc)
		}
	}
}
