// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"image"
	"image/color"
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/winplot/internal/raster"
)

// A frame maps data coordinates to pixels of a plot area.
type frame struct {
	area image.Rectangle
	x, y scale.Linear
}

func newFrame(area image.Rectangle, r Range) *frame {
	return &frame{
		area: area,
		x:    scale.Linear{Min: r.XMin, Max: r.XMax},
		y:    scale.Linear{Min: r.YMin, Max: r.YMax},
	}
}

func (f *frame) px(x float64) int {
	return f.area.Min.X + toPix(f.x.Map(x)*float64(f.area.Dx()-1))
}

func (f *frame) py(y float64) int {
	return f.area.Max.Y - 1 - toPix(f.y.Map(y)*float64(f.area.Dy()-1))
}

func (f *frame) pt(x, y float64) image.Point {
	return image.Pt(f.px(x), f.py(y))
}

// vertex returns the unrounded position of the center of the pixel
// that (x, y) maps to.
func (f *frame) vertex(x, y float64) raster.Vertex {
	return raster.Vertex{
		X: float64(f.area.Min.X) + 0.5 + clampPix(f.x.Map(x)*float64(f.area.Dx()-1)),
		Y: float64(f.area.Max.Y) - 0.5 - clampPix(f.y.Map(y)*float64(f.area.Dy()-1)),
	}
}

// pixLimit bounds pixel offsets from the plot area so far off-screen
// values stay within int range.
const pixLimit = 1 << 20

func clampPix(v float64) float64 {
	return math.Max(-pixLimit, math.Min(v, pixLimit))
}

// toPix rounds v to a pixel coordinate, keeping far off-screen values
// within int range.
func toPix(v float64) int {
	return int(math.Floor(clampPix(v) + 0.5))
}

// A pen hands out the colors for one series' samples.
type pen struct {
	s     *Series
	base  Color
	alpha uint8
}

func (p pen) at(k int) color.NRGBA {
	return p.s.sampleColor(k, p.base).scaleAlpha(p.alpha).nrgba()
}

// fill returns the color for shaded areas: the sample color at half
// its alpha.
func (p pen) fill(k int) color.NRGBA {
	c := p.at(k)
	c.A /= 2
	return c
}

// A renderer draws one render type.
type renderer interface {
	// extent returns the part of the data range s occupies. An
	// axis the series does not anchor is left empty.
	extent(s *Series) Range
	// render draws s through f into dst.
	render(s *Series, f *frame, dst *image.NRGBA, p pen)
}

var renderers = [numRenderTypes]renderer{
	Line:       lineRenderer{},
	DotLine:    lineRenderer{dots: true},
	Histogram:  histogramRenderer{},
	Vistogram:  vistogramRenderer{},
	Horizontal: horizontalRenderer{},
	Vertical:   verticalRenderer{},
	FillLine:   fillRenderer{},
	RangeLine:  rangeRenderer{},
	Circle:     markerRenderer{radius: 3, sized: true},
	Dots:       markerRenderer{radius: 1},
}

// rendererFor returns the renderer for t, or nil if t is not a known
// render type.
func rendererFor(t RenderType) renderer {
	if t < 0 || t >= numRenderTypes {
		return nil
	}
	return renderers[t]
}

func valid(smp Sample) bool {
	return finite(smp.X) && finite(smp.Y)
}

func includeZeroY(r Range) Range {
	if r.Empty() {
		return r
	}
	r.YMin, r.YMax = math.Min(r.YMin, 0), math.Max(r.YMax, 0)
	return r
}

type lineRenderer struct {
	dots bool
}

func (lineRenderer) extent(s *Series) Range { return s.bounds }

func (r lineRenderer) render(s *Series, f *frame, dst *image.NRGBA, p pen) {
	if !s.dynamic {
		// One polyline per run of valid samples.
		var run []image.Point
		c := p.at(0)
		for _, smp := range s.samples {
			if !valid(smp) {
				raster.Polyline(dst, run, c)
				run = run[:0]
				continue
			}
			run = append(run, f.pt(smp.X, smp.Y))
		}
		raster.Polyline(dst, run, c)
	} else {
		// Segment k takes the color of sample k.
		for k := 1; k < len(s.samples); k++ {
			a, b := s.samples[k-1], s.samples[k]
			if valid(a) && valid(b) {
				pa, pb := f.pt(a.X, a.Y), f.pt(b.X, b.Y)
				raster.Line(dst, pa.X, pa.Y, pb.X, pb.Y, p.at(k))
			}
		}
	}
	if r.dots {
		for k, smp := range s.samples {
			if valid(smp) {
				pt := f.pt(smp.X, smp.Y)
				raster.FillCircle(dst, pt.X, pt.Y, 2, p.at(k))
			}
		}
	}
}

type histogramRenderer struct{}

func (histogramRenderer) extent(s *Series) Range {
	r := s.bounds
	if r.Empty() {
		return r
	}
	r.XMin -= 0.5
	r.XMax += 0.5
	return includeZeroY(r)
}

func (histogramRenderer) render(s *Series, f *frame, dst *image.NRGBA, p pen) {
	y0 := f.py(0)
	for k, smp := range s.samples {
		if !valid(smp) {
			continue
		}
		// Bars span [x-½, x+½) so neighbors touch without
		// overlapping.
		bar := image.Rect(f.px(smp.X-0.5), y0, f.px(smp.X+0.5), f.py(smp.Y))
		bar = bar.Canon()
		if smp.Y < 0 {
			bar.Min.Y++
		}
		bar.Max.Y++
		raster.FillRect(dst, bar, p.at(k))
	}
}

type vistogramRenderer struct{}

func (vistogramRenderer) extent(s *Series) Range {
	b := s.bounds
	if b.Empty() {
		return b
	}
	return Range{
		XMin: math.Min(b.YMin, 0), XMax: math.Max(b.YMax, 0),
		YMin: b.XMin - 0.5, YMax: b.XMax + 0.5,
	}
}

func (vistogramRenderer) render(s *Series, f *frame, dst *image.NRGBA, p pen) {
	x0 := f.px(0)
	for k, smp := range s.samples {
		if !valid(smp) {
			continue
		}
		bar := image.Rect(x0, f.py(smp.X+0.5), f.px(smp.Y), f.py(smp.X-0.5)).Canon()
		if smp.Y < 0 {
			bar.Min.X--
		}
		bar.Max.X++
		raster.FillRect(dst, bar, p.at(k))
	}
}

type horizontalRenderer struct{}

func (horizontalRenderer) extent(s *Series) Range {
	b := s.bounds
	if b.Empty() {
		return b
	}
	r := emptyRange()
	r.YMin, r.YMax = b.YMin, b.YMax
	return r
}

func (horizontalRenderer) render(s *Series, f *frame, dst *image.NRGBA, p pen) {
	for k, smp := range s.samples {
		if finite(smp.Y) {
			raster.HLine(dst, f.area.Min.X, f.area.Max.X-1, f.py(smp.Y), p.at(k))
		}
	}
}

type verticalRenderer struct{}

func (verticalRenderer) extent(s *Series) Range {
	b := s.bounds
	if b.Empty() {
		return b
	}
	r := emptyRange()
	r.XMin, r.XMax = b.YMin, b.YMax
	return r
}

func (verticalRenderer) render(s *Series, f *frame, dst *image.NRGBA, p pen) {
	for k, smp := range s.samples {
		if finite(smp.Y) {
			raster.VLine(dst, f.px(smp.Y), f.area.Min.Y, f.area.Max.Y-1, p.at(k))
		}
	}
}

// shade fills the band between lo(x) and hi(x) under each pair of
// consecutive samples, interpolating linearly between them. Without
// dynamic color the whole band is one shape, so the seams between
// segments are not blended twice.
func shade(s *Series, f *frame, dst *image.NRGBA, p pen, lo, hi func(Sample) float64) {
	var band [][]raster.Vertex
	for k := 1; k < len(s.samples); k++ {
		a, b := s.samples[k-1], s.samples[k]
		if !valid(a) || !valid(b) || !finite(lo(a)) || !finite(hi(a)) || !finite(lo(b)) || !finite(hi(b)) {
			continue
		}
		band = append(band, trapezoid(f, a, b, lo, hi))
		if s.dynamic {
			raster.FillPolygons(dst, band, p.fill(k))
			band = band[:0]
		}
	}
	if len(band) > 0 {
		raster.FillPolygons(dst, band, p.fill(0))
	}
}

// trapezoid returns the outline of the band between a and b. All
// outlines wind the same way, so adjacent ones cancel along their
// shared edge.
func trapezoid(f *frame, a, b Sample, lo, hi func(Sample) float64) []raster.Vertex {
	if b.X < a.X {
		a, b = b, a
	}
	la, ha := f.vertex(a.X, lo(a)), f.vertex(a.X, hi(a))
	lb, hb := f.vertex(b.X, lo(b)), f.vertex(b.X, hi(b))
	if la.Y+lb.Y < ha.Y+hb.Y {
		la, ha, lb, hb = ha, la, hb, lb
	}
	return []raster.Vertex{la, lb, hb, ha}
}

// centerLine draws the polyline through the sample centers.
func centerLine(s *Series, f *frame, dst *image.NRGBA, p pen) {
	lineRenderer{}.render(s, f, dst, p)
}

type fillRenderer struct{}

func (fillRenderer) extent(s *Series) Range { return includeZeroY(s.bounds) }

func (fillRenderer) render(s *Series, f *frame, dst *image.NRGBA, p pen) {
	shade(s, f, dst, p,
		func(Sample) float64 { return 0 },
		func(smp Sample) float64 { return smp.Y })
	centerLine(s, f, dst, p)
}

type rangeRenderer struct{}

func (rangeRenderer) extent(s *Series) Range { return s.bounds }

func (rangeRenderer) render(s *Series, f *frame, dst *image.NRGBA, p pen) {
	shade(s, f, dst, p,
		func(smp Sample) float64 { return smp.Low },
		func(smp Sample) float64 { return smp.High })
	centerLine(s, f, dst, p)
}

// markerRenderer draws unconnected markers. Sized markers are
// anti-aliased discs whose radius a sample Size overrides. The others
// are small pixel-exact dots.
type markerRenderer struct {
	radius int
	sized  bool
}

func (markerRenderer) extent(s *Series) Range { return s.bounds }

func (r markerRenderer) render(s *Series, f *frame, dst *image.NRGBA, p pen) {
	// No disc needs to be larger than the image to cover it.
	b := dst.Rect.Size()
	maxRad := math.Hypot(float64(b.X), float64(b.Y))
	for k, smp := range s.samples {
		if !valid(smp) {
			continue
		}
		if !r.sized {
			pt := f.pt(smp.X, smp.Y)
			raster.FillCircle(dst, pt.X, pt.Y, r.radius, p.at(k))
			continue
		}
		rad := float64(r.radius)
		if !math.IsNaN(smp.Size) {
			rad = math.Min(math.Abs(smp.Size), maxRad)
		}
		v := f.vertex(smp.X, smp.Y)
		if rad < 0.5 {
			raster.Blend(dst, int(math.Floor(v.X)), int(math.Floor(v.Y)), p.at(k))
			continue
		}
		raster.FillDisc(dst, v.X, v.Y, rad, p.at(k))
	}
}
