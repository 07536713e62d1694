// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/stats"
)

// RenderType selects how a Series is drawn.
type RenderType int

const (
	// Line connects consecutive samples.
	Line RenderType = iota
	// DotLine connects consecutive samples and marks each one.
	DotLine
	// Histogram draws one filled vertical bar per sample.
	Histogram
	// Vistogram draws one filled horizontal bar per sample.
	Vistogram
	// Horizontal draws a horizontal line at each sample value.
	Horizontal
	// Vertical draws a vertical line at each sample value.
	Vertical
	// FillLine fills the area between the curve and y=0.
	FillLine
	// RangeLine shades the band between each sample's low and high
	// and draws a line through the centers.
	RangeLine
	// Circle draws an anti-aliased disc per sample. The disc
	// radius is the sample Size, if given, limited to the view
	// diagonal.
	Circle
	// Dots draws a small unconnected marker per sample.
	Dots

	numRenderTypes
)

var renderTypeNames = [...]string{
	"Line", "DotLine", "Histogram", "Vistogram", "Horizontal",
	"Vertical", "FillLine", "RangeLine", "Circle", "Dots",
}

func (t RenderType) String() string {
	if t >= 0 && t < numRenderTypes {
		return renderTypeNames[t]
	}
	return fmt.Sprintf("RenderType(%d)", int(t))
}

// ParseRenderType returns the RenderType with the given name,
// ignoring case.
func ParseRenderType(s string) (RenderType, error) {
	for i, n := range renderTypeNames {
		if strings.EqualFold(n, s) {
			return RenderType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render type %q", s)
}

// bands reports whether t can draw band samples.
func (t RenderType) bands() bool {
	return t == RangeLine
}

// ErrBandSample is returned when a band sample is added to a series
// whose render type can only draw single values.
var ErrBandSample = errors.New("band sample added to a series that cannot draw bands")

// A Sample is one data point of a Series.
//
// Single-valued samples have Low == High == Y. Size and Hue are NaN
// unless the sample was added with one.
type Sample struct {
	X, Y      float64
	Low, High float64
	Size      float64
	Hue       float64
}

// A Point is an (x, y) pair.
type Point struct {
	X, Y float64
}

func scalar(x, y float64) Sample {
	return Sample{X: x, Y: y, Low: y, High: y, Size: math.NaN(), Hue: math.NaN()}
}

// A Range is a rectangle in data coordinates.
type Range struct {
	XMin, XMax float64
	YMin, YMax float64
}

// emptyRange is the identity for Union.
func emptyRange() Range {
	return Range{math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)}
}

// Empty reports whether r contains no points.
func (r Range) Empty() bool {
	return !(r.XMin <= r.XMax && r.YMin <= r.YMax)
}

// Union returns the smallest range containing r and o. An axis that
// is empty in one range takes the other's extent.
func (r Range) Union(o Range) Range {
	return Range{
		math.Min(r.XMin, o.XMin), math.Max(r.XMax, o.XMax),
		math.Min(r.YMin, o.YMin), math.Max(r.YMax, o.YMax),
	}
}

// Contains reports whether (x, y) lies in r, boundary included.
func (r Range) Contains(x, y float64) bool {
	return r.XMin <= x && x <= r.XMax && r.YMin <= y && y <= r.YMax
}

func (r Range) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", r.XMin, r.XMax, r.YMin, r.YMax)
}

// A Series is one named data stream of a Figure. A Series is obtained
// from Figure.Series and is only valid within that Figure; asking for
// the same name again returns the same *Series.
//
// The configuration methods return the Series so calls can be
// chained.
type Series struct {
	name    string
	typ     RenderType
	color   Color
	legend  bool
	dynamic bool
	palette palette.Continuous

	samples []Sample
	// bounds covers every finite X, and every finite Y, Low and
	// High. It is maintained as samples are appended.
	bounds Range
	// err is the first rejected append.
	err error
}

func newSeries(name string) *Series {
	return &Series{name: name, legend: true, color: Transparent, bounds: emptyRange()}
}

// Name returns the series name.
func (s *Series) Name() string { return s.name }

// Type sets the render type.
func (s *Series) Type(t RenderType) *Series {
	s.typ = t
	return s
}

// Color sets the series color. A Transparent color (the default)
// means the figure picks Index(i) for the i'th series.
func (s *Series) Color(c Color) *Series {
	s.color = c
	return s
}

// Legend sets whether the series is listed in the figure legend.
func (s *Series) Legend(on bool) *Series {
	s.legend = on
	return s
}

// DynamicColor sets whether each sample gets its own color.
//
// Dynamic samples are colored by their Hue if they have one, by the
// series palette if one is set, and otherwise by Index(k) for the
// k'th sample.
func (s *Series) DynamicColor(on bool) *Series {
	s.dynamic = on
	return s
}

// Palette colors dynamic samples by mapping their Y value, scaled to
// the series' value range, through p. It implies DynamicColor.
func (s *Series) Palette(p palette.Continuous) *Series {
	s.palette = p
	s.dynamic = p != nil || s.dynamic
	return s
}

// RenderType returns the configured render type.
func (s *Series) RenderType() RenderType { return s.typ }

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.samples) }

// Samples returns a copy of the samples.
func (s *Series) Samples() []Sample {
	return append([]Sample(nil), s.samples...)
}

// Bounds returns the extent of all samples. It is empty if the
// series has no finite samples.
func (s *Series) Bounds() Range { return s.bounds }

// Err returns the first error from an append, if any.
func (s *Series) Err() error { return s.err }

// AddValue appends single values at the next integer X positions.
func (s *Series) AddValue(vs ...float64) *Series {
	for _, v := range vs {
		s.push(scalar(float64(len(s.samples)), v))
	}
	return s
}

// AddValues is AddValue for a slice.
func (s *Series) AddValues(vs []float64) *Series {
	return s.AddValue(vs...)
}

// AddRange appends a band sample with center v at the next integer X
// position. The series must have a render type that draws bands;
// otherwise the sample is dropped and ErrBandSample is returned.
func (s *Series) AddRange(v, low, high float64) error {
	if !s.typ.bands() {
		err := fmt.Errorf("series %q (%v): %w", s.name, s.typ, ErrBandSample)
		if s.err == nil {
			s.err = err
		}
		return err
	}
	if low > high {
		low, high = high, low
	}
	smp := scalar(float64(len(s.samples)), v)
	smp.Low, smp.High = low, high
	s.push(smp)
	return nil
}

// Add appends the point (x, y).
func (s *Series) Add(x, y float64) *Series {
	s.push(scalar(x, y))
	return s
}

// AddPoints appends pts in order.
func (s *Series) AddPoints(pts []Point) *Series {
	for _, p := range pts {
		s.push(scalar(p.X, p.Y))
	}
	return s
}

// AddSized appends (x, y) with a marker size in pixels.
func (s *Series) AddSized(x, y, size float64) *Series {
	smp := scalar(x, y)
	smp.Size = size
	s.push(smp)
	return s
}

// AddHue appends (x, y) with an explicit dynamic color hue in
// degrees.
func (s *Series) AddHue(x, y, hue float64) *Series {
	smp := scalar(x, y)
	smp.Hue = hue
	s.push(smp)
	return s
}

// AddValueHue appends a single value with an explicit hue.
func (s *Series) AddValueHue(v, hue float64) *Series {
	return s.AddHue(float64(len(s.samples)), v, hue)
}

// Set replaces all samples with pts.
func (s *Series) Set(pts []Point) *Series {
	s.samples = s.samples[:0]
	for _, p := range pts {
		s.samples = append(s.samples, scalar(p.X, p.Y))
	}
	s.rescan()
	return s
}

// SetValues replaces all samples with vs at X positions 0, 1, ….
func (s *Series) SetValues(vs ...float64) *Series {
	s.samples = s.samples[:0]
	for i, v := range vs {
		s.samples = append(s.samples, scalar(float64(i), v))
	}
	s.rescan()
	return s
}

// Clear removes all samples.
func (s *Series) Clear() *Series {
	s.samples = s.samples[:0]
	s.bounds = emptyRange()
	return s
}

func (s *Series) push(smp Sample) {
	s.samples = append(s.samples, smp)
	b := &s.bounds
	if finite(smp.X) {
		b.XMin = math.Min(b.XMin, smp.X)
		b.XMax = math.Max(b.XMax, smp.X)
	}
	for _, y := range [...]float64{smp.Low, smp.Y, smp.High} {
		if finite(y) {
			b.YMin = math.Min(b.YMin, y)
			b.YMax = math.Max(b.YMax, y)
		}
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// rescan recomputes bounds from scratch after a replacement.
func (s *Series) rescan() {
	s.bounds = emptyRange()
	xs := make([]float64, 0, len(s.samples))
	ys := make([]float64, 0, 3*len(s.samples))
	for _, smp := range s.samples {
		if finite(smp.X) {
			xs = append(xs, smp.X)
		}
		for _, y := range [...]float64{smp.Low, smp.Y, smp.High} {
			if finite(y) {
				ys = append(ys, y)
			}
		}
	}
	if len(xs) > 0 {
		s.bounds.XMin, s.bounds.XMax = stats.Bounds(xs)
	}
	if len(ys) > 0 {
		s.bounds.YMin, s.bounds.YMax = stats.Bounds(ys)
	}
}

// sampleColor returns the color of the k'th sample. base is the
// series color after auto-coloring.
func (s *Series) sampleColor(k int, base Color) Color {
	if !s.dynamic {
		return base
	}
	smp := s.samples[k]
	var c Color
	switch {
	case !math.IsNaN(smp.Hue):
		c = FromHue(smp.Hue)
	case s.palette != nil:
		x := 0.5
		if d := s.bounds.YMax - s.bounds.YMin; d > 0 {
			x = (smp.Y - s.bounds.YMin) / d
		}
		c = ColorOf(s.palette.Map(x))
	default:
		c = Index(k)
	}
	// Keep any translucency the caller asked for.
	if base.A != 0 {
		c.A = base.A
	}
	return c
}
