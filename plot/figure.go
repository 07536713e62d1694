// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"image"
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/winplot/internal/raster"
)

// border is the number of pixels between the edge of the view and
// the plot area. It leaves room for tick labels and keeps extreme
// samples off the view edge.
const border = 30

// A Figure is a set of Series drawn together in one coordinate frame.
// Each View owns at most one Figure.
type Figure struct {
	view *View

	series []*Series
	byName map[string]*Series

	gridSize         int
	square           bool
	originX, originY bool
	alpha            uint8

	background, axisColor, gridColor, textColor Color

	// Results of the last Show.
	rng, visible Range
	legend       []string
}

// NewFigure attaches a new, empty Figure to v, replacing any Figure v
// already had.
func NewFigure(v *View) *Figure {
	f := &Figure{
		view:       v,
		byName:     make(map[string]*Series),
		gridSize:   60,
		originX:    true,
		originY:    true,
		alpha:      255,
		background: White,
		axisColor:  Black,
		gridColor:  Light,
		textColor:  Black,
		rng:        emptyRange(),
		visible:    emptyRange(),
	}
	v.figure = f
	return f
}

// View returns the view f draws into.
func (f *Figure) View() *View { return f.view }

// Series returns the series called name, adding an empty one if f has
// none by that name. New series are drawn after, and listed in the
// legend after, all existing series.
func (f *Figure) Series(name string) *Series {
	if s, ok := f.byName[name]; ok {
		return s
	}
	s := newSeries(name)
	f.series = append(f.series, s)
	f.byName[name] = s
	return s
}

// SeriesNames returns the series names in render order.
func (f *Figure) SeriesNames() []string {
	names := make([]string, len(f.series))
	for i, s := range f.series {
		names[i] = s.name
	}
	return names
}

// Remove deletes the named series.
func (f *Figure) Remove(name string) {
	if _, ok := f.byName[name]; !ok {
		return
	}
	delete(f.byName, name)
	for i, s := range f.series {
		if s.name == name {
			f.series = append(f.series[:i], f.series[i+1:]...)
			break
		}
	}
}

// GridSize sets the minimum spacing of grid lines in pixels. A size
// of 0 or less turns the grid off.
func (f *Figure) GridSize(px int) *Figure {
	f.gridSize = px
	return f
}

// Square forces both axes to the same data-per-pixel scale.
func (f *Figure) Square(on bool) *Figure {
	f.square = on
	return f
}

// Origin controls the origin axes. If x is set, the x range always
// includes 0 and the vertical line x=0 is drawn; likewise for y and
// the horizontal line y=0.
func (f *Figure) Origin(x, y bool) *Figure {
	f.originX, f.originY = x, y
	return f
}

// Alpha sets the opacity of everything the figure draws.
func (f *Figure) Alpha(a uint8) *Figure {
	f.alpha = a
	return f
}

// Background sets the plot background color.
func (f *Figure) Background(c Color) *Figure {
	f.background = c
	return f
}

// AxisColor sets the color of the origin axes.
func (f *Figure) AxisColor(c Color) *Figure {
	f.axisColor = c
	return f
}

// GridColor sets the color of the grid lines.
func (f *Figure) GridColor(c Color) *Figure {
	f.gridColor = c
	return f
}

// TextColor sets the color of tick labels and the legend.
func (f *Figure) TextColor(c Color) *Figure {
	f.textColor = c
	return f
}

// Range returns the data range the last Show scaled to the plot
// area.
func (f *Figure) Range() Range { return f.rng }

// Visible returns the data range covered by the whole view at the
// last Show. Because of the border it strictly contains Range.
func (f *Figure) Visible() Range { return f.visible }

// Legend returns the legend entries drawn by the last Show.
func (f *Figure) Legend() []string {
	return append([]string(nil), f.legend...)
}

// Show renders the figure into its view and finishes the view. If
// flush is set, the view's window is then composited and displayed.
//
// Show never fails because of the figure's contents: series that
// cannot be drawn are skipped. The only errors come from the display
// backend during the flush.
func (f *Figure) Show(flush bool) error {
	v := f.view
	f.render(v.working())
	v.touch()
	v.Finish()
	if flush {
		return v.Flush()
	}
	return nil
}

// render draws the whole figure into img, replacing its contents.
func (f *Figure) render(img *image.NRGBA) {
	raster.Fill(img, Transparent.nrgba())
	ink := func(c Color) Color { return c.scaleAlpha(f.alpha) }
	raster.FillRect(img, img.Rect, ink(f.background).nrgba())

	area := plotArea(img.Rect)
	f.rng = f.layout(area)
	fr := newFrame(area, f.rng)
	f.visible = visibleRange(fr, img.Rect)

	f.drawGrid(img, fr)
	f.drawOrigin(img, fr)
	for i, s := range f.series {
		r := rendererFor(s.typ)
		if r == nil || len(s.samples) == 0 {
			continue
		}
		r.render(s, fr, img, pen{s, f.seriesColor(i), f.alpha})
	}
	f.drawLegend(img, area)
}

// plotArea returns the rectangle of bounds left after the border.
func plotArea(bounds image.Rectangle) image.Rectangle {
	b := border
	if m := bounds.Dx() / 4; m < b {
		b = m
	}
	if m := bounds.Dy() / 4; m < b {
		b = m
	}
	return bounds.Inset(b)
}

// layout computes the data range to scale to area: the union of all
// series extents, widened to include any visible origin axis,
// widened further if degenerate, and made square if requested.
func (f *Figure) layout(area image.Rectangle) Range {
	r := emptyRange()
	for _, s := range f.series {
		if rd := rendererFor(s.typ); rd != nil && len(s.samples) > 0 {
			r = r.Union(rd.extent(s))
		}
	}
	if f.originX {
		r.XMin, r.XMax = math.Min(r.XMin, 0), math.Max(r.XMax, 0)
	}
	if f.originY {
		r.YMin, r.YMax = math.Min(r.YMin, 0), math.Max(r.YMax, 0)
	}
	r.XMin, r.XMax = widen(r.XMin, r.XMax)
	r.YMin, r.YMax = widen(r.YMin, r.YMax)

	if f.square {
		w, h := float64(area.Dx()-1), float64(area.Dy()-1)
		if w > 0 && h > 0 {
			ux := (r.XMax - r.XMin) / w
			uy := (r.YMax - r.YMin) / h
			u := math.Max(ux, uy)
			cx, cy := (r.XMin+r.XMax)/2, (r.YMin+r.YMax)/2
			r.XMin, r.XMax = cx-u*w/2, cx+u*w/2
			r.YMin, r.YMax = cy-u*h/2, cy+u*h/2
		}
	}
	return r
}

// widen turns an empty or zero-width interval into a usable one.
func widen(lo, hi float64) (float64, float64) {
	switch {
	case !(lo <= hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0):
		return -1, 1
	case lo == hi:
		return lo - 1, hi + 1
	}
	return lo, hi
}

// visibleRange returns the data range spanned by bounds under fr.
func visibleRange(fr *frame, bounds image.Rectangle) Range {
	a := fr.area
	xper := (fr.x.Max - fr.x.Min) / float64(a.Dx()-1)
	yper := (fr.y.Max - fr.y.Min) / float64(a.Dy()-1)
	return Range{
		XMin: fr.x.Min - float64(a.Min.X-bounds.Min.X)*xper,
		XMax: fr.x.Max + float64(bounds.Max.X-a.Max.X)*xper,
		YMin: fr.y.Min - float64(bounds.Max.Y-a.Max.Y)*yper,
		YMax: fr.y.Max + float64(a.Min.Y-bounds.Min.Y)*yper,
	}
}

// seriesColor returns the base color of the i'th series.
func (f *Figure) seriesColor(i int) Color {
	s := f.series[i]
	if s.color == Transparent {
		return Index(i)
	}
	return s.color
}

// ticks returns grid positions along l for an axis of n pixels.
func (f *Figure) ticks(l scale.Linear, n int) []float64 {
	if f.gridSize <= 0 || n <= 0 {
		return nil
	}
	major, _ := l.Ticks(scale.TickOptions{Max: n/f.gridSize + 1})
	return major
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func (f *Figure) drawGrid(img *image.NRGBA, fr *frame) {
	a := fr.area
	grid := f.gridColor.scaleAlpha(f.alpha).nrgba()
	text := f.textColor.scaleAlpha(f.alpha)
	for _, t := range f.ticks(fr.x, a.Dx()) {
		x := fr.px(t)
		if x < a.Min.X || x >= a.Max.X {
			continue
		}
		raster.VLine(img, x, a.Min.Y, a.Max.Y-1, grid)
		label := formatTick(t)
		drawText(img, label, image.Pt(x-textWidth(label)/2, a.Max.Y+2), text)
	}
	for _, t := range f.ticks(fr.y, a.Dy()) {
		y := fr.py(t)
		if y < a.Min.Y || y >= a.Max.Y {
			continue
		}
		raster.HLine(img, a.Min.X, a.Max.X-1, y, grid)
		label := formatTick(t)
		drawText(img, label, image.Pt(a.Min.X-2-textWidth(label), y-textHeight/2), text)
	}
}

func (f *Figure) drawOrigin(img *image.NRGBA, fr *frame) {
	a := fr.area
	axis := f.axisColor.scaleAlpha(f.alpha).nrgba()
	if f.originX {
		if x := fr.px(0); a.Min.X <= x && x < a.Max.X {
			raster.VLine(img, x, a.Min.Y, a.Max.Y-1, axis)
		}
	}
	if f.originY {
		if y := fr.py(0); a.Min.Y <= y && y < a.Max.Y {
			raster.HLine(img, a.Min.X, a.Max.X-1, y, axis)
		}
	}
}

// drawLegend lists every legend-enabled series in the top-right
// corner of area, one row per series.
func (f *Figure) drawLegend(img *image.NRGBA, area image.Rectangle) {
	f.legend = f.legend[:0]
	var idx []int
	width := 0
	for i, s := range f.series {
		if !s.legend {
			continue
		}
		f.legend = append(f.legend, s.name)
		idx = append(idx, i)
		if w := textWidth(s.name); w > width {
			width = w
		}
	}
	if len(idx) == 0 {
		return
	}

	const (
		pad    = 3
		swatch = 9
		row    = textHeight + 2
	)
	box := image.Rect(0, 0, pad+swatch+pad+width+pad, pad+row*len(idx)+pad-2)
	box = box.Add(image.Pt(area.Max.X-box.Dx()-pad, area.Min.Y+pad))
	raster.FillRect(img, box, White.Alpha(200).scaleAlpha(f.alpha).nrgba())
	raster.StrokeRect(img, box, f.gridColor.scaleAlpha(f.alpha).nrgba())

	text := f.textColor.scaleAlpha(f.alpha)
	for r, i := range idx {
		s := f.series[i]
		top := box.Min.Y + pad + r*row
		c := f.seriesColor(i)
		if s.dynamic && len(s.samples) > 0 {
			c = s.sampleColor(0, c)
		}
		sw := image.Rect(0, 0, swatch, swatch).Add(image.Pt(box.Min.X+pad, top+(textHeight-swatch)/2))
		raster.FillRect(img, sw, c.scaleAlpha(f.alpha).nrgba())
		drawText(img, s.name, image.Pt(sw.Max.X+pad, top), text)
	}
}
