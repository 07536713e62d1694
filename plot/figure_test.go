// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot_test

import (
	"image"
	"math"
	"reflect"
	"testing"

	"github.com/aclements/winplot/plot"
	"github.com/aclements/winplot/plot/plottest"
)

func newFigure(t *testing.T, size image.Point) (*plot.Figure, *plottest.Backend) {
	t.Helper()
	b := new(plottest.Backend)
	reg := plot.NewRegistry(b)
	v := reg.Window("fig").ViewSize("v", size)
	return v.Figure(), b
}

func TestFigureLineRange(t *testing.T) {
	fig, b := newFigure(t, image.Pt(300, 300))
	fig.Series("line").AddValue(1, 3, 2, 5, 4)
	if err := fig.Show(true); err != nil {
		t.Fatal(err)
	}
	r := fig.Range()
	if r.XMin != 0 || r.XMax != 4 {
		t.Errorf("x range = [%v,%v]; want [0,4]", r.XMin, r.XMax)
	}
	if r.YMin > 1 || r.YMax < 5 {
		t.Errorf("y range = [%v,%v]; want to cover [1,5]", r.YMin, r.YMax)
	}
	vis := fig.Visible()
	if !(vis.XMin < r.XMin && vis.XMax > r.XMax && vis.YMin < r.YMin && vis.YMax > r.YMax) {
		t.Errorf("visible range %v does not strictly contain %v", vis, r)
	}
	if b.Last("fig") == nil {
		t.Errorf("Show(true) displayed nothing")
	}
}

func TestFigureLegendOrder(t *testing.T) {
	fig, _ := newFigure(t, image.Pt(300, 300))
	fig.Series("hist").Type(plot.Histogram).AddValue(1, 2, 3, 4, 5)
	fig.Series("dotline").Type(plot.DotLine).AddValue(1, 2, 3, 4, 5)
	fig.Series("hidden").Legend(false).AddValue(0)
	if err := fig.Show(false); err != nil {
		t.Fatal(err)
	}
	want := []string{"hist", "dotline"}
	if got := fig.Legend(); !reflect.DeepEqual(got, want) {
		t.Errorf("Legend() = %q; want %q", got, want)
	}
	// Histogram bars are centered on their samples.
	if r := fig.Range(); r.XMin > -0.5 || r.XMax < 4.5 {
		t.Errorf("x range = [%v,%v]; want to cover histogram bars [-0.5,4.5]", r.XMin, r.XMax)
	}
}

func TestFigureSeriesIdentity(t *testing.T) {
	fig, _ := newFigure(t, image.Pt(100, 100))
	a := fig.Series("a")
	if fig.Series("a") != a {
		t.Errorf("Series(a) returned a different series")
	}
	fig.Series("b")
	fig.Remove("a")
	if got := fig.SeriesNames(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("after Remove: SeriesNames() = %q", got)
	}
	if fig.Series("a") == a {
		t.Errorf("Series(a) after Remove returned the removed series")
	}
}

func TestFigureRangeGrows(t *testing.T) {
	fig, _ := newFigure(t, image.Pt(200, 150))
	s := fig.Series("s").Type(plot.Dots)
	pts := []plot.Point{{1, 1}, {-3, 7}, {12, -40}, {0.5, 1e3}, {-1e-3, 2}}
	for _, p := range pts {
		s.Add(p.X, p.Y)
		if err := fig.Show(false); err != nil {
			t.Fatal(err)
		}
		r := fig.Range()
		for _, q := range s.Samples() {
			if !r.Contains(q.X, q.Y) {
				t.Errorf("after adding %v: range %v does not contain sample (%v,%v)", p, r, q.X, q.Y)
			}
		}
	}
}

func TestFigureEmpty(t *testing.T) {
	fig, b := newFigure(t, image.Pt(120, 80))
	if err := fig.Show(true); err != nil {
		t.Fatalf("Show of empty figure: %v", err)
	}
	r := fig.Range()
	if r.Empty() || r.XMin >= r.XMax || r.YMin >= r.YMax {
		t.Errorf("empty figure range = %v; want a non-degenerate range", r)
	}
	if len(fig.Legend()) != 0 {
		t.Errorf("empty figure has legend %q", fig.Legend())
	}
	if b.Last("fig") == nil {
		t.Errorf("empty figure displayed nothing")
	}
}

func TestFigureDegenerate(t *testing.T) {
	fig, _ := newFigure(t, image.Pt(120, 80))
	fig.Origin(false, false)
	fig.Series("one").Add(3, 3)
	fig.Series("nan").AddValue(math.NaN(), math.Inf(1))
	fig.Series("odd").Type(plot.RenderType(99)).AddValue(1e9)
	if err := fig.Show(false); err != nil {
		t.Fatal(err)
	}
	r := fig.Range()
	if !(r.XMin < 3 && 3 < r.XMax && r.YMin < 3 && 3 < r.YMax) {
		t.Errorf("range %v; want a neighborhood of (3,3)", r)
	}
	if r.YMax > 1e6 {
		t.Errorf("series with unknown render type contributed to range %v", r)
	}
}

func TestFigureSquare(t *testing.T) {
	fig, _ := newFigure(t, image.Pt(300, 200))
	fig.Square(true)
	fig.Series("s").Add(0, 0).Add(10, 1)
	if err := fig.Show(false); err != nil {
		t.Fatal(err)
	}
	r := fig.Range()
	// The plot area is the view inset by the border.
	ux := (r.XMax - r.XMin) / float64(240-1)
	uy := (r.YMax - r.YMin) / float64(140-1)
	if math.Abs(ux-uy) > 1e-9*ux {
		t.Errorf("square figure scales: x %v, y %v per pixel", ux, uy)
	}
	if r.XMin > 0 || r.XMax < 10 || r.YMin > 0 || r.YMax < 1 {
		t.Errorf("square range %v does not cover the data", r)
	}
}

func TestFigureDrawsSeriesColor(t *testing.T) {
	fig, _ := newFigure(t, image.Pt(200, 200))
	fig.GridSize(0).Origin(false, false)
	fig.Series("bars").Type(plot.Histogram).Color(plot.Red).Legend(false).AddValue(1, 2, 3)
	if err := fig.Show(false); err != nil {
		t.Fatal(err)
	}
	snap := fig.View().Snapshot()
	if snap == nil {
		t.Fatal("Show did not finish the view")
	}
	red := 0
	for y := snap.Rect.Min.Y; y < snap.Rect.Max.Y; y++ {
		for x := snap.Rect.Min.X; x < snap.Rect.Max.X; x++ {
			if plot.ColorOf(snap.At(x, y)) == plot.Red {
				red++
			}
		}
	}
	if red == 0 {
		t.Errorf("histogram drew no red pixels")
	}
	// The center of the view is inside the tallest bar's column
	// range; the bottom-center pixel of the plot area must be red.
	if c := plot.ColorOf(snap.At(100, 200-30-1)); c != plot.Red {
		t.Errorf("pixel at bottom of middle bar = %v; want %v", c, plot.Red)
	}
}

func TestFigureAlpha(t *testing.T) {
	fig, _ := newFigure(t, image.Pt(100, 100))
	fig.Alpha(0)
	fig.View().FrameColor(plot.Transparent)
	fig.Series("s").AddValue(1, 2)
	if err := fig.Show(false); err != nil {
		t.Fatal(err)
	}
	snap := fig.View().Snapshot()
	for i := 3; i < len(snap.Pix); i += 4 {
		if snap.Pix[i] != 0 {
			t.Fatalf("pixel %d has alpha %d; want fully transparent figure", i/4, snap.Pix[i])
		}
	}
}

// plotPixel returns the pixel that data point (x, y) maps to in fig,
// shown in a 200x200 view. The plot area is the view inset by 30
// pixels on each side.
func plotPixel(fig *plot.Figure, x, y float64) image.Point {
	r := fig.Range()
	round := func(v float64) int { return int(math.Floor(v + 0.5)) }
	return image.Pt(
		30+round((x-r.XMin)/(r.XMax-r.XMin)*139),
		169-round((y-r.YMin)/(r.YMax-r.YMin)*139))
}

func TestFigureRenderTypes(t *testing.T) {
	shaded := plot.Blend(plot.White, plot.Red, 127)
	scatter := func(s *plot.Series) { s.Add(0, 0).Add(10, 10) }
	tests := []struct {
		typ  plot.RenderType
		add  func(s *plot.Series)
		rng  plot.Range
		at   plot.Point // drawn in want
		want plot.Color
		off  plot.Point // left as background
	}{
		// Horizontal lines span the plot and set only the y range.
		{plot.Horizontal, func(s *plot.Series) { s.AddValue(2, 5) },
			plot.Range{XMin: -1, XMax: 1, YMin: 2, YMax: 5}, plot.Point{X: 0, Y: 5}, plot.Red, plot.Point{X: 0, Y: 3.5}},
		// Vertical lines set only the x range.
		{plot.Vertical, func(s *plot.Series) { s.AddValue(2, 5) },
			plot.Range{XMin: 2, XMax: 5, YMin: -1, YMax: 1}, plot.Point{X: 5, Y: 0}, plot.Red, plot.Point{X: 3.5, Y: 0}},
		// Vistogram bars run along x from 0, centered on their
		// sample index along y.
		{plot.Vistogram, func(s *plot.Series) { s.AddValue(1, 3) },
			plot.Range{XMin: 0, XMax: 3, YMin: -0.5, YMax: 1.5}, plot.Point{X: 2, Y: 1}, plot.Red, plot.Point{X: 2, Y: 0}},
		// FillLine shades from the curve down to y=0.
		{plot.FillLine, func(s *plot.Series) { s.AddValue(2, 2, 2) },
			plot.Range{XMin: 0, XMax: 2, YMin: 0, YMax: 2}, plot.Point{X: 0.5, Y: 1}, shaded, plot.Point{X: -1, Y: -1}},
		// RangeLine shades between low and high only.
		{plot.RangeLine, func(s *plot.Series) {
			s.AddRange(5, 4, 6)
			s.AddRange(5, 2, 8)
		}, plot.Range{XMin: 0, XMax: 1, YMin: 2, YMax: 8}, plot.Point{X: 0.5, Y: 4}, shaded, plot.Point{X: 0.1, Y: 7}},
		// Markers are not connected.
		{plot.Circle, scatter,
			plot.Range{XMin: 0, XMax: 10, YMin: 0, YMax: 10}, plot.Point{X: 0, Y: 0}, plot.Red, plot.Point{X: 5, Y: 5}},
		{plot.Dots, scatter,
			plot.Range{XMin: 0, XMax: 10, YMin: 0, YMax: 10}, plot.Point{X: 10, Y: 10}, plot.Red, plot.Point{X: 5, Y: 5}},
	}
	for _, test := range tests {
		t.Run(test.typ.String(), func(t *testing.T) {
			fig, _ := newFigure(t, image.Pt(200, 200))
			fig.GridSize(0).Origin(false, false)
			s := fig.Series("s").Type(test.typ).Color(plot.Red).Legend(false)
			test.add(s)
			if err := s.Err(); err != nil {
				t.Fatal(err)
			}
			if err := fig.Show(false); err != nil {
				t.Fatal(err)
			}
			if got := fig.Range(); got != test.rng {
				t.Errorf("Range() = %v; want %v", got, test.rng)
			}
			snap := fig.View().Snapshot()
			p := plotPixel(fig, test.at.X, test.at.Y)
			if got := plot.ColorOf(snap.At(p.X, p.Y)); got != test.want {
				t.Errorf("pixel %v at %v = %v; want %v", p, test.at, got, test.want)
			}
			if test.off.X < 0 {
				return
			}
			p = plotPixel(fig, test.off.X, test.off.Y)
			if got := plot.ColorOf(snap.At(p.X, p.Y)); got != plot.White {
				t.Errorf("pixel %v at %v = %v; want background", p, test.off, got)
			}
		})
	}
}

func TestFigureDynamicMarkers(t *testing.T) {
	for _, typ := range []plot.RenderType{plot.Circle, plot.Dots} {
		fig, _ := newFigure(t, image.Pt(200, 200))
		fig.GridSize(0).Origin(false, false)
		s := fig.Series("s").Type(typ).Color(plot.Red).Legend(false).DynamicColor(true)
		s.Add(0, 0).Add(5, 5).Add(10, 10)
		if err := fig.Show(false); err != nil {
			t.Fatal(err)
		}
		snap := fig.View().Snapshot()
		for k, smp := range s.Samples() {
			p := plotPixel(fig, smp.X, smp.Y)
			if got := plot.ColorOf(snap.At(p.X, p.Y)); got != plot.Index(k) {
				t.Errorf("%v: marker %d at %v = %v; want Index(%d) %v", typ, k, p, got, k, plot.Index(k))
			}
		}
	}
}

func TestFigureHugeCircle(t *testing.T) {
	fig, _ := newFigure(t, image.Pt(200, 200))
	fig.GridSize(0).Origin(false, false)
	s := fig.Series("c").Type(plot.Circle).Color(plot.Red).Legend(false)
	// Radii are limited to the view diagonal, so these draw in
	// time proportional to the view, not the radius.
	s.AddSized(0, 0, 1e6).AddSized(1, 1, math.Inf(1)).AddSized(2, 2, 1e300)
	if err := fig.Show(false); err != nil {
		t.Fatal(err)
	}
	snap := fig.View().Snapshot()
	if got := plot.ColorOf(snap.At(100, 100)); got != plot.Red {
		t.Errorf("center pixel = %v; want covered by the discs", got)
	}
}

func TestDrawTextShadowHuge(t *testing.T) {
	fig, _ := newFigure(t, image.Pt(100, 60))
	v := fig.View().FrameColor(plot.Transparent)
	v.Clear(plot.Black)
	for _, size := range []float64{1e9, math.Inf(1), math.NaN(), -5} {
		v.DrawTextShadow("hello", image.Pt(0, 0), plot.White, size)
	}
	v.Finish()
	snap := v.Snapshot()
	white := false
	for y := 0; y < 60 && !white; y++ {
		for x := 0; x < 100; x++ {
			if plot.ColorOf(snap.At(x, y)) == plot.White {
				white = true
				break
			}
		}
	}
	if !white {
		t.Errorf("no text was drawn")
	}
}
