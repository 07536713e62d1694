// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"time"

	"github.com/aclements/winplot/highgui"
	"github.com/aclements/winplot/plot"
)

// errQuit stops the demo when the user asks to quit.
var errQuit = errors.New("quit")

func isQuit(k int) bool {
	return k == 'q' || k == 27 || k == 3
}

func waitKey() error {
	k, err := plot.Default().WaitKey(0)
	if err != nil {
		return err
	}
	if isQuit(k) {
		return errQuit
	}
	return nil
}

// pollQuit returns errQuit if a quit key is pending.
func pollQuit() error {
	k, err := plot.Default().PollKey()
	if err != nil {
		return err
	}
	if isQuit(k) {
		return errQuit
	}
	return nil
}

func uniform() float64 { return rnd.Float64() }

func basic() error {
	w := plot.Use("mywindow")
	fig := w.View("myplot").Figure()
	fig.Series("myline").AddValue(1, 3, 2, 5, 4)
	return fig.Show(true)
}

func highguiDemo() error {
	plot.Use("plot highgui").Offset(image.Pt(300, 0))

	const name = "highgui"
	highgui.SetWindowTitle(name, "line and histogram")
	highgui.MoveWindow(name, 0, 0)
	highgui.ResizeWindow(name, 300, 300)
	fig := highgui.Figure(name)
	fig.Series("line").SetValues(1, 2, 3, 4, 5).Type(plot.DotLine).Color(plot.Blue)
	fig.Series("histogram").SetValues(1, 2, 3, 4, 5).Type(plot.Histogram).Color(plot.Red)
	return fig.Show(true)
}

// printEvent writes a description of ev across the top of v.
func printEvent(v *plot.View, ev plot.MouseEvent) {
	s := ev.Event.String()
	if f := ev.Flags.String(); f != "" {
		s += " " + f
	}
	s += fmt.Sprintf("  %d,%d", ev.X, ev.Y)
	v.DrawRect(image.Rect(10, 24, 290, 36), plot.Light)
	v.DrawText(s, image.Pt(10, 25), plot.Black)
}

func transparency() error {
	w := plot.Use("plot transparency and mouse").Offset(image.Pt(600, 0)).Cursor(true)

	opaque := w.ViewSize("opaque", image.Pt(300, 300))
	opaque.Mouse(printEvent).FrameColor(plot.Sky)
	fig := opaque.Figure()
	fig.Series("histogram").SetValues(1, 2, 3, 4, 5).
		Type(plot.Histogram).Color(plot.Red).Legend(false)
	if err := fig.Show(false); err != nil {
		return err
	}

	trans := w.ViewSize("transparent", image.Pt(300, 300))
	trans.Mouse(printEvent).FrameColor(plot.Sky).Alpha(200).Offset(image.Pt(100, 100))
	fig = trans.Figure()
	fig.Alpha(200)
	fig.Series("histogram").SetValues(5, 4, 3, 2, 1).
		Type(plot.Histogram).Color(plot.Blue.Alpha(200)).Legend(false)
	return fig.Show(true)
}

func figures() error {
	w := plot.Use("plot demo").Offset(image.Pt(50, 50))
	view := func(name string, x, y int) *plot.Figure {
		return w.ViewSize(name, image.Pt(300, 300)).Offset(image.Pt(x, y)).Figure()
	}

	fig := view("math curves", 0, 0)
	var vs []float64
	for i := 0; i <= 10; i++ {
		vs = append(vs, float64((i-4)*(i-4)-6))
	}
	fig.Series("parabola").SetValues(vs...).Type(plot.DotLine).Color(plot.Green)
	vs = vs[:0]
	for i := 0; i <= 10; i++ {
		vs = append(vs, math.Sin(float64(i)/1.5)*5)
	}
	fig.Series("sine").SetValues(vs...).Type(plot.DotLine).Color(plot.Blue)
	fig.Series("threshold").SetValues(15).Type(plot.Horizontal).Color(plot.Red)
	fig.Show(false)

	fig = view("scatter plots", 300, 0)
	var pts []plot.Point
	for i := 0; i <= 100; i++ {
		pts = append(pts, plot.Point{X: uniform() * 10, Y: uniform() * 10})
	}
	fig.Series("uniform").Set(pts).Type(plot.Dots).Color(plot.Orange)
	pts = pts[:0]
	for i := 0; i <= 100; i++ {
		pts = append(pts, plot.Point{X: math.Exp(uniform()*3.33) - 1, Y: math.Exp(uniform()*3.33) - 1})
	}
	fig.Series("exponential").Set(pts).Type(plot.Dots).Color(plot.Magenta)
	fig.Show(false)

	fig = view("auto color", 600, 0)
	color := fig.Series("color").DynamicColor(true).Type(plot.Vistogram).Legend(false)
	for i := 0; i < 16; i++ {
		color.AddValueHue(6, plot.Index(i).Hue())
	}
	fig.Show(false)

	fig = view("filled line", 900, 0)
	fig.GridSize(20)
	fossil := fig.Series("fossil").Type(plot.FillLine).Color(plot.Orange)
	electric := fig.Series("electric").Type(plot.FillLine).Color(plot.Green.Gamma(.5))
	for i := 0; i < 16; i++ {
		fossil.AddValue(float64(10-i) + 10*uniform())
		electric.AddValue(float64(i-10) + 10*uniform())
	}
	fig.Show(false)

	fig = view("multiple histograms", 0, 300)
	fig.Series("1").SetValues(1, 2, 3, 4, 5).Type(plot.Histogram).Color(plot.Blue.Alpha(201))
	fig.Series("2").SetValues(6, 5, 4, 3, 2, 1).Type(plot.Histogram).Color(plot.Green.Alpha(201))
	fig.Series("3").SetValues(3, 1, -1, 1, 3, 7).Type(plot.Histogram).Color(plot.Red.Alpha(201))
	fig.Show(false)

	fig = view("palette", 300, 300)
	heat := fig.Series("viridis").Type(plot.Circle).Palette(plot.Viridis).Legend(false)
	for i := 0; i <= 40; i++ {
		x := float64(i) / 4
		heat.AddSized(x, math.Sin(x)*x, 2+x/2)
	}
	fig.Show(false)

	shadow := w.ViewSize("shadow text", image.Pt(300, 300)).Offset(image.Pt(600, 300))
	shadow.Clear(plot.Dark)
	shadow.DrawTextShadow("shadow", image.Pt(40, 120), plot.Yellow, 40)
	shadow.Finish()

	fig = view("range plot", 900, 300)
	apples := fig.Series("apples").Type(plot.RangeLine).Color(plot.Orange)
	pears := fig.Series("pears").Type(plot.RangeLine).Color(plot.Sky)
	for i := 0; i <= 10; i++ {
		v := float64((i-4)*(i-4) - 6)
		if err := apples.AddRange(v+10+5*uniform(), v+5*uniform(), v+20+5*uniform()); err != nil {
			return err
		}
		v = float64(-(i-6)*(i-6) + 30)
		if err := pears.AddRange(v+10+5*uniform(), v+5*uniform(), v+20+5*uniform()); err != nil {
			return err
		}
	}
	fig.Show(false)

	fig = view("parametric plots", 0, 600)
	fig.Square(true)
	circle, lissajous := fig.Series("circle"), fig.Series("lissajous")
	for i := 0; i <= 100; i++ {
		t := float64(i)
		circle.Add(math.Cos(t*.0628+4)*2, math.Sin(t*.0628+4)*2)
		lissajous.Add(math.Cos(t*.2513+1), math.Sin(t*.0628+4))
	}
	fig.Show(false)

	fig = view("transparent circles", 300, 600)
	purple := fig.Series("purple").Type(plot.Circle).Color(plot.Purple.Alpha(192))
	aqua := fig.Series("aqua").Type(plot.Circle).Color(plot.Aqua.Alpha(193))
	for i := 0; i <= 20; i++ {
		purple.AddSized(uniform()*10, uniform()*10, uniform()*20)
		aqua.AddSized(uniform()*10, uniform()*10, uniform()*20)
	}
	fig.Show(false)

	fig = view("hidden axis", 600, 600)
	fig.Origin(false, false)
	fig.Series("histogram").SetValues(4, 5, 7, 6).Type(plot.Vistogram).Color(plot.Blue)
	fig.Series("min").SetValues(4).Type(plot.Vertical).Color(plot.Pink)
	fig.Series("max").SetValues(7).Type(plot.Vertical).Color(plot.Purple)
	fig.Show(false)

	img := w.ViewSize("image and text", image.Pt(300, 300)).Offset(image.Pt(900, 600))
	buf, err := demoImage()
	if err != nil {
		return err
	}
	img.DrawImage(buf)
	img.DrawText("..and text", image.Pt(13, 273), plot.Black.Alpha(127))
	img.Finish()

	return w.Flush()
}

// demoImage loads the -image file, or makes a gradient if there is
// none.
func demoImage() (plot.Buffer, error) {
	if *flagImage == "" {
		buf, err := plot.NewBuffer(64, 64, 3)
		if err != nil {
			return buf, err
		}
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				p := buf.Pix[y*buf.Stride+x*3:]
				p[0], p[1], p[2] = uint8(x*4), uint8(y*4), 160
			}
		}
		return buf, nil
	}
	f, err := os.Open(*flagImage)
	if err != nil {
		return plot.Buffer{}, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return plot.Buffer{}, fmt.Errorf("%s: %w", *flagImage, err)
	}
	return plot.BufferOf(img), nil
}

func dynamic() error {
	w := plot.Use("dynamic plotting")
	v := w.ViewSize("dynamic plotting", image.Pt(600, 300))
	fig := v.Figure()
	fig.Square(true).Origin(false, false)
	walk := fig.Series("random").DynamicColor(true).Legend(false)

	var x, y, f, df float64
	dx, dy := 1.0, 0.0
	last := time.Now()
	for i := 0; i < 1000; i++ {
		now := time.Now()
		fps := float64(time.Second) / float64(now.Sub(last))
		last = now

		l := math.Sqrt((dx*dx+dy*dy)*(f*f+1)) * 10
		dx = (dx + f*dy) / l
		dy = (dy - f*dx) / l
		f = (f + df) * 0.8
		df = (df + uniform()*.11 - .05) * 0.8
		x += dx
		y += dy
		walk.AddHue(x, y, float64(i)*0.36)

		fig.Show(false)
		v.DrawText(fmt.Sprintf("%.1f fps  %.1f%%", fps, float64(i)/10), image.Pt(480, 277), plot.Gray)
		if err := v.Flush(); err != nil {
			return err
		}
		if err := pollQuit(); err != nil {
			return err
		}
	}
	v.DrawTextShadow("Press any key to exit", image.Pt(70, 130), plot.Red, 40)
	return v.Flush()
}

var signalColors = []plot.Color{
	plot.Red, plot.Orange, plot.Yellow, plot.Lawn, plot.Green, plot.Aqua, plot.Cyan,
	plot.Sky, plot.Blue, plot.Purple, plot.Magenta, plot.Pink, plot.Black, plot.Dark,
}

// signals redraws many long series every frame and reports how long
// each frame took.
func signals() error {
	const (
		n        = 2000
		channels = 16
		frames   = 200
	)
	w := plot.Use("signals")
	v := w.ViewSize("signals", image.Pt(800, 600))
	fig := v.Figure()
	fig.Origin(false, false)
	vals := make([]float64, n)
	for frame := 0; frame < frames; frame++ {
		start := time.Now()
		for j := 0; j < channels; j++ {
			period := 40.0
			sign := 1.0
			if j%2 == 1 {
				period, sign = 400, -1
			}
			for i := range vals {
				vals[i] = sign*math.Sin(float64(i+frame)/period*2*math.Pi)/2 + float64(j) + 1
			}
			fig.Series(fmt.Sprintf("Ch %d", j)).SetValues(vals...).Color(signalColors[j%len(signalColors)])
		}
		fig.Show(false)
		v.DrawText(fmt.Sprintf("%v per frame", time.Since(start).Round(time.Millisecond)), image.Pt(40, 40), plot.Black)
		if err := v.Flush(); err != nil {
			return err
		}
		if err := pollQuit(); err != nil {
			return err
		}
	}
	return nil
}
