// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package highgui

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/aclements/winplot/plot"
	"github.com/aclements/winplot/plot/plottest"
)

// withBackend installs b as the default backend for the rest of the
// test.
func withBackend(t *testing.T, b plot.Backend) {
	t.Helper()
	plot.Shutdown()
	plot.SetBackend(b)
	t.Cleanup(func() {
		plot.Shutdown()
		plot.SetBackend(nil)
	})
}

func TestImshow(t *testing.T) {
	b := new(plottest.Backend)
	withBackend(t, b)

	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	MoveWindow("pic", 10, 20)
	if err := Imshow("pic", img); err != nil {
		t.Fatal(err)
	}
	frame := b.Last(plot.DefaultWindow)
	if frame == nil {
		t.Fatal("Imshow displayed nothing")
	}
	// MoveWindow created the view at the default size before the
	// image was shown, so it keeps that size.
	want := image.Rectangle{Max: plot.DefaultViewSize}.Add(image.Pt(10, 20))
	if got := lookup("pic").Rect(); got != want {
		t.Errorf("view rect = %v; want %v", got, want)
	}
	if got := plot.ColorOf(frame.At(100, 100)); got != plot.White {
		t.Errorf("image pixel = %v; want white", got)
	}

	if err := Imshow("small", img); err != nil {
		t.Fatal(err)
	}
	if got := lookup("small").Rect().Size(); got != image.Pt(40, 30) {
		t.Errorf("new view size = %v; want image size (40,30)", got)
	}
}

func TestDestroyWindow(t *testing.T) {
	b := new(plottest.Backend)
	withBackend(t, b)

	buf, _ := plot.NewBuffer(4, 4, 3)
	for i := 0; i < len(buf.Pix); i += 3 {
		buf.Pix[i] = 255
	}
	ResizeWindow("v", 50, 50)
	if err := Imshow("v", buf); err != nil {
		t.Fatal(err)
	}
	if got := plot.ColorOf(b.Last(plot.DefaultWindow).At(25, 25)); got != plot.Red {
		t.Fatalf("pixel = %v; want red", got)
	}
	if err := DestroyWindow("v"); err != nil {
		t.Fatal(err)
	}
	if got := plot.ColorOf(b.Last(plot.DefaultWindow).At(25, 25)); got != plot.Black {
		t.Errorf("pixel after DestroyWindow = %v; want background", got)
	}
	if err := DestroyWindow("missing"); err != nil {
		t.Errorf("DestroyWindow of unknown view: %v", err)
	}
	if err := DestroyAllWindows(); err != nil {
		t.Fatal(err)
	}
	if len(plot.Default().Names()) != 0 {
		t.Errorf("windows left after DestroyAllWindows: %q", plot.Default().Names())
	}
}

func TestMouseCallback(t *testing.T) {
	b := new(plottest.Backend)
	withBackend(t, b)

	type call struct {
		ev    plot.MouseEventType
		x, y  int
		flags plot.MouseFlags
	}
	var calls []call
	MoveWindow("m", 30, 30)
	SetMouseCallback("m", func(ev plot.MouseEventType, x, y int, flags plot.MouseFlags) {
		calls = append(calls, call{ev, x, y, flags})
	})
	buf, _ := plot.NewBuffer(1, 1, 1)
	if err := Imshow("m", buf); err != nil {
		t.Fatal(err)
	}
	flags := plot.FlagRButton.WithWheelDelta(120)
	b.Mouse(plot.DefaultWindow, plot.MouseEvent{Event: plot.EventMouseWheel, X: 40, Y: 50, Flags: flags})
	if len(calls) != 1 {
		t.Fatalf("got %d callbacks; want 1", len(calls))
	}
	if got, want := calls[0], (call{plot.EventMouseWheel, 10, 20, flags}); got != want {
		t.Errorf("callback got %+v; want %+v", got, want)
	}
	if d := GetMouseWheelDelta(calls[0].flags); d != 120 {
		t.Errorf("GetMouseWheelDelta = %d; want 120", d)
	}
}

func TestKeys(t *testing.T) {
	b := new(plottest.Backend)
	withBackend(t, b)
	b.PressKey(27)
	if k, err := PollKey(); err != nil || k != 27 {
		t.Errorf("PollKey() = %d, %v; want 27", k, err)
	}
	b.PressKey('a')
	if k, err := WaitKeyEx(10); err != nil || k != 'a' {
		t.Errorf("WaitKeyEx() = %d, %v; want 'a'", k, err)
	}
	if k, err := WaitKey(10); err != nil || k != plot.NoKey {
		t.Errorf("WaitKey() = %d, %v; want NoKey", k, err)
	}
}

// showHide hides every optional capability of the wrapped backend.
type showHide struct{ b *plottest.Backend }

func (s showHide) Show(name string, buf plot.Buffer) error { return s.b.Show(name, buf) }
func (s showHide) Hide(name string) error { return s.b.Hide(name) }
func (s showHide) DestroyAll() error { return s.b.DestroyAll() }
func (s showHide) WaitKey(d time.Duration) (int, error) { return s.b.WaitKey(d) }

func TestCapabilityGaps(t *testing.T) {
	withBackend(t, showHide{new(plottest.Backend)})

	if k, err := PollKey(); !errors.Is(err, ErrPollKeyDisabled) || k != plot.NoKey {
		t.Errorf("PollKey() = %d, %v; want NoKey, ErrPollKeyDisabled", k, err)
	}
	if r := GetWindowImageRect(plot.DefaultWindow); r != (Rect{-1, -1, -1, -1}) {
		t.Errorf("GetWindowImageRect = %+v; want sentinel", r)
	}
	if p := GetTrackbarPos("t", plot.DefaultWindow); p != -1 {
		t.Errorf("GetTrackbarPos = %d; want -1", p)
	}
	if p := GetWindowProperty("v", WindowPropFullscreen); p != -1 {
		t.Errorf("GetWindowProperty = %v; want -1", p)
	}
	if r := SelectROI("v", image.NewGray(image.Rect(0, 0, 2, 2)), false, false); r != (Rect{-1, -1, -1, -1}) {
		t.Errorf("SelectROI = %+v; want sentinel", r)
	}
	for name, err := range map[string]error{
		"CreateTrackbar":    CreateTrackbar("t", plot.DefaultWindow, nil, 10, nil),
		"SetTrackbarPos":    SetTrackbarPos("t", plot.DefaultWindow, 1),
		"SetTrackbarMin":    SetTrackbarMin("t", plot.DefaultWindow, 1),
		"SetTrackbarMax":    SetTrackbarMax("t", plot.DefaultWindow, 1),
		"SetWindowProperty": SetWindowProperty("v", WindowPropTopmost, 1),
	} {
		if !errors.Is(err, plot.ErrUnsupported) {
			t.Errorf("%s: err = %v; want ErrUnsupported", name, err)
		}
	}
}

func TestTrackbar(t *testing.T) {
	b := new(plottest.Backend)
	withBackend(t, b)

	value := 3
	var moves []int
	if err := CreateTrackbar("t", "w", &value, 10, func(pos int) { moves = append(moves, pos) }); err != nil {
		t.Fatal(err)
	}
	if p := GetTrackbarPos("t", "w"); p != 3 {
		t.Errorf("initial position = %d; want 3", p)
	}
	if err := SetTrackbarMax("t", "w", 5); err != nil {
		t.Fatal(err)
	}
	if err := SetTrackbarPos("t", "w", 9); err != nil {
		t.Fatal(err)
	}
	if p := GetTrackbarPos("t", "w"); p != 5 || value != 5 {
		t.Errorf("position after clamped move = %d (value %d); want 5", p, value)
	}
	if len(moves) != 1 || moves[0] != 5 {
		t.Errorf("onChange calls = %v; want [5]", moves)
	}
	if p := GetTrackbarPos("missing", "w"); p != -1 {
		t.Errorf("GetTrackbarPos of missing trackbar = %d; want -1", p)
	}
}

func TestWindowImageRect(t *testing.T) {
	b := new(plottest.Backend)
	withBackend(t, b)
	plot.Current().Offset(image.Pt(7, 8))
	if err := Imshow("v", image.NewGray(image.Rect(0, 0, 20, 10))); err != nil {
		t.Fatal(err)
	}
	if got, want := GetWindowImageRect(plot.DefaultWindow), (Rect{7, 8, 20, 10}); got != want {
		t.Errorf("GetWindowImageRect = %+v; want %+v", got, want)
	}
}

func TestWindowProperty(t *testing.T) {
	b := new(plottest.Backend)
	withBackend(t, b)

	if got := GetWindowProperty("p", WindowPropVisible); got != 0 {
		t.Errorf("visible property of missing view = %v; want 0", got)
	}
	NamedWindow("p")
	if got := GetWindowProperty("p", WindowPropVisible); got != 1 {
		t.Errorf("visible property = %v; want 1", got)
	}
	if got := GetWindowProperty("p", WindowPropAspectRatio); got != -1 {
		t.Errorf("unset property = %v; want -1", got)
	}
	if err := SetWindowProperty("p", WindowPropFullscreen, 1); err != nil {
		t.Fatal(err)
	}
	if got := GetWindowProperty("p", WindowPropFullscreen); got != 1 {
		t.Errorf("fullscreen property = %v; want 1", got)
	}
}

func TestSelectROI(t *testing.T) {
	b := new(plottest.Backend)
	withBackend(t, b)
	b.ROIs = []image.Rectangle{image.Rect(15, 25, 20, 40), image.Rect(10, 20, 11, 21)}

	MoveWindow("roi", 10, 20)
	img := image.NewGray(image.Rect(0, 0, 30, 30))
	if got, want := SelectROI("roi", img, true, false), (Rect{5, 5, 5, 15}); got != want {
		t.Errorf("SelectROI = %+v; want %+v", got, want)
	}
	rs, err := SelectROIs("roi", img, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 2 || rs[1] != (Rect{0, 0, 1, 1}) {
		t.Errorf("SelectROIs = %+v; want two rectangles in view coordinates", rs)
	}
}

func TestUpdateWindow(t *testing.T) {
	b := new(plottest.Backend)
	withBackend(t, b)
	if err := UpdateWindow("missing"); err != nil {
		t.Errorf("UpdateWindow of unknown view: %v", err)
	}
	ResizeWindow("u", 40, 40)
	lookup("u").DrawRect(image.Rect(0, 0, 40, 40), plot.Red)
	shows := b.Shows
	if err := UpdateWindow("u"); err != nil {
		t.Fatal(err)
	}
	if b.Shows != shows+1 {
		t.Fatalf("UpdateWindow did not redisplay the window")
	}
	if got := plot.ColorOf(b.Last(plot.DefaultWindow).At(20, 30)); got != plot.Red {
		t.Errorf("pixel = %v; want red", got)
	}
	if StartWindowThread() != 0 {
		t.Errorf("StartWindowThread() != 0")
	}
}
