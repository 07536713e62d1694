// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package highgui offers OpenCV highgui-style free functions on top of
// package plot.
//
// What highgui calls a window is a View of the current plot Window of
// the default registry, so code written against highgui can share one
// composited window with figures. Calls that highgui forwards to the
// real display (trackbars, image rectangles) go to the default
// registry's backend when it has the capability. Query calls return a
// sentinel when it does not; setters return plot.ErrUnsupported.
package highgui

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/aclements/winplot/plot"
)

// ErrPollKeyDisabled is returned by PollKey when the backend cannot
// poll for keys. It is never accompanied by a real key code.
var ErrPollKeyDisabled = errors.New("highgui: PollKey is disabled because the display backend cannot poll for keys")

// A Rect is a window rectangle in screen coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// noRect is returned when the backend cannot report geometry.
var noRect = Rect{-1, -1, -1, -1}

// A MouseCallback receives mouse events in view coordinates.
type MouseCallback func(event plot.MouseEventType, x, y int, flags plot.MouseFlags)

func current() *plot.Window { return plot.Current() }

// lookup returns the named view of the current window without
// un-hiding it, or nil.
func lookup(name string) *plot.View {
	for _, v := range current().Views() {
		if v.Name() == name {
			return v
		}
	}
	return nil
}

// Figure returns the figure of the named view of the current window.
func Figure(name string) *plot.Figure {
	return current().View(name).Figure()
}

// NamedWindow creates the named view if it does not exist. The flags
// highgui takes are not meaningful here and are not accepted.
func NamedWindow(name string) {
	current().View(name)
}

// Imshow draws img into the named view, scaled to fill it, and
// displays the result. A view created by Imshow takes the size of
// img.
func Imshow(name string, img image.Image) error {
	fresh := lookup(name) == nil
	buf, ok := img.(plot.Buffer)
	if !ok {
		buf = plot.BufferOf(img)
	}
	v := current().View(name)
	if fresh {
		v.Size(image.Pt(buf.Width, buf.Height))
	}
	return v.DrawImage(buf).Flush()
}

// MoveWindow moves the named view within the current window.
func MoveWindow(name string, x, y int) {
	current().View(name).Offset(image.Pt(x, y))
}

// ResizeWindow resizes the named view.
func ResizeWindow(name string, width, height int) {
	current().View(name).Size(image.Pt(width, height))
}

// SetWindowTitle sets the title bar text of the named view.
func SetWindowTitle(name, title string) {
	current().View(name).Title(title)
}

// SetMouseCallback routes mouse events over the named view to fn.
// Registration with the backend happens at the next flush.
func SetMouseCallback(name string, fn MouseCallback) {
	v := current().View(name)
	if fn == nil {
		v.Mouse(nil)
		return
	}
	v.Mouse(func(_ *plot.View, ev plot.MouseEvent) {
		fn(ev.Event, ev.X, ev.Y, ev.Flags)
	})
}

// DestroyWindow hides the named view and redisplays the window
// without it.
func DestroyWindow(name string) error {
	v := lookup(name)
	if v == nil {
		return nil
	}
	v.Hide()
	return current().Flush()
}

// DestroyAllWindows closes every window of the default registry.
func DestroyAllWindows() error {
	return plot.Default().Close()
}

// delay converts a highgui millisecond delay, where 0 or less means
// forever, to a WaitKey timeout.
func delay(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// WaitKey waits up to delay milliseconds for a key, forever if delay
// is 0 or less. It returns plot.NoKey on timeout.
func WaitKey(delayMS int) (int, error) {
	return plot.Default().WaitKey(delay(delayMS))
}

// WaitKeyEx is WaitKey. Backends already report full key codes.
func WaitKeyEx(delayMS int) (int, error) {
	return WaitKey(delayMS)
}

// PollKey returns a pending key or plot.NoKey without waiting.
func PollKey() (int, error) {
	k, err := plot.Default().PollKey()
	if errors.Is(err, plot.ErrUnsupported) {
		return plot.NoKey, ErrPollKeyDisabled
	}
	return k, err
}

// GetWindowImageRect returns the on-screen rectangle of the named
// backend window, or Rect{-1, -1, -1, -1} if it is unknown.
func GetWindowImageRect(name string) Rect {
	gb, ok := plot.Default().Backend().(plot.GeometryBackend)
	if !ok {
		return noRect
	}
	r, err := gb.WindowRect(name)
	if err != nil {
		return noRect
	}
	return Rect{r.Min.X, r.Min.Y, r.Dx(), r.Dy()}
}

// GetMouseWheelDelta extracts the wheel delta from mouse event flags.
func GetMouseWheelDelta(flags plot.MouseFlags) int {
	return flags.WheelDelta()
}

func trackbars() (plot.TrackbarBackend, error) {
	tb, ok := plot.Default().Backend().(plot.TrackbarBackend)
	if !ok {
		return nil, plot.ErrUnsupported
	}
	return tb, nil
}

// CreateTrackbar adds a trackbar with range [0, count] to the named
// backend window. The current position is kept in *value if value is
// not nil, and onChange is called after every move.
func CreateTrackbar(trackbar, window string, value *int, count int, onChange func(pos int)) error {
	tb, err := trackbars()
	if err != nil {
		return fmt.Errorf("creating trackbar %q: %w", trackbar, err)
	}
	return tb.CreateTrackbar(trackbar, window, value, count, onChange)
}

// GetTrackbarPos returns the trackbar position, or -1 if there is no
// such trackbar.
func GetTrackbarPos(trackbar, window string) int {
	tb, err := trackbars()
	if err != nil {
		return -1
	}
	pos, err := tb.TrackbarPos(trackbar, window)
	if err != nil {
		return -1
	}
	return pos
}

// SetTrackbarPos moves the trackbar.
func SetTrackbarPos(trackbar, window string, pos int) error {
	tb, err := trackbars()
	if err != nil {
		return err
	}
	return tb.SetTrackbarPos(trackbar, window, pos)
}

// SetTrackbarMin sets the trackbar minimum.
func SetTrackbarMin(trackbar, window string, min int) error {
	tb, err := trackbars()
	if err != nil {
		return err
	}
	return tb.SetTrackbarMin(trackbar, window, min)
}

// SetTrackbarMax sets the trackbar maximum.
func SetTrackbarMax(trackbar, window string, max int) error {
	tb, err := trackbars()
	if err != nil {
		return err
	}
	return tb.SetTrackbarMax(trackbar, window, max)
}

// Window property identifiers, with highgui's values.
const (
	WindowPropFullscreen  = 0
	WindowPropAutosize    = 1
	WindowPropAspectRatio = 2
	WindowPropOpenGL      = 3
	WindowPropVisible     = 4
	WindowPropTopmost     = 5
)

// GetWindowProperty returns a property of the named view. Visibility
// is answered by the view itself: 1 if it and its window are shown,
// otherwise 0. Other properties belong to the backend window holding
// the view and are -1 if the backend cannot report them.
func GetWindowProperty(name string, prop int) float64 {
	if prop == WindowPropVisible {
		if v := lookup(name); v != nil && !v.Hidden() && !current().Hidden() {
			return 1
		}
		return 0
	}
	pb, ok := plot.Default().Backend().(plot.PropertyBackend)
	if !ok {
		return -1
	}
	val, err := pb.WindowProperty(current().Name(), prop)
	if err != nil {
		return -1
	}
	return val
}

// SetWindowProperty sets a property of the backend window holding the
// named view.
func SetWindowProperty(name string, prop int, value float64) error {
	pb, ok := plot.Default().Backend().(plot.PropertyBackend)
	if !ok {
		return fmt.Errorf("setting property %d of %q: %w", prop, name, plot.ErrUnsupported)
	}
	return pb.SetWindowProperty(current().Name(), prop, value)
}

// SelectROI shows img in the named view and lets the user drag out a
// rectangle over it. It returns the rectangle in view coordinates, or
// Rect{-1, -1, -1, -1} if the backend cannot select regions.
func SelectROI(name string, img image.Image, crosshair, fromCenter bool) Rect {
	rs, err := selectROIs(name, img, crosshair, fromCenter, false)
	if err != nil || len(rs) == 0 {
		return noRect
	}
	return rs[0]
}

// SelectROIs is SelectROI for any number of rectangles.
func SelectROIs(name string, img image.Image, crosshair, fromCenter bool) ([]Rect, error) {
	return selectROIs(name, img, crosshair, fromCenter, true)
}

func selectROIs(name string, img image.Image, crosshair, fromCenter, multiple bool) ([]Rect, error) {
	sel, ok := plot.Default().Backend().(plot.ROISelector)
	if !ok {
		return nil, fmt.Errorf("selecting regions in %q: %w", name, plot.ErrUnsupported)
	}
	if err := Imshow(name, img); err != nil {
		return nil, err
	}
	rs, err := sel.SelectROIs(current().Name(), crosshair, fromCenter, multiple)
	if err != nil {
		return nil, err
	}
	off := lookup(name).Rect().Min
	out := make([]Rect, len(rs))
	for i, r := range rs {
		r = r.Sub(off)
		out[i] = Rect{r.Min.X, r.Min.Y, r.Dx(), r.Dy()}
	}
	return out, nil
}

// StartWindowThread returns 0. Backends deliver input from inside
// WaitKey and PollKey, so there is no window thread to start.
func StartWindowThread() int {
	return 0
}

// UpdateWindow finishes the named view and redisplays its window.
func UpdateWindow(name string) error {
	v := lookup(name)
	if v == nil {
		return nil
	}
	v.Finish()
	return current().Flush()
}
