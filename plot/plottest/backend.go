// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plottest provides an in-memory display backend for testing
// code that draws with package plot.
package plottest

import (
	"fmt"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/aclements/winplot/plot"
)

var (
	_ plot.Backend         = (*Backend)(nil)
	_ plot.KeyPoller       = (*Backend)(nil)
	_ plot.MouseBackend    = (*Backend)(nil)
	_ plot.GeometryBackend = (*Backend)(nil)
	_ plot.TitleBackend    = (*Backend)(nil)
	_ plot.TrackbarBackend = (*Backend)(nil)
	_ plot.PropertyBackend = (*Backend)(nil)
	_ plot.ROISelector     = (*Backend)(nil)
)

// Backend records everything shown through it. It implements every
// optional backend capability. The zero value is ready to use.
type Backend struct {
	mu sync.Mutex

	frames  map[string][]*image.NRGBA
	visible map[string]bool
	mouse   map[string]func(plot.MouseEvent)
	rects   map[string]image.Rectangle
	titles  map[string]string
	keys    []int
	bars    map[[2]string]*trackbar
	props   map[string]map[int]float64

	// Shows counts calls to Show.
	Shows int

	// ROIs is what SelectROIs returns, in window coordinates.
	ROIs []image.Rectangle
}

type trackbar struct {
	pos, min, max int
	value         *int
	onChange      func(int)
}

func (b *Backend) init() {
	if b.frames == nil {
		b.frames = make(map[string][]*image.NRGBA)
		b.visible = make(map[string]bool)
		b.mouse = make(map[string]func(plot.MouseEvent))
		b.rects = make(map[string]image.Rectangle)
		b.titles = make(map[string]string)
		b.bars = make(map[[2]string]*trackbar)
		b.props = make(map[string]map[int]float64)
	}
}

// Show records a copy of buf.
func (b *Backend) Show(name string, buf plot.Buffer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	img := image.NewNRGBA(buf.Bounds())
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			img.Set(x, y, buf.At(x, y))
		}
	}
	b.frames[name] = append(b.frames[name], img)
	b.visible[name] = true
	r := b.rects[name]
	b.rects[name] = image.Rectangle{Min: r.Min, Max: r.Min.Add(img.Rect.Size())}
	b.Shows++
	return nil
}

// Hide marks the window invisible.
func (b *Backend) Hide(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	b.visible[name] = false
	return nil
}

// DestroyAll forgets every window.
func (b *Backend) DestroyAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames, b.visible = nil, nil
	b.mouse, b.rects, b.titles, b.bars, b.props = nil, nil, nil, nil, nil
	return nil
}

// PressKey queues a key for WaitKey and PollKey.
func (b *Backend) PressKey(key int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keys = append(b.keys, key)
}

// WaitKey returns the next queued key, or plot.NoKey without
// waiting if none is queued.
func (b *Backend) WaitKey(timeout time.Duration) (int, error) {
	return b.PollKey()
}

// PollKey returns the next queued key or plot.NoKey.
func (b *Backend) PollKey() (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.keys) == 0 {
		return plot.NoKey, nil
	}
	k := b.keys[0]
	b.keys = b.keys[1:]
	return k, nil
}

// SetMouseCallback records fn for Mouse.
func (b *Backend) SetMouseCallback(name string, fn func(plot.MouseEvent)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	if fn == nil {
		delete(b.mouse, name)
	} else {
		b.mouse[name] = fn
	}
	return nil
}

// Mouse delivers ev to the named window's callback, as a real
// backend would from inside WaitKey. It reports whether a callback
// was registered.
func (b *Backend) Mouse(name string, ev plot.MouseEvent) bool {
	b.mu.Lock()
	fn := b.mouse[name]
	b.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(ev)
	return true
}

// WindowRect returns the last known geometry of the named window.
func (b *Backend) WindowRect(name string) (image.Rectangle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	return b.rects[name], nil
}

// MoveWindow records the window position.
func (b *Backend) MoveWindow(name string, x, y int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	r := b.rects[name]
	b.rects[name] = r.Sub(r.Min).Add(image.Pt(x, y))
	return nil
}

// ResizeWindow records the window size.
func (b *Backend) ResizeWindow(name string, w, h int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	r := b.rects[name]
	b.rects[name] = image.Rectangle{Min: r.Min, Max: r.Min.Add(image.Pt(w, h))}
	return nil
}

// SetWindowTitle records the title.
func (b *Backend) SetWindowTitle(name, title string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	b.titles[name] = title
	return nil
}

// CreateTrackbar creates a trackbar with range [0, count].
func (b *Backend) CreateTrackbar(name, window string, value *int, count int, onChange func(int)) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	t := &trackbar{max: count, value: value, onChange: onChange}
	if value != nil {
		t.pos = *value
	}
	b.bars[[2]string{name, window}] = t
	return nil
}

func (b *Backend) bar(name, window string) (*trackbar, error) {
	b.init()
	t, ok := b.bars[[2]string{name, window}]
	if !ok {
		return nil, plot.ErrUnsupported
	}
	return t, nil
}

// TrackbarPos returns the trackbar position.
func (b *Backend) TrackbarPos(name, window string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, err := b.bar(name, window)
	if err != nil {
		return -1, err
	}
	return t.pos, nil
}

// SetTrackbarPos moves the trackbar, clamped to its range, and calls
// its change callback.
func (b *Backend) SetTrackbarPos(name, window string, pos int) error {
	b.mu.Lock()
	t, err := b.bar(name, window)
	if err != nil {
		b.mu.Unlock()
		return err
	}
	if pos < t.min {
		pos = t.min
	} else if pos > t.max {
		pos = t.max
	}
	t.pos = pos
	if t.value != nil {
		*t.value = pos
	}
	fn := t.onChange
	b.mu.Unlock()
	if fn != nil {
		fn(pos)
	}
	return nil
}

// SetTrackbarMin sets the trackbar minimum.
func (b *Backend) SetTrackbarMin(name, window string, min int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, err := b.bar(name, window)
	if err != nil {
		return err
	}
	t.min = min
	return nil
}

// SetTrackbarMax sets the trackbar maximum.
func (b *Backend) SetTrackbarMax(name, window string, max int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, err := b.bar(name, window)
	if err != nil {
		return err
	}
	t.max = max
	return nil
}

// Frames returns every frame shown for the named window, oldest
// first.
func (b *Backend) Frames(name string) []*image.NRGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*image.NRGBA(nil), b.frames[name]...)
}

// Last returns the most recent frame shown for the named window, or
// nil.
func (b *Backend) Last(name string) *image.NRGBA {
	fs := b.Frames(name)
	if len(fs) == 0 {
		return nil
	}
	return fs[len(fs)-1]
}

// Visible reports whether the named window is on screen.
func (b *Backend) Visible(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible[name]
}

// Title returns the last title set for the named window.
func (b *Backend) Title(name string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.titles[name]
}

// Windows returns the names of all windows ever shown, sorted.
func (b *Backend) Windows() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var names []string
	for name := range b.frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WindowProperty returns a property set by SetWindowProperty.
func (b *Backend) WindowProperty(name string, prop int) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	v, ok := b.props[name][prop]
	if !ok {
		return 0, fmt.Errorf("window %q has no property %d", name, prop)
	}
	return v, nil
}

// SetWindowProperty records a property.
func (b *Backend) SetWindowProperty(name string, prop int, value float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.init()
	if b.props[name] == nil {
		b.props[name] = make(map[int]float64)
	}
	b.props[name][prop] = value
	return nil
}

// SelectROIs returns b.ROIs, or only the first of them if multiple is
// false.
func (b *Backend) SelectROIs(name string, crosshair, fromCenter, multiple bool) ([]image.Rectangle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rois := b.ROIs
	if !multiple && len(rois) > 1 {
		rois = rois[:1]
	}
	return append([]image.Rectangle(nil), rois...), nil
}
