// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"image"

	"github.com/aclements/winplot/internal/raster"
)

// A Window is a named surface made of Views. Flush composites the
// views back to front and hands the result to the display backend.
//
// Windows are obtained from a Registry and live as long as it does.
// A Window is not safe for concurrent use; drive each window from one
// goroutine.
type Window struct {
	reg  *Registry
	name string

	offset     image.Point
	size       image.Point
	fixedSize  bool
	title      string
	cursor     bool
	background Color

	views  []*View
	byName map[string]*View

	canvas *image.NRGBA
	hidden bool

	// Settings waiting to be pushed to the backend by Flush.
	moved, retitled bool
	mouseWanted     bool
	mouseOn         bool

	mouseIn  bool
	mousePos image.Point
}

func newWindow(r *Registry, name string) *Window {
	return &Window{
		reg:        r,
		name:       name,
		title:      name,
		background: Black,
		byName:     make(map[string]*View),
	}
}

// Name returns the window name.
func (w *Window) Name() string { return w.name }

// View returns the view called name, creating it with
// DefaultViewSize if it does not exist. Looking up a view un-hides
// it, and un-hides and redisplays the window if it was hidden.
func (w *Window) View(name string) *View {
	v, ok := w.byName[name]
	if !ok {
		v = newView(w, name, DefaultViewSize)
		w.views = append(w.views, v)
		w.byName[name] = v
	}
	v.hidden = false
	if w.hidden {
		w.hidden = false
		if err := w.Flush(); err != nil {
			w.reg.logf("redisplaying window %q: %v", w.name, err)
		}
	}
	return v
}

// ViewSize is View followed by v.Size(size).
func (w *Window) ViewSize(name string, size image.Point) *View {
	return w.View(name).Size(size)
}

// Views returns the views in compositing order.
func (w *Window) Views() []*View {
	return append([]*View(nil), w.views...)
}

// Offset sets the window's position on screen. It takes effect at the
// next Flush, if the backend can place windows.
func (w *Window) Offset(p image.Point) *Window {
	w.offset = p
	w.moved = true
	return w
}

// Size fixes the window size. Without a fixed size the window grows
// to the bounding box of its views.
func (w *Window) Size(sz image.Point) *Window {
	w.size = sz
	w.fixedSize = true
	return w
}

// Bounds returns the rectangle the next Flush will composite.
func (w *Window) Bounds() image.Rectangle {
	if w.fixedSize {
		return image.Rectangle{Max: w.size}
	}
	var r image.Rectangle
	for _, v := range w.views {
		r = r.Union(v.Rect())
	}
	// Views at negative offsets are clipped, not grown into.
	return image.Rectangle{Max: r.Max}
}

// Title sets the window title. It takes effect at the next Flush, if
// the backend has titles.
func (w *Window) Title(s string) *Window {
	w.title = s
	w.retitled = true
	return w
}

// Cursor sets whether Flush draws a crosshair at the mouse position.
func (w *Window) Cursor(on bool) *Window {
	w.cursor = on
	w.wantMouse()
	return w
}

// Background sets the color behind all views.
func (w *Window) Background(c Color) *Window {
	w.background = c.Alpha(255)
	return w
}

// Hide removes the window from the screen. The window and its views
// remain; the next View lookup displays it again.
func (w *Window) Hide() error {
	w.hidden = true
	if err := w.reg.backend.Hide(w.name); err != nil {
		return fmt.Errorf("hiding window %q: %w", w.name, err)
	}
	return nil
}

// Hidden reports whether the window is hidden.
func (w *Window) Hidden() bool { return w.hidden }

// Canvas returns the image composited by the last Flush, or nil.
func (w *Window) Canvas() *image.NRGBA { return w.canvas }

func (w *Window) wantMouse() { w.mouseWanted = true }

// Flush composites every finished, visible view and displays the
// result. A hidden window is composited but not displayed.
func (w *Window) Flush() error {
	w.composite()
	if w.hidden {
		return nil
	}
	b := w.reg.backend
	if err := b.Show(w.name, bufferFromNRGBA(w.canvas)); err != nil {
		return fmt.Errorf("showing window %q: %w", w.name, err)
	}
	if w.mouseWanted && !w.mouseOn {
		if mb, ok := b.(MouseBackend); ok {
			if err := mb.SetMouseCallback(w.name, w.dispatch); err != nil {
				return fmt.Errorf("window %q: %w", w.name, err)
			}
			w.mouseOn = true
		} else {
			w.reg.logf("window %q: backend has no mouse input", w.name)
			w.mouseWanted = false
		}
	}
	if w.moved {
		if gb, ok := b.(GeometryBackend); ok {
			if err := gb.MoveWindow(w.name, w.offset.X, w.offset.Y); err != nil {
				return fmt.Errorf("moving window %q: %w", w.name, err)
			}
		}
		w.moved = false
	}
	if w.retitled {
		if tb, ok := b.(TitleBackend); ok {
			if err := tb.SetWindowTitle(w.name, w.title); err != nil {
				return fmt.Errorf("titling window %q: %w", w.name, err)
			}
		}
		w.retitled = false
	}
	return nil
}

// composite redraws the canvas from the view snapshots.
func (w *Window) composite() {
	r := w.Bounds()
	if r.Dx() < 1 || r.Dy() < 1 {
		r = image.Rect(0, 0, 1, 1)
	}
	if w.canvas == nil || w.canvas.Rect != r {
		w.canvas = image.NewNRGBA(r)
	}
	raster.Fill(w.canvas, w.background.nrgba())
	for _, v := range w.views {
		if v.hidden || v.snap == nil {
			continue
		}
		compose(w.canvas, v.snap, v.offset, v.alpha)
	}
	if w.cursor && w.mouseIn {
		c := Gray.nrgba()
		p := w.mousePos
		raster.HLine(w.canvas, p.X-5, p.X+5, p.Y, c)
		raster.VLine(w.canvas, p.X, p.Y-5, p.Y+5, c)
	}
}

// compose blends src, placed at off, into the opaque image dst. Each
// source pixel is blended at alpha·(its own alpha)/255.
func compose(dst, src *image.NRGBA, off image.Point, alpha uint8) {
	r := src.Rect.Add(off).Intersect(dst.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		si := src.PixOffset(r.Min.X-off.X, y-off.Y)
		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.Pix[si : si+4 : si+4]
			a := uint8((uint32(s[3])*uint32(alpha) + 127) / 255)
			if a != 0 {
				d := dst.Pix[di : di+3 : di+3]
				d[0] = raster.Mix(d[0], s[0], a)
				d[1] = raster.Mix(d[1], s[1], a)
				d[2] = raster.Mix(d[2], s[2], a)
			}
			di += 4
			si += 4
		}
	}
}

// ViewAt returns the topmost visible view containing p, or nil.
func (w *Window) ViewAt(p image.Point) *View {
	for i := len(w.views) - 1; i >= 0; i-- {
		v := w.views[i]
		if !v.hidden && v.snap != nil && p.In(v.Rect()) {
			return v
		}
	}
	return nil
}

// dispatch routes a backend mouse event to the view under it.
func (w *Window) dispatch(ev MouseEvent) {
	w.mouseIn, w.mousePos = true, ev.Pos()
	redraw := w.cursor
	if v := w.ViewAt(ev.Pos()); v != nil && v.mouse != nil {
		local := ev
		local.X -= v.offset.X
		local.Y -= v.offset.Y
		v.mouse(v, local)
		v.Finish()
		redraw = true
	}
	if redraw {
		if err := w.Flush(); err != nil {
			w.reg.logf("%v", err)
		}
	}
}
