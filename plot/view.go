// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/aclements/winplot/internal/raster"
)

// DefaultViewSize is the size of a view created without one.
var DefaultViewSize = image.Pt(300, 300)

// titleHeight is the height of the title bar drawn by Finish.
const titleHeight = textHeight + 2

// A MouseFunc handles mouse events over a View. ev is in view
// coordinates. The callback may draw into v; the view is finished
// and its window flushed after the callback returns.
type MouseFunc func(v *View, ev MouseEvent)

// A View is a rectangular region of a Window with its own pixels.
//
// Drawing goes into a working buffer. Finish commits the working
// buffer to the snapshot that the window composites, so drawing done
// after Finish shows up only after the next Finish.
type View struct {
	win  *Window
	name string

	offset     image.Point
	size       image.Point
	alpha      uint8
	frameColor Color
	title      string

	figure *Figure
	mouse  MouseFunc

	buf  *image.NRGBA // working buffer
	snap *image.NRGBA // last finished buffer, nil until the first Finish

	dirty  bool
	hidden bool
}

func newView(w *Window, name string, size image.Point) *View {
	return &View{
		win:        w,
		name:       name,
		size:       size,
		alpha:      255,
		frameColor: Sky,
		title:      name,
	}
}

// Name returns the view name.
func (v *View) Name() string { return v.name }

// Window returns the window containing v.
func (v *View) Window() *Window { return v.win }

// Rect returns v's rectangle in window coordinates.
func (v *View) Rect() image.Rectangle {
	return image.Rectangle{Max: v.size}.Add(v.offset)
}

// Offset sets the position of v's top-left corner in the window.
func (v *View) Offset(p image.Point) *View {
	v.offset = p
	return v
}

// Size sets v's size. Changing the size discards the working buffer.
func (v *View) Size(sz image.Point) *View {
	if sz.X < 0 {
		sz.X = 0
	}
	if sz.Y < 0 {
		sz.Y = 0
	}
	if sz != v.size {
		v.size = sz
		v.buf = nil
		v.dirty = true
	}
	return v
}

// Alpha sets the opacity v is composited with.
func (v *View) Alpha(a uint8) *View {
	v.alpha = a
	return v
}

// FrameColor sets the color of the frame and title bar. Transparent
// turns the decoration off.
func (v *View) FrameColor(c Color) *View {
	if c != v.frameColor {
		v.frameColor = c
		v.dirty = true
	}
	return v
}

// Title sets the text of the title bar. It defaults to the view name.
func (v *View) Title(s string) *View {
	if s != v.title {
		v.title = s
		v.dirty = true
	}
	return v
}

// Figure returns v's figure, creating it on first use.
func (v *View) Figure() *Figure {
	if v.figure == nil {
		NewFigure(v)
	}
	return v.figure
}

// Mouse sets the callback for mouse events over v. Any context the
// callback needs should be captured by fn.
func (v *View) Mouse(fn MouseFunc) *View {
	v.mouse = fn
	v.win.wantMouse()
	return v
}

// Hide removes v from the window's composite until the view is looked
// up again with Window.View.
func (v *View) Hide() *View {
	v.hidden = true
	return v
}

// Hidden reports whether v is hidden.
func (v *View) Hidden() bool { return v.hidden }

// working returns the working buffer, allocating it if needed.
func (v *View) working() *image.NRGBA {
	if v.buf == nil {
		v.buf = image.NewNRGBA(image.Rectangle{Max: v.size})
	}
	return v.buf
}

func (v *View) touch() { v.dirty = true }

// Clear fills the view with c, replacing its contents.
func (v *View) Clear(c Color) *View {
	raster.Fill(v.working(), c.nrgba())
	v.touch()
	return v
}

// DrawImage replaces the view's contents with img, scaled to fill
// the view. Invalid buffers are ignored.
func (v *View) DrawImage(img Buffer) *View {
	if !img.Valid() || img.Width == 0 || img.Height == 0 {
		return v
	}
	dst := v.working()
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	v.touch()
	return v
}

// DrawText draws s with its top-left corner at p.
func (v *View) DrawText(s string, p image.Point, c Color) *View {
	drawText(v.working(), s, p, c)
	v.touch()
	return v
}

// DrawTextShadow draws s at p, size pixels high, over a dark drop
// shadow so it stays readable on any background. Text is never taller
// than the view, or than the fixed face if the view is smaller.
func (v *View) DrawTextShadow(s string, p image.Point, c Color, size float64) *View {
	if s == "" {
		return v
	}
	dst := v.working()
	h := textHeight
	if size >= 0.5 {
		limit := max(dst.Rect.Dy(), textHeight)
		h = int(math.Min(math.Floor(size+0.5), float64(limit)))
	}
	mask := scaleMask(textMask(s), h)
	off := h / 13
	if off < 1 {
		off = 1
	}
	shadow := Black.scaleAlpha(c.A).scaleAlpha(192)
	blendMask(dst, mask, p.Add(image.Pt(off, off)), shadow.nrgba())
	blendMask(dst, mask, p, c.nrgba())
	v.touch()
	return v
}

// DrawRect fills r with c.
func (v *View) DrawRect(r image.Rectangle, c Color) *View {
	raster.FillRect(v.working(), r, c.nrgba())
	v.touch()
	return v
}

// DrawLine draws a one pixel line from a to b.
func (v *View) DrawLine(a, b image.Point, c Color) *View {
	raster.Line(v.working(), a.X, a.Y, b.X, b.Y, c.nrgba())
	v.touch()
	return v
}

// Finish commits everything drawn so far, plus the frame and title
// decoration, to the snapshot the window composites. If nothing has
// changed since the last Finish it does nothing.
func (v *View) Finish() {
	if !v.dirty {
		return
	}
	buf := v.working()
	if v.snap == nil || v.snap.Rect != buf.Rect {
		v.snap = image.NewNRGBA(buf.Rect)
	}
	copy(v.snap.Pix, buf.Pix)
	v.decorate(v.snap)
	v.dirty = false
}

// Finished reports whether v has a snapshot to composite.
func (v *View) Finished() bool { return v.snap != nil }

// Snapshot returns the last finished buffer, or nil.
func (v *View) Snapshot() *image.NRGBA { return v.snap }

// decorate draws the frame and title bar.
func (v *View) decorate(img *image.NRGBA) {
	if v.frameColor.A == 0 {
		return
	}
	fc := v.frameColor.nrgba()
	raster.StrokeRect(img, img.Rect, fc)
	if v.title == "" {
		return
	}
	bar := image.Rect(1, 1, img.Rect.Dx()-1, titleHeight)
	raster.FillRect(img, bar, fc)
	tc := v.frameColor.contrast()
	w := textWidth(v.title)
	drawText(img, v.title, image.Pt((img.Rect.Dx()-w)/2, 1), tc)
}

// Flush finishes v and composites and displays its window.
func (v *View) Flush() error {
	v.Finish()
	return v.win.Flush()
}
