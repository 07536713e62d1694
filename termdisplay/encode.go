// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package termdisplay

import (
	"bufio"
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/draw"
)

// VT100 control sequences.
const (
	home         = "\x1b[H"
	clearScreen  = "\x1b[2J"
	clearEOL     = "\x1b[K"
	clearEOS     = "\x1b[J"
	reset        = "\x1b[0m"
	reverse      = "\x1b[7m"
	altScreenOn  = "\x1b[?1049h"
	altScreenOff = "\x1b[?1049l"
	cursorOff    = "\x1b[?25l"
	cursorOn     = "\x1b[?25h"

	// Report button and motion events in SGR encoding.
	mouseOn  = "\x1b[?1000h\x1b[?1003h\x1b[?1006h"
	mouseOff = "\x1b[?1006l\x1b[?1003l\x1b[?1000l"

	upperHalf = "▀"
)

// A layout maps between image pixels and terminal cells. The image is
// drawn from the second row down; the first row holds the title.
type layout struct {
	src  image.Point // image size in pixels
	dst  image.Point // drawn size in half-cell pixels
	cols int
}

// fit returns the layout that draws an image of size src as large as
// possible in a cols×rows terminal without distorting it.
func fit(src image.Point, cols, rows int) layout {
	l := layout{src: src, cols: cols}
	maxW, maxH := cols, 2*(rows-1)
	if src.X <= 0 || src.Y <= 0 || maxW <= 0 || maxH <= 0 {
		return l
	}
	// Use whichever dimension is tighter.
	if src.X*maxH <= src.Y*maxW {
		l.dst = image.Pt(max(1, src.X*maxH/src.Y), maxH)
	} else {
		l.dst = image.Pt(maxW, max(1, src.Y*maxW/src.X))
	}
	return l
}

// pixel maps a 0-based terminal cell to the image pixel at its center.
// ok is false if the cell is outside the image.
func (l layout) pixel(col, row int) (p image.Point, ok bool) {
	row-- // title row
	if col < 0 || row < 0 || col >= l.dst.X || 2*row >= l.dst.Y {
		return image.Point{}, false
	}
	x := (2*col + 1) * l.src.X / (2 * l.dst.X)
	y := (2*row + 1) * l.src.Y / l.dst.Y
	return image.Pt(x, y), true
}

// scale resamples img to the layout's drawn size.
func (l layout) scale(img image.Image) *image.NRGBA {
	dst := image.NewNRGBA(image.Rectangle{Max: l.dst})
	draw.ApproxBiLinear.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
	return dst
}

// encodeFrame writes img, which is already scaled, below a title row.
// Each character cell shows two pixels: the top one as the foreground
// of an upper half block and the bottom one as the background.
func encodeFrame(w *bufio.Writer, img *image.NRGBA, title string, cols int) {
	w.WriteString(home)
	w.WriteString(reverse)
	if len(title) > cols && cols >= 0 {
		title = title[:cols]
	}
	w.WriteString(title)
	w.WriteString(reset)
	w.WriteString(clearEOL)

	var fg, bg color.NRGBA
	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		w.WriteString("\r\n")
		first := true
		for x := b.Min.X; x < b.Max.X; x++ {
			top := opaque(img.NRGBAAt(x, y))
			bot := color.NRGBA{A: 255}
			if y+1 < b.Max.Y {
				bot = opaque(img.NRGBAAt(x, y+1))
			}
			if first || top != fg {
				writeColor(w, "38", top)
				fg = top
			}
			if first || bot != bg {
				writeColor(w, "48", bot)
				bg = bot
			}
			first = false
			w.WriteString(upperHalf)
		}
		w.WriteString(reset)
		w.WriteString(clearEOL)
	}
	w.WriteString(clearEOS)
}

// opaque flattens c onto black.
func opaque(c color.NRGBA) color.NRGBA {
	if c.A == 255 {
		return c
	}
	a := uint32(c.A)
	return color.NRGBA{
		uint8((uint32(c.R)*a + 127) / 255),
		uint8((uint32(c.G)*a + 127) / 255),
		uint8((uint32(c.B)*a + 127) / 255),
		255,
	}
}

// writeColor writes a truecolor SGR sequence. layer is "38" for the
// foreground and "48" for the background.
func writeColor(w *bufio.Writer, layer string, c color.NRGBA) {
	var buf [24]byte
	b := append(buf[:0], "\x1b["...)
	b = append(b, layer...)
	b = append(b, ";2;"...)
	b = strconv.AppendUint(b, uint64(c.R), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(c.G), 10)
	b = append(b, ';')
	b = strconv.AppendUint(b, uint64(c.B), 10)
	b = append(b, 'm')
	w.Write(b)
}
