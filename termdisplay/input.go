// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package termdisplay

import (
	"bytes"
	"strconv"
	"unicode/utf8"

	"github.com/aclements/winplot/plot"
)

// Key codes for keys that arrive as escape sequences. They match the
// X11 keysyms highgui reports from WaitKeyEx.
const (
	KeyLeft     = 0xff51
	KeyUp       = 0xff52
	KeyRight    = 0xff53
	KeyDown     = 0xff54
	KeyHome     = 0xff50
	KeyEnd      = 0xff57
	KeyPageUp   = 0xff55
	KeyPageDown = 0xff56

	keyEscape = 27
)

// An input is one decoded terminal input: a key or, if isMouse is set,
// a mouse report in 0-based cell coordinates.
type input struct {
	key     int
	isMouse bool
	mouse   plot.MouseEvent
}

// A decoder splits raw terminal input into keys and mouse reports.
type decoder struct {
	buf []byte
}

func (d *decoder) write(p []byte) {
	d.buf = append(d.buf, p...)
}

// next decodes the next input. If the buffered bytes could be the
// start of a longer sequence, next returns ok == false unless final is
// set, in which case it gives up waiting and decodes them as keys.
func (d *decoder) next(final bool) (in input, ok bool) {
	for len(d.buf) > 0 {
		if d.buf[0] != keyEscape {
			if !utf8.FullRune(d.buf) && !final {
				return input{}, false
			}
			r, n := utf8.DecodeRune(d.buf)
			d.buf = d.buf[n:]
			return input{key: int(r)}, true
		}
		if len(d.buf) == 1 {
			if !final {
				return input{}, false
			}
			d.buf = d.buf[1:]
			return input{key: keyEscape}, true
		}
		if d.buf[1] != '[' && d.buf[1] != 'O' {
			// Alt-modified key or a stray escape.
			d.buf = d.buf[1:]
			return input{key: keyEscape}, true
		}
		n := csiEnd(d.buf)
		if n < 0 {
			if !final {
				return input{}, false
			}
			d.buf = d.buf[1:]
			return input{key: keyEscape}, true
		}
		seq := d.buf[:n]
		d.buf = d.buf[n:]
		if in, ok := decodeCSI(seq); ok {
			return in, true
		}
		// Unknown sequence; drop it.
	}
	return input{}, false
}

// csiEnd returns the length of the escape sequence at the start of b,
// or -1 if it is incomplete.
func csiEnd(b []byte) int {
	for i := 2; i < len(b); i++ {
		if c := b[i]; c >= 0x40 && c <= 0x7e {
			return i + 1
		}
	}
	return -1
}

func decodeCSI(seq []byte) (input, bool) {
	final := seq[len(seq)-1]
	body := seq[2 : len(seq)-1]
	if len(body) > 0 && body[0] == '<' && (final == 'M' || final == 'm') {
		ev, ok := decodeSGRMouse(body[1:], final == 'm')
		return input{isMouse: true, mouse: ev}, ok
	}
	switch final {
	case 'A':
		return input{key: KeyUp}, true
	case 'B':
		return input{key: KeyDown}, true
	case 'C':
		return input{key: KeyRight}, true
	case 'D':
		return input{key: KeyLeft}, true
	case 'H':
		return input{key: KeyHome}, true
	case 'F':
		return input{key: KeyEnd}, true
	case '~':
		switch string(body) {
		case "1", "7":
			return input{key: KeyHome}, true
		case "4", "8":
			return input{key: KeyEnd}, true
		case "5":
			return input{key: KeyPageUp}, true
		case "6":
			return input{key: KeyPageDown}, true
		}
	}
	return input{}, false
}

// SGR mouse button bits.
const (
	sgrShift  = 4
	sgrAlt    = 8
	sgrCtrl   = 16
	sgrMotion = 32
	sgrWheel  = 64
)

// decodeSGRMouse decodes the "b;x;y" body of an xterm SGR mouse
// report. The result is in 0-based cell coordinates.
func decodeSGRMouse(body []byte, release bool) (plot.MouseEvent, bool) {
	parts := bytes.Split(body, []byte(";"))
	if len(parts) != 3 {
		return plot.MouseEvent{}, false
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(string(p))
		if err != nil {
			return plot.MouseEvent{}, false
		}
		v[i] = n
	}
	b := v[0]
	ev := plot.MouseEvent{X: v[1] - 1, Y: v[2] - 1}
	if b&sgrShift != 0 {
		ev.Flags |= plot.FlagShiftKey
	}
	if b&sgrAlt != 0 {
		ev.Flags |= plot.FlagAltKey
	}
	if b&sgrCtrl != 0 {
		ev.Flags |= plot.FlagCtrlKey
	}

	if b&sgrWheel != 0 {
		delta := 120
		if b&1 != 0 {
			delta = -delta
		}
		ev.Event = plot.EventMouseWheel
		if b&2 != 0 {
			ev.Event = plot.EventMouseHWheel
		}
		ev.Flags = ev.Flags.WithWheelDelta(delta)
		return ev, true
	}

	button := b & 3
	var flag plot.MouseFlags
	var down, up plot.MouseEventType
	switch button {
	case 0:
		flag, down, up = plot.FlagLButton, plot.EventLButtonDown, plot.EventLButtonUp
	case 1:
		flag, down, up = plot.FlagMButton, plot.EventMButtonDown, plot.EventMButtonUp
	case 2:
		flag, down, up = plot.FlagRButton, plot.EventRButtonDown, plot.EventRButtonUp
	}
	switch {
	case b&sgrMotion != 0:
		ev.Event = plot.EventMouseMove
		ev.Flags |= flag
	case release:
		ev.Event = up
	default:
		ev.Event = down
		ev.Flags |= flag
	}
	if button == 3 && b&sgrMotion == 0 {
		// A press or release with no button is meaningless.
		return plot.MouseEvent{}, false
	}
	return ev, true
}
