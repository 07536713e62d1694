// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package termdisplay is a plot display backend that draws on a
// truecolor terminal.
//
// The terminal shows one window at a time: the one most recently
// shown that is not hidden. Each character cell holds two pixels, and
// the window is scaled to fit the terminal. Keys and xterm mouse
// reports are read from the terminal in raw mode. Mouse callbacks run
// from inside WaitKey and PollKey, on the caller's goroutine.
package termdisplay

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/aclements/winplot/plot"
)

var (
	_ plot.Backend      = (*Display)(nil)
	_ plot.KeyPoller    = (*Display)(nil)
	_ plot.MouseBackend = (*Display)(nil)
	_ plot.TitleBackend = (*Display)(nil)
)

// escWait is how long a lone escape byte waits for the rest of a
// sequence before it counts as the escape key.
const escWait = 25 * time.Millisecond

// A Display is a terminal display backend.
type Display struct {
	in  io.Reader
	out *bufio.Writer
	fd  int

	oldState *terminal.State

	// reads carries chunks of input from the reader goroutine. It is
	// closed when reading fails. done is closed by Close, after which
	// the reader goroutine stops sending.
	reads   chan []byte
	readErr error
	done    chan struct{}
	dec     decoder

	mu      sync.Mutex
	windows map[string]*window
	stack   []string // shown windows, most recent last
	layout  layout
	closed  bool
}

type window struct {
	img    *image.NRGBA
	title  string
	hidden bool
	mouse  func(plot.MouseEvent)
}

// Open puts the terminal on in and out into raw mode and takes over
// the screen. The caller must Close the display to restore the
// terminal.
func Open(in, out *os.File) (*Display, error) {
	fd := int(in.Fd())
	if os.Getenv("TERM") == "dumb" || !terminal.IsTerminal(fd) || !terminal.IsTerminal(int(out.Fd())) {
		return nil, errors.New("termdisplay: not a terminal")
	}
	old, err := terminal.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("termdisplay: entering raw mode: %w", err)
	}
	d := &Display{
		in:       in,
		out:      bufio.NewWriterSize(out, 64<<10),
		fd:       fd,
		oldState: old,
		reads:    make(chan []byte, 16),
		done:     make(chan struct{}),
		windows:  make(map[string]*window),
	}
	d.out.WriteString(altScreenOn + cursorOff + mouseOn + clearScreen)
	if err := d.out.Flush(); err != nil {
		terminal.Restore(fd, old)
		return nil, fmt.Errorf("termdisplay: %w", err)
	}
	go d.readLoop()
	return d, nil
}

// OpenStdio opens a Display on standard input and output.
func OpenStdio() (*Display, error) {
	return Open(os.Stdin, os.Stdout)
}

func (d *Display) readLoop() {
	for {
		buf := make([]byte, 256)
		n, err := d.in.Read(buf)
		if n > 0 {
			select {
			case d.reads <- buf[:n]:
			case <-d.done:
				return
			}
		}
		if err != nil {
			d.readErr = err
			close(d.reads)
			return
		}
	}
}

// Close restores the terminal. The reader goroutine stays blocked in
// a read of the input until the next byte arrives, and then exits
// without delivering it.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	close(d.done)
	d.out.WriteString(mouseOff + reset + cursorOn + altScreenOff)
	err := d.out.Flush()
	if rerr := terminal.Restore(d.fd, d.oldState); err == nil {
		err = rerr
	}
	return err
}

func (d *Display) win(name string) *window {
	w, ok := d.windows[name]
	if !ok {
		w = &window{title: name}
		d.windows[name] = w
	}
	return w
}

// raise moves name to the top of the stack.
func (d *Display) raise(name string) {
	for i, n := range d.stack {
		if n == name {
			d.stack = append(d.stack[:i], d.stack[i+1:]...)
			break
		}
	}
	d.stack = append(d.stack, name)
}

// top returns the name of the window on screen, or "".
func (d *Display) top() string {
	for i := len(d.stack) - 1; i >= 0; i-- {
		if w := d.windows[d.stack[i]]; w != nil && !w.hidden && w.img != nil {
			return d.stack[i]
		}
	}
	return ""
}

// Show copies buf and draws it.
func (d *Display) Show(name string, buf plot.Buffer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	w := d.win(name)
	b := buf.Bounds()
	if w.img == nil || w.img.Rect != b {
		w.img = image.NewNRGBA(b)
	}
	if buf.Channels == 4 && buf.Stride == w.img.Stride {
		copy(w.img.Pix, buf.Pix)
	} else {
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				w.img.Set(x, y, buf.At(x, y))
			}
		}
	}
	w.hidden = false
	d.raise(name)
	return d.redraw()
}

// Hide takes the window off the screen, revealing the previously
// shown window, if any.
func (d *Display) Hide(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.win(name).hidden = true
	return d.redraw()
}

// DestroyAll forgets every window and clears the screen.
func (d *Display) DestroyAll() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.windows = make(map[string]*window)
	d.stack = nil
	return d.redraw()
}

// SetWindowTitle sets the text of the title row.
func (d *Display) SetWindowTitle(name, title string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.win(name).title = title
	if d.top() == name {
		return d.redraw()
	}
	return nil
}

// SetMouseCallback sets the function that receives mouse events over
// the named window, in window pixel coordinates.
func (d *Display) SetMouseCallback(name string, fn func(plot.MouseEvent)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.win(name).mouse = fn
	return nil
}

// redraw draws the top window. d.mu must be held.
func (d *Display) redraw() error {
	if d.closed {
		return errors.New("termdisplay: display is closed")
	}
	cols, rows, err := terminal.GetSize(d.fd)
	if err != nil {
		return fmt.Errorf("termdisplay: getting terminal size: %w", err)
	}
	name := d.top()
	if name == "" {
		d.layout = layout{}
		d.out.WriteString(reset + clearScreen)
		return d.out.Flush()
	}
	w := d.windows[name]
	d.layout = fit(w.img.Rect.Size(), cols, rows)
	encodeFrame(d.out, d.layout.scale(w.img), w.title, cols)
	if err := d.out.Flush(); err != nil {
		return fmt.Errorf("termdisplay: %w", err)
	}
	return nil
}

// WaitKey waits up to timeout for a key, forever if timeout is 0.
// Mouse reports that arrive meanwhile are delivered to the callback
// of the window on screen.
func (d *Display) WaitKey(timeout time.Duration) (int, error) {
	var deadline <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		deadline = t.C
	}
	for {
		if k, ok := d.decodeKey(false); ok {
			return k, nil
		}
		var wait <-chan time.Time
		if len(d.dec.buf) > 0 {
			// Part of a sequence is buffered.
			wait = time.After(escWait)
		}
		select {
		case p, ok := <-d.reads:
			if !ok {
				return plot.NoKey, d.inputErr()
			}
			d.dec.write(p)
		case <-wait:
			if k, ok := d.decodeKey(true); ok {
				return k, nil
			}
		case <-deadline:
			return plot.NoKey, nil
		}
	}
}

// PollKey returns a key that has already arrived, or plot.NoKey.
func (d *Display) PollKey() (int, error) {
	for {
		select {
		case p, ok := <-d.reads:
			if !ok {
				return plot.NoKey, d.inputErr()
			}
			d.dec.write(p)
			continue
		default:
		}
		break
	}
	if k, ok := d.decodeKey(true); ok {
		return k, nil
	}
	return plot.NoKey, nil
}

func (d *Display) inputErr() error {
	if d.readErr == io.EOF {
		return errors.New("termdisplay: input closed")
	}
	return fmt.Errorf("termdisplay: reading input: %w", d.readErr)
}

// decodeKey consumes buffered input up to and including the first
// key, dispatching any mouse reports before it.
func (d *Display) decodeKey(final bool) (int, bool) {
	for {
		in, ok := d.dec.next(final)
		if !ok {
			return plot.NoKey, false
		}
		if !in.isMouse {
			return in.key, true
		}
		d.dispatch(in.mouse)
	}
}

// dispatch converts a mouse report from cells to pixels and calls the
// callback of the window on screen.
func (d *Display) dispatch(ev plot.MouseEvent) {
	d.mu.Lock()
	name := d.top()
	var fn func(plot.MouseEvent)
	if name != "" {
		fn = d.windows[name].mouse
	}
	p, ok := d.layout.pixel(ev.X, ev.Y)
	d.mu.Unlock()
	if fn == nil || !ok {
		return
	}
	ev.X, ev.Y = p.X, p.Y
	fn(ev)
}
