// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"image"
	"time"
)

// A Backend displays composited windows and delivers input. It is
// the only part of the system that talks to a real display.
//
// The core requires only Backend. Everything else a display may be
// able to do is an optional interface discovered with a type
// assertion (KeyPoller, MouseBackend, GeometryBackend, TitleBackend,
// TrackbarBackend, PropertyBackend, ROISelector).
type Backend interface {
	// Show displays buf in the window called name, creating the
	// window if necessary. buf is only valid for the duration of
	// the call.
	Show(name string, buf Buffer) error

	// Hide removes the named window from the screen.
	Hide(name string) error

	// DestroyAll removes every window.
	DestroyAll() error

	// WaitKey blocks until a key is pressed or timeout elapses and
	// returns the key code, or NoKey on timeout. A timeout of 0
	// waits forever. Input callbacks are delivered from inside
	// WaitKey.
	WaitKey(timeout time.Duration) (int, error)
}

// NoKey is returned by WaitKey and PollKey when no key was pressed.
const NoKey = -1

// KeyPoller is implemented by backends that can check for a key
// without blocking.
type KeyPoller interface {
	PollKey() (int, error)
}

// MouseBackend is implemented by backends that deliver mouse input.
type MouseBackend interface {
	// SetMouseCallback arranges for fn to be called with every
	// mouse event over the named window. Coordinates are relative
	// to the window's top-left pixel. A nil fn unregisters.
	SetMouseCallback(name string, fn func(MouseEvent)) error
}

// GeometryBackend is implemented by backends that manage window
// placement.
type GeometryBackend interface {
	WindowRect(name string) (image.Rectangle, error)
	MoveWindow(name string, x, y int) error
	ResizeWindow(name string, w, h int) error
}

// TitleBackend is implemented by backends with window titles.
type TitleBackend interface {
	SetWindowTitle(name, title string) error
}

// TrackbarBackend is implemented by backends that provide trackbar
// widgets. Trackbars are plain pass-through configuration widgets;
// the plot core never uses them.
type TrackbarBackend interface {
	CreateTrackbar(name, window string, value *int, count int, onChange func(pos int)) error
	TrackbarPos(name, window string) (int, error)
	SetTrackbarPos(name, window string, pos int) error
	SetTrackbarMin(name, window string, min int) error
	SetTrackbarMax(name, window string, max int) error
}

// PropertyBackend is implemented by backends with numeric window
// properties. Property identifiers are highgui's WND_PROP_* values.
type PropertyBackend interface {
	WindowProperty(name string, prop int) (float64, error)
	SetWindowProperty(name string, prop int, value float64) error
}

// ROISelector is implemented by backends that let the user drag out
// rectangles over a displayed window. SelectROIs blocks until the
// user confirms and returns the rectangles in window coordinates. If
// multiple is false it returns at most one.
type ROISelector interface {
	SelectROIs(name string, crosshair, fromCenter, multiple bool) ([]image.Rectangle, error)
}

// ErrUnsupported reports that the backend lacks a capability.
var ErrUnsupported = errors.New("operation not supported by display backend")

// MouseEventType identifies the kind of mouse event. The numeric
// values match the event codes of OpenCV's highgui.
type MouseEventType int

const (
	EventMouseMove MouseEventType = iota
	EventLButtonDown
	EventRButtonDown
	EventMButtonDown
	EventLButtonUp
	EventRButtonUp
	EventMButtonUp
	EventLButtonDblClk
	EventRButtonDblClk
	EventMButtonDblClk
	EventMouseWheel
	EventMouseHWheel
)

var eventNames = [...]string{
	"mousemove", "lbuttondown", "rbuttondown", "mbuttondown",
	"lbuttonup", "rbuttonup", "mbuttonup",
	"lbuttondblclk", "rbuttondblclk", "mbuttondblclk",
	"mousewheel", "mousehwheel",
}

func (e MouseEventType) String() string {
	if e >= 0 && int(e) < len(eventNames) {
		return eventNames[e]
	}
	return "unknown"
}

// MouseFlags holds the buttons and modifiers down during a mouse
// event. The low bits match highgui's EVENT_FLAG_* values. For wheel
// events the upper 16 bits hold the signed wheel delta.
type MouseFlags int

const (
	FlagLButton  MouseFlags = 1
	FlagRButton  MouseFlags = 2
	FlagMButton  MouseFlags = 4
	FlagCtrlKey  MouseFlags = 8
	FlagShiftKey MouseFlags = 16
	FlagAltKey   MouseFlags = 32
)

var flagNames = []struct {
	f    MouseFlags
	name string
}{
	{FlagLButton, "lbutton"},
	{FlagRButton, "rbutton"},
	{FlagMButton, "mbutton"},
	{FlagCtrlKey, "ctrlkey"},
	{FlagShiftKey, "shiftkey"},
	{FlagAltKey, "altkey"},
}

// WheelDelta returns the wheel delta encoded in f.
func (f MouseFlags) WheelDelta() int {
	return int(int32(f) >> 16)
}

// WithWheelDelta returns f with delta stored in its upper bits.
func (f MouseFlags) WithWheelDelta(delta int) MouseFlags {
	return f&0xffff | MouseFlags(int32(delta)<<16)
}

func (f MouseFlags) String() string {
	s := ""
	for _, fn := range flagNames {
		if f&fn.f != 0 {
			if s != "" {
				s += " "
			}
			s += fn.name
		}
	}
	return s
}

// A MouseEvent is one pointer event.
type MouseEvent struct {
	Event MouseEventType
	X, Y  int
	Flags MouseFlags
}

// Pos returns the event position.
func (e MouseEvent) Pos() image.Point {
	return image.Pt(e.X, e.Y)
}

// nullBackend displays nothing. The default registry uses it until a
// real backend is installed.
type nullBackend struct{}

func (nullBackend) Show(string, Buffer) error { return nil }
func (nullBackend) Hide(string) error         { return nil }
func (nullBackend) DestroyAll() error         { return nil }

func (nullBackend) WaitKey(timeout time.Duration) (int, error) {
	if timeout == 0 {
		return NoKey, ErrUnsupported
	}
	time.Sleep(timeout)
	return NoKey, nil
}
