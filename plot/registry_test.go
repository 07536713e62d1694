// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot_test

import (
	"bytes"
	"errors"
	"image"
	"log"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aclements/winplot/plot"
	"github.com/aclements/winplot/plot/plottest"
)

func TestRegistryWindowIdentity(t *testing.T) {
	b := new(plottest.Backend)
	reg := plot.NewRegistry(b)
	w := reg.Window("w")
	if reg.Window("w") != w {
		t.Fatalf("Window(w) returned different windows")
	}
	if reg.Window("x") == w {
		t.Fatalf("Window(x) returned window w")
	}
	if got, want := reg.Names(), []string{"w", "x"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %q; want %q", got, want)
	}

	// A separate registry has its own windows.
	if plot.NewRegistry(b).Window("w") == w {
		t.Errorf("registries share windows")
	}
}

func TestRegistryHideAndReshow(t *testing.T) {
	b := new(plottest.Backend)
	reg := plot.NewRegistry(b)
	w := reg.Window("w")
	if err := w.ViewSize("v", image.Pt(100, 100)).Flush(); err != nil {
		t.Fatal(err)
	}
	if !b.Visible("w") {
		t.Fatalf("window not visible after Flush")
	}
	if err := w.Hide(); err != nil {
		t.Fatalf("Hide: %v", err)
	}
	if b.Visible("w") || !w.Hidden() {
		t.Fatalf("window visible after Hide")
	}

	// A hidden window is not redisplayed by Flush.
	shows := b.Shows
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if b.Shows != shows {
		t.Errorf("Flush displayed a hidden window")
	}

	v := reg.Window("w").ViewSize("v", image.Pt(100, 100))
	if v == nil || reg.Window("w") != w {
		t.Fatalf("lookup after Hide returned a different window")
	}
	if !b.Visible("w") || w.Hidden() {
		t.Errorf("window not visible again after View lookup")
	}
}

func TestRegistryCurrent(t *testing.T) {
	reg := plot.NewRegistry(nil)
	if got := reg.Current().Name(); got != plot.DefaultWindow {
		t.Errorf("initial Current() = %q; want %q", got, plot.DefaultWindow)
	}
	w := reg.Use("other")
	if reg.Current() != w {
		t.Errorf("Current() after Use is not the used window")
	}
	if err := reg.Close(); err != nil {
		t.Fatal(err)
	}
	if len(reg.Names()) != 0 || reg.Current().Name() != plot.DefaultWindow {
		t.Errorf("Close did not reset the registry")
	}
}

func TestRegistryKeys(t *testing.T) {
	b := new(plottest.Backend)
	reg := plot.NewRegistry(b)
	b.PressKey('q')
	if k, err := reg.PollKey(); err != nil || k != 'q' {
		t.Errorf("PollKey() = %d, %v; want 'q'", k, err)
	}
	if k, err := reg.WaitKey(time.Millisecond); err != nil || k != plot.NoKey {
		t.Errorf("WaitKey() = %d, %v; want NoKey", k, err)
	}

	if _, err := plot.NewRegistry(nil).PollKey(); !errors.Is(err, plot.ErrUnsupported) {
		t.Errorf("PollKey without poller: err = %v; want ErrUnsupported", err)
	}
}

// showOnly implements only the required backend methods.
type showOnly struct{ shows int }

func (s *showOnly) Show(string, plot.Buffer) error { s.shows++; return nil }
func (s *showOnly) Hide(string) error { return nil }
func (s *showOnly) DestroyAll() error { return nil }
func (s *showOnly) WaitKey(time.Duration) (int, error) { return plot.NoKey, nil }

func TestRegistryMinimalBackend(t *testing.T) {
	var logBuf bytes.Buffer
	b := new(showOnly)
	reg := plot.NewRegistry(b, plot.WithLogger(log.New(&logBuf, "", 0)))
	w := reg.Window("w").Title("t").Offset(image.Pt(3, 3))
	w.View("v").Mouse(func(*plot.View, plot.MouseEvent) {})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush on minimal backend: %v", err)
	}
	if b.shows != 1 {
		t.Errorf("Show called %d times; want 1", b.shows)
	}
	if !strings.Contains(logBuf.String(), "no mouse input") {
		t.Errorf("missing mouse support was not logged; log: %q", logBuf.String())
	}
}

func TestDefaultRegistry(t *testing.T) {
	b := new(plottest.Backend)
	plot.SetBackend(b)
	defer plot.SetBackend(nil)

	w := plot.Use("dflt")
	if plot.Current() != w || plot.Default().Window("dflt") != w {
		t.Fatalf("default registry does not track the current window")
	}
	if err := w.View("v").Flush(); err != nil {
		t.Fatal(err)
	}
	if b.Last("dflt") == nil {
		t.Errorf("default registry did not display through SetBackend's backend")
	}
	if err := plot.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if len(b.Windows()) != 0 {
		t.Errorf("Shutdown left windows %q", b.Windows())
	}
	if plot.Default().Window("dflt") == w {
		t.Errorf("Default after Shutdown returned the old window")
	}
	plot.Shutdown()
}

func TestMouseFlags(t *testing.T) {
	f := (plot.FlagLButton | plot.FlagCtrlKey).WithWheelDelta(-120)
	if f.WheelDelta() != -120 {
		t.Errorf("WheelDelta() = %d; want -120", f.WheelDelta())
	}
	if f&plot.FlagLButton == 0 || f&plot.FlagCtrlKey == 0 {
		t.Errorf("WithWheelDelta lost button flags: %v", f)
	}
	if got := plot.EventLButtonDown.String(); got != "lbuttondown" {
		t.Errorf("EventLButtonDown.String() = %q", got)
	}
}
