// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"
)

// DefaultWindow is the name of the window Registry.Current returns
// before Use is called.
const DefaultWindow = "main"

// A Registry owns a set of named Windows and the backend that
// displays them.
//
// Window lookup is safe for concurrent use. The windows themselves
// are not: each window should be driven by a single goroutine.
type Registry struct {
	backend Backend
	logger  *log.Logger

	mu      sync.Mutex
	windows map[string]*Window
	current string
}

// An Option configures a Registry.
type Option func(*Registry)

// WithLogger sets where the registry reports backend errors that
// cannot be returned to a caller, such as those raised while
// handling mouse events. The default logs to standard error.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry returns an empty registry displaying through b. A nil
// b displays nothing.
func NewRegistry(b Backend, opts ...Option) *Registry {
	if b == nil {
		b = nullBackend{}
	}
	r := &Registry{
		backend: b,
		logger:  log.New(os.Stderr, "plot: ", 0),
		windows: make(map[string]*Window),
		current: DefaultWindow,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) logf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

// Backend returns the registry's display backend.
func (r *Registry) Backend() Backend { return r.backend }

// Window returns the window called name, creating it if necessary.
// Every call with the same name returns the same *Window.
func (r *Registry) Window(name string) *Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(name)
}

func (r *Registry) lookup(name string) *Window {
	w, ok := r.windows[name]
	if !ok {
		w = newWindow(r, name)
		r.windows[name] = w
	}
	return w
}

// Use makes the named window current and returns it.
func (r *Registry) Use(name string) *Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = name
	return r.lookup(name)
}

// Current returns the current window, creating it if necessary.
func (r *Registry) Current() *Window {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lookup(r.current)
}

// Names returns the names of all windows, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.windows))
	for name := range r.windows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WaitKey waits up to timeout for a key press (forever if timeout is
// 0) and returns its code, or NoKey.
func (r *Registry) WaitKey(timeout time.Duration) (int, error) {
	return r.backend.WaitKey(timeout)
}

// PollKey checks for a key press without blocking. It returns
// ErrUnsupported if the backend cannot poll.
func (r *Registry) PollKey() (int, error) {
	kp, ok := r.backend.(KeyPoller)
	if !ok {
		return NoKey, ErrUnsupported
	}
	return kp.PollKey()
}

// Close destroys every window on the backend and forgets them.
func (r *Registry) Close() error {
	r.mu.Lock()
	r.windows = make(map[string]*Window)
	r.current = DefaultWindow
	r.mu.Unlock()
	if err := r.backend.DestroyAll(); err != nil {
		return fmt.Errorf("destroying windows: %w", err)
	}
	return nil
}

var (
	defaultMu      sync.Mutex
	defaultReg     *Registry
	defaultBackend Backend = nullBackend{}
)

// Default returns the process-wide registry, creating it on first
// use with the backend installed by SetBackend.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultReg == nil {
		defaultReg = NewRegistry(defaultBackend)
	}
	return defaultReg
}

// SetBackend sets the backend of the process-wide registry. Windows
// that already exist are kept and display through b from their next
// Flush.
func SetBackend(b Backend) {
	if b == nil {
		b = nullBackend{}
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultBackend = b
	if defaultReg != nil {
		defaultReg.mu.Lock()
		defaultReg.backend = b
		defaultReg.mu.Unlock()
	}
}

// Shutdown closes the process-wide registry. A later Default call
// starts a fresh one.
func Shutdown() error {
	defaultMu.Lock()
	r := defaultReg
	defaultReg = nil
	defaultMu.Unlock()
	if r == nil {
		return nil
	}
	return r.Close()
}

// Current returns the current window of the process-wide registry.
func Current() *Window { return Default().Current() }

// Use makes the named window of the process-wide registry current
// and returns it.
func Use(name string) *Window { return Default().Use(name) }
