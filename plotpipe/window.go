// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/aclements/winplot/plot"
)

// A window holds the most recent samples of a command. Samples are
// numbered from 0 in arrival order, so the X axis scrolls as old
// samples fall out.
type window struct {
	vals  []float64 // ring buffer
	start int       // index in vals of the oldest sample
	n     int       // total samples seen
}

func newWindow(size int) window {
	return window{vals: make([]float64, 0, size)}
}

func (w *window) add(v float64) {
	if len(w.vals) < cap(w.vals) {
		w.vals = append(w.vals, v)
	} else {
		w.vals[w.start] = v
		w.start = (w.start + 1) % len(w.vals)
	}
	w.n++
}

// points returns the samples in the window, oldest first.
func (w *window) points() []plot.Point {
	pts := make([]plot.Point, len(w.vals))
	x0 := w.n - len(w.vals)
	for i := range pts {
		v := w.vals[(w.start+i)%len(w.vals)]
		pts[i] = plot.Point{X: float64(x0 + i), Y: v}
	}
	return pts
}

// scanNumbers calls fn for each whitespace-separated word of r that
// parses as a number. It stops at the first error from fn.
func scanNumbers(r io.Reader, fn func(float64) error) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		for _, f := range strings.Fields(s.Text()) {
			v, err := strconv.ParseFloat(strings.TrimRight(f, ",;"), 64)
			if err != nil {
				continue
			}
			if err := fn(v); err != nil {
				return err
			}
		}
	}
	return s.Err()
}
