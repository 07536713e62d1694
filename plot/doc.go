// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot draws live 2D charts into composited windows.
//
// A Registry holds named Windows. A Window holds named Views, each a
// rectangle of pixels at some offset with its own opacity. A View may
// own a Figure, which holds named Series and renders them with axes,
// a grid, and a legend:
//
//	reg := plot.NewRegistry(backend)
//	v := reg.Window("demo").ViewSize("curves", image.Pt(300, 300))
//	fig := v.Figure()
//	fig.Series("line").AddValue(1, 3, 2, 5, 4)
//	fig.Show(true)
//
// Everything runs on the caller's goroutine. Figure.Show renders and
// finishes its view; Window.Flush composites the finished views back
// to front and hands the result to the Backend, which owns the real
// display. Registry.WaitKey blocks for input and is where backends
// deliver mouse callbacks.
package plot
