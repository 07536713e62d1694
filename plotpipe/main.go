// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Plotpipe plots the numbers printed by commands as they run.
//
// Usage:
//
//	plotpipe [flags] 'cmd args' ...
//
// Each argument is a shell-quoted command. Plotpipe runs every command
// concurrently and turns each number the command prints into the next
// sample of a series named after that command. Words that are not
// numbers are ignored. Only the most recent -n samples of each series
// are plotted.
//
// The plot is drawn on the terminal and redrawn -fps times a second.
// When every command has exited, plotpipe waits for a key. Press q or
// escape to quit early.
//
// With -o, plotpipe instead draws nothing until the commands exit and
// then writes the final plot to a PNG file, so it can run without a
// terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
	"golang.org/x/sync/errgroup"

	"github.com/aclements/winplot/plot"
	"github.com/aclements/winplot/termdisplay"
)

var (
	flagN      = flag.Int("n", 200, "plot the last `samples` samples of each series")
	flagType   = flag.String("type", "line", "render series as `type`")
	flagFPS    = flag.Int("fps", 10, "redraw `rate` per second")
	flagOut    = flag.String("o", "", "write the final plot to PNG `file` instead of the terminal")
	flagWidth  = flag.Int("w", 640, "plot `width` in pixels")
	flagHeight = flag.Int("h", 400, "plot `height` in pixels")
)

func main() {
	log.SetPrefix("plotpipe: ")
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] 'cmd args' ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 || *flagN < 1 || *flagFPS < 1 {
		flag.Usage()
		os.Exit(2)
	}
	typ, err := plot.ParseRenderType(*flagType)
	if err != nil {
		log.Fatal(err)
	}

	var cmds []*command
	for _, arg := range flag.Args() {
		argv, err := shellquote.Split(arg)
		if err != nil {
			log.Fatalf("parsing %q: %v", arg, err)
		}
		if len(argv) == 0 {
			log.Fatalf("empty command %q", arg)
		}
		cmds = append(cmds, &command{name: arg, argv: argv})
	}

	var d *termdisplay.Display
	if *flagOut == "" {
		d, err = termdisplay.OpenStdio()
		if err != nil {
			log.Fatal(err)
		}
		plot.SetBackend(d)
	}

	p := newPipe(plot.Current(), cmds, typ, *flagN)
	err = p.run(d != nil)
	if err == nil && *flagOut != "" {
		err = p.writePNG(*flagOut)
	}
	plot.Shutdown()
	if d != nil {
		if cerr := d.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}

var errQuit = errors.New("quit")

// A command is one pipeline input.
type command struct {
	name string
	argv []string

	series *plot.Series
	window window
}

// A value is one number read from a command.
type value struct {
	cmd *command
	v   float64
}

type pipe struct {
	win  *plot.Window
	view *plot.View
	fig  *plot.Figure
	cmds []*command
}

func newPipe(win *plot.Window, cmds []*command, typ plot.RenderType, n int) *pipe {
	view := win.ViewSize("plotpipe", plotSize())
	fig := view.Figure()
	for _, c := range cmds {
		c.series = fig.Series(c.name).Type(typ)
		c.window = newWindow(n)
	}
	return &pipe{win: win, view: view, fig: fig, cmds: cmds}
}

// run starts the commands and plots their output until they all exit.
// If interactive is set, it redraws at the frame rate and then waits
// for a key.
func (p *pipe) run(interactive bool) error {
	g, ctx := errgroup.WithContext(context.Background())
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	values := make(chan value, 1024)

	for _, c := range p.cmds {
		c := c
		g.Go(func() error {
			return c.run(ctx, values)
		})
	}
	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(values)
	}()

	tick := time.NewTicker(time.Second / time.Duration(*flagFPS))
	defer tick.Stop()
	dirty := false
	in := values
	for in != nil {
		select {
		case v, ok := <-in:
			if !ok {
				in = nil
				break
			}
			v.cmd.window.add(v.v)
			dirty = true
		case <-tick.C:
			if !interactive {
				break
			}
			if dirty {
				if err := p.draw(); err != nil {
					return err
				}
				dirty = false
			}
			if err := pollQuit(); err != nil {
				return err
			}
		}
	}
	if err := <-done; err != nil {
		return err
	}
	if err := p.draw(); err != nil {
		return err
	}
	if !interactive {
		return nil
	}
	if err := p.win.Title("plotpipe: done").Flush(); err != nil {
		return err
	}
	_, err := plot.Default().WaitKey(0)
	return err
}

func pollQuit() error {
	k, err := plot.Default().PollKey()
	if err != nil {
		return err
	}
	if k == 'q' || k == 27 || k == 3 {
		return errQuit
	}
	return nil
}

// draw copies every command's window into its series and shows the
// figure.
func (p *pipe) draw() error {
	for _, c := range p.cmds {
		c.series.Set(c.window.points())
	}
	return p.fig.Show(true)
}

func (p *pipe) writePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, p.win.Canvas()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// run runs c and sends every number it prints to values. It returns an
// error if the command fails.
func (c *command) run(ctx context.Context, values chan<- value) error {
	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	serr := scanNumbers(out, func(v float64) error {
		select {
		case values <- value{c, v}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	werr := cmd.Wait()
	if serr != nil {
		return fmt.Errorf("%s: %w", c.name, serr)
	}
	if werr != nil {
		return fmt.Errorf("%s: %w", c.name, werr)
	}
	return nil
}

func plotSize() image.Point {
	return image.Pt(*flagWidth, *flagHeight)
}
