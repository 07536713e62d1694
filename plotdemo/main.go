// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Plotdemo draws a tour of the plot package on a truecolor terminal.
//
// Usage:
//
//	plotdemo [-image file] [-seed n] [scenario...]
//
// Each scenario draws into its own window. The scenarios are basic,
// highgui, transparency, figures, dynamic and signals; by default all
// of them run in that order. Between scenarios plotdemo waits for a
// key. Press q or escape to quit early.
//
// In the transparency scenario, moving or clicking the mouse over
// either view prints the decoded event in that view.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/aclements/winplot/plot"
	"github.com/aclements/winplot/termdisplay"
)

var scenarios = []struct {
	name string
	run  func() error
}{
	{"basic", basic},
	{"highgui", highguiDemo},
	{"transparency", transparency},
	{"figures", figures},
	{"dynamic", dynamic},
	{"signals", signals},
}

var (
	flagImage = flag.String("image", "", "draw image `file` in the figures scenario")
	flagSeed  = flag.Int64("seed", 1, "random `seed` for generated data")

	rnd *rand.Rand
)

func main() {
	log.SetPrefix("plotdemo: ")
	log.SetFlags(0)

	flag.Usage = func() {
		var names []string
		for _, s := range scenarios {
			names = append(names, s.name)
		}
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [scenario...]\n\nScenarios: %s\n\n", os.Args[0], strings.Join(names, ", "))
		flag.PrintDefaults()
	}
	flag.Parse()
	rnd = rand.New(rand.NewSource(*flagSeed))

	run := flag.Args()
	if len(run) == 0 {
		for _, s := range scenarios {
			run = append(run, s.name)
		}
	}
	for _, name := range run {
		if !known(name) {
			fmt.Fprintf(os.Stderr, "unknown scenario %q\n", name)
			flag.Usage()
			os.Exit(2)
		}
	}

	d, err := termdisplay.OpenStdio()
	if err != nil {
		log.Fatal(err)
	}
	plot.SetBackend(d)

	err = runAll(run)
	plot.Shutdown()
	if cerr := d.Close(); err == nil {
		err = cerr
	}
	if err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}

func known(name string) bool {
	for _, s := range scenarios {
		if s.name == name {
			return true
		}
	}
	return false
}

func runAll(names []string) error {
	for _, name := range names {
		for _, s := range scenarios {
			if s.name != name {
				continue
			}
			if err := s.run(); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if err := waitKey(); err != nil {
				return err
			}
		}
	}
	return nil
}
