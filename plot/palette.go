// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"image/color"

	"github.com/aclements/go-gg/palette"
)

// Viridis is a perceptually uniform palette running from dark purple
// through teal to yellow, for use with Series.Palette.
var Viridis palette.Continuous = palette.RGBGradient{Colors: []color.RGBA{
	{68, 1, 84, 255},
	{72, 40, 120, 255},
	{62, 74, 137, 255},
	{49, 104, 142, 255},
	{38, 130, 142, 255},
	{31, 158, 137, 255},
	{53, 183, 121, 255},
	{109, 205, 89, 255},
	{180, 222, 44, 255},
	{253, 231, 37, 255},
}}

// Grays runs from black to white.
var Grays palette.Continuous = palette.RGBGradient{Colors: []color.RGBA{
	{0, 0, 0, 255},
	{255, 255, 255, 255},
}}
