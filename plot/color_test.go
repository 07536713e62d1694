// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"image/color"
	"math"
	"testing"
)

func TestBlendLimits(t *testing.T) {
	for _, c := range []Color{Red, Sky, Gray, Black, White, {12, 34, 56, 255}} {
		if got := Blend(c, c, 255); got != c {
			t.Errorf("Blend(%v, %v, 255) = %v; want %v", c, c, got, c)
		}
		b := Color{200, 100, 50, 255}
		if got := Blend(b, c, 255); got != c.Alpha(255) {
			t.Errorf("Blend(%v, %v, 255) = %v; want foreground", b, c, got)
		}
		if got := Blend(b, c, 0); got != b {
			t.Errorf("Blend(%v, %v, 0) = %v; want background", b, c, got)
		}
	}
}

func TestBlendRounding(t *testing.T) {
	b, f := Color{0, 100, 255, 255}, Color{255, 0, 128, 255}
	got := Blend(b, f, 200)
	want := func(b, f uint8) uint8 {
		return uint8(math.Floor(float64(b)*(1-200.0/255) + float64(f)*200.0/255 + 0.5))
	}
	if got.R != want(0, 255) || got.G != want(100, 0) || got.B != want(255, 128) {
		t.Errorf("Blend = %v; want %d,%d,%d", got, want(0, 255), want(100, 0), want(255, 128))
	}
}

func TestIndex(t *testing.T) {
	seen := make(map[Color]int)
	var hues []float64
	for i := 0; i < 16; i++ {
		c := Index(i)
		if c2 := Index(i); c2 != c {
			t.Fatalf("Index(%d) not deterministic: %v then %v", i, c, c2)
		}
		if c.A != 255 {
			t.Errorf("Index(%d) = %v; want opaque", i, c)
		}
		if j, ok := seen[c]; ok {
			t.Errorf("Index(%d) = Index(%d) = %v", i, j, c)
		}
		seen[c] = i
		hues = append(hues, c.Hue())
	}
	for i := range hues {
		for j := i + 1; j < len(hues); j++ {
			d := math.Abs(hues[i] - hues[j])
			d = math.Min(d, 360-d)
			if d < 5 {
				t.Errorf("Index(%d) and Index(%d) hues %.1f and %.1f are too close", i, j, hues[i], hues[j])
			}
		}
	}
}

func TestHueRoundTrip(t *testing.T) {
	for h := 0.0; h < 360; h += 15 {
		got := FromHue(h).Hue()
		d := math.Abs(got - h)
		d = math.Min(d, 360-d)
		if d > 1 {
			t.Errorf("FromHue(%v).Hue() = %v", h, got)
		}
	}
	if FromHue(0) != Red || FromHue(120) != Green || FromHue(240) != Blue {
		t.Errorf("primary hues: got %v %v %v", FromHue(0), FromHue(120), FromHue(240))
	}
	if FromHue(-120) != FromHue(240) || FromHue(480) != FromHue(120) {
		t.Errorf("hues are not taken modulo 360")
	}
}

func TestGamma(t *testing.T) {
	c := Color{0, 64, 255, 99}
	if got := c.Gamma(1); got != c {
		t.Errorf("Gamma(1) = %v; want %v", got, c)
	}
	got := c.Gamma(0.5)
	if got.R != 0 || got.B != 255 || got.A != 99 {
		t.Errorf("Gamma(0.5) = %v; want endpoints and alpha fixed", got)
	}
	if want := uint8(math.Floor(255*math.Sqrt(64.0/255) + 0.5)); got.G != want {
		t.Errorf("Gamma(0.5) green = %d; want %d", got.G, want)
	}
}

func TestAlphaIsCopy(t *testing.T) {
	c := Blue
	d := c.Alpha(10)
	if c != Blue || d.A != 10 || d.Alpha(255) != Blue {
		t.Errorf("Alpha modified its receiver or other channels: %v %v", c, d)
	}
}

func TestColorModel(t *testing.T) {
	c := Color{200, 100, 0, 128}
	if got := ColorOf(color.NRGBAModel.Convert(c)); got != c {
		t.Errorf("round trip through NRGBA = %v; want %v", got, c)
	}
}
