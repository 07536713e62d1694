// Copyright 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"image"
	"image/color"
)

// A Buffer is a backend-agnostic block of 8-bit pixels. Pixel (x, y)
// starts at Pix[y*Stride + x*Channels].
//
// Channels is 1 (gray), 3 (RGB) or 4 (RGBA with straight alpha).
// Buffer implements image.Image, so it can be handed directly to the
// image and x/image/draw packages.
type Buffer struct {
	Pix           []uint8
	Width, Height int
	Stride        int
	Channels      int
}

// NewBuffer allocates a zeroed w×h buffer with the given number of
// channels.
func NewBuffer(w, h, channels int) (Buffer, error) {
	if err := checkChannels(channels); err != nil {
		return Buffer{}, err
	}
	if w < 0 || h < 0 {
		return Buffer{}, fmt.Errorf("negative buffer size %dx%d", w, h)
	}
	return Buffer{
		Pix:      make([]uint8, w*h*channels),
		Width:    w,
		Height:   h,
		Stride:   w * channels,
		Channels: channels,
	}, nil
}

// BufferOf copies any image into a new 4-channel Buffer.
func BufferOf(img image.Image) Buffer {
	b := img.Bounds()
	buf, _ := NewBuffer(b.Dx(), b.Dy(), 4)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := y*buf.Stride + x*4
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return buf
}

// bufferFromNRGBA shares img's pixels in a Buffer.
func bufferFromNRGBA(img *image.NRGBA) Buffer {
	return Buffer{
		Pix:      img.Pix,
		Width:    img.Rect.Dx(),
		Height:   img.Rect.Dy(),
		Stride:   img.Stride,
		Channels: 4,
	}
}

func checkChannels(n int) error {
	switch n {
	case 1, 3, 4:
		return nil
	}
	return fmt.Errorf("unsupported channel count %d", n)
}

// Valid reports whether b's geometry is consistent with its pixels.
func (b Buffer) Valid() bool {
	if checkChannels(b.Channels) != nil || b.Width < 0 || b.Height < 0 || b.Stride < b.Width*b.Channels {
		return false
	}
	if b.Height == 0 || b.Width == 0 {
		return true
	}
	return len(b.Pix) >= (b.Height-1)*b.Stride+b.Width*b.Channels
}

// ColorModel implements image.Image.
func (b Buffer) ColorModel() color.Model {
	if b.Channels == 1 {
		return color.GrayModel
	}
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (b Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image.
func (b Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return color.NRGBA{}
	}
	p := b.Pix[y*b.Stride+x*b.Channels:]
	switch b.Channels {
	case 1:
		return color.Gray{p[0]}
	case 3:
		return color.NRGBA{p[0], p[1], p[2], 255}
	}
	return color.NRGBA{p[0], p[1], p[2], p[3]}
}
