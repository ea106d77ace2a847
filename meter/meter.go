// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package meter draws accelerometer frames on the terminal (stdout) as
// three horizontal bars using ANSI color codes.
//
// Each bar is centered: positive values grow to the right, negative values
// to the left.
package meter

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/GermanBionicSystems/accel/adxl362"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// Opts represents the options available for this meter.
type Opts struct {
	// Width is the number of cells per bar. Defaults to 32.
	Width int
	// FullScale is the magnitude drawn as a full half bar. Defaults to 1000,
	// 1g at ±2g range.
	FullScale int
	Palette   *ansi256.Palette
	// W defaults to stdout.
	W io.Writer
}

// Axis colors.
var (
	ColorX   = color.NRGBA{0xff, 0x20, 0x20, 0xff}
	ColorY   = color.NRGBA{0x20, 0xff, 0x20, 0xff}
	ColorZ   = color.NRGBA{0x20, 0x60, 0xff, 0xff}
	ColorOff = color.NRGBA{0x30, 0x30, 0x30, 0xff}
)

// Dev renders frames to a terminal.
type Dev struct {
	w       io.Writer
	width   int
	full    int
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a Dev that draws at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.W,
		width:   opts.Width,
		full:    opts.FullScale,
		palette: *p,
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.width <= 0 {
		d.width = 32
	}
	if d.full <= 0 {
		d.full = 1000
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("Meter{%d}", d.width)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and moves to the next line.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Draw overwrites the current line with the X, Y and Z bars of f, followed
// by the raw counts.
//
// Frames read with the sign extension bits cleared are not negative; read
// them with the bits kept to see both directions.
func (d *Dev) Draw(f adxl362.Frame) error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	d.bar(f.X, ColorX)
	d.bar(f.Y, ColorY)
	d.bar(f.Z, ColorZ)
	_, _ = d.buf.WriteString("\033[0m ")
	for _, v := range []int16{f.X, f.Y, f.Z, f.Temperature} {
		_, _ = d.buf.WriteString(strconv.Itoa(int(v)))
		_ = d.buf.WriteByte(' ')
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Cells returns the number of lit cells for v, negative when left of center.
func (d *Dev) Cells(v int16) int {
	half := d.width / 2
	n := int(v) * half / d.full
	if n > half {
		n = half
	}
	if n < -half {
		n = -half
	}
	return n
}

func (d *Dev) bar(v int16, c color.NRGBA) {
	half := d.width / 2
	n := d.Cells(v)
	on := d.palette.Block(c)
	off := d.palette.Block(ColorOff)
	for i := -half; i < d.width-half; i++ {
		lit := (n > 0 && i >= 0 && i < n) || (n < 0 && i < 0 && i >= n)
		if lit {
			_, _ = io.WriteString(&d.buf, on)
		} else {
			_, _ = io.WriteString(&d.buf, off)
		}
	}
	_, _ = d.buf.WriteString("\033[0m ")
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
