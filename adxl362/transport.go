// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// Trace describes one completed bus transaction.
type Trace struct {
	Cmd Command
	// Reg is the start address. Unused for CmdReadFIFO.
	Reg Register
	// W holds the payload written after the header, R the bytes read back.
	W   []byte
	R   []byte
	Err error
}

// TraceF receives a Trace after each transaction. The slices are copies.
type TraceF func(Trace)

// transport frames commands on the SPI connection. When cs is set the chip
// select line is driven by hand around each transaction, otherwise the port's
// own chip select is used.
type transport struct {
	c     spi.Conn
	cs    gpio.PinOut
	trace TraceF
}

// tx runs a single chip select bracketed exchange. The line is released even
// when the transfer fails.
func (t *transport) tx(w, r []byte) error {
	if t.cs == nil {
		return t.c.Tx(w, r)
	}
	if err := t.cs.Out(gpio.Low); err != nil {
		return err
	}
	err := t.c.Tx(w, r)
	if err2 := t.cs.Out(gpio.High); err == nil {
		err = err2
	}
	return err
}

// read fills buf with consecutive registers starting at reg. buf is left
// untouched when the transaction fails.
func (t *transport) read(reg Register, buf []byte) error {
	w := make([]byte, 2+len(buf))
	w[0] = byte(CmdRead)
	w[1] = byte(reg)
	r := make([]byte, len(w))
	err := t.tx(w, r)
	if err == nil {
		copy(buf, r[2:])
	}
	t.emit(CmdRead, reg, nil, r[2:], err)
	return err
}

// write stores data into consecutive registers starting at reg.
func (t *transport) write(reg Register, data ...byte) error {
	w := make([]byte, 0, 2+len(data))
	w = append(w, byte(CmdWrite), byte(reg))
	w = append(w, data...)
	err := t.tx(w, nil)
	t.emit(CmdWrite, reg, data, nil, err)
	return err
}

// readFIFO drains len(buf) bytes from the FIFO. The FIFO command takes no
// address.
func (t *transport) readFIFO(buf []byte) error {
	w := make([]byte, 1+len(buf))
	w[0] = byte(CmdReadFIFO)
	r := make([]byte, len(w))
	err := t.tx(w, r)
	if err == nil {
		copy(buf, r[1:])
	}
	t.emit(CmdReadFIFO, 0, nil, r[1:], err)
	return err
}

func (t *transport) emit(cmd Command, reg Register, w, r []byte, err error) {
	if t.trace == nil {
		return
	}
	tr := Trace{Cmd: cmd, Reg: reg, Err: err}
	if len(w) != 0 {
		tr.W = append([]byte(nil), w...)
	}
	if len(r) != 0 && err == nil {
		tr.R = append([]byte(nil), r...)
	}
	t.trace(tr)
}
