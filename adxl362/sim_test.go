// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import (
	"errors"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi"
)

// sim is a register file behind an spi.Conn. Every transaction is appended
// to ops and, when events is set, logged as "tx".
type sim struct {
	regs   [0x40]byte
	fifo   []byte
	ops    []conntest.IO
	events *[]string

	// failAt makes the n-th transaction (1 based) return err.
	failAt int
	err    error
	// after runs once a transaction completed, e.g. to simulate a new
	// sample landing in the data registers.
	after func(s *sim)
	// stuck lists bits that read back as zero in ActInactCtl.
	stuck byte
}

func newSim() *sim {
	s := &sim{}
	s.regs[DevIDAD] = ExpectedDevIDAD
	s.regs[DevIDMST] = ExpectedDevIDMST
	s.regs[PartID] = ExpectedPartID
	s.regs[RevID] = 2
	return s
}

func (s *sim) String() string      { return "sim" }
func (s *sim) Duplex() conn.Duplex { return conn.Full }

func (s *sim) TxPackets(p []spi.Packet) error {
	return errors.New("sim: TxPackets not supported")
}

func (s *sim) Tx(w, r []byte) error {
	s.ops = append(s.ops, conntest.IO{W: append([]byte(nil), w...)})
	if s.events != nil {
		*s.events = append(*s.events, "tx")
	}
	if s.failAt == len(s.ops) {
		return s.err
	}
	switch Command(w[0]) {
	case CmdWrite:
		for i, b := range w[2:] {
			s.regs[int(w[1])+i] = b
		}
		s.regs[ActInactCtl] &^= s.stuck
	case CmdRead:
		for i := 2; i < len(w); i++ {
			r[i] = s.regs[int(w[1])+i-2]
		}
	case CmdReadFIFO:
		for i := 1; i < len(w) && len(s.fifo) != 0; i++ {
			r[i] = s.fifo[0]
			s.fifo = s.fifo[1:]
		}
	default:
		return errors.New("sim: unknown command")
	}
	if s.after != nil {
		s.after(s)
	}
	return nil
}

// setFrame stores raw bytes in XDataL through TempH.
func (s *sim) setFrame(b [8]byte) {
	copy(s.regs[XDataL:], b[:])
}

// writes returns the addresses written to, in order.
func (s *sim) writes() []Register {
	var out []Register
	for _, op := range s.ops {
		if Command(op.W[0]) == CmdWrite {
			out = append(out, Register(op.W[1]))
		}
	}
	return out
}

// csPin logs chip select transitions next to the sim's transactions.
type csPin struct {
	gpiotest.Pin
	events *[]string
}

func (p *csPin) Out(l gpio.Level) error {
	*p.events = append(*p.events, "cs "+l.String())
	return p.Pin.Out(l)
}

func newSimDev(s *sim) *Dev {
	d, err := NewConn(s, &Opts{})
	if err != nil {
		panic(err)
	}
	return d
}
