// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

var pbID = conntest.IO{
	W: []byte{0x0B, 0x00, 0x00, 0x00, 0x00, 0x00},
	R: []byte{0x00, 0x00, 0xAD, 0x1D, 0xF2, 0x02},
}

// playback returns a connected Playback port replaying ops.
func playback(t *testing.T, ops []conntest.IO) (*spitest.Playback, spi.Conn) {
	pb := &spitest.Playback{Playback: conntest.Playback{Ops: ops, DontPanic: true}}
	c, err := pb.Connect(SpiFrequency, SpiMode, SpiBits)
	if err != nil {
		t.Fatal(err)
	}
	return pb, c
}

func TestNew(t *testing.T) {
	pb := &spitest.Playback{Playback: conntest.Playback{Ops: []conntest.IO{pbID}, DontPanic: true}}
	d, err := New(pb, &DefaultOpts)
	if err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s == "" {
		t.Fatal("empty String()")
	}
}

func TestNewWrongDevice(t *testing.T) {
	pb := &spitest.Playback{Playback: conntest.Playback{Ops: []conntest.IO{{
		W: pbID.W,
		R: []byte{0x00, 0x00, 0xE5, 0x00, 0x00, 0x00},
	}}, DontPanic: true}}
	if _, err := New(pb, &DefaultOpts); !errors.Is(err, ErrWrongDevice) {
		t.Fatalf("expected ErrWrongDevice, got %v", err)
	}
}

func TestFraming(t *testing.T) {
	for _, test := range []struct {
		name string
		ops  []conntest.IO
		run  func(d *Dev) error
	}{
		{
			name: "read one",
			ops:  []conntest.IO{{W: []byte{0x0B, 0x2D, 0x00}, R: []byte{0x00, 0x00, 0x02}}},
			run: func(d *Dev) error {
				v, err := d.ReadRegister(PowerCtl)
				if err == nil && v != 0x02 {
					t.Errorf("got %#x", v)
				}
				return err
			},
		},
		{
			name: "write one",
			ops:  []conntest.IO{{W: []byte{0x0A, 0x1F, 0x52}}},
			run:  func(d *Dev) error { return d.Reset() },
		},
		{
			name: "read pair",
			ops:  []conntest.IO{{W: []byte{0x0B, 0x20, 0x00, 0x00}, R: []byte{0x00, 0x00, 0xF4, 0x01}}},
			run: func(d *Dev) error {
				v, err := d.ReadRegister16(ThreshActH)
				if err == nil && v != 500 {
					t.Errorf("got %d", v)
				}
				return err
			},
		},
		{
			name: "write pair",
			ops:  []conntest.IO{{W: []byte{0x0A, 0x25, 0x34, 0x12}}},
			run:  func(d *Dev) error { return d.WriteRegister16(TimeInactL, 0x1234) },
		},
		{
			name: "burst",
			ops: []conntest.IO{{
				W: []byte{0x0B, 0x0E, 0, 0, 0, 0, 0, 0, 0, 0},
				R: []byte{0, 0, 0x34, 0x81, 0x10, 0x00, 0xF0, 0xFF, 0x5E, 0x01},
			}},
			run: func(d *Dev) error {
				f, err := d.ReadXYZT(true)
				want := Frame{X: Decode(0x34, 0x81, true), Y: 0x10, Z: -16, Temperature: 0x15E}
				if diff := cmp.Diff(want, f); err == nil && diff != "" {
					t.Errorf("(-want +got):\n%s", diff)
				}
				return err
			},
		},
		{
			name: "fifo",
			ops:  []conntest.IO{{W: []byte{0x0C, 0, 0, 0, 0}, R: []byte{0, 0x10, 0x00, 0xFF, 0x7F}}},
			run: func(d *Dev) error {
				e, err := d.ReadFIFO(2, true)
				want := []FIFOEntry{{ChannelX, 0x10}, {ChannelY, -1}}
				if diff := cmp.Diff(want, e); err == nil && diff != "" {
					t.Errorf("(-want +got):\n%s", diff)
				}
				return err
			},
		},
		{
			name: "measure",
			ops: []conntest.IO{
				{W: []byte{0x0B, 0x2D, 0x00}, R: []byte{0x00, 0x00, 0x30}},
				{W: []byte{0x0A, 0x2D, 0x32}},
			},
			run: func(d *Dev) error { return d.BeginMeasure() },
		},
		{
			name: "control dump",
			ops: []conntest.IO{{
				W: append([]byte{0x0B, 0x20}, make([]byte, 15)...),
				R: append([]byte{0, 0, 0xF4, 0x01, 0x05}, make([]byte, 12)...),
			}},
			run: func(d *Dev) error {
				regs, err := d.ControlRegisters()
				if err == nil && (regs[0] != 0xF4 || regs[1] != 0x01 || regs[2] != 0x05) {
					t.Errorf("got %#v", regs)
				}
				return err
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			pb, c := playback(t, test.ops)
			d, err := NewConn(c, &Opts{})
			if err != nil {
				t.Fatal(err)
			}
			if err := test.run(d); err != nil {
				t.Fatal(err)
			}
			if err := pb.Close(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestChipSelectBracketing(t *testing.T) {
	var events []string
	s := newSim()
	s.events = &events
	cs := &csPin{Pin: gpiotest.Pin{N: "CS"}, events: &events}
	d, err := NewConn(s, &Opts{CS: cs})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.ReadXYZT(false); err != nil {
		t.Fatal(err)
	}
	if err := d.BeginMeasure(); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"cs High",
		"cs Low", "tx", "cs High",
		"cs Low", "tx", "cs High",
		"cs Low", "tx", "cs High",
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if cs.L != gpio.High {
		t.Fatal("chip select left asserted")
	}
}

func TestChipSelectReleasedOnError(t *testing.T) {
	var events []string
	s := newSim()
	s.events = &events
	s.failAt = 1
	s.err = errors.New("bus fault")
	cs := &csPin{Pin: gpiotest.Pin{N: "CS"}, events: &events}
	d, err := NewConn(s, &Opts{CS: cs})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.ReadRegister(PowerCtl); !errors.Is(err, s.err) {
		t.Fatalf("expected bus fault, got %v", err)
	}
	if cs.L != gpio.High {
		t.Fatal("chip select left asserted")
	}
}

func TestTransportErrorLeavesNoPartialState(t *testing.T) {
	s := newSim()
	s.setFrame([8]byte{1, 2, 3, 4, 5, 6, 7, 8})
	d := newSimDev(s)
	s.failAt = len(s.ops) + 1
	s.err = errors.New("bus fault")
	buf := []byte{0xEE, 0xEE, 0xEE, 0xEE, 0xEE, 0xEE, 0xEE, 0xEE}
	if err := d.ReadBurst(XDataL, buf); !errors.Is(err, s.err) {
		t.Fatalf("expected bus fault, got %v", err)
	}
	for i, b := range buf {
		if b != 0xEE {
			t.Fatalf("buf[%d] = %#x after failed read", i, b)
		}
	}
	if f, err := d.ReadXYZT(true); err != nil || f.X != 0x0201 {
		t.Fatalf("%v %v", f, err)
	}
}

func TestRoundTrip(t *testing.T) {
	s := newSim()
	d := newSimDev(s)
	for r, info := range registers {
		if !info.writable || r == SoftReset {
			continue
		}
		t.Run(info.name, func(t *testing.T) {
			if info.width == 1 {
				for v := 0; v < 256; v++ {
					if err := d.WriteRegister(r, byte(v)); err != nil {
						t.Fatal(err)
					}
					got, err := d.ReadRegister(r)
					if err != nil {
						t.Fatal(err)
					}
					if got != byte(v) {
						t.Fatalf("wrote %#x, read %#x", v, got)
					}
				}
				return
			}
			top := 0xFFFF
			if r == ThreshActL || r == ThreshInactL {
				top = MaxThreshold
			}
			for i := 0; i <= top; i++ {
				v := uint16(i)
				if err := d.WriteRegister16(r, v); err != nil {
					t.Fatal(err)
				}
				got, err := d.ReadRegister16(r)
				if err != nil {
					t.Fatal(err)
				}
				if got != v {
					t.Fatalf("wrote %#x, read %#x", v, got)
				}
				s.ops = s.ops[:0]
			}
		})
	}
}

func TestControlWriteIsVerified(t *testing.T) {
	for _, test := range []struct {
		name string
		run  func(d *Dev) error
	}{
		{"write", func(d *Dev) error { return d.WriteRegister(ActInactCtl, 0x03) }},
		{"update", func(d *Dev) error {
			_, err := d.UpdateRegister(ActInactCtl, 0x03, 0x03)
			return err
		}},
	} {
		t.Run(test.name, func(t *testing.T) {
			s := newSim()
			s.stuck = ActAC
			d := newSimDev(s)
			err := test.run(d)
			var v *VerifyError
			if !errors.As(err, &v) || !errors.Is(err, ErrVerify) {
				t.Fatalf("expected *VerifyError, got %v", err)
			}
			if v.Reg != ActInactCtl || v.Want != 0x03 || v.Got != 0x01 {
				t.Fatalf("got %+v", v)
			}
			if w := s.ops[len(s.ops)-1].W; w[0] != byte(CmdRead) || w[1] != byte(ActInactCtl) {
				t.Fatalf("last transaction %#v is not a read back", w)
			}
		})
	}
	// Other registers are written without a read back.
	s := newSim()
	d := newSimDev(s)
	n := len(s.ops)
	if err := d.WriteRegister(TimeAct, 5); err != nil {
		t.Fatal(err)
	}
	if len(s.ops)-n != 1 {
		t.Fatalf("%d transactions", len(s.ops)-n)
	}
}

func TestWidthAndDirection(t *testing.T) {
	s := newSim()
	d := newSimDev(s)
	n := len(s.ops)
	if _, err := d.ReadRegister(ThreshActL); !errors.Is(err, ErrWidth) {
		t.Errorf("8 bit read of pair: %v", err)
	}
	if err := d.WriteRegister(TimeInactH, 1); !errors.Is(err, ErrWidth) {
		t.Errorf("8 bit write of pair: %v", err)
	}
	if _, err := d.ReadRegister16(TimeAct); !errors.Is(err, ErrWidth) {
		t.Errorf("16 bit read of single: %v", err)
	}
	if err := d.WriteRegister(Status, 1); !errors.Is(err, ErrReadOnly) {
		t.Errorf("write to status: %v", err)
	}
	if err := d.WriteRegister16(XDataL, 1); !errors.Is(err, ErrReadOnly) {
		t.Errorf("write to data: %v", err)
	}
	if len(s.ops) != n {
		t.Fatalf("rejected calls reached the bus: %d transactions", len(s.ops)-n)
	}
}

func TestReadChannels(t *testing.T) {
	s := newSim()
	s.setFrame([8]byte{0x34, 0x81, 0x20, 0xF0, 0x00, 0x04, 0x5E, 0x01})
	d := newSimDev(s)
	for _, test := range []struct {
		read     func(bool) (int16, error)
		signBits bool
		want     uint16
	}{
		{d.ReadX, false, 0x0134},
		{d.ReadX, true, 0x8134},
		{d.ReadY, true, 0xF020},
		{d.ReadY, false, 0x0020},
		{d.ReadZ, true, 0x0400},
		{d.ReadTemperature, false, 0x015E},
		{d.ReadTemperature, true, 0x015E},
	} {
		got, err := test.read(test.signBits)
		if err != nil {
			t.Fatal(err)
		}
		if uint16(got) != test.want {
			t.Errorf("got %#x, want %#x", uint16(got), test.want)
		}
	}
}

func TestMSBMatchesBurst(t *testing.T) {
	s := newSim()
	s.setFrame([8]byte{0x34, 0x81, 0x20, 0xF0, 0xA0, 0x07, 0x5E, 0x01})
	// The device mirrors bits 4-11 of each sample in the 8 bit registers.
	for c := ChannelX; c <= ChannelZ; c++ {
		r, _ := c.Register()
		m, _ := c.MSBRegister()
		s.regs[m] = s.regs[r]>>4 | s.regs[r+1]<<4
	}
	d := newSimDev(s)
	f, err := d.ReadXYZT(true)
	if err != nil {
		t.Fatal(err)
	}
	for c := ChannelX; c <= ChannelZ; c++ {
		got, err := d.ReadMSB(c)
		if err != nil {
			t.Fatal(err)
		}
		if want := MSB(f.Channel(c)); got != want {
			t.Errorf("%s: MSB %#x, burst %#x", c, got, want)
		}
	}
	if _, err := d.ReadMSB(ChannelTemp); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("temperature has no MSB register: %v", err)
	}
}

func TestBurstIsCoTemporal(t *testing.T) {
	s := newSim()
	s.setFrame([8]byte{1, 0, 1, 0, 1, 0, 1, 0})
	// A new sample lands after every transaction.
	s.after = func(s *sim) {
		for i := XDataL; i <= TempH; i += 2 {
			s.regs[i]++
		}
	}
	d := newSimDev(s)
	f, err := d.ReadXYZT(false)
	if err != nil {
		t.Fatal(err)
	}
	if f.X != f.Y || f.Y != f.Z || f.Z != f.Temperature {
		t.Fatalf("burst mixed samples: %v", f)
	}
	x, _ := d.ReadX(false)
	y, _ := d.ReadY(false)
	if x == y {
		t.Fatal("separate reads should observe different samples")
	}
}

func TestReadXYZTIndependentChannels(t *testing.T) {
	s := newSim()
	s.setFrame([8]byte{0x34, 0x81, 0x10, 0x00, 0xF0, 0xFF, 0x5E, 0x01})
	d := newSimDev(s)
	before, err := d.ReadXYZT(true)
	if err != nil {
		t.Fatal(err)
	}
	s.regs[YDataL], s.regs[YDataH] = 0xAA, 0xFA
	after, err := d.ReadXYZT(true)
	if err != nil {
		t.Fatal(err)
	}
	want := before
	want.Y = Decode(0xAA, 0xFA, true)
	if diff := cmp.Diff(want, after); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if after.Y == before.Y {
		t.Fatal("Y did not change")
	}
}

func TestID(t *testing.T) {
	d := newSimDev(newSim())
	id, err := d.ID()
	if err != nil {
		t.Fatal(err)
	}
	want := ID{AD: 0xAD, MST: 0x1D, Part: 0xF2, Revision: 2}
	if diff := cmp.Diff(want, id); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestTrace(t *testing.T) {
	s := newSim()
	var got []Trace
	d, err := NewConn(s, &Opts{Trace: func(tr Trace) { got = append(got, tr) }})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.WriteRegister16(ThreshActL, 500); err != nil {
		t.Fatal(err)
	}
	if _, err := d.ReadRegister(ThreshActL + 2); err != nil {
		t.Fatal(err)
	}
	s.failAt = len(s.ops) + 1
	s.err = errors.New("bus fault")
	_, _ = d.Status()
	want := []Trace{
		{Cmd: CmdWrite, Reg: ThreshActL, W: []byte{0xF4, 0x01}},
		{Cmd: CmdRead, Reg: TimeAct, R: []byte{0x00}},
		{Cmd: CmdRead, Reg: Status, Err: s.err},
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	d.EnableTrace(nil)
	if _, err := d.ReadRegister(TimeAct); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatal("trace not disabled")
	}
}

func TestHalt(t *testing.T) {
	s := newSim()
	s.regs[PowerCtl] = 0x32
	d := newSimDev(s)
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if s.regs[PowerCtl] != 0x30 {
		t.Fatalf("POWER_CTL = %#x", s.regs[PowerCtl])
	}
}
