// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import (
	"encoding/binary"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPI connection parameters used by New.
var (
	SpiFrequency = 4 * physic.MegaHertz
	SpiMode      = spi.Mode0
	SpiBits      = 8
)

// ResetDelay is how long to wait after Reset before the next transaction.
const ResetDelay = 10 * time.Millisecond

// DefaultOpts uses the port's chip select and verifies the device ID.
var DefaultOpts = Opts{
	VerifyID: true,
}

// Opts holds the configuration of a Dev.
type Opts struct {
	// CS, when set, is driven low for the duration of every transaction.
	// Leave nil when the SPI port handles chip select itself.
	CS gpio.PinOut
	// Trace is called after each bus transaction.
	Trace TraceF
	// VerifyID makes New check the identification registers.
	VerifyID bool
}

// ID holds the identification registers.
type ID struct {
	AD       byte
	MST      byte
	Part     byte
	Revision byte
}

func (i ID) String() string {
	return fmt.Sprintf("AD:%#02x MST:%#02x Part:%#02x Rev:%d", i.AD, i.MST, i.Part, i.Revision)
}

// Dev is a handle to an ADXL362.
type Dev struct {
	t transport
}

// New connects to the ADXL362 on p.
func New(p spi.Port, o *Opts) (*Dev, error) {
	c, err := p.Connect(SpiFrequency, SpiMode, SpiBits)
	if err != nil {
		return nil, fmt.Errorf("adxl362: %w", err)
	}
	return NewConn(c, o)
}

// NewConn returns a Dev using an already configured connection. The device
// is not reset nor put in measurement mode.
func NewConn(c spi.Conn, o *Opts) (*Dev, error) {
	if o == nil {
		o = &DefaultOpts
	}
	d := &Dev{t: transport{c: c, cs: o.CS, trace: o.Trace}}
	if o.CS != nil {
		if err := o.CS.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("adxl362: %w", err)
		}
	}
	if o.VerifyID {
		id, err := d.ID()
		if err != nil {
			return nil, err
		}
		if id.AD != ExpectedDevIDAD || id.MST != ExpectedDevIDMST || id.Part != ExpectedPartID {
			return nil, fmt.Errorf("%w: %s", ErrWrongDevice, id)
		}
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ADXL362{%s}", d.t.c)
}

// EnableTrace installs f as the trace sink. nil disables tracing.
func (d *Dev) EnableTrace(f TraceF) {
	d.t.trace = f
}

// ReadRegister reads a single byte register.
func (d *Dev) ReadRegister(r Register) (byte, error) {
	if r.Width() != 1 {
		return 0, fmt.Errorf("%w: %s is not 8 bits", ErrWidth, r)
	}
	var b [1]byte
	if err := d.t.read(r, b[:]); err != nil {
		return 0, fmt.Errorf("adxl362: read %s: %w", r, err)
	}
	return b[0], nil
}

// WriteRegister writes a single byte register, replacing its content.
//
// A write to ActInactCtl is read back and a mismatch returns *VerifyError.
func (d *Dev) WriteRegister(r Register, v byte) error {
	if r.Width() != 1 {
		return fmt.Errorf("%w: %s is not 8 bits", ErrWidth, r)
	}
	if !r.Writable() {
		return fmt.Errorf("%w: %s", ErrReadOnly, r)
	}
	if err := d.t.write(r, v); err != nil {
		return fmt.Errorf("adxl362: write %s: %w", r, err)
	}
	if r == ActInactCtl {
		return d.verify(r, v)
	}
	return nil
}

// verify reads r back and compares it with want.
func (d *Dev) verify(r Register, want byte) error {
	got, err := d.ReadRegister(r)
	if err != nil {
		return err
	}
	if got != want {
		return &VerifyError{Reg: r, Want: want, Got: got}
	}
	return nil
}

// ReadRegister16 reads a register pair, low byte first. Either half of the
// pair may be passed.
func (d *Dev) ReadRegister16(r Register) (uint16, error) {
	p, ok := Pair(r)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not 16 bits", ErrWidth, r)
	}
	var b [2]byte
	if err := d.t.read(p, b[:]); err != nil {
		return 0, fmt.Errorf("adxl362: read %s: %w", p, err)
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// WriteRegister16 writes a register pair, low byte first, in one
// transaction.
func (d *Dev) WriteRegister16(r Register, v uint16) error {
	p, ok := Pair(r)
	if !ok {
		return fmt.Errorf("%w: %s is not 16 bits", ErrWidth, r)
	}
	if !p.Writable() {
		return fmt.Errorf("%w: %s", ErrReadOnly, p)
	}
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	if err := d.t.write(p, b[:]...); err != nil {
		return fmt.Errorf("adxl362: write %s: %w", p, err)
	}
	return nil
}

// ReadBurst reads len(buf) consecutive registers starting at r while chip
// select stays asserted.
func (d *Dev) ReadBurst(r Register, buf []byte) error {
	if err := d.t.read(r, buf); err != nil {
		return fmt.Errorf("adxl362: burst read %s: %w", r, err)
	}
	return nil
}

// UpdateRegister replaces the bits of r selected by mask with value and
// returns the byte written. Bits outside mask are preserved. The write is
// checked like WriteRegister does.
func (d *Dev) UpdateRegister(r Register, mask, value byte) (byte, error) {
	cur, err := d.ReadRegister(r)
	if err != nil {
		return 0, err
	}
	next := cur&^mask | value&mask
	return next, d.WriteRegister(r, next)
}

// Reset issues a soft reset. Wait ResetDelay before the next call.
func (d *Dev) Reset() error {
	return d.WriteRegister(SoftReset, ResetCode)
}

// ID reads the identification registers.
func (d *Dev) ID() (ID, error) {
	var b [4]byte
	if err := d.ReadBurst(DevIDAD, b[:]); err != nil {
		return ID{}, err
	}
	return ID{AD: b[0], MST: b[1], Part: b[2], Revision: b[3]}, nil
}

// ReadChannel reads the full resolution value of c with a 16 bit register
// access.
func (d *Dev) ReadChannel(c Channel, signBits bool) (int16, error) {
	r, ok := c.Register()
	if !ok {
		return 0, fmt.Errorf("%w: channel %s", ErrOutOfRange, c)
	}
	v, err := d.ReadRegister16(r)
	if err != nil {
		return 0, err
	}
	return Decode(byte(v), byte(v>>8), signBits), nil
}

// ReadX reads the X axis.
func (d *Dev) ReadX(signBits bool) (int16, error) { return d.ReadChannel(ChannelX, signBits) }

// ReadY reads the Y axis.
func (d *Dev) ReadY(signBits bool) (int16, error) { return d.ReadChannel(ChannelY, signBits) }

// ReadZ reads the Z axis.
func (d *Dev) ReadZ(signBits bool) (int16, error) { return d.ReadChannel(ChannelZ, signBits) }

// ReadTemperature reads the temperature sensor.
func (d *Dev) ReadTemperature(signBits bool) (int16, error) {
	return d.ReadChannel(ChannelTemp, signBits)
}

// ReadMSB reads the 8 bit data register of an axis: bits 4-11 of the
// sample, without sign extension bits. Faster than a full read when the
// resolution is not needed.
func (d *Dev) ReadMSB(c Channel) (byte, error) {
	r, ok := c.MSBRegister()
	if !ok {
		return 0, fmt.Errorf("%w: channel %s has no 8 bit register", ErrOutOfRange, c)
	}
	return d.ReadRegister(r)
}

// ReadXYZT reads all three axes and the temperature in a single burst.
func (d *Dev) ReadXYZT(signBits bool) (Frame, error) {
	var b [8]byte
	if err := d.ReadBurst(XDataL, b[:]); err != nil {
		return Frame{}, err
	}
	return DecodeFrame(b[:], signBits), nil
}

// Status reads the status register.
func (d *Dev) Status() (StatusFlags, error) {
	v, err := d.ReadRegister(Status)
	return StatusFlags(v), err
}

// ControlRegisters burst reads ThreshActL through SelfTest.
func (d *Dev) ControlRegisters() ([15]byte, error) {
	var b [SelfTest - ThreshActL + 1]byte
	err := d.ReadBurst(ThreshActL, b[:])
	return b, err
}

// Halt puts the device in standby. Implements conn.Resource.
func (d *Dev) Halt() error {
	_, err := d.UpdateRegister(PowerCtl, powerMeasureMask, 0)
	return err
}

var _ conn.Resource = &Dev{}
