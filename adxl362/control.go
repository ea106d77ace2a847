// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import (
	"fmt"
	"strings"
)

// Range is the measurement range, bits 6-7 of FilterCtl.
type Range byte

const (
	Range2G Range = 0 // ±2g, 1mg/LSB
	Range4G Range = 1 // ±4g, 2mg/LSB
	Range8G Range = 2 // ±8g, 4mg/LSB
)

// DataRate is the output data rate, bits 0-2 of FilterCtl. The anti-aliasing
// filter bandwidth is a quarter of the rate, or half of it with HalfBandwidth
// cleared.
type DataRate byte

const (
	Rate12_5Hz DataRate = iota
	Rate25Hz
	Rate50Hz
	Rate100Hz // Power on default
	Rate200Hz
	Rate400Hz
)

const (
	filterRateMask  = 0x07
	filterExtSample = 0x08
	filterHalfBW    = 0x10
	filterRangeMask = 0xC0
	filterRangeLSB  = 6
)

// Filter is the content of FilterCtl.
type Filter struct {
	Range         Range
	HalfBandwidth bool
	ExtSample     bool
	Rate          DataRate
}

// Encode returns the register value.
func (f Filter) Encode() (byte, error) {
	if f.Range > Range8G {
		return 0, fmt.Errorf("%w: range %d", ErrOutOfRange, f.Range)
	}
	if f.Rate > Rate400Hz {
		return 0, fmt.Errorf("%w: data rate %d", ErrOutOfRange, f.Rate)
	}
	v := byte(f.Range)<<filterRangeLSB | byte(f.Rate)
	if f.HalfBandwidth {
		v |= filterHalfBW
	}
	if f.ExtSample {
		v |= filterExtSample
	}
	return v, nil
}

// DecodeFilter decodes a FilterCtl value.
func DecodeFilter(v byte) Filter {
	r := Range(v >> filterRangeLSB)
	if r > Range8G {
		// 0b11 also selects ±8g.
		r = Range8G
	}
	rate := DataRate(v & filterRateMask)
	if rate > Rate400Hz {
		// 0b110 and 0b111 also select 400Hz.
		rate = Rate400Hz
	}
	return Filter{
		Range:         r,
		HalfBandwidth: v&filterHalfBW != 0,
		ExtSample:     v&filterExtSample != 0,
		Rate:          rate,
	}
}

// NoiseMode selects the power versus noise trade-off, bits 4-5 of PowerCtl.
type NoiseMode byte

const (
	NoiseNormal NoiseMode = iota
	NoiseLow
	NoiseUltraLow
)

const (
	powerMeasureMask = 0x03
	powerMeasure     = 0x02
	powerAutoSleep   = 0x04
	powerWakeup      = 0x08
	powerNoiseMask   = 0x30
	powerNoiseLSB    = 4
	powerExtClock    = 0x40
)

// Power is the content of PowerCtl.
type Power struct {
	Measure   bool
	AutoSleep bool
	Wakeup    bool
	Noise     NoiseMode
	ExtClock  bool
}

// Encode returns the register value.
func (p Power) Encode() (byte, error) {
	if p.Noise > NoiseUltraLow {
		return 0, fmt.Errorf("%w: noise mode %d", ErrOutOfRange, p.Noise)
	}
	v := byte(p.Noise) << powerNoiseLSB
	if p.Measure {
		v |= powerMeasure
	}
	if p.AutoSleep {
		v |= powerAutoSleep
	}
	if p.Wakeup {
		v |= powerWakeup
	}
	if p.ExtClock {
		v |= powerExtClock
	}
	return v, nil
}

// DecodePower decodes a PowerCtl value.
func DecodePower(v byte) Power {
	return Power{
		Measure:   v&powerMeasureMask == powerMeasure,
		AutoSleep: v&powerAutoSleep != 0,
		Wakeup:    v&powerWakeup != 0,
		Noise:     NoiseMode((v & powerNoiseMask) >> powerNoiseLSB),
		ExtClock:  v&powerExtClock != 0,
	}
}

// FIFOMode is bits 0-1 of FIFOControl.
type FIFOMode byte

const (
	FIFODisabled FIFOMode = iota
	FIFOOldestSaved
	FIFOStream
	FIFOTriggered
)

const (
	fifoTemp = 0x04
	fifoAH   = 0x08

	// MaxFIFOSamples is the largest FIFO watermark.
	MaxFIFOSamples = 0x1FF
)

// FIFOConfig is the content of FIFOControl and FIFOSamples.
type FIFOConfig struct {
	Mode FIFOMode
	// Temperature stores the temperature alongside the axes.
	Temperature bool
	// Samples is the watermark, 0 to MaxFIFOSamples. Bit 8 lives in
	// FIFOControl.
	Samples uint16
}

// Encode returns the FIFOControl and FIFOSamples values.
func (f FIFOConfig) Encode() (ctl, samples byte, err error) {
	if f.Mode > FIFOTriggered {
		return 0, 0, fmt.Errorf("%w: fifo mode %d", ErrOutOfRange, f.Mode)
	}
	if f.Samples > MaxFIFOSamples {
		return 0, 0, fmt.Errorf("%w: fifo samples %d > %d", ErrOutOfRange, f.Samples, MaxFIFOSamples)
	}
	ctl = byte(f.Mode)
	if f.Temperature {
		ctl |= fifoTemp
	}
	if f.Samples > 0xFF {
		ctl |= fifoAH
	}
	return ctl, byte(f.Samples), nil
}

// IntMap is the content of IntMap1 or IntMap2.
type IntMap byte

const (
	IntDataReady     IntMap = 0x01
	IntFIFOReady     IntMap = 0x02
	IntFIFOWatermark IntMap = 0x04
	IntFIFOOverrun   IntMap = 0x08
	IntAct           IntMap = 0x10
	IntInact         IntMap = 0x20
	IntAwake         IntMap = 0x40
	IntActiveLow     IntMap = 0x80
)

// IntPin selects one of the two interrupt pins.
type IntPin byte

const (
	Int1 IntPin = 1
	Int2 IntPin = 2
)

// StatusFlags is the content of the Status register.
type StatusFlags byte

const (
	StatusDataReady     StatusFlags = 0x01
	StatusFIFOReady     StatusFlags = 0x02
	StatusFIFOWatermark StatusFlags = 0x04
	StatusFIFOOverrun   StatusFlags = 0x08
	StatusAct           StatusFlags = 0x10
	StatusInact         StatusFlags = 0x20
	StatusAwake         StatusFlags = 0x40
	StatusErrUserRegs   StatusFlags = 0x80
)

var statusNames = [...]string{"DataReady", "FIFOReady", "FIFOWatermark", "FIFOOverrun", "Act", "Inact", "Awake", "ErrUserRegs"}

func (s StatusFlags) String() string {
	var out []string
	for i, n := range statusNames {
		if s&(1<<i) != 0 {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return "0"
	}
	return strings.Join(out, "|")
}

// ActInactCtl bits.
const (
	ActEnable   = 0x01
	ActAC       = 0x02
	InactEnable = 0x04
	InactAC     = 0x08

	motionModeMask = 0x30
	motionModeLSB  = 4
)

// MotionMode selects how activity and inactivity detection interact, bits
// 4-5 of ActInactCtl.
type MotionMode byte

const (
	// MotionDefault runs both detectors concurrently.
	MotionDefault MotionMode = 0
	// MotionLinked alternates between activity and inactivity detection;
	// interrupts must be acknowledged by reading Status.
	MotionLinked MotionMode = 1
	// MotionLoop is linked mode acknowledged by the device itself.
	MotionLoop MotionMode = 3
)

// SetFilter replaces FilterCtl.
func (d *Dev) SetFilter(f Filter) error {
	v, err := f.Encode()
	if err != nil {
		return err
	}
	return d.WriteRegister(FilterCtl, v)
}

// Filter reads FilterCtl.
func (d *Dev) Filter() (Filter, error) {
	v, err := d.ReadRegister(FilterCtl)
	return DecodeFilter(v), err
}

// SetRange changes the measurement range, keeping the other filter fields.
func (d *Dev) SetRange(r Range) error {
	if r > Range8G {
		return fmt.Errorf("%w: range %d", ErrOutOfRange, r)
	}
	_, err := d.UpdateRegister(FilterCtl, filterRangeMask, byte(r)<<filterRangeLSB)
	return err
}

// SetDataRate changes the output data rate, keeping the other filter fields.
func (d *Dev) SetDataRate(r DataRate) error {
	if r > Rate400Hz {
		return fmt.Errorf("%w: data rate %d", ErrOutOfRange, r)
	}
	_, err := d.UpdateRegister(FilterCtl, filterRateMask, byte(r))
	return err
}

// SetPower replaces PowerCtl.
func (d *Dev) SetPower(p Power) error {
	v, err := p.Encode()
	if err != nil {
		return err
	}
	return d.WriteRegister(PowerCtl, v)
}

// Power reads PowerCtl.
func (d *Dev) Power() (Power, error) {
	v, err := d.ReadRegister(PowerCtl)
	return DecodePower(v), err
}

// BeginMeasure switches to measurement mode. Required after a reset before
// any data register holds a sample.
func (d *Dev) BeginMeasure() error {
	_, err := d.UpdateRegister(PowerCtl, powerMeasureMask, powerMeasure)
	return err
}

// SetSelfTest turns the self test force on or off.
func (d *Dev) SetSelfTest(on bool) error {
	var v byte
	if on {
		v = 0x01
	}
	return d.WriteRegister(SelfTest, v)
}

// SetFIFO configures the FIFO. The watermark is written first so that the
// mode is never active with a stale watermark.
func (d *Dev) SetFIFO(f FIFOConfig) error {
	ctl, samples, err := f.Encode()
	if err != nil {
		return err
	}
	if err := d.WriteRegister(FIFOSamples, samples); err != nil {
		return err
	}
	return d.WriteRegister(FIFOControl, ctl)
}

// FIFOEntries returns the number of valid 16 bit words in the FIFO.
func (d *Dev) FIFOEntries() (uint16, error) {
	v, err := d.ReadRegister16(FIFOEntriesL)
	return v & 0x3FF, err
}

// ReadFIFO drains n words from the FIFO in one transaction.
func (d *Dev) ReadFIFO(n int, signBits bool) ([]FIFOEntry, error) {
	if n < 0 || n > 512 {
		return nil, fmt.Errorf("%w: fifo read of %d entries", ErrOutOfRange, n)
	}
	b := make([]byte, 2*n)
	if err := d.t.readFIFO(b); err != nil {
		return nil, fmt.Errorf("adxl362: read fifo: %w", err)
	}
	out := make([]FIFOEntry, n)
	for i := range out {
		out[i] = DecodeFIFOEntry(b[2*i], b[2*i+1], signBits)
	}
	return out, nil
}

// MapInterrupt replaces the interrupt map of pin.
func (d *Dev) MapInterrupt(pin IntPin, m IntMap) error {
	switch pin {
	case Int1:
		return d.WriteRegister(IntMap1, byte(m))
	case Int2:
		return d.WriteRegister(IntMap2, byte(m))
	}
	return fmt.Errorf("%w: interrupt pin %d", ErrOutOfRange, pin)
}

// SetMotionMode changes the link/loop field of ActInactCtl and verifies the
// write.
func (d *Dev) SetMotionMode(m MotionMode) error {
	switch m {
	case MotionDefault, MotionLinked, MotionLoop:
	default:
		return fmt.Errorf("%w: motion mode %d", ErrOutOfRange, m)
	}
	_, err := d.UpdateRegister(ActInactCtl, motionModeMask, byte(m)<<motionModeLSB)
	return err
}
