// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import "fmt"

// Coupling selects how a motion threshold is compared.
type Coupling byte

const (
	// DC compares samples against the threshold directly (absolute).
	DC Coupling = iota
	// AC compares against a reference captured when detection starts
	// (referenced).
	AC
)

func (c Coupling) String() string {
	switch c {
	case DC:
		return "DC"
	case AC:
		return "AC"
	}
	return fmt.Sprintf("Coupling(%d)", byte(c))
}

// MaxThreshold is the largest activity or inactivity threshold, 11 bits.
const MaxThreshold = 0x7FF

// Activity is the activity detection setup.
type Activity struct {
	Threshold uint16
	Time      uint8
	Coupling  Coupling
	Enabled   bool
}

// Inactivity is the inactivity detection setup.
type Inactivity struct {
	Threshold uint16
	Time      uint16
	Coupling  Coupling
	Enabled   bool
}

// ConfigureActivity writes the activity threshold and time, then enables
// activity detection with coupling c. Inactivity bits are untouched.
//
// The enable bit is only set once threshold and time are on the device. The
// control register is read back; a mismatch returns a *VerifyError.
func (d *Dev) ConfigureActivity(threshold uint16, time uint8, c Coupling) error {
	if threshold > MaxThreshold {
		return fmt.Errorf("%w: activity threshold %d > %d", ErrOutOfRange, threshold, MaxThreshold)
	}
	bits, err := couplingBits(c, ActEnable, ActAC)
	if err != nil {
		return err
	}
	if err := d.WriteRegister16(ThreshActL, threshold); err != nil {
		return err
	}
	if err := d.WriteRegister(TimeAct, time); err != nil {
		return err
	}
	_, err = d.UpdateRegister(ActInactCtl, ActEnable|ActAC, bits)
	return err
}

// ConfigureInactivity is the inactivity counterpart of ConfigureActivity.
// The time qualifier is 16 bits wide.
func (d *Dev) ConfigureInactivity(threshold uint16, time uint16, c Coupling) error {
	if threshold > MaxThreshold {
		return fmt.Errorf("%w: inactivity threshold %d > %d", ErrOutOfRange, threshold, MaxThreshold)
	}
	bits, err := couplingBits(c, InactEnable, InactAC)
	if err != nil {
		return err
	}
	if err := d.WriteRegister16(ThreshInactL, threshold); err != nil {
		return err
	}
	if err := d.WriteRegister16(TimeInactL, time); err != nil {
		return err
	}
	_, err = d.UpdateRegister(ActInactCtl, InactEnable|InactAC, bits)
	return err
}

// Activity reads back the activity setup.
func (d *Dev) Activity() (Activity, error) {
	var b [3]byte
	if err := d.ReadBurst(ThreshActL, b[:]); err != nil {
		return Activity{}, err
	}
	ctl, err := d.ReadRegister(ActInactCtl)
	if err != nil {
		return Activity{}, err
	}
	a := Activity{
		Threshold: (uint16(b[0]) | uint16(b[1])<<8) & MaxThreshold,
		Time:      b[2],
		Enabled:   ctl&ActEnable != 0,
	}
	if ctl&ActAC != 0 {
		a.Coupling = AC
	}
	return a, nil
}

// Inactivity reads back the inactivity setup.
func (d *Dev) Inactivity() (Inactivity, error) {
	var b [4]byte
	if err := d.ReadBurst(ThreshInactL, b[:]); err != nil {
		return Inactivity{}, err
	}
	ctl, err := d.ReadRegister(ActInactCtl)
	if err != nil {
		return Inactivity{}, err
	}
	i := Inactivity{
		Threshold: (uint16(b[0]) | uint16(b[1])<<8) & MaxThreshold,
		Time:      uint16(b[2]) | uint16(b[3])<<8,
		Enabled:   ctl&InactEnable != 0,
	}
	if ctl&InactAC != 0 {
		i.Coupling = AC
	}
	return i, nil
}

func couplingBits(c Coupling, enable, ac byte) (byte, error) {
	switch c {
	case DC:
		return enable, nil
	case AC:
		return enable | ac, nil
	}
	return 0, fmt.Errorf("%w: coupling %d", ErrOutOfRange, c)
}
