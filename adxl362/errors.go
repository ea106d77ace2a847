// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned, before any bus traffic, when a value does
	// not fit the register field it targets.
	ErrOutOfRange = errors.New("adxl362: value out of range")
	// ErrWidth is returned when a register is accessed with the wrong width.
	ErrWidth = errors.New("adxl362: wrong register width")
	// ErrReadOnly is returned on writes to a read-only register.
	ErrReadOnly = errors.New("adxl362: register is read-only")
	// ErrWrongDevice is returned by New when the identification registers
	// do not match an ADXL362.
	ErrWrongDevice = errors.New("adxl362: wrong device")
	// ErrVerify matches any *VerifyError.
	ErrVerify = errors.New("adxl362: read back mismatch")
)

// VerifyError reports a register that did not hold the written value when
// read back.
//
// The configuration calls that return it are idempotent and can be retried.
type VerifyError struct {
	Reg  Register
	Want byte
	Got  byte
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("adxl362: %s read back %#02x, wrote %#02x", e.Reg, e.Got, e.Want)
}

// Is makes errors.Is(err, ErrVerify) true.
func (e *VerifyError) Is(target error) bool {
	return target == ErrVerify
}
