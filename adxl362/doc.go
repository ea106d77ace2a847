// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package adxl362 controls an Analog Devices ADXL362 micropower 3-axis
// accelerometer over SPI.
//
// The device speaks a small command protocol: every transaction starts with
// a command byte (write register, read register or read FIFO) followed by the
// register address and the payload. Multi-byte reads auto-increment the
// address, which is how X, Y, Z and temperature are captured from the same
// internal sample in a single transaction.
//
// Sample registers are 12 bits wide, transported as 16 bit little-endian
// words whose top 4 bits replicate bit 11. Every read accepts a flag to keep
// or clear those sign extension bits.
//
// The driver does not sleep. After Reset the caller must wait ResetDelay
// before talking to the device again. A Dev is not safe for concurrent use.
//
// # Datasheet
//
// https://www.analog.com/media/en/technical-documentation/data-sheets/ADXL362.pdf
package adxl362
