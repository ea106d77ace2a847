// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import "fmt"

// Decode combines the low and high byte of a 12 bit sample. When signBits is
// false the four sign extension bits (12-15) are cleared.
func Decode(low, high byte, signBits bool) int16 {
	if !signBits {
		high &= 0x0F
	}
	return int16(uint16(low) | uint16(high)<<8)
}

// MSB returns bits 4-11 of a sample, which is what the 8 bit data registers
// hold.
func MSB(sample int16) byte {
	return byte(uint16(sample) >> 4)
}

// Frame is X, Y, Z and temperature captured from a single burst read, so
// all four values belong to the same internal sample.
type Frame struct {
	X           int16 `json:"x"`
	Y           int16 `json:"y"`
	Z           int16 `json:"z"`
	Temperature int16 `json:"t"`
}

// DecodeFrame decodes the 8 bytes read from XDataL through TempH. Each
// channel is decoded on its own.
func DecodeFrame(b []byte, signBits bool) Frame {
	_ = b[7]
	return Frame{
		X:           Decode(b[0], b[1], signBits),
		Y:           Decode(b[2], b[3], signBits),
		Z:           Decode(b[4], b[5], signBits),
		Temperature: Decode(b[6], b[7], signBits),
	}
}

// Channel returns the value for c.
func (f Frame) Channel(c Channel) int16 {
	switch c {
	case ChannelX:
		return f.X
	case ChannelY:
		return f.Y
	case ChannelZ:
		return f.Z
	default:
		return f.Temperature
	}
}

func (f Frame) String() string {
	return fmt.Sprintf("X:%d Y:%d Z:%d T:%d", f.X, f.Y, f.Z, f.Temperature)
}

// FIFOEntry is one 16 bit word read from the FIFO. Bits 14-15 carry the
// channel, bits 12-13 replicate the sign of the 12 bit sample.
type FIFOEntry struct {
	Channel Channel
	Value   int16
}

// DecodeFIFOEntry decodes a FIFO word. With signBits the 12 bit value is
// sign extended to 16 bits, as the data registers are; without, bits 12-15
// are zero.
func DecodeFIFOEntry(low, high byte, signBits bool) FIFOEntry {
	raw := uint16(low) | uint16(high)<<8
	e := FIFOEntry{Channel: Channel(raw >> 14)}
	if signBits {
		e.Value = int16(raw<<4) >> 4
	} else {
		e.Value = int16(raw & 0x0FFF)
	}
	return e
}

func (e FIFOEntry) String() string {
	return fmt.Sprintf("%s:%d", e.Channel, e.Value)
}
