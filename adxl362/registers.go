// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl362

import "fmt"

// Command is the first byte of every SPI transaction.
type Command byte

const (
	CmdWrite    Command = 0x0A // Write register
	CmdRead     Command = 0x0B // Read register
	CmdReadFIFO Command = 0x0C // FIFO burst read
)

func (c Command) String() string {
	switch c {
	case CmdWrite:
		return "write"
	case CmdRead:
		return "read"
	case CmdReadFIFO:
		return "fifo"
	default:
		return fmt.Sprintf("Command(%#02x)", byte(c))
	}
}

// Register is a device register address.
type Register byte

const (
	DevIDAD  Register = 0x00 // Analog Devices ID, 0xAD
	DevIDMST Register = 0x01 // MEMS ID, 0x1D
	PartID   Register = 0x02 // Part ID, 0xF2
	RevID    Register = 0x03 // Silicon revision

	// 8 bit data registers, bits 4-11 of the samples.
	XData Register = 0x08
	YData Register = 0x09
	ZData Register = 0x0A

	Status       Register = 0x0B
	FIFOEntriesL Register = 0x0C
	FIFOEntriesH Register = 0x0D

	// Full resolution data, low byte first.
	XDataL Register = 0x0E
	XDataH Register = 0x0F
	YDataL Register = 0x10
	YDataH Register = 0x11
	ZDataL Register = 0x12
	ZDataH Register = 0x13
	TempL  Register = 0x14
	TempH  Register = 0x15

	SoftReset Register = 0x1F

	// Activity and inactivity detection.
	ThreshActL   Register = 0x20
	ThreshActH   Register = 0x21
	TimeAct      Register = 0x22
	ThreshInactL Register = 0x23
	ThreshInactH Register = 0x24
	TimeInactL   Register = 0x25
	TimeInactH   Register = 0x26
	ActInactCtl  Register = 0x27

	FIFOControl Register = 0x28
	FIFOSamples Register = 0x29
	IntMap1     Register = 0x2A
	IntMap2     Register = 0x2B
	FilterCtl   Register = 0x2C
	PowerCtl    Register = 0x2D
	SelfTest    Register = 0x2E
)

// ResetCode written to SoftReset resets the device. ASCII 'R'.
const ResetCode = 0x52

// Expected identification values.
const (
	ExpectedDevIDAD  = 0xAD
	ExpectedDevIDMST = 0x1D
	ExpectedPartID   = 0xF2
)

type regInfo struct {
	name     string
	width    int
	writable bool
}

// registers lists every register by its canonical address. High bytes of
// paired registers are absent; Pair maps them back to their low byte.
var registers = map[Register]regInfo{
	DevIDAD:      {"DEVID_AD", 1, false},
	DevIDMST:     {"DEVID_MST", 1, false},
	PartID:       {"PARTID", 1, false},
	RevID:        {"REVID", 1, false},
	XData:        {"XDATA", 1, false},
	YData:        {"YDATA", 1, false},
	ZData:        {"ZDATA", 1, false},
	Status:       {"STATUS", 1, false},
	FIFOEntriesL: {"FIFO_ENTRIES", 2, false},
	XDataL:       {"XDATA_L", 2, false},
	YDataL:       {"YDATA_L", 2, false},
	ZDataL:       {"ZDATA_L", 2, false},
	TempL:        {"TEMP_L", 2, false},
	SoftReset:    {"SOFT_RESET", 1, true},
	ThreshActL:   {"THRESH_ACT", 2, true},
	TimeAct:      {"TIME_ACT", 1, true},
	ThreshInactL: {"THRESH_INACT", 2, true},
	TimeInactL:   {"TIME_INACT", 2, true},
	ActInactCtl:  {"ACT_INACT_CTL", 1, true},
	FIFOControl:  {"FIFO_CONTROL", 1, true},
	FIFOSamples:  {"FIFO_SAMPLES", 1, true},
	IntMap1:      {"INTMAP1", 1, true},
	IntMap2:      {"INTMAP2", 1, true},
	FilterCtl:    {"FILTER_CTL", 1, true},
	PowerCtl:     {"POWER_CTL", 1, true},
	SelfTest:     {"SELF_TEST", 1, true},
}

// pairs maps both halves of a 16 bit register to its low byte address.
var pairs = map[Register]Register{
	FIFOEntriesL: FIFOEntriesL, FIFOEntriesH: FIFOEntriesL,
	XDataL: XDataL, XDataH: XDataL,
	YDataL: YDataL, YDataH: YDataL,
	ZDataL: ZDataL, ZDataH: ZDataL,
	TempL: TempL, TempH: TempL,
	ThreshActL: ThreshActL, ThreshActH: ThreshActL,
	ThreshInactL: ThreshInactL, ThreshInactH: ThreshInactL,
	TimeInactL: TimeInactL, TimeInactH: TimeInactL,
}

// Pair returns the address used for 16 bit accesses to r. It returns false
// when r is not part of a register pair.
func Pair(r Register) (Register, bool) {
	p, ok := pairs[r]
	return p, ok
}

// Width returns the access width of r in bytes, or 0 for an unknown address.
// Either half of a paired register reports 2.
func (r Register) Width() int {
	if p, ok := pairs[r]; ok {
		r = p
	}
	return registers[r].width
}

// Writable reports whether the register accepts writes.
func (r Register) Writable() bool {
	if p, ok := pairs[r]; ok {
		r = p
	}
	return registers[r].writable
}

func (r Register) String() string {
	if i, ok := registers[r]; ok {
		return i.name
	}
	if p, ok := pairs[r]; ok {
		return registers[p].name + "+1"
	}
	return fmt.Sprintf("Register(%#02x)", byte(r))
}

// Channel identifies one of the four measurement channels.
type Channel byte

const (
	ChannelX Channel = iota
	ChannelY
	ChannelZ
	ChannelTemp
)

var channelNames = [...]string{"X", "Y", "Z", "T"}

func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", byte(c))
}

// Register returns the low byte address of the full resolution data pair.
func (c Channel) Register() (Register, bool) {
	switch c {
	case ChannelX:
		return XDataL, true
	case ChannelY:
		return YDataL, true
	case ChannelZ:
		return ZDataL, true
	case ChannelTemp:
		return TempL, true
	}
	return 0, false
}

// MSBRegister returns the 8 bit data register. The temperature channel has
// none.
func (c Channel) MSBRegister() (Register, bool) {
	switch c {
	case ChannelX:
		return XData, true
	case ChannelY:
		return YData, true
	case ChannelZ:
		return ZData, true
	}
	return 0, false
}
