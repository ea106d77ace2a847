// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package accel is a container for accelerometer drivers and the tools built
// on top of them.
//
// The drivers live in their own packages, for example adxl362.
package accel
