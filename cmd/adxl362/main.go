// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// adxl362 reads an ADXL362 accelerometer and prints, draws or publishes
// its samples.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/accel/adxl362"
	"github.com/GermanBionicSystems/accel/meter"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func mainImpl() error {
	spiName := flag.String("spi", "", "SPI port to use")
	csName := flag.String("cs", "", "GPIO used as chip select instead of the port's own")
	hz := adxl362.SpiFrequency
	flag.Var(&hz, "hz", "SPI bus speed")
	interval := flag.Duration("interval", 100*time.Millisecond, "time between samples")
	count := flag.Int("n", 0, "number of samples to read, 0 for no limit")
	signBits := flag.Bool("sx", true, "keep the sign extension bits")
	rng := flag.Int("range", 2, "measurement range in g: 2, 4 or 8")
	rate := flag.Int("rate", int(adxl362.Rate100Hz), "output data rate code 0 (12.5Hz) to 5 (400Hz)")
	act := flag.Int("act", 0, "activity threshold in counts, 0 to leave disabled")
	actTime := flag.Int("act-time", 1, "activity time in samples")
	inact := flag.Int("inact", 0, "inactivity threshold in counts, 0 to leave disabled")
	inactTime := flag.Int("inact-time", 1, "inactivity time in samples")
	ac := flag.Bool("ac", false, "referenced (AC) motion detection")
	trace := flag.Bool("trace", false, "log every bus transaction")
	dump := flag.Bool("dump", false, "print the control registers and exit")
	draw := flag.Bool("meter", false, "draw bars instead of printing lines")
	broker := flag.String("mqtt", "", "MQTT broker to publish frames to, e.g. tcp://localhost:1883")
	topic := flag.String("topic", "adxl362/frame", "MQTT topic")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	p, err := spireg.Open(*spiName)
	if err != nil {
		return err
	}
	defer p.Close()

	opts := adxl362.DefaultOpts
	if *csName != "" {
		pin := gpioreg.ByName(*csName)
		if pin == nil {
			return fmt.Errorf("unknown GPIO %q", *csName)
		}
		opts.CS = pin
	}
	if *trace {
		opts.Trace = logTrace
	}
	adxl362.SpiFrequency = hz
	d, err := adxl362.New(p, &opts)
	if err != nil {
		return err
	}
	id, err := d.ID()
	if err != nil {
		return err
	}
	log.Printf("%s %s", d, id)

	if *dump {
		return dumpControl(d)
	}

	if err := d.Reset(); err != nil {
		return err
	}
	time.Sleep(adxl362.ResetDelay)
	if err := setup(d, *rng, *rate, *act, *actTime, *inact, *inactTime, *ac); err != nil {
		return err
	}
	defer d.Halt()

	var m *meter.Dev
	if *draw {
		m = meter.New(&meter.Opts{FullScale: 1000 / (*rng / 2)})
		defer m.Halt()
	}
	var pub *publisher
	if *broker != "" {
		if pub, err = newPublisher(*broker, *topic); err != nil {
			return err
		}
		defer pub.Close()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for i := 0; *count == 0 || i < *count; i++ {
		f, err := d.ReadXYZT(*signBits)
		if err != nil {
			return err
		}
		if m != nil {
			if err := m.Draw(f); err != nil {
				return err
			}
		} else {
			fmt.Println(f)
		}
		if pub != nil {
			if err := pub.Publish(f); err != nil {
				log.Printf("mqtt: %v", err)
			}
		}
		select {
		case <-sig:
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// setup applies the filter and motion settings then starts measuring.
func setup(d *adxl362.Dev, rng, rate, act, actTime, inact, inactTime int, ac bool) error {
	f := adxl362.Filter{Rate: adxl362.DataRate(rate)}
	switch rng {
	case 2:
		f.Range = adxl362.Range2G
	case 4:
		f.Range = adxl362.Range4G
	case 8:
		f.Range = adxl362.Range8G
	default:
		return fmt.Errorf("invalid range %d", rng)
	}
	if err := d.SetFilter(f); err != nil {
		return err
	}
	if act > adxl362.MaxThreshold || inact > adxl362.MaxThreshold {
		return fmt.Errorf("thresholds are limited to %d counts", adxl362.MaxThreshold)
	}
	c := adxl362.DC
	if ac {
		c = adxl362.AC
	}
	if act > 0 {
		if actTime < 0 || actTime > 0xFF {
			return fmt.Errorf("invalid activity time %d", actTime)
		}
		if err := d.ConfigureActivity(uint16(act), uint8(actTime), c); err != nil {
			return err
		}
	}
	if inact > 0 {
		if inactTime < 0 || inactTime > 0xFFFF {
			return fmt.Errorf("invalid inactivity time %d", inactTime)
		}
		if err := d.ConfigureInactivity(uint16(inact), uint16(inactTime), c); err != nil {
			return err
		}
	}
	return d.BeginMeasure()
}

func dumpControl(d *adxl362.Dev) error {
	regs, err := d.ControlRegisters()
	if err != nil {
		return err
	}
	for i, v := range regs {
		r := adxl362.ThreshActL + adxl362.Register(i)
		fmt.Printf("%#02x %-14s %#02x\n", byte(r), r, v)
	}
	return nil
}

func logTrace(t adxl362.Trace) {
	if t.Err != nil {
		log.Printf("%s %s: %v", t.Cmd, t.Reg, t.Err)
		return
	}
	log.Printf("%s %s w=% x r=% x", t.Cmd, t.Reg, t.W, t.R)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "adxl362: %s.\n", err)
		os.Exit(1)
	}
}
