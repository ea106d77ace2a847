// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/GermanBionicSystems/accel/adxl362"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// message is the JSON payload published for each frame.
type message struct {
	adxl362.Frame
	Time time.Time `json:"time"`
}

// publisher sends frames to an MQTT broker.
type publisher struct {
	client mqtt.Client
	topic  string
}

func newPublisher(broker, topic string) (*publisher, error) {
	host, _ := os.Hostname()
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(fmt.Sprintf("adxl362-%s-%d", host, os.Getpid()))
	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &publisher{client: c, topic: topic}, nil
}

// Publish sends f with the current time. QoS 0, not retained.
func (p *publisher) Publish(f adxl362.Frame) error {
	payload, err := json.Marshal(message{Frame: f, Time: time.Now()})
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

func (p *publisher) Close() {
	p.client.Disconnect(250)
}
