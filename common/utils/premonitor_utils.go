/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package utils

import (
	"math"

	"github.com/spf13/cast"
)

// ToFloat64 coerces the scalar payloads a sensor driver may hand back
// (ints of any width, floats, numeric strings) into a float64 sample.
func ToFloat64(value interface{}) (float64, error) {
	return cast.ToFloat64E(value)
}

func Contains(s []string, e string) bool {
	for _, a := range s {
		if a == e {
			return true
		}
	}
	return false
}

// RMS returns the root mean square of a sample block, NaN when empty.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, s := range samples {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Mean returns the arithmetic mean of a sample block, NaN when empty.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

// Gas sensor load-resistance calibration defaults (MQ series breakout).
const (
	gasADCMax        = 1023.0
	gasVoltageRef    = 5.0
	gasLoadResistor  = 10.0 // kOhm
	gasCleanAirRatio = 9.83
)

// ADCToPPM converts a raw 10-bit ADC count from an MQ-series gas sensor into an
// approximate ppm concentration using the sensor's log-log response curve. r0 is
// the baseline resistance measured in clean air; pass 0 to use the datasheet
// clean-air ratio against the load resistor.
func ADCToPPM(raw int, r0 float64) float64 {
	if raw <= 0 {
		return 0
	}
	if raw > int(gasADCMax) {
		raw = int(gasADCMax)
	}
	vOut := float64(raw) * gasVoltageRef / gasADCMax
	if vOut >= gasVoltageRef {
		return 0
	}
	rs := gasLoadResistor * (gasVoltageRef - vOut) / vOut
	if r0 <= 0 {
		r0 = gasLoadResistor / gasCleanAirRatio
	}
	ratio := rs / r0
	if ratio <= 0 {
		return 0
	}
	// Datasheet curve approximation: log(ppm) = (log(ratio) - b) / m
	const m, b = -0.47, 1.41
	return math.Pow(10, (math.Log10(ratio)-b)/m)
}
