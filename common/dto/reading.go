/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package dto

import "math"

// ReadingValue carries one sensor sample. Exactly one of Scalar or Series is
// meaningful: scalar sensors (temperature, gas, vibration, current) populate
// Scalar, frame sensors (thermal pixels, audio blocks) populate Series.
type ReadingValue struct {
	Scalar *float64  `json:"scalar,omitempty"`
	Series []float64 `json:"series,omitempty"`
}

// ScalarValue returns a ReadingValue holding a single sample.
func ScalarValue(v float64) ReadingValue {
	return ReadingValue{Scalar: &v}
}

// SeriesValue returns a ReadingValue holding a frame of samples.
func SeriesValue(v []float64) ReadingValue {
	return ReadingValue{Series: v}
}

// IsMissing reports whether the reading carries no usable sample.
func (rv ReadingValue) IsMissing() bool {
	if rv.Scalar != nil {
		return math.IsNaN(*rv.Scalar)
	}
	return len(rv.Series) == 0
}

// SensorSnapshot is one monitoring-cycle read of every wired sensor of one
// equipment instance, keyed by capability name. A capability whose read failed
// is simply absent from the map.
type SensorSnapshot struct {
	EquipmentId string                  `json:"equipment_id"`
	Timestamp   int64                   `json:"timestamp"`
	Readings    map[string]ReadingValue `json:"readings"`
	Motion      *bool                   `json:"motion,omitempty"`
}
