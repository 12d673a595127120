/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package dto

// DefaultThresholdProfileType is the profile applied to equipment types
// without a profile of their own.
const DefaultThresholdProfileType = "fridge"

// CriticalTempCelsius is an unconditional ceiling: any temperature at or above
// it raises a CRITICAL anomaly regardless of the per-type profile.
const CriticalTempCelsius = 75.0

// Range is an inclusive [Min, Max] band for a scalar metric.
type Range struct {
	Min float64 `json:"min" toml:"Min"`
	Max float64 `json:"max" toml:"Max"`
}

// Contains reports whether v lies inside the band.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ThresholdProfile holds the per-metric operating bands and per-model
// confidence cutoffs of one equipment type. Nil fields mean the metric is not
// checked for that type. Single-bound metrics (gas, vibration, current) alarm
// at or over the bound; oxygen alarms under its minimum.
type ThresholdProfile struct {
	TempRange     *Range   `json:"temp_range,omitempty"     toml:"TempRange"`
	GasMax        *float64 `json:"gas_max,omitempty"        toml:"GasMax"`
	VibrationMaxG *float64 `json:"vibration_max_g,omitempty" toml:"VibrationMaxG"`
	CurrentMaxA   *float64 `json:"current_max_a,omitempty"  toml:"CurrentMaxA"`
	CO2Range      *Range   `json:"co2_range,omitempty"      toml:"CO2Range"`
	OxygenMinPct  *float64 `json:"oxygen_min_pct,omitempty" toml:"OxygenMinPct"`
	HumidityRange *Range   `json:"humidity_range,omitempty" toml:"HumidityRange"`
	PressureRange *Range   `json:"pressure_range,omitempty" toml:"PressureRange"`

	ThermalConfidence       float64 `json:"thermal_confidence"        toml:"ThermalConfidence"`
	AcousticConfidence      float64 `json:"acoustic_confidence"       toml:"AcousticConfidence"`
	LSTMReconstructionLimit float64 `json:"lstm_reconstruction_limit" toml:"LSTMReconstructionLimit"`
	CorrelationConfidence   float64 `json:"correlation_confidence"    toml:"CorrelationConfidence"`
}
