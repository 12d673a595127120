/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package dto

const (
	SEVERITY_CRITICAL = "CRITICAL"
	SEVERITY_MAJOR    = "MAJOR"
	SEVERITY_WARNING  = "WARNING"
	SEVERITY_INFO     = "INFO"
)

// Anomaly event types. Raw variants come from the fail-safe threshold pass,
// the model variants from fusion, motion/tamper/after_hours from security.
const (
	ANOMALY_THERMAL          = "thermal"
	ANOMALY_ACOUSTIC         = "acoustic"
	ANOMALY_CORRELATED       = "correlated"
	ANOMALY_LSTM_DEGRADATION = "lstm_degradation"
	ANOMALY_RAW_TEMPERATURE  = "raw_temperature"
	ANOMALY_RAW_GAS          = "raw_gas"
	ANOMALY_RAW_CO2          = "raw_co2"
	ANOMALY_RAW_OXYGEN       = "raw_oxygen"
	ANOMALY_RAW_VIBRATION    = "raw_vibration"
	ANOMALY_RAW_CURRENT      = "raw_current"
	ANOMALY_RAW_HUMIDITY     = "raw_humidity"
	ANOMALY_RAW_PRESSURE     = "raw_pressure"
	ANOMALY_MOTION           = "motion"
	ANOMALY_TAMPER           = "tamper"
	ANOMALY_AFTER_HOURS      = "after_hours"
)

// AnomalyEvent is the unit of alerting. Every detector, rule based or model
// based, emits these; the fusion engine orders and bundles them and the alert
// router delivers them. CorrelationId ties the events of one monitoring cycle
// together across channels.
type AnomalyEvent struct {
	Id            string             `json:"id,omitempty"`
	Type          string             `json:"type"`
	EquipmentId   string             `json:"equipment_id"`
	EquipmentName string             `json:"equipment_name,omitempty"`
	Location      string             `json:"location,omitempty"`
	Metric        string             `json:"metric,omitempty"`
	Name          string             `json:"name"`
	Msg           string             `json:"msg,omitempty"`
	Severity      string             `json:"severity"`
	ActualValues  map[string]float64 `json:"actual_values,omitempty"`
	Thresholds    map[string]float64 `json:"thresholds,omitempty"`
	Confidence    float64            `json:"confidence,omitempty"`
	CorrelationId string             `json:"correlation_id,omitempty"`
	Created       int64              `json:"created"`
}

// IsCritical reports whether the event carries the highest severity.
func (e AnomalyEvent) IsCritical() bool {
	return e.Severity == SEVERITY_CRITICAL
}

// AlertBundle is the single composite produced per equipment per monitoring
// cycle: the headline severity plus every contributing event, in fusion order.
type AlertBundle struct {
	EquipmentId   string         `json:"equipment_id"`
	EquipmentName string         `json:"equipment_name,omitempty"`
	Severity      string         `json:"severity"`
	Summary       string         `json:"summary"`
	Events        []AnomalyEvent `json:"events"`
	CorrelationId string         `json:"correlation_id"`
	Created       int64          `json:"created"`
	Channels      []string       `json:"channels,omitempty"`
}
