/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package dto

// Capability is a named sensor modality an equipment type can require or allow.
const (
	CapabilityThermal     = "thermal"
	CapabilityAcoustic    = "acoustic"
	CapabilityTemperature = "temperature"
	CapabilityGas         = "gas"
	CapabilityVibration   = "vibration"
	CapabilityCurrent     = "current"
	CapabilityCO2         = "co2"
	CapabilityOxygen      = "oxygen"
	CapabilityHumidity    = "humidity"
	CapabilityPressure    = "pressure"
	CapabilityAirflow     = "airflow"
	CapabilityMotion      = "motion"
)

// Model kinds permitted per equipment type
const (
	ModelThermalCNN  = "thermal_cnn"
	ModelAcousticCNN = "acoustic_cnn"
	ModelLSTMAE      = "lstm_ae"
)

// EquipmentType is an immutable catalog entry loaded once at startup.
type EquipmentType struct {
	Id                   string   `json:"id"                    toml:"Id"`
	Name                 string   `json:"name"                  toml:"Name"`
	RequiredCapabilities []string `json:"required_capabilities" toml:"RequiredCapabilities"`
	OptionalCapabilities []string `json:"optional_capabilities" toml:"OptionalCapabilities"`
	Models               []string `json:"models"                toml:"Models"`
	Description          string   `json:"description,omitempty" toml:"Description"`
}

// SensorWiring is the per-capability driver wiring of one equipment instance.
// Parameters carry driver-specific settings (i2c address, gpio pin, alsa device, ...)
// that are opaque to the monitoring core and handed to the sensor source as-is.
type SensorWiring struct {
	Enabled    bool              `json:"enabled"              toml:"Enabled"`
	SensorType string            `json:"sensor_type,omitempty" toml:"SensorType"`
	Parameters map[string]string `json:"parameters,omitempty" toml:"Parameters"`
}

// EquipmentInstance is one monitored unit bound to a controller. Instances are
// created at load, validated against their EquipmentType and immutable for the run.
type EquipmentInstance struct {
	Id                  string                  `json:"id"                   toml:"Id"`
	Type                string                  `json:"type"                 toml:"Type"`
	Name                string                  `json:"name"                 toml:"Name"`
	Location            string                  `json:"location"             toml:"Location"`
	ControllerId        string                  `json:"controller_id"        toml:"ControllerId"`
	Sensors             map[string]SensorWiring `json:"sensors"              toml:"Sensors"`
	AlertChannels       []string                `json:"alert_channels"       toml:"AlertChannels"`
	MaintenanceSchedule string                  `json:"maintenance_schedule" toml:"MaintenanceSchedule"`
	Critical            bool                    `json:"critical"             toml:"Critical"`
	Notes               string                  `json:"notes,omitempty"      toml:"Notes"`
}
