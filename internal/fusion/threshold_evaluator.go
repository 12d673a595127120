/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package fusion

import (
	"fmt"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"

	"premonitor/common/dto"
	"premonitor/common/utils"
)

// ThresholdEvaluator is the raw fail-safe pass: it compares present sensor
// values against the equipment type's profile with no model involvement, so a
// dead inference service never silences a 75 degree fridge. Evaluation is a
// pure function of the snapshot and profile; re-running it on the same input
// yields the identical event set.
type ThresholdEvaluator struct {
	lc logger.LoggingClient
}

func NewThresholdEvaluator(lc logger.LoggingClient) *ThresholdEvaluator {
	return &ThresholdEvaluator{lc: lc}
}

func (e *ThresholdEvaluator) Evaluate(
	eq dto.EquipmentInstance,
	profile dto.ThresholdProfile,
	snapshot dto.SensorSnapshot,
) []dto.AnomalyEvent {
	events := make([]dto.AnomalyEvent, 0)

	if temp, ok := scalar(snapshot, dto.CapabilityTemperature); ok {
		if temp >= dto.CriticalTempCelsius {
			// the ceiling takes precedence over the per-type range check
			events = append(events, e.event(eq, snapshot, dto.ANOMALY_RAW_TEMPERATURE, dto.SEVERITY_CRITICAL,
				dto.CapabilityTemperature, temp,
				map[string]float64{"critical_ceiling_c": dto.CriticalTempCelsius},
				fmt.Sprintf("temperature %.1fC at or above critical ceiling %.1fC", temp, dto.CriticalTempCelsius)))
		} else if profile.TempRange != nil && !profile.TempRange.Contains(temp) {
			events = append(events, e.event(eq, snapshot, dto.ANOMALY_RAW_TEMPERATURE, dto.SEVERITY_MAJOR,
				dto.CapabilityTemperature, temp,
				map[string]float64{"temp_min_c": profile.TempRange.Min, "temp_max_c": profile.TempRange.Max},
				fmt.Sprintf("temperature %.1fC outside operating range [%.1f, %.1f]", temp, profile.TempRange.Min, profile.TempRange.Max)))
		}
	}

	if gas, ok := scalar(snapshot, dto.CapabilityGas); ok && profile.GasMax != nil && gas >= *profile.GasMax {
		ev := e.event(eq, snapshot, dto.ANOMALY_RAW_GAS, dto.SEVERITY_MAJOR,
			dto.CapabilityGas, gas,
			map[string]float64{"gas_max": *profile.GasMax},
			fmt.Sprintf("gas level %.0f at or above limit %.0f", gas, *profile.GasMax))
		ev.ActualValues["estimated_ppm"] = utils.ADCToPPM(int(gas), 0)
		events = append(events, ev)
	}

	if vib, ok := scalar(snapshot, dto.CapabilityVibration); ok && profile.VibrationMaxG != nil && vib >= *profile.VibrationMaxG {
		events = append(events, e.event(eq, snapshot, dto.ANOMALY_RAW_VIBRATION, dto.SEVERITY_MAJOR,
			dto.CapabilityVibration, vib,
			map[string]float64{"vibration_max_g": *profile.VibrationMaxG},
			fmt.Sprintf("vibration %.2fG at or above limit %.2fG", vib, *profile.VibrationMaxG)))
	}

	if cur, ok := scalar(snapshot, dto.CapabilityCurrent); ok && profile.CurrentMaxA != nil && cur >= *profile.CurrentMaxA {
		events = append(events, e.event(eq, snapshot, dto.ANOMALY_RAW_CURRENT, dto.SEVERITY_MAJOR,
			dto.CapabilityCurrent, cur,
			map[string]float64{"current_max_a": *profile.CurrentMaxA},
			fmt.Sprintf("motor current %.1fA at or above limit %.1fA", cur, *profile.CurrentMaxA)))
	}

	if co2, ok := scalar(snapshot, dto.CapabilityCO2); ok && profile.CO2Range != nil && !profile.CO2Range.Contains(co2) {
		events = append(events, e.event(eq, snapshot, dto.ANOMALY_RAW_CO2, dto.SEVERITY_MAJOR,
			dto.CapabilityCO2, co2,
			map[string]float64{"co2_min": profile.CO2Range.Min, "co2_max": profile.CO2Range.Max},
			fmt.Sprintf("CO2 level %.1f outside range [%.1f, %.1f]", co2, profile.CO2Range.Min, profile.CO2Range.Max)))
	}

	if o2, ok := scalar(snapshot, dto.CapabilityOxygen); ok && profile.OxygenMinPct != nil && o2 < *profile.OxygenMinPct {
		events = append(events, e.event(eq, snapshot, dto.ANOMALY_RAW_OXYGEN, dto.SEVERITY_CRITICAL,
			dto.CapabilityOxygen, o2,
			map[string]float64{"oxygen_min_pct": *profile.OxygenMinPct},
			fmt.Sprintf("oxygen %.1f%% below minimum %.1f%%", o2, *profile.OxygenMinPct)))
	}

	if hum, ok := scalar(snapshot, dto.CapabilityHumidity); ok && profile.HumidityRange != nil && !profile.HumidityRange.Contains(hum) {
		events = append(events, e.event(eq, snapshot, dto.ANOMALY_RAW_HUMIDITY, dto.SEVERITY_MAJOR,
			dto.CapabilityHumidity, hum,
			map[string]float64{"humidity_min": profile.HumidityRange.Min, "humidity_max": profile.HumidityRange.Max},
			fmt.Sprintf("humidity %.1f%% outside range [%.1f, %.1f]", hum, profile.HumidityRange.Min, profile.HumidityRange.Max)))
	}

	if psi, ok := scalar(snapshot, dto.CapabilityPressure); ok && profile.PressureRange != nil && !profile.PressureRange.Contains(psi) {
		events = append(events, e.event(eq, snapshot, dto.ANOMALY_RAW_PRESSURE, dto.SEVERITY_MAJOR,
			dto.CapabilityPressure, psi,
			map[string]float64{"pressure_min": profile.PressureRange.Min, "pressure_max": profile.PressureRange.Max},
			fmt.Sprintf("pressure %.1f outside range [%.1f, %.1f]", psi, profile.PressureRange.Min, profile.PressureRange.Max)))
	}

	return events
}

func (e *ThresholdEvaluator) event(
	eq dto.EquipmentInstance,
	snapshot dto.SensorSnapshot,
	anomalyType string,
	severity string,
	metric string,
	actual float64,
	thresholds map[string]float64,
	msg string,
) dto.AnomalyEvent {
	return dto.AnomalyEvent{
		Type:          anomalyType,
		EquipmentId:   eq.Id,
		EquipmentName: eq.Name,
		Location:      eq.Location,
		Metric:        metric,
		Name:          fmt.Sprintf("%s/%s", eq.Id, anomalyType),
		Msg:           msg,
		Severity:      severity,
		ActualValues:  map[string]float64{metric: actual},
		Thresholds:    thresholds,
		Created:       snapshot.Timestamp,
	}
}

func scalar(snapshot dto.SensorSnapshot, capability string) (float64, bool) {
	reading, ok := snapshot.Readings[capability]
	if !ok || reading.IsMissing() || reading.Scalar == nil {
		return 0, false
	}
	return *reading.Scalar, true
}
