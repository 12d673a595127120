/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package fusion

import (
	"fmt"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/google/uuid"

	"premonitor/common/dto"
)

// Engine combines model scores with raw threshold events into a single ranked
// alert bundle per equipment per cycle.
//
// The fixed decision order:
//  1. A single-sensor confidence at or over its type threshold raises a
//     CRITICAL anomaly for that sensor and exempts it from the correlated
//     check (other sensors still participate).
//  2. Otherwise, thermal and acoustic both at or over the lower correlation
//     threshold raise one WARNING referencing both values. Two weak
//     independent signals agreeing is stronger evidence than either alone.
//  3. Reconstruction error over its limit raises a DEGRADATION warning,
//     evaluated independently of 1 and 2.
//  4. Raw threshold events always pass through.
type Engine struct {
	lc logger.LoggingClient
}

func NewEngine(lc logger.LoggingClient) *Engine {
	return &Engine{lc: lc}
}

// Fuse ranks the cycle's signals for one equipment. Returns nil when there is
// nothing to alert on.
func (f *Engine) Fuse(
	eq dto.EquipmentInstance,
	profile dto.ThresholdProfile,
	results []dto.InferenceResult,
	rawEvents []dto.AnomalyEvent,
) *dto.AlertBundle {
	events := make([]dto.AnomalyEvent, 0, len(rawEvents)+2)
	created := time.Now().UnixMilli()

	var thermal, acoustic, degradation *dto.InferenceResult
	for i := range results {
		switch results[i].Kind {
		case dto.INFERENCE_THERMAL:
			thermal = &results[i]
		case dto.INFERENCE_ACOUSTIC:
			acoustic = &results[i]
		case dto.INFERENCE_DEGRADATION:
			degradation = &results[i]
		}
	}

	thermalCritical := thermal != nil && profile.ThermalConfidence > 0 && thermal.Score >= profile.ThermalConfidence
	acousticCritical := acoustic != nil && profile.AcousticConfidence > 0 && acoustic.Score >= profile.AcousticConfidence

	if thermalCritical {
		events = append(events, f.modelEvent(eq, dto.ANOMALY_THERMAL, dto.SEVERITY_CRITICAL, created,
			thermal.Score, map[string]float64{"thermal_confidence": profile.ThermalConfidence},
			fmt.Sprintf("thermal model confidence %.2f at or above %.2f", thermal.Score, profile.ThermalConfidence)))
	}
	if acousticCritical {
		events = append(events, f.modelEvent(eq, dto.ANOMALY_ACOUSTIC, dto.SEVERITY_CRITICAL, created,
			acoustic.Score, map[string]float64{"acoustic_confidence": profile.AcousticConfidence},
			fmt.Sprintf("acoustic model confidence %.2f at or above %.2f", acoustic.Score, profile.AcousticConfidence)))
	}

	// correlated check only between sensors that did not already fire
	if !thermalCritical && !acousticCritical &&
		thermal != nil && acoustic != nil && profile.CorrelationConfidence > 0 &&
		thermal.Score >= profile.CorrelationConfidence && acoustic.Score >= profile.CorrelationConfidence {
		ev := f.modelEvent(eq, dto.ANOMALY_CORRELATED, dto.SEVERITY_WARNING, created,
			thermal.Score, map[string]float64{"correlation_confidence": profile.CorrelationConfidence},
			fmt.Sprintf("thermal %.2f and acoustic %.2f both above correlation threshold %.2f",
				thermal.Score, acoustic.Score, profile.CorrelationConfidence))
		ev.ActualValues = map[string]float64{
			"thermal_confidence":  thermal.Score,
			"acoustic_confidence": acoustic.Score,
		}
		events = append(events, ev)
	}

	if degradation != nil && profile.LSTMReconstructionLimit > 0 && degradation.Score >= profile.LSTMReconstructionLimit {
		events = append(events, f.modelEvent(eq, dto.ANOMALY_LSTM_DEGRADATION, dto.SEVERITY_WARNING, created,
			degradation.Score, map[string]float64{"reconstruction_limit": profile.LSTMReconstructionLimit},
			fmt.Sprintf("reconstruction error %.4f at or above %.4f, gradual degradation suspected",
				degradation.Score, profile.LSTMReconstructionLimit)))
	}

	events = append(events, rawEvents...)

	if len(events) == 0 {
		return nil
	}

	severity := highestSeverity(events)
	if eq.Critical && severityRank[severity] < severityRank[dto.SEVERITY_MAJOR] {
		severity = dto.SEVERITY_MAJOR
	}

	bundle := &dto.AlertBundle{
		EquipmentId:   eq.Id,
		EquipmentName: eq.Name,
		Severity:      severity,
		Summary:       summarize(eq, events),
		Events:        events,
		CorrelationId: uuid.NewString(),
		Created:       created,
		Channels:      eq.AlertChannels,
	}
	for i := range bundle.Events {
		bundle.Events[i].CorrelationId = bundle.CorrelationId
		if bundle.Events[i].Id == "" {
			bundle.Events[i].Id = uuid.NewString()
		}
	}
	f.lc.Debugf("fused %d anomaly events for %s, severity %s", len(events), eq.Id, bundle.Severity)
	return bundle
}

func (f *Engine) modelEvent(
	eq dto.EquipmentInstance,
	anomalyType string,
	severity string,
	created int64,
	score float64,
	thresholds map[string]float64,
	msg string,
) dto.AnomalyEvent {
	return dto.AnomalyEvent{
		Type:          anomalyType,
		EquipmentId:   eq.Id,
		EquipmentName: eq.Name,
		Location:      eq.Location,
		Name:          fmt.Sprintf("%s/%s", eq.Id, anomalyType),
		Msg:           msg,
		Severity:      severity,
		ActualValues:  map[string]float64{"score": score},
		Thresholds:    thresholds,
		Confidence:    score,
		Created:       created,
	}
}

var severityRank = map[string]int{
	dto.SEVERITY_CRITICAL: 4,
	dto.SEVERITY_MAJOR:    3,
	dto.SEVERITY_WARNING:  2,
	dto.SEVERITY_INFO:     1,
}

func highestSeverity(events []dto.AnomalyEvent) string {
	highest := dto.SEVERITY_INFO
	for _, ev := range events {
		if severityRank[ev.Severity] > severityRank[highest] {
			highest = ev.Severity
		}
	}
	return highest
}

func summarize(eq dto.EquipmentInstance, events []dto.AnomalyEvent) string {
	name := eq.Name
	if name == "" {
		name = eq.Id
	}
	return fmt.Sprintf("%s: %d anomaly signal(s), leading with %s", name, len(events), events[0].Msg)
}
