package fusion

import (
	"testing"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premonitor/common/dto"
)

func f64(v float64) *float64 { return &v }

var fridgeProfile = dto.ThresholdProfile{
	TempRange:               &dto.Range{Min: 2.0, Max: 8.0},
	GasMax:                  f64(300),
	ThermalConfidence:       0.85,
	AcousticConfidence:      0.85,
	LSTMReconstructionLimit: 0.045,
	CorrelationConfidence:   0.60,
}

var testFridge = dto.EquipmentInstance{
	Id: "fridge-001", Type: "fridge", Name: "Sample fridge", Location: "Lab A",
}

func snapshot(readings map[string]dto.ReadingValue) dto.SensorSnapshot {
	return dto.SensorSnapshot{EquipmentId: "fridge-001", Timestamp: 1700000000, Readings: readings}
}

func TestThresholdEvaluator_CriticalCeilingWinsOverRange(t *testing.T) {
	e := NewThresholdEvaluator(new(logger.MockLogger))

	events := e.Evaluate(testFridge, fridgeProfile, snapshot(map[string]dto.ReadingValue{
		dto.CapabilityTemperature: dto.ScalarValue(80.0),
	}))

	// 80C breaks the fridge range too, but only the ceiling event is emitted
	require.Len(t, events, 1)
	assert.Equal(t, dto.ANOMALY_RAW_TEMPERATURE, events[0].Type)
	assert.Equal(t, dto.SEVERITY_CRITICAL, events[0].Severity)
	assert.Equal(t, 80.0, events[0].ActualValues[dto.CapabilityTemperature])
}

func TestThresholdEvaluator_CeilingIndependentOfType(t *testing.T) {
	e := NewThresholdEvaluator(new(logger.MockLogger))

	// an oven runs hot by design and has no temp range configured
	oven := dto.EquipmentInstance{Id: "oven-001", Type: "oven"}
	events := e.Evaluate(oven, dto.ThresholdProfile{}, snapshot(map[string]dto.ReadingValue{
		dto.CapabilityTemperature: dto.ScalarValue(75.0),
	}))

	require.Len(t, events, 1)
	assert.Equal(t, dto.SEVERITY_CRITICAL, events[0].Severity)
}

func TestThresholdEvaluator_RangeViolation(t *testing.T) {
	e := NewThresholdEvaluator(new(logger.MockLogger))

	events := e.Evaluate(testFridge, fridgeProfile, snapshot(map[string]dto.ReadingValue{
		dto.CapabilityTemperature: dto.ScalarValue(12.5),
	}))

	require.Len(t, events, 1)
	assert.Equal(t, dto.ANOMALY_RAW_TEMPERATURE, events[0].Type)
	assert.Equal(t, dto.SEVERITY_MAJOR, events[0].Severity)
	assert.Equal(t, 8.0, events[0].Thresholds["temp_max_c"])
}

func TestThresholdEvaluator_InRangeProducesNothing(t *testing.T) {
	e := NewThresholdEvaluator(new(logger.MockLogger))

	events := e.Evaluate(testFridge, fridgeProfile, snapshot(map[string]dto.ReadingValue{
		dto.CapabilityTemperature: dto.ScalarValue(4.0),
		dto.CapabilityGas:         dto.ScalarValue(120),
	}))

	assert.Empty(t, events)
}

func TestThresholdEvaluator_SingleBoundChecks(t *testing.T) {
	e := NewThresholdEvaluator(new(logger.MockLogger))
	profile := dto.ThresholdProfile{
		GasMax:        f64(300),
		VibrationMaxG: f64(0.5),
		CurrentMaxA:   f64(5.0),
		OxygenMinPct:  f64(19.5),
	}

	tests := []struct {
		name       string
		capability string
		value      float64
		wantType   string
		wantCount  int
	}{
		{"gas at bound fires", dto.CapabilityGas, 300, dto.ANOMALY_RAW_GAS, 1},
		{"gas under bound silent", dto.CapabilityGas, 299, "", 0},
		{"vibration over bound", dto.CapabilityVibration, 0.8, dto.ANOMALY_RAW_VIBRATION, 1},
		{"current over bound", dto.CapabilityCurrent, 6.2, dto.ANOMALY_RAW_CURRENT, 1},
		{"oxygen below minimum", dto.CapabilityOxygen, 17.0, dto.ANOMALY_RAW_OXYGEN, 1},
		{"oxygen at minimum silent", dto.CapabilityOxygen, 19.5, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := e.Evaluate(testFridge, profile, snapshot(map[string]dto.ReadingValue{
				tt.capability: dto.ScalarValue(tt.value),
			}))
			require.Len(t, events, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantType, events[0].Type)
			}
		})
	}
}

func TestThresholdEvaluator_GasEventCarriesPpmEstimate(t *testing.T) {
	e := NewThresholdEvaluator(new(logger.MockLogger))
	profile := dto.ThresholdProfile{GasMax: f64(300)}

	events := e.Evaluate(testFridge, profile, snapshot(map[string]dto.ReadingValue{
		dto.CapabilityGas: dto.ScalarValue(450),
	}))

	require.Len(t, events, 1)
	assert.Greater(t, events[0].ActualValues["estimated_ppm"], 0.0)
}

func TestThresholdEvaluator_OxygenDepletionIsCritical(t *testing.T) {
	e := NewThresholdEvaluator(new(logger.MockLogger))
	profile := dto.ThresholdProfile{OxygenMinPct: f64(19.5)}

	events := e.Evaluate(testFridge, profile, snapshot(map[string]dto.ReadingValue{
		dto.CapabilityOxygen: dto.ScalarValue(16.0),
	}))

	require.Len(t, events, 1)
	assert.Equal(t, dto.SEVERITY_CRITICAL, events[0].Severity)
}

func TestThresholdEvaluator_MissingMetricsSkipped(t *testing.T) {
	e := NewThresholdEvaluator(new(logger.MockLogger))

	events := e.Evaluate(testFridge, fridgeProfile, snapshot(map[string]dto.ReadingValue{}))
	assert.Empty(t, events)
}

func TestThresholdEvaluator_Idempotent(t *testing.T) {
	e := NewThresholdEvaluator(new(logger.MockLogger))
	snap := snapshot(map[string]dto.ReadingValue{
		dto.CapabilityTemperature: dto.ScalarValue(12.5),
		dto.CapabilityGas:         dto.ScalarValue(450),
	})

	first := e.Evaluate(testFridge, fridgeProfile, snap)
	second := e.Evaluate(testFridge, fridgeProfile, snap)

	assert.Equal(t, first, second)
}
