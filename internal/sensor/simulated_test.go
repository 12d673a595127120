package sensor

import (
	"context"
	"testing"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premonitor/common/dto"
)

func TestSimulatedSource_ReadsOnlyEnabledSensors(t *testing.T) {
	src := NewSimulatedSource(new(logger.MockLogger))

	eq := dto.EquipmentInstance{
		Id: "fridge-001",
		Sensors: map[string]dto.SensorWiring{
			"thermal_camera": {Enabled: true},
			"microphone":     {Enabled: true},
			"temperature":    {Enabled: true},
			"gas_sensor":     {Enabled: false},
		},
	}

	snap, err := src.Read(context.Background(), eq)
	require.NoError(t, err)

	assert.Equal(t, "fridge-001", snap.EquipmentId)
	assert.Contains(t, snap.Readings, dto.CapabilityThermal)
	assert.Contains(t, snap.Readings, dto.CapabilityAcoustic)
	assert.Contains(t, snap.Readings, dto.CapabilityTemperature)
	assert.NotContains(t, snap.Readings, dto.CapabilityGas)

	assert.NotEmpty(t, snap.Readings[dto.CapabilityThermal].Series)
	assert.NotNil(t, snap.Readings[dto.CapabilityTemperature].Scalar)
}

func TestSimulatedSource_MotionSensorSetsMotionField(t *testing.T) {
	src := NewSimulatedSource(new(logger.MockLogger))

	eq := dto.EquipmentInstance{
		Id:      "fridge-001",
		Sensors: map[string]dto.SensorWiring{"pir_sensor": {Enabled: true}},
	}

	snap, err := src.Read(context.Background(), eq)
	require.NoError(t, err)
	assert.NotNil(t, snap.Motion)
	assert.Empty(t, snap.Readings)
}
