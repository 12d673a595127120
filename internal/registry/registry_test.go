package registry

import (
	"testing"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premonitor/common/dto"
	premonitorErrors "premonitor/common/errors"
)

var testTypes = []dto.EquipmentType{
	{
		Id:                   "fridge",
		Name:                 "Refrigerator",
		RequiredCapabilities: []string{dto.CapabilityThermal, dto.CapabilityAcoustic},
		OptionalCapabilities: []string{dto.CapabilityGas, dto.CapabilityTemperature},
		Models:               []string{dto.ModelThermalCNN, dto.ModelAcousticCNN, dto.ModelLSTMAE},
	},
	{
		Id:                   "centrifuge",
		Name:                 "Centrifuge",
		RequiredCapabilities: []string{dto.CapabilityAcoustic},
		OptionalCapabilities: []string{dto.CapabilityVibration, dto.CapabilityCurrent},
		Models:               []string{dto.ModelAcousticCNN, dto.ModelLSTMAE},
	},
}

var testThresholds = map[string]dto.ThresholdProfile{
	"fridge": {
		TempRange:          &dto.Range{Min: 2.0, Max: 8.0},
		ThermalConfidence:  0.85,
		AcousticConfidence: 0.85,
	},
	"centrifuge": {
		AcousticConfidence: 0.75,
	},
}

func enabledSensor() dto.SensorWiring {
	return dto.SensorWiring{Enabled: true}
}

func fridgeInstance(id, controller string) dto.EquipmentInstance {
	return dto.EquipmentInstance{
		Id:           id,
		Type:         "fridge",
		Name:         "Sample fridge",
		Location:     "Lab A",
		ControllerId: controller,
		Sensors: map[string]dto.SensorWiring{
			"thermal_camera": enabledSensor(),
			"microphone":     enabledSensor(),
		},
	}
}

func newTestRegistry(t *testing.T, instances ...dto.EquipmentInstance) *EquipmentRegistry {
	t.Helper()
	r, err := NewEquipmentRegistry(new(logger.MockLogger), testTypes, testThresholds, instances)
	require.Nil(t, err)
	return r
}

func TestNewEquipmentRegistry_UnknownTypeIsFatal(t *testing.T) {
	bad := dto.EquipmentInstance{Id: "x-001", Type: "teleporter", ControllerId: "rpi-01"}
	_, err := NewEquipmentRegistry(new(logger.MockLogger), testTypes, testThresholds, []dto.EquipmentInstance{bad})
	require.NotNil(t, err)
	assert.True(t, err.IsErrorType(premonitorErrors.ErrorTypeConfig))
}

func TestNewEquipmentRegistry_MissingFallbackProfile(t *testing.T) {
	_, err := NewEquipmentRegistry(new(logger.MockLogger), testTypes,
		map[string]dto.ThresholdProfile{"centrifuge": {}}, nil)
	require.NotNil(t, err)
	assert.Contains(t, err.Message(), "fallback threshold profile")
}

func TestNewEquipmentRegistry_InvalidInstanceExcludedNotFatal(t *testing.T) {
	missingRequired := dto.EquipmentInstance{
		Id:           "fridge-002",
		Type:         "fridge",
		ControllerId: "rpi-01",
		Sensors: map[string]dto.SensorWiring{
			"gas_sensor": enabledSensor(),
		},
	}
	r := newTestRegistry(t, fridgeInstance("fridge-001", "rpi-01"), missingRequired)

	_, err := r.InstanceById("fridge-002")
	require.NotNil(t, err)
	assert.True(t, err.IsErrorType(premonitorErrors.ErrorTypeNotFound))

	_, err = r.InstanceById("fridge-001")
	assert.Nil(t, err)
}

func TestEquipmentForController(t *testing.T) {
	r := newTestRegistry(t,
		fridgeInstance("fridge-001", "rpi-01"),
		fridgeInstance("fridge-002", "rpi-02"),
		fridgeInstance("fridge-003", "rpi-01"),
	)

	mine := r.EquipmentForController("rpi-01")
	require.Len(t, mine, 2)
	assert.Equal(t, "fridge-001", mine[0].Id)
	assert.Equal(t, "fridge-003", mine[1].Id)

	assert.Empty(t, r.EquipmentForController("rpi-99"))
}

func TestThresholds_FallbackNeverFails(t *testing.T) {
	r := newTestRegistry(t)

	fridge := r.Thresholds("fridge")
	require.NotNil(t, fridge.TempRange)
	assert.Equal(t, 2.0, fridge.TempRange.Min)

	// unknown type resolves to the fridge profile instead of failing
	unknown := r.Thresholds("teleporter")
	require.NotNil(t, unknown.TempRange)
	assert.Equal(t, 8.0, unknown.TempRange.Max)
}

func TestValidate(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name    string
		eq      dto.EquipmentInstance
		wantErr string
	}{
		{
			name: "all required sensors wired",
			eq:   fridgeInstance("fridge-010", "rpi-01"),
		},
		{
			name: "required sensor missing",
			eq: dto.EquipmentInstance{
				Id: "fridge-011", Type: "fridge", ControllerId: "rpi-01",
				Sensors: map[string]dto.SensorWiring{"thermal_camera": enabledSensor()},
			},
			wantErr: "required sensor missing: acoustic (config key: microphone)",
		},
		{
			name: "required sensor wired but disabled",
			eq: dto.EquipmentInstance{
				Id: "fridge-012", Type: "fridge", ControllerId: "rpi-01",
				Sensors: map[string]dto.SensorWiring{
					"thermal_camera": enabledSensor(),
					"microphone":     {Enabled: false},
				},
			},
			wantErr: "required sensor missing: acoustic",
		},
		{
			name: "sensor outside the permitted set",
			eq: dto.EquipmentInstance{
				Id: "spin-001", Type: "centrifuge", ControllerId: "rpi-01",
				Sensors: map[string]dto.SensorWiring{
					"microphone": enabledSensor(),
					"co2":        enabledSensor(),
				},
			},
			wantErr: "sensor 'co2' not permitted for type 'centrifuge'",
		},
		{
			name: "motion sensor always allowed",
			eq: dto.EquipmentInstance{
				Id: "spin-002", Type: "centrifuge", ControllerId: "rpi-01",
				Sensors: map[string]dto.SensorWiring{
					"microphone": enabledSensor(),
					"pir_sensor": enabledSensor(),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Validate(tt.eq)
			if tt.wantErr == "" {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Contains(t, err.Message(), tt.wantErr)
		})
	}
}

func TestCriticalEquipment(t *testing.T) {
	critical := fridgeInstance("fridge-001", "rpi-01")
	critical.Critical = true
	r := newTestRegistry(t, critical, fridgeInstance("fridge-002", "rpi-01"))

	got := r.CriticalEquipment()
	require.Len(t, got, 1)
	assert.Equal(t, "fridge-001", got[0].Id)
}

func TestWiringKey(t *testing.T) {
	assert.Equal(t, "thermal_camera", WiringKey(dto.CapabilityThermal))
	assert.Equal(t, "microphone", WiringKey(dto.CapabilityAcoustic))
	assert.Equal(t, "gas_sensor", WiringKey(dto.CapabilityGas))
	assert.Equal(t, "temperature", WiringKey(dto.CapabilityTemperature))
	assert.Equal(t, "vibration", WiringKey(dto.CapabilityVibration))
}
