/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package sensor

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"

	"premonitor/common/dto"
	"premonitor/internal/registry"
)

// nominal mid-band values per capability for the simulator
var nominal = map[string]float64{
	dto.CapabilityTemperature: 4.5,
	dto.CapabilityGas:         120,
	dto.CapabilityVibration:   0.15,
	dto.CapabilityCurrent:     1.8,
	dto.CapabilityCO2:         5.0,
	dto.CapabilityOxygen:      20.9,
	dto.CapabilityHumidity:    90,
	dto.CapabilityPressure:    17,
	dto.CapabilityAirflow:     0.8,
}

// SimulatedSource fabricates plausible readings for every enabled sensor, for
// bring-up and soak testing without hardware. Scalars jitter around a nominal
// value; thermal and acoustic produce small synthetic frames.
type SimulatedSource struct {
	lc  logger.LoggingClient
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedSource(lc logger.LoggingClient) *SimulatedSource {
	return &SimulatedSource{
		lc:  lc,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *SimulatedSource) Read(_ context.Context, eq dto.EquipmentInstance) (dto.SensorSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := dto.SensorSnapshot{
		EquipmentId: eq.Id,
		Timestamp:   time.Now().Unix(),
		Readings:    make(map[string]dto.ReadingValue),
	}

	for key, wiring := range eq.Sensors {
		if !wiring.Enabled {
			continue
		}
		capability := registry.CapabilityForWiringKey(key)
		switch capability {
		case dto.CapabilityThermal:
			snapshot.Readings[capability] = dto.SeriesValue(s.frame(64, 21.0, 2.0))
		case dto.CapabilityAcoustic:
			snapshot.Readings[capability] = dto.SeriesValue(s.frame(256, 0, 0.4))
		case dto.CapabilityMotion:
			motion := s.rng.Float64() < 0.02
			snapshot.Motion = &motion
		default:
			base, ok := nominal[capability]
			if !ok {
				s.lc.Warnf("no simulation profile for capability '%s' on %s", capability, eq.Id)
				continue
			}
			snapshot.Readings[capability] = dto.ScalarValue(base * (1 + 0.05*(s.rng.Float64()*2-1)))
		}
	}

	return snapshot, nil
}

func (s *SimulatedSource) frame(n int, mean, spread float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = mean + spread*(s.rng.Float64()*2-1)
	}
	return out
}
