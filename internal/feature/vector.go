/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package feature

import (
	"math"

	"premonitor/common/dto"
	"premonitor/common/utils"
)

// VectorBuilder turns one sensor snapshot into the fixed-order vector the
// sequence models were trained on. The build is a pure function of the
// snapshot: the same readings yield the same vector regardless of the order
// the sensors were read in, and absent or failed metrics land as NaN.
type VectorBuilder struct{}

func NewVectorBuilder() *VectorBuilder {
	return &VectorBuilder{}
}

func (b *VectorBuilder) Build(snapshot dto.SensorSnapshot) dto.FeatureVector {
	var v dto.FeatureVector
	for i := range v {
		v[i] = math.NaN()
	}

	if val, ok := scalarReading(snapshot, dto.CapabilityTemperature); ok {
		v[dto.FeatTemperature] = val
	}
	if val, ok := scalarReading(snapshot, dto.CapabilityGas); ok {
		v[dto.FeatGas] = val
	}
	if val, ok := scalarReading(snapshot, dto.CapabilityVibration); ok {
		v[dto.FeatVibration] = val
	}
	if val, ok := scalarReading(snapshot, dto.CapabilityCurrent); ok {
		v[dto.FeatCurrent] = val
	}
	if reading, ok := snapshot.Readings[dto.CapabilityAcoustic]; ok && len(reading.Series) > 0 {
		v[dto.FeatAcousticRMS] = utils.RMS(reading.Series)
	}
	if reading, ok := snapshot.Readings[dto.CapabilityThermal]; ok && len(reading.Series) > 0 {
		v[dto.FeatThermalMean] = utils.Mean(reading.Series)
	}

	return v
}

func scalarReading(snapshot dto.SensorSnapshot, capability string) (float64, bool) {
	reading, ok := snapshot.Readings[capability]
	if !ok || reading.Scalar == nil || math.IsNaN(*reading.Scalar) {
		return 0, false
	}
	return *reading.Scalar, true
}
