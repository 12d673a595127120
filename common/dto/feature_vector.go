/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package dto

// Feature vector slot indexes. The order is part of the model contract and is
// shared between the vector builder, the stored training pipeline and the
// inference endpoint.
const (
	FeatTemperature = iota
	FeatGas
	FeatVibration
	FeatCurrent
	FeatAcousticRMS
	FeatThermalMean
	FeatureCount
)

// FeatureNames lists the slots in wire order, used for payloads and logs.
var FeatureNames = [FeatureCount]string{
	"temperature", "gas", "vibration", "current", "acoustic_rms", "thermal_mean",
}

// FeatureVector is one fixed-order sample row for sequence models. Missing
// metrics are NaN so downstream consumers can distinguish "absent" from zero.
type FeatureVector [FeatureCount]float64
