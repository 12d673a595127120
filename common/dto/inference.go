/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package dto

// Inference result kinds, one per deployed model family.
const (
	INFERENCE_THERMAL     = "thermal_cnn"
	INFERENCE_ACOUSTIC    = "acoustic_cnn"
	INFERENCE_DEGRADATION = "lstm_ae"
)

// InferenceResult is the verdict of one model over one equipment's current
// window or frame. Score semantics depend on Kind: classification confidence
// for the CNNs, reconstruction error for the autoencoder.
type InferenceResult struct {
	Kind        string  `json:"kind"`
	EquipmentId string  `json:"equipment_id"`
	Anomalous   bool    `json:"anomalous"`
	Score       float64 `json:"score"`
	Threshold   float64 `json:"threshold,omitempty"`
	Label       string  `json:"label,omitempty"`
	ModelName   string  `json:"model_name,omitempty"`
}
