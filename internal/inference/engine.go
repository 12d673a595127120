/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"

	"premonitor/common/dto"
	"premonitor/internal/config"
)

// Request carries everything the model server needs for one equipment's cycle.
// Window is only populated when the sliding window is full; the CNN inputs ride
// as raw frames. Models names which of the equipment type's models to run.
type Request struct {
	EquipmentId   string              `json:"equipment_id"`
	EquipmentType string              `json:"equipment_type"`
	Models        []string            `json:"models"`
	Window        []dto.FeatureVector `json:"window,omitempty"`
	ThermalFrame  []float64           `json:"thermal_frame,omitempty"`
	AudioBlock    []float64           `json:"audio_block,omitempty"`
}

// Engine scores one equipment's signals. Score normalization (confidence 0..1,
// reconstruction error >= 0) is the server's job; the agent consumes floats.
type Engine interface {
	Infer(ctx context.Context, req Request) ([]dto.InferenceResult, error)
}

// HTTPEngine talks to an external model-serving endpoint over HTTP.
type HTTPEngine struct {
	lc     logger.LoggingClient
	url    string
	client *http.Client
}

func NewHTTPEngine(lc logger.LoggingClient, cfg config.InferenceConfig) *HTTPEngine {
	return &HTTPEngine{
		lc:  lc,
		url: cfg.Url,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
	}
}

type predictionResponse struct {
	Results []dto.InferenceResult `json:"results"`
}

func (e *HTTPEngine) Infer(ctx context.Context, req Request) ([]dto.InferenceResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal inference request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build inference request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "inference call for %s failed", req.EquipmentId)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e.lc.Errorf("error getting the prediction, check the inferencing endpoint URL %s (status %d)", e.url, resp.StatusCode)
		return nil, errors.Errorf("inference endpoint returned status %d", resp.StatusCode)
	}

	var pr predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, errors.Wrap(err, "failed to decode inference response")
	}

	e.lc.Debugf("got %d inference results for %s", len(pr.Results), req.EquipmentId)
	return pr.Results, nil
}
