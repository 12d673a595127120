/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package alert

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"

	"premonitor/common/dto"
	"premonitor/internal/config"
)

// WebhookChannel posts the bundle as JSON to an HTTP endpoint (Discord, Slack,
// a ticketing bridge).
type WebhookChannel struct {
	lc     logger.LoggingClient
	url    string
	client *http.Client
}

func NewWebhookChannel(lc logger.LoggingClient, cfg config.WebhookConfig) *WebhookChannel {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookChannel{
		lc:     lc,
		url:    cfg.Url,
		client: &http.Client{Timeout: timeout},
	}
}

func (c *WebhookChannel) Name() string {
	return ChannelWebhook
}

func (c *WebhookChannel) Send(bundle dto.AlertBundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return errors.Wrap(err, "failed to marshal alert bundle")
	}

	resp, err := c.client.Post(c.url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "webhook post to %s failed", c.url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("webhook %s returned status %d", c.url, resp.StatusCode)
	}
	c.lc.Debugf("alert %s delivered to webhook", bundle.CorrelationId)
	return nil
}
