/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package alert

import (
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"

	"premonitor/common/dto"
)

// Channel names referenced by equipment alert routing.
const (
	ChannelConsole = "console"
	ChannelWebhook = "webhook"
	ChannelEmail   = "email"
	ChannelMqtt    = "mqtt"
	ChannelNats    = "nats"
)

// Channel delivers one alert bundle to one sink. Send must be safe to retry;
// the router calls it again on failure.
type Channel interface {
	Name() string
	Send(bundle dto.AlertBundle) error
}

// ConsoleChannel writes alerts to the service log. Always available, used as
// the fallback sink on minimal deployments.
type ConsoleChannel struct {
	lc logger.LoggingClient
}

func NewConsoleChannel(lc logger.LoggingClient) *ConsoleChannel {
	return &ConsoleChannel{lc: lc}
}

func (c *ConsoleChannel) Name() string {
	return ChannelConsole
}

func (c *ConsoleChannel) Send(bundle dto.AlertBundle) error {
	switch bundle.Severity {
	case dto.SEVERITY_CRITICAL:
		c.lc.Errorf("ALERT [%s] %s: %s (%d events, correlation %s)",
			bundle.Severity, bundle.EquipmentId, bundle.Summary, len(bundle.Events), bundle.CorrelationId)
	default:
		c.lc.Warnf("ALERT [%s] %s: %s (%d events, correlation %s)",
			bundle.Severity, bundle.EquipmentId, bundle.Summary, len(bundle.Events), bundle.CorrelationId)
	}
	return nil
}
