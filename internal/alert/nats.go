/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package alert

import (
	"encoding/json"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"premonitor/common/dto"
	"premonitor/internal/config"
)

// NatsChannel publishes bundles on a NATS subject for in-cluster subscribers.
type NatsChannel struct {
	lc      logger.LoggingClient
	conn    *nats.Conn
	subject string
}

func NewNatsChannel(lc logger.LoggingClient, cfg config.NatsConfig) (*NatsChannel, error) {
	conn, err := nats.Connect(cfg.Url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to NATS at %s", cfg.Url)
	}
	return &NatsChannel{lc: lc, conn: conn, subject: cfg.Subject}, nil
}

func (c *NatsChannel) Name() string {
	return ChannelNats
}

func (c *NatsChannel) Send(bundle dto.AlertBundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return errors.Wrap(err, "failed to marshal alert bundle")
	}
	if err := c.conn.Publish(c.subject, payload); err != nil {
		return errors.Wrapf(err, "nats publish to %s failed", c.subject)
	}
	c.lc.Debugf("alert %s published to nats subject %s", bundle.CorrelationId, c.subject)
	return nil
}

// Close drains the connection.
func (c *NatsChannel) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}
