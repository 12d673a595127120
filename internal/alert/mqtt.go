/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package alert

import (
	"encoding/json"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"

	"premonitor/common/dto"
	"premonitor/internal/config"
)

// MqttChannel publishes the bundle to the site broker, where downstream
// consumers (dashboards, the north-bound bridge) pick it up.
type MqttChannel struct {
	lc     logger.LoggingClient
	client mqtt.Client
	topic  string
	qos    byte
}

// NewMqttClient builds the shared broker connection from configuration.
func NewMqttClient(cfg config.MqttConfig) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerUrl).
		SetClientID(cfg.ClientId).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "failed to connect to MQTT broker %s", cfg.BrokerUrl)
	}
	return client, nil
}

func NewMqttChannel(lc logger.LoggingClient, client mqtt.Client, cfg config.MqttConfig) *MqttChannel {
	return &MqttChannel{lc: lc, client: client, topic: cfg.AlertTopic, qos: cfg.QoS}
}

func (c *MqttChannel) Name() string {
	return ChannelMqtt
}

func (c *MqttChannel) Send(bundle dto.AlertBundle) error {
	if c.client == nil || !c.client.IsConnectionOpen() {
		return errors.New("mqtt client not connected")
	}

	payload, err := json.Marshal(bundle)
	if err != nil {
		return errors.Wrap(err, "failed to marshal alert bundle")
	}

	token := c.client.Publish(c.topic, c.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return errors.Wrapf(token.Error(), "mqtt publish to %s failed", c.topic)
	}
	c.lc.Debugf("alert %s published to mqtt topic %s", bundle.CorrelationId, c.topic)
	return nil
}
