/*******************************************************************************
 * Copyright 2022 Intel Corp.
 * (c) Copyright 2020-2025 BMC Software, Inc.
 *
 * Contributors: BMC Software, Inc. - BMC Helix Edge
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License
 * is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express
 * or implied. See the License for the specific language governing permissions and limitations under
 * the License.
 *******************************************************************************/

package telemetry

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	gometrics "github.com/rcrowley/go-metrics"
)

// MetricsReporter flushes a snapshot of the registry to some sink.
type MetricsReporter interface {
	Report(registry gometrics.Registry) error
}

// MetricSample is one reported counter or gauge value.
type MetricSample struct {
	Name      string `json:"name"`
	TimeStamp int64  `json:"timestamp"`
	Value     int64  `json:"value"`
}

// MetricPayload is the JSON document published per report interval.
type MetricPayload struct {
	Id          string            `json:"id"`
	ServiceName string            `json:"service_name"`
	Tags        map[string]string `json:"tags,omitempty"`
	Samples     []MetricSample    `json:"samples"`
}

// LoggerMetricReporter writes the snapshot to the service log. It is the
// fallback sink when no telemetry broker is configured.
type LoggerMetricReporter struct {
	lc          logger.LoggingClient
	serviceName string
}

func NewLoggerMetricReporter(lc logger.LoggingClient, serviceName string) MetricsReporter {
	return &LoggerMetricReporter{lc: lc, serviceName: serviceName}
}

func (r *LoggerMetricReporter) Report(registry gometrics.Registry) error {
	registry.Each(func(name string, item interface{}) {
		if !strings.HasPrefix(name, "pm_") {
			return
		}
		switch metric := item.(type) {
		case gometrics.Counter:
			if metric.Count() > 0 {
				r.lc.Infof("telemetry %s: %s=%d", r.serviceName, name, metric.Count())
			}
		case gometrics.Gauge:
			r.lc.Infof("telemetry %s: %s=%d", r.serviceName, name, metric.Value())
		}
	})
	return nil
}

// MQTTMetricReporter publishes changed metric values as a JSON payload to a
// telemetry topic. Unchanged counters are skipped to keep broker traffic down.
type MQTTMetricReporter struct {
	lc                logger.LoggingClient
	client            mqtt.Client
	serviceName       string
	topic             string
	tags              map[string]string
	mu                sync.Mutex
	lastReportedValue map[string]int64
}

func NewMQTTMetricReporter(
	lc logger.LoggingClient,
	client mqtt.Client,
	baseTopic string,
	serviceName string,
	tags map[string]string,
) MetricsReporter {
	return &MQTTMetricReporter{
		lc:                lc,
		client:            client,
		serviceName:       serviceName,
		topic:             baseTopic + "/" + serviceName,
		tags:              tags,
		lastReportedValue: make(map[string]int64),
	}
}

func (r *MQTTMetricReporter) Report(registry gometrics.Registry) error {
	var errs error

	if r.client == nil || !r.client.IsConnectionOpen() {
		return fmt.Errorf("mqtt client not available, unable to report metrics")
	}

	payload := MetricPayload{
		Id:          uuid.NewString(),
		ServiceName: r.serviceName,
		Tags:        r.tags,
		Samples:     make([]MetricSample, 0),
	}

	registry.Each(func(name string, item interface{}) {
		if !strings.HasPrefix(name, "pm_") {
			return
		}
		var value int64
		switch metric := item.(type) {
		case gometrics.Counter:
			value = metric.Count()
			if value == 0 {
				return
			}
		case gometrics.Gauge:
			value = metric.Value()
		default:
			errs = multierror.Append(errs, fmt.Errorf("metric type %T not supported", metric))
			return
		}

		r.mu.Lock()
		if lastValue, exists := r.lastReportedValue[name]; !exists || lastValue != value {
			payload.Samples = append(payload.Samples, MetricSample{
				Name:      name,
				TimeStamp: time.Now().UnixNano(),
				Value:     value,
			})
			r.lastReportedValue[name] = value
		}
		r.mu.Unlock()
	})

	if len(payload.Samples) == 0 {
		r.lc.Debugf("No telemetry metrics to publish.")
		return errs
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return multierror.Append(errs, err)
	}

	token := r.client.Publish(r.topic, 0, false, data)
	if token.Wait() && token.Error() != nil {
		r.lc.Errorf("Error publishing telemetry data to MQTT: %v", token.Error())
		errs = multierror.Append(
			errs,
			fmt.Errorf("failed to publish %d telemetry samples to topic '%s': %v",
				len(payload.Samples), r.topic, token.Error()),
		)
	} else {
		r.lc.Debugf("Published %d telemetry metrics to the '%s' topic", len(payload.Samples), r.topic)
	}

	return errs
}
