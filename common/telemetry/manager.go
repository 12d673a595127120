/*******************************************************************************
* Contributors: BMC Software, Inc. - BMC Helix Edge
*
* (c) Copyright 2020-2025 BMC Software, Inc.
*******************************************************************************/

package telemetry

import (
	"context"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	gometrics "github.com/rcrowley/go-metrics"
)

// MetricsManager owns the service-wide metric registry and flushes it through
// the configured reporter on a fixed interval.
type MetricsManager struct {
	lc       logger.LoggingClient
	Registry gometrics.Registry
	reporter MetricsReporter
	interval time.Duration
}

func NewMetricsManager(lc logger.LoggingClient, reporter MetricsReporter, interval time.Duration) *MetricsManager {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &MetricsManager{
		lc:       lc,
		Registry: gometrics.NewRegistry(),
		reporter: reporter,
		interval: interval,
	}
}

// Counter returns the named counter, registering it on first use.
func (m *MetricsManager) Counter(name string) gometrics.Counter {
	return gometrics.GetOrRegisterCounter(name, m.Registry)
}

// Gauge returns the named gauge, registering it on first use.
func (m *MetricsManager) Gauge(name string) gometrics.Gauge {
	return gometrics.GetOrRegisterGauge(name, m.Registry)
}

// Run reports the registry every interval until the context is canceled. It is
// meant to be started on its own goroutine.
func (m *MetricsManager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// final flush so short runs still surface their counts
			if err := m.reporter.Report(m.Registry); err != nil {
				m.lc.Warnf("final telemetry report failed: %v", err)
			}
			return
		case <-ticker.C:
			if err := m.reporter.Report(m.Registry); err != nil {
				m.lc.Warnf("telemetry report failed: %v", err)
			}
		}
	}
}
