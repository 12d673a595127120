package telemetry

import (
	"testing"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/stretchr/testify/assert"
)

func TestMetricsManager_Counter(t *testing.T) {
	mLogger := new(logger.MockLogger)
	mgr := NewMetricsManager(mLogger, NewLoggerMetricReporter(mLogger, "test-svc"), 0)

	c := mgr.Counter(MonitoringCyclesCount)
	c.Inc(3)

	assert.Equal(t, int64(3), mgr.Counter(MonitoringCyclesCount).Count())
	assert.NotNil(t, mgr.Gauge("pm_queue_depth"))
}

func TestLoggerMetricReporter_Report(t *testing.T) {
	mLogger := new(logger.MockLogger)
	mgr := NewMetricsManager(mLogger, nil, 0)
	mgr.Counter(AlertsDeliveredCount).Inc(5)
	mgr.Counter("other_prefix_ignored").Inc(1)

	reporter := NewLoggerMetricReporter(mLogger, "test-svc")
	err := reporter.Report(mgr.Registry)
	assert.NoError(t, err)
}
