package alert

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premonitor/common/dto"
	premonitorErrors "premonitor/common/errors"
	"premonitor/internal/config"
)

// fakeChannel records deliveries and fails the first failCount sends.
type fakeChannel struct {
	mu        sync.Mutex
	name      string
	failCount int
	attempts  int
	delivered []dto.AlertBundle
}

func (f *fakeChannel) Name() string { return f.name }

func (f *fakeChannel) Send(bundle dto.AlertBundle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.attempts <= f.failCount {
		return errors.New("sink unavailable")
	}
	f.delivered = append(f.delivered, bundle)
	return nil
}

func (f *fakeChannel) deliveredCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.delivered)
}

func testAlertsConfig(queueSize int) config.AlertsConfig {
	return config.AlertsConfig{
		QueueSize:      queueSize,
		MaxRetries:     3,
		RetryBaseMSecs: 1,
	}
}

func bundleFor(equipmentId string, channels ...string) dto.AlertBundle {
	return dto.AlertBundle{
		EquipmentId:   equipmentId,
		Severity:      dto.SEVERITY_MAJOR,
		Summary:       "test bundle",
		CorrelationId: "corr-" + equipmentId,
		Channels:      channels,
	}
}

func runRouter(t *testing.T, r *Router) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

func TestRouter_DeliversToAllChannels(t *testing.T) {
	ch1 := &fakeChannel{name: ChannelConsole}
	ch2 := &fakeChannel{name: ChannelWebhook}
	r := NewRouter(new(logger.MockLogger), testAlertsConfig(10), []Channel{ch1, ch2}, nil)
	runRouter(t, r)

	require.Nil(t, r.Enqueue(bundleFor("fridge-001")))

	waitFor(t, func() bool { return ch1.deliveredCount() == 1 && ch2.deliveredCount() == 1 })
}

func TestRouter_ChannelFilter(t *testing.T) {
	console := &fakeChannel{name: ChannelConsole}
	webhook := &fakeChannel{name: ChannelWebhook}
	r := NewRouter(new(logger.MockLogger), testAlertsConfig(10), []Channel{console, webhook}, nil)
	runRouter(t, r)

	require.Nil(t, r.Enqueue(bundleFor("fridge-001", ChannelConsole)))

	waitFor(t, func() bool { return console.deliveredCount() == 1 })
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, webhook.deliveredCount())
}

func TestRouter_RetriesUntilSuccess(t *testing.T) {
	flaky := &fakeChannel{name: ChannelWebhook, failCount: 2}
	r := NewRouter(new(logger.MockLogger), testAlertsConfig(10), []Channel{flaky}, nil)
	runRouter(t, r)

	require.Nil(t, r.Enqueue(bundleFor("fridge-001")))

	waitFor(t, func() bool { return flaky.deliveredCount() == 1 })
	assert.Equal(t, 3, flaky.attempts)
}

func TestRouter_FailingChannelDoesNotBlockOthers(t *testing.T) {
	dead := &fakeChannel{name: ChannelWebhook, failCount: 1000}
	healthy := &fakeChannel{name: ChannelConsole}
	r := NewRouter(new(logger.MockLogger), testAlertsConfig(10), []Channel{dead, healthy}, nil)
	runRouter(t, r)

	require.Nil(t, r.Enqueue(bundleFor("fridge-001")))

	waitFor(t, func() bool { return healthy.deliveredCount() == 1 })
	assert.Equal(t, 0, dead.deliveredCount())
}

func TestRouter_EnqueueDropsWhenFull(t *testing.T) {
	// router not running, queue of one fills immediately
	r := NewRouter(new(logger.MockLogger), testAlertsConfig(1), nil, nil)

	require.Nil(t, r.Enqueue(bundleFor("fridge-001")))

	err := r.Enqueue(bundleFor("fridge-002"))
	require.NotNil(t, err)
	assert.True(t, err.IsErrorType(premonitorErrors.QueueLimitExceeded))
	assert.Equal(t, 1, r.QueueDepth())
}

func TestRouter_DrainsQueueOnShutdown(t *testing.T) {
	ch := &fakeChannel{name: ChannelConsole}
	r := NewRouter(new(logger.MockLogger), testAlertsConfig(10), []Channel{ch}, nil)

	for i := 0; i < 5; i++ {
		require.Nil(t, r.Enqueue(bundleFor("fridge-001")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("router did not drain on shutdown")
	}
	assert.Equal(t, 5, ch.deliveredCount())
}
