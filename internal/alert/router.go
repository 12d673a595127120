/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"

	"premonitor/common/dto"
	premonitorErrors "premonitor/common/errors"
	"premonitor/common/telemetry"
	"premonitor/common/utils"
	"premonitor/internal/config"
)

// Router owns the bounded alert queue and a delivery worker. Enqueue never
// blocks the monitoring loop: a full queue drops the bundle and reports it,
// trading completeness for cycle cadence. Each channel is attempted
// independently with its own retry schedule, so one dead sink cannot starve the
// others.
type Router struct {
	lc       logger.LoggingClient
	cfg      config.AlertsConfig
	channels []Channel
	queue    chan dto.AlertBundle
	metrics  *telemetry.MetricsManager
}

func NewRouter(lc logger.LoggingClient, cfg config.AlertsConfig, channels []Channel, metrics *telemetry.MetricsManager) *Router {
	return &Router{
		lc:       lc,
		cfg:      cfg,
		channels: channels,
		queue:    make(chan dto.AlertBundle, cfg.QueueSize),
		metrics:  metrics,
	}
}

// Enqueue hands a bundle to the delivery worker. Returns QueueLimitExceeded
// when the queue is full.
func (r *Router) Enqueue(bundle dto.AlertBundle) premonitorErrors.PremonitorError {
	select {
	case r.queue <- bundle:
		r.count(telemetry.AlertsEnqueuedCount)
		return nil
	default:
		r.count(telemetry.AlertsDroppedCount)
		r.lc.Errorf("alert queue full, dropping bundle %s for %s", bundle.CorrelationId, bundle.EquipmentId)
		return premonitorErrors.NewCommonPremonitorError(premonitorErrors.QueueLimitExceeded,
			fmt.Sprintf("alert queue full, bundle %s dropped", bundle.CorrelationId))
	}
}

// QueueDepth reports the bundles currently waiting for delivery.
func (r *Router) QueueDepth() int {
	return len(r.queue)
}

// Run drains the queue until the context is canceled, then delivers anything
// still queued before returning.
func (r *Router) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for {
				select {
				case bundle := <-r.queue:
					r.deliver(bundle)
				default:
					return
				}
			}
		case bundle := <-r.queue:
			r.deliver(bundle)
		}
	}
}

// deliver fans one bundle out to its channels. A bundle with no channel list
// goes to every configured channel.
func (r *Router) deliver(bundle dto.AlertBundle) {
	for _, ch := range r.channels {
		if len(bundle.Channels) > 0 && !utils.Contains(bundle.Channels, ch.Name()) {
			continue
		}
		if err := r.sendWithRetry(ch, bundle); err != nil {
			r.count(telemetry.AlertsFailedCount)
			r.lc.Errorf("alert %s failed on channel %s after %d retries: %v",
				bundle.CorrelationId, ch.Name(), r.cfg.MaxRetries, err)
			continue
		}
		r.count(telemetry.AlertsDeliveredCount)
	}
}

func (r *Router) sendWithRetry(ch Channel, bundle dto.AlertBundle) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(r.cfg.RetryBaseMSecs) * time.Millisecond
	b.MaxElapsedTime = 0

	attempt := 0
	op := func() error {
		attempt++
		if err := ch.Send(bundle); err != nil {
			r.lc.Warnf("alert %s attempt %d on channel %s failed: %v", bundle.CorrelationId, attempt, ch.Name(), err)
			return err
		}
		return nil
	}
	return backoff.Retry(op, backoff.WithMaxRetries(b, uint64(r.cfg.MaxRetries)))
}

func (r *Router) count(name string) {
	if r.metrics != nil {
		r.metrics.Counter(name).Inc(1)
	}
}
