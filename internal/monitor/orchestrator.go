/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"

	"premonitor/common/dto"
	"premonitor/common/telemetry"
	"premonitor/common/utils"
	"premonitor/internal/alert"
	"premonitor/internal/config"
	"premonitor/internal/feature"
	"premonitor/internal/fusion"
	"premonitor/internal/inference"
	"premonitor/internal/registry"
	"premonitor/internal/security"
	"premonitor/internal/sensor"
)

// Status is the live view exposed by the status API.
type Status struct {
	ControllerId        string         `json:"controller_id"`
	CycleCount          int64          `json:"cycle_count"`
	LastCycleDurationMs int64          `json:"last_cycle_duration_ms"`
	CurrentIntervalSecs float64        `json:"current_interval_secs"`
	EquipmentCount      int            `json:"equipment_count"`
	WindowFill          map[string]int `json:"window_fill"`
	AlertQueueDepth     int            `json:"alert_queue_depth"`
}

// Orchestrator drives one monitoring cycle per equipment instance:
// read -> security -> raw threshold -> inference -> buffer update -> fusion ->
// alert -> snapshot. Equipment are processed sequentially; a failure in one
// equipment's pipeline is logged and does not abort the rest of the cycle.
type Orchestrator struct {
	lc           logger.LoggingClient
	cfg          config.MonitoringConfig
	controllerId string

	registry  *registry.EquipmentRegistry
	source    sensor.Source
	security  *security.Monitor
	builder   *feature.VectorBuilder
	evaluator *fusion.ThresholdEvaluator
	fuser     *fusion.Engine
	engine    inference.Engine
	router    *alert.Router
	metrics   *telemetry.MetricsManager

	windows map[string]*feature.SlidingWindow

	mu            sync.RWMutex
	cycleCount    int64
	lastDuration  time.Duration
	interval      time.Duration
	lastSnapshots map[string]dto.SensorSnapshot

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

func NewOrchestrator(
	lc logger.LoggingClient,
	cfg config.MonitoringConfig,
	controllerId string,
	reg *registry.EquipmentRegistry,
	source sensor.Source,
	sec *security.Monitor,
	engine inference.Engine,
	router *alert.Router,
	metrics *telemetry.MetricsManager,
) *Orchestrator {
	return &Orchestrator{
		lc:            lc,
		cfg:           cfg,
		controllerId:  controllerId,
		registry:      reg,
		source:        source,
		security:      sec,
		builder:       feature.NewVectorBuilder(),
		evaluator:     fusion.NewThresholdEvaluator(lc),
		fuser:         fusion.NewEngine(lc),
		engine:        engine,
		router:        router,
		metrics:       metrics,
		windows:       make(map[string]*feature.SlidingWindow),
		interval:      time.Duration(cfg.IntervalSecs) * time.Second,
		lastSnapshots: make(map[string]dto.SensorSnapshot),
		now:           time.Now,
		sleep:         sleepCtx,
	}
}

// Run loops cycles until the context is canceled. The sleep between cycles
// holds the current cadence: an overrunning cycle starts the next one
// immediately with no compounding delay. The cadence itself adapts, quiet
// cycles stretch it toward the configured maximum and any alert snaps it back
// to the minimum.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.lc.Infof("monitoring orchestrator started for controller %s, target interval %v", o.controllerId, o.interval)
	for {
		if ctx.Err() != nil {
			o.lc.Infof("monitoring orchestrator stopped after %d cycles", o.CycleCount())
			return nil
		}

		start := o.now()
		alerted := o.RunCycle(ctx)
		elapsed := o.now().Sub(start)

		o.adaptInterval(alerted)

		o.mu.Lock()
		o.cycleCount++
		o.lastDuration = elapsed
		interval := o.interval
		o.mu.Unlock()

		if o.metrics != nil {
			o.metrics.Counter(telemetry.MonitoringCyclesCount).Inc(1)
		}

		pause := interval - elapsed
		if pause < 0 {
			o.lc.Warnf("monitoring cycle overran target interval by %v", -pause)
			pause = 0
		}
		o.sleep(ctx, pause)
	}
}

// RunCycle processes every equipment bound to this controller once and reports
// whether any alert was raised.
func (o *Orchestrator) RunCycle(ctx context.Context) bool {
	alerted := false
	for _, eq := range o.registry.EquipmentForController(o.controllerId) {
		raised, err := o.runEquipment(ctx, eq)
		if err != nil {
			if o.metrics != nil {
				o.metrics.Counter(telemetry.CycleErrorsCount).Inc(1)
			}
			o.lc.Errorf("monitoring cycle failed for %s: %v", eq.Id, err)
			continue
		}
		alerted = alerted || raised
	}
	return alerted
}

func (o *Orchestrator) runEquipment(ctx context.Context, eq dto.EquipmentInstance) (raised bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic in equipment pipeline: %v", r)
		}
	}()

	snapshot, err := o.source.Read(ctx, eq)
	if err != nil {
		if o.metrics != nil {
			o.metrics.Counter(telemetry.SensorFailuresCount).Inc(1)
		}
		return false, errors.Wrapf(err, "sensor read failed for %s", eq.Id)
	}
	if o.metrics != nil {
		o.metrics.Counter(telemetry.SensorReadsCount).Inc(1)
	}

	profile := o.registry.Thresholds(eq.Type)

	securityEvents := make([]dto.AnomalyEvent, 0)
	if o.security != nil {
		o.security.LogRoutineRead(eq, snapshot)
		if motion := o.security.CheckMotion(eq, snapshot); motion != nil {
			securityEvents = append(securityEvents, *motion)
		}
		securityEvents = append(securityEvents, o.security.CheckTamper(eq, snapshot)...)
		if len(securityEvents) > 0 && o.metrics != nil {
			o.metrics.Counter(telemetry.SecurityEventsCount).Inc(int64(len(securityEvents)))
		}
	}

	rawEvents := o.evaluator.Evaluate(eq, profile, snapshot)
	if len(rawEvents) > 0 && o.metrics != nil {
		o.metrics.Counter(telemetry.RawAnomaliesCount).Inc(int64(len(rawEvents)))
	}

	results := o.infer(ctx, eq, snapshot)

	vector := o.builder.Build(snapshot)
	o.pushVector(eq.Id, vector)

	passthrough := append(securityEvents, rawEvents...)
	bundle := o.fuser.Fuse(eq, profile, results, passthrough)
	if bundle != nil {
		if len(results) > 0 && o.metrics != nil {
			o.metrics.Counter(telemetry.ModelAnomaliesCount).Inc(int64(len(bundle.Events) - len(passthrough)))
		}
		if err := o.router.Enqueue(*bundle); err != nil {
			o.lc.Errorf("failed to enqueue alert for %s: %s", eq.Id, err.Message())
		} else {
			raised = true
		}
	}

	o.mu.Lock()
	o.lastSnapshots[eq.Id] = snapshot
	o.mu.Unlock()

	return raised, nil
}

// infer calls the model server with whatever inputs this cycle can support.
// Sequence models need a full window; frame models need their frame present.
// Inference failure is not fatal, the raw threshold pass already ran.
func (o *Orchestrator) infer(ctx context.Context, eq dto.EquipmentInstance, snapshot dto.SensorSnapshot) []dto.InferenceResult {
	if o.engine == nil {
		return nil
	}
	et, ok := o.registry.TypeOf(eq)
	if !ok || len(et.Models) == 0 {
		return nil
	}

	req := inference.Request{
		EquipmentId:   eq.Id,
		EquipmentType: eq.Type,
	}

	for _, model := range et.Models {
		switch model {
		case dto.ModelLSTMAE:
			if window, full := o.windowSnapshot(eq.Id); full {
				req.Window = window
				req.Models = append(req.Models, model)
			}
		case dto.ModelThermalCNN:
			if reading, ok := snapshot.Readings[dto.CapabilityThermal]; ok && len(reading.Series) > 0 {
				req.ThermalFrame = reading.Series
				req.Models = append(req.Models, model)
			}
		case dto.ModelAcousticCNN:
			if reading, ok := snapshot.Readings[dto.CapabilityAcoustic]; ok && len(reading.Series) > 0 {
				req.AudioBlock = reading.Series
				req.Models = append(req.Models, model)
			}
		}
	}
	if len(req.Models) == 0 {
		return nil
	}

	if o.metrics != nil {
		o.metrics.Counter(telemetry.InferenceCallsCount).Inc(1)
	}
	results, err := o.engine.Infer(ctx, req)
	if err != nil {
		if o.metrics != nil {
			o.metrics.Counter(telemetry.InferenceFailuresCount).Inc(1)
		}
		o.lc.Errorf("inference failed for %s, continuing with raw thresholds only: %v", eq.Id, err)
		return nil
	}

	// drop results for models the type does not permit
	filtered := results[:0]
	for _, res := range results {
		if utils.Contains(et.Models, res.Kind) {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

// window state is shared with the status API, so all access goes through o.mu.
func (o *Orchestrator) pushVector(equipmentId string, v dto.FeatureVector) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.window(equipmentId).Push(v)
}

func (o *Orchestrator) windowSnapshot(equipmentId string) ([]dto.FeatureVector, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	w := o.window(equipmentId)
	if !w.Full() {
		return nil, false
	}
	return w.Snapshot(), true
}

func (o *Orchestrator) window(equipmentId string) *feature.SlidingWindow {
	w, ok := o.windows[equipmentId]
	if !ok {
		w = feature.NewSlidingWindow(o.cfg.WindowSize)
		o.windows[equipmentId] = w
	}
	return w
}

func (o *Orchestrator) adaptInterval(alerted bool) {
	minI := time.Duration(o.cfg.AdaptiveMinSecs) * time.Second
	maxI := time.Duration(o.cfg.AdaptiveMaxSecs) * time.Second

	o.mu.Lock()
	defer o.mu.Unlock()
	if alerted {
		o.interval = minI
		return
	}
	next := o.interval * 3 / 2
	if next > maxI {
		next = maxI
	}
	o.interval = next
}

// CycleCount returns the number of completed cycles.
func (o *Orchestrator) CycleCount() int64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.cycleCount
}

// Status snapshots the orchestrator state for the REST API.
func (o *Orchestrator) Status() Status {
	o.mu.RLock()
	defer o.mu.RUnlock()

	fill := make(map[string]int, len(o.windows))
	for id, w := range o.windows {
		fill[id] = w.Len()
	}

	s := Status{
		ControllerId:        o.controllerId,
		CycleCount:          o.cycleCount,
		LastCycleDurationMs: o.lastDuration.Milliseconds(),
		CurrentIntervalSecs: o.interval.Seconds(),
		EquipmentCount:      len(o.registry.EquipmentForController(o.controllerId)),
		WindowFill:          fill,
	}
	if o.router != nil {
		s.AlertQueueDepth = o.router.QueueDepth()
	}
	return s
}

// LastSnapshot returns the most recent sensor snapshot for one equipment.
func (o *Orchestrator) LastSnapshot(equipmentId string) (dto.SensorSnapshot, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	snap, ok := o.lastSnapshots[equipmentId]
	return snap, ok
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
