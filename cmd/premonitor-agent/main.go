/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/sync/errgroup"

	"premonitor/common/telemetry"
	"premonitor/internal/alert"
	"premonitor/internal/config"
	"premonitor/internal/inference"
	"premonitor/internal/monitor"
	"premonitor/internal/registry"
	"premonitor/internal/router"
	"premonitor/internal/security"
	"premonitor/internal/sensor"
)

func main() {
	lc := logger.NewClient("premonitor-agent", "INFO")

	workingDir, err := os.Getwd()
	if err != nil {
		lc.Errorf("Failed to get current working directory: %v", err)
		os.Exit(1)
	}

	configFilePath := os.Getenv("PREMONITOR_CONFIG")
	if configFilePath == "" {
		configFilePath = filepath.Join(workingDir, "res", "configuration.toml")
	}
	lc.Infof("Loading configuration from: %s", configFilePath)

	cfg, cfgErr := config.Load(configFilePath)
	if cfgErr != nil {
		lc.Errorf("Configuration invalid: %s", cfgErr.Message())
		os.Exit(1)
	}

	lc = logger.NewClient(cfg.Service.Name, cfg.Service.LogLevel)
	lc.Infof("Starting %s for controller %s, %d equipment types, %d instances",
		cfg.Service.Name, cfg.Service.ControllerId, len(cfg.Types), len(cfg.Equipment))

	if err := run(lc, cfg); err != nil {
		lc.Errorf("Agent stopped with error: %v", err)
		os.Exit(1)
	}
	lc.Info("Agent stopped")
}

func run(lc logger.LoggingClient, cfg *config.AppConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg, regErr := registry.NewEquipmentRegistry(lc, cfg.Types, cfg.Thresholds, cfg.Equipment)
	if regErr != nil {
		return regErr
	}
	if critical := reg.CriticalEquipment(); len(critical) > 0 {
		lc.Infof("%d critical equipment instance(s) under watch", len(critical))
	}

	activityLog, err := security.NewActivityLog(lc, cfg.Service.ActivityLogPath)
	if err != nil {
		return err
	}

	secMon := security.NewMonitor(lc, cfg.Security, activityLog)
	defer secMon.Stop()

	// One broker connection serves both the alert channel and the telemetry
	// reporter.
	var mqttClient mqtt.Client
	if cfg.Alerts.Mqtt.Enabled {
		mqttClient, err = alert.NewMqttClient(cfg.Alerts.Mqtt)
		if err != nil {
			return err
		}
		defer mqttClient.Disconnect(250)
	}

	channels, cleanup, err := buildChannels(lc, cfg.Alerts, mqttClient)
	if err != nil {
		return err
	}
	defer cleanup()

	metrics := buildTelemetry(lc, cfg, mqttClient)

	alertRouter := alert.NewRouter(lc, cfg.Alerts, channels, metrics)

	var engine inference.Engine
	if cfg.Inference.Url != "" {
		engine = inference.NewHTTPEngine(lc, cfg.Inference)
	} else {
		lc.Warn("No inference endpoint configured, running on raw thresholds and security checks only")
	}

	orch := monitor.NewOrchestrator(lc, cfg.Monitoring, cfg.Service.ControllerId,
		reg, sensor.NewSimulatedSource(lc), secMon, engine, alertRouter, metrics)

	api := router.NewRouter(lc, orch, secMon, activityLog, reg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		alertRouter.Run(gctx)
		return nil
	})
	g.Go(func() error {
		metrics.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return orch.Run(gctx)
	})
	g.Go(func() error {
		if err := api.Start(cfg.Service.Port); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return api.Shutdown(shutdownCtx)
	})

	lc.Infof("REST API listening on port %d", cfg.Service.Port)
	return g.Wait()
}

func buildChannels(lc logger.LoggingClient, cfg config.AlertsConfig, mqttClient mqtt.Client) ([]alert.Channel, func(), error) {
	var channels []alert.Channel
	cleanup := func() {}

	if cfg.Console {
		channels = append(channels, alert.NewConsoleChannel(lc))
	}
	if cfg.Webhook.Enabled {
		channels = append(channels, alert.NewWebhookChannel(lc, cfg.Webhook))
	}
	if cfg.Email.Enabled {
		channels = append(channels, alert.NewEmailChannel(lc, cfg.Email))
	}
	if cfg.Mqtt.Enabled && mqttClient != nil {
		channels = append(channels, alert.NewMqttChannel(lc, mqttClient, cfg.Mqtt))
	}
	if cfg.Nats.Enabled {
		natsChannel, err := alert.NewNatsChannel(lc, cfg.Nats)
		if err != nil {
			return nil, cleanup, err
		}
		channels = append(channels, natsChannel)
		cleanup = natsChannel.Close
	}

	if len(channels) == 0 {
		lc.Warn("No alert channels enabled, falling back to console")
		channels = append(channels, alert.NewConsoleChannel(lc))
	}

	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name())
	}
	lc.Infof("Alert channels enabled: %v", names)
	return channels, cleanup, nil
}

func buildTelemetry(lc logger.LoggingClient, cfg *config.AppConfig, mqttClient mqtt.Client) *telemetry.MetricsManager {
	interval := time.Duration(cfg.Telemetry.ReportIntervalSecs) * time.Second
	if mqttClient != nil && cfg.Alerts.Mqtt.TelemetryTopic != "" {
		reporter := telemetry.NewMQTTMetricReporter(lc, mqttClient, cfg.Alerts.Mqtt.TelemetryTopic,
			cfg.Service.Name, map[string]string{"controller": cfg.Service.ControllerId})
		return telemetry.NewMetricsManager(lc, reporter, interval)
	}
	return telemetry.NewMetricsManager(lc, telemetry.NewLoggerMetricReporter(lc, cfg.Service.Name), interval)
}
