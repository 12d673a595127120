/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/pelletier/go-toml"

	"premonitor/common/dto"
	premonitorErrors "premonitor/common/errors"
)

// ServiceConfig covers the agent process itself.
type ServiceConfig struct {
	Name            string `toml:"Name"            validate:"required"`
	LogLevel        string `toml:"LogLevel"        validate:"oneof=TRACE DEBUG INFO WARN ERROR"`
	Port            int    `toml:"Port"            validate:"gt=0,lte=65535"`
	ControllerId    string `toml:"ControllerId"    validate:"required"`
	ActivityLogPath string `toml:"ActivityLogPath" validate:"required"`
}

// MonitoringConfig drives the orchestrator loop.
type MonitoringConfig struct {
	IntervalSecs         int `toml:"IntervalSecs"         validate:"gt=0"`
	AdaptiveMinSecs      int `toml:"AdaptiveMinSecs"      validate:"gt=0"`
	AdaptiveMaxSecs      int `toml:"AdaptiveMaxSecs"      validate:"gtefield=AdaptiveMinSecs"`
	WindowSize           int `toml:"WindowSize"           validate:"gt=0"`
	SnapshotIntervalSecs int `toml:"SnapshotIntervalSecs" validate:"gte=0"`
}

// InferenceConfig points at the model-serving endpoint.
type InferenceConfig struct {
	Url                  string  `toml:"Url"`
	TimeoutSecs          int     `toml:"TimeoutSecs"          validate:"gt=0"`
	DegradationThreshold float64 `toml:"DegradationThreshold" validate:"gt=0"`
}

// SecurityConfig tunes the security monitor.
type SecurityConfig struct {
	MotionCooldownSecs   int     `toml:"MotionCooldownSecs"   validate:"gt=0"`
	TamperRateCeiling    float64 `toml:"TamperRateCeiling"    validate:"gt=0"`
	VibrationTamperG     float64 `toml:"VibrationTamperG"     validate:"gt=0"`
	BusinessHoursStart   string  `toml:"BusinessHoursStart"   validate:"required"`
	BusinessHoursEnd     string  `toml:"BusinessHoursEnd"     validate:"required"`
	TamperBaselineTTLMin int     `toml:"TamperBaselineTTLMin" validate:"gt=0"`
	LogAllAccess         bool    `toml:"LogAllAccess"`
}

// WebhookConfig is one HTTP alert sink.
type WebhookConfig struct {
	Enabled     bool   `toml:"Enabled"`
	Url         string `toml:"Url"`
	TimeoutSecs int    `toml:"TimeoutSecs"`
}

// EmailConfig is the SMTP alert sink.
type EmailConfig struct {
	Enabled  bool     `toml:"Enabled"`
	SmtpHost string   `toml:"SmtpHost"`
	SmtpPort int      `toml:"SmtpPort"`
	From     string   `toml:"From"`
	To       []string `toml:"To"`
	Username string   `toml:"Username"`
	Password string   `toml:"Password"`
}

// MqttConfig is the MQTT broker connection, shared by the alert channel and
// the telemetry reporter.
type MqttConfig struct {
	Enabled        bool   `toml:"Enabled"`
	BrokerUrl      string `toml:"BrokerUrl"`
	ClientId       string `toml:"ClientId"`
	AlertTopic     string `toml:"AlertTopic"`
	TelemetryTopic string `toml:"TelemetryTopic"`
	QoS            byte   `toml:"QoS"`
	Username       string `toml:"Username"`
	Password       string `toml:"Password"`
}

// NatsConfig is the NATS alert sink.
type NatsConfig struct {
	Enabled bool   `toml:"Enabled"`
	Url     string `toml:"Url"`
	Subject string `toml:"Subject"`
}

// AlertsConfig tunes the alert router and its channels.
type AlertsConfig struct {
	QueueSize      int           `toml:"QueueSize"      validate:"gt=0"`
	MaxRetries     int           `toml:"MaxRetries"     validate:"gte=0"`
	RetryBaseMSecs int           `toml:"RetryBaseMSecs" validate:"gt=0"`
	Console        bool          `toml:"Console"`
	Webhook        WebhookConfig `toml:"Webhook"`
	Email          EmailConfig   `toml:"Email"`
	Mqtt           MqttConfig    `toml:"Mqtt"`
	Nats           NatsConfig    `toml:"Nats"`
}

// TelemetryConfig tunes metric reporting.
type TelemetryConfig struct {
	ReportIntervalSecs int `toml:"ReportIntervalSecs" validate:"gt=0"`
}

// AppConfig is the full agent configuration loaded from res/configuration.toml.
// The equipment catalog (types, thresholds, instances) rides in the same file
// so one document describes a complete deployment.
type AppConfig struct {
	Service    ServiceConfig               `toml:"Service"    validate:"required"`
	Monitoring MonitoringConfig            `toml:"Monitoring" validate:"required"`
	Inference  InferenceConfig             `toml:"Inference"`
	Security   SecurityConfig              `toml:"Security"   validate:"required"`
	Alerts     AlertsConfig                `toml:"Alerts"     validate:"required"`
	Telemetry  TelemetryConfig             `toml:"Telemetry"`
	Types      []dto.EquipmentType         `toml:"EquipmentTypes" validate:"min=1,dive"`
	Thresholds map[string]dto.ThresholdProfile `toml:"Thresholds"`
	Equipment  []dto.EquipmentInstance     `toml:"Equipment"  validate:"dive"`
}

// Load reads and validates the TOML configuration file. Every validation
// failure is collected so a broken file reports all its problems at once.
func Load(configFilePath string) (*AppConfig, premonitorErrors.PremonitorError) {
	tree, err := toml.LoadFile(configFilePath)
	if err != nil {
		return nil, premonitorErrors.NewCommonPremonitorError(premonitorErrors.ErrorTypeConfig,
			fmt.Sprintf("failed to load configuration file %s: %v", configFilePath, err))
	}

	cfg := defaultConfig()
	if err := tree.Unmarshal(cfg); err != nil {
		return nil, premonitorErrors.NewCommonPremonitorError(premonitorErrors.ErrorTypeConfig,
			fmt.Sprintf("failed to parse configuration file %s: %v", configFilePath, err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints plus the cross references the
// validator tags cannot express.
func (cfg *AppConfig) Validate() premonitorErrors.PremonitorError {
	var errs error

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				errs = multierror.Append(errs, fmt.Errorf("field %s failed on '%s'", ve.Namespace(), ve.Tag()))
			}
		} else {
			errs = multierror.Append(errs, err)
		}
	}

	typeIds := make(map[string]bool, len(cfg.Types))
	for _, et := range cfg.Types {
		if typeIds[et.Id] {
			errs = multierror.Append(errs, fmt.Errorf("duplicate equipment type '%s'", et.Id))
		}
		typeIds[et.Id] = true
	}
	for _, eq := range cfg.Equipment {
		if !typeIds[eq.Type] {
			errs = multierror.Append(errs, fmt.Errorf("equipment '%s' references unknown type '%s'", eq.Id, eq.Type))
		}
	}
	for profileType := range cfg.Thresholds {
		if !typeIds[profileType] {
			errs = multierror.Append(errs, fmt.Errorf("threshold profile for unknown type '%s'", profileType))
		}
	}
	if _, ok := cfg.Thresholds[dto.DefaultThresholdProfileType]; !ok {
		errs = multierror.Append(errs, fmt.Errorf("missing fallback threshold profile '%s'", dto.DefaultThresholdProfileType))
	}

	if errs != nil {
		return premonitorErrors.NewCommonPremonitorError(premonitorErrors.ErrorTypeConfig, errs.Error())
	}
	return nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Service: ServiceConfig{
			Name:            "premonitor-agent",
			LogLevel:        "INFO",
			Port:            48090,
			ControllerId:    "edge-controller-01",
			ActivityLogPath: "security_activity.jsonl",
		},
		Monitoring: MonitoringConfig{
			IntervalSecs:         10,
			AdaptiveMinSecs:      2,
			AdaptiveMaxSecs:      60,
			WindowSize:           50,
			SnapshotIntervalSecs: 300,
		},
		Inference: InferenceConfig{
			TimeoutSecs:          5,
			DegradationThreshold: 0.35,
		},
		Security: SecurityConfig{
			MotionCooldownSecs:   300,
			TamperRateCeiling:    5.0,
			VibrationTamperG:     2.0,
			BusinessHoursStart:   "08:00",
			BusinessHoursEnd:     "18:00",
			TamperBaselineTTLMin: 60,
		},
		Alerts: AlertsConfig{
			QueueSize:      100,
			MaxRetries:     3,
			RetryBaseMSecs: 500,
			Console:        true,
		},
		Telemetry: TelemetryConfig{
			ReportIntervalSecs: 30,
		},
	}
}
