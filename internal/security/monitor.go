/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package security

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/jellydator/ttlcache/v3"
	gocache "github.com/patrickmn/go-cache"

	"premonitor/common/dto"
	"premonitor/common/utils"
	"premonitor/internal/config"
)

// tamperBaseline is the last observed temperature per equipment, used for the
// rate-of-change tamper check.
type tamperBaseline struct {
	Temperature float64
	Timestamp   time.Time
}

// Monitor covers the physical-security concerns of the agent: motion with a
// per-equipment cooldown, tamper detection from vibration spikes and rapid
// temperature change, and after-hours awareness. All detections are recorded
// in the activity log whether or not they raise an alert.
type Monitor struct {
	lc          logger.LoggingClient
	cfg         config.SecurityConfig
	activityLog *ActivityLog
	cooldowns   *ttlcache.Cache[string, time.Time]
	baselines   *gocache.Cache
	now         func() time.Time
}

func NewMonitor(lc logger.LoggingClient, cfg config.SecurityConfig, activityLog *ActivityLog) *Monitor {
	cooldown := time.Duration(cfg.MotionCooldownSecs) * time.Second
	baselineTTL := time.Duration(cfg.TamperBaselineTTLMin) * time.Minute

	m := &Monitor{
		lc:          lc,
		cfg:         cfg,
		activityLog: activityLog,
		cooldowns: ttlcache.New[string, time.Time](
			ttlcache.WithTTL[string, time.Time](cooldown),
			ttlcache.WithDisableTouchOnHit[string, time.Time](),
		),
		baselines: gocache.New(baselineTTL, 2*baselineTTL),
		now:       time.Now,
	}
	go m.cooldowns.Start()
	return m
}

// Stop releases the cooldown cache's expiry goroutine.
func (m *Monitor) Stop() {
	m.cooldowns.Stop()
}

// IsAfterHours reports whether the current time falls outside business hours.
// Weekends are always after-hours; a malformed schedule fails open to
// business hours so a config typo cannot flood after-hours alerts.
func (m *Monitor) IsAfterHours() bool {
	now := m.now()
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return true
	}

	start, err1 := time.Parse("15:04", m.cfg.BusinessHoursStart)
	end, err2 := time.Parse("15:04", m.cfg.BusinessHoursEnd)
	if err1 != nil || err2 != nil {
		m.lc.Errorf("error parsing business hours '%s'-'%s'", m.cfg.BusinessHoursStart, m.cfg.BusinessHoursEnd)
		return false
	}

	cur := now.Hour()*60 + now.Minute()
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	return cur < startMin || cur > endMin
}

// CheckMotion handles one motion sample. Every detection is logged; an alert
// is only raised when the equipment is not in its cooldown window, so a person
// working near a unit produces one alert per window rather than one per cycle.
func (m *Monitor) CheckMotion(eq dto.EquipmentInstance, snapshot dto.SensorSnapshot) *dto.AnomalyEvent {
	if snapshot.Motion == nil || !*snapshot.Motion {
		return nil
	}

	afterHours := m.IsAfterHours()
	details := map[string]string{"location": eq.Location}
	// a thermal frame captured alongside the motion sample is the closest thing
	// to a photo of whoever triggered it
	var thermalMean float64
	hasThermal := false
	if reading, ok := snapshot.Readings[dto.CapabilityThermal]; ok && len(reading.Series) > 0 {
		thermalMean = utils.Mean(reading.Series)
		hasThermal = true
		details["thermal_mean_c"] = fmt.Sprintf("%.1f", thermalMean)
	}
	m.logActivity(dto.ACTIVITY_MOTION, eq.Id, details, afterHours)
	if afterHours {
		m.logActivity(dto.ACTIVITY_AFTER_HOURS, eq.Id, map[string]string{
			"location": eq.Location,
		}, true)
	}

	if m.cooldowns.Has(eq.Id) {
		m.lc.Debugf("motion at %s suppressed, cooldown active", eq.Id)
		return nil
	}
	m.cooldowns.Set(eq.Id, m.now(), ttlcache.DefaultTTL)

	severity := dto.SEVERITY_WARNING
	msg := fmt.Sprintf("motion detected near %s during business hours", eq.Id)
	if afterHours {
		severity = dto.SEVERITY_CRITICAL
		msg = fmt.Sprintf("motion detected near %s AFTER HOURS", eq.Id)
	}
	m.lc.Warnf("MOTION DETECTED at %s (after_hours=%v)", eq.Id, afterHours)

	ev := &dto.AnomalyEvent{
		Type:          dto.ANOMALY_MOTION,
		EquipmentId:   eq.Id,
		EquipmentName: eq.Name,
		Location:      eq.Location,
		Name:          fmt.Sprintf("%s/%s", eq.Id, dto.ANOMALY_MOTION),
		Msg:           msg,
		Severity:      severity,
		Created:       m.now().UnixMilli(),
	}
	if hasThermal {
		ev.ActualValues = map[string]float64{"thermal_mean_c": thermalMean}
	}
	return ev
}

// LogRoutineRead records a routine monitoring visit in the activity log when
// the deployment wants a full audit trail, not just anomalies.
func (m *Monitor) LogRoutineRead(eq dto.EquipmentInstance, snapshot dto.SensorSnapshot) {
	if !m.cfg.LogAllAccess {
		return
	}
	sensors := make([]string, 0, len(snapshot.Readings))
	for capability := range snapshot.Readings {
		sensors = append(sensors, capability)
	}
	sort.Strings(sensors)
	m.logActivity(dto.ACTIVITY_ROUTINE, eq.Id, map[string]string{
		"sensors_read": strings.Join(sensors, ","),
	}, m.IsAfterHours())
}

// CheckTamper runs the two tamper indicators against the snapshot. The
// temperature baseline is updated unconditionally after the check, last-value
// semantics, so the next cycle always compares against this one.
func (m *Monitor) CheckTamper(eq dto.EquipmentInstance, snapshot dto.SensorSnapshot) []dto.AnomalyEvent {
	events := make([]dto.AnomalyEvent, 0)
	now := m.now()
	afterHours := m.IsAfterHours()

	if reading, ok := snapshot.Readings[dto.CapabilityVibration]; ok && reading.Scalar != nil {
		vib := *reading.Scalar
		if vib >= m.cfg.VibrationTamperG {
			m.logActivity(dto.ACTIVITY_VIBRATION, eq.Id, map[string]string{
				"vibration_g": fmt.Sprintf("%.2f", vib),
			}, afterHours)
			events = append(events, dto.AnomalyEvent{
				Type:          dto.ANOMALY_TAMPER,
				EquipmentId:   eq.Id,
				EquipmentName: eq.Name,
				Location:      eq.Location,
				Metric:        dto.CapabilityVibration,
				Name:          fmt.Sprintf("%s/%s", eq.Id, dto.ANOMALY_TAMPER),
				Msg:           fmt.Sprintf("equipment experienced %.2fG vibration (possible physical tampering)", vib),
				Severity:      dto.SEVERITY_CRITICAL,
				ActualValues:  map[string]float64{dto.CapabilityVibration: vib},
				Thresholds:    map[string]float64{"vibration_tamper_g": m.cfg.VibrationTamperG},
				Created:       now.UnixMilli(),
			})
		}
	}

	if reading, ok := snapshot.Readings[dto.CapabilityTemperature]; ok && reading.Scalar != nil {
		cur := *reading.Scalar
		if prev, found := m.baselines.Get(eq.Id); found {
			baseline := prev.(tamperBaseline)
			minutes := now.Sub(baseline.Timestamp).Minutes()
			if minutes > 0 {
				rate := abs(cur-baseline.Temperature) / minutes
				if rate > m.cfg.TamperRateCeiling {
					m.logActivity(dto.ACTIVITY_TAMPER, eq.Id, map[string]string{
						"rate_c_per_min": fmt.Sprintf("%.2f", rate),
					}, afterHours)
					events = append(events, dto.AnomalyEvent{
						Type:          dto.ANOMALY_TAMPER,
						EquipmentId:   eq.Id,
						EquipmentName: eq.Name,
						Location:      eq.Location,
						Metric:        dto.CapabilityTemperature,
						Name:          fmt.Sprintf("%s/%s", eq.Id, dto.ANOMALY_TAMPER),
						Msg:           fmt.Sprintf("temperature changing at %.2fC/min (possible door open/tampering)", rate),
						Severity:      dto.SEVERITY_MAJOR,
						ActualValues:  map[string]float64{"rate_c_per_min": rate},
						Thresholds:    map[string]float64{"tamper_rate_ceiling": m.cfg.TamperRateCeiling},
						Created:       now.UnixMilli(),
					})
				}
			}
		}
		m.baselines.Set(eq.Id, tamperBaseline{Temperature: cur, Timestamp: now}, gocache.DefaultExpiration)
	}

	return events
}

// Status summarizes the monitor's live state for the status API.
func (m *Monitor) Status() map[string]interface{} {
	return map[string]interface{}{
		"after_hours":             m.IsAfterHours(),
		"active_cooldowns":        m.cooldowns.Len(),
		"tracked_baselines":       m.baselines.ItemCount(),
		"motion_cooldown_seconds": m.cfg.MotionCooldownSecs,
	}
}

func (m *Monitor) logActivity(eventType, equipmentId string, details map[string]string, afterHours bool) {
	if m.activityLog == nil {
		return
	}
	_ = m.activityLog.Append(dto.ActivityLogEntry{
		Timestamp:   m.now().Format(time.RFC3339),
		EventType:   eventType,
		EquipmentId: equipmentId,
		Details:     details,
		AfterHours:  afterHours,
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
