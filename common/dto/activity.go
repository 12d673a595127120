/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package dto

// Security activity event types as written to the activity log.
const (
	ACTIVITY_MOTION      = "motion_detected"
	ACTIVITY_TAMPER      = "tamper_suspected"
	ACTIVITY_VIBRATION   = "vibration_spike"
	ACTIVITY_AFTER_HOURS = "after_hours_access"
	ACTIVITY_ROUTINE     = "routine_monitoring"
)

// ActivityLogEntry is one line of the append-only security activity log.
// Entries are serialized as JSON, one object per line.
type ActivityLogEntry struct {
	Timestamp   string            `json:"timestamp"`
	EventType   string            `json:"event_type"`
	EquipmentId string            `json:"equipment_id"`
	Details     map[string]string `json:"details,omitempty"`
	AfterHours  bool              `json:"after_hours"`
}
