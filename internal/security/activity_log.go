/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/


package security

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"

	"premonitor/common/dto"
)

// ActivityLog is the append-only record of security and access events, one
// JSON object per line. Appends are serialized with a mutex so the log stays
// line-atomic if cycles ever run concurrently.
type ActivityLog struct {
	lc   logger.LoggingClient
	path string
	mu   sync.Mutex
}

func NewActivityLog(lc logger.LoggingClient, path string) (*ActivityLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create activity log directory %s", dir)
		}
	}
	return &ActivityLog{lc: lc, path: path}, nil
}

// Append writes one entry. Failures are logged and returned but never panic;
// losing an activity line must not take down monitoring.
func (a *ActivityLog) Append(entry dto.ActivityLogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "failed to marshal activity log entry")
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		a.lc.Errorf("failed to open activity log %s: %v", a.path, err)
		return errors.Wrapf(err, "failed to open activity log %s", a.path)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		a.lc.Errorf("failed to write to activity log: %v", err)
		return errors.Wrap(err, "failed to write to activity log")
	}

	a.lc.Infof("ACTIVITY LOG [%s] %s: %v", entry.EventType, entry.EquipmentId, entry.Details)
	return nil
}

// RecentActivity returns entries newer than the lookback window, oldest first.
// Unparseable lines are skipped, not fatal; a partially corrupt log should
// still yield what it can.
func (a *ActivityLog) RecentActivity(hours int) ([]dto.ActivityLogEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.Open(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []dto.ActivityLogEntry{}, nil
		}
		return nil, errors.Wrapf(err, "failed to open activity log %s", a.path)
	}
	defer f.Close()

	cutoff := time.Now().Add(-time.Duration(hours) * time.Hour)
	entries := make([]dto.ActivityLogEntry, 0)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry dto.ActivityLogEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			a.lc.Warnf("skipping malformed activity log line: %v", err)
			continue
		}
		ts, err := time.Parse(time.RFC3339, entry.Timestamp)
		if err != nil || ts.After(cutoff) {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read activity log")
	}
	return entries, nil
}
