package security

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"premonitor/common/dto"
)

func entryAt(ts time.Time, eventType string) dto.ActivityLogEntry {
	return dto.ActivityLogEntry{
		Timestamp:   ts.Format(time.RFC3339),
		EventType:   eventType,
		EquipmentId: "fridge-001",
		Details:     map[string]string{"location": "Lab A"},
	}
}

func TestActivityLog_AppendAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "activity.jsonl")
	log, err := NewActivityLog(new(logger.MockLogger), path)
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, log.Append(entryAt(now, dto.ACTIVITY_MOTION)))
	require.NoError(t, log.Append(entryAt(now, dto.ACTIVITY_TAMPER)))

	entries, err := log.RecentActivity(24)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, dto.ACTIVITY_MOTION, entries[0].EventType)
	assert.Equal(t, dto.ACTIVITY_TAMPER, entries[1].EventType)
}

func TestActivityLog_RecentActivityFiltersByAge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.jsonl")
	log, err := NewActivityLog(new(logger.MockLogger), path)
	require.NoError(t, err)

	require.NoError(t, log.Append(entryAt(time.Now().Add(-48*time.Hour), dto.ACTIVITY_MOTION)))
	require.NoError(t, log.Append(entryAt(time.Now(), dto.ACTIVITY_TAMPER)))

	entries, err := log.RecentActivity(24)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, dto.ACTIVITY_TAMPER, entries[0].EventType)
}

func TestActivityLog_MissingFileIsEmpty(t *testing.T) {
	log, err := NewActivityLog(new(logger.MockLogger), filepath.Join(t.TempDir(), "never-written.jsonl"))
	require.NoError(t, err)

	entries, err := log.RecentActivity(24)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestActivityLog_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.jsonl")
	log, err := NewActivityLog(new(logger.MockLogger), path)
	require.NoError(t, err)

	require.NoError(t, log.Append(entryAt(time.Now(), dto.ACTIVITY_MOTION)))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, log.Append(entryAt(time.Now(), dto.ACTIVITY_TAMPER)))

	entries, err := log.RecentActivity(24)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
