package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRefreshStatusOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := &Task{
		Status:   StatusInProgress,
		FinishBy: strPtr(now.Add(-time.Hour).Format(time.RFC3339)),
	}

	changed := task.RefreshStatus(now)

	assert.True(t, changed)
	assert.Equal(t, StatusPending, task.Status)
	assert.True(t, task.Overdue)
}

func TestRefreshStatusStartPromotesPending(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := &Task{
		Status:    StatusPending,
		StartTime: strPtr(now.Add(-time.Minute).Format(time.RFC3339)),
	}

	require.True(t, task.RefreshStatus(now))
	assert.Equal(t, StatusInProgress, task.Status)
	assert.False(t, task.Overdue)
}

func TestRefreshStatusOverdueWinsOverStart(t *testing.T) {
	// An elapsed finishBy forces pending even when startTime would not
	// apply anymore; the start rule then re-promotes in the same pass.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := &Task{
		Status:    StatusInProgress,
		StartTime: strPtr(now.Add(-2 * time.Hour).Format(time.RFC3339)),
		FinishBy:  strPtr(now.Add(-time.Hour).Format(time.RFC3339)),
	}

	require.True(t, task.RefreshStatus(now))
	assert.Equal(t, StatusInProgress, task.Status)
	assert.True(t, task.Overdue)
}

func TestRefreshStatusSkipsCompleted(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := &Task{
		Status:   StatusCompleted,
		FinishBy: strPtr(now.Add(-time.Hour).Format(time.RFC3339)),
	}

	assert.False(t, task.RefreshStatus(now))
	assert.Equal(t, StatusCompleted, task.Status)
	assert.False(t, task.Overdue)
}

func TestRefreshStatusFutureDatesUntouched(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := &Task{
		Status:    StatusPending,
		StartTime: strPtr(now.Add(time.Hour).Format(time.RFC3339)),
		FinishBy:  strPtr(now.Add(2 * time.Hour).Format(time.RFC3339)),
	}

	assert.False(t, task.RefreshStatus(now))
	assert.Equal(t, StatusPending, task.Status)
}

func TestRefreshStatusMalformedTimestampsIgnored(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := &Task{
		Status:    StatusPending,
		StartTime: strPtr("not-a-date"),
		FinishBy:  strPtr("also wrong"),
	}

	assert.False(t, task.RefreshStatus(now))
	assert.Equal(t, StatusPending, task.Status)
	assert.False(t, task.Overdue)
}

func TestRefreshStatusIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	task := &Task{
		Status:   StatusInProgress,
		FinishBy: strPtr(now.Add(-time.Hour).Format(time.RFC3339)),
	}

	require.True(t, task.RefreshStatus(now))
	first := *task

	assert.False(t, task.RefreshStatus(now))
	assert.Equal(t, first, *task)
}

func TestParseClientTimeOffsetlessIsUTC(t *testing.T) {
	ts, ok := ParseClientTime("2026-03-10T09:30")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC), ts)

	ts, ok = ParseClientTime("2026-03-10")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), ts)
}

func TestParseClientTimeRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "  ", "tomorrow", "2026-13-45"} {
		_, ok := ParseClientTime(value)
		assert.False(t, ok, "value %q", value)
	}
}
