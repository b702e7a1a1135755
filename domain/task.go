package domain

import (
	"strings"
	"time"
)

// TaskStatus enumerates the allowed lifecycle states of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// ValidStatus reports whether s is one of the three allowed values.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task represents a trackable unit of work.
//
// StartTime, FinishBy and DueDate are client-supplied timestamp strings
// stored verbatim; they are only interpreted (leniently) by the time-based
// status rules. Overdue is transient state owned by those rules and is never
// set directly by clients.
type Task struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          TaskStatus `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	StartTime       *string    `json:"startTime,omitempty"`
	FinishBy        *string    `json:"finishBy,omitempty"`
	DueDate         *string    `json:"dueDate,omitempty"`
	ReminderEnabled bool       `json:"reminderEnabled"`
	Overdue         bool       `json:"overdue,omitempty"`
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == StatusCompleted
}

// EnrichedTask is a Task plus read-only summary fields derived from its notes.
type EnrichedTask struct {
	Task
	NotesCount int     `json:"notesCount"`
	LatestNote *string `json:"latestNote,omitempty"`
}

// RefreshStatus applies the time-based status rules against now and reports
// whether the task changed. Completed tasks are never touched.
//
// Rules, in order:
//  1. a parseable FinishBy strictly before now marks the task pending and
//     overdue;
//  2. a parseable StartTime at or before now promotes a pending task to
//     in-progress.
//
// Malformed timestamps are ignored for the rule they belong to. The pass is
// idempotent: with the same now, a second run is a no-op.
func (t *Task) RefreshStatus(now time.Time) bool {
	if t == nil || t.Status == StatusCompleted {
		return false
	}

	before := *t

	if t.FinishBy != nil {
		if fb, ok := ParseClientTime(*t.FinishBy); ok && fb.Before(now) {
			t.Status = StatusPending
			t.Overdue = true
		}
	}

	if t.StartTime != nil && t.Status == StatusPending {
		if st, ok := ParseClientTime(*t.StartTime); ok && !st.After(now) {
			t.Status = StatusInProgress
		}
	}

	return *t != before
}

// clientTimeLayouts covers RFC 3339 plus the offset-less forms browsers emit
// (datetime-local inputs, bare dates). Offset-less values are read as UTC.
var clientTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseClientTime parses a client-supplied timestamp string. The boolean is
// false when the value is blank or matches no known layout.
func ParseClientTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range clientTimeLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
