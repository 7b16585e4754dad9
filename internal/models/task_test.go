package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsOverdue(t *testing.T) {
	today := date(2026, 3, 15)
	yesterday := date(2026, 3, 14)
	tomorrow := date(2026, 3, 16)

	cases := []struct {
		name    string
		dueDate *time.Time
		status  string
		want    bool
	}{
		{"no due date", nil, TaskStatusPending, false},
		{"due yesterday pending", &yesterday, TaskStatusPending, true},
		{"due yesterday in progress", &yesterday, TaskStatusInProgress, true},
		{"due yesterday completed", &yesterday, TaskStatusCompleted, false},
		{"due yesterday cancelled", &yesterday, TaskStatusCancelled, true},
		{"due today", &today, TaskStatusPending, false},
		{"due tomorrow", &tomorrow, TaskStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := Task{DueDate: tc.dueDate, Status: tc.status}
			if got := task.IsOverdue(today); got != tc.want {
				t.Errorf("IsOverdue = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsOverdue_ComparesCalendarDates(t *testing.T) {
	// Late in the evening of the due date is still not overdue.
	due := date(2026, 3, 15)
	now := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)

	task := Task{DueDate: &due, Status: TaskStatusPending}
	if task.IsOverdue(now) {
		t.Error("task due today should not be overdue at 23:59")
	}

	nextMorning := time.Date(2026, 3, 16, 0, 1, 0, 0, time.UTC)
	if !task.IsOverdue(nextMorning) {
		t.Error("task should be overdue the morning after its due date")
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 7, 4, 18, 30, 45, 123, time.UTC)
	got := DateOnly(in)
	want := date(2026, 7, 4)
	if !got.Equal(want) {
		t.Errorf("DateOnly = %v, want %v", got, want)
	}
}

func TestValidTaskStatus(t *testing.T) {
	for _, s := range TaskStatuses {
		if !ValidTaskStatus(s) {
			t.Errorf("ValidTaskStatus(%q) = false, want true", s)
		}
	}
	if ValidTaskStatus("blocked") {
		t.Error("ValidTaskStatus(\"blocked\") = true, want false")
	}
	if ValidTaskStatus("") {
		t.Error("ValidTaskStatus(\"\") = true, want false")
	}
}

func TestValidTaskPriority(t *testing.T) {
	for _, p := range TaskPriorities {
		if !ValidTaskPriority(p) {
			t.Errorf("ValidTaskPriority(%q) = false, want true", p)
		}
	}
	if ValidTaskPriority("critical") {
		t.Error("ValidTaskPriority(\"critical\") = true, want false")
	}
}
