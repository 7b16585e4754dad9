package models

import (
	"testing"
)

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		name      string
		completed int64
		total     int64
		want      int
	}{
		{"no tasks", 0, 0, 0},
		{"none completed", 0, 5, 0},
		{"one of four", 1, 4, 25},
		{"two of three rounds down", 2, 3, 66},
		{"all completed", 4, 4, 100},
		{"one of six rounds down", 1, 6, 16},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProgressPercent(tc.completed, tc.total)
			if got != tc.want {
				t.Errorf("ProgressPercent(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
			}
		})
	}
}

func TestComputeProgress(t *testing.T) {
	p := Project{TaskCount: 4, CompletedTaskCount: 1}
	p.ComputeProgress()
	if p.ProgressPercent != 25 {
		t.Errorf("ProgressPercent = %d, want 25", p.ProgressPercent)
	}

	empty := Project{}
	empty.ComputeProgress()
	if empty.ProgressPercent != 0 {
		t.Errorf("ProgressPercent without tasks = %d, want 0", empty.ProgressPercent)
	}
}

func TestValidProjectStatus(t *testing.T) {
	valid := []string{
		ProjectStatusPlanning,
		ProjectStatusInProgress,
		ProjectStatusCompleted,
		ProjectStatusCancelled,
	}
	for _, s := range valid {
		if !ValidProjectStatus(s) {
			t.Errorf("ValidProjectStatus(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "done", "archived", "PLANNING"}
	for _, s := range invalid {
		if ValidProjectStatus(s) {
			t.Errorf("ValidProjectStatus(%q) = true, want false", s)
		}
	}
}
