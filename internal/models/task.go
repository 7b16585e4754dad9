package models

import "time"

// Task status values
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"
)

// Task priority values
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// TaskStatuses lists every valid task status.
var TaskStatuses = []string{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

// TaskPriorities lists every valid task priority, lowest first.
var TaskPriorities = []string{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
	TaskPriorityUrgent,
}

// Task belongs to exactly one project and is deleted with it. The assignee
// reference is nullified when the assigned user is deleted.
type Task struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Title          string     `gorm:"size:200;not null" json:"title"`
	Description    string     `gorm:"type:text" json:"description"`
	Status         string     `gorm:"size:20;default:pending;index" json:"status"`
	Priority       string     `gorm:"size:20;default:medium;index" json:"priority"`
	ProjectID      uint       `gorm:"index;not null" json:"project_id"`
	Project        *Project   `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	AssigneeID     *uint      `gorm:"index" json:"assignee_id"`
	Assignee       *User      `gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL" json:"assignee,omitempty"`
	Categories     []Category `gorm:"many2many:task_categories" json:"categories,omitempty"`
	DueDate        *time.Time `gorm:"index" json:"due_date"` // calendar date, normalized to midnight UTC
	CompletedAt    *time.Time `json:"completed_at"`
	EstimatedHours *float64   `json:"estimated_hours"`
	WorkedHours    float64    `gorm:"default:0" json:"worked_hours"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }

// IsOverdue reports whether the task's due date has passed as of today.
// Completed tasks are never overdue, whatever their due date.
func (t *Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return DateOnly(today).After(DateOnly(*t.DueDate))
}

// DateOnly truncates a time to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidTaskPriority reports whether p is a known task priority.
func ValidTaskPriority(p string) bool {
	for _, v := range TaskPriorities {
		if v == p {
			return true
		}
	}
	return false
}
