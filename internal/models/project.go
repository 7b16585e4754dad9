package models

import "time"

// Project status values
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []string{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

// Project is an owned container of tasks. The owner reference is nullified
// when the owning user is deleted; tasks are deleted with their project.
type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;default:planning;index" json:"status"`
	OwnerID     *uint      `gorm:"index" json:"owner_id"`
	Owner       *User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
	Members     []User     `gorm:"many2many:project_members" json:"members,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Derived, populated by the service layer
	TaskCount          int64 `gorm:"-" json:"task_count"`
	CompletedTaskCount int64 `gorm:"-" json:"completed_task_count"`
	ProgressPercent    int   `gorm:"-" json:"progress_percent"`
}

func (Project) TableName() string { return "projects" }

// ComputeProgress derives ProgressPercent from the task counters.
// Defined as 0 for projects without tasks.
func (p *Project) ComputeProgress() {
	p.ProgressPercent = ProgressPercent(p.CompletedTaskCount, p.TaskCount)
}

// ProgressPercent returns floor(100 * completed / total), 0 when total is 0.
func ProgressPercent(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(completed * 100 / total)
}

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	for _, v := range ProjectStatuses {
		if v == s {
			return true
		}
	}
	return false
}
