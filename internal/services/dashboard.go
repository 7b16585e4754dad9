package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/taskhive/backend/internal/models"
)

type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	TotalProjects  int64            `json:"total_projects"`
	TotalTasks     int64            `json:"total_tasks"`
	PendingTasks   int64            `json:"pending_tasks"`
	OverdueTasks   int64            `json:"overdue_tasks"`
	RecentProjects []models.Project `json:"recent_projects"`
	UrgentTasks    []models.Task    `json:"urgent_tasks"`
}

// urgentPriorityRank orders urgent before high (and, defensively, the rest
// below) when sorting the urgent-task list.
const urgentPriorityRank = "CASE tasks.priority WHEN 'urgent' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"

// GetStats computes the per-user dashboard. Every count and list is limited
// to the user's visibility scope; today is taken as a calendar date.
func (s *DashboardService) GetStats(userID uint, today time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := s.db.Model(&models.Project{}).
		Scopes(ScopeVisibleProjects(userID)).
		Count(&stats.TotalProjects).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Task{}).
		Scopes(ScopeVisibleTasks(userID)).
		Count(&stats.TotalTasks).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Task{}).
		Scopes(ScopeVisibleTasks(userID)).
		Where("status = ?", models.TaskStatusPending).
		Count(&stats.PendingTasks).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Task{}).
		Scopes(ScopeVisibleTasks(userID)).
		Where("status IN ?", []string{models.TaskStatusPending, models.TaskStatusInProgress}).
		Where("due_date < ?", models.DateOnly(today)).
		Count(&stats.OverdueTasks).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Project{}).
		Scopes(ScopeVisibleProjects(userID)).
		Order("created_at DESC").
		Limit(5).
		Find(&stats.RecentProjects).Error
	if err != nil {
		return nil, err
	}

	// Urgent before high, then nearest due date; tasks without a due date
	// sort after tasks with one.
	err = s.db.Model(&models.Task{}).
		Scopes(ScopeVisibleTasks(userID)).
		Where("priority IN ?", []string{models.TaskPriorityHigh, models.TaskPriorityUrgent}).
		Where("status IN ?", []string{models.TaskStatusPending, models.TaskStatusInProgress}).
		Preload("Project").
		Order(urgentPriorityRank).
		Order("(tasks.due_date IS NULL)").
		Order("tasks.due_date ASC").
		Limit(10).
		Find(&stats.UrgentTasks).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
