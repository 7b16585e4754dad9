package services

import (
	"gorm.io/gorm"

	"github.com/taskhive/backend/internal/models"
)

// memberProjectIDs builds a subquery of project IDs the user is a member of.
func memberProjectIDs(db *gorm.DB, userID uint) *gorm.DB {
	return db.Table("project_members").
		Select("project_id").
		Where("user_id = ?", userID)
}

// ScopeVisibleProjects restricts a project query to what the user may see:
// projects they own or are a member of. Membership goes through a subquery,
// so a user who is both owner and member still yields each project once.
func ScopeVisibleProjects(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"projects.owner_id = ? OR projects.id IN (?)",
			userID,
			memberProjectIDs(db.Session(&gorm.Session{NewDB: true}), userID),
		)
	}
}

// ScopeVisibleTasks restricts a task query to tasks the user is assigned to
// or tasks in projects the user is a member of.
func ScopeVisibleTasks(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"tasks.assignee_id = ? OR tasks.project_id IN (?)",
			userID,
			memberProjectIDs(db.Session(&gorm.Session{NewDB: true}), userID),
		)
	}
}

// IsProjectOwner reports whether the user owns the project. Only owners may
// modify or delete a project.
func IsProjectOwner(project *models.Project, userID uint) bool {
	return project.OwnerID != nil && *project.OwnerID == userID
}

// CanViewProject reports whether the project exists within the user's
// visibility scope.
func CanViewProject(db *gorm.DB, projectID, userID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Project{}).
		Scopes(ScopeVisibleProjects(userID)).
		Where("projects.id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CanMutateTask reports whether the user may modify or delete the task.
// Task mutation follows project visibility: anyone who can see the task's
// project can change its tasks.
func CanMutateTask(db *gorm.DB, task *models.Task, userID uint) (bool, error) {
	return CanViewProject(db, task.ProjectID, userID)
}
