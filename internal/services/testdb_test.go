package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskhive/backend/internal/models"
)

// newTestDB opens a per-test in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Category{},
		&models.Project{},
		&models.Task{},
		&models.RefreshToken{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Role: "user", IsActive: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createProject(t *testing.T, db *gorm.DB, name string, owner *models.User, members ...*models.User) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:      name,
		Status:    models.ProjectStatusInProgress,
		OwnerID:   &owner.ID,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project %s: %v", name, err)
	}
	for _, m := range members {
		if err := db.Model(project).Association("Members").Append(m); err != nil {
			t.Fatalf("failed to add member to %s: %v", name, err)
		}
	}
	return project
}

func createTask(t *testing.T, db *gorm.DB, project *models.Project, title, status, priority string, assignee *models.User, dueDate *time.Time) *models.Task {
	t.Helper()
	task := &models.Task{
		Title:     title,
		Status:    status,
		Priority:  priority,
		ProjectID: project.ID,
		DueDate:   dueDate,
	}
	if assignee != nil {
		task.AssigneeID = &assignee.ID
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create task %s: %v", title, err)
	}
	return task
}
