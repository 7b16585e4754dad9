package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/taskhive/backend/internal/models"
)

func seedLog(t *testing.T, db *gorm.DB, message string, age time.Duration) {
	t.Helper()
	entry := &models.SystemLog{
		Level:     "info",
		Module:    "auth",
		Action:    "login",
		Message:   message,
		CreatedAt: time.Now().Add(-age),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to seed log: %v", err)
	}
}

func TestCleanupOldLogs_RemovesExpiredRows(t *testing.T) {
	db := newTestDB(t)
	seedLog(t, db, "stale", 60*24*time.Hour)
	seedLog(t, db, "fresh", 24*time.Hour)

	svc := NewSystemLogService(db)
	deleted, err := svc.CleanupOldLogs(30)
	if err != nil {
		t.Fatalf("CleanupOldLogs returned error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	var remaining []models.SystemLog
	if err := db.Find(&remaining).Error; err != nil {
		t.Fatalf("failed to load logs: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Message != "fresh" {
		t.Errorf("only the fresh entry should survive, got %v", remaining)
	}
}

func TestCleanupOldLogs_DisabledRetention(t *testing.T) {
	db := newTestDB(t)
	seedLog(t, db, "stale", 365*24*time.Hour)

	svc := NewSystemLogService(db)
	deleted, err := svc.CleanupOldLogs(0)
	if err != nil {
		t.Fatalf("CleanupOldLogs returned error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("retention 0 must not delete anything, deleted = %d", deleted)
	}
}

func TestStartLogCleanupScheduler_RunsImmediately(t *testing.T) {
	db := newTestDB(t)
	seedLog(t, db, "stale", 60*24*time.Hour)

	StartLogCleanupScheduler(db, 30)
	defer StopLogCleanupScheduler()

	var count int64
	if err := db.Model(&models.SystemLog{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count logs: %v", err)
	}
	if count != 0 {
		t.Errorf("startup cleanup should have removed the stale entry, count = %d", count)
	}
}
