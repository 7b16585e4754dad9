package services

import (
	"testing"

	"github.com/taskhive/backend/internal/models"
)

func TestProfileGetOrCreate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")

	svc := NewProfileService(db, t.TempDir())

	first, err := svc.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("first GetOrCreate returned error: %v", err)
	}
	second, err := svc.GetOrCreate(user.ID)
	if err != nil {
		t.Fatalf("second GetOrCreate returned error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("repeated calls should return the same profile, got %d then %d", first.ID, second.ID)
	}
	if second.User == nil || second.User.Username != "alice" {
		t.Error("profile should come back with its user loaded")
	}

	var count int64
	err = db.Model(&models.UserProfile{}).Where("user_id = ?", user.ID).Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count profiles: %v", err)
	}
	if count != 1 {
		t.Errorf("user should have exactly one profile row, got %d", count)
	}
}

func TestProfileUpdate_PropagatesIdentity(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "bob")

	svc := NewProfileService(db, t.TempDir())

	firstName := "Bob"
	email := "bob@example.com"
	phone := "555-0100"
	profile, err := svc.Update(user.ID, &UpdateProfileRequest{
		FirstName: &firstName,
		Email:     &email,
		Phone:     &phone,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if profile.Phone != phone {
		t.Errorf("profile phone = %q, want %q", profile.Phone, phone)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.FirstName != firstName {
		t.Errorf("user first name = %q, want %q", stored.FirstName, firstName)
	}
	if stored.Email != email {
		t.Errorf("user email = %q, want %q", stored.Email, email)
	}
}
