package services

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskhive/backend/internal/models"
	"github.com/taskhive/backend/pkg/response"
)

type ProfileService struct {
	db        *gorm.DB
	uploadDir string
}

func NewProfileService(db *gorm.DB, uploadDir string) *ProfileService {
	return &ProfileService{db: db, uploadDir: uploadDir}
}

type UpdateProfileRequest struct {
	Phone      *string `json:"phone"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Bio        *string `json:"bio"`
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
}

// GetOrCreate returns the user's profile, creating an empty one on first
// access. The insert ignores conflicts on the unique user_id index, so two
// concurrent first accesses converge on the same row.
func (s *ProfileService) GetOrCreate(userID uint) (*models.UserProfile, error) {
	blank := models.UserProfile{UserID: userID}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&blank).Error
	if err != nil && !isUniqueViolation(err) {
		return nil, err
	}

	var profile models.UserProfile
	err = s.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("profile not found")
		}
		return nil, err
	}
	return &profile, nil
}

// Update writes profile fields and propagates the identity fields
// (first/last name, email) into the user record. Both writes happen in one
// transaction: either all of it commits or none of it does.
func (s *ProfileService) Update(userID uint, req *UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	profileUpdates := make(map[string]interface{})
	if req.Phone != nil {
		profileUpdates["phone"] = *req.Phone
	}
	if req.Role != nil {
		profileUpdates["role"] = *req.Role
	}
	if req.Department != nil {
		profileUpdates["department"] = *req.Department
	}
	if req.Bio != nil {
		profileUpdates["bio"] = *req.Bio
	}

	userUpdates := make(map[string]interface{})
	if req.FirstName != nil {
		userUpdates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		userUpdates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		userUpdates["email"] = *req.Email
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(profileUpdates) > 0 {
			if err := tx.Model(&models.UserProfile{}).
				Where("id = ?", profile.ID).
				Updates(profileUpdates).Error; err != nil {
				return err
			}
		}
		if len(userUpdates) > 0 {
			if err := tx.Model(&models.User{}).
				Where("id = ?", userID).
				Updates(userUpdates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrCreate(userID)
}

// SavePhoto stores an uploaded profile photo under a generated name and
// records it on the profile. Returns the stored file name.
func (s *ProfileService) SavePhoto(userID uint, originalName string, src io.Reader) (string, error) {
	profile, err := s.GetOrCreate(userID)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(originalName)
	name := uuid.New().String() + ext

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(s.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	err = s.db.Model(&models.UserProfile{}).
		Where("id = ?", profile.ID).
		Update("photo", name).Error
	if err != nil {
		return "", err
	}
	return name, nil
}
