package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/taskhive/backend/internal/middleware"
	"github.com/taskhive/backend/internal/services"
	"github.com/taskhive/backend/pkg/response"
)

// maxPhotoSize caps profile photo uploads at 5 MB.
const maxPhotoSize = 5 << 20

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(db *gorm.DB, uploadDir string) *ProfileHandler {
	return &ProfileHandler{
		profileService: services.NewProfileService(db, uploadDir),
	}
}

// Get returns the caller's profile, creating an empty one on first access
// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.GetOrCreate(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}

// Update writes profile fields and propagates name/email to the user record
// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profileService.Update(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}

// UploadPhoto stores a profile photo
// POST /api/profile/photo
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		response.BadRequest(c, "photo file required")
		return
	}
	if file.Size > maxPhotoSize {
		response.BadRequest(c, "photo must not exceed 5MB")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	defer src.Close()

	name, err := h.profileService.SavePhoto(middleware.GetUserID(c), file.Filename, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"photo": name})
}
