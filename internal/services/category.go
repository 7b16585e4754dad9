package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/taskhive/backend/internal/models"
	"github.com/taskhive/backend/pkg/response"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CategoryListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
}

type CategoryListResponse struct {
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Items    []models.Category `json:"items"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

// List returns categories ordered by name. Categories are global, so there
// is no per-user scoping here.
func (s *CategoryService) List(req *CategoryListRequest) (*CategoryListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Category{})
	if req.Search != "" {
		pattern := searchPattern(req.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var categories []models.Category
	offset := (req.Page - 1) * req.PageSize
	err := query.Order("name ASC").Offset(offset).Limit(req.PageSize).Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return &CategoryListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    categories,
	}, nil
}

func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("category not found")
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Create(req *CreateCategoryRequest) (*models.Category, error) {
	if err := validateColor(req.Color); err != nil {
		return nil, err
	}

	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	if category.Color == "" {
		category.Color = "#007bff"
	}

	if err := s.db.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, response.NewConflict("a category with this name already exists")
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(id uint, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Color != "" {
		if err := validateColor(req.Color); err != nil {
			return nil, err
		}
		updates["color"] = req.Color
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, response.NewConflict("a category with this name already exists")
			}
			return nil, err
		}
	}
	return category, nil
}

// Delete removes a category and detaches it from all tasks.
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
}

func validateColor(color string) error {
	if color == "" {
		return nil
	}
	if len(color) != 7 || color[0] != '#' {
		return response.NewValidation("invalid category", map[string]string{
			"color": "expected a hex color like #007bff",
		})
	}
	for _, c := range color[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return response.NewValidation("invalid category", map[string]string{
				"color": "expected a hex color like #007bff",
			})
		}
	}
	return nil
}

// isUniqueViolation detects duplicate-key errors across the supported drivers.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
