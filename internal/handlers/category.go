package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/taskhive/backend/internal/services"
	"github.com/taskhive/backend/pkg/response"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{
		categoryService: services.NewCategoryService(db),
	}
}

// List returns paginated categories
// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	var req services.CategoryListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.categoryService.List(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID returns a category by ID
// GET /api/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, err := parseID(c, "invalid category id")
	if err != nil {
		return
	}

	category, err := h.categoryService.GetByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, category)
}

// Create creates a new category
// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, category)
}

// Update updates a category
// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := parseID(c, "invalid category id")
	if err != nil {
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Update(id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, category)
}

// Delete deletes a category and detaches it from tasks
// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "invalid category id")
	if err != nil {
		return
	}

	if err := h.categoryService.Delete(id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "category deleted successfully"})
}
