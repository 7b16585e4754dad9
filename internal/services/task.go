package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskhive/backend/internal/models"
	"github.com/taskhive/backend/pkg/response"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

var taskSortColumns = map[string]string{
	"title":      "title",
	"status":     "status",
	"priority":   "priority",
	"due_date":   "due_date",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type TaskListRequest struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status    string `form:"status"`
	Priority  string `form:"priority"`
	ProjectID uint   `form:"project_id"`
	Search    string `form:"search"`
	Sort      string `form:"sort"`
}

type TaskListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []models.Task `json:"items"`
}

type CreateTaskRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	ProjectID      uint     `json:"project_id" binding:"required"`
	AssigneeID     *uint    `json:"assignee_id"`
	CategoryIDs    []uint   `json:"category_ids"`
	DueDate        string   `json:"due_date"` // 2006-01-02
	EstimatedHours *float64 `json:"estimated_hours"`
	WorkedHours    *float64 `json:"worked_hours"`
}

type UpdateTaskRequest struct {
	Title          string   `json:"title"`
	Description    *string  `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	AssigneeID     *uint    `json:"assignee_id"` // 0 clears the assignee
	CategoryIDs    *[]uint  `json:"category_ids"`
	DueDate        *string  `json:"due_date"` // empty string clears the date
	EstimatedHours *float64 `json:"estimated_hours"`
	WorkedHours    *float64 `json:"worked_hours"`
}

// TaskOptions lists the candidate projects and assignees available to a user
// creating a task: visible projects, and owners/members of those projects.
type TaskOptions struct {
	Projects  []models.Project `json:"projects"`
	Assignees []models.User    `json:"assignees"`
}

// List returns the tasks visible to the user, filtered, ordered and paginated.
func (s *TaskService) List(userID uint, req *TaskListRequest) (*TaskListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 15
	}

	query := s.db.Model(&models.Task{}).Scopes(ScopeVisibleTasks(userID))

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Priority != "" {
		query = query.Where("priority = ?", req.Priority)
	}
	if req.ProjectID != 0 {
		query = query.Where("project_id = ?", req.ProjectID)
	}
	if req.Search != "" {
		pattern := searchPattern(req.Search)
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var tasks []models.Task
	offset := (req.Page - 1) * req.PageSize
	err := query.
		Preload("Project").
		Preload("Assignee").
		Preload("Categories").
		Order(orderClause(req.Sort, taskSortColumns, "created_at DESC")).
		Offset(offset).
		Limit(req.PageSize).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return &TaskListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    tasks,
	}, nil
}

// ListByProject returns all tasks of a project the user can view.
func (s *TaskService) ListByProject(userID, projectID uint) ([]models.Task, error) {
	ok, err := CanViewProject(s.db, projectID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewNotFound("project not found")
	}

	var tasks []models.Task
	err = s.db.Where("project_id = ?", projectID).
		Preload("Assignee").
		Preload("Categories").
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// GetByID returns a visible task. Out-of-scope ids look exactly like missing ids.
func (s *TaskService) GetByID(userID, id uint) (*models.Task, error) {
	var task models.Task
	err := s.db.Scopes(ScopeVisibleTasks(userID)).
		Preload("Project").
		Preload("Assignee").
		Preload("Categories").
		Where("tasks.id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}
	return &task, nil
}

// Options returns the project and assignee choices for task creation.
func (s *TaskService) Options(userID uint) (*TaskOptions, error) {
	var projects []models.Project
	err := s.db.Scopes(ScopeVisibleProjects(userID)).
		Order("name ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	visibleIDs := s.db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Project{}).
		Select("projects.id").
		Scopes(ScopeVisibleProjects(userID))

	var assignees []models.User
	err = s.db.Model(&models.User{}).
		Where("id IN (?) OR id IN (?)",
			s.db.Session(&gorm.Session{NewDB: true}).
				Model(&models.Project{}).
				Select("projects.owner_id").
				Scopes(ScopeVisibleProjects(userID)).
				Where("projects.owner_id IS NOT NULL"),
			s.db.Session(&gorm.Session{NewDB: true}).
				Table("project_members").
				Select("user_id").
				Where("project_id IN (?)", visibleIDs),
		).
		Order("username ASC").
		Find(&assignees).Error
	if err != nil {
		return nil, err
	}

	return &TaskOptions{Projects: projects, Assignees: assignees}, nil
}

// Create creates a task in a project visible to the user. When no assignee is
// given the task is assigned to its creator.
func (s *TaskService) Create(userID uint, req *CreateTaskRequest) (*models.Task, error) {
	if req.Status == "" {
		req.Status = models.TaskStatusPending
	}
	if !models.ValidTaskStatus(req.Status) {
		return nil, response.NewValidation("invalid task", map[string]string{"status": "unknown status"})
	}
	if req.Priority == "" {
		req.Priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(req.Priority) {
		return nil, response.NewValidation("invalid task", map[string]string{"priority": "unknown priority"})
	}

	ok, err := CanViewProject(s.db, req.ProjectID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewValidation("invalid task", map[string]string{
			"project_id": "project does not exist or is not accessible",
		})
	}

	assigneeID := req.AssigneeID
	if assigneeID == nil {
		assigneeID = &userID
	} else if err := s.checkAssignee(*assigneeID, req.ProjectID); err != nil {
		return nil, err
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := parseDate(req.DueDate, "due_date")
		if err != nil {
			return nil, err
		}
		dueDate = parsed
	}

	task := models.Task{
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		ProjectID:      req.ProjectID,
		AssigneeID:     assigneeID,
		DueDate:        dueDate,
		EstimatedHours: req.EstimatedHours,
	}
	if req.WorkedHours != nil {
		task.WorkedHours = *req.WorkedHours
	}
	if task.Status == models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		if len(req.CategoryIDs) > 0 {
			categories, err := findCategories(tx, req.CategoryIDs)
			if err != nil {
				return err
			}
			return tx.Model(&task).Association("Categories").Replace(categories)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(userID, task.ID)
}

// Update modifies a task. Anyone who can view the task's project may update
// it; a bare assignee outside the project gets Forbidden.
func (s *TaskService) Update(userID, id uint, req *UpdateTaskRequest) (*models.Task, error) {
	task, err := s.loadForMutation(userID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != "" {
		if !models.ValidTaskStatus(req.Status) {
			return nil, response.NewValidation("invalid task", map[string]string{"status": "unknown status"})
		}
		updates["status"] = req.Status
		// completed_at tracks the transition in and out of the completed state
		if req.Status == models.TaskStatusCompleted && task.Status != models.TaskStatusCompleted {
			updates["completed_at"] = time.Now()
		} else if req.Status != models.TaskStatusCompleted && task.Status == models.TaskStatusCompleted {
			updates["completed_at"] = gorm.Expr("NULL")
		}
	}
	if req.Priority != "" {
		if !models.ValidTaskPriority(req.Priority) {
			return nil, response.NewValidation("invalid task", map[string]string{"priority": "unknown priority"})
		}
		updates["priority"] = req.Priority
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == 0 {
			updates["assignee_id"] = gorm.Expr("NULL")
		} else {
			if err := s.checkAssignee(*req.AssigneeID, task.ProjectID); err != nil {
				return nil, err
			}
			updates["assignee_id"] = *req.AssigneeID
		}
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			updates["due_date"] = gorm.Expr("NULL")
		} else {
			parsed, err := parseDate(*req.DueDate, "due_date")
			if err != nil {
				return nil, err
			}
			updates["due_date"] = *parsed
		}
	}
	if req.EstimatedHours != nil {
		updates["estimated_hours"] = *req.EstimatedHours
	}
	if req.WorkedHours != nil {
		updates["worked_hours"] = *req.WorkedHours
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Task{ID: task.ID}).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.CategoryIDs != nil {
			categories, err := findCategories(tx, *req.CategoryIDs)
			if err != nil {
				return err
			}
			return tx.Model(&models.Task{ID: task.ID}).Association("Categories").Replace(categories)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var updated models.Task
	err = s.db.
		Preload("Project").
		Preload("Assignee").
		Preload("Categories").
		First(&updated, task.ID).Error
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a task. Same authority rule as Update.
func (s *TaskService) Delete(userID, id uint) error {
	task, err := s.loadForMutation(userID, id)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM task_categories WHERE task_id = ?", task.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, task.ID).Error
	})
}

// loadForMutation fetches a task and applies the mutation authority rule.
// A task the user cannot see at all is reported as not found; a task the
// user sees only as assignee, without project access, is Forbidden.
func (s *TaskService) loadForMutation(userID, id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}

	canMutate, err := CanMutateTask(s.db, &task, userID)
	if err != nil {
		return nil, err
	}
	if canMutate {
		return &task, nil
	}

	if task.AssigneeID != nil && *task.AssigneeID == userID {
		return nil, response.NewForbidden("task can only be modified by project members")
	}
	return nil, response.NewNotFound("task not found")
}

// checkAssignee validates that the assignee belongs to the task's project
// (owner or member).
func (s *TaskService) checkAssignee(assigneeID, projectID uint) error {
	ok, err := CanViewProject(s.db, projectID, assigneeID)
	if err != nil {
		return err
	}
	if !ok {
		return response.NewValidation("invalid task", map[string]string{
			"assignee_id": "assignee must be the project owner or a member",
		})
	}
	return nil
}

func findCategories(tx *gorm.DB, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []models.Category
	if err := tx.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, response.NewValidation("invalid categories", map[string]string{
			"category_ids": "one or more categories do not exist",
		})
	}
	return categories, nil
}
