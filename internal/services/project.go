package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskhive/backend/internal/models"
	"github.com/taskhive/backend/pkg/response"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

var projectSortColumns = map[string]string{
	"name":       "name",
	"status":     "status",
	"start_date": "start_date",
	"end_date":   "end_date",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Sort     string `form:"sort"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date" binding:"required"` // 2006-01-02
	EndDate     string `json:"end_date"`                      // 2006-01-02
	MemberIDs   []uint `json:"member_ids"`
}

type UpdateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"` // empty string clears the date
	MemberIDs   *[]uint `json:"member_ids"`
}

// List returns the projects visible to the user, filtered, ordered and paginated.
func (s *ProjectService) List(userID uint, req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	query := s.db.Model(&models.Project{}).Scopes(ScopeVisibleProjects(userID))

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.Search != "" {
		pattern := searchPattern(req.Search)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var projects []models.Project
	offset := (req.Page - 1) * req.PageSize
	err := query.
		Preload("Owner").
		Order(orderClause(req.Sort, projectSortColumns, "created_at DESC")).
		Offset(offset).
		Limit(req.PageSize).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	if err := s.attachTaskCounts(projects); err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

// GetByID returns a visible project with members and task counters loaded.
// Ids outside the user's scope are reported as not found, same as missing ids.
func (s *ProjectService) GetByID(userID, id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.Scopes(ScopeVisibleProjects(userID)).
		Preload("Owner").
		Preload("Members").
		Where("projects.id = ?", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	projects := []models.Project{project}
	if err := s.attachTaskCounts(projects); err != nil {
		return nil, err
	}
	return &projects[0], nil
}

// Create creates a project owned by the user.
func (s *ProjectService) Create(userID uint, req *CreateProjectRequest) (*models.Project, error) {
	if req.Status == "" {
		req.Status = models.ProjectStatusPlanning
	}
	if !models.ValidProjectStatus(req.Status) {
		return nil, response.NewValidation("invalid project", map[string]string{"status": "unknown status"})
	}

	startDate, endDate, err := parseProjectDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		OwnerID:     &userID,
		StartDate:   *startDate,
		EndDate:     endDate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		if len(req.MemberIDs) > 0 {
			members, err := findUsers(tx, req.MemberIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&project).Association("Members").Replace(members); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(userID, project.ID)
}

// Update modifies a project. Only the owner may update; members get Forbidden.
func (s *ProjectService) Update(userID, id uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if !IsProjectOwner(project, userID) {
		return nil, response.NewForbidden("only the project owner can update it")
	}

	updates := make(map[string]interface{})

	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != "" {
		if !models.ValidProjectStatus(req.Status) {
			return nil, response.NewValidation("invalid project", map[string]string{"status": "unknown status"})
		}
		updates["status"] = req.Status
	}

	// Date updates are validated against the resulting pair, not each in isolation.
	startDate := project.StartDate
	endDate := project.EndDate
	if req.StartDate != "" {
		parsed, err := parseDate(req.StartDate, "start_date")
		if err != nil {
			return nil, err
		}
		startDate = *parsed
		updates["start_date"] = startDate
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			endDate = nil
			updates["end_date"] = gorm.Expr("NULL")
		} else {
			parsed, err := parseDate(*req.EndDate, "end_date")
			if err != nil {
				return nil, err
			}
			endDate = parsed
			updates["end_date"] = *parsed
		}
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, response.NewValidation("invalid project", map[string]string{
			"end_date": "end date must not be before start date",
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&models.Project{ID: project.ID}).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.MemberIDs != nil {
			members, err := findUsers(tx, *req.MemberIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&models.Project{ID: project.ID}).Association("Members").Replace(members); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(userID, id)
}

// Delete removes a project and everything that hangs off it. Owner only.
// Cascades are done explicitly so behavior does not depend on driver-level
// foreign key enforcement.
func (s *ProjectService) Delete(userID, id uint) error {
	project, err := s.GetByID(userID, id)
	if err != nil {
		return err
	}
	if !IsProjectOwner(project, userID) {
		return response.NewForbidden("only the project owner can delete it")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM task_categories WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_members WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

// attachTaskCounts fills the derived task counters and progress for each project.
func (s *ProjectService) attachTaskCounts(projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(projects))
	for i := range projects {
		ids = append(ids, projects[i].ID)
	}

	type countRow struct {
		ProjectID uint
		Total     int64
		Completed int64
	}
	var rows []countRow
	err := s.db.Model(&models.Task{}).
		Select("project_id, COUNT(*) AS total, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed",
			models.TaskStatusCompleted).
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	byProject := make(map[uint]countRow, len(rows))
	for _, row := range rows {
		byProject[row.ProjectID] = row
	}
	for i := range projects {
		row := byProject[projects[i].ID]
		projects[i].TaskCount = row.Total
		projects[i].CompletedTaskCount = row.Completed
		projects[i].ComputeProgress()
	}
	return nil
}

func parseProjectDates(start, end string) (*time.Time, *time.Time, error) {
	startDate, err := parseDate(start, "start_date")
	if err != nil {
		return nil, nil, err
	}
	var endDate *time.Time
	if end != "" {
		endDate, err = parseDate(end, "end_date")
		if err != nil {
			return nil, nil, err
		}
		if endDate.Before(*startDate) {
			return nil, nil, response.NewValidation("invalid project", map[string]string{
				"end_date": "end date must not be before start date",
			})
		}
	}
	return startDate, endDate, nil
}

func parseDate(value, field string) (*time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return nil, response.NewValidation("invalid date", map[string]string{field: "expected YYYY-MM-DD"})
	}
	return &parsed, nil
}

func findUsers(tx *gorm.DB, ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := tx.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, response.NewValidation("invalid members", map[string]string{
			"member_ids": "one or more users do not exist",
		})
	}
	return users, nil
}
