package services

import (
	"testing"
)

func TestTaskListRequest_Defaults(t *testing.T) {
	req := &TaskListRequest{}

	if req.Page != 0 {
		t.Errorf("default Page should be 0, got %d", req.Page)
	}
	if req.PageSize != 0 {
		t.Errorf("default PageSize should be 0, got %d", req.PageSize)
	}
	if req.Status != "" || req.Priority != "" || req.Search != "" {
		t.Error("filters should be empty by default")
	}
}

func TestTaskSortColumns_CoverAPIKeys(t *testing.T) {
	keys := []string{"title", "status", "priority", "due_date", "created_at", "updated_at"}
	for _, k := range keys {
		if _, ok := taskSortColumns[k]; !ok {
			t.Errorf("sort key %q should be allowed", k)
		}
	}
	if _, ok := taskSortColumns["assignee_id"]; ok {
		t.Error("assignee_id should not be a sortable key")
	}
}

func TestUpdateTaskRequest_ClearSemantics(t *testing.T) {
	// nil pointer means "leave unchanged"; zero value means "clear".
	var req UpdateTaskRequest
	if req.AssigneeID != nil {
		t.Error("AssigneeID should default to nil (unchanged)")
	}
	if req.DueDate != nil {
		t.Error("DueDate should default to nil (unchanged)")
	}
	if req.CategoryIDs != nil {
		t.Error("CategoryIDs should default to nil (unchanged)")
	}

	clearAssignee := uint(0)
	clearDue := ""
	req = UpdateTaskRequest{AssigneeID: &clearAssignee, DueDate: &clearDue}
	if req.AssigneeID == nil || *req.AssigneeID != 0 {
		t.Error("zero AssigneeID should request a clear")
	}
	if req.DueDate == nil || *req.DueDate != "" {
		t.Error("empty DueDate should request a clear")
	}
}
