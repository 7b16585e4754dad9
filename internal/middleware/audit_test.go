package middleware

import (
	"strings"
	"testing"
)

func TestParseRouteInfo(t *testing.T) {
	cases := []struct {
		fullPath   string
		method     string
		wantModule string
		wantAction string
	}{
		{"/api/projects/:id", "PUT", "Projects", "Update"},
		{"/api/tasks", "POST", "Tasks", "Create"},
		{"/api/categories/:id", "DELETE", "Categories", "Delete"},
		{"/api/system-logs", "POST", "System Logs", "Create"},
		{"", "PUT", "unknown", "Update"},
	}

	for _, tc := range cases {
		module, action := parseRouteInfo(tc.fullPath, tc.method)
		if module != tc.wantModule {
			t.Errorf("parseRouteInfo(%q, %q) module = %q, want %q", tc.fullPath, tc.method, module, tc.wantModule)
		}
		if action != tc.wantAction {
			t.Errorf("parseRouteInfo(%q, %q) action = %q, want %q", tc.fullPath, tc.method, action, tc.wantAction)
		}
	}
}

func TestMaskSensitiveFields(t *testing.T) {
	body := `{"username":"alice","password":"hunter2"}`
	masked := maskSensitiveFields(body)

	if strings.Contains(masked, "hunter2") {
		t.Errorf("password value not masked: %s", masked)
	}
	if !strings.Contains(masked, "alice") {
		t.Errorf("non-sensitive value should survive masking: %s", masked)
	}
}

func TestFormatAuditMessage(t *testing.T) {
	msg := formatAuditMessage("alice", "DELETE", "/api/projects/3", 200)
	if !strings.Contains(msg, "alice") || !strings.Contains(msg, "OK") {
		t.Errorf("unexpected audit message: %s", msg)
	}

	msg = formatAuditMessage("bob", "POST", "/api/tasks", 403)
	if !strings.Contains(msg, "Failed") {
		t.Errorf("non-2xx status should read Failed: %s", msg)
	}
}
