package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/taskhive/backend/pkg/response"
)

func TestValidateColor(t *testing.T) {
	valid := []string{"", "#007bff", "#FFFFFF", "#a1B2c3"}
	for _, c := range valid {
		if err := validateColor(c); err != nil {
			t.Errorf("validateColor(%q) = %v, want nil", c, err)
		}
	}

	invalid := []string{"007bff", "#007bf", "#007bffa", "#zzzzzz", "blue"}
	for _, c := range invalid {
		err := validateColor(c)
		if err == nil {
			t.Errorf("validateColor(%q) = nil, want error", c)
			continue
		}
		var appErr *response.AppError
		if !errors.As(err, &appErr) || appErr.HTTPStatus != 400 {
			t.Errorf("validateColor(%q) should yield a 400 error, got %v", c, err)
		}
		if appErr.Fields["color"] == "" {
			t.Errorf("validateColor(%q) should carry a color field message", c)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"sqlite message", errors.New("UNIQUE constraint failed: categories.name"), true},
		{"mysql message", errors.New("Error 1062: Duplicate entry 'Bug' for key 'name'"), true},
		{"unrelated error", errors.New("connection refused"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isUniqueViolation(tc.err); got != tc.want {
				t.Errorf("isUniqueViolation = %v, want %v", got, tc.want)
			}
		})
	}
}
