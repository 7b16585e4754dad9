package models

import "testing"

func TestFullName(t *testing.T) {
	cases := []struct {
		name     string
		user     User
		expected string
	}{
		{"both names", User{Username: "alice", FirstName: "Alice", LastName: "Smith"}, "Alice Smith"},
		{"first only", User{Username: "alice", FirstName: "Alice"}, "Alice"},
		{"last only", User{Username: "alice", LastName: "Smith"}, "Smith"},
		{"neither falls back to username", User{Username: "alice"}, "alice"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.FullName(); got != tc.expected {
				t.Errorf("FullName() = %q, want %q", got, tc.expected)
			}
		})
	}
}
