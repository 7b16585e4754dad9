package services

import (
	"testing"
)

func TestGenerateRefreshToken(t *testing.T) {
	token, hash, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generateRefreshToken returned error: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(token))
	}
	if len(hash) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(hash))
	}
	if token == hash {
		t.Error("hash should differ from the token")
	}
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		token, _, err := generateRefreshToken()
		if err != nil {
			t.Fatalf("generateRefreshToken returned error: %v", err)
		}
		if seen[token] {
			t.Fatal("generated a duplicate refresh token")
		}
		seen[token] = true
	}
}

func TestHashRefreshToken_Deterministic(t *testing.T) {
	a := hashRefreshToken("some-token")
	b := hashRefreshToken("some-token")
	if a != b {
		t.Error("hashing the same token twice should match")
	}
	if a == hashRefreshToken("other-token") {
		t.Error("different tokens should hash differently")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}
