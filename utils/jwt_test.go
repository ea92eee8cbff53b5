package utils

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-jwt")

	token, err := GenerateToken(42, "analyst", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "analyst" {
		t.Errorf("Username = %q, want %q", claims.Username, "analyst")
	}
	if claims.Issuer != "zerofake" {
		t.Errorf("Issuer = %q, want %q", claims.Issuer, "zerofake")
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-jwt")

	token, err := GenerateToken(7, "expired", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Error("expected error for expired token, got nil")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-for-jwt")

	for _, bad := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ParseToken(bad); err == nil {
			t.Errorf("ParseToken(%q): expected error, got nil", bad)
		}
	}
}
