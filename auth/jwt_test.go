package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "alice")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatalf("garbage token validated")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if _, err := ExtractTokenFromHeader(""); err == nil {
		t.Errorf("empty header accepted")
	}
	if _, err := ExtractTokenFromHeader("Basic abc"); err == nil {
		t.Errorf("non-bearer header accepted")
	}
	got, err := ExtractTokenFromHeader("Bearer abc123")
	if err != nil || got != "abc123" {
		t.Errorf("ExtractTokenFromHeader = %q, %v", got, err)
	}
}
