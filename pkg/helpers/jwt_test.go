package helpers

import (
	"testing"
	"time"
)

func testJWT() *JWTManager {
	return NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testJWT()
	id := TokenIdentity{
		UserID:   "7d4f1f5e-0000-0000-0000-000000000001",
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Martin",
	}
	token, exp, err := m.GenerateAccessToken(id)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if until := time.Until(exp); until < 14*time.Minute || until > 16*time.Minute {
		t.Errorf("unexpected expiry %v", exp)
	}

	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != id.UserID || claims.Username != "alice" ||
		claims.Email != "alice@example.com" || claims.FullName != "Alice Martin" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := testJWT()
	token, _, err := m.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	claims, err := m.ParseRefreshToken(token)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", claims.UserID)
	}
}

func TestTokenKindsNotInterchangeable(t *testing.T) {
	m := testJWT()
	access, _, err := m.GenerateAccessToken(TokenIdentity{UserID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	refresh, _, err := m.GenerateRefreshToken("user-1")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := m.ParseRefreshToken(access); err == nil {
		t.Error("access token accepted by refresh parser")
	}
	if _, err := m.ParseAccessToken(refresh); err == nil {
		t.Error("refresh token accepted by access parser")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m := testJWT()
	token, _, err := m.GenerateAccessToken(TokenIdentity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	other := NewJWTManager("different-secret", "refresh-secret", time.Minute, time.Hour)
	if _, err := other.ParseAccessToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	token, _, err := m.GenerateAccessToken(TokenIdentity{UserID: "user-1"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	m := testJWT()
	if _, err := m.ParseAccessToken("not.a.jwt"); err == nil {
		t.Error("garbage accepted as access token")
	}
	if _, err := m.ParseRefreshToken(""); err == nil {
		t.Error("empty string accepted as refresh token")
	}
}
