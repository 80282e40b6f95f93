package auth

import (
	"errors"
	"testing"
	"time"

	"maktaba/internal/entity"
)

func newTestManager(t *testing.T, accessExpiry, refreshExpiry time.Duration) *Manager {
	t.Helper()
	m, err := NewManager("access-secret", "refresh-secret", "test", accessExpiry, refreshExpiry)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func testUser() *entity.DbUser {
	return &entity.DbUser{ID: 42, Username: "scholar"}
}

func TestNewManagerRejectsBadSecrets(t *testing.T) {
	tests := []struct {
		name    string
		access  string
		refresh string
	}{
		{name: "EmptyAccess", access: "", refresh: "refresh"},
		{name: "EmptyRefresh", access: "access", refresh: ""},
		{name: "IdenticalSecrets", access: "same", refresh: "same"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewManager(tt.access, tt.refresh, "test", time.Hour, time.Hour); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour, 24*time.Hour)

	token, expiresAt, err := m.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if time.Until(expiresAt) <= 0 {
		t.Error("token already expired")
	}

	claims, err := m.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "scholar" {
		t.Errorf("expected username scholar, got %s", claims.Username)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour, 24*time.Hour)

	token, _, err := m.GenerateRefreshToken(testUser())
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := m.ParseRefreshToken(token)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
}

func TestTokenFamiliesAreSeparate(t *testing.T) {
	m := newTestManager(t, time.Hour, 24*time.Hour)

	accessToken, _, err := m.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	refreshToken, _, err := m.GenerateRefreshToken(testUser())
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := m.ParseRefreshToken(accessToken); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := m.ParseAccessToken(refreshToken); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestExpiredTokenYieldsSentinel(t *testing.T) {
	m := newTestManager(t, time.Millisecond, 24*time.Hour)

	token, _, err := m.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	_, err = m.ParseAccessToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	m := newTestManager(t, time.Hour, 24*time.Hour)

	token, _, err := m.GenerateAccessToken(testUser())
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	tampered := token[:len(token)-4] + "AAAA"
	if _, err := m.ParseAccessToken(tampered); err == nil {
		t.Error("tampered token accepted")
	}
	if _, err := m.ParseAccessToken("not-a-jwt"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestGenerateRejectsInvalidUser(t *testing.T) {
	m := newTestManager(t, time.Hour, 24*time.Hour)

	if _, _, err := m.GenerateAccessToken(nil); err == nil {
		t.Error("nil user accepted")
	}
	if _, _, err := m.GenerateAccessToken(&entity.DbUser{}); err == nil {
		t.Error("zero-id user accepted")
	}
}
