package jwtmw

import (
	"testing"
	"time"
)

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	g := NewGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	if g == nil {
		t.Fatal("generator is nil")
	}
}

func TestGenerator_RefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	g := NewGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := g.GenerateRefreshToken("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("token is empty")
	}

	email, err := g.ParseRefreshToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "user@example.com" {
		t.Errorf("expected email %q, got %q", "user@example.com", email)
	}
}

func TestGenerator_ParseRefreshToken_RejectsAccessToken(t *testing.T) {
	t.Parallel()

	// アクセストークンはtypクレームが異なるためリフレッシュとして受理されない
	g := NewGenerator("same-secret", "same-secret", 15*time.Minute, 7*24*time.Hour)

	access, err := g.GenerateAccessToken("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.ParseRefreshToken(access); err == nil {
		t.Error("expected error for access token presented as refresh token")
	}
}

func TestGenerator_ParseRefreshToken_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	g1 := NewGenerator("access", "refresh-secret-1", 15*time.Minute, time.Hour)
	g2 := NewGenerator("access", "refresh-secret-2", 15*time.Minute, time.Hour)

	token, err := g1.GenerateRefreshToken("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g2.ParseRefreshToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestGenerator_ParseRefreshToken_RejectsGarbage(t *testing.T) {
	t.Parallel()

	g := NewGenerator("access", "refresh", 15*time.Minute, time.Hour)

	if _, err := g.ParseRefreshToken("not-a-jwt"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestGenerator_ParseRefreshToken_RejectsExpired(t *testing.T) {
	t.Parallel()

	// 負の有効期限で即時失効したトークンを発行する
	g := NewGenerator("access", "refresh", 15*time.Minute, -time.Minute)

	token, err := g.GenerateRefreshToken("user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.ParseRefreshToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}
