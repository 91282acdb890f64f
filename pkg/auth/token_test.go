package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/leaderturk/property-management/pkg/config"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "secret",
		Issuer:     "property-management",
		TTL:        24 * time.Hour,
		CookieName: "sessionId",
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testSessionConfig()
	now := time.Now().UTC()

	token, err := MintSessionToken(cfg, now, "sid-1", "user-1")
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.SessionID() != "sid-1" || claims.UserID() != "user-1" {
		t.Fatalf("unexpected identifiers %q %q", claims.SessionID(), claims.UserID())
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(cfg.TTL)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v", exp, claims.ExpiresAt.UTC())
	}
}

func TestParseSessionTokenInvalidSignature(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now(), "sid", "user")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatal("expected signature failure")
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseSessionToken(cfg, tampered); err == nil {
		t.Fatal("expected tampered token to fail")
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	cfg := testSessionConfig()
	token, err := MintSessionToken(cfg, time.Now().Add(-48*time.Hour), "sid", "user")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token); err == nil || !strings.Contains(err.Error(), "expired") {
		t.Fatalf("expected expiry error, got %v", err)
	}
}

func TestParseSessionTokenWrongIssuer(t *testing.T) {
	cfg := testSessionConfig()
	other := cfg
	other.Issuer = "someone-else"
	token, err := MintSessionToken(other, time.Now(), "sid", "user")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token); err == nil {
		t.Fatal("expected issuer mismatch")
	}
}

func TestMintSessionTokenValidatesInput(t *testing.T) {
	cfg := testSessionConfig()
	if _, err := MintSessionToken(config.SessionConfig{TTL: time.Hour}, time.Now(), "s", "u"); err == nil {
		t.Fatal("expected missing secret error")
	}
	if _, err := MintSessionToken(cfg, time.Now(), "", "u"); err == nil {
		t.Fatal("expected missing session id error")
	}
}
