package auth

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leaderturk/property-management/pkg/config"
)

func TestSetSessionCookieAttributes(t *testing.T) {
	cfg := testSessionConfig()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)

	SetSessionCookie(rec, req, cfg, config.AppConfig{Env: config.AppEnvDev}, "tok", time.Now().Add(cfg.TTL))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "sessionId" || c.Value != "tok" {
		t.Fatalf("unexpected cookie %s=%s", c.Name, c.Value)
	}
	if !c.HttpOnly || c.SameSite != http.SameSiteStrictMode || c.Path != "/" {
		t.Fatalf("unexpected cookie attributes %+v", c)
	}
	if c.Secure {
		t.Fatal("plain http dev requests should not get secure cookies")
	}
	if c.MaxAge < int((23 * time.Hour).Seconds()) {
		t.Fatalf("unexpected max age %d", c.MaxAge)
	}
}

func TestSecureRequest(t *testing.T) {
	dev := config.AppConfig{Env: config.AppEnvDev, TrustProxy: true}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if secureRequest(req, dev) {
		t.Fatal("plain request should not be secure")
	}

	req.Header.Set("X-Forwarded-Proto", "https")
	if !secureRequest(req, dev) {
		t.Fatal("forwarded https should be secure when proxy is trusted")
	}
	untrusted := dev
	untrusted.TrustProxy = false
	if secureRequest(req, untrusted) {
		t.Fatal("forwarded header must be ignored without trust proxy")
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	if !secureRequest(tlsReq, untrusted) {
		t.Fatal("tls requests are secure")
	}

	if !secureRequest(httptest.NewRequest(http.MethodGet, "/", nil), config.AppConfig{Env: config.AppEnvProd}) {
		t.Fatal("production always uses secure cookies")
	}
}

func TestClearSessionCookieAndRead(t *testing.T) {
	cfg := testSessionConfig()
	rec := httptest.NewRecorder()
	ClearSessionCookie(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil), cfg, config.AppConfig{})
	c := rec.Result().Cookies()[0]
	if c.MaxAge >= 0 || c.Value != "" {
		t.Fatalf("expected expired cookie, got %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	if SessionToken(req, cfg) != "" {
		t.Fatal("expected empty token without cookie")
	}
	req.AddCookie(&http.Cookie{Name: "sessionId", Value: "abc"})
	if SessionToken(req, cfg) != "abc" {
		t.Fatal("expected cookie value")
	}
}
