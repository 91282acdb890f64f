package security_test

import (
	"strings"
	"testing"

	"github.com/leaderturk/property-management/pkg/config"
	"github.com/leaderturk/property-management/pkg/security"
)

// cheap parameters keep the suite fast; production uses N=16384.
var testCfg = config.PasswordConfig{
	ScryptN:       1024,
	ScryptR:       8,
	ScryptP:       1,
	ScryptKeyLen:  64,
	ScryptSaltLen: 16,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("admin123", testCfg)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	key, salt, ok := strings.Cut(hash, ".")
	if !ok {
		t.Fatalf("expected key.salt format, got %q", hash)
	}
	if len(key) != 128 || len(salt) != 32 {
		t.Fatalf("unexpected lengths key=%d salt=%d", len(key), len(salt))
	}

	if !security.VerifyPassword("admin123", hash, testCfg) {
		t.Fatal("VerifyPassword failed for the correct password")
	}
	if security.VerifyPassword("admin124", hash, testCfg) {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	a, err := security.HashPassword("same-password", testCfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := security.HashPassword("same-password", testCfg)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := security.HashPassword("", testCfg); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	for _, stored := range []string{"", "not-a-hash", "zz.salt", ".salt", "abcd.", "abcd"} {
		if security.VerifyPassword("irrelevant", stored, testCfg) {
			t.Fatalf("expected false for malformed hash %q", stored)
		}
	}
}

func TestGenerateTempPassword(t *testing.T) {
	pw, err := security.GenerateTempPassword(16)
	if err != nil {
		t.Fatal(err)
	}
	if len(pw) != 16 {
		t.Fatalf("expected 16 chars, got %d", len(pw))
	}
	if _, err := security.GenerateTempPassword(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}
