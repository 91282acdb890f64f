package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/leaderturk/property-management/pkg/config"
	"golang.org/x/crypto/scrypt"
)

var tempPasswordCharset = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// ErrInvalidHash signals a stored value that is not "<hex key>.<hex salt>".
var ErrInvalidHash = errors.New("invalid scrypt hash")

// hashSeparator splits the derived key from the salt in a stored hash.
const hashSeparator = "."

// ScryptParams are the cost settings used when deriving new hashes. Verification
// reuses the key length recorded in the stored value.
type ScryptParams struct {
	N       int
	R       int
	P       int
	KeyLen  int
	SaltLen int
}

// HashPassword returns hex(key) + "." + hex(salt). The hex-encoded salt text is
// what feeds the KDF, so hashes stay verifiable by any implementation of the
// same format.
func HashPassword(password string, cfg config.PasswordConfig) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	params := paramsFromConfig(cfg)
	raw := make([]byte, params.SaltLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	salt := hex.EncodeToString(raw)

	key, err := scrypt.Key([]byte(password), []byte(salt), params.N, params.R, params.P, params.KeyLen)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}

	return hex.EncodeToString(key) + hashSeparator + salt, nil
}

// VerifyPassword reports whether password matches the stored hash. Malformed
// stored values yield false.
func VerifyPassword(password, stored string, cfg config.PasswordConfig) bool {
	hash, salt, err := decodeHash(stored)
	if err != nil {
		return false
	}

	params := paramsFromConfig(cfg)
	computed, err := scrypt.Key([]byte(password), []byte(salt), params.N, params.R, params.P, len(hash))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(hash, computed) == 1
}

func paramsFromConfig(cfg config.PasswordConfig) ScryptParams {
	n := cfg.ScryptN
	if n < 2 || n&(n-1) != 0 {
		n = 16384
	}
	return ScryptParams{
		N:       n,
		R:       clampInt(cfg.ScryptR, 1, 32),
		P:       clampInt(cfg.ScryptP, 1, 16),
		KeyLen:  clampInt(cfg.ScryptKeyLen, 16, 128),
		SaltLen: clampInt(cfg.ScryptSaltLen, 8, 64),
	}
}

func decodeHash(stored string) ([]byte, string, error) {
	keyHex, salt, ok := strings.Cut(stored, hashSeparator)
	if !ok || keyHex == "" || salt == "" {
		return nil, "", ErrInvalidHash
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil || len(key) == 0 {
		return nil, "", ErrInvalidHash
	}
	return key, salt, nil
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// GenerateTempPassword produces a random string suitable for temporary credentials.
func GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	result := make([]rune, length)
	for i := 0; i < length; i++ {
		idx, err := randInt(len(tempPasswordCharset))
		if err != nil {
			return "", err
		}
		result[i] = tempPasswordCharset[idx]
	}
	return string(result), nil
}

func randInt(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("invalid max %d", max)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
