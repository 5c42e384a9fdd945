package security

import (
	"errors"
	"os"
	"strings"
)

// ErrMissingSigningKey is returned when no token signing secret is configured.
var ErrMissingSigningKey = errors.New("token signing key is not configured")

const secretFilePrefix = "file://"

// LoadSecret returns the signing secret described by s. s is either the secret itself or
// "file://<path>", in which case the file content (trimmed) is used.
func LoadSecret(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrMissingSigningKey
	}
	if !strings.HasPrefix(s, secretFilePrefix) {
		return []byte(s), nil
	}
	b, err := os.ReadFile(strings.TrimPrefix(s, secretFilePrefix))
	if err != nil {
		return nil, err
	}
	secret := []byte(strings.TrimSpace(string(b)))
	if len(secret) == 0 {
		return nil, ErrMissingSigningKey
	}
	return secret, nil
}
