package security

import "time"

// testSigningSecret is for unit tests only. Do not use in production.
const testSigningSecret = "test-signing-secret-0123456789abcdef"

// NewTestTokenProvider returns a TokenProvider for tests (issuer "account-auth", audience "account-api",
// session TTL 24h, recovery TTL 15m).
func NewTestTokenProvider() (*TokenProvider, error) {
	return NewTokenProvider([]byte(testSigningSecret), "account-auth", "account-api", 24*time.Hour, 15*time.Minute)
}
