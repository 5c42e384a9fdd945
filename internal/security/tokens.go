package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, badly signed, expired, or of the wrong purpose.
	ErrInvalidToken = errors.New("invalid token")
)

// Token purposes. A token is only accepted by the validator for its own purpose.
const (
	PurposeSession  = "session"
	PurposeRecovery = "recovery"
)

// SessionClaims holds JWT claims for the bearer token minted at signup and login.
type SessionClaims struct {
	jwt.RegisteredClaims
	Purpose      string `json:"purpose"`
	UserID       string `json:"id"`
	Email        string `json:"email"`
	ThemeDefined bool   `json:"themeDefined"`
}

// RecoveryClaims holds JWT claims for a password-recovery challenge. Email is the only trusted claim.
type RecoveryClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
	Email   string `json:"email"`
}

// TokenProvider issues and validates HS256 JWTs signed with a process-wide secret.
// It holds no mutable state; tokens are never stored, so expiry is the only invalidation.
type TokenProvider struct {
	secret      []byte
	issuer      string
	audience    string
	sessionTTL  time.Duration
	recoveryTTL time.Duration
	now         func() time.Time
}

// NewTokenProvider returns a TokenProvider signing with secret. It fails with ErrMissingSigningKey
// when secret is empty so that a misconfigured process refuses to start.
func NewTokenProvider(secret []byte, issuer, audience string, sessionTTL, recoveryTTL time.Duration) (*TokenProvider, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &TokenProvider{
		secret:      append([]byte(nil), secret...),
		issuer:      issuer,
		audience:    audience,
		sessionTTL:  sessionTTL,
		recoveryTTL: recoveryTTL,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock returns a copy of p that reads the current time from now. Used by tests.
func (p *TokenProvider) WithClock(now func() time.Time) *TokenProvider {
	cp := *p
	cp.now = now
	return &cp
}

// SessionTTL returns the lifetime of session tokens.
func (p *TokenProvider) SessionTTL() time.Duration { return p.sessionTTL }

// RecoveryTTL returns the lifetime of recovery tokens.
func (p *TokenProvider) RecoveryTTL() time.Duration { return p.recoveryTTL }

// IssueSession issues a session token for the user. Returns the token and its expiration time.
func (p *TokenProvider) IssueSession(userID, email string, themeDefined bool) (token string, expiresAt time.Time, err error) {
	now := p.now()
	expiresAt = now.Add(p.sessionTTL)
	claims := SessionClaims{
		RegisteredClaims: p.registered(userID, now, expiresAt),
		Purpose:          PurposeSession,
		UserID:           userID,
		Email:            email,
		ThemeDefined:     themeDefined,
	}
	token, err = p.sign(claims)
	return token, expiresAt, err
}

// IssueRecovery issues a short-lived recovery token bound to email.
func (p *TokenProvider) IssueRecovery(email string) (token string, expiresAt time.Time, err error) {
	now := p.now()
	expiresAt = now.Add(p.recoveryTTL)
	claims := RecoveryClaims{
		RegisteredClaims: p.registered("", now, expiresAt),
		Purpose:          PurposeRecovery,
		Email:            email,
	}
	token, err = p.sign(claims)
	return token, expiresAt, err
}

func (p *TokenProvider) registered(subject string, now, expiresAt time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    p.issuer,
		Audience:  jwt.ClaimStrings{p.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
}

func (p *TokenProvider) sign(claims jwt.Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(p.secret)
}

// ValidateSession parses and validates a session token (signature, exp, iss, aud, purpose).
// Any failure returns ErrInvalidToken.
func (p *TokenProvider) ValidateSession(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := p.parse(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != PurposeSession || claims.UserID == "" || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateRecovery parses and validates a recovery token (signature, exp, iss, aud, purpose).
// Any failure returns ErrInvalidToken.
func (p *TokenProvider) ValidateRecovery(tokenString string) (*RecoveryClaims, error) {
	claims := &RecoveryClaims{}
	if err := p.parse(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != PurposeRecovery || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (p *TokenProvider) parse(tokenString string, claims jwt.Claims) error {
	if tokenString == "" {
		return ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return err
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
