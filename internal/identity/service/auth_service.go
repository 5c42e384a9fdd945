package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"account-service/internal/audit"
	"account-service/internal/events"
	identitydomain "account-service/internal/identity/domain"
	"account-service/internal/logging"
	"account-service/internal/mail"
	"account-service/internal/security"
	userdomain "account-service/internal/user/domain"
)

// AuthResult is the outcome of Create and Login: one freshly minted session token.
type AuthResult struct {
	Token        string
	ExpiresAt    time.Time
	UserID       string
	Email        string
	ThemeDefined bool
	// Created is set when the call created the account (signup or federated merge-create).
	Created bool
}

// UserSummary is the public view of a user returned by profile updates and password resets.
type UserSummary struct {
	ID           string
	Email        string
	ThemeDefined bool
}

// UserRepo is the user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	Update(ctx context.Context, p userdomain.Patch) (*userdomain.User, error)
}

// PasswordHasher hashes and verifies passwords. *security.HashPool implements it.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, digest, password string) bool
}

// AuthService implements account creation, local and federated login, profile update and password recovery.
type AuthService struct {
	users   UserRepo
	hasher  PasswordHasher
	tokens  *security.TokenProvider
	mailer  mail.Sender
	audit   audit.AuditLogger
	emitter events.Emitter
	log     *slog.Logger
	now     func() time.Time
}

// Option configures optional AuthService collaborators.
type Option func(*AuthService)

// WithMailSender sets the recovery mail transport. Without it RequestPasswordReset returns ErrMailUnavailable.
func WithMailSender(m mail.Sender) Option { return func(s *AuthService) { s.mailer = m } }

// WithAuditLogger sets the audit trail.
func WithAuditLogger(a audit.AuditLogger) Option { return func(s *AuthService) { s.audit = a } }

// WithEmitter sets the account event emitter.
func WithEmitter(e events.Emitter) Option { return func(s *AuthService) { s.emitter = e } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *AuthService) { s.log = l } }

// WithClock sets the time source for record timestamps.
func WithClock(now func() time.Time) Option { return func(s *AuthService) { s.now = now } }

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(users UserRepo, hasher PasswordHasher, tokens *security.TokenProvider, opts ...Option) *AuthService {
	s := &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.OrDefault(s.log)
	return s
}

// Create signs up a local user and returns a session token with themeDefined=false.
func (s *AuthService) Create(ctx context.Context, email, password string) (*AuthResult, error) {
	email = userdomain.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}
	digest, err := s.hashPassword(ctx, password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, userdomain.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	res, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	res.Created = true
	s.recordCreated(ctx, user, "local")
	return res, nil
}

// Login dispatches req to the local or federated path.
func (s *AuthService) Login(ctx context.Context, req identitydomain.LoginRequest) (*AuthResult, error) {
	switch r := req.(type) {
	case identitydomain.LocalLogin:
		return s.loginLocal(ctx, r)
	case *identitydomain.LocalLogin:
		if r != nil {
			return s.loginLocal(ctx, *r)
		}
	case identitydomain.FederatedLogin:
		return s.loginFederated(ctx, r)
	case *identitydomain.FederatedLogin:
		if r != nil {
			return s.loginFederated(ctx, *r)
		}
	}
	return nil, ErrUnsupportedLogin
}

func (s *AuthService) loginLocal(ctx context.Context, req identitydomain.LocalLogin) (*AuthResult, error) {
	email := userdomain.NormalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		s.logAudit(ctx, "", audit.ActionLoginFailure, "local:not_found")
		return nil, ErrCredentialsNotFound
	}
	// bcrypt ignores input past 72 bytes, so a longer password can never be the stored one.
	if len(req.Password) > maxPasswordBytes || !user.HasPassword() || !s.hasher.Verify(ctx, user.PasswordHash, req.Password) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logAudit(ctx, user.ID, audit.ActionLoginFailure, "local:mismatch")
		return nil, ErrCredentialsMismatch
	}
	res, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, user.ID, audit.ActionLoginSuccess, "local")
	return res, nil
}

// loginFederated signs in by Google id. An unknown email is merge-created as a password-less account.
// A known email must carry exactly the same Google id.
func (s *AuthService) loginFederated(ctx context.Context, req identitydomain.FederatedLogin) (*AuthResult, error) {
	email := userdomain.NormalizeEmail(req.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if req.GoogleID == "" {
		return nil, ErrGoogleIDRequired
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		created, err := s.createFederated(ctx, email, req.GoogleID)
		if err != nil {
			return nil, err
		}
		if created != nil {
			res, err := s.issueSession(created)
			if err != nil {
				return nil, err
			}
			res.Created = true
			s.recordCreated(ctx, created, "google")
			return res, nil
		}
		// Lost the create race: another request stored this email first.
		user, err = s.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("federated login: user %s vanished after duplicate insert", email)
		}
	}
	if user.GoogleID == "" || user.GoogleID != req.GoogleID {
		s.logAudit(ctx, user.ID, audit.ActionLoginFailure, "google:mismatch")
		return nil, ErrCredentialsMismatch
	}
	res, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, user.ID, audit.ActionLoginSuccess, "google")
	return res, nil
}

// createFederated returns nil, nil when the store reports the email as already taken.
func (s *AuthService) createFederated(ctx context.Context, email, googleID string) (*userdomain.User, error) {
	now := s.now()
	user := &userdomain.User{
		ID:        uuid.New().String(),
		Email:     email,
		GoogleID:  googleID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, userdomain.ErrDuplicateEmail) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the caller's email and, when password is non-empty, the password.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, email, password string) (*UserSummary, error) {
	if userID == "" {
		return nil, ErrUserNotFound
	}
	email = userdomain.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password != "" {
		if err := validatePassword(password); err != nil {
			return nil, err
		}
	}
	owner, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != userID {
		return nil, ErrEmailInUse
	}
	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrUserNotFound
	}
	patch := userdomain.Patch{ID: userID, Email: &email, UpdatedAt: s.now()}
	if password != "" {
		digest, err := s.hashPassword(ctx, password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &digest
	}
	next := patch.Apply(*current)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.users.Update(ctx, patch)
	if err != nil {
		if errors.Is(err, userdomain.ErrDuplicateEmail) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	meta := "email"
	if password != "" {
		meta = "email,password"
	}
	s.logAudit(ctx, userID, audit.ActionProfileUpdated, meta)
	return summarize(updated), nil
}

// RequestPasswordReset issues a recovery token for email and hands it to the mail sender.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if s.mailer == nil {
		return ErrMailUnavailable
	}
	email = userdomain.NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrEmailNotFound
	}
	token, expiresAt, err := s.tokens.IssueRecovery(user.Email)
	if err != nil {
		return fmt.Errorf("issue recovery token: %w", err)
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, token, expiresAt); err != nil {
		return fmt.Errorf("send recovery mail: %w", err)
	}
	s.logAudit(ctx, user.ID, audit.ActionPasswordResetRequested, "")
	return nil
}

// PerformPasswordReset sets a new password for the account named by the recovery token's email claim.
func (s *AuthService) PerformPasswordReset(ctx context.Context, recoveryToken, newPassword string) (*UserSummary, error) {
	claims, err := s.tokens.ValidateRecovery(recoveryToken)
	if err != nil {
		s.logAudit(ctx, "", audit.ActionLoginFailure, "recovery:invalid_token")
		return nil, ErrInvalidRecoveryToken
	}
	if err := validatePassword(newPassword); err != nil {
		return nil, err
	}
	user, err := s.users.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrEmailNotFound
	}
	digest, err := s.hashPassword(ctx, newPassword)
	if err != nil {
		return nil, err
	}
	updated, err := s.users.Update(ctx, userdomain.Patch{ID: user.ID, PasswordHash: &digest, UpdatedAt: s.now()})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrEmailNotFound
	}
	s.logAudit(ctx, user.ID, audit.ActionPasswordReset, "")
	events.EmitAsync(s.emitter, s.log, events.New(events.TypePasswordReset, user.ID, user.Email))
	return summarize(updated), nil
}

func (s *AuthService) hashPassword(ctx context.Context, password string) (string, error) {
	digest, err := s.hasher.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return digest, nil
}

func (s *AuthService) issueSession(u *userdomain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.IssueSession(u.ID, u.Email, u.ThemeDefined)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	return &AuthResult{
		Token:        token,
		ExpiresAt:    expiresAt,
		UserID:       u.ID,
		Email:        u.Email,
		ThemeDefined: u.ThemeDefined,
	}, nil
}

func (s *AuthService) recordCreated(ctx context.Context, u *userdomain.User, method string) {
	s.logAudit(ctx, u.ID, audit.ActionUserCreated, method)
	ev := events.New(events.TypeUserCreated, u.ID, u.Email)
	ev.Source = method
	events.EmitAsync(s.emitter, s.log, ev)
	s.log.InfoContext(ctx, "user created", "user_id", u.ID, "method", method)
}

func (s *AuthService) logAudit(ctx context.Context, userID, action, metadata string) {
	if s.audit == nil {
		return
	}
	s.audit.LogEvent(ctx, userID, action, metadata)
}

func summarize(u *userdomain.User) *UserSummary {
	return &UserSummary{ID: u.ID, Email: u.Email, ThemeDefined: u.ThemeDefined}
}
