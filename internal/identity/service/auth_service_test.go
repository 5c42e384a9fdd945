package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"account-service/internal/apperr"
	"account-service/internal/audit"
	"account-service/internal/events"
	identitydomain "account-service/internal/identity/domain"
	"account-service/internal/security"
	userdomain "account-service/internal/user/domain"
	userrepo "account-service/internal/user/repository"
)

type recordedAudit struct {
	userID, action, metadata string
}

type memAudit struct {
	mu      sync.Mutex
	entries []recordedAudit
}

func (a *memAudit) LogEvent(ctx context.Context, userID, action, metadata string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, recordedAudit{userID, action, metadata})
}

func (a *memAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.action
	}
	return out
}

type sentMail struct {
	email, token string
	expiresAt    time.Time
}

type memMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *memMailer) SendPasswordReset(ctx context.Context, email, token string, expiresAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{email, token, expiresAt})
	return nil
}

func (m *memMailer) last(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no recovery mail sent")
	}
	return m.sent[len(m.sent)-1]
}

type chanEmitter struct {
	ch chan *events.Event
}

func (e *chanEmitter) Emit(ctx context.Context, ev *events.Event) error {
	e.ch <- ev
	return nil
}

func (e *chanEmitter) next(t *testing.T) *events.Event {
	t.Helper()
	select {
	case ev := <-e.ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

// countingRepo wraps a user repository and counts writes.
type countingRepo struct {
	*userrepo.MemoryRepository
	mu      sync.Mutex
	creates int
	updates int
	// raceUser, when set, is inserted just before the first Create to simulate a concurrent signup.
	raceUser *userdomain.User
}

func (r *countingRepo) Create(ctx context.Context, u *userdomain.User) error {
	r.mu.Lock()
	r.creates++
	race := r.raceUser
	r.raceUser = nil
	r.mu.Unlock()
	if race != nil {
		_ = r.MemoryRepository.Create(ctx, race)
	}
	return r.MemoryRepository.Create(ctx, u)
}

func (r *countingRepo) Update(ctx context.Context, p userdomain.Patch) (*userdomain.User, error) {
	r.mu.Lock()
	r.updates++
	r.mu.Unlock()
	return r.MemoryRepository.Update(ctx, p)
}

func (r *countingRepo) writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creates + r.updates
}

type fixture struct {
	svc     *AuthService
	repo    *countingRepo
	tokens  *security.TokenProvider
	audit   *memAudit
	mailer  *memMailer
	emitter *chanEmitter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	f := &fixture{
		repo:    &countingRepo{MemoryRepository: userrepo.NewMemoryRepository()},
		tokens:  tokens,
		audit:   &memAudit{},
		mailer:  &memMailer{},
		emitter: &chanEmitter{ch: make(chan *events.Event, 16)},
	}
	pool := security.NewHashPool(security.NewHasher(4), 2)
	f.svc = NewAuthService(f.repo, pool, tokens,
		WithMailSender(f.mailer),
		WithAuditLogger(f.audit),
		WithEmitter(f.emitter),
	)
	return f
}

func assertAppErr(t *testing.T, err error, want *apperr.Error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %s %q", err, want.Kind, want.Message)
	}
}

func TestCreate_ThenLocalLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Create(ctx, "A@X.com", "pw1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Token == "" || res.ThemeDefined || !res.Created {
		t.Fatalf("unexpected create result: %+v", res)
	}
	claims, err := f.tokens.ValidateSession(res.Token)
	if err != nil {
		t.Fatalf("ValidateSession: %v", err)
	}
	if claims.Email != "a@x.com" || claims.ThemeDefined || claims.UserID != res.UserID {
		t.Errorf("claims = %+v", claims)
	}
	ev := f.emitter.next(t)
	if ev.Type != events.TypeUserCreated || ev.UserID != res.UserID || ev.Source != "local" {
		t.Errorf("event = %+v", ev)
	}

	login, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "a@x.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err = f.tokens.ValidateSession(login.Token)
	if err != nil {
		t.Fatalf("ValidateSession(login): %v", err)
	}
	if claims.Email != "a@x.com" || login.Created {
		t.Errorf("login claims = %+v created=%v", claims, login.Created)
	}
	got := f.audit.actions()
	if len(got) != 2 || got[0] != audit.ActionUserCreated || got[1] != audit.ActionLoginSuccess {
		t.Errorf("audit actions = %v", got)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Create(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, pw := range []string{"pw1", "other"} {
		_, err := f.svc.Create(ctx, "A@x.com", pw)
		assertAppErr(t, err, ErrEmailTaken)
	}
	if f.repo.creates != 1 {
		t.Errorf("creates = %d, want 1", f.repo.creates)
	}
}

func TestCreate_StoreConflictIsSameConflict(t *testing.T) {
	f := newFixture(t)
	f.repo.raceUser = &userdomain.User{ID: "racer", Email: "a@x.com", PasswordHash: "h"}

	_, err := f.svc.Create(context.Background(), "a@x.com", "pw1")
	assertAppErr(t, err, ErrEmailTaken)
}

func TestCreate_InvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tests := []struct {
		name, email, password string
		want                  *apperr.Error
	}{
		{"empty email", "", "pw", ErrEmailRequired},
		{"bad email", "not-an-email", "pw", ErrEmailFormat},
		{"empty password", "a@x.com", "", ErrPasswordRequired},
		{"long password", "a@x.com", strings.Repeat("p", 73), ErrPasswordTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tt.email, tt.password)
			assertAppErr(t, err, tt.want)
		})
	}
	if f.repo.writes() != 0 {
		t.Errorf("invalid input must not write, got %d writes", f.repo.writes())
	}
}

func TestLoginLocal_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Create(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "a@x.com", Password: "wrong"})
	assertAppErr(t, err, ErrCredentialsMismatch)

	_, err = f.svc.Login(ctx, identitydomain.LocalLogin{Email: "nobody@x.com", Password: "pw1"})
	assertAppErr(t, err, ErrCredentialsNotFound)

	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestLoginLocal_PasswordPast72BytesNeverMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pw := strings.Repeat("a", 72)
	if _, err := f.svc.Create(ctx, "l@x.com", pw); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "l@x.com", Password: pw}); err != nil {
		t.Fatalf("Login with the stored 72-byte password: %v", err)
	}

	_, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "l@x.com", Password: pw + "EXTRA"})
	assertAppErr(t, err, ErrCredentialsMismatch)
	got := f.audit.actions()
	if got[len(got)-1] != audit.ActionLoginFailure {
		t.Errorf("last audit action = %q, want %q", got[len(got)-1], audit.ActionLoginFailure)
	}
}

func TestLoginLocal_FederatedOnlyAccountHasNoPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Login(ctx, identitydomain.FederatedLogin{Email: "g@x.com", GoogleID: "g-1"}); err != nil {
		t.Fatalf("federated Login: %v", err)
	}
	_, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "g@x.com", Password: "anything"})
	assertAppErr(t, err, ErrCredentialsMismatch)
}

func TestLoginFederated_MergeCreateThenLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, identitydomain.FederatedLogin{Email: "g@x.com", GoogleID: "g-1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !res.Created || res.Token == "" {
		t.Fatalf("expected created account with token, got %+v", res)
	}
	u, _ := f.repo.GetByEmail(ctx, "g@x.com")
	if u == nil || u.HasPassword() || u.GoogleID != "g-1" {
		t.Fatalf("stored user = %+v", u)
	}
	if ev := f.emitter.next(t); ev.Source != "google" {
		t.Errorf("event source = %q, want google", ev.Source)
	}

	again, err := f.svc.Login(ctx, &identitydomain.FederatedLogin{Email: "g@x.com", GoogleID: "g-1"})
	if err != nil {
		t.Fatalf("second Login: %v", err)
	}
	if again.Created || again.UserID != res.UserID {
		t.Errorf("second login = %+v", again)
	}

	_, err = f.svc.Login(ctx, identitydomain.FederatedLogin{Email: "g@x.com", GoogleID: "g-2"})
	assertAppErr(t, err, ErrCredentialsMismatch)
}

func TestLoginFederated_CaseSensitiveID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Login(ctx, identitydomain.FederatedLogin{Email: "g@x.com", GoogleID: "AbC"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	_, err := f.svc.Login(ctx, identitydomain.FederatedLogin{Email: "g@x.com", GoogleID: "abc"})
	assertAppErr(t, err, ErrCredentialsMismatch)
}

func TestLoginFederated_LocalAccountIsNotTakenOver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Create(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	before := f.repo.writes()

	_, err := f.svc.Login(ctx, identitydomain.FederatedLogin{Email: "a@x.com", GoogleID: "g-1"})
	assertAppErr(t, err, ErrCredentialsMismatch)
	if f.repo.writes() != before {
		t.Error("failed federated login must not write")
	}
}

func TestLoginFederated_CreateRaceFallsThroughToCompare(t *testing.T) {
	f := newFixture(t)
	f.repo.raceUser = &userdomain.User{ID: "racer", Email: "g@x.com", GoogleID: "g-1"}

	res, err := f.svc.Login(context.Background(), identitydomain.FederatedLogin{Email: "g@x.com", GoogleID: "g-1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.UserID != "racer" || res.Created {
		t.Errorf("result = %+v, want login into racer's account", res)
	}
}

func TestLogin_UnsupportedRequest(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Login(context.Background(), nil)
	assertAppErr(t, err, ErrUnsupportedLogin)

	var nilLocal *identitydomain.LocalLogin
	_, err = f.svc.Login(context.Background(), nilLocal)
	assertAppErr(t, err, ErrUnsupportedLogin)
}

func TestTimestampsFollowServiceClock(t *testing.T) {
	tokens, err := security.NewTestTokenProvider()
	if err != nil {
		t.Fatalf("NewTestTokenProvider: %v", err)
	}
	repo := userrepo.NewMemoryRepository()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := created
	svc := NewAuthService(repo, security.NewHashPool(security.NewHasher(4), 1), tokens,
		WithClock(func() time.Time { return now }))
	ctx := context.Background()

	res, err := svc.Create(ctx, "c@x.com", "pw1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	u, _ := repo.GetByID(ctx, res.UserID)
	if !u.CreatedAt.Equal(created) || !u.UpdatedAt.Equal(created) {
		t.Fatalf("timestamps = %v / %v, want %v", u.CreatedAt, u.UpdatedAt, created)
	}

	now = created.Add(time.Hour)
	if _, err := svc.UpdateProfile(ctx, res.UserID, "d@x.com", ""); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	u, _ = repo.GetByID(ctx, res.UserID)
	if !u.CreatedAt.Equal(created) || !u.UpdatedAt.Equal(now) {
		t.Errorf("after update timestamps = %v / %v, want %v / %v", u.CreatedAt, u.UpdatedAt, created, now)
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.svc.Create(ctx, "a@x.com", "pw1")
	if _, err := f.svc.Create(ctx, "b@x.com", "pw1"); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	_, err := f.svc.UpdateProfile(ctx, a.UserID, "B@x.com", "")
	assertAppErr(t, err, ErrEmailInUse)

	sum, err := f.svc.UpdateProfile(ctx, a.UserID, "a2@x.com", "")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if sum.ID != a.UserID || sum.Email != "a2@x.com" {
		t.Errorf("summary = %+v", sum)
	}
	if _, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "a2@x.com", Password: "pw1"}); err != nil {
		t.Errorf("password should be unchanged: %v", err)
	}

	// Keeping one's own email with a new password is allowed.
	if _, err := f.svc.UpdateProfile(ctx, a.UserID, "a2@x.com", "pw2"); err != nil {
		t.Fatalf("UpdateProfile password: %v", err)
	}
	if _, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "a2@x.com", Password: "pw2"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}

	_, err = f.svc.UpdateProfile(ctx, "missing-id", "free@x.com", "")
	assertAppErr(t, err, ErrUserNotFound)
}

func TestPasswordResetScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	login, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "a@x.com", Password: "pw1"})
	if err != nil || login.ThemeDefined {
		t.Fatalf("Login: %+v, %v", login, err)
	}

	if err := f.svc.RequestPasswordReset(ctx, "a@x.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	mail := f.mailer.last(t)
	if mail.email != "a@x.com" {
		t.Errorf("mail to %q", mail.email)
	}
	if _, err := f.tokens.ValidateSession(mail.token); err == nil {
		t.Error("recovery token must not be accepted as a session token")
	}

	sum, err := f.svc.PerformPasswordReset(ctx, mail.token, "pw2")
	if err != nil {
		t.Fatalf("PerformPasswordReset: %v", err)
	}
	if sum.ID != created.UserID {
		t.Errorf("summary id = %q, want %q", sum.ID, created.UserID)
	}

	_, err = f.svc.Login(ctx, identitydomain.LocalLogin{Email: "a@x.com", Password: "pw1"})
	assertAppErr(t, err, ErrCredentialsMismatch)
	if _, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "a@x.com", Password: "pw2"}); err != nil {
		t.Errorf("login with reset password: %v", err)
	}
}

func TestPasswordReset_SetsPasswordOnFederatedAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Login(ctx, identitydomain.FederatedLogin{Email: "g@x.com", GoogleID: "g-1"}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := f.svc.RequestPasswordReset(ctx, "g@x.com"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if _, err := f.svc.PerformPasswordReset(ctx, f.mailer.last(t).token, "pw"); err != nil {
		t.Fatalf("PerformPasswordReset: %v", err)
	}
	if _, err := f.svc.Login(ctx, identitydomain.LocalLogin{Email: "g@x.com", Password: "pw"}); err != nil {
		t.Errorf("local login on merged account: %v", err)
	}
	if _, err := f.svc.Login(ctx, identitydomain.FederatedLogin{Email: "g@x.com", GoogleID: "g-1"}); err != nil {
		t.Errorf("federated login on merged account: %v", err)
	}
}

func TestRequestPasswordReset_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.RequestPasswordReset(ctx, "nobody@x.com")
	assertAppErr(t, err, ErrEmailNotFound)

	noMail := NewAuthService(f.repo, security.NewHashPool(security.NewHasher(4), 1), f.tokens)
	if err := noMail.RequestPasswordReset(ctx, "a@x.com"); !errors.Is(err, ErrMailUnavailable) {
		t.Errorf("err = %v, want ErrMailUnavailable", err)
	}

	if _, err := f.svc.Create(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.mailer.err = errors.New("smtp down")
	err = f.svc.RequestPasswordReset(ctx, "a@x.com")
	if err == nil || apperr.KindOf(err) != 0 {
		t.Errorf("transport failure should be an internal error, got %v", err)
	}
}

func TestPerformPasswordReset_InvalidTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	expired, _, _ := f.tokens.WithClock(func() time.Time { return time.Now().Add(-time.Hour) }).IssueRecovery("a@x.com")

	for name, tok := range map[string]string{
		"empty":         "",
		"garbage":       "not.a.jwt",
		"session token": created.Token,
		"expired":       expired,
	} {
		t.Run(name, func(t *testing.T) {
			before := f.repo.writes()
			_, err := f.svc.PerformPasswordReset(ctx, tok, "pw2")
			assertAppErr(t, err, ErrInvalidRecoveryToken)
			if f.repo.writes() != before {
				t.Error("invalid token must not write")
			}
		})
	}
}

func TestPerformPasswordReset_UnknownEmail(t *testing.T) {
	f := newFixture(t)
	tok, _, err := f.tokens.IssueRecovery("ghost@x.com")
	if err != nil {
		t.Fatalf("IssueRecovery: %v", err)
	}
	_, err = f.svc.PerformPasswordReset(context.Background(), tok, "pw2")
	assertAppErr(t, err, ErrEmailNotFound)
}
