package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-backend/internal/core/domain"
	"github.com/forumhub/forum-backend/internal/core/ports"
)

type fakeUsers struct {
	nextID uint
	byID   map[uint]*domain.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{nextID: 1, byID: make(map[uint]*domain.User)}
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	stored := *user
	stored.ID = f.nextID
	f.nextID++
	f.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) UpdateFields(_ context.Context, id uint, fields map[string]any) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	for col, val := range fields {
		switch col {
		case "is_verified":
			u.IsVerified = val.(bool)
		case "last_login":
			t := val.(time.Time)
			u.LastLogin = &t
		case "password_hash":
			u.PasswordHash = val.(string)
		case "username":
			u.Username = val.(string)
		case "avatar_url":
			u.AvatarURL = val.(string)
		default:
			return fmt.Errorf("unexpected column %q", col)
		}
	}
	return nil
}

type fakeMailer struct {
	verifyLinks []string
	resetLinks  []string
	fail        bool
}

func (f *fakeMailer) SendVerification(_ context.Context, _, _, link string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.verifyLinks = append(f.verifyLinks, link)
	return nil
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, _, _, link string) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.resetLinks = append(f.resetLinks, link)
	return nil
}

type fakeStorage struct {
	keys []string
}

func (f *fakeStorage) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

type authFixture struct {
	svc      *AuthService
	users    *fakeUsers
	sessions *memorySessions
	mailer   *fakeMailer
	storage  *fakeStorage
	tokens   *TokenService
}

func newAuthFixture(t *testing.T, cfg *TokenConfig) *authFixture {
	t.Helper()
	if cfg == nil {
		cfg = testTokenConfig()
	}
	users := newFakeUsers()
	sessions := newMemorySessions()
	tokens := NewTokenService(cfg, sessions)
	mailer := &fakeMailer{}
	storage := &fakeStorage{}
	svc := NewAuthService(users, sessions, tokens, mailer, storage, "http://localhost:5173", zerolog.Nop())
	return &authFixture{svc: svc, users: users, sessions: sessions, mailer: mailer, storage: storage, tokens: tokens}
}

// register creates an account through the service and returns the issued
// verification token, extracted from the mailed link.
func (fx *authFixture) register(t *testing.T, email, username, password string) string {
	t.Helper()
	if _, err := fx.svc.Register(context.Background(), ports.RegisterInput{
		Email: email, Username: username, Password: password,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	link := fx.mailer.verifyLinks[len(fx.mailer.verifyLinks)-1]
	return path.Base(link)
}

func (fx *authFixture) registerVerified(t *testing.T, email, username, password string) {
	t.Helper()
	token := fx.register(t, email, username, password)
	if err := fx.svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.register(t, "alice@example.com", "alice", "secret1")

	_, err := fx.svc.Register(context.Background(), ports.RegisterInput{
		Email: "alice@example.com", Username: "alice2", Password: "secret1",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(fx.users.byID) != 1 {
		t.Fatalf("duplicate register must not create a user, have %d", len(fx.users.byID))
	}
	if len(fx.mailer.verifyLinks) != 1 {
		t.Fatalf("duplicate register must not send mail, sent %d", len(fx.mailer.verifyLinks))
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.register(t, "alice@example.com", "alice", "secret1")

	_, err := fx.svc.Register(context.Background(), ports.RegisterInput{
		Email: "other@example.com", Username: "alice", Password: "secret1",
	})
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_MailFailureAborts(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.mailer.fail = true

	_, err := fx.svc.Register(context.Background(), ports.RegisterInput{
		Email: "alice@example.com", Username: "alice", Password: "secret1",
	})
	if !errors.Is(err, domain.ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
}

func TestAuthService_VerifyEmail_Lifecycle(t *testing.T) {
	fx := newAuthFixture(t, nil)
	token := fx.register(t, "alice@example.com", "alice", "secret1")

	if err := fx.svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	user, err := fx.users.FindByEmail(context.Background(), "alice@example.com")
	if err != nil || !user.IsVerified {
		t.Fatalf("expected verified user, got %+v (%v)", user, err)
	}

	// The same link clicked twice is rejected.
	if err := fx.svc.VerifyEmail(context.Background(), token); !errors.Is(err, domain.ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func TestAuthService_VerifyEmail_WrongTokenKind(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.register(t, "alice@example.com", "alice", "secret1")

	user, _ := fx.users.FindByEmail(context.Background(), "alice@example.com")
	reset, err := fx.tokens.IssuePurpose(user, ports.PurposePasswordReset)
	if err != nil {
		t.Fatalf("IssuePurpose: %v", err)
	}

	if err := fx.svc.VerifyEmail(context.Background(), reset); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_VerifyEmail_Expired(t *testing.T) {
	cfg := testTokenConfig()
	cfg.VerifyTTL = time.Nanosecond
	fx := newAuthFixture(t, cfg)
	token := fx.register(t, "alice@example.com", "alice", "secret1")
	time.Sleep(10 * time.Millisecond)

	if err := fx.svc.VerifyEmail(context.Background(), token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAuthService_Login_BlockedUntilVerified(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.register(t, "alice@example.com", "alice", "secret1")

	_, err := fx.svc.Login(context.Background(), "alice@example.com", "secret1")
	if !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Fatalf("expected ErrEmailNotVerified, got %v", err)
	}
}

func TestAuthService_Login_Errors(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.registerVerified(t, "alice@example.com", "alice", "secret1")

	if _, err := fx.svc.Login(context.Background(), "ghost@example.com", "secret1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := fx.svc.Login(context.Background(), "alice@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_OpensSession(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.registerVerified(t, "alice@example.com", "alice", "secret1")

	tokens, err := fx.svc.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("expected both tokens")
	}
	if fx.sessions.count() != 1 {
		t.Fatalf("expected 1 session, got %d", fx.sessions.count())
	}
	user, _ := fx.users.FindByEmail(context.Background(), "alice@example.com")
	if user.LastLogin == nil {
		t.Fatal("expected last_login to be set")
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.registerVerified(t, "alice@example.com", "alice", "secret1")

	tokens, err := fx.svc.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := fx.svc.Logout(context.Background(), tokens.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if fx.sessions.count() != 0 {
		t.Fatalf("session must be gone, got %d", fx.sessions.count())
	}
	if err := fx.svc.Logout(context.Background(), tokens.RefreshToken); err != nil {
		t.Fatalf("second Logout must not fail: %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.registerVerified(t, "alice@example.com", "alice", "secret1")
	user, _ := fx.users.FindByEmail(context.Background(), "alice@example.com")

	if _, err := fx.svc.ChangePassword(context.Background(), user.ID, "wrong", "newpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := fx.svc.ChangePassword(context.Background(), user.ID, "secret1", "newpass1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := fx.svc.Login(context.Background(), "alice@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := fx.svc.Login(context.Background(), "alice@example.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password must be rejected, got %v", err)
	}
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	fx := newAuthFixture(t, nil)

	_, err := fx.svc.ForgotPassword(context.Background(), "ghost@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_PasswordReset_RevokesAllSessions(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.registerVerified(t, "alice@example.com", "alice", "secret1")

	// Two concurrent sessions.
	if _, err := fx.svc.Login(context.Background(), "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := fx.svc.Login(context.Background(), "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if fx.sessions.count() != 2 {
		t.Fatalf("expected 2 sessions, got %d", fx.sessions.count())
	}

	if _, err := fx.svc.ForgotPassword(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	link := fx.mailer.resetLinks[len(fx.mailer.resetLinks)-1]
	_, token, ok := strings.Cut(link, "token=")
	if !ok {
		t.Fatalf("no token in reset link %q", link)
	}

	if _, err := fx.svc.SetNewPassword(context.Background(), token, "newpass1"); err != nil {
		t.Fatalf("SetNewPassword: %v", err)
	}

	if fx.sessions.count() != 0 {
		t.Fatalf("reset must revoke every session, got %d", fx.sessions.count())
	}
	if _, err := fx.svc.Login(context.Background(), "alice@example.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password must be rejected, got %v", err)
	}
	if _, err := fx.svc.Login(context.Background(), "alice@example.com", "newpass1"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestAuthService_SetNewPassword_BadToken(t *testing.T) {
	fx := newAuthFixture(t, nil)

	if _, err := fx.svc.SetNewPassword(context.Background(), "garbage", "newpass1"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_ResendVerification(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.register(t, "alice@example.com", "alice", "secret1")

	if _, err := fx.svc.ResendVerification(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("ResendVerification: %v", err)
	}
	if len(fx.mailer.verifyLinks) != 2 {
		t.Fatalf("expected 2 verification mails, got %d", len(fx.mailer.verifyLinks))
	}

	fx.registerVerified(t, "bob@example.com", "bob", "secret1")
	if _, err := fx.svc.ResendVerification(context.Background(), "bob@example.com"); !errors.Is(err, domain.ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func TestAuthService_EditProfile(t *testing.T) {
	fx := newAuthFixture(t, nil)
	fx.registerVerified(t, "alice@example.com", "alice", "secret1")
	fx.registerVerified(t, "bob@example.com", "bob", "secret1")
	alice, _ := fx.users.FindByEmail(context.Background(), "alice@example.com")

	if _, err := fx.svc.EditProfile(context.Background(), alice.ID, ports.EditProfileInput{Username: "bob"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	updated, err := fx.svc.EditProfile(context.Background(), alice.ID, ports.EditProfileInput{
		Username: "alice2",
		Avatar: &ports.AvatarUpload{
			Filename:    "me.png",
			ContentType: "image/png",
			Body:        strings.NewReader("png-bytes"),
		},
	})
	if err != nil {
		t.Fatalf("EditProfile: %v", err)
	}
	if updated.Username != "alice2" {
		t.Fatalf("expected username alice2, got %q", updated.Username)
	}
	if !strings.HasPrefix(updated.AvatarURL, "https://cdn.example.com/avatars/") {
		t.Fatalf("unexpected avatar url %q", updated.AvatarURL)
	}
	if len(fx.storage.keys) != 1 || !strings.HasSuffix(fx.storage.keys[0], ".png") {
		t.Fatalf("unexpected storage keys %v", fx.storage.keys)
	}
}
