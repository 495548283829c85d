package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/forumhub/forum-backend/internal/core/domain"
	"github.com/forumhub/forum-backend/internal/core/ports"
)

// memorySessions is an in-memory RefreshTokenRepository shared by the service
// tests.
type memorySessions struct {
	mu   sync.Mutex
	rows map[string]domain.RefreshToken
}

func newMemorySessions() *memorySessions {
	return &memorySessions{rows: make(map[string]domain.RefreshToken)}
}

func (m *memorySessions) Create(_ context.Context, token string, userID uint, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[token] = domain.RefreshToken{Token: token, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (m *memorySessions) FindByToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &row, nil
}

func (m *memorySessions) DeleteByToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, token)
	return nil
}

func (m *memorySessions) DeleteByUser(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, row := range m.rows {
		if row.UserID == userID {
			delete(m.rows, token)
		}
	}
	return nil
}

func (m *memorySessions) DeleteExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	now := time.Now()
	for token, row := range m.rows {
		if now.After(row.ExpiresAt) {
			delete(m.rows, token)
			n++
		}
	}
	return n, nil
}

func (m *memorySessions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func testTokenConfig() *TokenConfig {
	return &TokenConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		VerifySecret:  []byte("verify-secret"),
		ResetSecret:   []byte("reset-secret"),
	}
}

func testUser() *domain.User {
	return &domain.User{
		ID:       42,
		Email:    "alice@example.com",
		Username: "alice",
		Role:     domain.RoleUser,
	}
}

func TestTokenService_IssueSession_RoundTrip(t *testing.T) {
	sessions := newMemorySessions()
	svc := NewTokenService(testTokenConfig(), sessions)

	tokens, err := svc.IssueSession(context.Background(), testUser())
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if sessions.count() != 1 {
		t.Fatalf("expected 1 session row, got %d", sessions.count())
	}

	access := svc.Verify(tokens.AccessToken, ports.PurposeAccess)
	if access.Status != ports.TokenValid {
		t.Fatalf("access token not valid: %v", access.Status)
	}
	id, err := SubjectID(access.Claims)
	if err != nil || id != 42 {
		t.Fatalf("expected subject 42, got %d (%v)", id, err)
	}
	if access.Claims.Email != "alice@example.com" || access.Claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", access.Claims)
	}

	refresh := svc.Verify(tokens.RefreshToken, ports.PurposeRefresh)
	if refresh.Status != ports.TokenValid {
		t.Fatalf("refresh token not valid: %v", refresh.Status)
	}
}

func TestTokenService_Verify_PurposeIsolation(t *testing.T) {
	svc := NewTokenService(testTokenConfig(), newMemorySessions())

	tokens, err := svc.IssueSession(context.Background(), testUser())
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}

	// An access token presented where a refresh token is expected must fail:
	// the secrets differ per purpose.
	if got := svc.Verify(tokens.AccessToken, ports.PurposeRefresh); got.Status != ports.TokenMalformed {
		t.Fatalf("expected malformed, got %v", got.Status)
	}
	if got := svc.Verify(tokens.RefreshToken, ports.PurposeAccess); got.Status != ports.TokenMalformed {
		t.Fatalf("expected malformed, got %v", got.Status)
	}
}

func TestTokenService_Verify_TypeClaimMismatch(t *testing.T) {
	// Same secret for both single-purpose kinds so only the type claim can
	// tell them apart.
	cfg := testTokenConfig()
	cfg.ResetSecret = cfg.VerifySecret
	svc := NewTokenService(cfg, newMemorySessions())

	token, err := svc.IssuePurpose(testUser(), ports.PurposeEmailVerification)
	if err != nil {
		t.Fatalf("IssuePurpose: %v", err)
	}

	if got := svc.Verify(token, ports.PurposeEmailVerification); got.Status != ports.TokenValid {
		t.Fatalf("expected valid, got %v", got.Status)
	}
	if got := svc.Verify(token, ports.PurposePasswordReset); got.Status != ports.TokenMalformed {
		t.Fatalf("expected malformed on type mismatch, got %v", got.Status)
	}
}

func TestTokenService_Verify_Expired(t *testing.T) {
	cfg := testTokenConfig()
	cfg.AccessTTL = time.Nanosecond
	svc := NewTokenService(cfg, newMemorySessions())

	token, err := svc.IssueAccess(testUser())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if got := svc.Verify(token, ports.PurposeAccess); got.Status != ports.TokenExpired {
		t.Fatalf("expected expired, got %v", got.Status)
	}
}

func TestTokenService_Verify_Garbage(t *testing.T) {
	svc := NewTokenService(testTokenConfig(), newMemorySessions())

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if got := svc.Verify(token, ports.PurposeAccess); got.Status != ports.TokenMalformed {
			t.Fatalf("token %q: expected malformed, got %v", token, got.Status)
		}
		if got := svc.Verify(token, ports.PurposeAccess); got.Claims != nil {
			t.Fatalf("token %q: claims must be nil on failure", token)
		}
	}
}

func TestTokenService_IssuePurpose_RejectsSessionKinds(t *testing.T) {
	svc := NewTokenService(testTokenConfig(), newMemorySessions())

	if _, err := svc.IssuePurpose(testUser(), ports.PurposeAccess); err == nil {
		t.Fatal("expected error for access purpose")
	}
	if _, err := svc.IssuePurpose(testUser(), ports.PurposeRefresh); err == nil {
		t.Fatal("expected error for refresh purpose")
	}
}
