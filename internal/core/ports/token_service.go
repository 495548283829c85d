package ports

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

// TokenPurpose discriminates the four kinds of signed tokens. A token of one
// purpose is never accepted where another is expected.
type TokenPurpose string

const (
	PurposeAccess            TokenPurpose = "access"
	PurposeRefresh           TokenPurpose = "refresh"
	PurposeEmailVerification TokenPurpose = "email-verification"
	PurposePasswordReset     TokenPurpose = "password-reset"
)

// Claims is the payload carried by every token this service issues. Type is
// only set on single-purpose tokens (email verification, password reset).
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Type     string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// VerifyStatus is the outcome of a signature/expiry check.
type VerifyStatus int

const (
	TokenValid VerifyStatus = iota
	TokenExpired
	TokenMalformed
)

// VerifyResult is the tagged result of TokenService.Verify. Callers dispatch
// on Status explicitly; Claims is non-nil only when Status is TokenValid.
type VerifyResult struct {
	Status VerifyStatus
	Claims *Claims
}

// SessionTokens is the pair issued at login.
type SessionTokens struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// TokenService signs and verifies all four token kinds. Verify checks
// signature and expiry only; the revocation-table check for refresh tokens is
// the caller's responsibility.
type TokenService interface {
	// IssueSession signs an access and a refresh token for the user and
	// persists one revocable session row keyed by the refresh token string.
	IssueSession(ctx context.Context, user *domain.User) (*SessionTokens, error)
	// IssueAccess signs a short-lived access token only.
	IssueAccess(user *domain.User) (string, error)
	// IssuePurpose signs a time-boxed single-purpose token (verification/reset).
	IssuePurpose(user *domain.User, purpose TokenPurpose) (string, error)
	// Verify checks the token against the secret for the given purpose and,
	// for single-purpose tokens, the embedded type claim.
	Verify(token string, purpose TokenPurpose) VerifyResult
}
