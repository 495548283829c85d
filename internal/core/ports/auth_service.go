package ports

import (
	"context"
	"io"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// AvatarUpload carries an uploaded avatar file from the handler to the
// service, which pushes it to object storage.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type EditProfileInput struct {
	Username string
	Avatar   *AvatarUpload
}

// AuthService orchestrates the registration/verification/session lifecycle.
// Inputs are pre-validated at the boundary; only domain errors are returned.
type AuthService interface {
	// Register creates an unverified user and mails a verification link.
	// No tokens are issued; the returned string is a human-readable message.
	Register(ctx context.Context, input RegisterInput) (string, error)
	// VerifyEmail consumes an email-verification token. Re-verifying an
	// already verified account fails with domain.ErrAlreadyVerified.
	VerifyEmail(ctx context.Context, token string) error
	// ResendVerification mails a fresh verification link to an unverified user.
	ResendVerification(ctx context.Context, email string) (string, error)
	// Login authenticates, updates last_login and issues access+refresh tokens.
	Login(ctx context.Context, email, password string) (*SessionTokens, error)
	// RefreshAccess mints a new access token for an already validated refresh
	// session. The refresh token itself is not rotated.
	RefreshAccess(ctx context.Context, userID uint) (string, error)
	// Logout deletes the session row for the given refresh token. Idempotent.
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID uint) (*domain.User, error)
	EditProfile(ctx context.Context, userID uint, input EditProfileInput) (*domain.User, error)
	// ChangePassword re-hashes and stores the new password after checking the
	// current one.
	ChangePassword(ctx context.Context, userID uint, current, newPassword string) (string, error)
	// ForgotPassword mails a password-reset link.
	ForgotPassword(ctx context.Context, email string) (string, error)
	// SetNewPassword consumes a reset token, stores the new hash and revokes
	// every refresh token of the user.
	SetNewPassword(ctx context.Context, token, newPassword string) (string, error)
}
