package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/forumhub/forum-backend/internal/core/domain"
	"github.com/forumhub/forum-backend/internal/core/ports"
)

// AuthService orchestrates the register/verify/login/reset lifecycle on top
// of the credential store, the token service and the mailer.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.RefreshTokenRepository
	tokens    ports.TokenService
	mailer    ports.Mailer
	storage   ports.FileStorage
	clientURL string
	logger    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.RefreshTokenRepository,
	tokens ports.TokenService,
	mailer ports.Mailer,
	storage ports.FileStorage,
	clientURL string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		mailer:    mailer,
		storage:   storage,
		clientURL: clientURL,
		logger:    logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return "", domain.ErrEmailTaken
	}
	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return "", domain.ErrUsernameTaken
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		// A concurrent registration may win the unique-constraint race; the
		// store reports it as the matching conflict error.
		return "", err
	}

	if err := s.sendVerificationMail(ctx, user); err != nil {
		return "", err
	}

	s.logger.Info().Str("email", user.Email).Uint("user_id", user.ID).Msg("user registered")
	return "Registration successful. Please check your email to verify your account!", nil
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.consumePurposeToken(ctx, token, ports.PurposeEmailVerification)
	if err != nil {
		return err
	}
	if user.IsVerified {
		// Re-clicking an already used but unexpired link is rejected, not
		// silently accepted.
		return domain.ErrAlreadyVerified
	}

	if err := s.users.UpdateFields(ctx, user.ID, map[string]any{"is_verified": true}); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("email verified")
	return nil
}

func (s *AuthService) ResendVerification(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user.IsVerified {
		return "", domain.ErrAlreadyVerified
	}

	if err := s.sendVerificationMail(ctx, user); err != nil {
		return "", err
	}
	return "Verification email resent. Please check your inbox.", nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.SessionTokens, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsVerified {
		return nil, domain.ErrEmailNotVerified
	}
	if !CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateFields(ctx, user.ID, map[string]any{"last_login": now}); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	tokens, err := s.tokens.IssueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user logged in")
	return tokens, nil
}

func (s *AuthService) RefreshAccess(ctx context.Context, userID uint) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return s.tokens.IssueAccess(user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.sessions.DeleteByToken(ctx, refreshToken)
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) EditProfile(ctx context.Context, userID uint, input ports.EditProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Username != "" && input.Username != user.Username {
		if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
			return nil, domain.ErrUsernameTaken
		}
		fields["username"] = input.Username
	}

	if input.Avatar != nil {
		key := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New(), path.Ext(input.Avatar.Filename))
		url, err := s.storage.Upload(ctx, key, input.Avatar.ContentType, input.Avatar.Body)
		if err != nil {
			return nil, fmt.Errorf("upload avatar: %w", err)
		}
		fields["avatar_url"] = url
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, newPassword string) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !CheckPassword(user.PasswordHash, current) {
		return "", domain.ErrInvalidCredentials
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdateFields(ctx, userID, map[string]any{"password_hash": hash}); err != nil {
		return "", err
	}

	return "Password changed successfully!", nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.IssuePurpose(user, ports.PurposePasswordReset)
	if err != nil {
		return "", fmt.Errorf("issue reset token: %w", err)
	}

	link := fmt.Sprintf("%s/auth/reset-password?token=%s", s.clientURL, token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Username, link); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("password reset mail failed")
		return "", domain.ErrMailDelivery
	}

	return "Password reset link sent. Please check your inbox.", nil
}

func (s *AuthService) SetNewPassword(ctx context.Context, token, newPassword string) (string, error) {
	user, err := s.consumePurposeToken(ctx, token, ports.PurposePasswordReset)
	if err != nil {
		return "", err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdateFields(ctx, user.ID, map[string]any{"password_hash": hash}); err != nil {
		return "", err
	}

	// Every open session of the user is revoked: the new password forces a
	// fresh login everywhere.
	if err := s.sessions.DeleteByUser(ctx, user.ID); err != nil {
		return "", fmt.Errorf("revoke sessions: %w", err)
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("password reset applied")
	return "Password has been reset. Please log in with your new password.", nil
}

// consumePurposeToken verifies a single-purpose token and resolves its user.
func (s *AuthService) consumePurposeToken(ctx context.Context, token string, purpose ports.TokenPurpose) (*domain.User, error) {
	result := s.tokens.Verify(token, purpose)
	switch result.Status {
	case ports.TokenExpired:
		return nil, domain.ErrTokenExpired
	case ports.TokenMalformed:
		return nil, domain.ErrInvalidToken
	}

	id, err := SubjectID(result.Claims)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) sendVerificationMail(ctx context.Context, user *domain.User) error {
	token, err := s.tokens.IssuePurpose(user, ports.PurposeEmailVerification)
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}

	link := fmt.Sprintf("%s/api/auth/verify-email/%s", s.clientURL, token)
	if err := s.mailer.SendVerification(ctx, user.Email, user.Username, link); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("verification mail failed")
		return domain.ErrMailDelivery
	}
	return nil
}
