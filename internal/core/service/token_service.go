package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/forumhub/forum-backend/internal/core/domain"
	"github.com/forumhub/forum-backend/internal/core/ports"
)

// TokenConfig carries the purpose-specific secrets and expiry windows.
// It is built once at process start and passed by reference.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	VerifySecret  []byte
	ResetSecret   []byte

	AccessTTL  time.Duration
	RefreshTTL time.Duration
	VerifyTTL  time.Duration
	ResetTTL   time.Duration
}

// TokenService signs and verifies all four token kinds and records issued
// refresh tokens in the revocation table.
type TokenService struct {
	cfg      *TokenConfig
	sessions ports.RefreshTokenRepository
}

func NewTokenService(cfg *TokenConfig, sessions ports.RefreshTokenRepository) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.VerifyTTL <= 0 {
		cfg.VerifyTTL = 24 * time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 15 * time.Minute
	}
	return &TokenService{cfg: cfg, sessions: sessions}
}

func (s *TokenService) IssueSession(ctx context.Context, user *domain.User) (*ports.SessionTokens, error) {
	access, err := s.sign(user, ports.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	expiresAt := time.Now().Add(s.cfg.RefreshTTL)
	refresh, err := s.sign(user, ports.PurposeRefresh)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	// One session row per call. Concurrent sessions are allowed, so no dedup.
	if err := s.sessions.Create(ctx, refresh, user.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("persist refresh token: %w", err)
	}

	return &ports.SessionTokens{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: expiresAt,
	}, nil
}

func (s *TokenService) IssueAccess(user *domain.User) (string, error) {
	return s.sign(user, ports.PurposeAccess)
}

func (s *TokenService) IssuePurpose(user *domain.User, purpose ports.TokenPurpose) (string, error) {
	if purpose != ports.PurposeEmailVerification && purpose != ports.PurposePasswordReset {
		return "", fmt.Errorf("purpose %q is not a single-purpose token", purpose)
	}
	return s.sign(user, purpose)
}

// Verify checks signature and expiry against the secret for the purpose and
// returns a tagged result. The revocation table is not consulted here.
func (s *TokenService) Verify(token string, purpose ports.TokenPurpose) ports.VerifyResult {
	claims := &ports.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secretFor(purpose), nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ports.VerifyResult{Status: ports.TokenExpired}
	case err != nil, !parsed.Valid:
		return ports.VerifyResult{Status: ports.TokenMalformed}
	}

	// Single-purpose tokens carry a type discriminator; a mismatch means the
	// token was minted for a different flow.
	if purpose == ports.PurposeEmailVerification || purpose == ports.PurposePasswordReset {
		if claims.Type != string(purpose) {
			return ports.VerifyResult{Status: ports.TokenMalformed}
		}
	}

	return ports.VerifyResult{Status: ports.TokenValid, Claims: claims}
}

func (s *TokenService) sign(user *domain.User, purpose ports.TokenPurpose) (string, error) {
	claims := ports.Claims{
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttlFor(purpose))),
		},
	}
	if purpose == ports.PurposeEmailVerification || purpose == ports.PurposePasswordReset {
		claims.Type = string(purpose)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secretFor(purpose))
}

func (s *TokenService) secretFor(purpose ports.TokenPurpose) []byte {
	switch purpose {
	case ports.PurposeRefresh:
		return s.cfg.RefreshSecret
	case ports.PurposeEmailVerification:
		return s.cfg.VerifySecret
	case ports.PurposePasswordReset:
		return s.cfg.ResetSecret
	default:
		return s.cfg.AccessSecret
	}
}

func (s *TokenService) ttlFor(purpose ports.TokenPurpose) time.Duration {
	switch purpose {
	case ports.PurposeRefresh:
		return s.cfg.RefreshTTL
	case ports.PurposeEmailVerification:
		return s.cfg.VerifyTTL
	case ports.PurposePasswordReset:
		return s.cfg.ResetTTL
	default:
		return s.cfg.AccessTTL
	}
}

// SubjectID extracts the numeric user id from a set of verified claims.
func SubjectID(claims *ports.Claims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse token subject: %w", err)
	}
	return uint(id), nil
}
