package ports

import (
	"context"
	"time"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

// UserRepository is the persistence boundary for user records. Uniqueness of
// email and username is enforced by the store; violations surface as
// domain.ErrEmailTaken / domain.ErrUsernameTaken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// UpdateFields patches the given columns on the user row.
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
}

// RefreshTokenRepository is the revocation table for refresh tokens.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token string, userID uint, expiresAt time.Time) error
	FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	// DeleteByToken removes a single session row. Deleting a missing row is
	// not an error (logout is idempotent).
	DeleteByToken(ctx context.Context, token string) error
	// DeleteByUser revokes every session of a user at once.
	DeleteByUser(ctx context.Context, userID uint) error
	// DeleteExpired sweeps rows whose expiry has passed and returns the
	// number removed.
	DeleteExpired(ctx context.Context) (int64, error)
}
