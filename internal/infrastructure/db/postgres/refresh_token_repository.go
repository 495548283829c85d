package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

// RefreshTokenRepository is the revocation table: a refresh token is only
// valid while its row exists.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, token string, userID uint, expiresAt time.Time) error {
	row := RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *RefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	var row RefreshToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return &domain.RefreshToken{
		ID:        row.ID,
		Token:     row.Token,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	// Deleting a missing row is not an error: logout is idempotent.
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&RefreshToken{}).Error
}

func (r *RefreshTokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&RefreshToken{}).Error
}

// DeleteExpired sweeps sessions whose expiry has passed. Run periodically;
// the refresh guard already rejects stale rows, this just keeps the table
// small.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&RefreshToken{})
	return result.RowsAffected, result.Error
}
