package ports

import (
	"context"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

type ThemeRepository interface {
	// Create persists the theme and attaches it to the given categories.
	Create(ctx context.Context, theme *domain.Theme, categoryIDs []uint) (*domain.Theme, error)
	// FindByID loads a theme with its author name, categories and comments
	// ordered oldest first.
	FindByID(ctx context.Context, id uint) (*domain.Theme, error)
	// LastFive returns the five newest themes with their author names.
	LastFive(ctx context.Context) ([]domain.Theme, error)
}

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id uint) (*domain.Comment, error)
}

type LikeRepository interface {
	// Create inserts a like; a duplicate (user, target) pair surfaces as
	// domain.ErrAlreadyLiked.
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, userID uint, themeID, commentID *uint) error
}
