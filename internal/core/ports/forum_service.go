package ports

import (
	"context"
	"time"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

// ThemeSummary is the list representation of a theme.
type ThemeSummary struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateThemeInput struct {
	Title       string
	Content     string
	AuthorID    uint
	CategoryIDs []uint
}

type CreateCommentInput struct {
	ThemeID  uint
	AuthorID uint
	Content  string
	ParentID *uint
}

// LikeTarget identifies what a like points at: exactly one field is set.
type LikeTarget struct {
	ThemeID   *uint
	CommentID *uint
}

type ThemeService interface {
	LastFive(ctx context.Context) ([]ThemeSummary, error)
	GetByID(ctx context.Context, id uint) (*domain.Theme, error)
	Create(ctx context.Context, input CreateThemeInput) (*domain.Theme, error)
	AddComment(ctx context.Context, input CreateCommentInput) (*domain.Comment, error)
	Like(ctx context.Context, userID uint, target LikeTarget) error
	Unlike(ctx context.Context, userID uint, target LikeTarget) error
}

type CategoryService interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
}
