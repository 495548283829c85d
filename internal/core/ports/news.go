package ports

import (
	"context"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

type NewsInput struct {
	Title   string
	Content string
}

// NewsRepository is the document-store boundary for news articles.
type NewsRepository interface {
	Create(ctx context.Context, news *domain.News) (*domain.News, error)
	FindByID(ctx context.Context, id string) (*domain.News, error)
	// FindLatest returns up to limit articles, newest first.
	FindLatest(ctx context.Context, limit int) ([]domain.News, error)
	Update(ctx context.Context, id string, input NewsInput) (*domain.News, error)
	Delete(ctx context.Context, id string) error
}

type NewsService interface {
	GetAll(ctx context.Context) ([]domain.News, error)
	GetByID(ctx context.Context, id string) (*domain.News, error)
	Create(ctx context.Context, input NewsInput) (*domain.News, error)
	Edit(ctx context.Context, id string, input NewsInput) (*domain.News, error)
	Remove(ctx context.Context, id string) error
}
