package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-backend/internal/core/domain"
	"github.com/forumhub/forum-backend/internal/core/ports"
)

const newsPageSize = 5

type NewsService struct {
	repo   ports.NewsRepository
	logger zerolog.Logger
}

func NewNewsService(repo ports.NewsRepository, logger zerolog.Logger) *NewsService {
	return &NewsService{repo: repo, logger: logger}
}

func (s *NewsService) GetAll(ctx context.Context) ([]domain.News, error) {
	return s.repo.FindLatest(ctx, newsPageSize)
}

func (s *NewsService) GetByID(ctx context.Context, id string) (*domain.News, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *NewsService) Create(ctx context.Context, input ports.NewsInput) (*domain.News, error) {
	news, err := s.repo.Create(ctx, &domain.News{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("news_id", news.ID).Msg("news created")
	return news, nil
}

func (s *NewsService) Edit(ctx context.Context, id string, input ports.NewsInput) (*domain.News, error) {
	return s.repo.Update(ctx, id, input)
}

func (s *NewsService) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
