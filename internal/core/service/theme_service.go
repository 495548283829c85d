package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/forumhub/forum-backend/internal/core/domain"
	"github.com/forumhub/forum-backend/internal/core/ports"
)

type ThemeService struct {
	themes   ports.ThemeRepository
	comments ports.CommentRepository
	likes    ports.LikeRepository
	logger   zerolog.Logger
}

func NewThemeService(
	themes ports.ThemeRepository,
	comments ports.CommentRepository,
	likes ports.LikeRepository,
	logger zerolog.Logger,
) *ThemeService {
	return &ThemeService{themes: themes, comments: comments, likes: likes, logger: logger}
}

func (s *ThemeService) LastFive(ctx context.Context) ([]ports.ThemeSummary, error) {
	themes, err := s.themes.LastFive(ctx)
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return nil, domain.ErrThemeNotFound
	}

	out := make([]ports.ThemeSummary, 0, len(themes))
	for _, t := range themes {
		out = append(out, ports.ThemeSummary{
			ID:         t.ID,
			Title:      t.Title,
			Content:    t.Content,
			AuthorID:   t.AuthorID,
			AuthorName: t.AuthorName,
			CreatedAt:  t.CreatedAt,
		})
	}
	return out, nil
}

func (s *ThemeService) GetByID(ctx context.Context, id uint) (*domain.Theme, error) {
	return s.themes.FindByID(ctx, id)
}

func (s *ThemeService) Create(ctx context.Context, input ports.CreateThemeInput) (*domain.Theme, error) {
	theme, err := s.themes.Create(ctx, &domain.Theme{
		Title:    input.Title,
		Content:  input.Content,
		AuthorID: input.AuthorID,
	}, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("theme_id", theme.ID).Uint("author_id", input.AuthorID).Msg("theme created")
	return theme, nil
}

func (s *ThemeService) AddComment(ctx context.Context, input ports.CreateCommentInput) (*domain.Comment, error) {
	theme, err := s.themes.FindByID(ctx, input.ThemeID)
	if err != nil {
		return nil, err
	}
	if theme.IsClosed {
		return nil, domain.ErrThemeClosed
	}
	if input.ParentID != nil {
		parent, err := s.comments.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.ThemeID != input.ThemeID {
			return nil, domain.ErrCommentNotFound
		}
	}

	return s.comments.Create(ctx, &domain.Comment{
		Content:  input.Content,
		AuthorID: input.AuthorID,
		ThemeID:  input.ThemeID,
		ParentID: input.ParentID,
	})
}

func (s *ThemeService) Like(ctx context.Context, userID uint, target ports.LikeTarget) error {
	if err := s.checkTarget(ctx, target); err != nil {
		return err
	}
	return s.likes.Create(ctx, &domain.Like{
		UserID:    userID,
		ThemeID:   target.ThemeID,
		CommentID: target.CommentID,
		Type:      "like",
	})
}

func (s *ThemeService) Unlike(ctx context.Context, userID uint, target ports.LikeTarget) error {
	return s.likes.Delete(ctx, userID, target.ThemeID, target.CommentID)
}

func (s *ThemeService) checkTarget(ctx context.Context, target ports.LikeTarget) error {
	switch {
	case target.ThemeID != nil:
		_, err := s.themes.FindByID(ctx, *target.ThemeID)
		return err
	case target.CommentID != nil:
		_, err := s.comments.FindByID(ctx, *target.CommentID)
		return err
	default:
		return domain.ErrThemeNotFound
	}
}
