package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

type ThemeRepository struct {
	db *gorm.DB
}

func NewThemeRepository(db *gorm.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

func (r *ThemeRepository) Create(ctx context.Context, theme *domain.Theme, categoryIDs []uint) (*domain.Theme, error) {
	row := Theme{
		Title:    theme.Title,
		Content:  theme.Content,
		AuthorID: theme.AuthorID,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if len(categoryIDs) == 0 {
			return nil
		}
		var categories []Category
		if err := tx.Where("id IN ?", categoryIDs).Find(&categories).Error; err != nil {
			return err
		}
		if len(categories) != len(categoryIDs) {
			return domain.ErrCategoryNotFound
		}
		return tx.Model(&row).Association("Categories").Append(categories)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, row.ID)
}

func (r *ThemeRepository) FindByID(ctx context.Context, id uint) (*domain.Theme, error) {
	var row Theme
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Categories").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("created_at ASC")
		}).
		Preload("Comments.Author").
		First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrThemeNotFound
		}
		return nil, err
	}
	return toDomainTheme(&row), nil
}

func (r *ThemeRepository) LastFive(ctx context.Context) ([]domain.Theme, error) {
	var rows []Theme
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Limit(5).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	themes := make([]domain.Theme, 0, len(rows))
	for i := range rows {
		themes = append(themes, *toDomainTheme(&rows[i]))
	}
	return themes, nil
}

func toDomainTheme(row *Theme) *domain.Theme {
	theme := &domain.Theme{
		ID:         row.ID,
		Title:      row.Title,
		Content:    row.Content,
		IsPinned:   row.IsPinned,
		IsClosed:   row.IsClosed,
		AuthorID:   row.AuthorID,
		AuthorName: row.Author.Username,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	for _, c := range row.Categories {
		theme.Categories = append(theme.Categories, domain.Category{ID: c.ID, Name: c.Name})
	}
	for i := range row.Comments {
		theme.Comments = append(theme.Comments, *toDomainComment(&row.Comments[i]))
	}
	return theme
}

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	var rows []Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.Category{ID: row.ID, Name: row.Name})
	}
	return categories, nil
}

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	row := Comment{
		Content:  comment.Content,
		AuthorID: comment.AuthorID,
		ThemeID:  comment.ThemeID,
		ParentID: comment.ParentID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, row.ID)
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var row Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return toDomainComment(&row), nil
}

func toDomainComment(row *Comment) *domain.Comment {
	return &domain.Comment{
		ID:         row.ID,
		Content:    row.Content,
		AuthorID:   row.AuthorID,
		AuthorName: row.Author.Username,
		ThemeID:    row.ThemeID,
		ParentID:   row.ParentID,
		IsEdited:   row.IsEdited,
		IsDeleted:  row.IsDeleted,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Create(ctx context.Context, like *domain.Like) error {
	row := Like{
		UserID:    like.UserID,
		ThemeID:   like.ThemeID,
		CommentID: like.CommentID,
		Type:      like.Type,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (r *LikeRepository) Delete(ctx context.Context, userID uint, themeID, commentID *uint) error {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	switch {
	case themeID != nil:
		query = query.Where("theme_id = ?", *themeID)
	case commentID != nil:
		query = query.Where("comment_id = ?", *commentID)
	default:
		return domain.ErrLikeNotFound
	}

	result := query.Delete(&Like{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}
