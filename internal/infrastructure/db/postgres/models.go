package postgres

import "time"

// gorm models for the relational store. Domain types stay free of ORM tags;
// repositories convert at the boundary.

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"size:30;uniqueIndex;not null"`
	Username     string `gorm:"size:30;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:user"`
	AvatarURL    string
	LastLogin    *time.Time
	IsVerified   bool `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

type RefreshToken struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Token     string    `gorm:"uniqueIndex;not null"`
	UserID    uint      `gorm:"index;not null"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

type Theme struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	Title      string `gorm:"size:100;not null"`
	Content    string `gorm:"type:text;not null"`
	IsPinned   bool   `gorm:"not null;default:false"`
	IsClosed   bool   `gorm:"not null;default:false"`
	AuthorID   uint   `gorm:"index;not null"`
	Author     User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Categories []Category `gorm:"many2many:theme_categories"`
	Comments   []Comment  `gorm:"foreignKey:ThemeID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Theme) TableName() string { return "themes" }

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:50;uniqueIndex;not null"`
}

func (Category) TableName() string { return "categories" }

type Comment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Content   string `gorm:"type:text;not null"`
	IsEdited  bool   `gorm:"not null;default:false"`
	IsDeleted bool   `gorm:"not null;default:false"`
	AuthorID  uint   `gorm:"index;not null"`
	Author    User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	ThemeID   uint   `gorm:"index;not null"`
	ParentID  *uint  `gorm:"column:parent_comment_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Comment) TableName() string { return "comments" }

// Exactly one of ThemeID/CommentID is set per row. A single composite unique
// index cannot enforce one-like-per-target because the NULL column keeps every
// row distinct, so uniqueness is split into one partial index per target kind.
type Like struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_like_theme;uniqueIndex:idx_like_comment"`
	ThemeID   *uint  `gorm:"uniqueIndex:idx_like_theme,where:comment_id IS NULL"`
	CommentID *uint  `gorm:"uniqueIndex:idx_like_comment,where:theme_id IS NULL"`
	Type      string `gorm:"not null;default:like"`
	CreatedAt time.Time
}

func (Like) TableName() string { return "likes" }
