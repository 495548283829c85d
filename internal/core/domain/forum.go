package domain

import "time"

// Theme is a forum thread started by a user.
type Theme struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	IsPinned   bool       `json:"is_pinned"`
	IsClosed   bool       `json:"is_closed"`
	AuthorID   uint       `json:"author_id"`
	AuthorName string     `json:"author_name,omitempty"`
	Categories []Category `json:"categories,omitempty"`
	Comments   []Comment  `json:"comments,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Category groups themes; a theme may belong to several categories.
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Comment is a reply inside a theme. ParentID is set for nested replies.
type Comment struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	ThemeID    uint      `json:"theme_id"`
	ParentID   *uint     `json:"parent_comment_id,omitempty"`
	IsEdited   bool      `json:"is_edited"`
	IsDeleted  bool      `json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Like marks a user's reaction on a theme or a comment; exactly one of
// ThemeID/CommentID is set and the pair (user, target) is unique.
type Like struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	ThemeID   *uint     `json:"theme_id,omitempty"`
	CommentID *uint     `json:"comment_id,omitempty"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
