package domain

import "errors"

// Auth / user errors.
var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailNotVerified    = errors.New("email not verified")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrAlreadyVerified     = errors.New("email already verified")
	ErrMissingRefreshToken = errors.New("missing refresh token")
	ErrMailDelivery        = errors.New("mail delivery failed")
)

// Forum errors.
var (
	ErrThemeNotFound    = errors.New("theme not found")
	ErrThemeClosed      = errors.New("theme is closed")
	ErrCategoryNotFound = errors.New("categories not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrAlreadyLiked     = errors.New("already liked")
	ErrLikeNotFound     = errors.New("like not found")
)

// News errors.
var ErrNewsNotFound = errors.New("news not found")
