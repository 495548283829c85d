package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/forumhub/forum-backend/internal/core/ports"
)

type ThemeHandler struct {
	themeService ports.ThemeService
}

func NewThemeHandler(themeService ports.ThemeService) *ThemeHandler {
	return &ThemeHandler{themeService: themeService}
}

type createThemeRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Content     string `json:"content" validate:"required,min=3"`
	CategoryIDs []uint `json:"category_ids"`
}

type createCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1"`
	ParentID *uint  `json:"parent_comment_id"`
}

type likeRequest struct {
	ThemeID   *uint `json:"theme_id"`
	CommentID *uint `json:"comment_id"`
}

// LastFive returns the five newest themes.
//
// @Summary      List the five newest themes
// @Tags         themes
// @Produce      json
// @Success      200  {array}   ports.ThemeSummary
// @Failure      404  {object}  map[string]string
// @Router       /themes/last-five [get]
func (h *ThemeHandler) LastFive(c echo.Context) error {
	themes, err := h.themeService.LastFive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themes)
}

// Get returns one theme with author, categories and comments.
//
// @Summary      Get a theme by id
// @Tags         themes
// @Produce      json
// @Param        id  path  int  true  "Theme id"
// @Success      200  {object}  domain.Theme
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /themes/{id} [get]
func (h *ThemeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	theme, err := h.themeService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, theme)
}

// Create opens a new theme authored by the authenticated user.
//
// @Summary      Create a theme
// @Tags         themes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createThemeRequest  true  "Theme"
// @Success      201   {object}  domain.Theme
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /themes [post]
func (h *ThemeHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	theme, err := h.themeService.Create(c.Request().Context(), ports.CreateThemeInput{
		Title:       req.Title,
		Content:     req.Content,
		AuthorID:    userID,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, theme)
}

// AddComment appends a comment (optionally a reply) to an open theme.
//
// @Summary      Comment on a theme
// @Tags         themes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Theme id"
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  domain.Comment
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /themes/{id}/comments [post]
func (h *ThemeHandler) AddComment(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	themeID, err := pathID(c)
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.themeService.AddComment(c.Request().Context(), ports.CreateCommentInput{
		ThemeID:  themeID,
		AuthorID: userID,
		Content:  req.Content,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// Like records the user's like on a theme or a comment.
//
// @Summary      Like a theme or comment
// @Tags         likes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      likeRequest  true  "Target"
// @Success      201   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /likes [post]
func (h *ThemeHandler) Like(c echo.Context) error {
	userID, target, err := h.bindLike(c)
	if err != nil {
		return err
	}

	if err := h.themeService.Like(c.Request().Context(), userID, target); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Liked!"})
}

// Unlike removes the user's like from a theme or a comment.
//
// @Summary      Remove a like
// @Tags         likes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      likeRequest  true  "Target"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /likes [delete]
func (h *ThemeHandler) Unlike(c echo.Context) error {
	userID, target, err := h.bindLike(c)
	if err != nil {
		return err
	}

	if err := h.themeService.Unlike(c.Request().Context(), userID, target); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Like removed."})
}

func (h *ThemeHandler) bindLike(c echo.Context) (uint, ports.LikeTarget, error) {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return 0, ports.LikeTarget{}, err
	}

	var req likeRequest
	if err := c.Bind(&req); err != nil {
		return 0, ports.LikeTarget{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if (req.ThemeID == nil) == (req.CommentID == nil) {
		return 0, ports.LikeTarget{}, echo.NewHTTPError(http.StatusBadRequest, "exactly one of theme_id or comment_id is required")
	}

	return userID, ports.LikeTarget{ThemeID: req.ThemeID, CommentID: req.CommentID}, nil
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
