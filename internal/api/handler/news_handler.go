package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/forumhub/forum-backend/internal/core/ports"
)

type NewsHandler struct {
	newsService ports.NewsService
}

func NewNewsHandler(newsService ports.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

type newsRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=200"`
	Content string `json:"content" validate:"required,min=3"`
}

// List returns the latest news articles.
//
// @Summary      List latest news
// @Tags         news
// @Produce      json
// @Success      200  {array}   domain.News
// @Router       /news [get]
func (h *NewsHandler) List(c echo.Context) error {
	news, err := h.newsService.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, news)
}

// Get returns one news article.
//
// @Summary      Get a news article
// @Tags         news
// @Produce      json
// @Param        id  path  string  true  "Article id"
// @Success      200  {object}  domain.News
// @Failure      404  {object}  map[string]string
// @Router       /news/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	news, err := h.newsService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, news)
}

// Create publishes a news article.
//
// @Summary      Publish a news article
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newsRequest  true  "Article"
// @Success      201   {object}  domain.News
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	var req newsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	news, err := h.newsService.Create(c.Request().Context(), ports.NewsInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, news)
}

// Edit replaces the title and content of an article.
//
// @Summary      Edit a news article
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Article id"
// @Param        body  body      newsRequest  true  "Article"
// @Success      200   {object}  domain.News
// @Failure      404   {object}  map[string]string
// @Router       /news/{id} [put]
func (h *NewsHandler) Edit(c echo.Context) error {
	var req newsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	news, err := h.newsService.Edit(c.Request().Context(), c.Param("id"), ports.NewsInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, news)
}

// Remove deletes an article.
//
// @Summary      Delete a news article
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Article id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /news/{id} [delete]
func (h *NewsHandler) Remove(c echo.Context) error {
	if err := h.newsService.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "News deleted."})
}
