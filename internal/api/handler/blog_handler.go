package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/bloglist-api/internal/api/metrics"
	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/ports"
)

// BlogHandler handles HTTP requests for blog operations.
type BlogHandler struct {
	service ports.BlogService
}

func NewBlogHandler(service ports.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// --- Request types ---

type createBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

type updateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// List handles GET /api/blogs.
//
// @Summary      List blogs with their owners
// @Tags         blogs
// @Produce      json
// @Success      200  {array}   ports.BlogView
// @Failure      500  {object}  map[string]string
// @Router       /api/blogs [get]
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.service.ListBlogs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, blogs)
}

// Stats handles GET /api/blogs/stats.
//
// @Summary      Aggregate blog statistics
// @Tags         blogs
// @Produce      json
// @Success      200  {object}  domain.BlogStats
// @Failure      500  {object}  map[string]string
// @Router       /api/blogs/stats [get]
func (h *BlogHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Create handles POST /api/blogs.
//
// @Summary      Create a blog owned by the caller
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBlogRequest  true  "Blog"
// @Success      201   {object}  domain.Blog
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/blogs [post]
func (h *BlogHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req createBlogRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	blog, err := h.service.CreateBlog(c.Request().Context(), actor, ports.CreateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		return err
	}

	metrics.BlogsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, blog)
}

// Update handles PUT /api/blogs/:id. Any caller may update any blog.
//
// @Summary      Update a blog
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Blog id"
// @Param        body  body      updateBlogRequest  true  "Fields to change"
// @Success      200   {object}  domain.Blog
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/blogs/{id} [put]
func (h *BlogHandler) Update(c echo.Context) error {
	var req updateBlogRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	blog, err := h.service.UpdateBlog(c.Request().Context(), c.Param("id"), ports.UpdateBlogInput{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
		Likes:  req.Likes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, blog)
}

// Delete handles DELETE /api/blogs/:id.
//
// @Summary      Delete a blog owned by the caller
// @Tags         blogs
// @Security     BearerAuth
// @Param        id  path  string  true  "Blog id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/blogs/{id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteBlog(c.Request().Context(), actor, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.OwnershipViolationsTotal.Inc()
		}
		return err
	}

	metrics.BlogsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
