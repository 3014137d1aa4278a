package blog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tuneslot/internal/api"
	"tuneslot/internal/auth"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListPosts godoc
// @Summary      List published blog posts
// @Tags         blog
// @Produce      json
// @Param        limit   query     int  false  "Page size"    default(20)
// @Param        offset  query     int  false  "Page offset"  default(0)
// @Success      200     {array}   Post
// @Failure      500     {object}  api.ErrorResponse
// @Router       /blog [get]
func (h *Handler) ListPosts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	posts, err := h.repo.GetPublished(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary      Get a published post by slug
// @Tags         blog
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  Post
// @Failure      404   {object}  api.ErrorResponse
// @Router       /blog/{slug} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListAllPosts godoc
// @Summary      List all posts including drafts
// @Tags         blog
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Post
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/blog [get]
func (h *Handler) ListAllPosts(c *gin.Context) {
	posts, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CreatePost godoc
// @Summary      Create blog post
// @Tags         blog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePostRequest  true  "Post data"
// @Success      201      {object}  Post
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /admin/blog [post]
func (h *Handler) CreatePost(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	post, err := h.repo.Create(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Slug already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// UpdatePost godoc
// @Summary      Update blog post
// @Tags         blog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "Post ID"
// @Param        request  body      UpdatePostRequest  true  "Fields to update"
// @Success      200      {object}  Post
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /admin/blog/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid post ID"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	post, err := h.repo.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete blog post
// @Tags         blog
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /admin/blog/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid post ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Post deleted"})
}
