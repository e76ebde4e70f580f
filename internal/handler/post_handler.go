package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "blogtab/internal/errors"
	"blogtab/internal/model"
	"blogtab/internal/service"
)

// PostHandler handles post endpoints.
type PostHandler struct {
	postService service.PostService
}

// NewPostHandler creates a new post handler.
func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// PostRequest represents a post create/update payload.
type PostRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// PostWithComments represents a post together with all of its comments.
type PostWithComments struct {
	Post     *model.Post     `json:"post"`
	Comments []model.Comment `json:"comments"`
}

// Create godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostRequest true "Post payload"
// @Success 201 {object} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.Create(c.Request().Context(), claims.UserID, req.Title, req.Description)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// List godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Param skip query int false "Offset into the result set"
// @Param limit query int false "Page size (capped at 100)"
// @Success 200 {array} model.Post
// @Failure 400 {object} errors.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		return respondError(apperrors.ErrInvalidPagination)
	}
	limit, err := queryInt(c, "limit", service.MaxPageLimit)
	if err != nil {
		return respondError(apperrors.ErrInvalidPagination)
	}

	posts, err := h.postService.List(c.Request().Context(), skip, limit)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// Get godoc
// @Summary Get a post with its comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostWithComments
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, comments, err := h.postService.GetWithComments(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, PostWithComments{Post: post, Comments: comments})
}

// Update godoc
// @Summary Update a post (owner only)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body PostRequest true "Post payload"
// @Success 200 {object} StatusMessage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.postService.Update(c.Request().Context(), id, claims.UserID, req.Title, req.Description); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, StatusMessage{Message: "post updated successfully"})
}

// Delete godoc
// @Summary Delete a post and its comments (owner only)
// @Tags posts
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), id, claims.UserID); err != nil {
		return respondError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
