package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/plumecms/plume-backend/internal/common"
	"github.com/plumecms/plume-backend/internal/domain"
	"github.com/plumecms/plume-backend/internal/middleware"
	"github.com/plumecms/plume-backend/internal/service"
	"github.com/plumecms/plume-backend/pkg/ginutil"
)

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	service service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// ListPosts godoc
// @Summary      List posts
// @Description  Returns a paginated list of posts
// @Tags         posts
// @Produce      json
// @Param        page   query  int  false  "page number"       default(1)
// @Param        limit  query  int  false  "items per page"    default(20)
// @Success      200  {object}  common.APIResponse{data=[]domain.PostResponse}
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	data, meta, err := h.service.ListPosts(page, limit)
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, meta)
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id  path  int  true  "post ID"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID")
		return
	}

	data, err := h.service.GetPost(id)
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// GetPostBySlug godoc
// @Summary      Get a post by slug
// @Tags         posts
// @Produce      json
// @Param        slug  path  string  true  "post slug"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/slug/{slug} [get]
func (h *PostHandler) GetPostBySlug(c *gin.Context) {
	data, err := h.service.GetPostBySlug(c.Param("slug"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post with a resolved slug and its first revision (auth required)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreatePostRequest  true  "create payload"
// @Success      201  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required")
		return
	}

	data, err := h.service.CreatePost(&req, actor)
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.CreatedResponse(c, data)
}

// UpdatePost godoc
// @Summary      Edit a post
// @Description  Updates post fields and appends a revision (auth required)
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                       true  "post ID"
// @Param        request  body  domain.UpdatePostRequest  true  "edit payload"
// @Success      200  {object}  common.APIResponse{data=domain.PostResponse}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID")
		return
	}

	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body")
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required")
		return
	}

	data, err := h.service.UpdatePost(id, &req, actor)
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post and all its revisions (auth required)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "post ID"
// @Success      200  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID")
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required")
		return
	}

	if err := h.service.DeletePost(id, actor); err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": id}, nil)
}

// ListRevisions godoc
// @Summary      List post revisions
// @Description  Returns the revision history of a post, newest first (auth required)
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "post ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.PostRevision}
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /posts/{id}/revisions [get]
func (h *PostHandler) ListRevisions(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, 400, "Invalid post ID")
		return
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		common.ErrorResponse(c, 401, "Authentication required")
		return
	}

	data, err := h.service.ListRevisions(id, actor)
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, data, nil)
}
