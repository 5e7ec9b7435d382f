package blog

import (
	"github.com/blogzone/core/internal/middleware"
	"github.com/blogzone/core/internal/pkg/authz"
	"github.com/blogzone/core/internal/pkg/pagination"
	"github.com/blogzone/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	b := rg.Group("/blogs")
	b.GET("", h.list)
	b.GET("/:slug", h.getBySlug)
	// gin cannot mix a literal segment with :slug at the same position, so
	// /blogs/user/:userId is matched through the param route and dispatched
	// on the first segment.
	b.GET("/:slug/:userId", h.listByUser)

	authed := b.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:slug", h.update)
	authed.DELETE("/:slug", h.delete)
	authed.POST("/:slug/like", h.like)
	authed.POST("/:slug/comments", h.comment)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	blogs, total, err := h.svc.List(c.Request.Context(), middleware.CurrentUser(c), ListQuery{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, blogs, q.Meta(total))
}

func (h *Handler) getBySlug(c *gin.Context) {
	b, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) listByUser(c *gin.Context) {
	if c.Param("slug") != "user" {
		response.NotFound(c, "")
		return
	}
	caller := middleware.CurrentUser(c)
	if err := authz.Authenticate(caller); err != nil {
		response.Error(c, err)
		return
	}
	author, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}
	blogs, err := h.svc.ListByAuthor(c.Request.Context(), author)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, blogs)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateBlogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.Create(c.Request.Context(), middleware.CurrentUser(c), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, b)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := h.blogID(c)
	if !ok {
		return
	}
	var dto UpdateBlogDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.Update(c.Request.Context(), middleware.CurrentUser(c), id, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := h.blogID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Blog deleted"})
}

func (h *Handler) like(c *gin.Context) {
	id, ok := h.blogID(c)
	if !ok {
		return
	}
	likes, err := h.svc.ToggleLike(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"likes": likes})
}

func (h *Handler) comment(c *gin.Context) {
	id, ok := h.blogID(c)
	if !ok {
		return
	}
	var dto CommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cm, err := h.svc.AddComment(c.Request.Context(), middleware.CurrentUser(c), id, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cm)
}

// blogID parses the document id from the shared :slug position used by the
// mutating routes.
func (h *Handler) blogID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("slug"))
	if err != nil {
		response.BadRequest(c, "Invalid blog id")
		return primitive.NilObjectID, false
	}
	return id, true
}
