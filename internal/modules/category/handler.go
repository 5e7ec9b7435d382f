package category

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
	g := rg.Group("/categories")
	g.GET("", h.list)
	g.GET("/:slug", h.getBySlug)
	g.GET("/:slug/blogs", h.blogs)

	authed := g.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:slug", h.update)
	authed.DELETE("/:slug", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	cats, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cats)
}

func (h *Handler) getBySlug(c *gin.Context) {
	cat, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) blogs(c *gin.Context) {
	q := pagination.FromContext(c)
	cat, blogs, total, err := h.svc.Blogs(c.Request.Context(), c.Param("slug"), q.Skip(), int64(q.Limit))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"category": cat, "blogs": blogs, "pagination": q.Meta(total)})
}

func (h *Handler) create(c *gin.Context) {
	if err := authz.RequireAdmin(middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	var dto CreateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cat)
}

func (h *Handler) update(c *gin.Context) {
	if err := authz.RequireAdmin(middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	id, ok := h.categoryID(c)
	if !ok {
		return
	}
	var dto UpdateCategoryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), id, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, cat)
}

func (h *Handler) delete(c *gin.Context) {
	if err := authz.RequireAdmin(middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	id, ok := h.categoryID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "Category deleted"})
}

// categoryID parses the document id from the shared :slug position used by
// the mutating routes.
func (h *Handler) categoryID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("slug"))
	if err != nil {
		response.BadRequest(c, "Invalid category id")
		return primitive.NilObjectID, false
	}
	return id, true
}
