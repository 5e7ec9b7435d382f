package user

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

// RegisterRoutes mounts the admin user management surface. Every route checks
// the admin role through authz; the stats overview shares the :id position
// with the single-user route and is dispatched on the literal "stats".
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/users", authMW)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.GET("/:id/overview", h.overview)
	g.PUT("/:id", h.update)
	g.PUT("/:id/role", h.updateRole)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	if err := authz.RequireAdmin(middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	q := pagination.FromContext(c)
	users, total, err := h.svc.List(c.Request.Context(), q.Skip(), int64(q.Limit))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, users, q.Meta(total))
}

func (h *Handler) get(c *gin.Context) {
	if err := authz.RequireAdmin(middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	id, ok := h.userID(c)
	if !ok {
		return
	}
	u, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) overview(c *gin.Context) {
	if c.Param("id") != "stats" {
		response.NotFound(c, "")
		return
	}
	if err := authz.RequireAdmin(middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) create(c *gin.Context) {
	if err := authz.RequireAdmin(middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	var dto CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, u)
}

func (h *Handler) update(c *gin.Context) {
	if err := authz.RequireAdmin(middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var dto UpdateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Update(c.Request.Context(), id, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) updateRole(c *gin.Context) {
	if err := authz.RequireAdmin(middleware.CurrentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var dto UpdateRoleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.UpdateRole(c.Request.Context(), id, &dto)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) delete(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	if err := authz.RequireAdmin(caller); err != nil {
		response.Error(c, err)
		return
	}
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if err := authz.RequireNotSelf(caller, id); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "User deleted"})
}

func (h *Handler) userID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return primitive.NilObjectID, false
	}
	return id, true
}
