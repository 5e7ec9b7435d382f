package upload

import (
	"net/http"
	"path/filepath"

	"github.com/blogzone/core/internal/pkg/imageurl"
	"github.com/blogzone/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the upload endpoints and the static trees the stored
// files are served from.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/uploads")
	for _, cat := range []string{imageurl.CategoryBlogs, imageurl.CategoryAvatars, imageurl.CategoryCategories} {
		g.StaticFS("/"+cat, gin.Dir(filepath.Join(h.svc.Dir(), cat), false))
	}

	authed := g.Group("", authMW)
	authed.POST("/blog-featured", h.single(KindBlogFeatured))
	authed.POST("/avatar", h.single(KindAvatar))
	authed.POST("/category-image", h.single(KindCategoryImage))
	authed.POST("/blog-images", h.multi)
	authed.DELETE("/:type/:filename", h.delete)
}

// single handles a one-file upload for the given slot.
func (h *Handler) single(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile(kind.Field)
		if err != nil {
			response.BadRequest(c, "No file uploaded")
			return
		}
		f, err := h.svc.Save(fh, kind)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Created(c, f)
	}
}

func (h *Handler) multi(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "No files uploaded")
		return
	}
	files := form.File[KindBlogImages.Field]
	if len(files) == 0 {
		response.BadRequest(c, "No files uploaded")
		return
	}
	if len(files) > MaxBlogImages {
		response.BadRequest(c, "Too many files (max 10)")
		return
	}

	out := make([]*File, 0, len(files))
	for _, fh := range files {
		f, err := h.svc.Save(fh, KindBlogImages)
		if err != nil {
			response.Error(c, err)
			return
		}
		out = append(out, f)
	}
	c.JSON(http.StatusCreated, gin.H{"files": out})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Remove(c.Param("type"), c.Param("filename")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"message": "File deleted"})
}
