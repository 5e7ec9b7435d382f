package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/blogzone/core/internal/pkg/apperrors"
	"github.com/blogzone/core/internal/pkg/imageurl"
	"github.com/google/uuid"
)

const mb = 1 << 20

// The upload slots and their limits.
var (
	KindBlogFeatured  = Kind{Field: "featuredImage", Category: imageurl.CategoryBlogs, MaxBytes: 5 * mb}
	KindAvatar        = Kind{Field: "avatar", Category: imageurl.CategoryAvatars, MaxBytes: 2 * mb}
	KindCategoryImage = Kind{Field: "categoryImage", Category: imageurl.CategoryCategories, MaxBytes: 3 * mb}
	KindBlogImages    = Kind{Field: "images", Category: imageurl.CategoryBlogs, MaxBytes: 5 * mb}
)

// MaxBlogImages caps a single multi-image upload.
const MaxBlogImages = 10

// categories lists the servable upload trees; anything else is rejected.
var categories = map[string]bool{
	imageurl.CategoryBlogs:      true,
	imageurl.CategoryAvatars:    true,
	imageurl.CategoryCategories: true,
}

// Service stores uploaded images on disk under one directory per category.
type Service struct {
	dir      string
	resolver imageurl.Resolver
}

func NewService(dir string, resolver imageurl.Resolver) *Service {
	return &Service{dir: dir, resolver: resolver}
}

// Save validates and persists one uploaded file under a fresh uuid-based name
// that keeps the original extension.
func (s *Service) Save(fh *multipart.FileHeader, kind Kind) (*File, error) {
	if fh.Size > kind.MaxBytes {
		return nil, apperrors.WithMessage(apperrors.ErrValidation,
			fmt.Sprintf("File too large (max %dMB)", kind.MaxBytes/mb))
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Only image files are allowed")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dir := filepath.Join(s.dir, kind.Category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	return &File{
		Filename:     name,
		OriginalName: fh.Filename,
		Size:         fh.Size,
		URL:          s.resolver.Resolve(name, kind.Category),
		Path:         imageurl.Path(name, kind.Category),
	}, nil
}

// Remove deletes a stored file. The category must be one of the known upload
// trees and the filename a bare name, so a crafted path cannot escape the
// uploads directory.
func (s *Service) Remove(category, filename string) error {
	if !categories[category] {
		return apperrors.WithMessage(apperrors.ErrValidation, "Invalid upload type")
	}
	if filename == "" || filename != filepath.Base(filename) || strings.Contains(filename, "..") {
		return apperrors.WithMessage(apperrors.ErrValidation, "Invalid filename")
	}

	path := filepath.Join(s.dir, category, filename)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return apperrors.WithMessage(apperrors.ErrNotFound, "File not found")
		}
		return err
	}
	return nil
}

// Dir exposes the uploads root for static route wiring.
func (s *Service) Dir() string {
	return s.dir
}
