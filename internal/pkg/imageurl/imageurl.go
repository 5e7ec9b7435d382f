// Package imageurl reconciles stored image references with servable absolute
// URLs. A stored reference may be a bare filename, a server-relative path, or
// an already-absolute URL; resolution is idempotent and never mutates the
// entity passed in.
package imageurl

import (
	"strings"

	"github.com/blogzone/core/internal/models"
)

// Asset categories partition uploads into separate URL namespaces.
const (
	CategoryBlogs      = "blogs"
	CategoryAvatars    = "avatars"
	CategoryCategories = "categories"
)

// Resolver derives absolute URLs from the configured base URL.
type Resolver struct {
	base string
}

// New builds a resolver. The base URL's trailing slash is dropped so joined
// paths stay canonical.
func New(baseURL string) Resolver {
	return Resolver{base: strings.TrimRight(baseURL, "/")}
}

func isAbsolute(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// filename reduces a reference to its final path segment.
func filename(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

// Path returns the server-relative path for a stored filename.
func Path(ref, category string) string {
	if ref == "" {
		return ""
	}
	return "/api/uploads/" + category + "/" + filename(ref)
}

// Resolve maps a reference plus its asset category to one absolute URL.
// Empty in, empty out; absolute references pass through unchanged, which
// makes a second application a no-op.
func (r Resolver) Resolve(ref, category string) string {
	if ref == "" {
		return ""
	}
	if isAbsolute(ref) {
		return ref
	}
	return r.base + Path(ref, category)
}

// Image returns a copy of img with url and path filled in when absent. An
// explicit url supplied by the client is never overwritten.
func (r Resolver) Image(img models.Image, category string) models.Image {
	if img.Filename != "" && img.URL == "" {
		img.URL = r.Resolve(img.Filename, category)
	}
	if img.Filename != "" && img.Path == "" {
		img.Path = Path(img.Filename, category)
	}
	return img
}

// Avatar returns a normalized copy of the avatar, or nil for nil input.
func (r Resolver) Avatar(a *models.Avatar) *models.Avatar {
	if a == nil {
		return nil
	}
	out := *a
	if out.Filename != "" && out.URL == "" {
		out.URL = r.Resolve(out.Filename, CategoryAvatars)
	}
	if out.Filename != "" && out.Path == "" {
		out.Path = Path(out.Filename, CategoryAvatars)
	}
	return &out
}

// Blog returns a copy of the blog with its featured image and every element
// of the images collection resolved.
func (r Resolver) Blog(b models.Blog) models.Blog {
	b.FeaturedImage = r.Resolve(b.FeaturedImage, CategoryBlogs)
	if len(b.Images) > 0 {
		images := make([]models.Image, len(b.Images))
		for i, img := range b.Images {
			images[i] = r.Image(img, CategoryBlogs)
		}
		b.Images = images
	}
	return b
}

// Category returns a copy of the category with its image resolved.
func (r Resolver) Category(c models.Category) models.Category {
	c.Image = r.Resolve(c.Image, CategoryCategories)
	return c
}

// User returns a copy of the user with the avatar reference resolved.
func (r Resolver) User(u models.User) models.User {
	u.Profile.Avatar = r.Avatar(u.Profile.Avatar)
	return u
}

// Author returns a copy of the public author view with the avatar resolved.
func (r Resolver) Author(a *models.AuthorInfo) *models.AuthorInfo {
	if a == nil {
		return nil
	}
	out := *a
	out.Profile.Avatar = r.Avatar(out.Profile.Avatar)
	return &out
}
