package imageurl

import (
	"testing"

	"github.com/blogzone/core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	r := New("http://localhost:5000")

	tests := []struct {
		name     string
		ref      string
		category string
		want     string
	}{
		{"empty", "", CategoryBlogs, ""},
		{"bare filename", "pic.png", CategoryBlogs, "http://localhost:5000/api/uploads/blogs/pic.png"},
		{"relative path reduces to filename", "/some/dir/pic.png", CategoryAvatars, "http://localhost:5000/api/uploads/avatars/pic.png"},
		{"http passes through", "http://cdn.example.com/pic.png", CategoryBlogs, "http://cdn.example.com/pic.png"},
		{"https passes through", "https://cdn.example.com/pic.png", CategoryCategories, "https://cdn.example.com/pic.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.ref, tt.category))
		})
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := New("http://localhost:5000/")

	for _, ref := range []string{"pic.png", "/uploads/pic.png", "https://cdn.example.com/pic.png", ""} {
		once := r.Resolve(ref, CategoryBlogs)
		assert.Equal(t, once, r.Resolve(once, CategoryBlogs), "ref %q", ref)
	}
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	a := New("http://localhost:5000")
	b := New("http://localhost:5000/")
	assert.Equal(t, a.Resolve("x.png", CategoryBlogs), b.Resolve("x.png", CategoryBlogs))
}

func TestAvatarDoesNotMutate(t *testing.T) {
	r := New("http://localhost:5000")
	in := &models.Avatar{Filename: "me.jpg"}

	out := r.Avatar(in)

	assert.Empty(t, in.URL)
	assert.Empty(t, in.Path)
	assert.Equal(t, "http://localhost:5000/api/uploads/avatars/me.jpg", out.URL)
	assert.Equal(t, "/api/uploads/avatars/me.jpg", out.Path)
}

func TestAvatarKeepsExplicitURL(t *testing.T) {
	r := New("http://localhost:5000")
	in := &models.Avatar{Filename: "me.jpg", URL: "https://cdn.example.com/me.jpg"}

	out := r.Avatar(in)
	assert.Equal(t, "https://cdn.example.com/me.jpg", out.URL)
}

func TestAvatarNil(t *testing.T) {
	r := New("http://localhost:5000")
	assert.Nil(t, r.Avatar(nil))
}

func TestBlogResolvesImages(t *testing.T) {
	r := New("http://localhost:5000")
	b := models.Blog{
		FeaturedImage: "cover.png",
		Images: []models.Image{
			{Filename: "a.png"},
			{Filename: "b.png", URL: "https://cdn.example.com/b.png"},
		},
	}

	out := r.Blog(b)

	assert.Equal(t, "http://localhost:5000/api/uploads/blogs/cover.png", out.FeaturedImage)
	assert.Equal(t, "http://localhost:5000/api/uploads/blogs/a.png", out.Images[0].URL)
	assert.Equal(t, "/api/uploads/blogs/a.png", out.Images[0].Path)
	assert.Equal(t, "https://cdn.example.com/b.png", out.Images[1].URL)

	// input untouched
	assert.Equal(t, "cover.png", b.FeaturedImage)
	assert.Empty(t, b.Images[0].URL)
}

func TestCategoryResolvesImage(t *testing.T) {
	r := New("http://localhost:5000")
	out := r.Category(models.Category{Image: "tech.png"})
	assert.Equal(t, "http://localhost:5000/api/uploads/categories/tech.png", out.Image)
}

func TestUserResolvesAvatar(t *testing.T) {
	r := New("http://localhost:5000")
	u := models.User{Profile: models.Profile{Avatar: &models.Avatar{Filename: "me.jpg"}}}

	out := r.User(u)
	assert.Equal(t, "http://localhost:5000/api/uploads/avatars/me.jpg", out.Profile.Avatar.URL)
	assert.Empty(t, u.Profile.Avatar.URL)
}
