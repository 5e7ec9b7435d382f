package blog

import "github.com/blogzone/core/internal/models"

type CreateBlogDTO struct {
	Title         string         `json:"title" binding:"required"`
	Content       string         `json:"content" binding:"required"`
	Excerpt       string         `json:"excerpt"`
	Category      string         `json:"category"`
	Tags          []string       `json:"tags"`
	FeaturedImage string         `json:"featuredImage"`
	Images        []models.Image `json:"images"`
	Status        string         `json:"status"`
}

type UpdateBlogDTO struct {
	Title         *string         `json:"title"`
	Content       *string         `json:"content"`
	Excerpt       *string         `json:"excerpt"`
	Category      *string         `json:"category"`
	Tags          *[]string       `json:"tags"`
	FeaturedImage *string         `json:"featuredImage"`
	Images        *[]models.Image `json:"images"`
	Status        *string         `json:"status"`
}

type CommentDTO struct {
	Content string `json:"content" binding:"required"`
}

// ListQuery narrows the public listing.
type ListQuery struct {
	Status   string
	Category string
	Page     int
	Limit    int
}
