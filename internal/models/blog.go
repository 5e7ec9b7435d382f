package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogStatus is a blog's lifecycle state.
type BlogStatus string

const (
	StatusDraft     BlogStatus = "draft"
	StatusPublished BlogStatus = "published"
	StatusArchived  BlogStatus = "archived"
)

// Valid reports whether s is a recognized lifecycle state.
func (s BlogStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// Comment is a reader comment embedded in a blog document.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user"          json:"userId"`
	User      *AuthorInfo        `bson:"-"             json:"user,omitempty"`
	Content   string             `bson:"content"       json:"content"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
}

// Blog is a post document. The author reference is set at creation and never
// updated afterwards. Likes behave as a set: at most one entry per user,
// presence means liked. Views only ever increase.
type Blog struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"           json:"id"`
	Title         string               `bson:"title"                   json:"title"`
	Slug          string               `bson:"slug"                    json:"slug"`
	Content       string               `bson:"content"                 json:"content"`
	Excerpt       string               `bson:"excerpt,omitempty"       json:"excerpt,omitempty"`
	AuthorID      primitive.ObjectID   `bson:"author"                  json:"authorId"`
	Author        *AuthorInfo          `bson:"-"                       json:"author,omitempty"`
	CategoryID    *primitive.ObjectID  `bson:"category,omitempty"      json:"categoryId,omitempty"`
	Category      *CategoryRef         `bson:"-"                       json:"category,omitempty"`
	Tags          []string             `bson:"tags"                    json:"tags"`
	FeaturedImage string               `bson:"featuredImage,omitempty" json:"featuredImage,omitempty"`
	Images        []Image              `bson:"images"                  json:"images"`
	Status        BlogStatus           `bson:"status"                  json:"status"`
	Views         int64                `bson:"views"                   json:"views"`
	Likes         []primitive.ObjectID `bson:"likes"                   json:"likes"`
	Comments      []Comment            `bson:"comments"                json:"comments"`
	ContentHTML   string               `bson:"-"                       json:"contentHtml,omitempty"`
	CreatedAt     time.Time            `bson:"createdAt"               json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt"               json:"updatedAt"`
}

// LikedBy reports whether the given user is in the likes set.
func (b *Blog) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
