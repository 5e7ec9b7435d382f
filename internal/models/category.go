package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups blogs. Parent is an optional self-reference forming a tree;
// assignments that would close a cycle are rejected by the service layer.
type Category struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"    json:"id"`
	Name        string              `bson:"name"             json:"name"`
	Slug        string              `bson:"slug"             json:"slug"`
	Description string              `bson:"description"      json:"description"`
	Color       string              `bson:"color"            json:"color"`
	Icon        string              `bson:"icon,omitempty"   json:"icon,omitempty"`
	Image       string              `bson:"image,omitempty"  json:"image,omitempty"`
	ParentID    *primitive.ObjectID `bson:"parent,omitempty" json:"parentId,omitempty"`
	BlogsCount  int64               `bson:"blogsCount"       json:"blogsCount"`
	CreatedAt   time.Time           `bson:"createdAt"        json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"        json:"updatedAt"`
}

// DefaultCategoryColor is applied when a category is created without one.
const DefaultCategoryColor = "#007bff"

// CategoryRef is the compact category view attached to serialized blogs.
type CategoryRef struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
	Slug string             `json:"slug"`
}

// Ref builds the compact reference of the category.
func (c *Category) Ref() *CategoryRef {
	if c == nil {
		return nil
	}
	return &CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}
