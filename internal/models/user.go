package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a user's access level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the two recognized roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Avatar is the image reference embedded in a user profile. URL and Path are
// derived from Filename on the way out and stored only when a client sent
// them explicitly.
type Avatar struct {
	Filename     string `bson:"filename,omitempty"     json:"filename,omitempty"`
	OriginalName string `bson:"originalName,omitempty" json:"originalName,omitempty"`
	URL          string `bson:"url,omitempty"          json:"url,omitempty"`
	Path         string `bson:"path,omitempty"         json:"path,omitempty"`
}

// Profile holds the user-editable part of an account.
type Profile struct {
	FirstName string  `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName  string  `bson:"lastName,omitempty"  json:"lastName,omitempty"`
	Bio       string  `bson:"bio,omitempty"       json:"bio,omitempty"`
	Avatar    *Avatar `bson:"avatar,omitempty"    json:"avatar,omitempty"`
}

// User is a registered account. The password hash never serializes to JSON.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username"      json:"username"`
	Email     string             `bson:"email"         json:"email"`
	Password  string             `bson:"password"      json:"-"`
	Role      Role               `bson:"role"          json:"role"`
	Profile   Profile            `bson:"profile"       json:"profile"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthorInfo is the public slice of a user attached to blogs and comments.
type AuthorInfo struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Profile  Profile            `json:"profile"`
}

// Author builds the public author view of the user.
func (u *User) Author() *AuthorInfo {
	if u == nil {
		return nil
	}
	return &AuthorInfo{ID: u.ID, Username: u.Username, Profile: u.Profile}
}
