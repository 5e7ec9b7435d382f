package auth

import "github.com/blogzone/core/internal/models"

type RegisterDTO struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileDTO struct {
	FirstName *string        `json:"firstName"`
	LastName  *string        `json:"lastName"`
	Bio       *string        `json:"bio"`
	Avatar    *models.Avatar `json:"avatar"`
}

// session is the register/login response payload.
type session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
