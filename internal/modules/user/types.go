package user

import "github.com/blogzone/core/internal/models"

type CreateUserDTO struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type UpdateUserDTO struct {
	Username  *string        `json:"username"`
	Email     *string        `json:"email"`
	Password  *string        `json:"password"`
	Role      *string        `json:"role"`
	FirstName *string        `json:"firstName"`
	LastName  *string        `json:"lastName"`
	Bio       *string        `json:"bio"`
	Avatar    *models.Avatar `json:"avatar"`
}

type UpdateRoleDTO struct {
	Role string `json:"role" binding:"required"`
}

// Stats is the admin overview payload.
type Stats struct {
	Total       int64         `json:"totalUsers"`
	Admins      int64         `json:"adminUsers"`
	Regular     int64         `json:"regularUsers"`
	RecentUsers []models.User `json:"recentUsers"`
}
