package dto

import (
	"agrihub_backend/internal/models"
)

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type AdminUserFilter struct {
	Role     models.UserRole   `form:"role" validate:"omitempty,is-user-role"`
	Status   models.UserStatus `form:"status"`
	Verified *bool             `form:"verified"`
	Search   string            `form:"search"`
	Page     int               `form:"page" validate:"omitempty,min=1"`
	PageSize int               `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type AdminSetStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=pending active suspended banned"`
}

type UserListResponse struct {
	Users    []UserDTO `json:"users"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// PublicUserDTO is the projection shown to other marketplace users.
type PublicUserDTO struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Role   models.UserRole `json:"role"`
	Rating float64         `json:"rating,omitempty"`
}
