package dto

import "github.com/creditkeep/creditkeep/internal/core/domain"

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=clerk manager admin"`
}

type UpdateUserRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=clerk manager admin"`
	IsActive *bool  `json:"isActive"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
