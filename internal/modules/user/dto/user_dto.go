package dto

import (
	"barangaylink-backend/internal/entity"
	"github.com/google/uuid"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin staff"`
	StaffID  string `json:"staffId" binding:"omitempty,uuid"`
}

type ChangeOwnPasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type SetStaffPasswordInput struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UserResponse struct {
	ID       uuid.UUID     `json:"id"`
	Username string        `json:"username"`
	Role     string        `json:"role"`
	Staff    *entity.Staff `json:"staff,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
