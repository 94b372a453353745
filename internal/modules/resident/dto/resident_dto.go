package dto

import "time"

type CreateResidentRequest struct {
	ResidentID    string    `json:"residentId" binding:"required,max=50"`
	Name          string    `json:"name" binding:"required,max=150"`
	Address       string    `json:"address" binding:"required"`
	BirthDate     time.Time `json:"birthDate" binding:"required"`
	ContactNumber string    `json:"contactNumber" binding:"required,max=30"`
}

type UpdateResidentRequest struct {
	ResidentID    *string    `json:"residentId" binding:"omitempty,max=50"`
	Name          *string    `json:"name" binding:"omitempty,max=150"`
	Address       *string    `json:"address"`
	BirthDate     *time.Time `json:"birthDate"`
	ContactNumber *string    `json:"contactNumber" binding:"omitempty,max=30"`
}
