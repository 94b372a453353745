package dto

type CreateStaffRequest struct {
	Name string `json:"name" binding:"required,max=150"`
	Role string `json:"role" binding:"required,max=100"`
}

type UpdateStaffRequest struct {
	Name *string `json:"name" binding:"omitempty,max=150"`
	Role *string `json:"role" binding:"omitempty,max=100"`
}
