package dto

type CreateServiceRequest struct {
	ServiceType string `json:"serviceType" binding:"required,max=100"`
	Description string `json:"description"`
}

type UpdateServiceRequest struct {
	ServiceType *string `json:"serviceType" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}
