package dto

type ListRequestsFilter struct {
	ResidentID string `form:"residentId" binding:"omitempty,uuid"`
	ServiceID  string `form:"serviceId" binding:"omitempty,uuid"`
	Status     string `form:"status"`
}

// CreateRequestInput carries either the legacy single serviceId or the
// serviceIds set. Exactly one of the two must be present; the service layer
// enforces that because "neither" has its own error message.
type CreateRequestInput struct {
	ResidentID string   `json:"residentId" binding:"required,uuid"`
	ServiceID  string   `json:"serviceId" binding:"omitempty,uuid"`
	ServiceIDs []string `json:"serviceIds" binding:"omitempty,dive,uuid"`
	Status     string   `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
}

// UpdateRequestStatusInput accepts only the status. Resident and service
// references are immutable after creation; anything else in the payload is
// ignored.
type UpdateRequestStatusInput struct {
	Status string `json:"status" binding:"required"`
}
