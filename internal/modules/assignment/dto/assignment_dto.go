package dto

import "time"

type ListAssignmentsFilter struct {
	RequestID string `form:"requestId" binding:"omitempty,uuid"`
	StaffID   string `form:"staffId" binding:"omitempty,uuid"`
}

type CreateAssignmentInput struct {
	RequestID    string     `json:"requestId" binding:"required,uuid"`
	StaffID      string     `json:"staffId" binding:"required,uuid"`
	DateAssigned *time.Time `json:"dateAssigned"`
}
