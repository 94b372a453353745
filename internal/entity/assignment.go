package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment binds one staff member to one request. It is a leaf: deleting
// an assignment cascades nowhere. Deleting a request directly leaves its
// assignments behind with a dangling reference that reads render as null;
// only the resident-deletion cascade removes them.
type Assignment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID    uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Request      *Request  `json:"request"`
	StaffID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Staff        *Staff    `json:"staff"`
	DateAssigned time.Time `gorm:"not null;index" json:"dateAssigned"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}
