package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resident is the root of the ownership cascade: deleting a resident removes
// their requests and, through those, any assignments.
type Resident struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID    string    `gorm:"size:50;uniqueIndex;not null" json:"residentId"`
	Name          string    `gorm:"size:150;not null" json:"name"`
	Address       string    `gorm:"type:text;not null" json:"address"`
	BirthDate     time.Time `gorm:"not null" json:"birthDate"`
	ContactNumber string    `gorm:"size:30;not null" json:"contactNumber"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Resident) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
