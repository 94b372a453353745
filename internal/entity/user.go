package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Access roles carried in the JWT role claim.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User is a login account. A staff-role account points at its roster entry;
// admin accounts have no staff reference.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         string     `gorm:"size:20;not null" json:"role"`
	StaffID      *uuid.UUID `gorm:"type:uuid" json:"-"`
	Staff        *Staff     `json:"staff,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
