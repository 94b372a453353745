package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Request statuses accepted by the server. The browser client additionally
// displays labels like "approve" and "reject" in its filter UI; that
// vocabulary is a presentation-layer concern and is deliberately not
// accepted here.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ValidStatus reports whether s is in the server-side status vocabulary.
// The set is flat: any status may be set from any other, including moving a
// completed request back to pending.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Request binds one resident to one or more services. The service reference
// is either the legacy singular ServiceID or the request_services set, never
// both: older records carry the singular form, newer ones the plural.
type Request struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ResidentID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	Resident      *Resident  `json:"resident"`
	ServiceID     *uuid.UUID `gorm:"type:uuid" json:"-"`
	Service       *Service   `json:"service"`
	Services      []Service  `gorm:"many2many:request_services" json:"services"`
	DateRequested time.Time  `gorm:"not null;index" json:"dateRequested"`
	Status        string     `gorm:"size:30;not null" json:"status"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Request) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
