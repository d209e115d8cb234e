package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentFree      = "FREE"
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

// Ticket is one user's claim on one event. The (event_id, user_id) pair is
// unique, as is the redemption code scanned at check-in.
type Ticket struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	EventID       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_event_user" json:"event_id"`
	Event         *Event         `gorm:"foreignKey:EventID" json:"event,omitempty"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_event_user" json:"user_id"`
	User          *User          `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Code          string         `gorm:"unique;not null" json:"code"`
	Claimed       bool           `gorm:"not null;default:true" json:"claimed"`
	CheckedIn     bool           `gorm:"not null;default:false" json:"checked_in"`
	CheckedInAt   *time.Time     `json:"checked_in_at,omitempty"`
	PaymentStatus string         `gorm:"not null;default:'FREE'" json:"payment_status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
