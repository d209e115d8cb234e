package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventPending   = "PENDING"
	EventApproved  = "APPROVED"
	EventRejected  = "REJECTED"
	EventCancelled = "CANCELLED"
	EventCompleted = "COMPLETED"
)

const (
	TicketTypeFree = "FREE"
	TicketTypePaid = "PAID"
)

type Event struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"not null" json:"description"`
	Date           time.Time      `gorm:"not null" json:"date"`
	Location       string         `gorm:"not null" json:"location"`
	Category       string         `gorm:"not null" json:"category"`
	Capacity       int            `gorm:"not null" json:"capacity"`
	TicketsIssued  int            `gorm:"not null;default:0" json:"tickets_issued"`
	TicketType     string         `gorm:"not null;default:'FREE'" json:"ticket_type"`
	Price          *int           `json:"price,omitempty"`
	Status         string         `gorm:"not null;default:'PENDING';index" json:"status"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	Organization   *Organization  `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	CreatedByID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy      *User          `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Tickets        []Ticket       `gorm:"constraint:OnDelete:CASCADE" json:"tickets,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
