package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent   = "STUDENT"
	RoleOrganizer = "ORGANIZER"
	RoleAdmin     = "ADMIN"
)

const (
	AccountActive    = "ACTIVE"
	AccountPending   = "PENDING"
	AccountRejected  = "REJECTED"
	AccountSuspended = "SUSPENDED"
)

type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Email          string         `gorm:"unique;not null" json:"email"`
	StudentID      *string        `gorm:"uniqueIndex" json:"student_id,omitempty"`
	PasswordHash   string         `gorm:"not null" json:"-"`
	Role           string         `gorm:"not null;default:'STUDENT'" json:"role"`
	AccountStatus  string         `gorm:"not null;default:'ACTIVE'" json:"account_status"`
	OrganizationID *uuid.UUID     `gorm:"type:uuid" json:"organization_id,omitempty"`
	Organization   *Organization  `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

func ValidAccountStatus(status string) bool {
	switch status {
	case AccountActive, AccountPending, AccountRejected, AccountSuspended:
		return true
	}
	return false
}
