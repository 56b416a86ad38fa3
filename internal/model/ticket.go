package model

import (
	"time"

	"gorm.io/gorm"

	apperrors "ticketdesk/internal/errors"
)

// Status is the workflow state of a ticket. There is no transition table:
// any actor allowed to update a ticket may set any known status.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusClosed     Status = "closed"
)

// ParseStatus maps a raw string onto the closed status set.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusClosed:
		return Status(s), nil
	}
	return "", apperrors.ErrInvalidStatus
}

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusInProgress || s == StatusClosed
}

// Ticket represents a support request owned by exactly one user.
type Ticket struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Status      Status    `json:"status" gorm:"type:varchar(20);not null;default:'open';index"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeSave rejects unknown status values at the persistence boundary.
func (t *Ticket) BeforeSave(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = StatusOpen
	}
	if !t.Status.Valid() {
		return apperrors.ErrInvalidStatus
	}
	return nil
}
