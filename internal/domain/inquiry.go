package domain

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a contact form submission. WeddingDate is nil when the visitor
// left the date blank.
type Inquiry struct {
	ID          uuid.UUID
	Name        string
	Email       string
	Phone       string
	WeddingDate *time.Time
	Venue       string
	Message     string
	CreatedAt   time.Time
}
