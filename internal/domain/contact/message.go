package contact

import (
	"net/mail"
	"strings"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
)

// MinMessageLength is the shortest accepted contact message
const MinMessageLength = 10

// Message is a submission of the storefront contact form
type Message struct {
	shared.BaseEntity
	Name    string `gorm:"type:varchar(100);not null"`
	Email   string `gorm:"type:varchar(254);not null"`
	Subject string `gorm:"type:varchar(200)"`
	Body    string `gorm:"column:message;type:text;not null"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "contact_messages"
}

// NewMessage validates and builds a contact message
func NewMessage(name, email, subject, body string) (*Message, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	body = strings.TrimSpace(body)

	verr := shared.NewValidationError("", "Please correct the contact form")
	if name == "" {
		verr.AddField("name", "Name is required")
	} else if len(name) > 100 {
		verr.AddField("name", "Name cannot exceed 100 characters")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		verr.AddField("email", "Enter a valid email address")
	}
	if len(body) < MinMessageLength {
		verr.AddField("message", "Message must be at least 10 characters long")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	return &Message{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Subject:    strings.TrimSpace(subject),
		Body:       body,
	}, nil
}
