package contact

import (
	"context"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
)

// MessageRepository defines the interface for contact message persistence
type MessageRepository interface {
	// Save stores a message
	Save(ctx context.Context, msg *Message) error

	// FindAll lists messages, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Message, int64, error)
}

// Notifier forwards a contact message to the shop staff
type Notifier interface {
	Notify(ctx context.Context, msg *Message) error
}
