package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/contact"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"go.uber.org/zap"
)

// MsgContactSent is returned after a contact message is stored
const MsgContactSent = "Thank you! Your message has been sent successfully."

// SubmitRequest is the contact form
type SubmitRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=254"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
}

// MessageResponse represents a stored contact message
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SubmitResponse carries the status message shown to the sender
type SubmitResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

// ListFilter holds the admin inbox query
type ListFilter struct {
	Search   string `form:"q" binding:"max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=created_at name email subject"`
	SortDir  string `form:"sort_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ContactService stores contact form submissions and forwards them to staff
type ContactService struct {
	repo     contact.MessageRepository
	notifier contact.Notifier
	logger   *zap.Logger
}

// NewContactService creates a new ContactService. notifier may be nil.
func NewContactService(repo contact.MessageRepository, notifier contact.Notifier, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactService{repo: repo, notifier: notifier, logger: logger}
}

// Submit stores the message, then notifies staff. A failed notification is
// logged and does not fail the submission.
func (s *ContactService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	msg, err := contact.NewMessage(req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.logger.Warn("failed to notify staff of contact message",
				zap.String("message_id", msg.ID.String()),
				zap.Error(err),
			)
		}
	}

	return &SubmitResponse{Message: MsgContactSent, ID: msg.ID}, nil
}

// List returns stored messages for the admin inbox, newest first by default
func (s *ContactService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[MessageResponse], error) {
	f := shared.DefaultFilter()
	f.Search = filter.Search
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.SortBy != "" {
		f.OrderBy = filter.SortBy
	}
	if filter.SortDir != "" {
		f.OrderDir = filter.SortDir
	}

	msgs, total, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]MessageResponse, len(msgs))
	for i := range msgs {
		items[i] = MessageResponse{
			ID:        msgs[i].ID,
			Name:      msgs[i].Name,
			Email:     msgs[i].Email,
			Subject:   msgs[i].Subject,
			Message:   msgs[i].Body,
			CreatedAt: msgs[i].CreatedAt,
		}
	}
	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}
