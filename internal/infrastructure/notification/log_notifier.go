package notification

import (
	"context"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/contact"
	"go.uber.org/zap"
)

// LogNotifier forwards contact messages to the staff log stream. It stands in
// for a mail transport until one is configured.
type LogNotifier struct {
	logger    *zap.Logger
	recipient string
}

// NewLogNotifier creates a notifier that logs each message as addressed to recipient
func NewLogNotifier(logger *zap.Logger, recipient string) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("contact"), recipient: recipient}
}

// Notify logs the message
func (n *LogNotifier) Notify(ctx context.Context, msg *contact.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n.logger.Info("New Contact Message: "+msg.Subject,
		zap.String("to", n.recipient),
		zap.String("message_id", msg.ID.String()),
		zap.String("from_name", msg.Name),
		zap.String("from_email", msg.Email),
		zap.String("body", msg.Body),
	)
	return nil
}

var _ contact.Notifier = (*LogNotifier)(nil)
