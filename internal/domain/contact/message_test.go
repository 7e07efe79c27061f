package contact

import (
	"errors"
	"testing"

	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	t.Run("valid message", func(t *testing.T) {
		msg, err := NewMessage(" Jane ", "jane@example.com", "Delivery", "When do you deliver on Sundays?")
		require.NoError(t, err)
		assert.Equal(t, "Jane", msg.Name)
		assert.Equal(t, "jane@example.com", msg.Email)
	})

	tests := []struct {
		name  string
		email string
		body  string
		field string
	}{
		{"short message", "jane@example.com", "too short", "message"},
		{"bad email", "not-an-email", "This is long enough", "email"},
		{"display name email", "Jane <jane@example.com>", "This is long enough", "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMessage("Jane", tt.email, "", tt.body)
			var verr *shared.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
			assert.True(t, errors.Is(err, shared.ErrValidation))
		})
	}
}
