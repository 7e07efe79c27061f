package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	contactapp "github.com/kasper14code-rgb/FreshMarket-project/internal/application/contact"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
)

// ContactInbox stores and lists contact form messages
type ContactInbox interface {
	Submit(ctx context.Context, req contactapp.SubmitRequest) (*contactapp.SubmitResponse, error)
	List(ctx context.Context, filter contactapp.ListFilter) (*shared.Paginated[contactapp.MessageResponse], error)
}

// ContactHandler handles the public contact form and the admin inbox
type ContactHandler struct {
	BaseHandler
	inbox ContactInbox
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(inbox ContactInbox) *ContactHandler {
	return &ContactHandler{inbox: inbox}
}

// Submit stores a contact message
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactapp.SubmitRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.inbox.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns stored messages for staff
func (h *ContactHandler) List(c *gin.Context) {
	var filter contactapp.ListFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	page, err := h.inbox.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	SuccessPage(c, page)
}
