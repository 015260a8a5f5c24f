package message

import (
	"context"
	"net/http"

	"github.com/gatherly/gatherly/internal/handler"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(messageService messageService) Handler {
	return Handler{
		messageService: messageService,
	}
}

type Handler struct {
	messageService messageService
}

type messageService interface {
	Post(ctx context.Context, groupId uint, content string, author *model.User) (*model.GroupMessage, error)
	FindByGroup(ctx context.Context, groupId uint) ([]model.GroupMessage, error)
}

type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Post message
func (h Handler) Post(c *gin.Context) {
	// swagger:route POST /groups/{id}/messages postGroupMessage
	//
	// Post message
	//
	// Post a chat message to a group's message board
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: GroupMessage
	//   400: Error
	//   401: Error
	//   404: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	groupId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request PostMessageRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	message, err := h.messageService.Post(c.Request.Context(), groupId, request.Content, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// FindByGroup messages
func (h Handler) FindByGroup(c *gin.Context) {
	// swagger:route GET /groups/{id}/messages findGroupMessages
	//
	// List messages
	//
	// List a group's chat messages, oldest first
	//
	// responses:
	//   200: []GroupMessage
	//   400: Error
	//   404: Error
	groupId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	messages, err := h.messageService.FindByGroup(c.Request.Context(), groupId)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
