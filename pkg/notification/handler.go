package notification

import (
	"context"
	"io"
	"net/http"

	"github.com/gatherly/gatherly/internal/handler"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

func NewHandler(notificationService notificationService, broker broker) Handler {
	return Handler{
		notificationService: notificationService,
		broker:              broker,
	}
}

type Handler struct {
	notificationService notificationService
	broker              broker
}

type notificationService interface {
	FindForUser(ctx context.Context, user *model.User) ([]Notification, error)
}

type broker interface {
	Subscribe(user model.User)
	Unsubscribe(id uint)
	Receive(id uint) (Notification, bool)
}

// FindAll notifications
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /notifications findNotifications
	//
	// Activity feed
	//
	// Recent events and messages from the user's groups, newest first.
	// Returns an empty list for anonymous callers.
	//
	// responses:
	//   200: []Notification
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"notifications": []Notification{}})
		return
	}

	notifications, err := h.notificationService.FindForUser(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// Subscribe to the notification stream
func (h Handler) Subscribe(c *gin.Context) {
	// swagger:route GET /subscribe streamNotifications
	//
	// Stream notifications
	//
	// Stream live notifications over server-sent events
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Stream
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.broker.Subscribe(*user)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")

	defer h.broker.Unsubscribe(user.ID)

	// c.Done returns a nil channel unless the engine enables
	// ContextWithFallback, so the disconnect signal has to come from the
	// request context
	go func() {
		<-c.Request.Context().Done()
		h.broker.Unsubscribe(user.ID)
	}()

	c.Stream(func(w io.Writer) bool {
		if notification, ok := h.broker.Receive(user.ID); ok {
			c.Render(-1, sse.Event{
				Event: notification.Type,
				Data:  notification,
			})
			return true
		}
		return false
	})
}
