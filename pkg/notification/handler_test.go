package notification

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// closeNotifyingRecorder implements http.CloseNotifier, which gin's Stream
// requires from the response writer.
type closeNotifyingRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyingRecorder() *closeNotifyingRecorder {
	return &closeNotifyingRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyingRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func TestHandler_Subscribe_UnsubscribesOnClientDisconnect(t *testing.T) {
	broker := NewBroker()
	handler := NewHandler(&mockNotificationService{}, broker)

	recorder := newCloseNotifyingRecorder()
	c, _ := gin.CreateTestContext(recorder)
	ctx, cancel := context.WithCancel(context.Background())
	c.Request = httptest.NewRequest(http.MethodGet, "/subscribe", nil).WithContext(ctx)
	c.Set("user", &model.User{ID: 7})

	done := make(chan struct{})
	go func() {
		handler.Subscribe(c)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(broker.Subscribers()) == 1
	}, time.Second, 10*time.Millisecond, "subscription should be registered")

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not return after the client disconnected")
	}
	assert.Empty(t, broker.Subscribers())
}

func TestHandler_FindAll_AnonymousGetsEmptyFeed(t *testing.T) {
	handler := NewHandler(&mockNotificationService{}, NewBroker())

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/notifications", nil)

	handler.FindAll(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"notifications": []}`, recorder.Body.String())
}

type mockNotificationService struct{ mock.Mock }

func (m *mockNotificationService) FindForUser(ctx context.Context, user *model.User) ([]Notification, error) {
	called := m.Called(ctx, user)
	return called.Get(0).([]Notification), called.Error(1)
}
