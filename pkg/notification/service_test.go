package notification

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/gatherly/gatherly/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_EventCreated_FansOutToMembers(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 2})
	broker.Subscribe(model.User{ID: 3})
	repository := &mockNotificationRepository{}
	repository.
		On("findMemberIds", mock.Anything, uint(10)).
		Return([]uint{1, 2, 3}, nil)
	service := NewService(slog.Default(), repository, broker)

	groupId := uint(10)
	service.EventCreated(context.Background(), &model.Event{ID: 5, Title: "Sunday Hike", UserID: 1, GroupID: &groupId})

	notification, ok := broker.Receive(2)
	require.True(t, ok)
	assert.Equal(t, TypeEvent, notification.Type)
	assert.Equal(t, "Sunday Hike", notification.Title)
	assert.Equal(t, "/events/5", notification.Link)

	_, ok = broker.Receive(3)
	assert.True(t, ok)
	repository.AssertExpectations(t)
}

func TestService_EventCreated_StandaloneEventIsIgnored(t *testing.T) {
	repository := &mockNotificationRepository{}
	service := NewService(slog.Default(), repository, NewBroker())

	service.EventCreated(context.Background(), &model.Event{ID: 5, Title: "Standalone", UserID: 1})

	repository.AssertNotCalled(t, "findMemberIds", mock.Anything, mock.Anything)
}

func TestService_MessagePosted_SkipsAuthor(t *testing.T) {
	broker := NewBroker()
	broker.Subscribe(model.User{ID: 1})
	broker.Subscribe(model.User{ID: 2})
	repository := &mockNotificationRepository{}
	repository.
		On("findMemberIds", mock.Anything, uint(10)).
		Return([]uint{1, 2}, nil)
	service := NewService(slog.Default(), repository, broker)

	service.MessagePosted(context.Background(), &model.GroupMessage{ID: 7, Content: "hello", UserID: 1, GroupID: 10})

	notification, ok := broker.Receive(2)
	require.True(t, ok)
	assert.Equal(t, TypeMessage, notification.Type)
	assert.Equal(t, "/groups/10", notification.Link)

	select {
	case <-broker.subscribers[1].channel:
		t.Fatal("author should not receive their own message")
	default:
	}
}

func TestService_FindForUser_MergesAndSorts(t *testing.T) {
	now := time.Now()
	user := &model.User{ID: 1}
	repository := &mockNotificationRepository{}
	repository.
		On("findLatestGroupEvents", mock.Anything, uint(1), fetchLimit).
		Return([]model.Event{
			{ID: 1, Title: "Older Event", CreatedAt: now.Add(-2 * time.Hour)},
			{ID: 2, Title: "Newest Event", CreatedAt: now},
		}, nil)
	repository.
		On("findLatestGroupMessages", mock.Anything, uint(1), fetchLimit).
		Return([]model.GroupMessage{
			{ID: 3, Content: "own message", UserID: 1, GroupID: 10, CreatedAt: now.Add(-30 * time.Minute)},
			{ID: 4, Content: "middle message", UserID: 2, GroupID: 10, CreatedAt: now.Add(-time.Hour)},
		}, nil)
	service := NewService(slog.Default(), repository, NewBroker())

	notifications, err := service.FindForUser(context.Background(), user)

	require.NoError(t, err)
	// the user's own messages are filtered out
	require.Len(t, notifications, 3)
	assert.Equal(t, "event-2", notifications[0].ID)
	assert.Equal(t, "message-4", notifications[1].ID)
	assert.Equal(t, "event-1", notifications[2].ID)
}

func TestService_FindForUser_CapsFeed(t *testing.T) {
	now := time.Now()
	var events []model.Event
	for i := 1; i <= fetchLimit; i++ {
		events = append(events, model.Event{ID: uint(i), Title: "Event", CreatedAt: now.Add(-time.Duration(i) * time.Minute)})
	}
	var messages []model.GroupMessage
	for i := 1; i <= fetchLimit; i++ {
		messages = append(messages, model.GroupMessage{ID: uint(i), Content: "Message", UserID: 2, GroupID: 10, CreatedAt: now.Add(-time.Duration(i) * time.Second)})
	}
	repository := &mockNotificationRepository{}
	repository.
		On("findLatestGroupEvents", mock.Anything, uint(1), fetchLimit).
		Return(events, nil)
	repository.
		On("findLatestGroupMessages", mock.Anything, uint(1), fetchLimit).
		Return(messages, nil)
	service := NewService(slog.Default(), repository, NewBroker())

	notifications, err := service.FindForUser(context.Background(), &model.User{ID: 1})

	require.NoError(t, err)
	assert.Len(t, notifications, feedLimit)
}

func TestFromMessage_Meta(t *testing.T) {
	message := model.GroupMessage{
		ID:      7,
		Content: "hello",
		UserID:  2,
		User:    &model.User{ID: 2, Name: "Ana"},
		GroupID: 10,
		Group:   &model.Group{ID: 10, Name: "Hikers"},
	}

	notification := fromMessage(message)

	assert.Equal(t, "Ana in Hikers", notification.Meta)
}

type mockNotificationRepository struct{ mock.Mock }

func (m *mockNotificationRepository) findMemberIds(ctx context.Context, groupId uint) ([]uint, error) {
	called := m.Called(ctx, groupId)
	ids, _ := called.Get(0).([]uint)
	return ids, called.Error(1)
}

func (m *mockNotificationRepository) findLatestGroupEvents(ctx context.Context, userId uint, limit int) ([]model.Event, error) {
	called := m.Called(ctx, userId, limit)
	events, _ := called.Get(0).([]model.Event)
	return events, called.Error(1)
}

func (m *mockNotificationRepository) findLatestGroupMessages(ctx context.Context, userId uint, limit int) ([]model.GroupMessage, error) {
	called := m.Called(ctx, userId, limit)
	messages, _ := called.Get(0).([]model.GroupMessage)
	return messages, called.Error(1)
}
