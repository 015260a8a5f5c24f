package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/event"
	"github.com/gatherly/gatherly/pkg/group"
	"github.com/gatherly/gatherly/pkg/inttest"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopEventPublisher struct{}

func (nopEventPublisher) EventCreated(ctx context.Context, event *model.Event) {}

func TestEventAttendance(t *testing.T) {
	t.Parallel()

	db := inttest.SetupDB(t)
	groupService := group.NewService(group.NewRepository(db))
	eventService := event.NewService(event.NewRepository(db), groupService, nopEventPublisher{})

	ctx := context.Background()

	organizer := &model.User{Email: "ana@gatherly.test", Name: "Ana"}
	first := &model.User{Email: "marko@gatherly.test", Name: "Marko"}
	second := &model.User{Email: "eva@gatherly.test", Name: "Eva"}
	require.NoError(t, db.Create(organizer).Error)
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	newEvent := func(t *testing.T, title string, capacity *int) *model.Event {
		t.Helper()
		created, err := eventService.Create(ctx, event.CreateEvent{
			Title:    title,
			Date:     time.Now().Add(24 * time.Hour),
			City:     "Bled",
			Capacity: capacity,
		}, organizer)
		require.NoError(t, err)
		return created
	}

	attendeeRows := func(t *testing.T, eventId uint) int64 {
		t.Helper()
		var count int64
		require.NoError(t, db.Model(&model.Attendee{}).Where("event_id = ?", eventId).Count(&count).Error)
		return count
	}

	t.Run("CapacityBoundary", func(t *testing.T) {
		capacity := 1
		created := newEvent(t, "Sunrise Hike", &capacity)

		require.NoError(t, eventService.Join(ctx, created.ID, first))

		err := eventService.Join(ctx, created.ID, second)
		require.Error(t, err)
		assert.True(t, errdef.IsForbidden(err))
		assert.ErrorContains(t, err, "event is full")
		assert.Equal(t, int64(1), attendeeRows(t, created.ID))
	})

	t.Run("DuplicateJoinLeavesOneRow", func(t *testing.T) {
		created := newEvent(t, "Board Games Night", nil)

		require.NoError(t, eventService.Join(ctx, created.ID, first))
		require.NoError(t, eventService.Join(ctx, created.ID, first))

		assert.Equal(t, int64(1), attendeeRows(t, created.ID))
	})

	t.Run("LeaveThenRejoinFreesTheSlot", func(t *testing.T) {
		capacity := 1
		created := newEvent(t, "Pottery Workshop", &capacity)

		require.NoError(t, eventService.Join(ctx, created.ID, first))
		require.NoError(t, eventService.Leave(ctx, created.ID, first))
		require.NoError(t, eventService.Join(ctx, created.ID, second))

		assert.Equal(t, int64(1), attendeeRows(t, created.ID))
	})

	t.Run("LeaveNeverJoinedIsANoOp", func(t *testing.T) {
		created := newEvent(t, "City Run", nil)

		require.NoError(t, eventService.Leave(ctx, created.ID, second))
		assert.Equal(t, int64(0), attendeeRows(t, created.ID))
	})

	t.Run("JoinMissingEvent", func(t *testing.T) {
		err := eventService.Join(ctx, 4242, first)
		require.Error(t, err)
		assert.True(t, errdef.IsNotFound(err))
	})

	t.Run("DeleteRemovesAttendeeRows", func(t *testing.T) {
		created := newEvent(t, "Farewell Picnic", nil)
		require.NoError(t, eventService.Join(ctx, created.ID, first))

		require.NoError(t, eventService.Delete(ctx, created.ID, organizer))

		assert.Equal(t, int64(0), attendeeRows(t, created.ID))
		err := db.First(&model.Event{}, created.ID).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
