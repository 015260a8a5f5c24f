package event

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{
		db: db,
	}
}

func (r repository) find(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.
		WithContext(ctx).
		Preload("User").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("event %d doesn't exist", id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find event: %v", err)
	}

	return event, nil
}

func (r repository) findAll(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		WithContext(ctx).
		Preload("User").
		Preload("Attendees").
		Order("date asc").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all events: %v", err)
	}
	return events, nil
}

func (r repository) create(ctx context.Context, event *model.Event) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Create(&event).Error
}

// addAttendee joins the user to the event. The event row is locked for the
// duration of the transaction so the capacity check and the insert act as one
// atomic step; two concurrent joins for the last open slot can't both pass
// the check. A duplicate join resolves as success via the unique index.
func (r repository) addAttendee(ctx context.Context, eventId uint, userId uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event model.Event
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, eventId).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errdef.NewNotFound("event %d doesn't exist", eventId)
		}
		if err != nil {
			return err
		}

		if event.Capacity != nil {
			var count int64
			if err := tx.Model(&model.Attendee{}).Where("event_id = ?", eventId).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*event.Capacity) {
				return errdef.NewForbidden("event is full")
			}
		}

		attendee := &model.Attendee{UserID: userId, EventID: eventId}
		err = tx.Create(&attendee).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// already joined, idempotent success
			return nil
		}
		return err
	})
}

// removeAttendee is idempotent: leaving an event the user never joined is a
// no-op.
func (r repository) removeAttendee(ctx context.Context, eventId uint, userId uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.
		WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userId, eventId).
		Delete(&model.Attendee{}).Error
}

func (r repository) countAttendees(ctx context.Context, eventId uint) (int64, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&model.Attendee{}).
		Where("event_id = ?", eventId).
		Count(&count).Error
	return count, err
}

func (r repository) delete(ctx context.Context, eventId uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventId).Delete(&model.Attendee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, eventId).Error
	})
}
