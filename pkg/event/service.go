package event

import (
	"context"
	"time"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
)

func NewService(eventRepository eventRepository, groupService groupService, publisher publisher) *Service {
	return &Service{
		eventRepository,
		groupService,
		publisher,
	}
}

type eventRepository interface {
	create(ctx context.Context, event *model.Event) error
	find(ctx context.Context, id uint) (*model.Event, error)
	findAll(ctx context.Context) ([]model.Event, error)
	addAttendee(ctx context.Context, eventId uint, userId uint) error
	removeAttendee(ctx context.Context, eventId uint, userId uint) error
	countAttendees(ctx context.Context, eventId uint) (int64, error)
	delete(ctx context.Context, eventId uint) error
}

type groupService interface {
	Find(ctx context.Context, id uint) (*model.Group, error)
}

type publisher interface {
	EventCreated(ctx context.Context, event *model.Event)
}

type Service struct {
	eventRepository eventRepository
	groupService    groupService
	publisher       publisher
}

type CreateEvent struct {
	Title       string
	Description string
	Date        time.Time
	City        string
	Country     string
	ImageUrl    string
	Category    string
	Capacity    *int
}

func (s *Service) Create(ctx context.Context, create CreateEvent, organizer *model.User) (*model.Event, error) {
	event := &model.Event{
		Title:       create.Title,
		Description: create.Description,
		Date:        create.Date,
		City:        create.City,
		Country:     create.Country,
		ImageURL:    create.ImageUrl,
		Category:    create.Category,
		Capacity:    create.Capacity,
		UserID:      organizer.ID,
	}

	err := s.eventRepository.create(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// CreateForGroup creates an event hosted by a group. Only the group owner may
// schedule events for it. The event's country defaults to the group's.
func (s *Service) CreateForGroup(ctx context.Context, groupId uint, create CreateEvent, organizer *model.User) (*model.Event, error) {
	group, err := s.groupService.Find(ctx, groupId)
	if err != nil {
		return nil, err
	}

	if group.OwnerID != organizer.ID {
		return nil, errdef.NewForbidden("only the group owner can create events for group %d", groupId)
	}

	if create.Country == "" {
		create.Country = group.Country
	}

	event := &model.Event{
		Title:       create.Title,
		Description: create.Description,
		Date:        create.Date,
		City:        create.City,
		Country:     create.Country,
		ImageURL:    create.ImageUrl,
		Category:    create.Category,
		Capacity:    create.Capacity,
		UserID:      organizer.ID,
		GroupID:     &group.ID,
	}

	err = s.eventRepository.create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.publisher.EventCreated(ctx, event)

	return event, nil
}

func (s *Service) Find(ctx context.Context, id uint) (*model.Event, error) {
	return s.eventRepository.find(ctx, id)
}

func (s *Service) FindAll(ctx context.Context) ([]model.Event, error) {
	return s.eventRepository.findAll(ctx)
}

func (s *Service) CountAttendees(ctx context.Context, eventId uint) (int64, error) {
	return s.eventRepository.countAttendees(ctx, eventId)
}

// Join adds the user as a confirmed attendee. The capacity check and the
// insert run as one atomic step; a full event fails with forbidden and a
// repeated join is a no-op success.
func (s *Service) Join(ctx context.Context, eventId uint, user *model.User) error {
	return s.eventRepository.addAttendee(ctx, eventId, user.ID)
}

// Leave removes the user's attendance. Leaving an event the user never
// joined is a no-op.
func (s *Service) Leave(ctx context.Context, eventId uint, user *model.User) error {
	_, err := s.eventRepository.find(ctx, eventId)
	if err != nil {
		return err
	}

	return s.eventRepository.removeAttendee(ctx, eventId, user.ID)
}

// Delete removes the event and its attendee rows. Only the organizer or an
// administrator may delete an event.
func (s *Service) Delete(ctx context.Context, eventId uint, requester *model.User) error {
	event, err := s.eventRepository.find(ctx, eventId)
	if err != nil {
		return err
	}

	if event.UserID != requester.ID && !requester.IsAdmin {
		return errdef.NewForbidden("only the organizer or an administrator can delete event %d", eventId)
	}

	return s.eventRepository.delete(ctx, eventId)
}

// Filter runs the /filter search over the full event set.
func (s *Service) Filter(ctx context.Context, params FilterParams) ([]model.Event, int, error) {
	events, err := s.eventRepository.findAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	page, total := Filter(events, params, time.Now())
	return page, total, nil
}
