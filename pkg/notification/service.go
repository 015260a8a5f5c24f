package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/gatherly/gatherly/pkg/model"
	"golang.org/x/sync/errgroup"
)

const (
	fetchLimit = 15
	feedLimit  = 20
)

func NewService(logger *slog.Logger, notificationRepository notificationRepository, broker *Broker) *Service {
	return &Service{
		logger:                 logger,
		notificationRepository: notificationRepository,
		broker:                 broker,
	}
}

type notificationRepository interface {
	findMemberIds(ctx context.Context, groupId uint) ([]uint, error)
	findLatestGroupEvents(ctx context.Context, userId uint, limit int) ([]model.Event, error)
	findLatestGroupMessages(ctx context.Context, userId uint, limit int) ([]model.GroupMessage, error)
}

type Service struct {
	logger                 *slog.Logger
	notificationRepository notificationRepository
	broker                 *Broker
}

// EventCreated fans a new group event out to the group's connected members.
// Delivery is best effort, a failed member lookup only logs.
func (s *Service) EventCreated(ctx context.Context, event *model.Event) {
	if event.GroupID == nil {
		return
	}

	notification := fromEvent(*event)
	s.fanOut(ctx, *event.GroupID, event.UserID, notification)
}

// MessagePosted fans a new chat message out to the group's connected
// members, excluding the author.
func (s *Service) MessagePosted(ctx context.Context, message *model.GroupMessage) {
	notification := fromMessage(*message)
	s.fanOut(ctx, message.GroupID, message.UserID, notification)
}

func (s *Service) fanOut(ctx context.Context, groupId uint, actorId uint, notification Notification) {
	memberIds, err := s.notificationRepository.findMemberIds(ctx, groupId)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to find group members for notification", "error", err, "groupId", groupId)
		return
	}

	for _, memberId := range memberIds {
		if memberId == actorId {
			continue
		}
		s.broker.Send(memberId, notification)
	}
}

// FindForUser returns the user's recent activity feed, newest first. It
// merges the latest events and messages from the user's groups.
func (s *Service) FindForUser(ctx context.Context, user *model.User) ([]Notification, error) {
	var events []model.Event
	var messages []model.GroupMessage

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.notificationRepository.findLatestGroupEvents(ctx, user.ID, fetchLimit)
		return err
	})
	g.Go(func() error {
		var err error
		messages, err = s.notificationRepository.findLatestGroupMessages(ctx, user.ID, fetchLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load activity feed: %v", err)
	}

	notifications := make([]Notification, 0, len(events)+len(messages))
	for _, event := range events {
		notifications = append(notifications, fromEvent(event))
	}
	for _, message := range messages {
		if message.UserID == user.ID {
			continue
		}
		notifications = append(notifications, fromMessage(message))
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	if len(notifications) > feedLimit {
		notifications = notifications[:feedLimit]
	}

	return notifications, nil
}

func fromEvent(event model.Event) Notification {
	meta := ""
	if event.Group != nil {
		meta = event.Group.Name
	}
	return Notification{
		ID:        fmt.Sprintf("event-%d", event.ID),
		Type:      TypeEvent,
		Title:     event.Title,
		Meta:      meta,
		Link:      fmt.Sprintf("/events/%d", event.ID),
		CreatedAt: event.CreatedAt,
	}
}

func fromMessage(message model.GroupMessage) Notification {
	meta := ""
	if message.User != nil {
		meta = message.User.DisplayName()
	}
	if message.Group != nil {
		if meta != "" {
			meta = fmt.Sprintf("%s in %s", meta, message.Group.Name)
		} else {
			meta = message.Group.Name
		}
	}
	return Notification{
		ID:        fmt.Sprintf("message-%d", message.ID),
		Type:      TypeMessage,
		Title:     message.Content,
		Meta:      meta,
		Link:      fmt.Sprintf("/groups/%d", message.GroupID),
		CreatedAt: message.CreatedAt,
	}
}
