package message

import (
	"context"
	"strings"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
)

func NewService(messageRepository messageRepository, groupService groupService, publisher publisher) *Service {
	return &Service{
		messageRepository,
		groupService,
		publisher,
	}
}

type messageRepository interface {
	create(ctx context.Context, message *model.GroupMessage) error
	findByGroup(ctx context.Context, groupId uint) ([]model.GroupMessage, error)
}

type groupService interface {
	Find(ctx context.Context, id uint) (*model.Group, error)
}

type publisher interface {
	MessagePosted(ctx context.Context, message *model.GroupMessage)
}

type Service struct {
	messageRepository messageRepository
	groupService      groupService
	publisher         publisher
}

// Post writes a chat message to a group's board. Whitespace-only content is
// rejected and the stored content keeps the trimmed form.
func (s *Service) Post(ctx context.Context, groupId uint, content string, author *model.User) (*model.GroupMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errdef.NewBadRequest("message content can't be empty")
	}

	group, err := s.groupService.Find(ctx, groupId)
	if err != nil {
		return nil, err
	}

	message := &model.GroupMessage{
		Content: content,
		UserID:  author.ID,
		GroupID: group.ID,
	}

	err = s.messageRepository.create(ctx, message)
	if err != nil {
		return nil, err
	}

	s.publisher.MessagePosted(ctx, message)

	return message, nil
}

// FindByGroup returns a group's messages, oldest first.
func (s *Service) FindByGroup(ctx context.Context, groupId uint) ([]model.GroupMessage, error) {
	_, err := s.groupService.Find(ctx, groupId)
	if err != nil {
		return nil, err
	}

	return s.messageRepository.findByGroup(ctx, groupId)
}
