package group

import (
	"context"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
)

func NewService(groupRepository groupRepository) *Service {
	return &Service{
		groupRepository,
	}
}

type groupRepository interface {
	create(ctx context.Context, group *model.Group) error
	find(ctx context.Context, id uint) (*model.Group, error)
	findAll(ctx context.Context) ([]model.Group, error)
	findByMember(ctx context.Context, userId uint) ([]model.Group, error)
	addMember(ctx context.Context, groupId uint, userId uint) error
	removeMember(ctx context.Context, groupId uint, userId uint) error
	countMembers(ctx context.Context, groupId uint) (int64, error)
	countMembersByGroup(ctx context.Context) (map[uint]int64, error)
	delete(ctx context.Context, groupId uint) error
}

type Service struct {
	groupRepository groupRepository
}

func (s *Service) Create(ctx context.Context, name string, description string, city string, country string, imageUrl string, owner *model.User) (*model.Group, error) {
	group := &model.Group{
		Name:        name,
		Description: description,
		City:        city,
		Country:     country,
		ImageURL:    imageUrl,
		OwnerID:     owner.ID,
	}

	err := s.groupRepository.create(ctx, group)
	if err != nil {
		return nil, err
	}

	return group, nil
}

func (s *Service) Find(ctx context.Context, id uint) (*model.Group, error) {
	return s.groupRepository.find(ctx, id)
}

func (s *Service) FindAll(ctx context.Context) ([]model.Group, error) {
	return s.groupRepository.findAll(ctx)
}

func (s *Service) FindByMember(ctx context.Context, userId uint) ([]model.Group, error) {
	return s.groupRepository.findByMember(ctx, userId)
}

func (s *Service) CountMembers(ctx context.Context, groupId uint) (int64, error) {
	return s.groupRepository.countMembers(ctx, groupId)
}

func (s *Service) CountMembersByGroup(ctx context.Context) (map[uint]int64, error) {
	return s.groupRepository.countMembersByGroup(ctx)
}

// Join adds the user to the group. Joining a group the user already belongs
// to succeeds without creating a second membership row.
func (s *Service) Join(ctx context.Context, groupId uint, user *model.User) error {
	_, err := s.groupRepository.find(ctx, groupId)
	if err != nil {
		return err
	}

	return s.groupRepository.addMember(ctx, groupId, user.ID)
}

// Leave removes the user's membership. Leaving a group the user never joined
// is a no-op.
func (s *Service) Leave(ctx context.Context, groupId uint, user *model.User) error {
	return s.groupRepository.removeMember(ctx, groupId, user.ID)
}

// Delete tears the group down along with its members, events, attendees and
// messages. Only the owner or an administrator may delete a group.
func (s *Service) Delete(ctx context.Context, groupId uint, requester *model.User) error {
	group, err := s.groupRepository.find(ctx, groupId)
	if err != nil {
		return err
	}

	if group.OwnerID != requester.ID && !requester.IsAdmin {
		return errdef.NewForbidden("only the group owner or an administrator can delete group %d", groupId)
	}

	return s.groupRepository.delete(ctx, groupId)
}
