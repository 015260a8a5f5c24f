package group

import (
	"context"
	"testing"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Create(t *testing.T) {
	repository := &mockGroupRepository{}
	repository.
		On("create", mock.Anything, mock.AnythingOfType("*model.Group")).
		Return(nil)
	service := NewService(repository)

	group, err := service.Create(context.Background(), "Hikers", "", "Bled", "Slovenia", "", &model.User{ID: 1})

	require.NoError(t, err)
	assert.Equal(t, "Hikers", group.Name)
	assert.Equal(t, uint(1), group.OwnerID)
	repository.AssertExpectations(t)
}

func TestService_Join(t *testing.T) {
	repository := &mockGroupRepository{}
	repository.
		On("find", mock.Anything, uint(10)).
		Return(&model.Group{ID: 10}, nil)
	repository.
		On("addMember", mock.Anything, uint(10), uint(2)).
		Return(nil)
	service := NewService(repository)

	err := service.Join(context.Background(), 10, &model.User{ID: 2})

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestService_Join_GroupNotFound(t *testing.T) {
	repository := &mockGroupRepository{}
	repository.
		On("find", mock.Anything, uint(99)).
		Return(nil, errdef.NewNotFound("group not found"))
	service := NewService(repository)

	err := service.Join(context.Background(), 99, &model.User{ID: 2})

	require.Error(t, err)
	assert.True(t, errdef.IsNotFound(err))
	repository.AssertNotCalled(t, "addMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Leave_NeverJoined(t *testing.T) {
	repository := &mockGroupRepository{}
	repository.
		On("removeMember", mock.Anything, uint(10), uint(2)).
		Return(nil)
	service := NewService(repository)

	err := service.Leave(context.Background(), 10, &model.User{ID: 2})

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestService_Delete_NotOwner(t *testing.T) {
	repository := &mockGroupRepository{}
	repository.
		On("find", mock.Anything, uint(10)).
		Return(&model.Group{ID: 10, OwnerID: 1}, nil)
	service := NewService(repository)

	err := service.Delete(context.Background(), 10, &model.User{ID: 2})

	require.Error(t, err)
	assert.True(t, errdef.IsForbidden(err))
	repository.AssertNotCalled(t, "delete", mock.Anything, mock.Anything)
}

func TestService_Delete_Owner(t *testing.T) {
	repository := &mockGroupRepository{}
	repository.
		On("find", mock.Anything, uint(10)).
		Return(&model.Group{ID: 10, OwnerID: 1}, nil)
	repository.
		On("delete", mock.Anything, uint(10)).
		Return(nil)
	service := NewService(repository)

	err := service.Delete(context.Background(), 10, &model.User{ID: 1})

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

func TestService_Delete_AdminOverride(t *testing.T) {
	repository := &mockGroupRepository{}
	repository.
		On("find", mock.Anything, uint(10)).
		Return(&model.Group{ID: 10, OwnerID: 1}, nil)
	repository.
		On("delete", mock.Anything, uint(10)).
		Return(nil)
	service := NewService(repository)

	err := service.Delete(context.Background(), 10, &model.User{ID: 99, IsAdmin: true})

	require.NoError(t, err)
	repository.AssertExpectations(t)
}

type mockGroupRepository struct{ mock.Mock }

func (m *mockGroupRepository) create(ctx context.Context, group *model.Group) error {
	called := m.Called(ctx, group)
	return called.Error(0)
}

func (m *mockGroupRepository) find(ctx context.Context, id uint) (*model.Group, error) {
	called := m.Called(ctx, id)
	group, _ := called.Get(0).(*model.Group)
	return group, called.Error(1)
}

func (m *mockGroupRepository) findAll(ctx context.Context) ([]model.Group, error) {
	called := m.Called(ctx)
	groups, _ := called.Get(0).([]model.Group)
	return groups, called.Error(1)
}

func (m *mockGroupRepository) findByMember(ctx context.Context, userId uint) ([]model.Group, error) {
	called := m.Called(ctx, userId)
	groups, _ := called.Get(0).([]model.Group)
	return groups, called.Error(1)
}

func (m *mockGroupRepository) addMember(ctx context.Context, groupId uint, userId uint) error {
	called := m.Called(ctx, groupId, userId)
	return called.Error(0)
}

func (m *mockGroupRepository) removeMember(ctx context.Context, groupId uint, userId uint) error {
	called := m.Called(ctx, groupId, userId)
	return called.Error(0)
}

func (m *mockGroupRepository) countMembers(ctx context.Context, groupId uint) (int64, error) {
	called := m.Called(ctx, groupId)
	return called.Get(0).(int64), called.Error(1)
}

func (m *mockGroupRepository) countMembersByGroup(ctx context.Context) (map[uint]int64, error) {
	called := m.Called(ctx)
	counts, _ := called.Get(0).(map[uint]int64)
	return counts, called.Error(1)
}

func (m *mockGroupRepository) delete(ctx context.Context, groupId uint) error {
	called := m.Called(ctx, groupId)
	return called.Error(0)
}
