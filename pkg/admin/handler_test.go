package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_Overview(t *testing.T) {
	userService := &mockUserService{}
	userService.
		On("FindAll", mock.Anything).
		Return([]*model.User{{ID: 1, Name: "Ana"}}, nil)
	groupService := &mockGroupService{}
	groupService.
		On("FindAll", mock.Anything).
		Return([]model.Group{{ID: 10, Name: "Hikers"}}, nil)
	groupService.
		On("CountMembersByGroup", mock.Anything).
		Return(map[uint]int64{10: 4}, nil)
	eventService := &mockEventService{}
	eventService.
		On("FindAll", mock.Anything).
		Return([]model.Event{{ID: 5, Title: "Sunday Hike"}}, nil)
	handler := NewHandler(userService, groupService, eventService)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	request, err := http.NewRequest(http.MethodGet, "/admin/overview", nil)
	require.NoError(t, err)
	c.Request = request

	handler.Overview(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "Hikers")
	assert.Contains(t, body, `"memberCount":4`)
	assert.Contains(t, body, "Sunday Hike")
	userService.AssertExpectations(t)
	groupService.AssertExpectations(t)
	eventService.AssertExpectations(t)
}

func TestHandler_DeleteUser(t *testing.T) {
	userService := &mockUserService{}
	userService.
		On("Delete", mock.Anything, uint(5)).
		Return(nil)
	handler := NewHandler(userService, &mockGroupService{}, &mockEventService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", &model.User{ID: 1, IsAdmin: true})
	c.AddParam("id", "5")
	request, err := http.NewRequest(http.MethodDelete, "/admin/users/5", nil)
	require.NoError(t, err)
	c.Request = request

	handler.DeleteUser(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	userService.AssertExpectations(t)
}

func TestHandler_DeleteUser_Self(t *testing.T) {
	userService := &mockUserService{}
	handler := NewHandler(userService, &mockGroupService{}, &mockEventService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", &model.User{ID: 5, IsAdmin: true})
	c.AddParam("id", "5")
	request, err := http.NewRequest(http.MethodDelete, "/admin/users/5", nil)
	require.NoError(t, err)
	c.Request = request

	handler.DeleteUser(c)

	require.Len(t, c.Errors.Errors(), 1)
	assert.True(t, errdef.IsBadRequest(c.Errors.Last().Err))
	userService.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestHandler_DeleteGroup(t *testing.T) {
	requester := &model.User{ID: 1, IsAdmin: true}
	groupService := &mockGroupService{}
	groupService.
		On("Delete", mock.Anything, uint(10), requester).
		Return(nil)
	handler := NewHandler(&mockUserService{}, groupService, &mockEventService{})

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Set("user", requester)
	c.AddParam("id", "10")
	request, err := http.NewRequest(http.MethodDelete, "/admin/groups/10", nil)
	require.NoError(t, err)
	c.Request = request

	handler.DeleteGroup(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	groupService.AssertExpectations(t)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) FindAll(ctx context.Context) ([]*model.User, error) {
	called := m.Called(ctx)
	users, _ := called.Get(0).([]*model.User)
	return users, called.Error(1)
}

func (m *mockUserService) AdminUpdate(ctx context.Context, id uint, name *string, image *string, isAdmin *bool) (*model.User, error) {
	called := m.Called(ctx, id, name, image, isAdmin)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, id uint) error {
	called := m.Called(ctx, id)
	return called.Error(0)
}

type mockGroupService struct{ mock.Mock }

func (m *mockGroupService) FindAll(ctx context.Context) ([]model.Group, error) {
	called := m.Called(ctx)
	groups, _ := called.Get(0).([]model.Group)
	return groups, called.Error(1)
}

func (m *mockGroupService) CountMembersByGroup(ctx context.Context) (map[uint]int64, error) {
	called := m.Called(ctx)
	counts, _ := called.Get(0).(map[uint]int64)
	return counts, called.Error(1)
}

func (m *mockGroupService) Delete(ctx context.Context, groupId uint, requester *model.User) error {
	called := m.Called(ctx, groupId, requester)
	return called.Error(0)
}

type mockEventService struct{ mock.Mock }

func (m *mockEventService) FindAll(ctx context.Context) ([]model.Event, error) {
	called := m.Called(ctx)
	events, _ := called.Get(0).([]model.Event)
	return events, called.Error(1)
}

func (m *mockEventService) Delete(ctx context.Context, eventId uint, requester *model.User) error {
	called := m.Called(ctx, eventId, requester)
	return called.Error(0)
}
