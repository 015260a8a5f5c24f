package admin

import (
	"context"
	"net/http"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/internal/handler"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func NewHandler(userService userService, groupService groupService, eventService eventService) Handler {
	return Handler{
		userService:  userService,
		groupService: groupService,
		eventService: eventService,
	}
}

type Handler struct {
	userService  userService
	groupService groupService
	eventService eventService
}

type userService interface {
	FindAll(ctx context.Context) ([]*model.User, error)
	AdminUpdate(ctx context.Context, id uint, name *string, image *string, isAdmin *bool) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

type groupService interface {
	FindAll(ctx context.Context) ([]model.Group, error)
	CountMembersByGroup(ctx context.Context) (map[uint]int64, error)
	Delete(ctx context.Context, groupId uint, requester *model.User) error
}

type eventService interface {
	FindAll(ctx context.Context) ([]model.Event, error)
	Delete(ctx context.Context, eventId uint, requester *model.User) error
}

type groupOverview struct {
	model.Group
	MemberCount int64 `json:"memberCount"`
}

// Overview of the whole site
func (h Handler) Overview(c *gin.Context) {
	// swagger:route GET /admin/overview adminOverview
	//
	// Admin overview
	//
	// All users, groups with member counts, and events, for the admin panel
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   401: Error
	//   403: Error
	var users []*model.User
	var groups []model.Group
	var memberCounts map[uint]int64
	var events []model.Event

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		users, err = h.userService.FindAll(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = h.groupService.FindAll(ctx)
		if err != nil {
			return err
		}
		memberCounts, err = h.groupService.CountMembersByGroup(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = h.eventService.FindAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		_ = c.Error(err)
		return
	}

	groupOverviews := make([]groupOverview, len(groups))
	for i, group := range groups {
		groupOverviews[i] = groupOverview{group, memberCounts[group.ID]}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":  users,
		"groups": groupOverviews,
		"events": events,
	})
}

type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Image   *string `json:"image"`
	IsAdmin *bool   `json:"isAdmin"`
}

// UpdateUser as administrator
func (h Handler) UpdateUser(c *gin.Context) {
	// swagger:route PUT /admin/users/{id} adminUpdateUser
	//
	// Update user
	//
	// Update a user's name, image or administrator flag
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateUserRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.AdminUpdate(c.Request.Context(), id, request.Name, request.Image, request.IsAdmin)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser as administrator
func (h Handler) DeleteUser(c *gin.Context) {
	// swagger:route DELETE /admin/users/{id} adminDeleteUser
	//
	// Delete user
	//
	// Delete a user and everything they own. Administrators can't delete
	// their own account this way.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	requester, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if id == requester.ID {
		_ = c.Error(errdef.NewBadRequest("administrators can't delete their own account"))
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteGroup as administrator
func (h Handler) DeleteGroup(c *gin.Context) {
	// swagger:route DELETE /admin/groups/{id} adminDeleteGroup
	//
	// Delete group
	//
	// Delete any group regardless of ownership
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	requester, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.Delete(c.Request.Context(), id, requester); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteEvent as administrator
func (h Handler) DeleteEvent(c *gin.Context) {
	// swagger:route DELETE /admin/events/{id} adminDeleteEvent
	//
	// Delete event
	//
	// Delete any event regardless of who organizes it
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	requester, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id, requester); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
