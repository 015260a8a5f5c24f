package group

import (
	"context"
	"net/http"

	"github.com/gatherly/gatherly/internal/handler"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(groupService groupService) Handler {
	return Handler{
		groupService: groupService,
	}
}

type Handler struct {
	groupService groupService
}

type groupService interface {
	Create(ctx context.Context, name string, description string, city string, country string, imageUrl string, owner *model.User) (*model.Group, error)
	Find(ctx context.Context, id uint) (*model.Group, error)
	FindAll(ctx context.Context) ([]model.Group, error)
	FindByMember(ctx context.Context, userId uint) ([]model.Group, error)
	CountMembers(ctx context.Context, groupId uint) (int64, error)
	CountMembersByGroup(ctx context.Context) (map[uint]int64, error)
	Join(ctx context.Context, groupId uint, user *model.User) error
	Leave(ctx context.Context, groupId uint, user *model.User) error
	Delete(ctx context.Context, groupId uint, requester *model.User) error
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description"`
	City        string `json:"city" binding:"required"`
	Country     string `json:"country"`
	ImageUrl    string `json:"imageUrl"`
}

type groupResponse struct {
	*model.Group
	MemberCount int64 `json:"memberCount"`
}

// Create group
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /groups groupCreate
	//
	// Create group
	//
	// Create a group. The creator becomes the owner and is added as a member.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Group
	//   400: Error
	//   401: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request CreateGroupRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), request.Name, request.Description, request.City, request.Country, request.ImageUrl, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// Find group by id
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /groups/{id} findGroupById
	//
	// Find group
	//
	// Find a group by its id, with owner and member count
	//
	// responses:
	//   200: Group
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	group, err := h.groupService.Find(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	memberCount, err := h.groupService.CountMembers(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": groupResponse{group, memberCount}})
}

// FindAll groups
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /groups findAllGroups
	//
	// List groups
	//
	// List all groups with owner and member count
	//
	// responses:
	//   200: []Group
	ctx := c.Request.Context()
	groups, err := h.groupService.FindAll(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	counts, err := h.groupService.CountMembersByGroup(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response := make([]groupResponse, len(groups))
	for i := range groups {
		response[i] = groupResponse{&groups[i], counts[groups[i].ID]}
	}

	c.JSON(http.StatusOK, gin.H{"groups": response})
}

// FindMine groups of the current user
func (h Handler) FindMine(c *gin.Context) {
	// swagger:route GET /me/groups findMyGroups
	//
	// My groups
	//
	// List the groups the current user belongs to, with their upcoming events
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: []Group
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	groups, err := h.groupService.FindByMember(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, groups)
}

// Join group
func (h Handler) Join(c *gin.Context) {
	// swagger:route POST /groups/{id}/join joinGroup
	//
	// Join group
	//
	// Join a group. Joining a group twice is a no-op success.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   400: Error
	//   401: Error
	//   404: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.Join(c.Request.Context(), id, user); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Leave group
func (h Handler) Leave(c *gin.Context) {
	// swagger:route POST /groups/{id}/leave leaveGroup
	//
	// Leave group
	//
	// Leave a group. Leaving a group the user never joined is a no-op success.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200:
	//   400: Error
	//   401: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.Leave(c.Request.Context(), id, user); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete group
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /groups/{id} deleteGroup
	//
	// Delete group
	//
	// Delete a group along with its members, events and messages. Owner or
	// administrator only.
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
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if err := h.groupService.Delete(c.Request.Context(), id, user); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
