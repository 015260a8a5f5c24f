package event

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/internal/handler"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(eventService eventService) Handler {
	return Handler{
		eventService: eventService,
	}
}

type Handler struct {
	eventService eventService
}

type eventService interface {
	Create(ctx context.Context, create CreateEvent, organizer *model.User) (*model.Event, error)
	CreateForGroup(ctx context.Context, groupId uint, create CreateEvent, organizer *model.User) (*model.Event, error)
	Find(ctx context.Context, id uint) (*model.Event, error)
	FindAll(ctx context.Context) ([]model.Event, error)
	CountAttendees(ctx context.Context, eventId uint) (int64, error)
	Join(ctx context.Context, eventId uint, user *model.User) error
	Leave(ctx context.Context, eventId uint, user *model.User) error
	Delete(ctx context.Context, eventId uint, requester *model.User) error
	Filter(ctx context.Context, params FilterParams) ([]model.Event, int, error)
}

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required,notblank"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	City        string `json:"city" binding:"required"`
	Country     string `json:"country"`
	ImageUrl    string `json:"imageUrl"`
	Category    string `json:"category"`
	Capacity    *int   `json:"capacity" binding:"omitempty,gt=0"`
}

func (r CreateEventRequest) toCreateEvent() (CreateEvent, error) {
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		return CreateEvent{}, errdef.NewBadRequest("invalid date format: %v", err)
	}

	return CreateEvent{
		Title:       r.Title,
		Description: r.Description,
		Date:        date,
		City:        r.City,
		Country:     r.Country,
		ImageUrl:    r.ImageUrl,
		Category:    r.Category,
		Capacity:    r.Capacity,
	}, nil
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /events eventCreate
	//
	// Create event
	//
	// Create a standalone event organized by the current user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Event
	//   400: Error
	//   401: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request CreateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	create, err := request.toCreateEvent()
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), create, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// CreateForGroup event
func (h Handler) CreateForGroup(c *gin.Context) {
	// swagger:route POST /groups/{id}/events groupEventCreate
	//
	// Create group event
	//
	// Create an event hosted by a group. Group owner only.
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Event
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	groupId, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request CreateEventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	create, err := request.toCreateEvent()
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.CreateForGroup(c.Request.Context(), groupId, create, user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

type eventResponse struct {
	*model.Event
	AttendeeCount int64 `json:"attendeeCount"`
}

// Find event by id
func (h Handler) Find(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find an event by its id, with organizer and attendee count
	//
	// responses:
	//   200: Event
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	event, err := h.eventService.Find(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	attendeeCount, err := h.eventService.CountAttendees(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, eventResponse{event, attendeeCount})
}

// FindAll events
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /events findAllEvents
	//
	// List events
	//
	// List all events ordered by date, soonest first
	//
	// responses:
	//   200: []Event
	events, err := h.eventService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// Join event
func (h Handler) Join(c *gin.Context) {
	// swagger:route POST /events/{id}/join joinEvent
	//
	// Join event
	//
	// Join an event as a confirmed attendee. Fails when the event is at
	// capacity; joining twice is a no-op success.
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

	if err := h.eventService.Join(c.Request.Context(), id, user); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Leave event
func (h Handler) Leave(c *gin.Context) {
	// swagger:route POST /events/{id}/leave leaveEvent
	//
	// Leave event
	//
	// Leave an event. Leaving an event the user never joined is a no-op
	// success.
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

	if err := h.eventService.Leave(c.Request.Context(), id, user); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete event
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /events/{id} deleteEvent
	//
	// Delete event
	//
	// Delete an event and its attendee rows. Organizer or administrator only.
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

	if err := h.eventService.Delete(c.Request.Context(), id, user); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Filter events
func (h Handler) Filter(c *gin.Context) {
	// swagger:route GET /filter filterEvents
	//
	// Search events
	//
	// Search events by title, location, category, date window and type, with
	// sorting and pagination
	//
	// responses:
	//   200: FilterResult
	params := FilterParams{
		Query:    c.Query("event"),
		City:     c.Query("city"),
		Category: c.Query("category"),
		Date:     c.Query("date"),
		Type:     c.Query("type"),
		Sort:     c.Query("sort"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "pageSize", defaultPageSize),
	}

	events, total, err := h.eventService.Filter(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":   events,
		"total":    total,
		"page":     params.Page,
		"pageSize": params.PageSize,
	})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
