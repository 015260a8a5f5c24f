package model

import (
	"strings"
	"time"
)

// Event domain object defining a scheduled event
// swagger:model
type Event struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
	City        string    `gorm:"not null" json:"city"`
	Country     string    `json:"country"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	// Capacity bounds the number of confirmed attendees. nil means unlimited.
	Capacity *int  `json:"capacity"`
	UserID   uint  `gorm:"not null" json:"userId"`
	User     *User `json:"user,omitempty"`
	// GroupID is set for events hosted by a group, nil for standalone events.
	GroupID   *uint      `json:"groupId"`
	Group     *Group     `json:"group,omitempty"`
	Attendees []Attendee `json:"attendees,omitempty"`
}

// IsOnline reports whether the event uses the literal "online" city marker
// instead of a physical location.
func (e *Event) IsOnline() bool {
	return strings.EqualFold(e.City, "online")
}

// Attendee is the attendance join record. At most one row may exist per
// (user, event) pair, enforced by the composite unique index.
type Attendee struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_attendee" json:"userId"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_attendee" json:"eventId"`
}
