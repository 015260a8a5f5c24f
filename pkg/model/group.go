package model

import "time"

// Group domain object defining a group
// swagger:model
type Group struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	City        string    `gorm:"not null" json:"city"`
	Country     string    `json:"country"`
	ImageURL    string    `json:"imageUrl"`
	OwnerID     uint      `gorm:"not null" json:"ownerId"`
	Owner       *User     `json:"owner,omitempty"`
	// Members holds the join rows, not the users themselves. The owner always
	// has a membership row, inserted on creation.
	Members []GroupMember `json:"members,omitempty"`
	Events  []Event       `json:"events,omitempty"`
}

// GroupMember is the membership join record. At most one row may exist per
// (user, group) pair, enforced by the composite unique index.
type GroupMember struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_group_member" json:"userId"`
	GroupID   uint      `gorm:"not null;uniqueIndex:idx_group_member" json:"groupId"`
}

// GroupMessage is an append-only chat message within a group. Messages are
// never edited or deleted and are listed oldest first.
type GroupMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Content   string    `gorm:"not null" json:"content"`
	UserID    uint      `gorm:"not null" json:"userId"`
	User      *User     `json:"user,omitempty"`
	GroupID   uint      `gorm:"not null" json:"groupId"`
	Group     *Group    `json:"group,omitempty"`
}
