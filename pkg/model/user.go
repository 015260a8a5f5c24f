package model

import (
	"context"
	"database/sql"
	"time"
)

// User domain object defining a user
// swagger:model
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Email     string    `gorm:"index;unique" json:"email"`
	Name      string    `json:"name"`
	// Image is either a URL or a base64 encoded avatar uploaded by the user.
	Image            string         `json:"image"`
	Password         string         `json:"-"`
	IsAdmin          bool           `json:"isAdmin"`
	PasswordToken    sql.NullString `json:"-"`
	PasswordTokenTTL uint           `json:"-"`
}

// DisplayName returns the user's name, falling back to the email address for
// accounts that never set one.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

type userContextKey int

var userKey userContextKey

// NewContextWithUser returns a new [context.Context] carrying the
// authenticated user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the user stored in ctx by the authentication
// middleware, if any.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
