package handler

import (
	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gin-gonic/gin"
)

// GetUserFromContext returns the user the authentication middleware stored on
// the gin context. Handlers behind an authenticated router group can rely on
// it being present.
func GetUserFromContext(c *gin.Context) (*model.User, error) {
	userData, exists := c.Get("user")
	if !exists {
		return nil, errdef.NewUnauthorized("user not found on context")
	}

	user, ok := userData.(*model.User)
	if !ok {
		return nil, errdef.NewUnauthorized("failed to parse user data")
	}
	return user, nil
}
