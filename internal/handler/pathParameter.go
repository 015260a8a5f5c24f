package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetPathParameter parses a numeric id from the request path. On failure the
// request is aborted with a bad request status and the caller should return.
func GetPathParameter(c *gin.Context, parameter string) (uint, bool) {
	value := c.Param(parameter)
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("invalid path parameter %q: %q", parameter, value))
		return 0, false
	}
	return uint(id), true
}
