package notification

import (
	"github.com/gin-gonic/gin"
)

type AuthenticationMiddleware interface {
	TokenAuthentication(c *gin.Context)
	OptionalTokenAuthentication(c *gin.Context)
}

func Routes(r *gin.Engine, authenticationMiddleware AuthenticationMiddleware, handler Handler) {
	optionalAuthenticationRouter := r.Group("")
	optionalAuthenticationRouter.Use(authenticationMiddleware.OptionalTokenAuthentication)
	optionalAuthenticationRouter.GET("/notifications", handler.FindAll)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/subscribe", handler.Subscribe)
}
