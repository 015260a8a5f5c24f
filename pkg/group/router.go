package group

import (
	"github.com/gin-gonic/gin"
)

type AuthenticationMiddleware interface {
	TokenAuthentication(c *gin.Context)
}

func Routes(r *gin.Engine, authenticationMiddleware AuthenticationMiddleware, handler Handler) {
	r.GET("/groups", handler.FindAll)
	r.GET("/groups/:id", handler.Find)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.POST("/groups", handler.Create)
	tokenAuthenticationRouter.POST("/groups/:id/join", handler.Join)
	tokenAuthenticationRouter.POST("/groups/:id/leave", handler.Leave)
	tokenAuthenticationRouter.DELETE("/groups/:id", handler.Delete)
	tokenAuthenticationRouter.GET("/me/groups", handler.FindMine)
}
