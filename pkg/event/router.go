package event

import (
	"github.com/gin-gonic/gin"
)

type AuthenticationMiddleware interface {
	TokenAuthentication(c *gin.Context)
}

func Routes(r *gin.Engine, authenticationMiddleware AuthenticationMiddleware, handler Handler) {
	r.GET("/events", handler.FindAll)
	r.GET("/events/:id", handler.Find)
	r.GET("/filter", handler.Filter)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.POST("/events", handler.Create)
	tokenAuthenticationRouter.POST("/groups/:id/events", handler.CreateForGroup)
	tokenAuthenticationRouter.POST("/events/:id/join", handler.Join)
	tokenAuthenticationRouter.POST("/events/:id/leave", handler.Leave)
	tokenAuthenticationRouter.DELETE("/events/:id", handler.Delete)
}
