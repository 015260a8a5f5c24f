package admin

import (
	"github.com/gin-gonic/gin"
)

type AuthenticationMiddleware interface {
	TokenAuthentication(c *gin.Context)
}

type AuthorizationMiddleware interface {
	RequireAdministrator(c *gin.Context)
}

func Routes(r *gin.Engine, authenticationMiddleware AuthenticationMiddleware, authorizationMiddleware AuthorizationMiddleware, handler Handler) {
	adminRouter := r.Group("/admin")
	adminRouter.Use(authenticationMiddleware.TokenAuthentication)
	adminRouter.Use(authorizationMiddleware.RequireAdministrator)
	adminRouter.GET("/overview", handler.Overview)
	adminRouter.PUT("/users/:id", handler.UpdateUser)
	adminRouter.DELETE("/users/:id", handler.DeleteUser)
	adminRouter.DELETE("/groups/:id", handler.DeleteGroup)
	adminRouter.DELETE("/events/:id", handler.DeleteEvent)
}
