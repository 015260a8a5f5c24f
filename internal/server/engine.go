package server

import (
	"log/slog"

	"github.com/gatherly/gatherly/internal/middleware"
	"github.com/gatherly/gatherly/pkg/admin"
	"github.com/gatherly/gatherly/pkg/event"
	"github.com/gatherly/gatherly/pkg/group"
	"github.com/gatherly/gatherly/pkg/health"
	"github.com/gatherly/gatherly/pkg/location"
	"github.com/gatherly/gatherly/pkg/message"
	"github.com/gatherly/gatherly/pkg/notification"
	"github.com/gatherly/gatherly/pkg/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redocMiddleware "github.com/go-openapi/runtime/middleware"
	sloggin "github.com/samber/slog-gin"
)

type Handlers struct {
	User         user.Handler
	Group        group.Handler
	Event        event.Handler
	Message      message.Handler
	Notification notification.Handler
	Location     location.Handler
	Admin        admin.Handler
}

func GetEngine(logger *slog.Logger, handlers Handlers, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, ssoMiddleware middleware.SSOMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sloggin.New(logger))
	r.Use(middleware.CorrelationID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.ErrorHandler())

	redoc(r)

	r.GET("/health", health.Health)

	user.Routes(r, authenticationMiddleware, ssoMiddleware, handlers.User)
	group.Routes(r, authenticationMiddleware, handlers.Group)
	event.Routes(r, authenticationMiddleware, handlers.Event)
	message.Routes(r, authenticationMiddleware, handlers.Message)
	notification.Routes(r, authenticationMiddleware, handlers.Notification)
	location.Routes(r, handlers.Location)
	admin.Routes(r, authenticationMiddleware, authorizationMiddleware, handlers.Admin)

	return r
}

func redoc(r *gin.Engine) {
	r.StaticFile("/swagger.yaml", "./swagger/swagger.yaml")

	redocOpts := redocMiddleware.RedocOpts{
		SpecURL: "./swagger.yaml",
	}
	r.GET("/docs", func(c *gin.Context) {
		redocHandler := redocMiddleware.Redoc(redocOpts, nil)
		redocHandler.ServeHTTP(c.Writer, c.Request)
	})
}
