package user

import (
	"github.com/gatherly/gatherly/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine, authenticationMiddleware middleware.AuthenticationMiddleware, ssoMiddleware middleware.SSOMiddleware, handler Handler) {
	r.POST("/users", handler.SignUp)
	r.POST("/refresh", handler.RefreshToken)
	r.POST("/users/request-reset", handler.RequestPasswordReset)
	r.POST("/users/reset-password", handler.ResetPassword)

	r.GET("/auth/:provider", ssoMiddleware.BeginAuthHandler)
	r.GET("/auth/:provider/callback", ssoMiddleware.SSOAuthentication)
	r.GET("/logout/:provider", ssoMiddleware.LogoutHandler)

	basicAuthenticationRouter := r.Group("")
	basicAuthenticationRouter.Use(authenticationMiddleware.BasicAuthentication)
	basicAuthenticationRouter.POST("/tokens", handler.SignIn)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/me", handler.Me)
	tokenAuthenticationRouter.PUT("/me", handler.UpdateMe)
	tokenAuthenticationRouter.DELETE("/users", handler.SignOut)
}
