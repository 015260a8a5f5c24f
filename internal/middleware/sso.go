package middleware

import (
	"context"
	"net/http"

	"github.com/gatherly/gatherly/internal/util"
	"github.com/gatherly/gatherly/pkg/model"
	"github.com/gatherly/gatherly/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
)

type SSOMiddleware struct {
	userService                   ssoUserService
	tokenService                  tokenService
	hostname                      string
	sameSiteMode                  http.SameSite
	accessTokenExpirationSeconds  int
	refreshTokenExpirationSeconds int
}

type ssoUserService interface {
	FindOrCreate(ctx context.Context, email string, name string, image string) (*model.User, error)
}

type tokenService interface {
	GetTokens(ctx context.Context, user *model.User, previousTokenId string) (*token.Tokens, error)
}

func NewSSOMiddleware(userService ssoUserService, tokenService tokenService, hostname string, sameSiteMode http.SameSite, accessTokenExpirationSeconds int, refreshTokenExpirationSeconds int) SSOMiddleware {
	return SSOMiddleware{
		userService:                   userService,
		tokenService:                  tokenService,
		hostname:                      hostname,
		sameSiteMode:                  sameSiteMode,
		accessTokenExpirationSeconds:  accessTokenExpirationSeconds,
		refreshTokenExpirationSeconds: refreshTokenExpirationSeconds,
	}
}

// SSOAuthentication handles OAuth login callbacks. Accounts are matched by
// email and created on first sign in, without a password.
func (m SSOMiddleware) SSOAuthentication(c *gin.Context) {
	ssoUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, "/login")
		return
	}

	u, err := m.userService.FindOrCreate(c.Request.Context(), ssoUser.Email, ssoUser.Name, ssoUser.AvatarURL)
	if err != nil {
		_ = c.AbortWithError(http.StatusUnauthorized, err)
		return
	}

	c.Set("user", u)

	tokens, err := m.tokenService.GetTokens(c.Request.Context(), u, "")
	if err != nil {
		_ = c.Error(err)
		return
	}

	util.SetCookies(c, tokens, m.sameSiteMode, m.hostname, m.accessTokenExpirationSeconds, m.refreshTokenExpirationSeconds)

	c.Redirect(http.StatusTemporaryRedirect, "/me")
}

// BeginAuthHandler initiates OAuth authentication with the provider named in
// the path.
func (m SSOMiddleware) BeginAuthHandler(c *gin.Context) {
	provider := c.Param("provider")
	q := c.Request.URL.Query()
	q.Add("provider", provider)
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// LogoutHandler clears the provider session.
func (m SSOMiddleware) LogoutHandler(c *gin.Context) {
	err := gothic.Logout(c.Writer, c.Request)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, "/")
}
