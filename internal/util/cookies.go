package util

import (
	"net/http"

	"github.com/gatherly/gatherly/pkg/token"
	"github.com/gin-gonic/gin"
)

// SetCookies stores the token pair on the client. The refresh token is scoped
// to the refresh endpoint so it never rides along on normal API calls.
func SetCookies(c *gin.Context, tokens *token.Tokens, sameSiteMode http.SameSite, hostname string, accessTokenExpirationSeconds int, refreshTokenExpirationSeconds int) {
	c.SetSameSite(sameSiteMode)
	c.SetCookie("accessToken", tokens.AccessToken, accessTokenExpirationSeconds, "/", hostname, true, true)
	c.SetCookie("refreshToken", tokens.RefreshToken, refreshTokenExpirationSeconds, "/refresh", hostname, true, true)
}
