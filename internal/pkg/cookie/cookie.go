package cookie

import (
	"net/http"
	"time"

	"hotel-checkout/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName  = "access_token"
	RefreshTokenCookieName = "refresh_token"
	// SessionCookieName pins the quote session for browsers that cannot send
	// the session header on the gateway round trip.
	SessionCookieName = "checkout_session"
)

func SetTokenCookies(c *gin.Context, cfg config.CookieConfig, accessToken, refreshToken string, accessExpiry, refreshExpiry time.Duration) {
	set(c, cfg, AccessTokenCookieName, accessToken, int(accessExpiry.Seconds()))
	set(c, cfg, RefreshTokenCookieName, refreshToken, int(refreshExpiry.Seconds()))
}

func ClearTokenCookies(c *gin.Context, cfg config.CookieConfig) {
	set(c, cfg, AccessTokenCookieName, "", -1)
	set(c, cfg, RefreshTokenCookieName, "", -1)
}

func SetSessionCookie(c *gin.Context, cfg config.CookieConfig, sessionID string, ttl time.Duration) {
	set(c, cfg, SessionCookieName, sessionID, int(ttl.Seconds()))
}

func GetAccessToken(c *gin.Context) string {
	return get(c, AccessTokenCookieName)
}

func GetRefreshToken(c *gin.Context) string {
	return get(c, RefreshTokenCookieName)
}

func GetSessionID(c *gin.Context) string {
	return get(c, SessionCookieName)
}

func set(c *gin.Context, cfg config.CookieConfig, name, value string, maxAge int) {
	c.SetSameSite(getSameSite(cfg.SameSite))
	c.SetCookie(name, value, maxAge, "/", cfg.Domain, cfg.Secure, true)
}

func get(c *gin.Context, name string) string {
	v, _ := c.Cookie(name)
	return v
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
