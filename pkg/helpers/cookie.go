package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"

	// The access cookie intentionally outlives the access token so the
	// browser keeps presenting it until the refresh endpoint rotates it.
	accessCookieMaxAge = int(7 * 24 * time.Hour / time.Second)
)

// CookieManager writes and clears the auth cookie pair.
// Both cookies are httpOnly + SameSite=Strict; Secure follows the environment.
type CookieManager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *CookieManager {
	return &CookieManager{Domain: domain, Secure: secure}
}

func (m *CookieManager) SetPair(c *gin.Context, access, refresh string, refreshExp time.Time) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, access, accessCookieMaxAge, "/", m.Domain, m.Secure, true)
	c.SetCookie(RefreshCookieName, refresh, maxAgeFrom(refreshExp), "/", m.Domain, m.Secure, true)
}

func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookieName, "", -1, "/", m.Domain, m.Secure, true)
	c.SetCookie(RefreshCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
