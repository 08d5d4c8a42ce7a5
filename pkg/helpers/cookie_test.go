package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func recordCookies(t *testing.T, fn func(c *gin.Context)) []*http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w.Result().Cookies()
}

func TestSetPairAttributes(t *testing.T) {
	m := NewCookie("example.com", true)
	cookies := recordCookies(t, func(c *gin.Context) {
		m.SetPair(c, "access-value", "refresh-value", time.Now().Add(240*time.Hour))
	})

	byName := map[string]*http.Cookie{}
	for _, ck := range cookies {
		byName[ck.Name] = ck
	}

	access, ok := byName[AccessCookieName]
	if !ok {
		t.Fatalf("missing %s cookie", AccessCookieName)
	}
	if access.Value != "access-value" {
		t.Errorf("access value = %q", access.Value)
	}
	if !access.HttpOnly || !access.Secure || access.SameSite != http.SameSiteStrictMode {
		t.Errorf("access cookie flags: httpOnly=%v secure=%v sameSite=%v", access.HttpOnly, access.Secure, access.SameSite)
	}
	if access.MaxAge != int(7*24*time.Hour/time.Second) {
		t.Errorf("access MaxAge = %d", access.MaxAge)
	}

	refresh, ok := byName[RefreshCookieName]
	if !ok {
		t.Fatalf("missing %s cookie", RefreshCookieName)
	}
	if refresh.Value != "refresh-value" {
		t.Errorf("refresh value = %q", refresh.Value)
	}
	if !refresh.HttpOnly || !refresh.Secure {
		t.Errorf("refresh cookie flags: httpOnly=%v secure=%v", refresh.HttpOnly, refresh.Secure)
	}
	if refresh.MaxAge <= 0 {
		t.Errorf("refresh MaxAge = %d, want positive", refresh.MaxAge)
	}
}

func TestClearExpiresBoth(t *testing.T) {
	m := NewCookie("example.com", false)
	cookies := recordCookies(t, func(c *gin.Context) {
		m.Clear(c)
	})
	if len(cookies) != 2 {
		t.Fatalf("got %d cookies, want 2", len(cookies))
	}
	for _, ck := range cookies {
		if ck.Value != "" || ck.MaxAge >= 0 {
			t.Errorf("cookie %s not cleared: value=%q maxAge=%d", ck.Name, ck.Value, ck.MaxAge)
		}
	}
}
