package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clipstream/clipstream-backend/pkg/helpers"
	"github.com/clipstream/clipstream-backend/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "userName"
	CtxEmailKey    = "userEmail"
	CtxFullNameKey = "userFullName"
)

func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(helpers.AccessCookieName); err == nil && token != "" {
		return token
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func setIdentity(c *gin.Context, claims *helpers.AccessClaims) {
	c.Set(CtxUserIDKey, claims.UserID)
	c.Set(CtxUsernameKey, claims.Username)
	c.Set(CtxEmailKey, claims.Email)
	c.Set(CtxFullNameKey, claims.FullName)
}

// Auth validates the access token from the accessToken cookie or the
// Authorization header and injects the identity claims into the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuth injects identity when a valid access token is present and
// continues anonymously otherwise. Used where the viewer id only feeds a
// computed field.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if claims, err := jwt.ParseAccessToken(token); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}
