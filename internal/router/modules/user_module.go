package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clipstream/clipstream-backend/internal/container"
	handlers "github.com/clipstream/clipstream-backend/internal/interface/http"
	"github.com/clipstream/clipstream-backend/internal/interface/middleware"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
)

// UserModule wires registration, the session protocol and account routes.
// Public: POST /users/register, /users/login, /users/refresh-token
// Protected: logout, change-password, me, me/avatar, me/cover-image, me/watch-history

type UserModule struct {
	Users  *handlers.UserHandler
	Videos *handlers.VideoHandler
	JWT    *helpers.JWTManager
}

func NewUserModule(u *handlers.UserHandler, v *handlers.VideoHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Users: u, Videos: v, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	registerLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/users/register", registerLimiter, m.Users.Register)
	rg.POST("/users/login", loginLimiter, m.Users.Login)
	rg.POST("/users/refresh-token", refreshLimiter, m.Users.Refresh)

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Users.Logout)
		auth.POST("/change-password", m.Users.ChangePassword)
		auth.GET("/me", m.Users.GetCurrentUser)
		auth.PATCH("/me", m.Users.UpdateAccount)
		auth.PATCH("/me/avatar", m.Users.UpdateAvatar)
		auth.PATCH("/me/cover-image", m.Users.UpdateCoverImage)
		auth.GET("/me/watch-history", m.Videos.GetWatchHistory)
	}
}
