package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clipstream/clipstream-backend/internal/container"
	handlers "github.com/clipstream/clipstream-backend/internal/interface/http"
	"github.com/clipstream/clipstream-backend/internal/interface/middleware"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
)

// TweetModule wires the authenticated tweet write path.

type TweetModule struct {
	Tweets *handlers.TweetHandler
	JWT    *helpers.JWTManager
}

func NewTweetModule(t *handlers.TweetHandler, jwt *helpers.JWTManager) *TweetModule {
	return &TweetModule{Tweets: t, JWT: jwt}
}

func (m *TweetModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/tweets")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Tweets.Create)
	}
}
