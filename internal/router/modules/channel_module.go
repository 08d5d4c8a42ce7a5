package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clipstream/clipstream-backend/internal/container"
	handlers "github.com/clipstream/clipstream-backend/internal/interface/http"
	"github.com/clipstream/clipstream-backend/internal/interface/middleware"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
)

// ChannelModule wires the channel profile aggregation, subscription toggling,
// channel search and per-channel tweet listing.

type ChannelModule struct {
	Channels *handlers.ChannelHandler
	Tweets   *handlers.TweetHandler
	JWT      *helpers.JWTManager
}

func NewChannelModule(c *handlers.ChannelHandler, t *handlers.TweetHandler, jwt *helpers.JWTManager) *ChannelModule {
	return &ChannelModule{Channels: c, Tweets: t, JWT: jwt}
}

func (m *ChannelModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	searchLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	// search is registered before the :username wildcard
	rg.GET("/channels/search", searchLimiter, m.Channels.Search)

	// viewer identity is optional and only feeds the isSubscribed field
	rg.GET("/channels/:username", middleware.OptionalAuth(m.JWT), m.Channels.GetProfile)
	rg.GET("/channels/:username/tweets", m.Tweets.ListByChannel)

	auth := rg.Group("/channels")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/:username/subscribe", m.Channels.ToggleSubscription)
	}
}
