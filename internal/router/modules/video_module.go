package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/clipstream/clipstream-backend/internal/interface/http"
	"github.com/clipstream/clipstream-backend/internal/interface/middleware"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
)

// VideoModule wires video reads. Fetching with a valid access token records
// the watch in the viewer's history.

type VideoModule struct {
	Videos *handlers.VideoHandler
	JWT    *helpers.JWTManager
}

func NewVideoModule(v *handlers.VideoHandler, jwt *helpers.JWTManager) *VideoModule {
	return &VideoModule{Videos: v, JWT: jwt}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	rg.GET("/videos/:id", middleware.OptionalAuth(m.JWT), m.Videos.GetVideo)
}
