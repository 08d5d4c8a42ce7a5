package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clipstream/clipstream-backend/internal/application"
	"github.com/clipstream/clipstream-backend/internal/interface/middleware"
	"github.com/clipstream/clipstream-backend/pkg/response"
)

// VideoHandler serves video reads and the watch history view.
type VideoHandler struct {
	Svc    *application.VideoService
	Logger *logrus.Logger
}

func NewVideoHandler(svc *application.VideoService, logger *logrus.Logger) *VideoHandler {
	return &VideoHandler{Svc: svc, Logger: logger}
}

// GetVideo GET /videos/:id (viewer identity optional; records watch history
// for authenticated viewers)
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid video id", nil)
		return
	}
	viewerID := c.GetString(middleware.CtxUserIDKey)

	video, err := h.Svc.GetVideo(c.Request.Context(), id, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrVideoNotFound):
			response.Error(c, http.StatusNotFound, "video does not exist", nil)
		default:
			h.Logger.WithError(err).WithField("video_id", id).Error("video fetch failed")
			response.Error(c, http.StatusInternalServerError, "failed to fetch video", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, video, "video fetched")
}

// GetWatchHistory GET /users/me/watch-history (auth required)
func (h *VideoHandler) GetWatchHistory(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	videos, err := h.Svc.GetWatchHistory(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("watch history failed")
		response.Error(c, http.StatusInternalServerError, "failed to fetch watch history", nil)
		return
	}
	response.Success(c, http.StatusOK, videos, "watch history fetched")
}
