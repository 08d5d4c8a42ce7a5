package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clipstream/clipstream-backend/internal/application"
	"github.com/clipstream/clipstream-backend/internal/interface/middleware"
	"github.com/clipstream/clipstream-backend/pkg/response"
)

// ChannelHandler serves the channel profile aggregation, subscription
// toggling and channel search.
type ChannelHandler struct {
	Svc    *application.ChannelService
	Logger *logrus.Logger
}

func NewChannelHandler(svc *application.ChannelService, logger *logrus.Logger) *ChannelHandler {
	return &ChannelHandler{Svc: svc, Logger: logger}
}

// GetProfile GET /channels/:username (viewer identity optional)
func (h *ChannelHandler) GetProfile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		response.Error(c, http.StatusBadRequest, "username is required", nil)
		return
	}
	viewerID := c.GetString(middleware.CtxUserIDKey)

	profile, err := h.Svc.GetProfile(c.Request.Context(), username, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrChannelNotFound):
			response.Error(c, http.StatusNotFound, "channel does not exist", nil)
		default:
			h.Logger.WithError(err).WithField("username", username).Error("channel profile failed")
			response.Error(c, http.StatusInternalServerError, "failed to fetch channel profile", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, profile, "channel profile fetched")
}

// ToggleSubscription POST /channels/:username/subscribe (auth required)
func (h *ChannelHandler) ToggleSubscription(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	viewerID := c.GetString(middleware.CtxUserIDKey)

	subscribed, err := h.Svc.ToggleSubscription(c.Request.Context(), viewerID, username)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrChannelNotFound):
			response.Error(c, http.StatusNotFound, "channel does not exist", nil)
		case errors.Is(err, application.ErrSelfSubscription):
			response.Error(c, http.StatusBadRequest, "cannot subscribe to your own channel", nil)
		default:
			h.Logger.WithError(err).WithField("username", username).Error("subscription toggle failed")
			response.Error(c, http.StatusInternalServerError, "failed to toggle subscription", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subscribed": subscribed}, "subscription updated")
}

// Search GET /channels/search?q=...&size=...
func (h *ChannelHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).WithField("q", q).Error("channel search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
