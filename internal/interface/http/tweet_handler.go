package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clipstream/clipstream-backend/internal/application"
	"github.com/clipstream/clipstream-backend/internal/interface/middleware"
	"github.com/clipstream/clipstream-backend/pkg/response"
	"github.com/clipstream/clipstream-backend/pkg/validation"
)

// TweetHandler serves short posts.
type TweetHandler struct {
	Svc    *application.TweetService
	Logger *logrus.Logger
}

func NewTweetHandler(svc *application.TweetService, logger *logrus.Logger) *TweetHandler {
	return &TweetHandler{Svc: svc, Logger: logger}
}

type createTweetRequest struct {
	Content string `json:"content" binding:"required,max=280"`
}

// Create POST /tweets (auth required)
func (h *TweetHandler) Create(c *gin.Context) {
	var req createTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		response.Error(c, http.StatusBadRequest, "content is required", nil)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)

	tweet, err := h.Svc.Create(c.Request.Context(), uid, req.Content)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", uid).Error("tweet create failed")
		response.Error(c, http.StatusInternalServerError, "failed to create tweet", nil)
		return
	}
	response.Success(c, http.StatusCreated, tweet, "tweet created")
}

// ListByChannel GET /channels/:username/tweets
func (h *TweetHandler) ListByChannel(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		response.Error(c, http.StatusBadRequest, "username is required", nil)
		return
	}
	tweets, err := h.Svc.ListByChannel(c.Request.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrChannelNotFound):
			response.Error(c, http.StatusNotFound, "channel does not exist", nil)
		default:
			h.Logger.WithError(err).WithField("username", username).Error("tweet list failed")
			response.Error(c, http.StatusInternalServerError, "failed to list tweets", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, tweets, "tweets fetched")
}
