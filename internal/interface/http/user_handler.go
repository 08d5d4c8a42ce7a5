package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/clipstream/clipstream-backend/internal/application"
	"github.com/clipstream/clipstream-backend/internal/interface/middleware"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
	"github.com/clipstream/clipstream-backend/pkg/response"
	"github.com/clipstream/clipstream-backend/pkg/validation"
)

// UserHandler exposes registration, the session protocol and account updates.
type UserHandler struct {
	Svc     *application.UserService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	FullName string `form:"fullName" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// fileUpload opens a multipart part for streaming. The caller owns the close.
func fileUpload(fh *multipart.FileHeader) (*application.FileUpload, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &application.FileUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	}, f, nil
}

// Register POST /users/register (multipart form, avatar required)
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "please fill all the fields", validation.ToDetails(err))
		return
	}

	avatarFH, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "please upload an avatar", nil)
		return
	}
	avatar, avatarFile, err := fileUpload(avatarFH)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to read avatar upload", nil)
		return
	}
	defer func() { _ = avatarFile.Close() }()

	in := application.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		Avatar:   *avatar,
	}
	if coverFH, err := c.FormFile("coverImage"); err == nil {
		cover, coverFile, err := fileUpload(coverFH)
		if err == nil {
			defer func() { _ = coverFile.Close() }()
			in.Cover = cover
		}
	}

	user, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrDuplicateIdentity):
			response.Error(c, http.StatusConflict, "user already exists", nil)
		case errors.Is(err, application.ErrUploadFailed):
			response.Error(c, http.StatusInternalServerError, "failed to upload avatar", nil)
		default:
			h.Logger.WithError(err).Error("register failed")
			response.Error(c, http.StatusInternalServerError, "failed to create user", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, user, "user created successfully")
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	User         *application.PublicUser `json:"user"`
	AccessToken  string                  `json:"accessToken"`
	RefreshToken string                  `json:"refreshToken"`
}

// Login POST /users/login (username or email + password)
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		response.Error(c, http.StatusBadRequest, "username or email is required", nil)
		return
	}

	user, pair, err := h.Svc.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "user does not exist", nil)
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "invalid user credentials", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error(c, http.StatusInternalServerError, "login failed", nil)
		}
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, sessionResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "user logged in successfully")
}

// Logout POST /users/logout (auth required)
func (h *UserHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil && !errors.Is(err, application.ErrUserNotFound) {
		h.Logger.WithError(err).WithField("user_id", uid).Error("logout failed")
		response.Error(c, http.StatusInternalServerError, "logout failed", nil)
		return
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, nil, "user logged out")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh POST /users/refresh-token (token via cookie or body)
func (h *UserHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(helpers.RefreshCookieName)
	if token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}

	user, pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		// surface the verification failure reason, always as 401
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, sessionResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "access token refreshed")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangePassword POST /users/change-password (auth required)
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, application.ErrWrongPassword):
			response.Error(c, http.StatusBadRequest, "invalid old password", nil)
		default:
			h.Logger.WithError(err).WithField("user_id", uid).Error("change password failed")
			response.Error(c, http.StatusInternalServerError, "failed to change password", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, nil, "password changed successfully")
}

// GetCurrentUser GET /users/me (auth required)
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	user, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, user, "current user")
}

type updateAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

// UpdateAccount PATCH /users/me (auth required)
func (h *UserHandler) UpdateAccount(c *gin.Context) {
	var req updateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	user, err := h.Svc.UpdateAccount(c.Request.Context(), uid, req.FullName, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrDuplicateIdentity):
			response.Error(c, http.StatusConflict, "email already taken", nil)
		default:
			h.Logger.WithError(err).WithField("user_id", uid).Error("account update failed")
			response.Error(c, http.StatusInternalServerError, "failed to update account", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, user, "account details updated")
}

// UpdateAvatar PATCH /users/me/avatar (auth required, one file)
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.Svc.UpdateAvatar)
}

// UpdateCoverImage PATCH /users/me/cover-image (auth required, one file)
func (h *UserHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.Svc.UpdateCoverImage)
}

func (h *UserHandler) updateImage(c *gin.Context, field string,
	update func(ctx context.Context, userID string, file application.FileUpload) (*application.PublicUser, error)) {
	fh, err := c.FormFile(field)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "please upload a file", nil)
		return
	}
	file, f, err := fileUpload(fh)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to read upload", nil)
		return
	}
	defer func() { _ = f.Close() }()

	uid := c.GetString(middleware.CtxUserIDKey)
	user, err := update(c.Request.Context(), uid, *file)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUploadFailed):
			response.Error(c, http.StatusInternalServerError, "failed to upload image", nil)
		default:
			h.Logger.WithError(err).WithField("user_id", uid).Error("image update failed")
			response.Error(c, http.StatusInternalServerError, "failed to update image", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, user, field+" updated successfully")
}
