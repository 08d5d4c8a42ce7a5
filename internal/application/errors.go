package application

import "errors"

// Domain conditions handlers are expected to trap. Anything else bubbles to
// the top-level recovery handler and is normalized into the error envelope.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateIdentity  = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrTokenReused        = errors.New("refresh token has already been used")
	ErrUploadFailed       = errors.New("media upload failed")
	ErrChannelNotFound    = errors.New("channel not found")
	ErrVideoNotFound      = errors.New("video not found")
	ErrSelfSubscription   = errors.New("cannot subscribe to own channel")
)
