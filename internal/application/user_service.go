package application

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
	repo "github.com/clipstream/clipstream-backend/internal/domain/repository"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
	"github.com/clipstream/clipstream-backend/pkg/mailer"
)

// UserService owns the credential store operations and the session lifecycle:
// registration, login, token rotation, logout, password change and profile
// media updates.
type UserService struct {
	Users       repo.UserRepository
	JWT         *helpers.JWTManager
	Media       MediaStore
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
	ES          *elasticsearch.Client
	ESIndex     string
	Logger      *logrus.Logger
}

func NewUserService(users repo.UserRepository, jwt *helpers.JWTManager, media MediaStore,
	pub *helpers.RabbitPublisher, mailEnabled bool, es *elasticsearch.Client, esIndex string,
	logger *logrus.Logger) *UserService {
	return &UserService{
		Users:       users,
		JWT:         jwt,
		Media:       media,
		Pub:         pub,
		MailEnabled: mailEnabled,
		ES:          es,
		ESIndex:     esIndex,
		Logger:      logger,
	}
}

type RegisterInput struct {
	FullName string
	Email    string
	Username string
	Password string
	Avatar   FileUpload
	Cover    *FileUpload
}

// Register uploads the avatar (and optional cover) first, then creates the
// credential record. The duplicate pre-check is not race-free; the unique
// indexes behind Create are, and both surface as ErrDuplicateIdentity.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*PublicUser, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.Users.ExistsByIdentity(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateIdentity
	}

	avatarURL, err := s.uploadImage(ctx, "avatars", username, in.Avatar)
	if err != nil {
		s.Logger.WithError(err).WithField("username", username).Error("avatar upload failed")
		return nil, ErrUploadFailed
	}

	coverURL := ""
	if in.Cover != nil {
		coverURL, err = s.uploadImage(ctx, "covers", username, *in.Cover)
		if err != nil {
			// cover is optional; degrade to empty rather than failing registration
			s.Logger.WithError(err).WithField("username", username).Warn("cover upload failed")
			coverURL = ""
		}
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Username:      username,
		Email:         email,
		FullName:      strings.TrimSpace(in.FullName),
		PasswordHash:  hash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	s.indexChannel(ctx, u)
	s.sendWelcome(ctx, u)

	return sanitizeUser(u), nil
}

// Login authenticates by username or email.
func (s *UserService) Login(ctx context.Context, identifier, password string) (*PublicUser, TokenPair, error) {
	u, err := s.Users.GetByIdentifier(ctx, strings.ToLower(strings.TrimSpace(identifier)))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrUserNotFound
		}
		return nil, TokenPair{}, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return sanitizeUser(u), pair, nil
}

// issuePair generates both tokens and persists the refresh token on the user
// record. The stored value is the source of truth for revocation: issuing a
// new one invalidates the prior.
func (s *UserService) issuePair(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(helpers.TokenIdentity{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	})
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.Users.SetRefreshToken(ctx, u.ID, refresh); err != nil {
		return TokenPair{}, err
	}
	u.RefreshToken = refresh
	return TokenPair{
		AccessToken:        access,
		AccessTokenExpiry:  aexp,
		RefreshToken:       refresh,
		RefreshTokenExpiry: rexp,
	}, nil
}

// Refresh rotates the token pair. The presented token must decode with the
// refresh secret, resolve to an existing user, and string-equal the stored
// token; once consumed for rotation the old value no longer matches, which
// makes each refresh token single-use. Concurrent refreshes race on the
// stored value: the loser observes a mismatch and fails.
func (s *UserService) Refresh(ctx context.Context, token string) (*PublicUser, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(token)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidToken
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrUserNotFound
		}
		return nil, TokenPair{}, err
	}
	if u.RefreshToken != token {
		return nil, TokenPair{}, ErrTokenReused
	}
	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return sanitizeUser(u), pair, nil
}

// Logout clears the stored refresh token, invalidating the session.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.Users.SetRefreshToken(ctx, userID, ""); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ChangePassword requires the correct old password and rehashes the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, oldPassword) {
		return ErrWrongPassword
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, hash)
}

// GetProfile fetches the sanitized user view.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*PublicUser, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(u), nil
}

// UpdateAccount changes fullName and email.
func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*PublicUser, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.FullName = strings.TrimSpace(fullName)
	u.Email = strings.ToLower(strings.TrimSpace(email))
	if err := s.Users.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	s.indexChannel(ctx, u)
	return sanitizeUser(u), nil
}

// UpdateAvatar replaces the avatar with a freshly uploaded image.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, file FileUpload) (*PublicUser, error) {
	return s.updateImage(ctx, userID, "avatars", file, func(u *entity.User, url string) {
		u.AvatarURL = url
	})
}

// UpdateCoverImage replaces the cover image with a freshly uploaded image.
func (s *UserService) UpdateCoverImage(ctx context.Context, userID string, file FileUpload) (*PublicUser, error) {
	return s.updateImage(ctx, userID, "covers", file, func(u *entity.User, url string) {
		u.CoverImageURL = url
	})
}

func (s *UserService) updateImage(ctx context.Context, userID, kind string, file FileUpload, apply func(*entity.User, string)) (*PublicUser, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	url, err := s.uploadImage(ctx, kind, u.Username, file)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("image upload failed")
		return nil, ErrUploadFailed
	}
	apply(u, url)
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.indexChannel(ctx, u)
	return sanitizeUser(u), nil
}

func (s *UserService) uploadImage(ctx context.Context, kind, owner string, file FileUpload) (string, error) {
	if s.Media == nil {
		return "", errors.New("media store not configured")
	}
	ext := strings.ToLower(path.Ext(file.Filename))
	objectPath := path.Join(kind, owner, uuid.NewString()+ext)
	return s.Media.Upload(ctx, objectPath, file.ContentType, file.Reader)
}

// indexChannel keeps the search index in step with the profile; best-effort.
func (s *UserService) indexChannel(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"fullName":   u.FullName,
		"avatar":     u.AvatarURL,
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// sendWelcome enqueues the registration mail; never blocks registration.
func (s *UserService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.NewWelcomeJob(u.Email, u.FullName, u.Username)
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome mail enqueue failed")
	}
}
