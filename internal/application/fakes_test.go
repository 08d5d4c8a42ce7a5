package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
	repo "github.com/clipstream/clipstream-backend/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// memUserRepo is an in-memory UserRepository with the same duplicate and
// not-found semantics as the Postgres implementation.
type memUserRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}}
}

func copyUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.byID {
		if other.Username == u.Username || other.Email == u.Email {
			return repo.ErrDuplicate
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.byID[u.ID] = copyUser(u)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) GetByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == identifier || u.Email == identifier {
			return copyUser(u), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) ExistsByIdentity(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[u.ID]
	if !ok {
		return repo.ErrNotFound
	}
	for id, other := range r.byID {
		if id != u.ID && (other.Username == u.Username || other.Email == u.Email) {
			return repo.ErrDuplicate
		}
	}
	u.CreatedAt = stored.CreatedAt
	u.UpdatedAt = time.Now()
	r.byID[u.ID] = copyUser(u)
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func (r *memUserRepo) SetRefreshToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

// memSubRepo is an in-memory SubscriptionRepository.
type memSubRepo struct {
	mu    sync.Mutex
	pairs map[[2]string]bool // [subscriberID, channelID]
}

func newMemSubRepo() *memSubRepo {
	return &memSubRepo{pairs: map[[2]string]bool{}}
}

func (r *memSubRepo) CountByChannel(_ context.Context, channelID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for p := range r.pairs {
		if p[1] == channelID {
			n++
		}
	}
	return n, nil
}

func (r *memSubRepo) CountBySubscriber(_ context.Context, subscriberID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for p := range r.pairs {
		if p[0] == subscriberID {
			n++
		}
	}
	return n, nil
}

func (r *memSubRepo) Exists(_ context.Context, subscriberID, channelID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pairs[[2]string{subscriberID, channelID}], nil
}

func (r *memSubRepo) Create(_ context.Context, subscriberID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs[[2]string{subscriberID, channelID}] = true
	return nil
}

func (r *memSubRepo) Delete(_ context.Context, subscriberID, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pairs, [2]string{subscriberID, channelID})
	return nil
}

// memVideoRepo stores videos and an ordered per-user watch sequence. The
// owner join is resolved against the shared user repo.
type memVideoRepo struct {
	mu      sync.Mutex
	users   *memUserRepo
	videos  map[string]*entity.Video
	history map[string][]string // userID -> videoIDs in watch order
}

func newMemVideoRepo(users *memUserRepo) *memVideoRepo {
	return &memVideoRepo{
		users:   users,
		videos:  map[string]*entity.Video{},
		history: map[string][]string{},
	}
}

func (r *memVideoRepo) add(v entity.Video) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos[v.ID] = &v
}

func (r *memVideoRepo) GetByID(_ context.Context, id string) (*entity.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.videos[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memVideoRepo) ListWatchHistory(ctx context.Context, userID string) ([]entity.VideoWithOwner, error) {
	r.mu.Lock()
	ids := append([]string(nil), r.history[userID]...)
	r.mu.Unlock()

	out := make([]entity.VideoWithOwner, 0, len(ids))
	for _, id := range ids {
		v, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		owner, err := r.users.GetByID(ctx, v.OwnerID)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.VideoWithOwner{
			Video: *v,
			Owner: entity.ChannelRef{
				ID:        owner.ID,
				Username:  owner.Username,
				FullName:  owner.FullName,
				AvatarURL: owner.AvatarURL,
			},
		})
	}
	return out, nil
}

func (r *memVideoRepo) AppendWatchHistory(_ context.Context, userID, videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.videos[videoID]; !ok {
		return repo.ErrNotFound
	}
	seq := r.history[userID]
	for i, id := range seq {
		if id == videoID {
			seq = append(seq[:i], seq[i+1:]...)
			break
		}
	}
	r.history[userID] = append(seq, videoID)
	return nil
}

// memTweetRepo stores tweets newest-first per owner.
type memTweetRepo struct {
	mu     sync.Mutex
	users  *memUserRepo
	seq    int
	tweets []entity.Tweet
}

func newMemTweetRepo(users *memUserRepo) *memTweetRepo {
	return &memTweetRepo{users: users}
}

func (r *memTweetRepo) Create(_ context.Context, t *entity.Tweet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	t.ID = fmt.Sprintf("tweet-%d", r.seq)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.tweets = append(r.tweets, *t)
	return nil
}

func (r *memTweetRepo) ListByOwner(ctx context.Context, ownerID string) ([]entity.TweetWithOwner, error) {
	r.mu.Lock()
	items := append([]entity.Tweet(nil), r.tweets...)
	r.mu.Unlock()

	owner, err := r.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ref := entity.ChannelRef{ID: owner.ID, Username: owner.Username, FullName: owner.FullName, AvatarURL: owner.AvatarURL}

	out := []entity.TweetWithOwner{}
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].OwnerID == ownerID {
			out = append(out, entity.TweetWithOwner{Tweet: items[i], Owner: ref})
		}
	}
	return out, nil
}

// fakeMedia implements MediaStore in memory.
type fakeMedia struct {
	mu      sync.Mutex
	fail    bool
	uploads []string
}

func (m *fakeMedia) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	if m.fail {
		return "", errors.New("upload rejected")
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	m.mu.Lock()
	m.uploads = append(m.uploads, objectPath)
	m.mu.Unlock()
	return "https://cdn.test/" + objectPath, nil
}
