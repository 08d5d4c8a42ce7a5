package application

import (
	"context"
	"errors"
	"testing"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
)

func seedVideos(t *testing.T, videos *memVideoRepo, ownerID string, titles ...string) []string {
	t.Helper()
	ids := make([]string, 0, len(titles))
	for i, title := range titles {
		id := "video-" + string(rune('a'+i))
		videos.add(entity.Video{ID: id, OwnerID: ownerID, Title: title, VideoURL: "https://cdn.test/" + id})
		ids = append(ids, id)
	}
	return ids
}

func TestGetVideo(t *testing.T) {
	users := newMemUserRepo()
	ids := seedChannelUsers(t, users, "alice")
	videos := newMemVideoRepo(users)
	svc := NewVideoService(videos, users, testLogger())
	vids := seedVideos(t, videos, ids["alice"], "First")

	t.Run("anonymous viewer", func(t *testing.T) {
		v, err := svc.GetVideo(context.Background(), vids[0], "")
		if err != nil {
			t.Fatalf("GetVideo: %v", err)
		}
		if v.Title != "First" {
			t.Errorf("Title = %q", v.Title)
		}
		if v.Owner.Username != "alice" {
			t.Errorf("Owner.Username = %q", v.Owner.Username)
		}
		history, _ := svc.GetWatchHistory(context.Background(), ids["alice"])
		if len(history) != 0 {
			t.Error("anonymous view recorded in history")
		}
	})

	t.Run("unknown video", func(t *testing.T) {
		if _, err := svc.GetVideo(context.Background(), "video-zzz", ""); !errors.Is(err, ErrVideoNotFound) {
			t.Errorf("err = %v, want ErrVideoNotFound", err)
		}
	})
}

func TestWatchHistoryOrder(t *testing.T) {
	users := newMemUserRepo()
	ids := seedChannelUsers(t, users, "alice", "carol")
	videos := newMemVideoRepo(users)
	svc := NewVideoService(videos, users, testLogger())
	vids := seedVideos(t, videos, ids["alice"], "First", "Second", "Third")

	viewer := ids["carol"]
	for _, id := range vids {
		if _, err := svc.GetVideo(context.Background(), id, viewer); err != nil {
			t.Fatalf("GetVideo %s: %v", id, err)
		}
	}

	history, err := svc.GetWatchHistory(context.Background(), viewer)
	if err != nil {
		t.Fatalf("GetWatchHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("got %d entries, want 3", len(history))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if history[i].Title != want {
			t.Errorf("history[%d].Title = %q, want %q", i, history[i].Title, want)
		}
		if history[i].Owner.Username != "alice" {
			t.Errorf("history[%d].Owner.Username = %q", i, history[i].Owner.Username)
		}
	}

	// rewatching the first video moves it to the end, no duplicate
	if _, err := svc.GetVideo(context.Background(), vids[0], viewer); err != nil {
		t.Fatalf("rewatch: %v", err)
	}
	history, err = svc.GetWatchHistory(context.Background(), viewer)
	if err != nil {
		t.Fatalf("GetWatchHistory: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("after rewatch got %d entries, want 3", len(history))
	}
	for i, want := range []string{"Second", "Third", "First"} {
		if history[i].Title != want {
			t.Errorf("after rewatch history[%d].Title = %q, want %q", i, history[i].Title, want)
		}
	}
}
