package application

import (
	"context"
	"errors"
	"testing"

	"github.com/clipstream/clipstream-backend/internal/domain/entity"
)

func seedChannelUsers(t *testing.T, users *memUserRepo, names ...string) map[string]string {
	t.Helper()
	ids := make(map[string]string, len(names))
	for _, name := range names {
		u := &entity.User{
			Username:     name,
			Email:        name + "@example.com",
			FullName:     name,
			PasswordHash: "x",
		}
		if err := users.Create(context.Background(), u); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
		ids[name] = u.ID
	}
	return ids
}

func TestGetProfileAggregation(t *testing.T) {
	users := newMemUserRepo()
	subs := newMemSubRepo()
	svc := NewChannelService(users, subs, nil, nil, "", testLogger())
	ids := seedChannelUsers(t, users, "alice", "bob", "carol", "dave")

	// bob, carol, dave subscribe to alice; alice subscribes to bob
	for _, sub := range []string{"bob", "carol", "dave"} {
		if err := subs.Create(context.Background(), ids[sub], ids["alice"]); err != nil {
			t.Fatalf("subscribe: %v", err)
		}
	}
	if err := subs.Create(context.Background(), ids["alice"], ids["bob"]); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	t.Run("anonymous viewer", func(t *testing.T) {
		p, err := svc.GetProfile(context.Background(), "alice", "")
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if p.SubscribersCount != 3 {
			t.Errorf("SubscribersCount = %d, want 3", p.SubscribersCount)
		}
		if p.SubscribedToCount != 1 {
			t.Errorf("SubscribedToCount = %d, want 1", p.SubscribedToCount)
		}
		if p.IsSubscribed {
			t.Error("IsSubscribed = true for anonymous viewer")
		}
	})

	t.Run("subscribed viewer", func(t *testing.T) {
		p, err := svc.GetProfile(context.Background(), "alice", ids["bob"])
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if !p.IsSubscribed {
			t.Error("IsSubscribed = false for subscriber")
		}
	})

	t.Run("unsubscribed viewer", func(t *testing.T) {
		// alice viewing bob: subscribed; bob viewing carol: not
		p, err := svc.GetProfile(context.Background(), "carol", ids["bob"])
		if err != nil {
			t.Fatalf("GetProfile: %v", err)
		}
		if p.IsSubscribed {
			t.Error("IsSubscribed = true without subscription")
		}
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		if _, err := svc.GetProfile(context.Background(), "  ALICE ", ""); err != nil {
			t.Errorf("GetProfile: %v", err)
		}
	})

	t.Run("unknown channel", func(t *testing.T) {
		if _, err := svc.GetProfile(context.Background(), "ghost", ""); !errors.Is(err, ErrChannelNotFound) {
			t.Errorf("err = %v, want ErrChannelNotFound", err)
		}
	})
}

func TestToggleSubscription(t *testing.T) {
	users := newMemUserRepo()
	subs := newMemSubRepo()
	svc := NewChannelService(users, subs, nil, nil, "", testLogger())
	ids := seedChannelUsers(t, users, "alice", "bob")

	subscribed, err := svc.ToggleSubscription(context.Background(), ids["bob"], "alice")
	if err != nil {
		t.Fatalf("ToggleSubscription: %v", err)
	}
	if !subscribed {
		t.Error("first toggle should subscribe")
	}

	subscribed, err = svc.ToggleSubscription(context.Background(), ids["bob"], "alice")
	if err != nil {
		t.Fatalf("ToggleSubscription: %v", err)
	}
	if subscribed {
		t.Error("second toggle should unsubscribe")
	}

	if _, err := svc.ToggleSubscription(context.Background(), ids["alice"], "alice"); !errors.Is(err, ErrSelfSubscription) {
		t.Errorf("self-subscribe: err = %v, want ErrSelfSubscription", err)
	}
	if _, err := svc.ToggleSubscription(context.Background(), ids["bob"], "ghost"); !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("unknown channel: err = %v, want ErrChannelNotFound", err)
	}
}

func TestSearchWithoutIndex(t *testing.T) {
	svc := NewChannelService(newMemUserRepo(), newMemSubRepo(), nil, nil, "", testLogger())
	hits, err := svc.Search(context.Background(), "alice", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("got %d hits, want none", len(hits))
	}
}
