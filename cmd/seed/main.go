package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/clipstream/clipstream-backend/config"
	pginfra "github.com/clipstream/clipstream-backend/internal/infrastructure/postgres"
	"github.com/clipstream/clipstream-backend/pkg/helpers"
)

// Seeds a development database with a few channels, videos, subscriptions
// and watch history. Idempotent: rerunning updates nothing that exists.

type seedUser struct {
	username string
	email    string
	fullName string
}

var seedUsers = []seedUser{
	{"alice", "alice@example.com", "Alice Martin"},
	{"bob", "bob@example.com", "Bob Chen"},
	{"carol", "carol@example.com", "Carol Reyes"},
	{"dave", "dave@example.com", "Dave Okafor"},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	ids := make(map[string]string, len(seedUsers))
	for _, u := range seedUsers {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO users (username, email, full_name, password_hash, avatar_url)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
			RETURNING id`,
			u.username, u.email, u.fullName, hash,
			fmt.Sprintf("https://i.pravatar.cc/300?u=%s", u.username),
		).Scan(&id)
		if err != nil {
			log.Fatalf("seed user %s: %v", u.username, err)
		}
		ids[u.username] = id
		log.Printf("user %s -> %s", u.username, id)
	}

	// everyone but dave subscribes to alice; alice subscribes to bob
	subs := [][2]string{
		{"bob", "alice"},
		{"carol", "alice"},
		{"dave", "alice"},
		{"alice", "bob"},
	}
	for _, s := range subs {
		_, err := pool.Exec(ctx, `
			INSERT INTO subscriptions (subscriber_id, channel_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			ids[s[0]], ids[s[1]])
		if err != nil {
			log.Fatalf("seed subscription %s -> %s: %v", s[0], s[1], err)
		}
	}

	videos := []struct {
		owner, title string
		duration     float64
	}{
		{"alice", "Sourdough from scratch", 412.5},
		{"alice", "One week in the Dolomites", 951.0},
		{"bob", "Mechanical keyboard teardown", 623.2},
	}
	videoIDs := make([]string, 0, len(videos))
	for _, v := range videos {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO videos (owner_id, title, video_url, thumbnail_url, duration)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM videos WHERE owner_id = $1 AND title = $2)
			RETURNING id`,
			ids[v.owner], v.title,
			fmt.Sprintf("https://cdn.example.com/videos/%s.mp4", ids[v.owner]),
			fmt.Sprintf("https://cdn.example.com/thumbs/%s.jpg", ids[v.owner]),
			v.duration,
		).Scan(&id)
		if err != nil {
			// already seeded; fetch the existing id
			err = pool.QueryRow(ctx,
				`SELECT id FROM videos WHERE owner_id = $1 AND title = $2`,
				ids[v.owner], v.title).Scan(&id)
			if err != nil {
				log.Fatalf("seed video %q: %v", v.title, err)
			}
		}
		videoIDs = append(videoIDs, id)
	}

	// carol watched all three in order
	repo := pginfra.NewVideoRepository(pool)
	for _, vid := range videoIDs {
		if err := repo.AppendWatchHistory(ctx, ids["carol"], vid); err != nil {
			log.Fatalf("seed watch history: %v", err)
		}
	}

	for _, t := range []struct{ owner, content string }{
		{"alice", "New video up! Sourdough, finally."},
		{"bob", "Streaming a teardown this weekend."},
	} {
		_, err := pool.Exec(ctx, `
			INSERT INTO tweets (owner_id, content)
			SELECT $1, $2
			WHERE NOT EXISTS (SELECT 1 FROM tweets WHERE owner_id = $1 AND content = $2)`,
			ids[t.owner], t.content)
		if err != nil {
			log.Fatalf("seed tweet: %v", err)
		}
	}

	log.Println("seed complete")
}
