package router

import (
	"github.com/clipstream/clipstream-backend/internal/application"
	"github.com/clipstream/clipstream-backend/internal/container"
	"github.com/clipstream/clipstream-backend/internal/infrastructure/media"
	pginfra "github.com/clipstream/clipstream-backend/internal/infrastructure/postgres"
	handlers "github.com/clipstream/clipstream-backend/internal/interface/http"
	"github.com/clipstream/clipstream-backend/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	subs := pginfra.NewSubscriptionRepository(pool)
	videos := pginfra.NewVideoRepository(pool)
	tweets := pginfra.NewTweetRepository(pool)

	var mediaStore application.MediaStore
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		mediaStore = media.NewGCSStore(gcs, cfg.GCSBucket)
	}

	userSvc := application.NewUserService(
		users,
		container.GetJWT(),
		mediaStore,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		container.GetES(),
		cfg.ESChannelsIndex,
		logger,
	)
	channelSvc := application.NewChannelService(users, subs, container.GetRedis(), container.GetES(), cfg.ESChannelsIndex, logger)
	videoSvc := application.NewVideoService(videos, users, logger)
	tweetSvc := application.NewTweetService(tweets, users)

	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.IsProduction())
	channelHandler := handlers.NewChannelHandler(channelSvc, logger)
	videoHandler := handlers.NewVideoHandler(videoSvc, logger)
	tweetHandler := handlers.NewTweetHandler(tweetSvc, logger)

	jwt := container.GetJWT()
	r.Add(modules.NewUserModule(userHandler, videoHandler, jwt))
	r.Add(modules.NewChannelModule(channelHandler, tweetHandler, jwt))
	r.Add(modules.NewVideoModule(videoHandler, jwt))
	r.Add(modules.NewTweetModule(tweetHandler, jwt))
}
