package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/studiofolio/portfolio-backend/config"
	"github.com/studiofolio/portfolio-backend/internal/auth"
	"github.com/studiofolio/portfolio-backend/internal/bootstrap"
	"github.com/studiofolio/portfolio-backend/internal/cache"
	"github.com/studiofolio/portfolio-backend/internal/contact"
	"github.com/studiofolio/portfolio-backend/internal/media"
	cronjob "github.com/studiofolio/portfolio-backend/internal/projects/cron"
	"github.com/studiofolio/portfolio-backend/internal/projects/repository"
	"github.com/studiofolio/portfolio-backend/internal/projects/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb, err := bootstrap.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		logger.Fatalf("initialize firebase: %v", err)
	}
	defer fb.Firestore.Close()

	policy := auth.AllowList(cfg.Admin.Emails)
	identity := auth.NewIdentityClient(cfg.Firebase.WebAPIKey)
	gate := auth.NewGate(identity, fb.Auth, policy, logger)
	gate.InitializeAuth()
	gate.Subscribe(func(s auth.State) {
		if s.User != nil {
			logger.Infof("session change: user=%s admin=%t", s.User.Email, s.IsAdmin)
		} else {
			logger.Info("session change: signed out")
		}
	})

	cdn := media.NewCloudinaryClient(cfg.Cloudinary.CloudName, cfg.Cloudinary.UploadPreset, logger)
	repo := repository.NewProjectRepository(fb.Firestore)
	store := service.NewStore(repo, cdn, logger)

	var listingCache *cache.ListingCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		listingCache = cache.NewListingCache(client, cfg.Redis.CacheTTL, logger)
		store.OnSync(func() {
			dropCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			listingCache.Invalidate(dropCtx)
		})
	}

	// warm the cache; stale-but-available means startup survives a failure here
	warmCtx, cancelWarm := context.WithTimeout(ctx, 15*time.Second)
	if err := store.Fetch(warmCtx); err != nil {
		logger.Warnf("initial project fetch failed: %v", err)
	}
	cancelWarm()

	refresher := cronjob.NewRefresher(store, cfg.App.RefreshSchedule, logger)
	if err := refresher.Start(); err != nil {
		logger.Fatalf("start refresher: %v", err)
	}
	defer refresher.Stop()

	var contactSvc *contact.Service
	var contactLimit *contact.RateLimiter
	if cfg.Contact.RelayURL != "" {
		msgRepo := contact.NewFirestoreMessageRepository(fb.Firestore)
		contactSvc = contact.NewService(msgRepo, contact.NewHTTPRelay(cfg.Contact.RelayURL), logger)
		contactLimit = contact.NewRateLimiter(cfg.Contact.RatePerMinute)
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    "portfolio-backend",
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Log:            logger,
		Store:          store,
		Gate:           gate,
		Verifier:       fb.Auth,
		Policy:         policy,
		ListingCache:   listingCache,
		Contact:        contactSvc,
		ContactLimit:   contactLimit,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
