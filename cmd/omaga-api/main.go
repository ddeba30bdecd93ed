// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"omaga/internal/config"
	httptransport "omaga/internal/http"
	"omaga/internal/infra"
	"omaga/internal/modules/admin"
	"omaga/internal/modules/driver"
	"omaga/internal/modules/identity"
	"omaga/internal/modules/media"
	"omaga/internal/modules/order"
	"omaga/internal/modules/report"
	"omaga/internal/notify"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Error("db init", "err", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	s3Client, err := infra.NewS3(ctx, cfg.Storage.Region, cfg.Storage.Endpoint)
	if err != nil {
		log.Error("s3 init", "err", err)
		os.Exit(1)
	}

	tokens := identity.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	identitySvc := identity.NewService(
		identity.NewPGStore(dbPool), tokens, identity.NewRedisRevocations(redisClient),
	)

	onlineSet := driver.NewRedisOnlineSet(redisClient)
	driverSvc := driver.NewService(driver.NewPGStore(dbPool), onlineSet)

	notifier := notify.NewTelegramNotifier(dbPool, log, cfg.Telegram.BotToken, cfg.Telegram.GroupChatID)
	orderSvc := order.NewService(order.NewPGStore(dbPool), driverSvc, notifier)

	adminSvc := admin.NewService(admin.NewPGStore(dbPool), onlineSet)
	reportSvc := report.NewService(report.NewPGStore(dbPool), orderSvc)

	objects := media.NewS3Objects(s3Client, cfg.Storage.PublicBaseURL, cfg.Storage.Endpoint, cfg.Storage.Region)
	mediaSvc := media.NewService(objects, media.NewPGStore(dbPool), media.Buckets{
		Profile: cfg.Storage.ProfileBucket,
		Order:   cfg.Storage.OrderBucket,
	})

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Identity: identitySvc,
		Order:    orderSvc,
		Driver:   driverSvc,
		Admin:    adminSvc,
		Report:   reportSvc,
		Media:    mediaSvc,
		Log:      log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server", "err", err)
		os.Exit(1)
	}
}
