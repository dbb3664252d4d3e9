package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/pan-day/bot-tele2/internal/app"
	"github.com/pan-day/bot-tele2/internal/config"
	"github.com/pan-day/bot-tele2/internal/infra/httpserver"
	"github.com/pan-day/bot-tele2/internal/infra/logger"
	"github.com/pan-day/bot-tele2/internal/infra/metrics"
	s3infra "github.com/pan-day/bot-tele2/internal/infra/s3"
	"github.com/pan-day/bot-tele2/internal/repo/postgres"
	redrepo "github.com/pan-day/bot-tele2/internal/repo/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("bot stopped with error", zap.Error(err))
	}
	log.Info("bot stopped")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	db, err := postgres.Open(ctx, cfg.Database.URL, postgres.Options{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("close postgres", zap.Error(err))
		}
	}()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, db.DB); err != nil {
			return err
		}
	}

	infra := app.Infra{
		DB:      db,
		Metrics: metrics.New(),
	}

	if cfg.Redis.Addr != "" {
		client := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() {
			_ = client.Close()
		}()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		infra.Redis = client
	}

	if cfg.S3.Enabled() {
		storage, err := s3infra.NewStorage(s3infra.Config{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
			Bucket:    cfg.S3.Bucket,
		})
		if err != nil {
			log.Warn("photo archive unavailable", zap.Error(err))
		} else {
			infra.Storage = storage
		}
	}

	application, err := app.New(cfg, log, infra)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	if cfg.OpsAddr != "" {
		ops := httpserver.New(cfg.OpsAddr, httpserver.NewRouter(db, infra.Metrics.Handler()), log.Named("ops"))
		go func() {
			if err := ops.Run(ctx); err != nil {
				log.Error("ops server stopped", zap.Error(err))
			}
		}()
	}

	log.Info("bot starting", zap.Int64("moderation_chat_id", cfg.ModerationChatID), zap.Int("admins", len(cfg.AdminIDs)))
	return application.Run(ctx)
}
