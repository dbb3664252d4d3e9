package app

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pan-day/bot-tele2/internal/config"
	"github.com/pan-day/bot-tele2/internal/infra/metrics"
	s3infra "github.com/pan-day/bot-tele2/internal/infra/s3"
	"github.com/pan-day/bot-tele2/internal/infra/telegram"
	"github.com/pan-day/bot-tele2/internal/repo/memory"
	"github.com/pan-day/bot-tele2/internal/repo/postgres"
	redrepo "github.com/pan-day/bot-tele2/internal/repo/redis"
	"github.com/pan-day/bot-tele2/internal/services/access"
	"github.com/pan-day/bot-tele2/internal/services/archive"
	"github.com/pan-day/bot-tele2/internal/services/audit"
	"github.com/pan-day/bot-tele2/internal/services/ledger"
	"github.com/pan-day/bot-tele2/internal/services/moderation"
	"github.com/pan-day/bot-tele2/internal/services/photos"
	"github.com/pan-day/bot-tele2/internal/services/registration"
	systemsvc "github.com/pan-day/bot-tele2/internal/services/system"
)

// Sender is the outbound half of the Bot API.
type Sender interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(tgbotapi.Chattable) error
}

// Infra holds the connections opened by main. Redis and Storage are optional.
type Infra struct {
	DB      *sqlx.DB
	Redis   *goredis.Client
	Storage *s3infra.Storage
	Metrics *metrics.Metrics
}

type Services struct {
	Access       *access.Service
	Registration *registration.Service
	Photos       *photos.Service
	Moderation   *moderation.Service
	Ledger       *ledger.Service
	Audit        *audit.Service
	System       *systemsvc.Service
	Archive      *archive.Service
}

type App struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	sender  Sender
	tg      *telegram.Client

	accessService       *access.Service
	registrationService *registration.Service
	photosService       *photos.Service
	moderationService   *moderation.Service
	ledgerService       *ledger.Service
	auditService        *audit.Service
	systemService       *systemsvc.Service
	archiveService      *archive.Service
}

func New(cfg config.Config, logger *zap.Logger, infra Infra) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if infra.DB == nil {
		return nil, fmt.Errorf("postgres connection is required")
	}

	usersRepo := postgres.NewUsersRepo(infra.DB)
	photosRepo := postgres.NewPhotosRepo(infra.DB)
	ledgerRepo := postgres.NewLedgerRepo(infra.DB)
	auditRepo := postgres.NewAuditRepo(infra.DB)

	var conversations registration.ConversationRepo
	if infra.Redis != nil {
		conversations = redrepo.NewConversationRepo(infra.Redis)
	} else {
		logger.Warn("redis is not configured, registration state is kept in memory")
		conversations = memory.NewConversationRepo()
	}

	auditService := audit.NewService(auditRepo)
	services := Services{
		Access:       access.NewService(cfg.AdminIDs),
		Registration: registration.NewService(usersRepo, conversations, cfg.RegistrationTTL),
		Photos:       photos.NewService(usersRepo, photosRepo),
		Moderation:   moderation.NewService(usersRepo, ledgerRepo, auditService, logger.Named("moderation")),
		Ledger:       ledger.NewService(ledgerRepo, usersRepo, cfg.ProfileHistoryLimit),
		Audit:        auditService,
		System:       systemsvc.NewService(usersRepo),
	}

	app := newApp(cfg, logger, infra.Metrics, nil, services)

	tg, err := telegram.NewClient(cfg.BotToken, cfg.PollTimeoutSeconds, logger.Named("telegram"), app.routeUpdate)
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}
	app.tg = tg
	app.sender = tg

	if infra.Storage != nil {
		app.archiveService = archive.NewService(tg, infra.Storage)
	} else {
		logger.Info("photo archive is disabled: missing S3_ENDPOINT or S3_BUCKET")
	}

	return app, nil
}

func newApp(cfg config.Config, logger *zap.Logger, m *metrics.Metrics, sender Sender, services Services) *App {
	return &App{
		cfg:                 cfg,
		logger:              logger,
		metrics:             m,
		sender:              sender,
		accessService:       services.Access,
		registrationService: services.Registration,
		photosService:       services.Photos,
		moderationService:   services.Moderation,
		ledgerService:       services.Ledger,
		auditService:        services.Audit,
		systemService:       services.System,
		archiveService:      services.Archive,
	}
}

func (a *App) Run(ctx context.Context) error {
	if a.tg == nil {
		return errors.New("telegram client is not initialized")
	}
	return a.tg.Start(ctx)
}
