package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/recrearnolar/recrear_bot/internal/calendar"
	"github.com/recrearnolar/recrear_bot/internal/config"
	"github.com/recrearnolar/recrear_bot/internal/controller"
	"github.com/recrearnolar/recrear_bot/internal/controller/chat"
	"github.com/recrearnolar/recrear_bot/internal/controller/handlers"
	"github.com/recrearnolar/recrear_bot/internal/controller/state"
	"github.com/recrearnolar/recrear_bot/internal/controller/telebot"
	"github.com/recrearnolar/recrear_bot/internal/controller/telegram"
	"github.com/recrearnolar/recrear_bot/internal/repository"
	"github.com/recrearnolar/recrear_bot/internal/repository/memory"
	"github.com/recrearnolar/recrear_bot/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Storage holds the repositories and, for Postgres, the pool behind them.
type Storage struct {
	Repos *service.Repositories
	Pool  *pgxpool.Pool
}

// OpenStorage connects to the configured backend.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return &Storage{Repos: memory.NewStore().Repositories()}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	logger.Info("Connected to database")

	return &Storage{Repos: repository.New(pool), Pool: pool}, nil
}

// Migrate applies pending migrations. Memory storage has none.
func (s *Storage) Migrate(ctx context.Context, logger *zap.Logger) error {
	if s.Pool == nil {
		return nil
	}
	mg, err := NewMigrator(s.Pool, logger)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Run(ctx)
}

// Pinger returns the health probe, nil for memory storage.
func (s *Storage) Pinger() Pinger {
	if s.Pool == nil {
		return nil
	}
	return s.Pool
}

func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// NewServices builds the domain services over repos.
func NewServices(repos *service.Repositories, cal service.Calendar, cfg *config.Config, now func() time.Time, logger *zap.Logger) handlers.Services {
	loc := cfg.Location
	return handlers.Services{
		Payments: service.NewPaymentService(repos.Responsibles, repos.Packages, loc, now, logger),
		Schedule: service.NewScheduleService(repos.Schedule, repos.Responsibles, cal, loc, now, logger),
		Expenses: service.NewExpenseService(repos.Expenses, loc, now, logger),
		Quotes:   service.NewQuoteService(repos.Quotes, cfg.BackofficeURL, loc, now, logger),
		Reports:  service.NewReportService(repos.Packages, repos.Expenses, repos.QuotePayments, loc, now, logger),
	}
}

// NewCalendar returns the Google mirror, or a no-op one without credentials.
func NewCalendar(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Calendar, error) {
	if cfg.Google == nil {
		logger.Warn("GOOGLE_CREDENTIALS not set, calendar sync disabled")
		return calendar.Disabled{}, nil
	}
	g, err := calendar.NewGoogle(ctx, cfg.Google, cfg.CalendarID, cfg.Location, logger)
	if err != nil {
		return nil, err
	}
	return g, nil
}

type transport interface {
	chat.Messenger
	Run(ctx context.Context, h chat.Handler) error
}

func newTransport(cfg *config.Config, logger *zap.Logger) (transport, http.Handler, error) {
	switch cfg.Transport {
	case config.TransportTelebot:
		t, err := telebot.New(cfg.TelegramToken, logger.Named("telebot"))
		if err != nil {
			return nil, nil, err
		}
		return t, nil, nil
	default:
		webhookURL := ""
		if cfg.RunMode == config.RunModeWebhook {
			webhookURL = cfg.WebhookURL
		}
		t, err := telegram.New(cfg.TelegramToken, webhookURL, logger.Named("telegram"))
		if err != nil {
			return nil, nil, err
		}
		if webhookURL == "" {
			return t, nil, nil
		}
		return t, t.WebhookHandler(), nil
	}
}

// Run wires the bot and blocks until ctx is done or a component fails.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.RequireBot(); err != nil {
		return err
	}

	storage, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	if err := storage.Migrate(ctx, logger); err != nil {
		return err
	}

	cal, err := NewCalendar(ctx, cfg, logger)
	if err != nil {
		return err
	}

	tr, webhook, err := newTransport(cfg, logger)
	if err != nil {
		return err
	}

	services := NewServices(storage.Repos, cal, cfg, time.Now, logger)
	h := handlers.NewHandlers(services, state.NewStore(), tr, cfg.Location, time.Now, logger.Named("handlers"))
	dispatcher := controller.NewDispatcher(h, tr, cfg.Authorized, cfg.AdminChatID, logger.Named("dispatcher"))

	scheduler, err := NewScheduler(h, cfg.AdminChatID, cfg.Location, logger.Named("scheduler"))
	if err != nil {
		return err
	}

	server := NewServer(cfg.HTTPAddr, storage.Pinger(), WebhookPath(cfg.WebhookURL), webhook, logger.Named("http"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(gctx) })
	g.Go(func() error {
		scheduler.Start(gctx)
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})
	g.Go(func() error {
		if err := dispatcher.NotifyStartup(gctx); err != nil {
			logger.Warn("Failed to send startup notice", zap.Error(err))
		}
		return tr.Run(gctx, dispatcher)
	})

	logger.Info("Bot started",
		zap.String("transport", cfg.Transport),
		zap.String("run_mode", cfg.RunMode),
		zap.String("storage", cfg.Storage),
		zap.String("timezone", cfg.Timezone))

	err = g.Wait()
	logger.Info("Bot stopped")
	return err
}
