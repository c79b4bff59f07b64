package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rrens/shoplist/internal/api"
	"github.com/Rrens/shoplist/internal/api/handler"
	customMiddleware "github.com/Rrens/shoplist/internal/api/middleware"
	"github.com/Rrens/shoplist/internal/bot"
	"github.com/Rrens/shoplist/internal/config"
	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/extract"
	"github.com/Rrens/shoplist/internal/extract/gemini"
	"github.com/Rrens/shoplist/internal/extract/openai"
	"github.com/Rrens/shoplist/internal/repository/postgres"
	"github.com/Rrens/shoplist/internal/repository/redis"
	"github.com/Rrens/shoplist/internal/repository/sqlite"
	"github.com/Rrens/shoplist/internal/service"
	"github.com/Rrens/shoplist/internal/transport/telegram"
	"github.com/joho/godotenv"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// storage bundles one backend's repositories behind the domain interfaces.
type storage struct {
	items    domain.ItemRepository
	pointers domain.PointerRepository
	sessions domain.SessionRepository
	tokens   domain.TokenRepository
	pinger   handler.Pinger
	close    func()
}

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.Logging)

	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting shoplist server")

	if cfg.Telegram.Token == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.close()

	// Initialize Redis when enabled; the API limiter and render cache fall
	// back to in-process implementations without it.
	var limiter customMiddleware.Limiter = customMiddleware.NewLocalLimiter(
		cfg.API.RateLimit.RequestsPerMinute,
		cfg.API.RateLimit.Burst,
	)
	var renderCache service.RenderCache
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		limiter = redis.NewRateLimiter(redisClient, cfg.API.RateLimit.RequestsPerMinute, cfg.API.RateLimit.Burst)
		renderCache = redis.NewRenderCache(redisClient)
	}

	// Telegram client; the HTTP timeout needs headroom over the poll timeout
	tg := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.APIURL, cfg.Telegram.PollTimeout+10*time.Second)

	// Extraction providers
	extractor := extract.NewRouter(cfg.Extract.DefaultProvider)
	if cfg.Extract.Gemini.APIKey != "" {
		extractor.RegisterProvider(gemini.NewProvider(cfg.Extract.Gemini))
	}
	if cfg.Extract.OpenAI.APIKey != "" {
		extractor.RegisterProvider(openai.NewProvider(cfg.Extract.OpenAI.APIKey, cfg.Extract.OpenAI.Model))
	}
	log.Info().Strs("providers", extractor.ListProviders()).Msg("Extraction providers registered")

	// Services
	notifier := service.NewNotifier(tg, cfg.Telegram.TransientDeleteDelay)
	listService := service.NewListService(store.items, store.pointers, tg, notifier, renderCache)
	deleteService := service.NewDeleteService(store.items, store.pointers, store.sessions, tg, notifier, listService)
	tokenService := service.NewTokenService(store.tokens)

	// Bot
	b := bot.New(tg, store.items, listService, deleteService, tokenService, extractor, notifier, cfg.Telegram.PollTimeout)
	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		if err := b.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Bot stopped")
		}
	}()

	// HTTP server
	router := api.NewRouter(cfg, api.Deps{
		Items:   store.items,
		List:    listService,
		Tokens:  tokenService,
		DB:      store.pinger,
		Limiter: limiter,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	select {
	case <-botDone:
	case <-shutdownCtx.Done():
	}

	log.Info().Msg("Server stopped")
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.Open(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &storage{
			items:    sqlite.NewItemRepository(db),
			pointers: sqlite.NewPointerRepository(db),
			sessions: sqlite.NewSessionRepository(db),
			tokens:   sqlite.NewTokenRepository(db),
			pinger:   db,
			close:    func() { db.Close() },
		}, nil

	case "postgres":
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(cfg.Database.DSN(), "file://migrations"); err != nil {
			db.Close()
			return nil, err
		}
		return &storage{
			items:    postgres.NewItemRepository(db),
			pointers: postgres.NewPointerRepository(db),
			sessions: postgres.NewSessionRepository(db),
			tokens:   postgres.NewTokenRepository(db),
			pinger:   db,
			close:    db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}

func setupLogging(cfg config.LoggingConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writer io.Writer = os.Stderr
	if cfg.File != "" {
		rotator, err := rotatelogs.New(
			cfg.File+".%Y%m%d",
			rotatelogs.WithLinkName(cfg.File),
			rotatelogs.WithRotationTime(24*time.Hour),
			rotatelogs.WithMaxAge(7*24*time.Hour),
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open log file")
		}
		writer = io.MultiWriter(os.Stderr, rotator)
	}

	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{Out: writer}
	}
	log.Logger = log.Output(writer)
}
