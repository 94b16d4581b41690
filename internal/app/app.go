package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lk-keep-fighting/my-bookmark-website/internal/config"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/httpserver/deps"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/logger"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/organize"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/redis"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/scheduler"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/store"
	redisstore "github.com/lk-keep-fighting/my-bookmark-website/internal/store/redis"
	"github.com/lk-keep-fighting/my-bookmark-website/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	jobs        *organize.Manager
	janitor     *scheduler.JobJanitor
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Document store: Redis when configured, otherwise in-memory. The memory
	// store is good enough for single-instance and local use.
	var documents store.DocumentStore
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		documents = redisstore.NewStore(client)
	} else {
		loggerClient.Info("no Redis address configured, using in-memory document store")
		documents = store.NewMemoryStore()
	}

	catalog, err := organize.LoadCatalog(cfg.StrategyFile)
	if err != nil {
		loggerClient.Errorf("Failed to load strategy catalog: %v", err)
		os.Exit(1)
	}

	client := organize.NewClient(organize.ClientConfig{
		Endpoint:    cfg.AIEndpoint,
		APIKey:      cfg.AIAPIKey,
		Model:       cfg.AIModel,
		Timeout:     cfg.AITimeout,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
	}, loggerClient)

	jobs := organize.NewManager(organize.NewMemoryJobStore(), client, catalog, loggerClient)

	janitor := scheduler.NewJobJanitor(jobs, loggerClient, cfg.JobGCInterval, cfg.JobRetention)

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Documents:      documents,
		Jobs:           jobs,
		DefaultOwner:   cfg.DefaultOwner,
		MaxImportBytes: int64(cfg.MaxImportMB) << 20,
		TrustProxy:     cfg.TrustProxy,
		JobRateBurst:   cfg.JobRateBurst,
		JobRatePerMin:  cfg.JobRatePerMin,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		jobs:        jobs,
		janitor:     janitor,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting bookmarkd v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("bookmarkd %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.janitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start job janitor: %w", err)
	}
	a.logger.Info("job janitor started",
		logger.Duration("interval", a.cfg.JobGCInterval),
		logger.Duration("retention", a.cfg.JobRetention))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.janitor.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ bookmarkd stopped cleanly")
	return nil
}
