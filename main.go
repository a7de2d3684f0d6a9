package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"betty_server_go/auth"
	"betty_server_go/betty"
	"betty_server_go/config"
	"betty_server_go/controllers"
	"betty_server_go/data"
	"betty_server_go/logger"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var settings *config.Settings

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "betty_server_go",
		Short:         "API for articles that reference images hosted in Betty",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			settings = config.Load()
			logger.Setup(settings.LogLevel, settings.LogFormat)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
	root.AddCommand(newServeCommand(), newImageCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

// buildImageService создает клиента Betty с кэшем: Redis, если задан REDIS_ADDR, иначе в памяти.
func buildImageService(ctx context.Context, cfg *config.Settings) betty.Service {
	client := betty.NewClient(betty.Options{
		BaseURL:      cfg.BettyImageURL,
		PublicToken:  cfg.BettyPublicToken,
		PrivateToken: cfg.BettyPrivateToken,
		Timeout:      cfg.BettyTimeout,
	})

	var cache betty.Cache = betty.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warnf("Redis %s недоступен (%v), используется кэш в памяти", cfg.RedisAddr, err)
			redisClient.Close()
		} else {
			cache = betty.NewRedisCache(redisClient)
			log.Infof("Кэш метаданных Betty: Redis %s", cfg.RedisAddr)
		}
	}
	return betty.NewCachedService(client, cache, cfg.BettyCacheTTL)
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := data.InitDB(settings); err != nil {
		log.Errorf("Failed to initialize database: %v", err)
		return err
	}
	defer data.CloseDB()

	auth.SetSigningKey(settings.JWTSecret)
	controllers.Configure(buildImageService(ctx, settings), settings.BettyImageURL, settings.MaxUploadMB)

	server := &http.Server{
		Addr:              settings.ListenAddr,
		Handler:           controllers.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Запуск сервера на %s (Betty: %s)", settings.ListenAddr, settings.BettyImageURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Остановка сервера...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
