// Command auth-server runs the credential-lifecycle service over Redis. All
// configuration comes from the environment; a .env file is honored when
// present.
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

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/bbebig/authcore"
	"github.com/bbebig/authcore/httpapi"
)

type serverConfig struct {
	Addr string `env:"AUTH_ADDR" envDefault:":8080"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	TokenSecret string        `env:"TOKEN_SECRET,required,unset"`
	TokenIssuer string        `env:"TOKEN_ISSUER" envDefault:"authcore"`
	AccessTTL   time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
	RefreshTTL  time.Duration `env:"REFRESH_TTL" envDefault:"168h"`

	CookieDomain string `env:"COOKIE_DOMAIN"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"true"`

	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	// Missing .env is fine; real deployments export directly.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[serverConfig]()
	if err != nil {
		slog.Error("config parse failed", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg serverConfig, logger *slog.Logger) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return err
	}
	logger.Info("redis connected", "addr", cfg.RedisAddr)

	engineConfig := authcore.DefaultConfig()
	engineConfig.Token.Secret = []byte(cfg.TokenSecret)
	engineConfig.Token.Issuer = cfg.TokenIssuer
	engineConfig.Token.AccessTTL = cfg.AccessTTL
	engineConfig.Token.RefreshTTL = cfg.RefreshTTL
	engineConfig.RateLimit.Enabled = cfg.RateLimitEnabled

	engine, err := authcore.New().
		WithConfig(engineConfig).
		WithRedis(rdb).
		WithUserStore(newMemoryUserStore()).
		Build()
	if err != nil {
		return err
	}

	handler := httpapi.NewHandler(engine, logger, httpapi.Config{
		Cookie: httpapi.CookieConfig{
			Domain: cfg.CookieDomain,
			Secure: cfg.CookieSecure,
			TTL:    cfg.RefreshTTL,
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
