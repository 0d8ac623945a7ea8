package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"regform/internal/registration/adapters/cache"
	"regform/internal/registration/adapters/countries"
	httpServer "regform/internal/registration/adapters/http"
	"regform/internal/registration/adapters/notify"
	"regform/internal/registration/adapters/submission"
	"regform/internal/registration/app"
	"regform/internal/registration/config"
	"regform/internal/registration/metrics"
	"regform/internal/registration/ports/gateway"
	"regform/internal/registration/resilience"
	"regform/pkg/logger"
	"regform/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "REGFORM_LOGGER_MODE"
	EnvLoggerLevel = "REGFORM_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "registration form service started"
	LogServiceShutdownDone = "registration form service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingRedis        = "closing Redis connection"
	LogInitClients         = "initializing remote clients"
	LogInitCache           = "initializing countries cache"
	LogCacheDisabled       = "countries cache disabled"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		formMetrics := metrics.New(registry)

		log.Info(ctx, LogInitClients)
		var countrySource gateway.CountrySource = countries.NewClient(cfg.Remote.CountriesURL, cfg.Remote.Timeout)
		var submitter gateway.Submitter = submission.NewClient(cfg.Remote.SubmitURL, cfg.Remote.Timeout)

		if cfg.Breaker.Enabled {
			breaker := resilience.NewCircuitBreaker("registration-submit", resilience.CircuitBreakerConfig{
				ErrorThreshold:   cfg.Breaker.ErrorThreshold,
				Timeout:          cfg.Breaker.OpenTimeout,
				SuccessThreshold: cfg.Breaker.SuccessThreshold,
			})
			submitter = resilience.NewSubmitter(submitter, breaker)
		}

		hooks := make([]func(context.Context) error, 0, 2)

		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache, zap.String("address", cfg.Redis.GetAddress()))
			redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				exitCode = 1
				return
			}
			countrySource = cache.NewCountrySource(countrySource, redisCache, cfg.Redis.CountriesTTL)
			hooks = append(hooks, func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisCache.Close()
			})
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		notifier := notify.NewLogNotifier()
		sessions := app.NewSessions(func() *app.Form {
			return app.NewForm(countrySource, submitter, notifier, app.WithMetrics(formMetrics))
		}, formMetrics)

		log.Info(ctx, LogInitHTTPServer)
		server := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(server, sessions, registry)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := server.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		hooks = append(hooks, func(ctx context.Context) error {
			log.Info(ctx, LogStoppingHTTP)
			return server.ShutdownWithContext(ctx)
		})

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(), hooks...)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
