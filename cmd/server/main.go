package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	_ "github.com/RisfiatulAdawiyah/mentawai-shores/docs"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/handler"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/api/middleware"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/ports"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/core/service"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/apiclient"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/config"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/db/memory"
	mongodb "github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/db/mongo"
	redisdb "github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/db/redis"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/jobs"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/sealer"
	"github.com/RisfiatulAdawiyah/mentawai-shores/internal/infrastructure/tracing"
	"github.com/RisfiatulAdawiyah/mentawai-shores/pkg/logger"
)

const (
	serviceName     = "mentawai-shores-web"
	shutdownTimeout = 10 * time.Second
)

// @title        Mentawai Shores web API
// @version      1.0
// @description  Session-holding front-end service for the Mentawai Shores property marketplace.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Endpoint:    cfg.Telemetry.OTLPEndpoint,
		ServiceName: serviceName,
		Environment: cfg.Env,
	}, logger.For("tracing"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init tracing")
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("SESSION_SECRET not set: using a random secret, sessions will not survive a restart")
	}
	seal, err := sealer.New(secret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init session sealer")
	}

	storage, cache, closeStores := openStores(ctx, cfg, seal, log)

	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.URL,
		Timeout: cfg.API.Timeout,
	}, logger.For("apiclient"))

	sessions := service.NewSessionManager(storage, func(h ports.TokenHolder) ports.AuthAPI {
		return client.WithSession(h)
	}, logger.For("session"))
	catalog := service.NewCatalogService(client, cache, cfg.Cache.TTL, logger.For("catalog"))

	warmer := jobs.NewWarmer(catalog, cfg.Cache.WarmSchedule, logger.For("warmer"))
	if err := warmer.Start(); err != nil {
		log.Error().Err(err).Msg("catalog warmer start failed")
	}

	e := api.NewRouter(api.Deps{
		Client:  client,
		Catalog: catalog,
		Session: middleware.SessionConfig{
			Manager: sessions,
			Secret:  []byte(secret),
			TTL:     cfg.Session.TTL,
			Secure:  cfg.Session.CookieSecure,
			Log:     logger.For("session"),
		},
		Checks: map[string]handler.Pinger{
			"session_storage": storage,
			"cache":           cache,
		},
		AppConfig: handler.AppConfig{
			APIURL:        client.BaseURL(),
			GATrackingID:  cfg.API.GATrackingID,
			Environment:   cfg.Env,
			SessionCookie: middleware.CookieName,
		},
		Log: logger.For("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("api", client.BaseURL()).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	waitForShutdown(log, e, warmer, shutdownTracing, closeStores)
}

// openStores selects the session storage backend. The catalog cache shares
// Redis when it is the session backend and stays in process otherwise.
func openStores(ctx context.Context, cfg *config.Config, seal *sealer.Sealer, log zerolog.Logger) (ports.SessionStorage, ports.Cache, func(context.Context)) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect redis")
		}
		closeFn := func(context.Context) {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close error")
			}
		}
		return redisdb.NewSessionStorage(rdb, seal, cfg.Session.TTL), redisdb.NewCache(rdb), closeFn

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect mongo")
		}
		storage := mongodb.NewSessionStorage(db, seal, cfg.Session.TTL)
		if err := storage.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("ensure session indexes failed")
		}
		closeFn := func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect error")
			}
		}
		return storage, memory.NewCache(), closeFn
	}

	log.Warn().Msg("using in-memory session storage: sessions are lost on restart")
	return memory.NewSessionStorage(), memory.NewCache(), func(context.Context) {}
}

func waitForShutdown(log zerolog.Logger, e *echo.Echo, warmer *jobs.Warmer, shutdownTracing func(context.Context) error, closeStores func(context.Context)) {
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if err := e.Close(); err != nil {
			log.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	warmer.Stop(ctx)
	closeStores(ctx)
	if err := shutdownTracing(ctx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown error")
	}

	log.Info().Msg("server exited cleanly")
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
