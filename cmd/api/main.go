package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"newswire/internal/broadcast"
	pgRepo "newswire/internal/infra/adapter/persistence/postgres"
	"newswire/internal/infra/db"
	"newswire/internal/observability/logging"
	"newswire/internal/service/token"
	"newswire/pkg/config"

	accUC "newswire/internal/usecase/account"
	artUC "newswire/internal/usecase/article"
	feedUC "newswire/internal/usecase/feed"

	hhttp "newswire/internal/handler/http"
	harticle "newswire/internal/handler/http/article"
	hauth "newswire/internal/handler/http/auth"
	"newswire/internal/handler/http/requestid"
	hws "newswire/internal/handler/ws"
	"newswire/internal/observability/tracing"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	secret := validateJWTSecret(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := config.GetEnvString("VERSION", "dev")
	components := setupServer(logger, database, secret, version)

	runServer(logger, components, version)
}

// validateJWTSecret enforces a strong signing secret before the server
// accepts any traffic.
func validateJWTSecret(logger *slog.Logger) []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value")
			os.Exit(1)
		}
	}
	return []byte(secret)
}

// initDatabase opens the connection pool and applies migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Migrate(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// serverComponents holds what runServer needs for operation and shutdown.
type serverComponents struct {
	handler  http.Handler
	registry *broadcast.Registry
}

// setupServer wires repositories, services, the live feed, and all routes.
func setupServer(logger *slog.Logger, database *sql.DB, secret []byte, version string) *serverComponents {
	articleRepo := pgRepo.NewArticleRepo(database)
	accountRepo := pgRepo.NewAccountRepo(database)

	tokens := token.NewService(secret,
		token.WithTTL(config.GetEnvDuration("TOKEN_TTL", token.DefaultTTL)))
	accounts := &accUC.Service{Repo: accountRepo, Tokens: tokens}
	articles := &artUC.Service{Repo: articleRepo}

	registry := broadcast.NewRegistry(clockwork.NewRealClock())
	publisher := feedUC.NewPublisher(articleRepo, registry)

	mux := http.NewServeMux()

	// operational endpoints, no credential required
	mux.Handle("GET /healthz", &hhttp.HealthHandler{DB: database, Feed: registry, Version: version})
	mux.Handle("GET /readyz", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /livez", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hauth.Register(mux, accounts)
	harticle.Register(mux, articles, accounts, publisher, logger)

	// the websocket endpoint bypasses the timeout middleware, it holds its
	// connection open for the whole session
	wsHandler := hws.NewsHandler{
		Registry: registry,
		Feed:     publisher,
		Logger:   logger,
	}

	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
	api := hhttp.Chain(mux, hhttp.Timeout(requestTimeout))

	root := http.NewServeMux()
	root.Handle("GET /ws/news", wsHandler)
	root.Handle("/", api)

	corsOrigins := config.GetEnvStringList("CORS_ALLOWED_ORIGINS", []string{"*"})
	handler := hhttp.Chain(root,
		hhttp.CORS(hhttp.CORSConfig{AllowedOrigins: corsOrigins}),
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(1<<20),
		hhttp.MetricsMiddleware,
	)

	return &serverComponents{handler: handler, registry: registry}
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *serverComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("LISTEN_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	// close live feed connections before tearing down the listener
	components.registry.CloseAll("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
