package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/config"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/logger"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/server"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/version"
)

//	@title			blog-server
//	@description	blog-server serves blog posts from a document store (MongoDB, PostgreSQL or in memory).
//	@description
//	@description	## Common Error Responses
//	@description	All /posts endpoints may return:
//	@description	- `413` Request body exceeds size limit
//	@description	- `429` Rate limit exceeded
//	@description	- `500` Internal server error
//	@description	- `503` The post store is unavailable
//	@description
//	@description	Errors are returned as an ErrorResponse JSON body with a requestId that matches the server logs.
//	@description
//	@description	## Request Limits
//	@description	- **Rate limiting**: RATE_LIMIT_RPS requests per second, default 100 (set to 0 to disable)
//	@description	- **Request size limits**: MAX_REQUEST_BODY_BYTES, default 64KB (see the X-Max-Request-Size response header)
//	@license.name	MIT

//	@servers.url			http://localhost:8080
//	@servers.description	Development server

//	@accept		json
//	@produce	json

//	@tag.name			Posts
//	@tag.description	Blog posts

//	@tag.name			Common
//	@tag.description	Server API endpoints (health, readiness, version)

func main() {
	cmd := &cobra.Command{
		Use:   "blog-server",
		Short: "Blog post API server",
		Long:  `blog-server serves the /posts API from the store named by DATABASE_URL`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("DATABASE_URL", redact(cfg.DatabaseURL)),
		slog.Int("RATE_LIMIT_RPS", int(cfg.RateLimitRPS)),
		slog.Int64("MAX_REQUEST_BODY_BYTES", cfg.MaxRequestBodyBytes),
	)

	dbCtx, dbCancel := context.WithTimeout(context.Background(), cfg.DatabasePingTimeout)
	defer dbCancel()

	postStore, err := store.Open(dbCtx, cfg.DatabaseURL, store.Options{
		MaxConnections: cfg.DBMaxConnections,
		MinConnections: cfg.DBMinConnections,
		ConnectTimeout: cfg.DBConnectTimeout,
		Logger:         appLogger,
	})
	if err != nil {
		appLogger.Error("Unable to connect to the post store",
			slog.String("store", store.Backend(cfg.DatabaseURL)),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger.Info("connected to post store", slog.String("store", store.Backend(cfg.DatabaseURL)))
	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(postStore, cfg, appLogger)
	defer srv.DatabaseShutdown()

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}

// redact hides the password in a database URL
func redact(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "(unparseable)"
	}
	return u.Redacted()
}
