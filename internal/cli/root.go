package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/client"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/config"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/logger"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/version"
)

var (
	cfg       *config.ClientEnvironment
	appLogger *slog.Logger

	apiURL string
)

var rootCmd = &cobra.Command{
	Use:               "blogctl",
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
	Short:             "Blog API operator CLI",
	Long: `blogctl seeds and wipes the post store, reads and updates posts through the API,
and runs the contract checks against a running service.

Store commands (seed, wipe) use DATABASE_URL and contract uses TEST_DATABASE_URL. API commands use --url,
which defaults to BLOG_API_URL.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewClientConfig()
		if err != nil {
			log.Printf("failed to load configuration: %v", err.Error())
			return err
		}

		appLogger = logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

		if apiURL == "" {
			apiURL = cfg.APIURL
		}
		return nil
	},
}

func Execute() {
	v := version.Get()
	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "blog API base URL (default $BLOG_API_URL)")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(wipeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(contractCmd)
}

// openStore connects to DATABASE_URL. The caller closes the store.
func openStore(ctx context.Context) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return openStoreURL(ctx, cfg.DatabaseURL)
}

func openStoreURL(ctx context.Context, databaseURL string) (store.Store, error) {
	pingCtx, cancel := context.WithTimeout(ctx, cfg.DatabasePingTimeout)
	defer cancel()

	s, err := store.Open(pingCtx, databaseURL, store.Options{
		MaxConnections: 2,
		ConnectTimeout: cfg.DBConnectTimeout,
		Logger:         appLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", store.Backend(databaseURL), err)
	}
	return s, nil
}

func closeStore(s store.Store) {
	if err := s.Close(context.Background()); err != nil {
		appLogger.Warn("failed to close store", slog.String("error", err.Error()))
	}
}

func newAPIClient() (*client.Client, error) {
	return client.New(apiURL, client.WithTimeout(cfg.HTTPTimeout))
}
