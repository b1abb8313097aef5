package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ahmednasr/gitscout/internal/ai"
	"github.com/ahmednasr/gitscout/internal/config"
	"github.com/ahmednasr/gitscout/internal/database"
	"github.com/ahmednasr/gitscout/internal/github"
	"github.com/ahmednasr/gitscout/internal/handler"
	"github.com/ahmednasr/gitscout/internal/logging"
	"github.com/ahmednasr/gitscout/internal/middleware"
	"github.com/ahmednasr/gitscout/internal/repository"
	"github.com/ahmednasr/gitscout/internal/service"
)

// main is the single entry‑point for the REST API.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "gitscout",
		Short:         "Find good first issues that match your skills",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				v.SetConfigFile(path)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read config %s: %w", path, err)
				}
			}
			return runServer(cmd.Context(), config.Load(v))
		},
	}
	serveCmd.Flags().String("port", "", "Port to listen on (overrides PORT)")
	serveCmd.Flags().String("config", "", "Path to a YAML/JSON/TOML config file")
	_ = v.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))

	root.AddCommand(serveCmd)
	return root
}

func runServer(ctx context.Context, cfg config.Config) error {
	logging.Initialize(logging.Config{Level: cfg.LogLevel, JSONFormat: cfg.LogJSON})
	logging.Info("configuration loaded",
		"port", cfg.Port,
		"store", cfg.StoreBackend,
		"ai_provider", cfg.AIProvider,
		"search_sort", cfg.SearchSort,
		"enrich_limit", cfg.EnrichLimit,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	logging.Info("preference store ready", "backend", cfg.StoreBackend)

	gh, err := github.NewClient(cfg.GitHubAPIURL, cfg.HTTPTimeout, cfg.GitHubRPS)
	if err != nil {
		return err
	}

	scorer, err := ai.NewScorer(ai.ProviderConfig{
		Provider:        cfg.AIProvider,
		Model:           cfg.AIModel,
		BaseURL:         cfg.AIBaseURL,
		ProjectID:       cfg.ProjectID,
		Location:        cfg.Location,
		CredentialsFile: cfg.CredentialsFile,
	})
	if err != nil {
		return err
	}

	state := service.LoadState(ctx, store, service.Credentials{
		GitHubToken:   cfg.GitHubToken,
		OpenRouterKey: cfg.OpenRouterKey,
	})
	discoverySvc := service.NewDiscoveryService(
		gh,
		service.NewRepoService(gh, cfg.EnrichLimit),
		ai.NewAnalyzer(scorer, cfg.AITimeout),
		state,
		service.DiscoveryOptions{Sort: cfg.SearchSort, PerPage: cfg.SearchPerPage},
	)
	defer discoverySvc.Close()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          handler.ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(middleware.Logging())
	handler.RegisterRoutes(app, discoverySvc, state, store, cfg.StoreBackend)

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server starting", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Warn("shutdown incomplete", "error", err)
	}
	discoverySvc.Wait()
	return nil
}

// openStore connects the configured preference backend.
func openStore(ctx context.Context, cfg config.Config) (repository.PreferenceStore, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return repository.NewMemoryStore(), nil

	case config.BackendMongo:
		client, err := database.NewMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return repository.NewMongoStore(client, cfg.DBName), nil

	case config.BackendSQLite, config.BackendMySQL, config.BackendPostgres:
		db, err := database.NewSQL(ctx, cfg.StoreBackend, cfg.StoreDSN)
		if err != nil {
			return nil, err
		}
		store, err := repository.NewSQLStore(ctx, db, cfg.StoreBackend, repository.DefaultTable)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return store, nil

	default:
		return nil, errors.New("unsupported store backend: " + cfg.StoreBackend)
	}
}
