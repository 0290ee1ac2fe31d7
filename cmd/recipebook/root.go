package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/recipebook/backend/config"
	"github.com/recipebook/backend/internal/delivery/console"
	httpDelivery "github.com/recipebook/backend/internal/delivery/http"
	"github.com/recipebook/backend/internal/infrastructure/cache"
	"github.com/recipebook/backend/internal/infrastructure/tasty"
	"github.com/recipebook/backend/internal/logger"
	"github.com/recipebook/backend/internal/metrics"
	"github.com/recipebook/backend/internal/usecase"
)

const (
	cacheSweepInterval = time.Minute
	shutdownTimeout    = 10 * time.Second
)

// app holds the wired dependencies shared by every subcommand
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	cache   *cache.PageCache
	recipes *usecase.RecipeService
	loadErr error // startup ingestion failure, already logged
}

func (a *app) close() {
	a.cache.Close()
	_ = a.logger.Sync()
}

func newRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string

	root := &cobra.Command{
		Use:           "recipebook",
		Short:         "Search and filter baking recipes scraped from a recipe site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.yaml)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	root.PersistentPreRunE = func(*cobra.Command, []string) error {
		if err := v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level")); err != nil {
			return fmt.Errorf("bind --log-level: %w", err)
		}
		return nil
	}

	shell := &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive recipe book menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), v, configFile)
			if err != nil {
				return err
			}
			defer a.close()
			return runShell(a, cmd)
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recipe book over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), v, configFile)
			if err != nil {
				return err
			}
			defer a.close()
			return runServer(cmd.Context(), a)
		},
	}

	root.AddCommand(shell, serve)
	// Without a subcommand the recipe book opens the menu
	root.RunE = shell.RunE
	return root
}

// newApp loads configuration and ingests the recipe listing
func newApp(ctx context.Context, v *viper.Viper, configFile string) (*app, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadWithViper(v, configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.NewLogger(cfg.Server.Environment, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	log.Info("Starting RecipeBook",
		zap.String("environment", cfg.Server.Environment),
		zap.String("source", cfg.Source.URL),
		zap.Duration("cache_ttl", cfg.Cache.TTL))

	pageCache := cache.NewPageCache(cacheSweepInterval)
	client := tasty.NewClient(tasty.ClientConfig{
		URL:               cfg.Source.URL,
		UserAgent:         cfg.Source.UserAgent,
		Timeout:           cfg.Source.Timeout,
		RequestsPerMinute: cfg.RateLimit.Source,
		CacheTTL:          cfg.Cache.TTL,
	}, pageCache, log)

	matcher, err := usecase.NewKeywordMatcher(cfg.Source.Keywords)
	if err != nil {
		pageCache.Close()
		return nil, fmt.Errorf("invalid source keywords: %w", err)
	}

	source := usecase.NewBakingRecipeSource(client, matcher, log)
	recipes := usecase.NewRecipeService(source, log)
	_, loadErr := recipes.Load(ctx)

	return &app{cfg: cfg, logger: log, cache: pageCache, recipes: recipes, loadErr: loadErr}, nil
}

func runShell(a *app, cmd *cobra.Command) error {
	shell := console.NewShell(a.recipes, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)
	shell.SetLoadError(a.loadErr)
	return shell.Run()
}

func runServer(ctx context.Context, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	handler := httpDelivery.NewHandler(a.recipes)
	router := httpDelivery.SetupRouter(a.cfg, handler, a.logger)

	addr := fmt.Sprintf(":%s", a.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Error during shutdown", zap.Error(err))
		return err
	}

	a.logger.Info("Server stopped gracefully")
	return nil
}
