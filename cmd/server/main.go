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

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/DoyleJ11/fake-artist-backend/internal/catalog"
	"github.com/DoyleJ11/fake-artist-backend/internal/config"
	"github.com/DoyleJ11/fake-artist-backend/internal/engine"
	"github.com/DoyleJ11/fake-artist-backend/internal/httpapi"
	"github.com/DoyleJ11/fake-artist-backend/internal/hub"
	"github.com/DoyleJ11/fake-artist-backend/internal/logging"
	"github.com/DoyleJ11/fake-artist-backend/internal/ws"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile     string
		addr        string
		catalogDSN  string
		turnTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:          "server",
		Short:        "Run the fake artist game server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("catalog-dsn") {
				cfg.CatalogDSN = catalogDSN
			}
			if flags.Changed("turn-timeout") {
				cfg.TurnTimeout = turnTimeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ADDR)")
	cmd.Flags().StringVar(&catalogDSN, "catalog-dsn", "", "postgres DSN for the word catalog (overrides CATALOG_DSN)")
	cmd.Flags().DurationVar(&turnTimeout, "turn-timeout", 0, "advance a silent drawer after this long, 0 disables (overrides TURN_TIMEOUT)")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer func() {
		// stderr/stdout sync errors are noise on most platforms
		_ = log.Sync()
	}()

	words, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	log.Info("word catalog ready", zap.Int("words", words.Len()))

	h := hub.NewHub(ctx, func(code string) *engine.Room {
		return engine.NewRoom(code, engine.Config{Catalog: words, MinPlayers: cfg.MinPlayers})
	}, hub.Options{TurnTimeout: cfg.TurnTimeout, Logger: log})

	handler := httpapi.SetupRoutes(h, ws.Options{
		OriginPatterns: cfg.AllowedOrigins,
		OutboxSize:     cfg.OutboxSize,
		EventRate:      rate.Limit(cfg.EventRate),
		EventBurst:     cfg.EventBurst,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		var errs error
		h.Send(shutdownCtx, hub.ShutdownHub{})
		select {
		case <-h.Done():
		case <-shutdownCtx.Done():
			errs = multierr.Append(errs, fmt.Errorf("hub shutdown: %w", shutdownCtx.Err()))
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		log.Info("server stopped")
		return errs
	})
	return g.Wait()
}

func loadCatalog(ctx context.Context, cfg config.Config, log *zap.Logger) (*catalog.Catalog, error) {
	if cfg.CatalogDSN == "" {
		return catalog.Default(), nil
	}
	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return catalog.LoadPostgres(loadCtx, cfg.CatalogDSN, log)
}
