package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vehicle-catalogue/core/loader"
	"vehicle-catalogue/core/logger"
	"vehicle-catalogue/core/metrics"
	"vehicle-catalogue/core/middleware/auth"
	"vehicle-catalogue/core/middleware/rayid"
	"vehicle-catalogue/feature/catalogue"
	"vehicle-catalogue/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalogue server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// 1. Configuration and logger
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		if err := rt.cfg.Server.Validate(); err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Snapshot persistence (optional)
		st, err := rt.store(ctx, false)
		if err != nil {
			return err
		}

		// 3. Catalogue service
		l, err := rt.loader()
		if err != nil {
			return err
		}
		m := metrics.New()
		ttl := time.Duration(rt.cfg.Data.CacheTTLSeconds) * time.Second
		svc := catalogue.NewService(l, st, m, logg, ttl)

		health, err := rt.integrity()
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           time.Duration(rt.cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		// 4. Feature loader
		mgr := loader.NewManager(logg)
		mgr.Register(catalogue.NewFeature(svc))
		mgr.Register(integrity.NewFeature(health))

		// RayID first so every log line can be traced
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{
			ApiKey: rt.cfg.Server.ApiKey,
			Public: []string{"/health", "/metrics"},
		}))

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		app.Get("/metrics", m.Handler())

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		// Warm the cache for the installed version; failures only get logged
		go func() {
			if _, err := svc.Snapshot(context.Background(), rt.cfg.Data.GameVersion); err != nil {
				logg.Warn("Initial catalogue resolution failed", zap.Error(err))
			}
		}()

		serverErr := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			serverErr <- app.Listen(rt.cfg.Server.Addr())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-serverErr:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}

		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
