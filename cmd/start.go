package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"table-pack-maker/core/loader"
	"table-pack-maker/core/logger"
	"table-pack-maker/core/middleware/auth"
	"table-pack-maker/core/middleware/rayid"
	"table-pack-maker/feature/integrity"
	"table-pack-maker/feature/pack"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP server and initializes all enabled features.

The pack feature exposes "find" and "make" as POST /pack/find and POST /pack/build;
the integrity feature exposes the health checks under /integrity.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if err := cfg.Server.Validate(); err != nil {
			return err
		}

		packSvc, err := newPackService(cfg, logg)
		if err != nil {
			return err
		}
		store, err := newStorageClient(cfg)
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(pack.NewFeature(packSvc))
		mgr.Register(integrity.NewFeature(
			integrity.NewService(store, cfg.Storage, cfg.Database, cfg.Pack.Destination, logg),
		))

		// RayID must be first to trace everything
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

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))
		if cfg.Server.ApiKey == "" {
			logg.Warn("API key is empty; only local requests can reach the server",
				zap.String("address", cfg.Server.Address()))
		}

		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			errCh <- app.Listen(cfg.Server.Address())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed to start: %w", err)
		case <-sig:
		}

		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
