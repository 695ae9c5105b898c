package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclesense/internal/api"
	"github.com/terraincognita07/cyclesense/internal/db"
	"github.com/terraincognita07/cyclesense/internal/i18n"
	"github.com/terraincognita07/cyclesense/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := rt.cfg
			logger.Init(cfg.LogLevel, cfg.Environment)
			time.Local = cfg.Location

			analyzer, err := rt.analyzer()
			if err != nil {
				return err
			}
			database, err := db.OpenSQLite(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("database init failed: %w", err)
			}
			sqlDB, err := database.DB()
			if err != nil {
				return fmt.Errorf("database init failed: %w", err)
			}
			defer sqlDB.Close()

			i18nManager, err := i18n.NewDefaultManager(cfg.DefaultLanguage)
			if err != nil {
				return fmt.Errorf("i18n init failed: %w", err)
			}
			handler, err := api.NewHandler(database, analyzer, cfg.Location, i18nManager)
			if err != nil {
				return fmt.Errorf("handler init failed: %w", err)
			}
			app := api.NewApp(handler)

			sigCtx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stopSignals()

			go func() {
				<-sigCtx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := app.ShutdownWithContext(shutdownCtx); err != nil {
					logger.Log.WithError(err).Error("server shutdown failed")
				}
			}()

			logger.Log.Infof("CycleSense listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, cfg.Location)
			if err := app.Listen(":" + cfg.Port); err != nil {
				return fmt.Errorf("server exited: %w", err)
			}
			return nil
		},
	}
}
