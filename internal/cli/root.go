package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclesense/internal/config"
	"github.com/terraincognita07/cyclesense/internal/logger"
	"github.com/terraincognita07/cyclesense/internal/services"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// runtime is resolved once per invocation before any subcommand runs.
type runtime struct {
	cfg        *config.AppConfig
	thresholds services.AnalysisThresholds
}

func (rt *runtime) analyzer() (*services.CycleAnalyzer, error) {
	return services.NewCycleAnalyzer(rt.thresholds)
}

func newRootCmd() *cobra.Command {
	var (
		dbPath         string
		thresholdsFile string
	)
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:          "cyclesense",
		Short:        "CycleSense: menstrual cycle analysis engine",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if thresholdsFile != "" {
				cfg.AnalysisThresholdsFile = thresholdsFile
			}
			logger.InitWithOutput(cmd.ErrOrStderr(), cfg.LogLevel, cfg.Environment)

			thresholds, err := config.LoadAnalysisThresholds(cfg.AnalysisThresholdsFile)
			if err != nil {
				return fmt.Errorf("analysis thresholds: %w", err)
			}

			rt.cfg = cfg
			rt.thresholds = thresholds
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	cmd.PersistentFlags().StringVar(&thresholdsFile, "thresholds", "", "YAML thresholds overlay (overrides ANALYSIS_THRESHOLDS_FILE)")

	cmd.AddCommand(serveCmd(rt))
	cmd.AddCommand(analyzeCmd(rt))
	cmd.AddCommand(thresholdsCmd(rt))
	return cmd
}
