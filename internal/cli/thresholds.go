package cli

import (
	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclesense/internal/config"
)

func thresholdsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "thresholds",
		Short: "Print the effective analysis thresholds as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.MarshalAnalysisThresholds(rt.thresholds)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
