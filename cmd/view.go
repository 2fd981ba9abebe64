package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vuexpurge.dev/pkg/vuexpurge/internal/domain"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View the report of the last run",
		Long:  "View the report of the last run from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
