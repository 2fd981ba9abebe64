package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vuexpurge.dev/pkg/vuexpurge/internal/domain"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

var restoreForceFlag bool

// restoreCmd represents the restore command.
var restoreCmd = newRestoreCmd()

func newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Undo the last run from its backup",
		Long: `Write back the original content of every file rewritten by the last run.

Files edited after the run are skipped unless --force is given.`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Restore(cmd.Context(), domain.RestoreArgs{
				Reports: m.Path(viper.GetString(outputFlagName)),
				Force:   restoreForceFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&restoreForceFlag, forceFlagName, false, "restore files even if they changed since the run")

	return cmd
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
