package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"vuexpurge.dev/pkg/vuexpurge/internal/domain"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

var runDryRunFlag bool
var runBackupFlag bool
var runDiffFlag bool
var runVerifyFlag string
var runVerifyTimeoutFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Rewrite mapped helpers in place",
		Long:  runLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}

			return workflow.Run(cmd.Context(), domain.RunArgs{
				ListArgs:      listArgs(args),
				Reports:       m.Path(viper.GetString(outputFlagName)),
				DryRun:        viper.GetBool(runDryRunConfigKey),
				Backup:        viper.GetBool(runBackupConfigKey),
				ShowDiffs:     viper.GetBool(runDiffConfigKey),
				Verify:        viper.GetString(verifyCommandConfigKey),
				VerifyTimeout: verifyTimeout(),
				WorkDir:       workDir,
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&runDryRunFlag, runDryRunFlagName, "n", viper.GetBool(runDryRunConfigKey), "report and diff without writing files")
	bindFlagToConfig(cmd.Flags().Lookup(runDryRunFlagName), runDryRunConfigKey)

	cmd.Flags().BoolVar(&runBackupFlag, runBackupFlagName, viper.GetBool(runBackupConfigKey), "keep the original files for \"vuexpurge restore\"")
	bindFlagToConfig(cmd.Flags().Lookup(runBackupFlagName), runBackupConfigKey)

	cmd.Flags().BoolVarP(&runDiffFlag, runDiffFlagName, "d", viper.GetBool(runDiffConfigKey), "print the diff of every rewritten file")
	bindFlagToConfig(cmd.Flags().Lookup(runDiffFlagName), runDiffConfigKey)

	cmd.Flags().StringVar(&runVerifyFlag, verifyFlagName, viper.GetString(verifyCommandConfigKey), "shell command run after writing (e.g. \"npx vue-tsc --noEmit\")")
	bindFlagToConfig(cmd.Flags().Lookup(verifyFlagName), verifyCommandConfigKey)

	cmd.Flags().StringVar(&runVerifyTimeoutFlag, verifyTimeoutFlagName, viper.GetString(verifyTimeoutConfigKey), "timeout of the verify command")
	bindFlagToConfig(cmd.Flags().Lookup(verifyTimeoutFlagName), verifyTimeoutConfigKey)
}
