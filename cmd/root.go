// Package cmd provides the root command and CLI setup for vuexpurge.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"vuexpurge.dev/pkg/vuexpurge/internal/adapter"
	"vuexpurge.dev/pkg/vuexpurge/internal/controller"
	"vuexpurge.dev/pkg/vuexpurge/internal/domain"
	m "vuexpurge.dev/pkg/vuexpurge/internal/model"
)

var scriptFileAdapter adapter.ScriptFileAdapter
var fsAdapter adapter.SourceFSAdapter
var reportStore adapter.ReportStore
var backupStore adapter.BackupStore
var commandRunner adapter.CommandRunnerAdapter
var rewriter domain.Rewriter
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

var verboseFlag bool
var parallelFlag int
var flavorsFlag []string

func init() {
	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	scriptFileAdapter = adapter.NewLocalScriptFileAdapter()
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	reportStore = adapter.NewLocalReportStore()
	backupStore = adapter.NewLocalBackupStore()
	commandRunner = adapter.NewLocalCommandRunnerAdapter(adapter.DefaultCommandTimeout)
	rewriter = domain.NewRewriter(scriptFileAdapter, fsAdapter)
	workflow = domain.NewWorkflow(
		fsAdapter,
		reportStore,
		backupStore,
		commandRunner,
		ui,
		rewriter,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./src ./lib    scan multiple directories (not recursive)
  - App.vue        a single file

Scanned extensions: .js .jsx .mjs .cjs .ts .mts .cts .tsx .vue
node_modules, .git and dist directories are skipped.`

const rootLongDescription = `vuexpurge removes Vuex mapActions and mapMutations spreads from component
methods, replacing each mapped name with an explicit method that calls
this.$store.dispatch or this.$store.commit.

` + pathPatternsHelp

const runLongDescription = `Rewrite the given paths in place (default: current directory).

The originals are kept in a backup inside the reports directory so the run
can be undone with "vuexpurge restore". With --verify the command is run
after writing, e.g. "npx vue-tsc --noEmit".

` + pathPatternsHelp

const listLongDescription = `List the files a run would rewrite, without writing anything.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vuexpurge",
		Short:         "Replace Vuex map helpers with explicit store calls",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for reports and backups",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().IntVarP(&parallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of files processed in parallel")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.PersistentFlags().StringSliceVarP(&flavorsFlag, runFlavorFlagName, "f", viper.GetStringSlice(runFlavorsConfigKey), "helpers to purge: actions, mutations")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(runFlavorFlagName), runFlavorsConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log debug messages")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

func listArgs(args []string) domain.ListArgs {
	return domain.ListArgs{
		Paths:   parsePaths(args),
		Exclude: viper.GetStringSlice(excludeConfigKey),
		Flavors: viper.GetStringSlice(runFlavorsConfigKey),
		Threads: viper.GetInt(runParallelConfigKey),
	}
}
