package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"vuexpurge.dev/pkg/vuexpurge/internal/adapter"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "vuexpurge"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName        = "output"
	excludeFlagName       = "exclude"
	verboseFlagName       = "verbose"
	runParallelFlagName   = "parallel"
	runFlavorFlagName     = "flavor"
	runDryRunFlagName     = "dry-run"
	runBackupFlagName     = "backup"
	runDiffFlagName       = "diff"
	verifyFlagName        = "verify"
	verifyTimeoutFlagName = "verify-timeout"
	forceFlagName         = "force"

	runParallelConfigKey   = "run.parallel"
	runFlavorsConfigKey    = "run.flavors"
	runDryRunConfigKey     = "run.dry_run"
	runBackupConfigKey     = "run.backup"
	runDiffConfigKey       = "run.diff"
	verifyCommandConfigKey = "run.verify_command"
	verifyTimeoutConfigKey = "run.verify_timeout"
	excludeConfigKey       = "paths.exclude"

	defaultReportsDir    = ".vuexpurge-reports"
	defaultRunParallel   = 4
	defaultRunDryRun     = false
	defaultRunBackup     = true
	defaultRunDiff       = false
	defaultVerifyTimeout = adapter.DefaultCommandTimeout

	envPrefix = "VUEXPURGE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".vuexpurge.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// defaultFlavors lists every purge pass, in the order they run.
var defaultFlavors = []string{"actions", "mutations"}

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(runFlavorsConfigKey, defaultFlavors)
	viper.SetDefault(runDryRunConfigKey, defaultRunDryRun)
	viper.SetDefault(runBackupConfigKey, defaultRunBackup)
	viper.SetDefault(runDiffConfigKey, defaultRunDiff)
	viper.SetDefault(verifyCommandConfigKey, "")
	viper.SetDefault(verifyTimeoutConfigKey, defaultVerifyTimeout.String())
	viper.SetDefault(excludeConfigKey, []string{})

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func verifyTimeout() time.Duration {
	return parseVerifyTimeout(viper.GetString(verifyTimeoutConfigKey))
}

// parseVerifyTimeout accepts durations ("90s") and plain seconds.
func parseVerifyTimeout(raw string) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultVerifyTimeout
	}

	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}

	slog.Warn("invalid verify timeout, using default", "value", raw, "default", defaultVerifyTimeout)

	return defaultVerifyTimeout
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
