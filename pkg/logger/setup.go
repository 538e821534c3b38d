package logger

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SetupLogger builds a logger from the CLI-facing string level. Unknown levels
// fall back to info.
func SetupLogger(logLevel string, logJSON, logSource bool) Logger {
	level := InfoLevel
	switch LogLevel(logLevel) {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, DisabledLevel:
		level = LogLevel(logLevel)
	}
	cfg := DefaultConfig()
	cfg.Level = level
	cfg.JSON = logJSON
	cfg.AddSource = logSource
	return NewLogger(cfg)
}

// GetLoggerConfig reads the logging flags shared by every command.
func GetLoggerConfig(cmd *cobra.Command) (string, bool, bool, error) {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-level flag: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-json flag: %w", err)
	}

	logSource, err := cmd.Flags().GetBool("log-source")
	if err != nil {
		return "", false, false, fmt.Errorf("failed to get log-source flag: %w", err)
	}

	return logLevel, logJSON, logSource, nil
}
