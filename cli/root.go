// Package cli wires the command line surface. The root command runs the MCP
// server; subcommands cover one-shot sends, catalog discovery, configuration
// diagnostics and version information.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskwire/taskwire/engine/domain"
	"github.com/taskwire/taskwire/engine/task"
	"github.com/taskwire/taskwire/engine/webhook"
	"github.com/taskwire/taskwire/pkg/config"
	"github.com/taskwire/taskwire/pkg/logger"
	"github.com/taskwire/taskwire/pkg/monitoring"
	"github.com/taskwire/taskwire/server"
)

const (
	defaultConfigFile = "taskwire.yaml"
	defaultEnvFile    = ".env"
)

// RootCmd returns the root command. Invoked without a subcommand it starts
// the MCP server on the configured transport.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskwire",
		Short: "MCP server that turns support tasks into Google Chat cards",
		Long: `Taskwire normalizes support investigation tasks, renders them as Google Chat
cards and posts them to a space webhook. The formatting tools are exposed over
the Model Context Protocol on an SSE or stdio transport.`,
		SilenceUsage: true,
		RunE:         handleServeCmd,
	}
	addGlobalFlags(root)
	addServerFlags(root)

	// Debug wins over any configured log level, so it must rewrite the flag
	// before configuration resolution reads it.
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		debug, err := cmd.Flags().GetBool("debug")
		if err != nil {
			return fmt.Errorf("failed to get debug flag: %w", err)
		}
		if debug {
			return cmd.Flags().Set("log-level", "debug")
		}
		return nil
	}

	root.AddCommand(
		SendCmd(),
		DomainsCmd(),
		ConfigCmd(),
		VersionCmd(),
	)
	return root
}

// addGlobalFlags registers the flags shared by every command.
func addGlobalFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.PersistentFlags().String("config", defaultConfigFile, "Path to the configuration file")
	cmd.PersistentFlags().String("env-file", defaultEnvFile, "Path to the environment variables file")
	cmd.PersistentFlags().
		String("log-level", defaults.CLI.LogLevel, "Log level (debug, info, warn, error) (env: LOG_LEVEL)")
	cmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format (env: LOG_JSON)")
	cmd.PersistentFlags().Bool("log-source", false, "Include source file and line in logs")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug mode (sets log level to debug)")
	cmd.PersistentFlags().Bool("quiet", false, "Suppress non-essential output")
}

// addServerFlags registers the serving flags of the root command.
func addServerFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().String("host", defaults.Server.Host, "Host to bind the server to (env: MCP_HOST)")
	cmd.Flags().Int("port", defaults.Server.Port, "Port to run the server on (env: MCP_PORT)")
	cmd.Flags().String("base-url", "", "Public base URL advertised to SSE clients (env: MCP_BASE_URL)")
	cmd.Flags().String("transport", defaults.Server.Transport, "MCP transport, sse or stdio (env: MCP_TRANSPORT)")
	cmd.Flags().Duration("shutdown-timeout", defaults.Server.ShutdownTimeout,
		"Graceful shutdown timeout (env: MCP_SHUTDOWN_TIMEOUT)")
	cmd.Flags().String("webhook-url", "", "Google Chat webhook URL (env: GOOGLE_CHAT_WEBHOOK_URL)")
	cmd.Flags().Duration("webhook-timeout", defaults.Webhook.Timeout,
		"Webhook request timeout (env: WEBHOOK_TIMEOUT)")
	cmd.Flags().String("project", "", "Project prefix prepended to card titles (env: TASK_PROJECT)")
	cmd.Flags().String("owner", "", "Default task owner when none is given (env: TASK_OWNER)")
	cmd.Flags().Bool("monitoring", defaults.Monitoring.Enabled,
		"Expose Prometheus metrics (env: MONITORING_ENABLED)")
	cmd.Flags().String("monitoring-path", defaults.Monitoring.Path, "Metrics endpoint path (env: MONITORING_PATH)")
}

// SetupGlobalConfig resolves the layered configuration from defaults, the
// optional YAML file, environment variables and explicitly set CLI flags, and
// installs it process-wide.
func SetupGlobalConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := loadEnvFile(cmd); err != nil {
		return nil, err
	}
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	sources := make([]config.Source, 0, 2)
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	cliFlags := make(map[string]any)
	extractCLIFlags(cmd, cliFlags)
	if len(cliFlags) > 0 {
		sources = append(sources, config.NewCLIProvider(cliFlags))
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := config.Initialize(ctx, sources...); err != nil {
		return nil, err
	}
	return config.Get(), nil
}

// newCommandLogger builds the process logger from the resolved configuration.
// On the stdio transport log output moves to stderr because stdout carries
// the protocol stream.
func newCommandLogger(cmd *cobra.Command, cfg *config.Config) (logger.Logger, error) {
	_, _, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return nil, err
	}
	lcfg := logger.DefaultConfig()
	lcfg.Level = logger.LogLevel(cfg.CLI.LogLevel)
	if cfg.CLI.Quiet {
		lcfg.Level = logger.ErrorLevel
	}
	lcfg.JSON = cfg.CLI.LogJSON
	lcfg.AddSource = logSource
	if cfg.Server.Transport == server.TransportStdio {
		lcfg.Output = os.Stderr
	}
	return logger.NewLogger(lcfg), nil
}

// handleServeCmd runs the MCP server until a signal or a fatal error stops it.
func handleServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := SetupGlobalConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newCommandLogger(cmd, cfg)
	if err != nil {
		return err
	}
	ctx := logger.ContextWithLogger(cmd.Context(), log)
	srv, mon, err := buildServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := mon.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Error("Monitoring shutdown failed", "error", err)
		}
	}()
	return srv.Start(ctx)
}

// buildServer assembles the webhook dispatcher, the tool set and the
// transport server from the resolved configuration.
func buildServer(ctx context.Context, cfg *config.Config) (*server.Server, *monitoring.Service, error) {
	mon, err := monitoring.NewService(ctx, &monitoring.Config{
		Enabled: cfg.Monitoring.Enabled,
		Path:    cfg.Monitoring.Path,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize monitoring: %w", err)
	}
	metrics, err := webhook.NewMetrics(mon.Meter())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize webhook metrics: %w", err)
	}
	dispatcher := webhook.NewDispatcher(webhook.Config{
		URL:            cfg.Webhook.URL.Value(),
		Timeout:        cfg.Webhook.Timeout,
		ConnectTimeout: cfg.Webhook.ConnectTimeout,
	}, metrics)
	tools := server.NewTools(domain.Default(), dispatcher, metrics, task.Options{
		Project:      cfg.Task.Project,
		DefaultOwner: cfg.Task.DefaultOwner,
	})
	srv, err := server.NewServer(&server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		BaseURL:         cfg.Server.BaseURL,
		Transport:       cfg.Server.Transport,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, tools, mon)
	if err != nil {
		return nil, nil, err
	}
	return srv, mon, nil
}
