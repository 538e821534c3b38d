package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/taskwire/taskwire/pkg/config"
)

// sensitivePatterns flag environment variables whose values must never be
// echoed back.
var sensitivePatterns = []string{
	"PASSWORD",
	"TOKEN",
	"API_KEY",
	"SECRET",
	"PRIVATE",
	"CREDENTIALS",
	"WEBHOOK_URL",
}

// ConfigCmd returns the config command.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management and diagnostics",
	}
	cmd.AddCommand(
		configShowCmd(),
		configValidateCmd(),
		configEnvsCmd(),
	)
	return cmd
}

// configShowCmd shows the resolved configuration.
func configShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration values",
		Long: `Display the configuration after every source is applied, in precedence
order: defaults, YAML file, environment variables, CLI flags. Secrets are
redacted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			cfg, err := SetupGlobalConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return formatConfigOutput(cmd, cfg, format)
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json, yaml)")
	return cmd
}

func formatConfigOutput(cmd *cobra.Command, cfg *config.Config, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(cfg)
	case "yaml":
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(cfg)
	case "table":
		return outputConfigTable(cmd, cfg)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// outputConfigTable prints the flattened configuration as an aligned table.
func outputConfigTable(cmd *cobra.Command, cfg *config.Config) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	flat := flattenConfig(cfg)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintln(w, "KEY\tVALUE")
	fmt.Fprintln(w, "---\t-----")
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%s\n", key, flat[key])
	}
	return nil
}

// flattenConfig converts the nested configuration to a flat key-value map.
// Sensitive values render through their redacted form.
func flattenConfig(cfg *config.Config) map[string]string {
	return map[string]string{
		"server.host":             cfg.Server.Host,
		"server.port":             strconv.Itoa(cfg.Server.Port),
		"server.base_url":         cfg.Server.BaseURL,
		"server.transport":        cfg.Server.Transport,
		"server.shutdown_timeout": cfg.Server.ShutdownTimeout.String(),
		"webhook.url":             cfg.Webhook.URL.String(),
		"webhook.timeout":         cfg.Webhook.Timeout.String(),
		"webhook.connect_timeout": cfg.Webhook.ConnectTimeout.String(),
		"task.project":            cfg.Task.Project,
		"task.default_owner":      cfg.Task.DefaultOwner,
		"monitoring.enabled":      strconv.FormatBool(cfg.Monitoring.Enabled),
		"monitoring.path":         cfg.Monitoring.Path,
		"cli.log_level":           cfg.CLI.LogLevel,
		"cli.log_json":            strconv.FormatBool(cfg.CLI.LogJSON),
	}
}

// configValidateCmd validates the resolved configuration.
func configValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := SetupGlobalConfig(cmd)
			if err != nil {
				return fmt.Errorf("configuration loading failed: %w", err)
			}
			if err := config.NewService().Validate(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✅ Configuration is valid")
			return nil
		},
	}
}

// configEnvsCmd lists the recognized environment variables.
func configEnvsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "envs",
		Short: "List the recognized environment variables and their current values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ENVIRONMENT VARIABLE\tCONFIG PATH\tCURRENT VALUE")
			fmt.Fprintln(w, "--------------------\t-----------\t-------------")
			for _, mapping := range config.GenerateEnvMappings() {
				value := os.Getenv(mapping.EnvVar)
				switch {
				case value == "":
					value = "(not set)"
				case isSensitiveEnvVar(mapping.EnvVar):
					value = "[REDACTED]"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", mapping.EnvVar, mapping.ConfigPath, value)
			}
			return nil
		},
	}
}

// isSensitiveEnvVar reports whether the variable name suggests a secret.
func isSensitiveEnvVar(envName string) bool {
	for _, pattern := range sensitivePatterns {
		if strings.Contains(envName, pattern) {
			return true
		}
	}
	return false
}
