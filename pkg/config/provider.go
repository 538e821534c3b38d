package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourceType identifies where a configuration value came from.
type SourceType string

const (
	SourceDefault SourceType = "default"
	SourceYAML    SourceType = "yaml"
	SourceEnv     SourceType = "env"
	SourceCLI     SourceType = "cli"
)

// Source provides configuration data from a single origin. Sources are
// applied in the order given to Load, so later sources win.
type Source interface {
	Load() (map[string]any, error)
	Type() SourceType
}

// cliFlagPaths maps CLI flag names to configuration paths.
var cliFlagPaths = map[string]string{
	"host":             "server.host",
	"port":             "server.port",
	"base-url":         "server.base_url",
	"transport":        "server.transport",
	"shutdown-timeout": "server.shutdown_timeout",
	"webhook-url":      "webhook.url",
	"webhook-timeout":  "webhook.timeout",
	"project":          "task.project",
	"owner":            "task.default_owner",
	"monitoring":       "monitoring.enabled",
	"monitoring-path":  "monitoring.path",
	"log-level":        "cli.log_level",
	"log-json":         "cli.log_json",
	"debug":            "cli.debug",
	"quiet":            "cli.quiet",
	"config":           "cli.config_file",
	"env-file":         "cli.env_file",
}

// cliProvider implements Source for CLI flags.
type cliProvider struct {
	flags map[string]any
}

// NewCLIProvider creates a configuration source from explicitly set CLI flags.
func NewCLIProvider(flags map[string]any) Source {
	return &cliProvider{flags: flags}
}

func (c *cliProvider) Load() (map[string]any, error) {
	config := make(map[string]any)
	for key, value := range c.flags {
		path, ok := cliFlagPaths[key]
		if !ok {
			continue
		}
		if err := setNested(config, path, value); err != nil {
			return nil, fmt.Errorf("failed to set CLI flag %s: %w", key, err)
		}
	}
	return config, nil
}

func (c *cliProvider) Type() SourceType {
	return SourceCLI
}

// setNested sets a value in a nested map structure using dot notation.
func setNested(m map[string]any, path string, value any) error {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	current := m
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if _, exists := current[part]; !exists {
			current[part] = make(map[string]any)
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return fmt.Errorf("configuration conflict: key %q is not a map", strings.Join(parts[:i+1], "."))
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
	return nil
}

// yamlProvider implements Source for YAML files.
type yamlProvider struct {
	path string
}

// NewYAMLProvider creates a configuration source backed by a YAML file.
// A missing file is not an error; it simply contributes nothing.
func NewYAMLProvider(path string) Source {
	return &yamlProvider{path: path}
}

func (y *yamlProvider) Load() (map[string]any, error) {
	data, err := os.ReadFile(y.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]any), nil
		}
		return nil, fmt.Errorf("failed to read YAML file: %w", err)
	}
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML file: %w", err)
	}
	return filterNilValues(config), nil
}

func (y *yamlProvider) Type() SourceType {
	return SourceYAML
}

// filterNilValues recursively removes nil values so an explicit null in the
// YAML does not override an existing value with nil.
func filterNilValues(m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		if v == nil {
			continue
		}
		if nestedMap, ok := v.(map[string]any); ok {
			filtered := filterNilValues(nestedMap)
			if len(filtered) > 0 {
				result[k] = filtered
			}
			continue
		}
		result[k] = v
	}
	return result
}
