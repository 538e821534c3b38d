package config

import (
	"time"
)

// Config represents the complete configuration for the taskwire service.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Server     ServerConfig     `koanf:"server"     validate:"required"`
	Webhook    WebhookConfig    `koanf:"webhook"    validate:"required"`
	Task       TaskConfig       `koanf:"task"`
	Monitoring MonitoringConfig `koanf:"monitoring"`
	CLI        CLIConfig        `koanf:"cli"`
}

// ServerConfig contains MCP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"             validate:"required"        env:"MCP_HOST"`
	Port            int           `koanf:"port"             validate:"min=1,max=65535" env:"MCP_PORT"`
	BaseURL         string        `koanf:"base_url"                                    env:"MCP_BASE_URL"`
	Transport       string        `koanf:"transport"        validate:"oneof=sse stdio" env:"MCP_TRANSPORT"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"                            env:"MCP_SHUTDOWN_TIMEOUT"`
}

// WebhookConfig contains the outbound Google Chat webhook configuration.
// The URL may legitimately be empty; it is checked at dispatch time so the
// server can still start and report a configuration error per request.
type WebhookConfig struct {
	URL            SensitiveString `koanf:"url"             validate:"omitempty,url" env:"GOOGLE_CHAT_WEBHOOK_URL" sensitive:"true"`
	Timeout        time.Duration   `koanf:"timeout"                                  env:"WEBHOOK_TIMEOUT"`
	ConnectTimeout time.Duration   `koanf:"connect_timeout"                          env:"WEBHOOK_CONNECT_TIMEOUT"`
}

// TaskConfig contains defaults applied during task normalization.
type TaskConfig struct {
	Project      string `koanf:"project"       env:"TASK_PROJECT"`
	DefaultOwner string `koanf:"default_owner" env:"TASK_OWNER"`
}

// MonitoringConfig contains Prometheus exposition configuration.
type MonitoringConfig struct {
	Enabled bool   `koanf:"enabled" env:"MONITORING_ENABLED"`
	Path    string `koanf:"path"    validate:"required,startswith=/" env:"MONITORING_PATH"`
}

// CLIConfig contains CLI behavior configuration.
type CLIConfig struct {
	LogLevel   string `koanf:"log_level"   validate:"oneof=debug info warn error disabled" env:"LOG_LEVEL"`
	LogJSON    bool   `koanf:"log_json"    env:"LOG_JSON"`
	Debug      bool   `koanf:"debug"       env:"TASKWIRE_DEBUG"`
	Quiet      bool   `koanf:"quiet"       env:"TASKWIRE_QUIET"`
	ConfigFile string `koanf:"config_file"`
	EnvFile    string `koanf:"env_file"`
}

// Default returns the built-in defaults, the lowest-precedence source.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			Transport:       "sse",
			ShutdownTimeout: 10 * time.Second,
		},
		Webhook: WebhookConfig{
			Timeout:        15 * time.Second,
			ConnectTimeout: 10 * time.Second,
		},
		Monitoring: MonitoringConfig{
			Enabled: false,
			Path:    "/metrics",
		},
		CLI: CLIConfig{
			LogLevel: "info",
		},
	}
}
