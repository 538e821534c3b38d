package config

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Service loads configuration from layered sources and validates the result.
type Service interface {
	Load(ctx context.Context, sources ...Source) (*Config, error)
	Validate(cfg *Config) error
}

type loader struct {
	koanf     *koanf.Koanf
	validator *validator.Validate
}

// NewService creates a new configuration service with validation support.
func NewService() Service {
	return &loader{
		koanf:     koanf.New("."),
		validator: validator.New(),
	}
}

// Load builds the configuration with precedence defaults < sources < env,
// where the sources slice itself is applied in order (later wins). CLI
// sources are applied after env so explicit flags always win.
func (l *loader) Load(_ context.Context, sources ...Source) (*Config, error) {
	l.koanf = koanf.New(".")
	if err := l.loadDefaults(); err != nil {
		return nil, err
	}
	if err := l.loadSources(sources, SourceYAML); err != nil {
		return nil, err
	}
	if err := l.loadEnvironment(); err != nil {
		return nil, err
	}
	if err := l.loadSources(sources, SourceCLI); err != nil {
		return nil, err
	}
	return l.unmarshalAndValidate()
}

func (l *loader) loadDefaults() error {
	if err := l.koanf.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return fmt.Errorf("failed to load defaults: %w", err)
	}
	return nil
}

// transformEnvKey converts environment variable names to koanf paths.
// For example: WEBHOOK_CONNECT_TIMEOUT -> webhook.connect_timeout
func transformEnvKey(s string) string {
	s = strings.ToLower(s)
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_'
	})
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

// loadEnvironment loads configuration from environment variables. Variables
// with an explicit `env` tag mapping (GOOGLE_CHAT_WEBHOOK_URL, MCP_PORT,
// TASK_OWNER, ...) resolve through that mapping; anything else falls back to
// the section_key naming convention.
func (l *loader) loadEnvironment() error {
	envToPath := make(map[string]string)
	for _, mapping := range GenerateEnvMappings() {
		envToPath[mapping.EnvVar] = mapping.ConfigPath
	}
	known := knownPaths()
	err := l.koanf.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			if configPath, exists := envToPath[key]; exists {
				return configPath, value
			}
			path := transformEnvKey(key)
			if !known[path] {
				// Unrelated process environment; keep it out of the tree.
				return "", nil
			}
			return path, value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

// knownPaths returns the set of valid dotted configuration paths.
func knownPaths() map[string]bool {
	paths := make(map[string]bool)
	collectPaths(reflect.TypeOf(Config{}), "", paths)
	return paths
}

func collectPaths(t reflect.Type, prefix string, out map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		koanfTag := field.Tag.Get("koanf")
		if koanfTag == "" || koanfTag == "-" {
			continue
		}
		path := koanfTag
		if prefix != "" {
			path = prefix + "." + koanfTag
		}
		out[path] = true
		if field.Type.Kind() == reflect.Struct && field.Type.PkgPath() != "time" {
			collectPaths(field.Type, path, out)
		}
	}
}

func (l *loader) loadSources(sources []Source, want SourceType) error {
	for _, source := range sources {
		if source == nil || source.Type() != want {
			continue
		}
		if err := l.loadSource(source); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadSource(source Source) error {
	data, err := source.Load()
	if err != nil {
		return fmt.Errorf("failed to load from source %s: %w", source.Type(), err)
	}
	if len(data) == 0 {
		return nil
	}
	for key, value := range flattenMap("", data) {
		if err := l.koanf.Set(key, value); err != nil {
			return fmt.Errorf("failed to set key %s from source %s: %w", key, source.Type(), err)
		}
	}
	return nil
}

// flattenMap flattens a nested map into dot-notation keys.
func flattenMap(prefix string, m map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nestedMap, ok := v.(map[string]any); ok {
			for fk, fv := range flattenMap(key, nestedMap) {
				result[fk] = fv
			}
			continue
		}
		result[key] = v
	}
	return result
}

// sensitiveStringDecodeHook converts raw strings to SensitiveString fields.
func sensitiveStringDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(SensitiveString("")) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return SensitiveString(v), nil
	case []byte:
		return SensitiveString(v), nil
	default:
		return data, nil
	}
}

func (l *loader) unmarshalAndValidate() (*Config, error) {
	var config Config
	err := l.koanf.UnmarshalWithConf("", &config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &config,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				sensitiveStringDecodeHook,
			),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := l.Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the configuration against the struct validation tags.
func (l *loader) Validate(cfg *Config) error {
	if err := l.validator.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
