package config

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	globalConfig atomic.Pointer[Config]
	initOnce     sync.Once
)

// Initialize loads the global configuration exactly once. Call early in the
// application, before anything reads config.Get().
func Initialize(ctx context.Context, sources ...Source) error {
	var initErr error
	initOnce.Do(func() {
		cfg, err := NewService().Load(ctx, sources...)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize global config: %w", err)
			return
		}
		globalConfig.Store(cfg)
	})
	return initErr
}

// Get returns the current global Config. Panics if Initialize has not run.
func Get() *Config {
	cfg := globalConfig.Load()
	if cfg == nil {
		panic("config not initialized; call config.Initialize first")
	}
	return cfg
}

// Reset clears the global state so tests can re-initialize.
func Reset() {
	initOnce = sync.Once{}
	globalConfig.Store(nil)
}
