package cli

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bonsono/sonolog"
	"github.com/bonsono/sonolog/internal/adapters/file"
	redisadapter "github.com/bonsono/sonolog/internal/adapters/redis"
	"github.com/bonsono/sonolog/internal/adapters/sqlite"
	"github.com/bonsono/sonolog/pkg/observability"
	"github.com/bonsono/sonolog/pkg/persistence/middleware"
	"github.com/bonsono/sonolog/pkg/ports"
)

// EngineConfig describes the persistence wiring shared by the run,
// serve and mcp commands.
type EngineConfig struct {
	// DataDir is the root for file-backed persistence (default
	// ".sonolog").
	DataDir string

	// RedisAddr switches session storage to Redis and enables
	// distributed locking. Empty means file-backed.
	RedisAddr     string
	RedisPassword string

	// EncryptionKey is a base64-encoded 32-byte key. When set, sessions
	// are sealed at rest.
	EncryptionKey string
}

// EngineHandles bundles what BuildEngine wires up, so commands can
// reach the metrics registry and close backends on shutdown.
type EngineHandles struct {
	Engine   *sonolog.Engine
	Registry *prometheus.Registry
	closers  []func() error
}

// Close releases the backends in reverse creation order.
func (h *EngineHandles) Close() error {
	var firstErr error
	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// BuildEngine assembles an engine from CLI conventions: file or Redis
// session storage, SQLite profile archive, optional at-rest encryption
// and a dedicated metrics registry.
func BuildEngine(cfg EngineConfig, logger *slog.Logger) (*EngineHandles, error) {
	handles := &EngineHandles{Registry: prometheus.NewRegistry()}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = ".sonolog"
	}

	var sessionStore ports.SessionStore
	var locker ports.DistributedLocker

	if cfg.RedisAddr != "" {
		redisStore := redisadapter.New(cfg.RedisAddr, cfg.RedisPassword, 0)
		handles.closers = append(handles.closers, redisStore.Close)
		sessionStore = redisStore
		locker = redisadapter.NewLocker(redisStore.Client(), "sonolog:lock:")
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	} else {
		sessionStore = file.New(dataDir)
	}

	if cfg.EncryptionKey != "" {
		key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("encryption key is not valid base64: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("encryption key must decode to 32 bytes, got %d", len(key))
		}
		sessionStore = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey: key,
		})(sessionStore)
		logger.Info("session encryption enabled")
	}

	profiles, err := sqlite.NewStore(filepath.Join(dataDir, "profiles.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open profile archive: %w", err)
	}
	handles.closers = append(handles.closers, profiles.Close)

	engineOpts := []sonolog.Option{
		sonolog.WithSessionStore(sessionStore),
		sonolog.WithProfileStore(profiles),
		sonolog.WithMetrics(observability.NewMetrics(handles.Registry)),
		sonolog.WithLogger(logger),
	}
	if locker != nil {
		engineOpts = append(engineOpts, sonolog.WithLocker(locker))
	}

	engine, err := sonolog.New(engineOpts...)
	if err != nil {
		handles.Close()
		return nil, err
	}
	handles.Engine = engine

	return handles, nil
}
