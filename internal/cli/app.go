package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/n0roo/infradocs/internal/catalog"
	"github.com/n0roo/infradocs/internal/config"
	"github.com/n0roo/infradocs/internal/logging"
)

// app bundles what every command needs
type app struct {
	cfg    *config.Config
	cat    *catalog.Catalog
	source string
	logger *zap.Logger
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ConfigPath()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	cfg.Log.Stderr = verbose
	return cfg, nil
}

// loadCatalog resolves the catalog: --catalog, then config, then built-in
func loadCatalog(cfg *config.Config) (*catalog.Catalog, string, error) {
	path := catalogPath
	if path == "" {
		path = cfg.Catalog
	}

	if path == "" {
		cat, err := catalog.Default()
		if err != nil {
			return nil, "", fmt.Errorf("built-in catalog invalid: %w", err)
		}
		return cat, "built-in", nil
	}

	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, "", err
	}
	return cat, path, nil
}

func loadApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	cat, source, err := loadCatalog(cfg)
	if err != nil {
		logger.Error("catalog load failed", zap.Error(err))
		return nil, err
	}
	logger.Debug("catalog loaded",
		zap.String("source", source),
		zap.Int("tiers", cat.Len()),
	)

	return &app{cfg: cfg, cat: cat, source: source, logger: logger}, nil
}

// close flushes the logger
func (a *app) close() {
	_ = a.logger.Sync()
}

// initialTier picks the tier shown first: flag, then config, then catalog default
func (a *app) initialTier(flag string) string {
	if flag != "" {
		return flag
	}
	if a.cfg.DefaultTier != "" {
		return a.cfg.DefaultTier
	}
	return a.cat.DefaultTier()
}
