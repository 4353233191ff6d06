package cli

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/internal/config"
	"github.com/aretw0/tabula/internal/metrics"
	"github.com/spf13/pflag"
)

// App is everything a command needs: configuration, logger, metrics and the editor.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Editor  *tabula.Editor
}

// Setup loads configuration and builds the editor it describes.
func Setup(cfgFile string, flags *pflag.FlagSet) (*App, error) {
	cfg, err := config.Load(cfgFile, flags)
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(cfg.Log.Level, cfg.Log.JSON)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if cfg.File != "" {
		logger.Debug("Config loaded", "file", cfg.File)
	}

	policy, err := cfg.NaNPolicy()
	if err != nil {
		return nil, err
	}

	opts := []tabula.Option{
		tabula.WithLogger(logger),
		tabula.WithNaNPolicy(policy),
	}
	if cfg.Seed != "" {
		opts = append(opts, tabula.WithSeed(cfg.Seed))
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		opts = append(opts, tabula.WithHooks(m.Hooks()))
	}

	ed, err := tabula.New(opts...)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
		Editor:  ed,
	}, nil
}
