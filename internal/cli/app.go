// Package cli provides the command-line interface layer for filelab: the
// application context shared by every command and the interactive menu that
// dispatches to the file workflows.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/config"
	"github.com/zoro11031/filelab/internal/logging"
	"github.com/zoro11031/filelab/internal/steps"
	"github.com/zoro11031/filelab/internal/system"
	"github.com/zoro11031/filelab/internal/ui"
)

// Options configure NewAppContext
type Options struct {
	// ConfigPath overrides the default configuration file location
	ConfigPath string
	// Debug forces debug logging
	Debug bool
	// LogOutput receives diagnostic logs; nil means stderr
	LogOutput io.Writer
}

// AppContext holds all dependencies needed by the workflows
type AppContext struct {
	Config *config.Config
	UI     *ui.UI
	FS     system.FileSystemManager
	Log    zerolog.Logger
}

// NewAppContext loads configuration and builds the logger, UI and filesystem
func NewAppContext(opts Options) (*AppContext, error) {
	cfg := config.New(opts.ConfigPath)
	if err := cfg.Load(); err != nil {
		return nil, errors.Errorf("failed to load config: %w", err)
	}

	logOut := opts.LogOutput
	if logOut == nil {
		logOut = os.Stderr
	}

	uiInstance := ui.New()

	logger, err := logging.New(logOut, cfg.GetOrDefault(config.KeyLogLevel, ""), opts.Debug)
	if err != nil {
		uiInstance.Warningf("%v (using %s)", err, logging.DefaultLevel)
	}

	logger.Debug().
		Str("config", cfg.FilePath()).
		Stringer("format", cfg.Format()).
		Msg("configuration loaded")

	return &AppContext{
		Config: cfg,
		UI:     uiInstance,
		FS:     system.NewFileSystem(),
		Log:    logger,
	}, nil
}

// Context returns parent carrying the application logger
func (a *AppContext) Context(parent context.Context) context.Context {
	return a.Log.WithContext(parent)
}

// Transformer returns the read, modify, write workflow
func (a *AppContext) Transformer() *steps.Transformer {
	return steps.NewTransformer(a.FS, a.Config, a.UI)
}

// Inspector returns the validate and report workflow
func (a *AppContext) Inspector() *steps.Inspector {
	return steps.NewInspector(a.FS, a.Config, a.UI)
}
