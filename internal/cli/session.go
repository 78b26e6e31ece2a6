package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/topicdb/internal/config"
	"github.com/roach88/topicdb/internal/engine"
	"github.com/roach88/topicdb/internal/fsys"
)

// session bundles what every command that touches a home needs.
type session struct {
	cfg     config.Config
	backend fsys.Backend
	logger  *slog.Logger
}

func (s *session) Close() error {
	return s.backend.Close()
}

// newFormatter builds the formatter for cmd from the global flags.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// loadConfig reads the config file and applies --home and --backend.
func (o *RootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	if o.Home != "" {
		cfg.Home = o.Home
	}
	if o.Backend != "" {
		cfg.Backend = o.Backend
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid settings", err)
	}
	return cfg, nil
}

// openSession loads config, configures logging and opens the backend.
// The caller must Close the session.
func (o *RootOptions) openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	// Configure logging based on verbose flag and config
	logLevel := cfg.Level()
	if o.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	logger := slog.New(handler)

	logger.Debug("opening backend", "backend", cfg.Backend, "home", cfg.Home)
	backend, err := cfg.OpenBackend()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open backend", err)
	}

	return &session{cfg: cfg, backend: backend, logger: logger}, nil
}

// newEngine starts a navigation session on the backend.
func (s *session) newEngine(opts ...engine.Option) *engine.Engine {
	base := []engine.Option{
		engine.WithHome(s.cfg.Home),
		engine.WithTopicExtension(s.cfg.TopicExtension),
		engine.WithLogger(s.logger),
	}
	return engine.New(s.backend, append(base, opts...)...)
}

// topicFile maps a CLI topic argument ("archive/notes") to its backend
// path ("archive/notes.tpc").
func (s *session) topicFile(topic string) string {
	path := fsys.Clean(topic)
	if !strings.HasSuffix(path, s.cfg.TopicExtension) {
		path += s.cfg.TopicExtension
	}
	return path
}
