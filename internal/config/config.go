// Package config loads topicdb settings from YAML and validates them
// against an embedded CUE schema.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/topicdb/internal/fsys"
)

//go:embed schema.cue
var schemaSource string

// DefaultFile is loaded when --config is not given and the file exists.
const DefaultFile = "topicdb.yaml"

const (
	BackendOS     = "os"
	BackendSQLite = "sqlite"
)

// Config holds the settings of one topicdb home.
type Config struct {
	// Home is a directory for the os backend or a database file for the
	// sqlite backend (":memory:" allowed).
	Home string `yaml:"home" json:"home"`

	Backend        string `yaml:"backend" json:"backend"`
	TopicExtension string `yaml:"topic_extension" json:"topic_extension"`
	LogLevel       string `yaml:"log_level" json:"log_level"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Home:           "topicdb-data",
		Backend:        BackendOS,
		TopicExtension: ".tpc",
		LogLevel:       "info",
	}
}

// ValidationError reports a config that does not satisfy the schema.
type ValidationError struct {
	Source string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Source, e.Detail)
}

// Load reads path on top of Default. A missing DefaultFile is not an error;
// any other missing file is.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			return cfg, cfg.Validate()
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes YAML data on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", source, err)
	}

	if err := cfg.validate(source); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cfg against the embedded schema.
func (c Config) Validate() error {
	return c.validate("settings")
}

func (c Config) validate(source string) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	value := def.Unify(ctx.Encode(c))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{
			Source: source,
			Detail: strings.TrimSpace(cueerrors.Details(err, nil)),
		}
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenBackend opens the storage backend named by Backend at Home.
func (c Config) OpenBackend() (fsys.Backend, error) {
	switch c.Backend {
	case BackendOS:
		return fsys.NewOS(c.Home)
	case BackendSQLite:
		return fsys.OpenSQLite(c.Home)
	default:
		return nil, fmt.Errorf("unknown backend %q (expected %q or %q)", c.Backend, BackendOS, BackendSQLite)
	}
}
