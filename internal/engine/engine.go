package engine

import (
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
)

// DefaultTopicExtension is appended to topic ids to form file names.
const DefaultTopicExtension = ".tpc"

// Engine owns the context stack of one session.
//
// Engine is not safe for concurrent use. Requests are processed one at a
// time, in order.
type Engine struct {
	env   *env
	stack []Context
}

// Option configures an Engine.
type Option func(*env)

// WithHome sets the label reported by STATUS. Default: backend.Root().
func WithHome(home string) Option {
	return func(e *env) {
		e.home = home
	}
}

// WithIDGenerator sets the record id source. Default: record.UUIDv7Generator.
func WithIDGenerator(g record.IDGenerator) Option {
	return func(e *env) {
		e.ids = g
	}
}

// WithClock sets the time source used for compaction backup names.
func WithClock(now func() time.Time) Option {
	return func(e *env) {
		e.now = now
	}
}

// WithTopicExtension sets the topic file extension. Default: ".tpc".
func WithTopicExtension(ext string) Option {
	return func(e *env) {
		e.ext = ext
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *env) {
		e.logger = logger
	}
}

// New creates an engine whose stack holds only the root directory context.
func New(backend fsys.Backend, opts ...Option) *Engine {
	e := &env{
		backend: backend,
		home:    backend.Root(),
		ext:     DefaultTopicExtension,
		ids:     record.UUIDv7Generator{},
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return &Engine{
		env:   e,
		stack: []Context{newDirectoryContext(e, "", "")},
	}
}

// Request processes one command line against the current context and
// applies the resulting stack effect.
func (g *Engine) Request(line string) Response {
	resp := g.Current().Process(line)

	switch r := resp.(type) {
	case OpenContext:
		g.stack = append(g.stack, r.Context)
	case CloseContext:
		// The root context is never popped.
		if len(g.stack) > 1 {
			g.stack[len(g.stack)-1] = nil
			g.stack = g.stack[:len(g.stack)-1]
		}
	}

	g.env.logger.Debug("request",
		"status", string(resp.Status()),
		"depth", g.Depth(),
		"path", g.Prompt(),
	)
	return resp
}

// Current returns the context on top of the stack.
func (g *Engine) Current() Context {
	return g.stack[len(g.stack)-1]
}

// Depth returns the number of contexts on the stack. The root counts as one.
func (g *Engine) Depth() int {
	return len(g.stack)
}

// Path returns the labels of the non-root contexts, bottom to top.
func (g *Engine) Path() []string {
	labels := make([]string, 0, len(g.stack)-1)
	for _, c := range g.stack[1:] {
		labels = append(labels, c.Label())
	}
	return labels
}

// Prompt renders the path as "/a/b". The root is "/".
func (g *Engine) Prompt() string {
	return "/" + strings.Join(g.Path(), "/")
}

// Home returns the label reported by STATUS.
func (g *Engine) Home() string {
	return g.env.home
}
