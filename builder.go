package logbridge

import "github.com/trickstertwo/xclock"

// Config for constructing a Bridge.
type Config struct {
	Engine       Engine
	Executor     Executor
	Gate         *Gate        // optional; defaults to NewGate(DefaultThreshold)
	Clock        xclock.Clock // optional; defaults to xclock.Default()
	ErrorHandler ErrorHandler // optional; defaults to writing to stderr
}

// Builder separates construction from representation.
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) WithEngine(e Engine) *Builder {
	b.cfg.Engine = e
	return b
}

func (b *Builder) WithExecutor(x Executor) *Builder {
	b.cfg.Executor = x
	return b
}

func (b *Builder) WithGate(g *Gate) *Builder {
	b.cfg.Gate = g
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithErrorHandler(h ErrorHandler) *Builder {
	b.cfg.ErrorHandler = h
	return b
}

// Build validates the collaborators and constructs the Bridge. The bridge starts
// uninstalled; the engine keeps its own output until RegisterCallback is called.
func (b *Builder) Build() (*Bridge, error) {
	return New(b.cfg)
}

// New constructs a Bridge from cfg.
func New(cfg Config) (*Bridge, error) {
	if cfg.Engine == nil {
		return nil, ErrNoEngine
	}
	if cfg.Executor == nil {
		return nil, ErrNoExecutor
	}
	if cfg.Gate == nil {
		cfg.Gate = NewGate(DefaultThreshold)
	}
	if cfg.Clock == nil {
		cfg.Clock = xclock.Default()
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}
	return newBridge(cfg), nil
}
