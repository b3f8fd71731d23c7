package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"go.envmask.dev/core/edf"
	"go.envmask.dev/core/fingerprint"
	"go.envmask.dev/core/mode"
	"go.envmask.dev/core/pattern"
	"go.envmask.dev/core/policy"
	"go.envmask.dev/core/pool"
)

// parseCacheSize bounds the process-global parse-result LRU (§4.F).
const parseCacheSize = 200

// BufferHandle is an opaque key identifying one editor buffer's cache
// entry. Any comparable value works -- integration layers typically use
// the editor's native buffer number or pointer identity.
type BufferHandle = any

// Option configures a newly constructed [Engine].
type Option func(*Engine)

// WithSkipComments sets whether comment-shaped entries (is_comment =
// true) are skipped by the decoration builder. Default false: comments
// are masked like any other entry unless this is set.
func WithSkipComments(skip bool) Option {
	return func(e *Engine) { e.skipComments = skip }
}

// WithLogger sets the diagnostic logger used for the once-per-name
// ModeNotFound warning. Default [slog.Default]().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// Engine is the masking engine's public entry point: it owns the mode
// registry, the compiled pattern table, the mask-string pool, the
// process-global parse cache, and all per-buffer caches.
//
// See the package doc for the concurrency model: one mutex guards all
// mutable state, so a single Engine may be shared across goroutines
// willing to serialize on it, but a lock-free per-thread Engine is
// recommended for hot paths.
type Engine struct {
	mu sync.Mutex

	modes *mode.Registry
	pool  *pool.Pool
	table *pattern.Table

	parseCache *fingerprint.LRU[*edf.ParseResult]
	buffers    map[BufferHandle]*bufferState

	skipComments bool
	logger       *slog.Logger
	warnedModes  map[string]bool
}

type bufferState struct {
	masks            []MaskRecord
	lineOffsets      []int
	lineCount        int
	fingerprint      fingerprint.Digest
	forceFullRebuild bool
}

// New constructs an Engine with the built-in modes registered and a
// default_mode of "full" until [Engine.SetPolicy] is called.
func New(opts ...Option) *Engine {
	p := pool.New()

	e := &Engine{
		modes:       mode.NewRegistry(p),
		pool:        p,
		parseCache:  fingerprint.NewLRU[*edf.ParseResult](parseCacheSize),
		buffers:     make(map[BufferHandle]*bufferState),
		logger:      slog.Default(),
		warnedModes: make(map[string]bool),
	}

	table, _ := pattern.Compile(nil, nil, "full")
	e.table = table

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// SetPolicy recompiles the pattern resolver from p, applies p.Modes'
// per-mode option overrides, and drops all cached records -- per §5,
// changing policy at runtime invalidates every buffer's cache so stale
// records are never returned.
func (e *Engine) SetPolicy(p *policy.Policy) error {
	table, err := p.CompileTable()
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(p.Modes))
	for name := range p.Modes {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		if err := e.modes.Configure(name, p.Modes[name]); err != nil {
			return fmt.Errorf("configuring mode %q: %w", name, err)
		}
	}

	e.table = table
	e.buffers = make(map[BufferHandle]*bufferState)

	return nil
}

// RegisterMode registers a custom mode definition under name.
func (e *Engine) RegisterMode(name string, def mode.Definition) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.modes.Register(name, def)
}

// ConfigureMode validates and applies options for the named mode.
func (e *Engine) ConfigureMode(name string, options map[string]any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.modes.Configure(name, options)
}

// ListModes returns all registered mode names, sorted.
func (e *Engine) ListModes() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.modes.List()
}

// ModeInfo describes a registered mode's current configuration.
func (e *Engine) ModeInfo(name string) (mode.Info, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.modes.Info(name)
}

// ClearCaches drops the process-global parse cache and every per-buffer
// cache entry.
func (e *Engine) ClearCaches() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.parseCache.Clear()
	e.buffers = make(map[BufferHandle]*bufferState)
}

// MarkPasted sets handle's "needs full remask" latch: the next
// [Engine.GenerateIncremental] call for handle performs a FullRebuild
// regardless of its edit descriptor, then clears the latch.
func (e *Engine) MarkPasted(handle BufferHandle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.buffers[handle]
	if !ok {
		st = &bufferState{}
		e.buffers[handle] = st
	}

	st.forceFullRebuild = true
}

// ForgetBuffer drops handle's cache entry entirely, as on buffer detach.
func (e *Engine) ForgetBuffer(handle BufferHandle) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.buffers, handle)
}

// Parse tokenises input, consulting and updating the process-global
// parse-result cache (§4.F).
func (e *Engine) Parse(input []byte, opts edf.Options) (*edf.ParseResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.parseLocked(input, opts)
}

func (e *Engine) parseLocked(input []byte, opts edf.Options) (*edf.ParseResult, error) {
	digest := fingerprint.Compute(input).WithSalt(optionsSalt(opts))

	if cached, ok := e.parseCache.Get(digest); ok {
		return cached, nil
	}

	result, err := edf.Parse(input, opts)
	if err != nil {
		return nil, err
	}

	e.parseCache.Put(digest, result)

	return result, nil
}

// optionsSalt distinguishes parse-cache entries produced under different
// [edf.Options], so a cached [*edf.ParseResult] parsed without comments
// is never served to a caller that requires them (or vice versa).
func optionsSalt(opts edf.Options) uint64 {
	var salt uint64

	if opts.IncludeComments {
		salt |= 1
	}

	if opts.TrackPositions {
		salt |= 2
	}

	return salt
}

func (e *Engine) warnModeNotFound(name string) {
	if e.warnedModes[name] {
		return
	}

	e.warnedModes[name] = true

	if e.logger != nil {
		e.logger.Warn("mode not found, falling back to default", "mode", name)
	}
}
