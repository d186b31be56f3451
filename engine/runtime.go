package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/okto-dev/scriptling/bridge"
)

// ErrClosed is returned by runtime operations after Close.
var ErrClosed = errors.New("runtime closed")

// Runtime instantiates and drives guest script modules against a world.
// One module instance exists per (entity, script path) pair; instances
// persist across ticks so guest state survives between updates.
type Runtime struct {
	world    *World
	runtime  wazero.Runtime
	cache    wazero.CompilationCache
	compiled map[string]wazero.CompiledModule
	insts    map[instanceKey]*scriptInstance
	stdout   io.Writer
	stderr   io.Writer
	mu       sync.RWMutex
	closed   bool
}

type instanceKey struct {
	entity bridge.EntityID
	path   string
}

// RuntimeOption configures a Runtime at creation time.
type RuntimeOption func(*runtimeConfig)

type runtimeConfig struct {
	diskCache        bool
	cacheDir         string
	memoryLimitPages uint32
	stdout           io.Writer
	stderr           io.Writer
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithDiskCache enables a persistent compilation cache for faster CLI
// startup. Optionally provide a directory; otherwise XDG_CACHE_HOME (or
// the user cache dir) is used.
func WithDiskCache(dir ...string) RuntimeOption {
	return func(c *runtimeConfig) {
		c.diskCache = true
		if len(dir) > 0 && dir[0] != "" {
			c.cacheDir = dir[0]
		}
	}
}

// WithMemoryLimit caps guest memory. Each page is 64KB; 0 means the
// wazero default.
func WithMemoryLimit(pages uint32) RuntimeOption {
	return func(c *runtimeConfig) { c.memoryLimitPages = pages }
}

// WithStdout redirects guest stdout (WASI) and console output.
func WithStdout(w io.Writer) RuntimeOption {
	return func(c *runtimeConfig) { c.stdout = w }
}

// WithStderr redirects guest stderr and script failure reports.
func WithStderr(w io.Writer) RuntimeOption {
	return func(c *runtimeConfig) { c.stderr = w }
}

// NewRuntime creates a Runtime bound to world and registers the host
// modules guests import: "context" for the transform table, "env" for
// console.log/abort, plus WASI for wasip1-compiled guests.
func NewRuntime(world *World, opts ...RuntimeOption) (*Runtime, error) {
	cfg := defaultRuntimeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx := context.Background()

	var cache wazero.CompilationCache
	if cfg.diskCache {
		dir := cfg.cacheDir
		if dir == "" {
			dir = defaultCacheDir()
		}
		var err error
		cache, err = wazero.NewCompilationCacheWithDir(dir)
		if err != nil {
			return nil, fmt.Errorf("create disk cache: %w", err)
		}
	}

	rtConfig := wazero.NewRuntimeConfig().WithCloseOnContextDone(true)
	if cache != nil {
		rtConfig = rtConfig.WithCompilationCache(cache)
	}
	if cfg.memoryLimitPages > 0 {
		rtConfig = rtConfig.WithMemoryLimitPages(cfg.memoryLimitPages)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, rtConfig)

	fail := func(err error) (*Runtime, error) {
		rt.Close(ctx)
		if cache != nil {
			cache.Close(ctx)
		}
		return nil, err
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		return fail(fmt.Errorf("instantiate WASI: %w", err))
	}
	if err := instantiateContextModule(ctx, rt, world); err != nil {
		return fail(fmt.Errorf("instantiate context module: %w", err))
	}
	if err := instantiateEnvModule(ctx, rt, cfg.stdout); err != nil {
		return fail(fmt.Errorf("instantiate env module: %w", err))
	}

	return &Runtime{
		world:    world,
		runtime:  rt,
		cache:    cache,
		compiled: make(map[string]wazero.CompiledModule),
		insts:    make(map[instanceKey]*scriptInstance),
		stdout:   cfg.stdout,
		stderr:   cfg.stderr,
	}, nil
}

// World returns the world this runtime drives.
func (r *Runtime) World() *World { return r.world }

// Instances returns the number of live script module instances.
func (r *Runtime) Instances() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.insts)
}

// getCompiled returns a cached compiled module, compiling if necessary.
func (r *Runtime) getCompiled(ctx context.Context, path string) (wazero.CompiledModule, error) {
	r.mu.RLock()
	if r.closed {
		r.mu.RUnlock()
		return nil, ErrClosed
	}
	if compiled, ok := r.compiled[path]; ok {
		r.mu.RUnlock()
		return compiled, nil
	}
	r.mu.RUnlock()

	wasm, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if compiled, ok := r.compiled[path]; ok {
		return compiled, nil
	}

	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	r.compiled[path] = compiled
	return compiled, nil
}

// CompileBytes installs an in-memory script under a synthetic path, for
// embedded or generated modules.
func (r *Runtime) CompileBytes(ctx context.Context, name string, wasm []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if _, ok := r.compiled[name]; ok {
		return nil
	}
	compiled, err := r.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	r.compiled[name] = compiled
	return nil
}

// Tick runs one simulation step: uninitialized script instances get their
// setCurrentEntity+init calls, then every instance gets
// setCurrentEntity+update(dt). A failing script is reported to stderr and
// skipped, not fatal: one broken entity must not stall the world.
func (r *Runtime) Tick(ctx context.Context, dt float32) error {
	type pending struct {
		entity bridge.EntityID
		index  int
		path   string
		fresh  bool
	}

	var work []pending
	r.world.Each(func(e *Entity) {
		for i, s := range e.Scripts {
			work = append(work, pending{
				entity: e.ID,
				index:  i,
				path:   s.Path,
				fresh:  !s.initialized,
			})
		}
	})

	for _, p := range work {
		if err := ctx.Err(); err != nil {
			return err
		}

		inst, err := r.instance(ctx, p.entity, p.path)
		if err != nil {
			fmt.Fprintf(r.stderr, "script %s (entity %d): %v\n", p.path, p.entity, err)
			continue
		}

		if p.fresh {
			if err := inst.runInit(ctx, p.entity); err != nil {
				fmt.Fprintf(r.stderr, "init %s (entity %d): %v\n", p.path, p.entity, err)
				continue
			}
			r.world.markScriptInitialized(p.entity, p.index)
		}

		if err := inst.runUpdate(ctx, p.entity, dt); err != nil {
			fmt.Fprintf(r.stderr, "update %s (entity %d): %v\n", p.path, p.entity, err)
		}
	}

	r.pruneDead(ctx)
	return nil
}

// instance returns the module instance for (entity, path), creating and
// linking it on first use.
func (r *Runtime) instance(ctx context.Context, id bridge.EntityID, path string) (*scriptInstance, error) {
	key := instanceKey{entity: id, path: path}

	r.mu.RLock()
	inst, ok := r.insts[key]
	r.mu.RUnlock()
	if ok {
		return inst, nil
	}

	compiled, err := r.getCompiled(ctx, path)
	if err != nil {
		return nil, err
	}

	moduleConfig := wazero.NewModuleConfig().
		WithName("").
		WithStdout(r.stdout).
		WithStderr(r.stderr).
		WithArgs(filepath.Base(path)).
		WithStartFunctions("_initialize")

	mod, err := r.runtime.InstantiateModule(ctx, compiled, moduleConfig)
	if err != nil {
		return nil, fmt.Errorf("instantiate: %w", err)
	}

	inst = newScriptInstance(mod)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		mod.Close(ctx)
		return nil, ErrClosed
	}
	r.insts[key] = inst
	r.mu.Unlock()

	return inst, nil
}

// pruneDead closes instances whose entity has been despawned.
func (r *Runtime) pruneDead(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, inst := range r.insts {
		if _, ok := r.world.Get(key.entity); !ok {
			inst.close(ctx)
			delete(r.insts, key)
		}
	}
}

// Close releases every instance, the wazero runtime, and the compilation
// cache.
func (r *Runtime) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errs []error
	for key, inst := range r.insts {
		if err := inst.close(ctx); err != nil {
			errs = append(errs, err)
		}
		delete(r.insts, key)
	}
	if err := r.runtime.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if r.cache != nil {
		if err := r.cache.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func defaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "scriptling")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cache", "scriptling")
	}
	return filepath.Join(os.TempDir(), "scriptling-cache")
}
