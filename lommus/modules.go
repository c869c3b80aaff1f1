package lommus

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/AW1534/lommus/modapi"
	"github.com/lmittmann/tint"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"golang.org/x/sync/errgroup"
)

const (
	// modulePackageName is the package every feature module file must
	// declare, and the namespace its New constructor is resolved from.
	modulePackageName = "module"

	// moduleLoadConcurrency caps how many files are interpreted at once.
	moduleLoadConcurrency = 4
)

type ModuleLoadStatus string

const (
	// ModuleLoadStatusLoaded - the file's New constructor ran, Init
	// succeeded, and the module name was recorded
	ModuleLoadStatusLoaded ModuleLoadStatus = "loaded"

	// ModuleLoadStatusSkipped - the file doesn't expose a conforming New
	// constructor. Utility files sharing the module directory land here.
	ModuleLoadStatusSkipped ModuleLoadStatus = "skipped"

	// ModuleLoadStatusFailed - the file looked like a module but couldn't
	// be interpreted, constructed or initialized
	ModuleLoadStatusFailed ModuleLoadStatus = "failed"
)

// ModuleLoadResult records the outcome of loading a single file from the
// module directory. Every file gets a result, so failures stay attributed
// to the file that caused them.
type ModuleLoadResult struct {
	File   string           `json:"file"`
	Name   string           `json:"name,omitempty"`
	Status ModuleLoadStatus `json:"status"`
	Err    error            `json:"-"`
}

func (r ModuleLoadResult) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("file", r.File),
		slog.String("status", string(r.Status)),
	}
	if r.Name != "" {
		attrs = append(attrs, slog.String("name", r.Name))
	}
	if r.Err != nil {
		attrs = append(attrs, slog.String("error", r.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}

// moduleRegistry is the ordered, append-only collection of registered
// module names. Duplicate names are a no-op.
type moduleRegistry struct {
	mu    sync.Mutex
	names []string
	seen  map[string]bool
}

func newModuleRegistry() *moduleRegistry {
	return &moduleRegistry{seen: map[string]bool{}}
}

// register records the given name. Returns false if it was already present.
func (r *moduleRegistry) register(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[name] {
		return false
	}
	r.seen[name] = true
	r.names = append(r.names, name)
	return true
}

// Names returns the registered module names in registration order.
func (r *moduleRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// RegisteredModules returns the names of all feature modules registered
// so far, in load order.
func (b *Bot) RegisteredModules() []string {
	return b.registry.Names()
}

// LoadModules scans the configured module directory once and loads every
// file matching the configured suffix. Files are interpreted concurrently;
// each gets its own interpreter, so one broken file can't poison another.
// Results for all files are collected and summarized after every load
// settles, and successfully loaded modules are registered in directory
// listing order.
func (b *Bot) LoadModules(ctx context.Context) []ModuleLoadResult {
	cfg := b.config.Modules
	logger := b.logger.With(loggerNameKey, "module_loader")

	entries, err := os.ReadDir(cfg.Dir)
	if err != nil {
		logger.Error("error reading module directory", "dir", cfg.Dir, tint.Err(err))
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), cfg.Suffix) {
			continue
		}
		files = append(files, entry.Name())
	}
	if len(files) == 0 {
		logger.Info("no module files found", "dir", cfg.Dir, "suffix", cfg.Suffix)
		return nil
	}

	client := &moduleClient{
		bot:    b,
		logger: b.logger.With(loggerNameKey, "module"),
	}

	results := make([]ModuleLoadResult, len(files))

	g := &errgroup.Group{}
	g.SetLimit(moduleLoadConcurrency)
	for idx, name := range files {
		g.Go(func() error {
			results[idx] = b.loadModuleFile(
				ctx,
				filepath.Join(cfg.Dir, name),
				client,
			)
			return nil
		})
	}
	_ = g.Wait()

	var loaded, skipped, failed int
	for idx := range results {
		result := &results[idx]
		switch result.Status {
		case ModuleLoadStatusLoaded:
			loaded++
			if b.registry.register(result.Name) {
				logger.Info("registered module", "module", *result)
			} else {
				logger.Warn(
					"module name already registered, ignoring",
					"module", *result,
				)
			}
		case ModuleLoadStatusSkipped:
			skipped++
			logger.Warn("not a module, skipping", "module", *result)
		case ModuleLoadStatusFailed:
			failed++
			logger.Error("module failed to load", "module", *result)
		}
	}

	logger.Info(
		"module load complete",
		"dir", cfg.Dir,
		"loaded", loaded,
		"skipped", skipped,
		"failed", failed,
	)
	return results
}

// loadModuleFile interprets a single module file and, when it conforms to
// the module contract, constructs and initializes it. The contract is
// structural: the file must declare `package module` and expose
// `func New() modapi.Module`. Anything else is a utility file.
func (b *Bot) loadModuleFile(
	ctx context.Context,
	path string,
	client modapi.Client,
) (result ModuleLoadResult) {
	result = ModuleLoadResult{File: filepath.Base(path)}

	defer func() {
		if rc := recover(); rc != nil {
			result.Status = ModuleLoadStatusFailed
			result.Err = fmt.Errorf("panic loading module: %v", rc)
		}
	}()

	src, err := os.ReadFile(path)
	if err != nil {
		result.Status = ModuleLoadStatusFailed
		result.Err = err
		return result
	}

	i := interp.New(interp.Options{})
	if err = i.Use(stdlib.Symbols); err != nil {
		result.Status = ModuleLoadStatusFailed
		result.Err = fmt.Errorf("error loading stdlib symbols: %w", err)
		return result
	}
	if err = i.Use(modapi.Symbols); err != nil {
		result.Status = ModuleLoadStatusFailed
		result.Err = fmt.Errorf("error loading modapi symbols: %w", err)
		return result
	}

	if _, err = i.EvalWithContext(ctx, string(src)); err != nil {
		result.Status = ModuleLoadStatusFailed
		result.Err = fmt.Errorf("error interpreting file: %w", err)
		return result
	}

	v, err := i.EvalWithContext(
		ctx,
		fmt.Sprintf("%s.New", modulePackageName),
	)
	if err != nil {
		// no constructor - a utility file sharing the directory
		result.Status = ModuleLoadStatusSkipped
		result.Err = err
		return result
	}

	ctor, ok := v.Interface().(func() modapi.Module)
	if !ok {
		result.Status = ModuleLoadStatusSkipped
		result.Err = fmt.Errorf(
			"New has signature %T, expected func() modapi.Module",
			v.Interface(),
		)
		return result
	}

	m := ctor()
	if m == nil {
		result.Status = ModuleLoadStatusFailed
		result.Err = fmt.Errorf("New returned a nil module")
		return result
	}

	result.Name = m.Name()
	if err = m.Init(client); err != nil {
		result.Status = ModuleLoadStatusFailed
		result.Err = fmt.Errorf("init failed: %w", err)
		return result
	}

	result.Status = ModuleLoadStatusLoaded
	return result
}
