package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"socialpost/internal/config"
	"socialpost/internal/generator"
	"socialpost/internal/llm"
	"socialpost/internal/logging"
	"socialpost/internal/render"
	"socialpost/internal/store"
	"socialpost/internal/types"
	"socialpost/internal/usage"
)

// app is the state shared by every command of one invocation.
type app struct {
	// Global flags
	configPath string
	verbose    bool
	ephemeral  bool
	plain      bool

	out         io.Writer
	newClient   func(ctx context.Context, cfg *config.Config) (llm.Client, error)
	serviceOpts []generator.Option

	cfg      *config.Config
	backend  store.Backend
	store    *store.Store
	tracker  *usage.Tracker
	renderer *render.Renderer
	closers  []func() error

	// brandID is the brand the running command works on, for usage attribution.
	brandID string
}

func newApp() *app {
	return &app{
		configPath: config.DefaultPath(),
		out:        os.Stdout,
		newClient:  llm.NewClientFromConfig,
	}
}

// setup loads config, starts logging, opens the store and builds the renderer.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.ephemeral {
		cfg.Store.Backend = config.BackendMemory
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	logging.BootDebug("socialpost %s: store=%s model=%s", cfg.Version, cfg.Store.Backend, cfg.LLM.Model)

	backend, err := a.openBackend()
	if err != nil {
		return err
	}
	a.backend = backend
	a.store = store.Open(backend)
	a.tracker = usage.NewTracker(backend)

	var opts []render.Option
	if a.plain || !isTerminal(a.out) {
		opts = append(opts, render.WithPlain())
	}
	r, err := render.New(opts...)
	if err != nil {
		return err
	}
	a.renderer = r
	return nil
}

func (a *app) openBackend() (store.Backend, error) {
	switch a.cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil
	case config.BackendSQLite:
		b, err := store.NewSQLiteBackend(a.cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, b.Close)
		return b, nil
	default:
		return store.NewFileBackend(a.cfg.Store.Dir)
	}
}

// teardown releases what setup opened. Safe to call when setup failed.
func (a *app) teardown() error {
	var errs []error
	if a.tracker != nil {
		errs = append(errs, a.tracker.Save())
		a.tracker = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	logging.Sync()
	return errors.Join(errs...)
}

// service builds the generation façade. The API key is only required here so
// that store-only commands work offline.
func (a *app) service(ctx context.Context) (*generator.Service, error) {
	client, err := a.newClient(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	return generator.NewService(client, a.serviceOpts...), nil
}

func (a *app) brand(id string) (types.Brand, error) {
	b, ok := a.store.Brand(id)
	if !ok {
		return types.Brand{}, fmt.Errorf("brand %s not found", id)
	}
	a.brandID = b.ID
	return b, nil
}

// context returns the command context carrying the usage tracker and the
// current brand.
func (a *app) context(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if a.tracker != nil {
		ctx = usage.NewContext(ctx, a.tracker)
	}
	if a.brandID != "" {
		ctx = usage.WithBrand(ctx, a.brandID)
	}
	return ctx
}

func (a *app) post(brandID, postID string) (types.Brand, types.Post, error) {
	b, err := a.brand(brandID)
	if err != nil {
		return types.Brand{}, types.Post{}, err
	}
	for _, p := range b.Posts {
		if p.ID == postID {
			return b, p, nil
		}
	}
	return types.Brand{}, types.Post{}, fmt.Errorf("post %s not found in brand %s", postID, brandID)
}

func (a *app) print(s string) {
	fmt.Fprint(a.out, s)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
