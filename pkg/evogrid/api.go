// Package evogrid is the embedding facade: it wires a store and the lab
// runner together so callers can run recorded experiments, list them, and
// summarize them without touching the internal packages.
package evogrid

import (
	"context"
	"log/slog"

	"evogrid/internal/model"
	"evogrid/internal/platform"
	"evogrid/internal/stats"
	"evogrid/internal/storage"
	"evogrid/internal/worlds"

	_ "evogrid/internal/worlds/conway"
	_ "evogrid/internal/worlds/evoconway"
	_ "evogrid/internal/worlds/evosubstance"
	_ "evogrid/internal/worlds/substance"
)

const defaultDBPath = "evogrid.db"

type Options struct {
	StoreKind string // memory|sqlite; empty selects the default backend
	DBPath    string
	Logger    *slog.Logger
}

type Client struct {
	store storage.Store
	lab   *platform.Lab
}

// RunRequest mirrors platform.RunConfig with zero values replaced by the
// conventional defaults.
type RunRequest struct {
	World         string
	Width         int
	Height        int
	Seed          uint64
	Generations   int
	SampleEvery   int
	SnapshotEvery int
	Params        map[string]string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	lab, err := platform.NewLab(platform.Config{Store: store, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	return &Client{store: store, lab: lab}, nil
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Worlds lists the registered world names.
func (c *Client) Worlds() []string {
	return worlds.Names()
}

// Run executes one experiment and persists it.
func (c *Client) Run(ctx context.Context, req RunRequest) (platform.RunResult, error) {
	cfg := platform.DefaultRunConfig(req.World)
	if req.Width > 0 {
		cfg.Width = req.Width
	}
	if req.Height > 0 {
		cfg.Height = req.Height
	}
	if req.Generations > 0 {
		cfg.Generations = req.Generations
	}
	if req.SampleEvery > 0 {
		cfg.SampleEvery = req.SampleEvery
	}
	cfg.Seed = req.Seed
	cfg.SnapshotEvery = req.SnapshotEvery
	cfg.Params = req.Params
	return c.lab.Run(ctx, cfg)
}

// Runs lists persisted runs in start order.
func (c *Client) Runs(ctx context.Context) ([]model.Run, error) {
	return c.store.ListRuns(ctx)
}

// Report builds the census summary for a stored run. The boolean reports
// whether the run exists.
func (c *Client) Report(ctx context.Context, runID string) (stats.RunReport, bool, error) {
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil || !ok {
		return stats.RunReport{}, ok, err
	}
	samples, _, err := c.store.GetGenerationStats(ctx, runID)
	if err != nil {
		return stats.RunReport{}, true, err
	}
	return stats.BuildRunReport(run, samples), true, nil
}
