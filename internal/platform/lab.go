// Package platform orchestrates recorded simulation runs: it builds a world
// from the registry, steps it for a configured number of generations, samples
// census statistics and pixel snapshots at intervals, and persists everything
// under a fresh run ID.
package platform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"evogrid/internal/grid"
	"evogrid/internal/model"
	"evogrid/internal/storage"
	"evogrid/internal/worlds"
)

type StopReason string

const (
	StopReasonNormal   StopReason = "normal"
	StopReasonShutdown StopReason = "shutdown"
)

type Config struct {
	Store  storage.Store
	Logger *slog.Logger
}

// RunConfig describes one experiment.
type RunConfig struct {
	World         string
	Width         int
	Height        int
	Seed          uint64
	Generations   int
	SampleEvery   int // census sampling interval in generations; 0 disables
	SnapshotEvery int // snapshot interval in generations; 0 disables
	Params        map[string]string
}

// DefaultRunConfig fills in the conventional grid size and sampling rate.
func DefaultRunConfig(world string) RunConfig {
	return RunConfig{
		World:       world,
		Width:       64,
		Height:      48,
		Generations: 100,
		SampleEvery: 10,
	}
}

// RunResult is returned alongside persistence for callers that want the
// series in hand.
type RunResult struct {
	Run     model.Run
	Samples []model.GenerationStats
	Final   model.Census
}

type Lab struct {
	store  storage.Store
	logger *slog.Logger
}

func NewLab(cfg Config) (*Lab, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Lab{store: cfg.Store, logger: logger}, nil
}

// Run executes one experiment and persists the run record, its sampled
// generation stats, and any snapshots. A canceled context stops the run
// between generations; whatever was simulated so far is still persisted,
// with the stop reason recorded as "shutdown".
func (l *Lab) Run(ctx context.Context, cfg RunConfig) (RunResult, error) {
	if cfg.World == "" {
		return RunResult{}, fmt.Errorf("world is required")
	}
	if cfg.Generations <= 0 {
		return RunResult{}, fmt.Errorf("generations must be positive")
	}

	world, err := worlds.New(cfg.World, worlds.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   cfg.Seed,
		Params: cfg.Params,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("build world %s: %w", cfg.World, err)
	}

	runID := uuid.NewString()
	startedAt := time.Now().UTC()
	l.logger.Info("run started",
		"run_id", runID,
		"world", cfg.World,
		"width", cfg.Width,
		"height", cfg.Height,
		"seed", cfg.Seed,
		"generations", cfg.Generations)

	var samples []model.GenerationStats
	var snapshots []model.Snapshot
	recordSample := func() {
		census := world.Census()
		samples = append(samples, model.GenerationStats{
			VersionedRecord: currentVersions(),
			RunID:           runID,
			Census:          census,
		})
		l.logger.Debug("census sampled",
			"run_id", runID,
			"generation", census.Generation,
			"live_cells", census.LiveCells)
	}
	recordSnapshot := func() {
		snapshots = append(snapshots, captureSnapshot(runID, world))
	}

	if cfg.SampleEvery > 0 {
		recordSample()
	}
	if cfg.SnapshotEvery > 0 {
		recordSnapshot()
	}

	stopReason := StopReasonNormal
	completed := 0
	for generation := 1; generation <= cfg.Generations; generation++ {
		if ctx.Err() != nil {
			stopReason = StopReasonShutdown
			break
		}
		world.Step()
		completed = generation
		if cfg.SampleEvery > 0 && generation%cfg.SampleEvery == 0 {
			recordSample()
		}
		if cfg.SnapshotEvery > 0 && generation%cfg.SnapshotEvery == 0 {
			recordSnapshot()
		}
	}

	// Always close the series on the last simulated generation.
	if cfg.SampleEvery > 0 && (len(samples) == 0 || samples[len(samples)-1].Generation != world.Generation()) {
		recordSample()
	}

	run := model.Run{
		VersionedRecord: currentVersions(),
		ID:              runID,
		World:           cfg.World,
		Width:           cfg.Width,
		Height:          cfg.Height,
		Seed:            cfg.Seed,
		Generations:     completed,
		StopReason:      string(stopReason),
		StartedAt:       startedAt,
		FinishedAt:      time.Now().UTC(),
	}

	// Persistence must outlive the cancellation that stopped the run, or a
	// shutdown would discard everything simulated so far.
	saveCtx := context.WithoutCancel(ctx)
	if err := l.store.SaveRun(saveCtx, run); err != nil {
		return RunResult{}, fmt.Errorf("save run %s: %w", runID, err)
	}
	if len(samples) > 0 {
		if err := l.store.SaveGenerationStats(saveCtx, runID, samples); err != nil {
			return RunResult{}, fmt.Errorf("save generation stats %s: %w", runID, err)
		}
	}
	for _, snapshot := range snapshots {
		if err := l.store.SaveSnapshot(saveCtx, snapshot); err != nil {
			return RunResult{}, fmt.Errorf("save snapshot %s/%d: %w", runID, snapshot.Generation, err)
		}
	}

	l.logger.Info("run finished",
		"run_id", runID,
		"generations", completed,
		"stop_reason", string(stopReason),
		"elapsed", run.FinishedAt.Sub(run.StartedAt))

	return RunResult{Run: run, Samples: samples, Final: world.Census()}, nil
}

// captureSnapshot renders the world's current cells through the per-cell
// color accessor into a row-major RGBA byte grid.
func captureSnapshot(runID string, world worlds.World) model.Snapshot {
	size := world.Size()
	pixels := make([]byte, 0, size.Area()*4)
	for row := 0; row < size.Height; row++ {
		for col := 0; col < size.Width; col++ {
			color := world.ColorAt(grid.NewLoc(row, col))
			pixels = append(pixels, color[0], color[1], color[2], color[3])
		}
	}
	return model.Snapshot{
		VersionedRecord: currentVersions(),
		RunID:           runID,
		Generation:      world.Generation(),
		Width:           size.Width,
		Height:          size.Height,
		Pixels:          pixels,
	}
}

func currentVersions() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}
