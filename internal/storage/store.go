package storage

import (
	"context"

	"evogrid/internal/model"
)

// Store defines persistence operations for recorded simulation runs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.Run) error
	GetRun(ctx context.Context, id string) (model.Run, bool, error)
	ListRuns(ctx context.Context) ([]model.Run, error)
	SaveGenerationStats(ctx context.Context, runID string, stats []model.GenerationStats) error
	GetGenerationStats(ctx context.Context, runID string) ([]model.GenerationStats, bool, error)
	SaveSnapshot(ctx context.Context, snapshot model.Snapshot) error
	GetSnapshot(ctx context.Context, runID string, generation uint64) (model.Snapshot, bool, error)
	ListSnapshotGenerations(ctx context.Context, runID string) ([]uint64, error)
}
