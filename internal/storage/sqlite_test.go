//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"evogrid/internal/model"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "evogrid.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	run := model.Run{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              "run-1",
		World:           "substance",
		Width:           64,
		Height:          48,
		Seed:            101,
		Generations:     200,
		StopReason:      "normal",
		StartedAt:       time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}

	loadedRun, ok, err := store.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatalf("expected run %s", run.ID)
	}
	if loadedRun.World != run.World || loadedRun.Seed != run.Seed {
		t.Fatalf("unexpected run loaded: %+v", loadedRun)
	}

	stats := []model.GenerationStats{
		{
			VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
			RunID:           "run-1",
			Census:          model.Census{Generation: 1, LiveCells: 30},
		},
	}
	if err := store.SaveGenerationStats(ctx, "run-1", stats); err != nil {
		t.Fatalf("save stats: %v", err)
	}
	loadedStats, ok, err := store.GetGenerationStats(ctx, "run-1")
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if !ok {
		t.Fatal("expected stats run-1")
	}
	if len(loadedStats) != 1 || loadedStats[0].LiveCells != 30 {
		t.Fatalf("unexpected stats loaded: %+v", loadedStats)
	}

	snapshot := model.Snapshot{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           "run-1",
		Generation:      10,
		Width:           1,
		Height:          1,
		Pixels:          []byte{0, 0, 0, 0xff},
	}
	if err := store.SaveSnapshot(ctx, snapshot); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	loadedSnapshot, ok, err := store.GetSnapshot(ctx, "run-1", 10)
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if !ok {
		t.Fatal("expected snapshot run-1/10")
	}
	if len(loadedSnapshot.Pixels) != 4 {
		t.Fatalf("unexpected snapshot loaded: %+v", loadedSnapshot)
	}

	generations, err := store.ListSnapshotGenerations(ctx, "run-1")
	if err != nil {
		t.Fatalf("list snapshot generations: %v", err)
	}
	if len(generations) != 1 || generations[0] != 10 {
		t.Fatalf("unexpected generations: %v", generations)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "evogrid.db")

	first := NewSQLiteStore(dbPath)
	if err := first.Init(ctx); err != nil {
		t.Fatalf("first init: %v", err)
	}
	run := model.Run{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		ID:              "persisted-run",
		World:           "conway",
	}
	if err := first.SaveRun(ctx, run); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	second := NewSQLiteStore(dbPath)
	if err := second.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	t.Cleanup(func() {
		_ = second.Close()
	})

	loaded, ok, err := second.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if !ok || loaded.ID != run.ID {
		t.Fatalf("expected persisted run, got ok=%t value=%+v", ok, loaded)
	}

	runs, err := second.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one run, got %d", len(runs))
	}
}
