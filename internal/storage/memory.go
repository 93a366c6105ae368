package storage

import (
	"context"
	"sort"
	"sync"

	"evogrid/internal/model"
)

type snapshotKey struct {
	runID      string
	generation uint64
}

type MemoryStore struct {
	mu        sync.RWMutex
	runs      map[string]model.Run
	stats     map[string][]model.GenerationStats
	snapshots map[snapshotKey]model.Snapshot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]model.Run)
	s.stats = make(map[string][]model.GenerationStats)
	s.snapshots = make(map[snapshotKey]model.Snapshot)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
	return runs, nil
}

func (s *MemoryStore) SaveGenerationStats(_ context.Context, runID string, stats []model.GenerationStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.GenerationStats, len(stats))
	copy(copied, stats)
	s.stats[runID] = copied
	return nil
}

func (s *MemoryStore) GetGenerationStats(_ context.Context, runID string) ([]model.GenerationStats, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.stats[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.GenerationStats, len(stats))
	copy(copied, stats)
	return copied, true, nil
}

func (s *MemoryStore) SaveSnapshot(_ context.Context, snapshot model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot.Pixels = append([]byte(nil), snapshot.Pixels...)
	s.snapshots[snapshotKey{snapshot.RunID, snapshot.Generation}] = snapshot
	return nil
}

func (s *MemoryStore) GetSnapshot(_ context.Context, runID string, generation uint64) (model.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[snapshotKey{runID, generation}]
	if !ok {
		return model.Snapshot{}, false, nil
	}
	snapshot.Pixels = append([]byte(nil), snapshot.Pixels...)
	return snapshot, true, nil
}

func (s *MemoryStore) ListSnapshotGenerations(_ context.Context, runID string) ([]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var generations []uint64
	for key := range s.snapshots {
		if key.runID == runID {
			generations = append(generations, key.generation)
		}
	}
	sort.Slice(generations, func(i, j int) bool { return generations[i] < generations[j] })
	return generations, nil
}
