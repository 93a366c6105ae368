package model

import "time"

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Run records one recorded simulation run.
type Run struct {
	VersionedRecord
	ID          string    `json:"id"`
	World       string    `json:"world"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Seed        uint64    `json:"seed"`
	Generations int       `json:"generations"`
	StopReason  string    `json:"stop_reason"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// Census aggregates one generation's population. Gene-related fields stay
// zero for worlds without heritable state.
type Census struct {
	Generation      uint64     `json:"generation"`
	LiveCells       int        `json:"live_cells"`
	MeanGenomeBits  float64    `json:"mean_genome_bits,omitempty"`
	AlleleFrequency [8]float64 `json:"allele_frequency"`
	MeanMatchWeight float64    `json:"mean_match_weight,omitempty"`
}

// GenerationStats is a persisted Census sample within a run.
type GenerationStats struct {
	VersionedRecord
	RunID string `json:"run_id"`
	Census
}

// Snapshot is a captured frame of a run's grid: RGBA pixels in row-major
// order, produced by the per-cell color accessor.
type Snapshot struct {
	VersionedRecord
	RunID      string `json:"run_id"`
	Generation uint64 `json:"generation"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Pixels     []byte `json:"pixels"`
}
