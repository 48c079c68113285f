// Package snapshot records sampler state at the cadence a driver chooses.
// Two sinks are provided: a flat whitespace-separated text-file writer
// matching spec.md §6 exactly, and a GORM-backed SQLite sink that gives the
// same samples a queryable secondary home.
package snapshot

import "context"

// Sample is the tuple spec.md §6 names for periodic recording:
// (groups, num_groups, group_size, hcg_edges, hcg_pairs, log_like).
type Sample struct {
	Iteration int
	Groups    []uint64
	NumGroups int
	GroupSize []int
	HCGEdges  []int
	HCGPairs  []int
	LogLike   float64
}

// Sink persists samples handed to it by a driver loop.
type Sink interface {
	Record(ctx context.Context, s Sample) error
	Close() error
}
