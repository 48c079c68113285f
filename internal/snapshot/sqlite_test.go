package snapshot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arolim/hcp-mcmc/internal/snapshot"
)

func TestSQLiteSinkRecordsSamples(t *testing.T) {
	sink, err := snapshot.NewSQLiteSink(":memory:", "run-abc")
	require.NoError(t, err)
	defer sink.Close()

	err = sink.Record(context.Background(), snapshot.Sample{
		Iteration: 3,
		Groups:    []uint64{1, 3, 1},
		NumGroups: 2,
		GroupSize: []int{2, 1},
		HCGEdges:  []int{1, 0},
		HCGPairs:  []int{2, 1},
		LogLike:   -4.2,
	})
	require.NoError(t, err)
}

func TestSQLiteSinkRejectsUnopenableDatabase(t *testing.T) {
	_, err := snapshot.NewSQLiteSink("/nonexistent/dir/db.sqlite", "run-abc")
	assert.Error(t, err)
}
