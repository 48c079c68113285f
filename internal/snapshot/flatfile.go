package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/arolim/hcp-mcmc/pkg/errors"
)

// flatFileSuffixes is the fixed suffix set spec.md §6 names, one file per
// field, one sample per line, vectors space-separated.
var flatFileSuffixes = []string{"_configs", "_num_groups", "_group_size", "_edges", "_pairs", "_ll"}

// FlatFileSink writes one whitespace-separated text file per field, named
// <baseName><suffix> under directory, appending one line per recorded
// sample.
type FlatFileSink struct {
	files map[string]*os.File
}

// NewFlatFileSink opens (creating or truncating) the six files
// baseName+suffix under directory.
func NewFlatFileSink(directory, baseName string) (*FlatFileSink, error) {
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("creating snapshot directory %s", directory), err)
	}

	files := make(map[string]*os.File, len(flatFileSuffixes))
	for _, suffix := range flatFileSuffixes {
		path := filepath.Join(directory, baseName+suffix)
		f, err := os.Create(path)
		if err != nil {
			for _, open := range files {
				open.Close()
			}
			return nil, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("creating snapshot file %s", path), err)
		}
		files[suffix] = f
	}
	return &FlatFileSink{files: files}, nil
}

// Record appends one line to each of the six files.
func (s *FlatFileSink) Record(_ context.Context, sample Sample) error {
	lines := map[string]string{
		"_configs":    joinUint64(sample.Groups),
		"_num_groups": strconv.Itoa(sample.NumGroups),
		"_group_size": joinInts(sample.GroupSize),
		"_edges":      joinInts(sample.HCGEdges),
		"_pairs":      joinInts(sample.HCGPairs),
		"_ll":         strconv.FormatFloat(sample.LogLike, 'g', -1, 64),
	}
	for _, suffix := range flatFileSuffixes {
		if _, err := fmt.Fprintln(s.files[suffix], lines[suffix]); err != nil {
			return apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("writing snapshot file %s", suffix), err)
		}
	}
	return nil
}

// Close closes all six files, returning the first error encountered.
func (s *FlatFileSink) Close() error {
	var firstErr error
	for _, f := range s.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = apperrors.Wrap(apperrors.CodeIOError, "closing snapshot file", err)
		}
	}
	return firstErr
}

func joinUint64(vs []uint64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, " ")
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
