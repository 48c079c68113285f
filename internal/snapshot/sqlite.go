package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	tracing "gorm.io/plugin/opentelemetry/tracing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/arolim/hcp-mcmc/pkg/errors"
)

// SampleRecord is the GORM row shape for a recorded sample, one row per
// call to SQLiteSink.Record. Vector fields are stored JSON-encoded since
// their width varies with num_groups/num_nodes across a run.
type SampleRecord struct {
	ID         uint `gorm:"primarykey"`
	RunID      string
	Iteration  int
	GroupsJSON string
	NumGroups  int
	SizesJSON  string
	EdgesJSON  string
	PairsJSON  string
	LogLike    float64
	RecordedAt time.Time
}

// TableName pins the table name so repeated runs against the same database
// file share one table regardless of struct name mangling.
func (SampleRecord) TableName() string { return "hcp_samples" }

// SQLiteSink persists samples to a SQLite database via GORM, traced through
// the same tracer provider the sampler loop uses.
type SQLiteSink struct {
	db    *gorm.DB
	runID string
}

// NewSQLiteSink opens (creating if needed) a SQLite database at path and
// migrates the sample table.
func NewSQLiteSink(path, runID string) (*SQLiteSink, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeIOError, fmt.Sprintf("opening snapshot database %s", path), err)
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithTracerProvider(otel.GetTracerProvider()))); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeIOError, "installing snapshot database tracing plugin", err)
	}

	if err := db.AutoMigrate(&SampleRecord{}); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeIOError, "migrating snapshot table", err)
	}

	return &SQLiteSink{db: db, runID: runID}, nil
}

// Record inserts one row for the sample.
func (s *SQLiteSink) Record(ctx context.Context, sample Sample) error {
	groupsJSON, err := json.Marshal(sample.Groups)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeIOError, "marshaling groups", err)
	}
	sizesJSON, err := json.Marshal(sample.GroupSize)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeIOError, "marshaling group sizes", err)
	}
	edgesJSON, err := json.Marshal(sample.HCGEdges)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeIOError, "marshaling hcg_edges", err)
	}
	pairsJSON, err := json.Marshal(sample.HCGPairs)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeIOError, "marshaling hcg_pairs", err)
	}

	record := &SampleRecord{
		RunID:      s.runID,
		Iteration:  sample.Iteration,
		GroupsJSON: string(groupsJSON),
		NumGroups:  sample.NumGroups,
		SizesJSON:  string(sizesJSON),
		EdgesJSON:  string(edgesJSON),
		PairsJSON:  string(pairsJSON),
		LogLike:    sample.LogLike,
		RecordedAt: time.Now(),
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return apperrors.Wrap(apperrors.CodeIOError, "inserting sample record", err)
	}
	return nil
}

// Close releases the underlying *sql.DB connection.
func (s *SQLiteSink) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return apperrors.Wrap(apperrors.CodeIOError, "retrieving underlying sql.DB", err)
	}
	if err := sqlDB.Close(); err != nil {
		return apperrors.Wrap(apperrors.CodeIOError, "closing snapshot database", err)
	}
	return nil
}
