// Package pipeline composes classification, loading, and normalization into
// one pure function from an upload batch to a canonical dataset. Each run
// builds its own state; concurrent runs never interfere.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/runnerr0/replay/internal/config"
	"github.com/runnerr0/replay/internal/ingest"
	"github.com/runnerr0/replay/internal/normalize"
)

// ErrNoPrimaryData means the upload contained no primary history files.
// Consumers should prompt the user for a StreamingHistory file rather than
// report a failure.
var ErrNoPrimaryData = errors.New("no primary streaming history files in upload")

// Result is the canonical dataset of one upload batch plus the optional
// side tables the presentation layer may use.
type Result struct {
	ReportID string
	Events   []normalize.Event
	Summary  ingest.Summary
	Searches []ingest.SearchEntry
}

// Run processes one upload batch start to finish: classify the files,
// enforce resource limits, load and validate the records, and normalize
// them into the canonical table. A nil cfg uses defaults.
func Run(files []ingest.File, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if err := checkByteLimit(files, cfg.Limits.MaxTotalBytes); err != nil {
		return nil, err
	}

	buckets := ingest.Classify(files)

	loaded, err := ingest.Load(buckets)
	if err != nil {
		return nil, err
	}
	if !loaded.HasPrimary {
		return nil, ErrNoPrimaryData
	}

	if limit := cfg.Limits.MaxRows; limit > 0 && int64(len(loaded.Primary)) > limit {
		return nil, &ingest.ResourceLimitError{
			Kind:   "rows",
			Limit:  limit,
			Actual: int64(len(loaded.Primary)),
		}
	}

	events, err := normalize.Normalize(loaded.Primary, normalize.Options{
		Timezone:  cfg.Timezone,
		MinPlayMs: cfg.Filter.MinPlayMs,
	})
	if err != nil {
		return nil, fmt.Errorf("normalizing events: %w", err)
	}

	return &Result{
		ReportID: uuid.NewString(),
		Events:   events,
		Summary:  loaded.Summary,
		Searches: loaded.Searches,
	}, nil
}

func checkByteLimit(files []ingest.File, max int64) error {
	if max <= 0 {
		return nil
	}
	var total int64
	for _, f := range files {
		total += int64(len(f.Data))
	}
	if total > max {
		return &ingest.ResourceLimitError{Kind: "bytes", Limit: max, Actual: total}
	}
	return nil
}
