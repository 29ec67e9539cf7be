// Package ingest discovers documents and runs the batch inspection over
// them, optionally recording each one in the inspection catalog.
package ingest

import (
	"context"

	"github.com/chehxing/docx-to-excel/internal/inspect"
)

// InspectionResult is the per-document batch outcome.
type InspectionResult struct {
	SourcePath   string
	CatalogID    string
	Deduplicated bool
	HashHex      string
	Info         inspect.DocumentInfo
	Tables       []inspect.TableSummary
}

func (r InspectionResult) Failed() bool { return r.Info.Failed() }

// DirStats summarizes a directory inspection.
type DirStats struct {
	Matched      uint32
	Succeeded    uint32
	Failed       uint32
	Deduplicated uint32
	Tables       uint32
}

// Inspector is the behavior the batch command depends on.
type Inspector interface {
	// InspectPath inspects a single document. Read failures are carried in
	// the result, never returned.
	InspectPath(ctx context.Context, path string) InspectionResult
	// InspectDirectory inspects every document under root matching pattern.
	InspectDirectory(ctx context.Context, root, pattern string) ([]InspectionResult, DirStats, error)
}
