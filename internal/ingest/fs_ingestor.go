package ingest

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/chehxing/docx-to-excel/constants"
	"github.com/chehxing/docx-to-excel/internal/docx"
	"github.com/chehxing/docx-to-excel/internal/entity"
	"github.com/chehxing/docx-to-excel/internal/inspect"
	"github.com/chehxing/docx-to-excel/internal/repository"
)

// FSInspector reads documents from the local filesystem.
type FSInspector struct {
	Catalog      repository.InspectionRepository // nil disables recording
	PreviewRunes int
	logger       *slog.Logger
}

var _ Inspector = (*FSInspector)(nil)

func NewFSInspector(catalog repository.InspectionRepository, previewRunes int, logger *slog.Logger) *FSInspector {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSInspector{
		Catalog:      catalog,
		PreviewRunes: previewRunes,
		logger:       logger,
	}
}

func (i *FSInspector) InspectPath(ctx context.Context, path string) InspectionResult {
	out := InspectionResult{SourcePath: path}

	doc, err := docx.Open(path)
	if err != nil {
		i.logger.Warn("failed to inspect document", "path", path, "error", err)
		out.Info = inspect.DocumentInfo{FileName: filepath.Base(path), Err: err}
	} else {
		out.Info = inspect.Describe(doc, i.PreviewRunes)
		out.Tables = inspect.Tables(doc)
	}

	if i.Catalog != nil {
		i.record(ctx, &out)
	}
	return out
}

// record stores the result in the catalog. Catalog problems are logged;
// they never fail the document.
func (i *FSInspector) record(ctx context.Context, out *InspectionResult) {
	sum, err := HashFile(out.SourcePath)
	if err != nil {
		i.logger.Warn("skipping catalog record", "path", out.SourcePath, "error", err)
		return
	}
	out.HashHex = sum

	row := entity.Inspection{
		ContentHash: sum,
		SourcePath:  out.SourcePath,
		Filename:    filepath.Base(out.SourcePath),
		Status:      constants.InspectStatusOK,
		InspectedAt: time.Now().UTC(),
	}
	if abs, err := filepath.Abs(out.SourcePath); err == nil {
		row.SourcePath = abs
	}
	if out.Failed() {
		msg := out.Info.Err.Error()
		row.Status = constants.InspectStatusFailed
		row.ErrorMessage = &msg
	} else {
		row.FileSize = out.Info.Size
		row.Paragraphs = out.Info.Paragraphs
		row.Tables = out.Info.Tables
		row.Images = out.Info.Images
	}

	saved, dedup, err := i.Catalog.UpsertByHash(ctx, row)
	if err != nil {
		i.logger.Warn("failed to record inspection", "path", out.SourcePath, "error", err)
		return
	}
	out.CatalogID = saved.ID.String()
	out.Deduplicated = dedup
	if dedup {
		i.logger.Debug("ingest.catalog.dedup", "path", out.SourcePath, "catalog_id", out.CatalogID)
	}
}
