package ingest

import (
	"context"
	"time"
)

// InspectDirectory finds the documents under root and inspects each one in
// order. A document that cannot be read is counted as failed; the batch
// continues.
func (i *FSInspector) InspectDirectory(ctx context.Context, root, pattern string) ([]InspectionResult, DirStats, error) {
	start := time.Now()
	var stats DirStats

	paths, err := FindDocuments(root, pattern)
	if err != nil {
		return nil, stats, err
	}
	i.logger.Debug("ingest.discover.ok", "root", root, "pattern", pattern, "matched", len(paths))

	results := make([]InspectionResult, 0, len(paths))
	for _, path := range paths {
		stats.Matched++
		i.logger.Debug("inspecting document", "path", path)

		r := i.InspectPath(ctx, path)
		results = append(results, r)
		if r.Failed() {
			stats.Failed++
			continue
		}
		stats.Succeeded++
		stats.Tables += uint32(len(r.Tables))
		if r.Deduplicated {
			stats.Deduplicated++
		}
	}

	i.logger.Debug("ingest.directory.ok",
		"root", root,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"deduplicated", stats.Deduplicated,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return results, stats, nil
}
