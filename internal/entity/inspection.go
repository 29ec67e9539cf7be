package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/chehxing/docx-to-excel/constants"
)

// Inspection is one catalogued batch inspection of a document.
type Inspection struct {
	ID           uuid.UUID               `json:"id"`
	ContentHash  string                  `json:"content_hash"` // sha256 hex
	SourcePath   string                  `json:"source_path"`
	Filename     string                  `json:"filename"`
	FileSize     int64                   `json:"file_size"`
	Paragraphs   int                     `json:"paragraphs"`
	Tables       int                     `json:"tables"`
	Images       int                     `json:"images"`
	Status       constants.InspectStatus `json:"status"`
	ErrorMessage *string                 `json:"error_message,omitempty"`
	InspectedAt  time.Time               `json:"inspected_at"`
}
