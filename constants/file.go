package constants

import "strings"

// DocxMIME is the content type of a WordprocessingML package.
const DocxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ZipMIME is accepted too: a docx whose first entry is not [Content_Types].xml sniffs as a plain zip.
const ZipMIME = "application/zip"

// DocumentExt is the extension handled by every mode.
const DocumentExt = "docx"

// WorkbookExt is the extension of every produced workbook.
const WorkbookExt = "xlsx"

// DefaultPattern is the batch discovery glob.
const DefaultPattern = "*.docx"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsDocumentExt reports whether ext (with or without dot, any case) is docx.
func IsDocumentExt(ext string) bool {
	return NormalizeExt(ext) == DocumentExt
}
