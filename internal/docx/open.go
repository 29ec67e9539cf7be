package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/chehxing/docx-to-excel/constants"
	"github.com/chehxing/docx-to-excel/internal/common"
)

const (
	partDocument = "word/document.xml"
	partStyles   = "word/styles.xml"
	partCore     = "docProps/core.xml"
)

// Open reads the package at path into a snapshot. Every failure is a
// DocumentReadError.
func Open(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, common.DocumentReadError(path, err)
	}
	if info.IsDir() {
		return nil, common.DocumentReadError(path, errors.New("is a directory"))
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, common.DocumentReadError(path, err)
	}
	if !mt.Is(constants.DocxMIME) && !mt.Is(constants.ZipMIME) {
		return nil, common.DocumentReadError(path, fmt.Errorf("not a docx container (detected %s)", mt.String()))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, common.DocumentReadError(path, err)
	}
	defer f.Close()

	doc, err := read(f, info.Size(), path)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Read parses a package that is not on disk, such as an upload buffered in
// memory. It skips the content sniffing Open does, and Document.Path stays
// empty. Errors are DocumentReadErrors naming "<memory>".
func Read(r io.ReaderAt, size int64) (*Document, error) {
	return read(r, size, "<memory>")
}

func read(r io.ReaderAt, size int64, name string) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, common.DocumentReadError(name, fmt.Errorf("open zip: %w", err))
	}
	doc, err := fromZip(zr)
	if err != nil {
		return nil, common.DocumentReadError(name, err)
	}
	doc.Size = size
	return doc, nil
}

func fromZip(zr *zip.Reader) (*Document, error) {
	var docFile, stylesFile, coreFile *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case partDocument:
			docFile = f
		case partStyles:
			stylesFile = f
		case partCore:
			coreFile = f
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("%s not found in archive", partDocument)
	}

	var styles *styleSheet
	if stylesFile != nil {
		s, err := withPart(stylesFile, parseStyles)
		if err != nil {
			return nil, err
		}
		styles = s
	}

	body, err := withPart(docFile, func(r io.Reader) (Document, error) {
		return parseBody(r, styles)
	})
	if err != nil {
		return nil, err
	}

	if coreFile != nil {
		props, err := withPart(coreFile, parseCore)
		if err != nil {
			return nil, err
		}
		body.Properties = props
	}
	return &body, nil
}

func withPart[T any](f *zip.File, fn func(io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := f.Open()
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	return fn(rc)
}

type xmlCore struct {
	Title    string `xml:"http://purl.org/dc/elements/1.1/ title"`
	Creator  string `xml:"http://purl.org/dc/elements/1.1/ creator"`
	Created  string `xml:"http://purl.org/dc/terms/ created"`
	Modified string `xml:"http://purl.org/dc/terms/ modified"`
}

func parseCore(r io.Reader) (*Properties, error) {
	var c xmlCore
	if err := xml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("parse core.xml: %w", err)
	}
	return &Properties{
		Title:    strings.TrimSpace(c.Title),
		Author:   strings.TrimSpace(c.Creator),
		Created:  parseW3CDTF(c.Created),
		Modified: parseW3CDTF(c.Modified),
	}, nil
}

// parseW3CDTF accepts the W3C date-time profile used by core properties.
// Unparseable values are treated as absent.
func parseW3CDTF(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
