// Package docxreader reads paragraph text from .docx files. A .docx is
// a ZIP archive; the document body lives in word/document.xml, which is
// token-walked so the whole XML tree is never held in memory.
package docxreader

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"docvert/internal/domain"
	"docvert/internal/port"
)

const (
	documentPart     = "word/document.xml"
	contentTypesPart = "[Content_Types].xml"
)

// Reader implements port.ParagraphReader for .docx files.
type Reader struct{}

// New creates a docx Reader.
func New() *Reader {
	return &Reader{}
}

var _ port.ParagraphReader = (*Reader)(nil)

// IsLockFile reports whether path looks like a Word lock/temp file
// ("~$" prefix). Word leaves these next to open documents; they are
// not valid archives and batch conversion skips them.
func IsLockFile(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "~$")
}

// ReadParagraphs returns the ordered paragraph text of the document at
// path. Empty paragraphs are preserved as empty strings so callers can
// count them.
func (r *Reader) ReadParagraphs(ctx context.Context, path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &domain.ReadError{Path: path, Err: fmt.Errorf("open archive: %w", err)}
	}
	defer zr.Close()

	paras, err := readArchive(ctx, &zr.Reader)
	if err != nil {
		return nil, &domain.ReadError{Path: path, Err: err}
	}
	return paras, nil
}

// ReadParagraphsFrom reads a document from an in-memory stream.
func (r *Reader) ReadParagraphsFrom(ctx context.Context, ra io.ReaderAt, size int64, name string) ([]string, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, &domain.ReadError{Path: name, Err: fmt.Errorf("open archive: %w", err)}
	}

	paras, err := readArchive(ctx, zr)
	if err != nil {
		return nil, &domain.ReadError{Path: name, Err: err}
	}
	return paras, nil
}

// readArchive validates the archive layout and extracts paragraphs.
// Both word/document.xml and [Content_Types].xml must be present for
// the archive to count as a Word document.
func readArchive(ctx context.Context, zr *zip.Reader) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var docFile *zip.File
	haveContentTypes := false
	for _, f := range zr.File {
		switch f.Name {
		case documentPart:
			docFile = f
		case contentTypesPart:
			haveContentTypes = true
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("%s not found in archive", documentPart)
	}
	if !haveContentTypes {
		return nil, fmt.Errorf("%s not found in archive", contentTypesPart)
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	return parseDocumentXML(rc)
}
