package port

import (
	"context"
	"io"
)

// ParagraphReader abstracts the document container format. The
// converter core depends only on this interface, never on a concrete
// parsing implementation.
type ParagraphReader interface {
	// ReadParagraphs returns the ordered paragraph text of the document
	// at path. Failures are reported as *domain.ReadError.
	ReadParagraphs(ctx context.Context, path string) ([]string, error)

	// ReadParagraphsFrom reads a document from an in-memory stream,
	// for uploads that never touch disk. name is used in error
	// reporting only.
	ReadParagraphsFrom(ctx context.Context, r io.ReaderAt, size int64, name string) ([]string, error)
}
