// Package extract implements the paragraph-level key/value extractor.
// It is a pure function over a document's paragraph text: no I/O, no
// retained state.
package extract

import (
	"strings"

	"docvert/internal/domain"
)

// SkippedParagraph records a non-empty paragraph that contained no
// colon and therefore contributed nothing to the Record.
type SkippedParagraph struct {
	Index int
	Text  string
}

// Result is the outcome of extracting one paragraph sequence.
type Result struct {
	// Content maps label → value for every "Label: Value" paragraph.
	Content domain.Record
	// FreeText holds colon-less non-empty paragraphs in document order.
	FreeText []string
	// Skipped mirrors FreeText with original paragraph indices, for
	// callers that need to inspect what was excluded.
	Skipped []SkippedParagraph
	// TotalParagraphs counts every paragraph examined, including blank
	// and colon-less ones.
	TotalParagraphs int
	// ContentParagraphs counts non-blank paragraphs only.
	ContentParagraphs int
}

// Paragraphs extracts a Record from a document's paragraph sequence.
//
// Each paragraph is split on its first colon: the text before becomes
// the label, the text after the value, both trimmed of surrounding
// whitespace. A duplicate label overwrites the earlier value. Blank
// paragraphs and paragraphs without a colon are excluded from Content
// but still count toward TotalParagraphs; the colon-less ones are
// additionally reported via FreeText and Skipped. There are no error
// conditions.
func Paragraphs(paras []string) Result {
	res := Result{
		Content:         domain.Record{},
		TotalParagraphs: len(paras),
	}

	for i, para := range paras {
		line := strings.TrimSpace(para)
		if line == "" {
			continue
		}
		res.ContentParagraphs++

		label, value, found := strings.Cut(line, ":")
		if !found {
			res.FreeText = append(res.FreeText, line)
			res.Skipped = append(res.Skipped, SkippedParagraph{Index: i, Text: line})
			continue
		}
		res.Content[strings.TrimSpace(label)] = strings.TrimSpace(value)
	}

	return res
}
