package domain

import "time"

// Record is the flat label→value mapping extracted from one document.
// Labels are the text before the first colon of a paragraph, values the
// text after it, both trimmed. Duplicate labels are last-write-wins.
type Record map[string]string

// Metadata describes one conversion: which file was read, when, and
// how much of it contributed content.
type Metadata struct {
	SourceFile        string `json:"source_file"`
	ConvertedAt       string `json:"converted_at"`
	TotalParagraphs   int    `json:"total_paragraphs"`
	ContentParagraphs int    `json:"content_paragraphs"`
	FileType          string `json:"file_type"`
}

// ConversionResult is the full output structure for one converted
// document. FreeText carries non-empty paragraphs that had no colon;
// they are excluded from Content but preserved for visibility.
type ConversionResult struct {
	Metadata Metadata `json:"metadata"`
	Content  Record   `json:"content"`
	FreeText []string `json:"free_text,omitempty"`
}

// FileOutcome is the result of converting a single file within a batch.
// Exactly one of Output, Err, or Skipped is meaningful: Output on
// success, Err on failure, Skipped for Word lock files.
type FileOutcome struct {
	Input   string `json:"input"`
	Output  string `json:"output,omitempty"`
	Err     string `json:"error,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

// BatchStats aggregates the per-file outcomes of a folder conversion.
type BatchStats struct {
	Scanned   int `json:"scanned"`
	Matched   int `json:"matched"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// BatchResult holds the independent per-file outcomes of a folder
// conversion plus aggregate counts. A failing file never aborts the
// batch; only directory-level failures surface as errors.
type BatchResult struct {
	InputDir  string        `json:"input_dir"`
	OutputDir string        `json:"output_dir"`
	StartedAt time.Time     `json:"started_at"`
	Files     []FileOutcome `json:"files"`
	Stats     BatchStats    `json:"stats"`
}
