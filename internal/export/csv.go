// Package export renders conversion results for spreadsheet consumers:
// CSV for a single record, XLSX for a batch report.
package export

import (
	"encoding/csv"
	"io"
	"sort"

	"docvert/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var recordColumns = []string{"Label", "Value"}

// WriteRecordCSV writes the extracted record of one conversion as a
// two-column CSV, labels sorted for a stable file. Free-text paragraphs
// follow the labeled rows under a "(free text)" label.
func WriteRecordCSV(w io.Writer, res *domain.ConversionResult) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(recordColumns); err != nil {
		return err
	}

	labels := make([]string, 0, len(res.Content))
	for label := range res.Content {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		if err := cw.Write([]string{label, res.Content[label]}); err != nil {
			return err
		}
	}
	for _, text := range res.FreeText {
		if err := cw.Write([]string{"(free text)", text}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
