package docxreader

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docvert/internal/domain"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="xml" ContentType="application/xml"/>
</Types>`

// buildDocx assembles a minimal .docx archive with one w:p per paragraph.
func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		if p == "" {
			body.WriteString(`<w:p/>`)
			continue
		}
		body.WriteString(`<w:p><w:r><w:t>`)
		require.NoError(t, xml.EscapeText(&body, []byte(p)))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range map[string]string{
		"[Content_Types].xml": contentTypesXML,
		"word/document.xml":   body.String(),
	} {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestReadParagraphsFrom(t *testing.T) {
	data := buildDocx(t, []string{"Patient Name: John Smith", "Age: 45"})

	paras, err := New().ReadParagraphsFrom(context.Background(), bytes.NewReader(data), int64(len(data)), "report.docx")
	require.NoError(t, err)

	assert.Equal(t, []string{"Patient Name: John Smith", "Age: 45"}, paras)
}

func TestReadParagraphsFrom_PreservesEmptyParagraphs(t *testing.T) {
	data := buildDocx(t, []string{"A: 1", "", "B: 2"})

	paras, err := New().ReadParagraphsFrom(context.Background(), bytes.NewReader(data), int64(len(data)), "report.docx")
	require.NoError(t, err)

	assert.Equal(t, []string{"A: 1", "", "B: 2"}, paras)
}

func TestReadParagraphs_FromDisk(t *testing.T) {
	data := buildDocx(t, []string{"Diagnosis: Type 2 Diabetes"})
	path := filepath.Join(t.TempDir(), "report.docx")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	paras, err := New().ReadParagraphs(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Diagnosis: Type 2 Diabetes"}, paras)
}

func TestReadParagraphs_MissingFile(t *testing.T) {
	_, err := New().ReadParagraphs(context.Background(), filepath.Join(t.TempDir(), "absent.docx"))

	var readErr *domain.ReadError
	require.ErrorAs(t, err, &readErr)
}

func TestReadParagraphs_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip file"), 0o644))

	_, err := New().ReadParagraphs(context.Background(), path)

	var readErr *domain.ReadError
	require.ErrorAs(t, err, &readErr)
}

func TestReadParagraphsFrom_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(contentTypesXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = New().ReadParagraphsFrom(context.Background(), bytes.NewReader(buf.Bytes()), int64(buf.Len()), "empty.docx")

	var readErr *domain.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestIsLockFile(t *testing.T) {
	assert.True(t, IsLockFile("/data/reports/~$report.docx"))
	assert.True(t, IsLockFile("~$open.docx"))
	assert.False(t, IsLockFile("/data/reports/report.docx"))
}
