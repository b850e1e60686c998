package docxreader

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// parseDocumentXML token-walks word/document.xml and emits one string
// per w:p element. Text is collected from w:t runs only; tabs and line
// breaks inside a paragraph become single spaces. Empty paragraphs are
// kept so the paragraph count matches the document.
func parseDocumentXML(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	var inParagraph, inText bool

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "t":
				if inParagraph {
					inText = true
				}
			case "tab", "br":
				if inParagraph {
					current.WriteByte(' ')
				}
			}

		case xml.CharData:
			if inText {
				current.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inParagraph {
					inParagraph = false
					paragraphs = append(paragraphs, current.String())
				}
			}
		}
	}

	return paragraphs, nil
}
