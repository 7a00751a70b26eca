package export

import "strings"

// Document defines the paragraph-level content of a rendered draft.
type Document struct {
	Title      string
	Paragraphs []string
}

// FromPlainText splits draft text into a Document, treating blank lines as
// paragraph breaks. The first line becomes the title when it is short and the
// text has more than one paragraph.
func FromPlainText(text string) Document {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	blocks := strings.Split(normalized, "\n\n")

	paragraphs := make([]string, 0, len(blocks))
	for _, block := range blocks {
		trimmed := strings.TrimSpace(strings.ReplaceAll(block, "\n", " "))
		if trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	doc := Document{Paragraphs: paragraphs}
	if len(paragraphs) > 1 && len(paragraphs[0]) <= 120 {
		doc.Title = paragraphs[0]
		doc.Paragraphs = paragraphs[1:]
	}
	return doc
}
