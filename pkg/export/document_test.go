package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPlainTextSplitsParagraphs(t *testing.T) {
	doc := FromPlainText("LEGAL NOTICE\n\nFirst paragraph\nspans two lines.\n\nSecond paragraph.")
	assert.Equal(t, "LEGAL NOTICE", doc.Title)
	require.Len(t, doc.Paragraphs, 2)
	assert.Equal(t, "First paragraph spans two lines.", doc.Paragraphs[0])
	assert.Equal(t, "Second paragraph.", doc.Paragraphs[1])
}

func TestFromPlainTextSingleParagraphHasNoTitle(t *testing.T) {
	doc := FromPlainText("Just one block of text.")
	assert.Empty(t, doc.Title)
	require.Len(t, doc.Paragraphs, 1)
}

func TestFromPlainTextSkipsEmptyBlocks(t *testing.T) {
	doc := FromPlainText("\n\n  \n\nOnly content.\n\n")
	require.Len(t, doc.Paragraphs, 1)
	assert.Equal(t, "Only content.", doc.Paragraphs[0])
}

func TestPDFExporterRequiresParagraphs(t *testing.T) {
	_, err := NewPDFExporter().Render(Document{Title: "Empty"})
	require.Error(t, err)
}

func TestPDFExporterRendersBytes(t *testing.T) {
	payload, err := NewPDFExporter().Render(Document{
		Title:      "Bail Application",
		Paragraphs: []string{"Before the Hon'ble Court.", "The applicant submits as under."},
	})
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}
