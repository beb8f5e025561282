package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
)

// buildDocx writes a minimal DOCX archive containing the given
// word/document.xml payload.
func buildDocx(t *testing.T, documentXML string) string {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "doc.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Purchase order 4411 covers the Rotterdam shipment.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Delivery is due in </w:t></w:r><w:r><w:t>week 32.</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestExtractor_Extensions(t *testing.T) {
	assert.Equal(t, []string{".docx"}, New().Extensions())
}

func TestExtractor_ExtractParagraphs(t *testing.T) {
	path := buildDocx(t, sampleDocument)

	got, err := New().Extract(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, "Purchase order 4411 covers the Rotterdam shipment.\nDelivery is due in week 32.", got)
}

func TestExtractor_ExtractCorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0600))

	_, err := New().Extract(context.Background(), path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDecode))
}

func TestExtractor_ExtractBrokenXML(t *testing.T) {
	path := buildDocx(t, "<w:document><unclosed")

	_, err := New().Extract(context.Background(), path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDecode))
}

func TestExtractor_ExtractNoDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "empty.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))

	got, extractErr := New().Extract(context.Background(), path)

	require.NoError(t, extractErr)
	assert.Empty(t, got)
}

func TestExtractor_ExtractMissingFile(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "absent.docx"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
