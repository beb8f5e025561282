package extractors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
)

// stubExtractor is a minimal extractor for registry tests.
type stubExtractor struct {
	exts []string
	text string
}

func (s *stubExtractor) Extensions() []string {
	return s.exts
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (string, error) {
	return s.text, nil
}

func TestRegistry_ExtractorFor(t *testing.T) {
	r := NewRegistry(&stubExtractor{exts: []string{".txt", ".md"}})

	_, ok := r.ExtractorFor("notes.txt")
	assert.True(t, ok)
	_, ok = r.ExtractorFor("readme.md")
	assert.True(t, ok)
	_, ok = r.ExtractorFor("scan.pdf")
	assert.False(t, ok)
}

func TestRegistry_ExtensionMatchingIsCaseInsensitive(t *testing.T) {
	r := NewRegistry(&stubExtractor{exts: []string{".txt"}})

	_, ok := r.ExtractorFor("NOTES.TXT")

	assert.True(t, ok)
}

func TestRegistry_ExtractUnsupportedFormat(t *testing.T) {
	r := NewRegistry(&stubExtractor{exts: []string{".txt"}})

	_, err := r.Extract(context.Background(), "scan.pdf")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedFormat))
}

func TestRegistry_ExtractDispatches(t *testing.T) {
	r := NewRegistry(&stubExtractor{exts: []string{".txt"}, text: "hello"})

	got, err := r.Extract(context.Background(), "notes.txt")

	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestRegistry_LaterRegistrationWins(t *testing.T) {
	first := &stubExtractor{exts: []string{".txt"}, text: "first"}
	second := &stubExtractor{exts: []string{".txt"}, text: "second"}
	r := NewRegistry(first, second)

	got, err := r.Extract(context.Background(), "notes.txt")

	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"windows line endings", "a\r\nb", "a\nb"},
		{"bare carriage returns", "a\rb", "a\nb"},
		{"space runs collapsed", "a   \t  b", "a b"},
		{"blank line runs squeezed", "a\n\n\n\n\nb", "a\n\nb"},
		{"surrounding whitespace trimmed", "  \n text \n ", "text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
