package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-rag/internal/models"
)

func TestExtractPDFText_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dsa", "pdf", "2.pdf")
	_, err := ExtractPDFText(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Contains(t, err.Error(), path)
}

func TestExtractPDFText_Fixture(t *testing.T) {
	got, err := ExtractPDFText(filepath.Join("testdata", "lesson.pdf"))
	require.NoError(t, err)
	assert.Contains(t, got, "A stack is a LIFO structure.")

	viaExt, err := ExtractText(filepath.Join("testdata", "lesson.pdf"))
	require.NoError(t, err)
	assert.Equal(t, got, viaExt)
}

func TestExtractPDFText_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))
	_, err := ExtractPDFText(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrNotFound))
}

func TestExtractText_ByExtension(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "lesson.txt")
	require.NoError(t, os.WriteFile(txt, []byte("A stack is a LIFO structure."), 0o644))
	got, err := ExtractText(txt)
	require.NoError(t, err)
	assert.Equal(t, "A stack is a LIFO structure.", got)

	md := filepath.Join(dir, "lesson.md")
	require.NoError(t, os.WriteFile(md, []byte("# Stack\n\nA stack is *LIFO*.\n\n- push\n- pop\n"), 0o644))
	got, err = ExtractText(md)
	require.NoError(t, err)
	assert.Contains(t, got, "Stack")
	assert.Contains(t, got, "A stack is LIFO.")
	assert.Contains(t, got, "push")
	assert.NotContains(t, got, "#")
	assert.NotContains(t, got, "*")

	_, err = ExtractText(filepath.Join(dir, "lesson.odt"))
	assert.True(t, errors.Is(err, models.ErrNotFound))

	odt := filepath.Join(dir, "lesson.odt")
	require.NoError(t, os.WriteFile(odt, []byte("x"), 0o644))
	_, err = ExtractText(odt)
	assert.ErrorContains(t, err, "unsupported file format")
}

func TestMarkdownToText_CodeBlock(t *testing.T) {
	got, err := MarkdownToText([]byte("Intro\n\n```go\nx := 1\n```\n"))
	require.NoError(t, err)
	assert.Contains(t, got, "Intro")
	assert.Contains(t, got, "x := 1")
	assert.NotContains(t, got, "```")
}

func TestExtractTextFromXML(t *testing.T) {
	xml := `<w:p><w:r><w:t>Hello</w:t></w:r><w:r><w:t xml:space="preserve">world</w:t></w:r></w:p>`
	assert.Equal(t, "Hello world ", extractTextFromXML(xml, "<w:t>", "<w:t ", "</w:t>"))

	slide := `<a:p><a:r><a:t>Slide one</a:t></a:r></a:p>`
	assert.Equal(t, "Slide one ", extractTextFromXML(slide, "<a:t>", "", "</a:t>"))
}

func TestSplit(t *testing.T) {
	short, err := Split("A stack is a LIFO structure.", 500, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"A stack is a LIFO structure."}, short)

	long := strings.Repeat("Cấu trúc dữ liệu là cách tổ chức dữ liệu. ", 60)
	chunks, err := Split(long, 500, 100)
	require.NoError(t, err)
	assert.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 500)
		assert.NotEmpty(t, c)
	}

	empty, err := Split("   \n\n  ", 500, 100)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
