package rag

import (
	"context"

	"lesson-rag/internal/models"
	"lesson-rag/internal/parser"
)

// PDFSource reads the lesson PDF found by substituting the key into a path template.
type PDFSource struct {
	PathTemplate string
}

func (s PDFSource) Path(key models.LessonKey) string {
	return key.FormatPath(s.PathTemplate)
}

func (s PDFSource) Text(_ context.Context, key models.LessonKey) (string, error) {
	return parser.ExtractPDFText(s.Path(key))
}
