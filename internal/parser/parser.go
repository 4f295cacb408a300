package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"lesson-rag/internal/models"
)

// ExtractText returns the plain text of a lesson source, chosen by extension.
func ExtractText(filePath string) (string, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", models.Errorf(models.ErrNotFound, "source not found at: %s", filePath)
		}
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	switch ext {
	case ".pdf":
		return ExtractPDFText(filePath)
	case ".docx":
		return parseDOCX(filePath)
	case ".pptx":
		return parsePPTX(filePath)
	case ".xlsx":
		return parseXLSX(filePath)
	case ".xlsm", ".xltx", ".xltm":
		return parseExcelize(filePath)
	case ".md", ".markdown":
		return parseMarkdown(filePath)
	case ".txt":
		return parseText(filePath)
	default:
		return "", fmt.Errorf("unsupported file format: %s", ext)
	}
}

// ExtractPDFText concatenates the plain text of every page.
func ExtractPDFText(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", models.Errorf(models.ErrNotFound, "PDF not found at: %s", filePath)
		}
		return "", err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return "", fmt.Errorf("failed to read PDF %s: %w", filePath, err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract page %d of %s: %w", i, filePath, err)
		}
		text.WriteString(pageText)
	}
	return text.String(), nil
}

func parseDOCX(filePath string) (string, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	content := r.Editable().GetContent()
	return extractTextFromXML(content, "<w:t>", "<w:t ", "</w:t>"), nil
}

func parsePPTX(filePath string) (string, error) {
	f, err := zip.OpenReader(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var text strings.Builder
	for _, file := range f.File {
		if !strings.HasPrefix(file.Name, "ppt/slides/slide") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}
		if slide := extractTextFromXML(string(data), "<a:t>", "", "</a:t>"); strings.TrimSpace(slide) != "" {
			text.WriteString(slide)
			text.WriteString("\n\n")
		}
	}
	return text.String(), nil
}

func parseXLSX(filePath string) (string, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, sheet := range f.Sheets {
		text.WriteString(fmt.Sprintf("## Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				cells = append(cells, cell.String())
			}
			text.WriteString(strings.Join(cells, "\t"))
			text.WriteString("\n")
		}
		text.WriteString("\n")
	}
	return text.String(), nil
}

func parseExcelize(filePath string) (string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var text strings.Builder
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		text.WriteString(fmt.Sprintf("## Sheet: %s\n", sheetName))
		for _, row := range rows {
			text.WriteString(strings.Join(row, "\t"))
			text.WriteString("\n")
		}
		text.WriteString("\n")
	}
	return text.String(), nil
}

func parseText(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// extractTextFromXML collects the text between open and close tags. altOpen
// matches tags carrying attributes, such as <w:t xml:space="preserve">.
func extractTextFromXML(xmlContent, open, altOpen, close string) string {
	var text strings.Builder
	rest := xmlContent
	for {
		start := strings.Index(rest, open)
		tagLen := len(open)
		if altOpen != "" {
			if alt := strings.Index(rest, altOpen); alt >= 0 && (start < 0 || alt < start) {
				gt := strings.IndexByte(rest[alt:], '>')
				if gt < 0 {
					break
				}
				start, tagLen = alt, gt+1
			}
		}
		if start < 0 {
			break
		}
		rest = rest[start+tagLen:]
		end := strings.Index(rest, close)
		if end < 0 {
			break
		}
		text.WriteString(rest[:end])
		text.WriteString(" ")
		rest = rest[end+len(close):]
	}
	return text.String()
}
