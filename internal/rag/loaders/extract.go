package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFileType is returned for any upload that is not a PDF or
// a UTF-8 text file.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Extract returns the plain text of an uploaded file. The format is
// chosen by extension and verified against the actual content. PDF pages
// are concatenated in page order; .txt bytes are decoded as UTF-8.
func Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		if !mimetype.Detect(data).Is("application/pdf") {
			return "", fmt.Errorf("%w: %s is not a valid PDF", ErrUnsupportedFileType, filename)
		}
		return extractPDF(data)
	case ".txt":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s is not valid UTF-8 text", ErrUnsupportedFileType, filename)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filename)
	}
}

// extractPDF walks the document page by page and concatenates the
// extracted text in page order.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}
