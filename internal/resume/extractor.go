package resume

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/shrimpsizemoose/placement-tracker/internal/apperrors"
)

var pdfMagic = []byte("%PDF")

// PDFExtractor pulls the plain text layer out of a PDF document.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText never panics: the parser is known to panic on some
// malformed inputs, and those are reported as ErrExtractionFailed.
func (e *PDFExtractor) ExtractText(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", apperrors.ErrMissingFile
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), pdfMagic) {
		return "", fmt.Errorf("%w: payload is not a PDF", apperrors.ErrExtractionFailed)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: parser panic: %v", apperrors.ErrExtractionFailed, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrExtractionFailed, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrExtractionFailed, err)
	}

	var buf strings.Builder
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrExtractionFailed, err)
	}

	text = strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("%w: no text layer", apperrors.ErrExtractionFailed)
	}
	return text, nil
}
